package get_availability

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/service/availability"
)

// buildDay собирает доступность мастера на дату из индекса
func buildDay(idx *availability.Index, staffID int64, date time.Time) StaffDay {
	slots := idx.ListAvailableSlots(staffID, date)

	rows := idx.Windows(staffID, date)
	windows := make([]Window, 0, len(rows))
	for _, w := range rows {
		windows = append(windows, Window{
			StartTime:   w.StartTime,
			EndTime:     w.EndTime,
			IsAvailable: w.IsAvailable,
		})
	}

	return StaffDay{
		StaffID:        staffID,
		Date:           date,
		AvailableSlots: slots,
		SlotCount:      len(slots),
		Windows:        windows,
	}
}
