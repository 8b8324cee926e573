package get_availability

import (
	"strconv"
	"strings"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	getAvailability "github.com/m04kA/SMC-SalonBooking/internal/usecase/get_availability"
)

// WindowResponse окно дня
type WindowResponse struct {
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	IsAvailable bool   `json:"isAvailable"`
}

// StaffDayResponse доступность мастера на дату
type StaffDayResponse struct {
	StaffID        int64            `json:"staffId"`
	Date           string           `json:"date"`
	AvailableSlots []string         `json:"availableSlots"`
	SlotCount      int              `json:"slotCount"`
	Windows        []WindowResponse `json:"windows"`
}

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	From string             `json:"from"`
	To   string             `json:"to"`
	Days []StaffDayResponse `json:"days"`
}

// ToUseCaseRequest парсит query параметры
// staffId допускается несколько раз или через запятую: ?staffId=1&staffId=2, ?staffId=1,2
func ToUseCaseRequest(fromStr, toStr string, staffIDStrs []string) (*getAvailability.Request, error) {
	from, err := time.Parse(domain.DateFormat, fromStr)
	if err != nil {
		return nil, err
	}

	// to по умолчанию равен from
	to := from
	if toStr != "" {
		to, err = time.Parse(domain.DateFormat, toStr)
		if err != nil {
			return nil, err
		}
	}

	staffIDs := make([]int64, 0)
	for _, raw := range staffIDStrs {
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := strconv.ParseInt(part, 10, 64)
			if err != nil {
				return nil, err
			}
			staffIDs = append(staffIDs, id)
		}
	}

	return &getAvailability.Request{
		From:     from,
		To:       to,
		StaffIDs: staffIDs,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailability.Response) *AvailabilityResponse {
	days := make([]StaffDayResponse, 0, len(resp.Days))
	for _, d := range resp.Days {
		windows := make([]WindowResponse, 0, len(d.Windows))
		for _, w := range d.Windows {
			windows = append(windows, WindowResponse{
				StartTime:   w.StartTime,
				EndTime:     w.EndTime,
				IsAvailable: w.IsAvailable,
			})
		}

		slots := d.AvailableSlots
		if slots == nil {
			slots = []string{}
		}

		days = append(days, StaffDayResponse{
			StaffID:        d.StaffID,
			Date:           d.Date.Format(domain.DateFormat),
			AvailableSlots: slots,
			SlotCount:      d.SlotCount,
			Windows:        windows,
		})
	}

	return &AvailabilityResponse{
		From: resp.From.Format(domain.DateFormat),
		To:   resp.To.Format(domain.DateFormat),
		Days: days,
	}
}
