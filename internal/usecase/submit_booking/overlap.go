package submit_booking

import (
	"fmt"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/timegrid"
)

// overlaps проверяет пересечение полуинтервалов [aStart, aEnd) и [bStart, bEnd)
func overlaps(aStart, aEnd, bStart, bEnd string) (bool, error) {
	as, err := timegrid.ToMinutes(aStart)
	if err != nil {
		return false, err
	}
	ae, err := timegrid.ToMinutes(aEnd)
	if err != nil {
		return false, err
	}
	bs, err := timegrid.ToMinutes(bStart)
	if err != nil {
		return false, err
	}
	be, err := timegrid.ToMinutes(bEnd)
	if err != nil {
		return false, err
	}
	return as < be && bs < ae, nil
}

// checkBatchOverlap ищет записи пакета к одному мастеру в один день с пересекающимся временем
func checkBatchOverlap(payloads []domain.AppointmentCreatePayload) error {
	for i := 1; i < len(payloads); i++ {
		for j := 0; j < i; j++ {
			a, b := payloads[i], payloads[j]
			if a.StaffID != b.StaffID || !domain.SameDate(a.Date, b.Date) {
				continue
			}
			hit, err := overlaps(a.StartTime, a.EndTime, b.StartTime, b.EndTime)
			if err != nil {
				return entryError(i, fmt.Errorf("%w: %v", ErrInvalidInput, err))
			}
			if hit {
				return entryError(i, fmt.Errorf("%w: %s-%s overlaps entry %d", ErrBatchOverlap, a.StartTime, a.EndTime, j))
			}
		}
	}
	return nil
}

// findConflict ищет активную запись мастера, пересекающуюся с payload
func findConflict(payload *domain.AppointmentCreatePayload, existing []*domain.Appointment) (*domain.Appointment, error) {
	for _, appt := range existing {
		if !appt.IsActive() {
			continue
		}
		hit, err := overlaps(payload.StartTime, payload.EndTime, appt.StartTime, appt.EndTime)
		if err != nil {
			return nil, err
		}
		if hit {
			return appt, nil
		}
	}
	return nil, nil
}
