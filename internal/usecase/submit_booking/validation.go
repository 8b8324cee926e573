package submit_booking

import (
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/timegrid"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request, maxBatchSize int) error {
	if req.CustomerID <= 0 {
		return fmt.Errorf("%w: customerID must be positive", ErrInvalidInput)
	}

	if len(req.Entries) == 0 {
		return fmt.Errorf("%w: at least one entry is required", ErrInvalidInput)
	}
	if len(req.Entries) > maxBatchSize {
		return fmt.Errorf("%w: %d entries, limit %d", ErrBatchTooLarge, len(req.Entries), maxBatchSize)
	}

	for i, e := range req.Entries {
		if err := validateEntry(e); err != nil {
			return entryError(i, err)
		}
	}

	return nil
}

func validateEntry(e Entry) error {
	if e.StaffID <= 0 {
		return fmt.Errorf("%w: staffID must be positive", ErrInvalidInput)
	}

	if e.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if _, err := timegrid.ToMinutes(e.StartTime); err != nil {
		return fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
	}

	if len(e.ServiceIDs) == 0 {
		return fmt.Errorf("%w: at least one service is required", ErrInvalidInput)
	}
	if len(e.ServiceIDs) > domain.MaxServicesPerAppointment {
		return fmt.Errorf("%w: at most %d services per appointment", ErrInvalidInput, domain.MaxServicesPerAppointment)
	}

	if e.SlotCount < 0 {
		return fmt.Errorf("%w: slotCount must not be negative", ErrInvalidInput)
	}

	return nil
}

// validateDate проверяет, что дата не в прошлом
func validateDate(date time.Time, now time.Time) error {
	today := domain.DateOnly(now)
	if domain.DateOnly(date).Before(today) {
		return fmt.Errorf("%w: %s is in the past", ErrInvalidDate, date.Format(domain.DateFormat))
	}
	return nil
}

// resolveServices возвращает услуги в порядке ids; каждая должна существовать и быть активной
func resolveServices(ids []int64, byID map[int64]*domain.Service) ([]domain.SelectedService, error) {
	selected := make([]domain.SelectedService, 0, len(ids))
	for _, id := range ids {
		s, ok := byID[id]
		if !ok || !s.IsActive {
			return nil, fmt.Errorf("%w: id=%d", ErrServiceNotFound, id)
		}
		selected = append(selected, s.Selected())
	}
	return selected, nil
}

// uniqueIDs уникальные ID в порядке возрастания
func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
