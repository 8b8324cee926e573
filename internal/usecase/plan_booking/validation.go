package plan_booking

import (
	"fmt"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/timegrid"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.StaffID <= 0 {
		return fmt.Errorf("%w: staffID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if _, err := timegrid.ToMinutes(req.StartTime); err != nil {
		return fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
	}

	if len(req.ServiceIDs) == 0 {
		return fmt.Errorf("%w: at least one service is required", ErrInvalidInput)
	}
	if len(req.ServiceIDs) > domain.MaxServicesPerAppointment {
		return fmt.Errorf("%w: at most %d services per appointment", ErrInvalidInput, domain.MaxServicesPerAppointment)
	}

	if req.SlotCount < 0 {
		return fmt.Errorf("%w: slotCount must not be negative", ErrInvalidInput)
	}

	return nil
}

// resolveServices возвращает услуги в порядке ids; каждая должна существовать и быть активной
func resolveServices(ids []int64, found []*domain.Service) ([]domain.SelectedService, error) {
	byID := make(map[int64]*domain.Service, len(found))
	for _, s := range found {
		byID[s.ID] = s
	}

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
