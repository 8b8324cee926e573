package plan_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/service/availability"
	"github.com/m04kA/SMC-SalonBooking/internal/service/slotplanner"
	"github.com/m04kA/SMC-SalonBooking/pkg/timegrid"
)

// Причины, по которым запись не помещается
const (
	ReasonSlotUnavailable = "start slot is not available"
	ReasonNotContiguous   = "not enough consecutive slots"
	ReasonPastMidnight    = "appointment ends after midnight"
)

// UseCase use case проверки записи без сохранения
type UseCase struct {
	availabilityRepo AvailabilityRepository
	serviceRepo      ServiceRepository
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(availabilityRepo AvailabilityRepository, serviceRepo ServiceRepository, logger Logger) *UseCase {
	return &UseCase{
		availabilityRepo: availabilityRepo,
		serviceRepo:      serviceRepo,
		logger:           logger,
	}
}

// Execute выполняет use case
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("PlanBooking: staff=%d, date=%s, start=%s, services=%v, slots=%d",
		req.StaffID, req.Date.Format(domain.DateFormat), req.StartTime, req.ServiceIDs, req.SlotCount)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("PlanBooking: validation failed: %v", err)
		return nil, err
	}
	date := domain.DateOnly(req.Date)
	start, _ := timegrid.Normalize(req.StartTime)

	// 2. Услуги из каталога
	found, err := uc.serviceRepo.GetServicesByIDs(ctx, req.ServiceIDs)
	if err != nil {
		uc.logger.Error("PlanBooking: failed to get services: %v", err)
		return nil, fmt.Errorf("%w: failed to get services: %v", ErrInternal, err)
	}
	services, err := resolveServices(req.ServiceIDs, found)
	if err != nil {
		uc.logger.Warn("PlanBooking: %v", err)
		return nil, err
	}

	// 3. Индекс доступности мастера на дату
	windows, err := uc.availabilityRepo.Fetch(ctx, domain.AvailabilityFilter{
		From:     date,
		To:       date,
		StaffIDs: []int64{req.StaffID},
	})
	if err != nil {
		uc.logger.Error("PlanBooking: failed to fetch windows: %v", err)
		return nil, fmt.Errorf("%w: failed to fetch windows: %v", ErrInternal, err)
	}
	idx := availability.NewIndex(windows)

	// 4. Проверка
	duration := slotplanner.ResolveEffectiveDuration(services, req.SlotCount)
	slots := idx.ListAvailableSlots(req.StaffID, date)

	resp := &Response{
		StaffID:         req.StaffID,
		Date:            date,
		StartTime:       start,
		DurationMinutes: duration,
		RequiredSlots:   slotplanner.RequiredSlots(duration),
		MaxSlots:        slotplanner.MaxConsecutiveDuration(start, slots),
		AvailableSlots:  slots,
		DurationDisplay: timegrid.FormatDuration(slotplanner.RequiredSlots(duration)),
	}
	for _, s := range services {
		resp.TotalPrice += s.Price
	}
	resp.StartDisplay, _ = timegrid.FormatForDisplay(start)

	plan, err := slotplanner.Check(idx, req.StaffID, date, start, duration)
	switch {
	case err == nil:
		resp.Fits = true
		resp.EndTime = plan.EndTime
	case errors.Is(err, slotplanner.ErrSlotUnavailable):
		resp.Reason = ReasonSlotUnavailable
	case errors.Is(err, slotplanner.ErrNotContiguous):
		resp.Reason = ReasonNotContiguous
	case errors.Is(err, timegrid.ErrDayRollover):
		resp.Reason = ReasonPastMidnight
	default:
		uc.logger.Error("PlanBooking: planner failed: %v", err)
		return nil, fmt.Errorf("%w: planner failed: %v", ErrInternal, err)
	}

	if resp.EndTime == "" {
		if end, err := slotplanner.ComputeEndTime(start, duration); err == nil {
			resp.EndTime = end
		}
	}
	if resp.EndTime != "" {
		resp.EndDisplay, _ = timegrid.FormatForDisplay(resp.EndTime)
	}

	uc.logger.Info("PlanBooking: staff=%d, start=%s, duration=%d, fits=%t, maxSlots=%d",
		req.StaffID, start, duration, resp.Fits, resp.MaxSlots)
	return resp, nil
}
