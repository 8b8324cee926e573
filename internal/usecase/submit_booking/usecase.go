package submit_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/infra/redislock"
	catalogRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-SalonBooking/internal/service/assembler"
	"github.com/m04kA/SMC-SalonBooking/internal/service/availability"
	"github.com/m04kA/SMC-SalonBooking/internal/service/bookingform"
	"github.com/m04kA/SMC-SalonBooking/internal/service/slotplanner"
	"github.com/m04kA/SMC-SalonBooking/pkg/events"
	"github.com/m04kA/SMC-SalonBooking/pkg/timegrid"
)

// UseCase use case создания пакета записей
type UseCase struct {
	availabilityRepo AvailabilityRepository
	appointmentRepo  AppointmentRepository
	catalogRepo      CatalogRepository
	txManager        TransactionManager
	locker           DayLocker
	publisher        EventPublisher
	timeProvider     TimeProvider
	logger           Logger
	maxBatchSize     int
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	availabilityRepo AvailabilityRepository,
	appointmentRepo AppointmentRepository,
	catalogRepo CatalogRepository,
	txManager TransactionManager,
	locker DayLocker,
	publisher EventPublisher,
	logger Logger,
	maxBatchSize int,
) *UseCase {
	if maxBatchSize <= 0 {
		maxBatchSize = domain.MaxBatchSize
	}
	return &UseCase{
		availabilityRepo: availabilityRepo,
		appointmentRepo:  appointmentRepo,
		catalogRepo:      catalogRepo,
		txManager:        txManager,
		locker:           locker,
		publisher:        publisher,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
		maxBatchSize:     maxBatchSize,
	}
}

// Execute выполняет use case
//
// Все позиции проверяются до первой записи в хранилище. Затем позиции сохраняются
// последовательно, каждая в своей транзакции под блокировкой дня мастера.
// При сбое уже сохранённые позиции остаются, ответ содержит FailedIndex и NotAttempted.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("SubmitBooking: customer=%d, entries=%d", req.CustomerID, len(req.Entries))

	// 1. Валидация входных данных
	if err := validateRequest(req, uc.maxBatchSize); err != nil {
		uc.logger.Warn("SubmitBooking: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()
	for i, e := range req.Entries {
		if err := validateDate(e.Date, now); err != nil {
			uc.logger.Warn("SubmitBooking: entry %d: %v", i, err)
			return nil, entryError(i, err)
		}
	}

	// 2. Клиент, мастера и услуги
	if err := uc.checkCustomer(ctx, req.CustomerID); err != nil {
		return nil, err
	}
	if err := uc.checkStaff(ctx, req.Entries); err != nil {
		return nil, err
	}
	services, err := uc.loadServices(ctx, req.Entries)
	if err != nil {
		return nil, err
	}

	// 3. Индекс доступности на все даты пакета
	idx, err := uc.buildIndex(ctx, req.Entries)
	if err != nil {
		return nil, err
	}

	// 4. Каждая позиция проходит через форму записи и попадает в пакет
	payloads, err := uc.assemble(req, services, idx)
	if err != nil {
		uc.logger.Warn("SubmitBooking: batch rejected: %v", err)
		return nil, err
	}

	// 5. Позиции пакета не должны пересекаться между собой
	if err := checkBatchOverlap(payloads); err != nil {
		uc.logger.Warn("SubmitBooking: %v", err)
		return nil, err
	}

	// 6. Последовательное сохранение
	resp := &Response{Created: make([]Appointment, 0, len(payloads))}
	for i := range payloads {
		created, err := uc.persist(ctx, &payloads[i])
		if err != nil {
			failed := i
			resp.FailedIndex = &failed
			resp.FailureReason = err.Error()
			resp.NotAttempted = make([]int, 0, len(payloads)-i-1)
			for j := i + 1; j < len(payloads); j++ {
				resp.NotAttempted = append(resp.NotAttempted, j)
			}

			uc.logger.Warn("SubmitBooking: entry %d failed after %d created: %v", i, len(resp.Created), err)
			return resp, entryError(i, fmt.Errorf("%w: %w", ErrPartialFailure, err))
		}

		resp.Created = append(resp.Created, fromDomain(created))
		uc.publishCreated(ctx, created)
	}

	uc.logger.Info("SubmitBooking: customer=%d, created %d appointments", req.CustomerID, len(resp.Created))
	return resp, nil
}

func (uc *UseCase) checkCustomer(ctx context.Context, customerID int64) error {
	if _, err := uc.catalogRepo.GetCustomer(ctx, customerID); err != nil {
		if errors.Is(err, catalogRepo.ErrCustomerNotFound) {
			uc.logger.Warn("SubmitBooking: customer id=%d not found", customerID)
			return ErrCustomerNotFound
		}
		uc.logger.Error("SubmitBooking: failed to get customer id=%d: %v", customerID, err)
		return fmt.Errorf("%w: failed to get customer: %v", ErrInternal, err)
	}
	return nil
}

func (uc *UseCase) checkStaff(ctx context.Context, entries []Entry) error {
	ids := make([]int64, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.StaffID)
	}

	for _, id := range uniqueIDs(ids) {
		staff, err := uc.catalogRepo.GetStaff(ctx, id)
		if err != nil {
			if errors.Is(err, catalogRepo.ErrStaffNotFound) {
				uc.logger.Warn("SubmitBooking: staff id=%d not found", id)
				return fmt.Errorf("%w: id=%d", ErrStaffNotFound, id)
			}
			uc.logger.Error("SubmitBooking: failed to get staff id=%d: %v", id, err)
			return fmt.Errorf("%w: failed to get staff: %v", ErrInternal, err)
		}
		if !staff.IsActive {
			uc.logger.Warn("SubmitBooking: staff id=%d is inactive", id)
			return fmt.Errorf("%w: id=%d is inactive", ErrStaffNotFound, id)
		}
	}
	return nil
}

func (uc *UseCase) loadServices(ctx context.Context, entries []Entry) (map[int64]*domain.Service, error) {
	ids := make([]int64, 0)
	for _, e := range entries {
		ids = append(ids, e.ServiceIDs...)
	}

	found, err := uc.catalogRepo.GetServicesByIDs(ctx, uniqueIDs(ids))
	if err != nil {
		uc.logger.Error("SubmitBooking: failed to get services: %v", err)
		return nil, fmt.Errorf("%w: failed to get services: %v", ErrInternal, err)
	}

	byID := make(map[int64]*domain.Service, len(found))
	for _, s := range found {
		byID[s.ID] = s
	}
	return byID, nil
}

func (uc *UseCase) buildIndex(ctx context.Context, entries []Entry) (*availability.Index, error) {
	from, to := domain.DateOnly(entries[0].Date), domain.DateOnly(entries[0].Date)
	staffIDs := make([]int64, 0, len(entries))
	for _, e := range entries {
		d := domain.DateOnly(e.Date)
		if d.Before(from) {
			from = d
		}
		if d.After(to) {
			to = d
		}
		staffIDs = append(staffIDs, e.StaffID)
	}

	windows, err := uc.availabilityRepo.Fetch(ctx, domain.AvailabilityFilter{
		From:     from,
		To:       to,
		StaffIDs: uniqueIDs(staffIDs),
	})
	if err != nil {
		uc.logger.Error("SubmitBooking: failed to fetch windows: %v", err)
		return nil, fmt.Errorf("%w: failed to fetch windows: %v", ErrInternal, err)
	}

	return availability.NewIndex(windows), nil
}

// assemble прогоняет позиции через форму записи: первая - текущая заявка, остальные - в пакет
func (uc *UseCase) assemble(req *Request, services map[int64]*domain.Service, idx *availability.Index) ([]domain.AppointmentCreatePayload, error) {
	batch := assembler.NewBatch()
	var current *domain.BookingRequest

	for i, e := range req.Entries {
		selected, err := resolveServices(e.ServiceIDs, services)
		if err != nil {
			return nil, entryError(i, err)
		}

		form := bookingform.New(idx, req.CustomerID)
		br, err := fillForm(form, e, selected, i == 0)
		if err != nil {
			return nil, entryError(i, classifyFormError(err))
		}

		if i == 0 {
			current = &br
			continue
		}
		if _, err := batch.AddPending(br); err != nil {
			return nil, entryError(i, fmt.Errorf("%w: %v", ErrInvalidInput, err))
		}
	}

	payloads, err := batch.Finalize(current)
	if err != nil {
		return nil, fmt.Errorf("%w: finalize batch: %v", ErrInvalidInput, err)
	}
	return payloads, nil
}

func fillForm(form *bookingform.Form, e Entry, services []domain.SelectedService, submit bool) (domain.BookingRequest, error) {
	if err := form.ChooseServices(services); err != nil {
		return domain.BookingRequest{}, err
	}
	if err := form.ChooseStaff(e.StaffID, domain.DateOnly(e.Date)); err != nil {
		return domain.BookingRequest{}, err
	}
	if err := form.ChooseTime(e.StartTime); err != nil {
		return domain.BookingRequest{}, err
	}
	if e.SlotCount > 0 {
		if err := form.ChooseDuration(e.SlotCount); err != nil {
			return domain.BookingRequest{}, err
		}
	}

	if submit {
		return form.Submit()
	}
	return form.Queue()
}

func classifyFormError(err error) error {
	switch {
	case errors.Is(err, slotplanner.ErrSlotUnavailable),
		errors.Is(err, slotplanner.ErrNotContiguous):
		return fmt.Errorf("%w: %v", ErrSlotNotAvailable, err)
	default:
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
}

// persist сохраняет одну позицию: под блокировкой дня мастера, в serializable транзакции,
// с повторной проверкой окон и пересечений с активными записями
func (uc *UseCase) persist(ctx context.Context, payload *domain.AppointmentCreatePayload) (*domain.Appointment, error) {
	var created *domain.Appointment

	err := uc.locker.WithDayLock(ctx, payload.StaffID, payload.Date, func(lockCtx context.Context) error {
		return uc.txManager.DoSerializable(lockCtx, func(txCtx context.Context) error {
			windows, err := uc.availabilityRepo.Fetch(txCtx, domain.AvailabilityFilter{
				From:     payload.Date,
				To:       payload.Date,
				StaffIDs: []int64{payload.StaffID},
			})
			if err != nil {
				return fmt.Errorf("%w: failed to fetch windows: %v", ErrInternal, err)
			}

			duration := minutesBetween(payload.StartTime, payload.EndTime)
			if _, err := slotplanner.Check(availability.NewIndex(windows), payload.StaffID, payload.Date, payload.StartTime, duration); err != nil {
				return fmt.Errorf("%w: %v", ErrSlotNotAvailable, err)
			}

			existing, err := uc.appointmentRepo.ListByStaffAndDate(txCtx, payload.StaffID, payload.Date, false)
			if err != nil {
				return fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
			}

			conflict, err := findConflict(payload, existing)
			if err != nil {
				return fmt.Errorf("%w: failed to compare appointments: %v", ErrInternal, err)
			}
			if conflict != nil {
				return fmt.Errorf("%w: overlaps appointment id=%d %s-%s",
					ErrSlotTaken, conflict.ID, conflict.StartTime, conflict.EndTime)
			}

			appt, err := uc.appointmentRepo.Create(txCtx, payload)
			if err != nil {
				return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
			}

			created = appt
			return nil
		})
	})
	if err != nil {
		if errors.Is(err, redislock.ErrLockNotAcquired) {
			return nil, ErrDayLocked
		}
		if errors.Is(err, ErrSlotTaken) || errors.Is(err, ErrSlotNotAvailable) || errors.Is(err, ErrInternal) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	return created, nil
}

func (uc *UseCase) publishCreated(ctx context.Context, appt *domain.Appointment) {
	event := events.AppointmentCreated{
		AppointmentID: appt.ID,
		CustomerID:    appt.CustomerID,
		StaffID:       appt.StaffID,
		Date:          appt.Date.Format(domain.DateFormat),
		StartTime:     appt.StartTime,
		EndTime:       appt.EndTime,
		TotalAmount:   appt.TotalAmount,
		OccurredAt:    uc.timeProvider.Now().UTC(),
	}
	if err := uc.publisher.Publish(ctx, events.SubjectAppointmentCreated, event); err != nil {
		uc.logger.Warn("SubmitBooking: failed to publish event for appointment id=%d: %v", appt.ID, err)
	}
}

func minutesBetween(start, end string) int {
	s, err := timegrid.ToMinutes(start)
	if err != nil {
		return 0
	}
	e, err := timegrid.ToMinutes(end)
	if err != nil {
		return 0
	}
	return e - s
}
