package appointments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-SalonBooking/internal/service/appointments/models"
	"github.com/m04kA/SMC-SalonBooking/pkg/events"
)

// Service сервис чтения записей и смены их статуса
type Service struct {
	appointmentRepo AppointmentRepository
	txManager       TransactionManager
	publisher       EventPublisher
	logger          Logger
	now             func() time.Time
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	appointmentRepo AppointmentRepository,
	txManager TransactionManager,
	publisher EventPublisher,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		txManager:       txManager,
		publisher:       publisher,
		logger:          logger,
		now:             time.Now,
	}
}

// GetByID получает запись по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%d", id)

	appt, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetByID: appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByID: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainAppointment(appt), nil
}

// ListByStaff записи мастера на дату
// По умолчанию отменённые и неявки не возвращаются
func (s *Service) ListByStaff(ctx context.Context, req *models.ListByStaffRequest) (*models.AppointmentListResponse, error) {
	if req.StaffID <= 0 || req.Date.IsZero() {
		return nil, fmt.Errorf("%w: staff id and date are required", ErrInvalidInput)
	}

	s.logger.Info("ListByStaff: staff=%d, date=%s, includeInactive=%t",
		req.StaffID, req.Date.Format(domain.DateFormat), req.IncludeInactive)

	list, err := s.appointmentRepo.ListByStaffAndDate(ctx, req.StaffID, req.Date, req.IncludeInactive)
	if err != nil {
		s.logger.Error("ListByStaff: repository error for staff=%d: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: ListByStaff - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainAppointmentList(list), nil
}

// UpdateStatus меняет статус записи
// Допустимые переходы: pending -> in_progress | cancelled | no_show, in_progress -> completed | cancelled
// Параллельная смена статуса той же записи проигрывает с ErrInvalidTransition
func (s *Service) UpdateStatus(ctx context.Context, id int64, req *models.UpdateStatusRequest) (*models.AppointmentResponse, error) {
	next := domain.AppointmentStatus(req.Status)
	if !next.IsValid() {
		s.logger.Warn("UpdateStatus: invalid status=%q for appointment id=%d", req.Status, id)
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, req.Status)
	}

	s.logger.Info("UpdateStatus: appointment id=%d -> %s", id, next)

	var (
		updated *domain.Appointment
		prev    domain.AppointmentStatus
	)

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		appt, err := s.appointmentRepo.GetByID(txCtx, id)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				return ErrAppointmentNotFound
			}
			return fmt.Errorf("%w: UpdateStatus - get appointment: %v", ErrInternal, err)
		}

		if !appt.Status.CanTransitionTo(next) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, appt.Status, next)
		}

		// Переход применяется только к статусу, который был прочитан
		if err := s.appointmentRepo.UpdateStatus(txCtx, id, appt.Status, next); err != nil {
			if errors.Is(err, appointmentRepo.ErrStatusChanged) {
				return fmt.Errorf("%w: %s -> %s: %v", ErrInvalidTransition, appt.Status, next, err)
			}
			return fmt.Errorf("%w: UpdateStatus - update: %v", ErrInternal, err)
		}

		prev = appt.Status
		appt.Status = next
		appt.UpdatedAt = s.now()
		updated = appt
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrAppointmentNotFound):
			s.logger.Warn("UpdateStatus: appointment id=%d not found", id)
		case errors.Is(err, ErrInvalidTransition):
			s.logger.Warn("UpdateStatus: appointment id=%d: %v", id, err)
		default:
			s.logger.Error("UpdateStatus: appointment id=%d failed: %v", id, err)
		}
		return nil, err
	}

	event := events.AppointmentStatusChanged{
		AppointmentID: id,
		From:          string(prev),
		To:            string(next),
		OccurredAt:    s.now().UTC(),
	}
	if err := s.publisher.Publish(ctx, events.SubjectAppointmentStatusChanged, event); err != nil {
		s.logger.Warn("UpdateStatus: failed to publish event for appointment id=%d: %v", id, err)
	}

	s.logger.Info("UpdateStatus: appointment id=%d changed %s -> %s", id, prev, next)
	return models.FromDomainAppointment(updated), nil
}
