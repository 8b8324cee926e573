// Package schedule изменение доступности мастеров.
// Любое изменение - полная замена окон дня мастера (DELETE + INSERT в одной транзакции
// под блокировкой дня). После записи индекс доступности собирается заново из хранилища.
package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	catalogRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-SalonBooking/internal/infra/redislock"
	"github.com/m04kA/SMC-SalonBooking/internal/service/availability"
	"github.com/m04kA/SMC-SalonBooking/pkg/events"
	"github.com/m04kA/SMC-SalonBooking/pkg/timegrid"
)

// Операции для логов и событий
const (
	OpSetDay        = "set_day"
	OpToggleSlot    = "toggle_slot"
	OpCopyDay       = "copy_day"
	OpCopyStaff     = "copy_staff"
	OpApplyTemplate = "apply_template"
)

const (
	// WarningEmptySource источник копирования пуст, цель не изменена
	WarningEmptySource = "source day has no availability windows, target left unchanged"
)

// Result состояние дня после операции
type Result struct {
	StaffID        int64
	Date           time.Time
	Windows        []domain.AvailabilityWindow
	AvailableSlots []string
	Index          *availability.Index
	Changed        bool
	Warning        string
}

// Service сервис изменения доступности
type Service struct {
	availabilityRepo AvailabilityRepository
	staffRepo        StaffRepository
	txManager        TransactionManager
	locker           DayLocker
	publisher        EventPublisher
	timeProvider     TimeProvider
	logger           Logger
	maxRangeDays     int
}

// NewService создает новый экземпляр сервиса
func NewService(
	availabilityRepo AvailabilityRepository,
	staffRepo StaffRepository,
	txManager TransactionManager,
	locker DayLocker,
	publisher EventPublisher,
	logger Logger,
	maxRangeDays int,
) *Service {
	return &Service{
		availabilityRepo: availabilityRepo,
		staffRepo:        staffRepo,
		txManager:        txManager,
		locker:           locker,
		publisher:        publisher,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
		maxRangeDays:     maxRangeDays,
	}
}

// replacement вычисляет новый набор окон дня
// write=false - ничего не записывать (warning объясняет почему)
type replacement func(ctx context.Context, current []domain.AvailabilityWindow) (specs []domain.WindowSpec, write bool, warning string, err error)

// SetDay заменяет окна дня окнами на каждый слот с одинаковым флагом
func (s *Service) SetDay(ctx context.Context, staffID int64, date time.Time, available bool) (*Result, error) {
	s.logger.Info("SetDay: staff=%d, date=%s, available=%t", staffID, date.Format(domain.DateFormat), available)

	if err := s.ensureStaff(ctx, staffID); err != nil {
		return nil, err
	}

	return s.replaceDay(ctx, OpSetDay, staffID, date, func(ctx context.Context, _ []domain.AvailabilityWindow) ([]domain.WindowSpec, bool, string, error) {
		return dayWindows(available), true, "", nil
	})
}

// ToggleSlot инвертирует окно, начинающееся в t; если такого окна нет, добавляет доступное окно на один слот
func (s *Service) ToggleSlot(ctx context.Context, staffID int64, date time.Time, t string) (*Result, error) {
	s.logger.Info("ToggleSlot: staff=%d, date=%s, time=%s", staffID, date.Format(domain.DateFormat), t)

	if !timegrid.IsGridTick(t) {
		s.logger.Warn("ToggleSlot: time=%s is not a slot of the day", t)
		return nil, fmt.Errorf("%w: %q", ErrInvalidTime, t)
	}
	slot, _ := timegrid.Normalize(t)

	if err := s.ensureStaff(ctx, staffID); err != nil {
		return nil, err
	}

	return s.replaceDay(ctx, OpToggleSlot, staffID, date, func(ctx context.Context, current []domain.AvailabilityWindow) ([]domain.WindowSpec, bool, string, error) {
		specs := make([]domain.WindowSpec, 0, len(current)+1)
		found := false

		for _, w := range current {
			spec := w.Spec()
			if start, err := timegrid.Normalize(w.StartTime); err == nil && start == slot && !found {
				spec.IsAvailable = !spec.IsAvailable
				found = true
			}
			specs = append(specs, spec)
		}

		if !found {
			end, err := timegrid.AddSlots(slot, 1)
			if err != nil {
				return nil, false, "", err
			}
			specs = append(specs, domain.WindowSpec{StartTime: slot, EndTime: end, IsAvailable: true})
		}

		return specs, true, "", nil
	})
}

// CopyDay копирует окна мастера с sourceDate на targetDate
// Пустой источник не стирает цель: операция пропускается с предупреждением
func (s *Service) CopyDay(ctx context.Context, staffID int64, sourceDate, targetDate time.Time) (*Result, error) {
	s.logger.Info("CopyDay: staff=%d, source=%s, target=%s",
		staffID, sourceDate.Format(domain.DateFormat), targetDate.Format(domain.DateFormat))

	if domain.SameDate(sourceDate, targetDate) {
		return nil, fmt.Errorf("%w: source and target dates are equal", ErrInvalidInput)
	}
	if err := s.ensureStaff(ctx, staffID); err != nil {
		return nil, err
	}

	return s.replaceDay(ctx, OpCopyDay, staffID, targetDate, s.copyFrom(staffID, sourceDate))
}

// CopyStaff копирует окна sourceStaffID на targetStaffID за одну дату
func (s *Service) CopyStaff(ctx context.Context, sourceStaffID, targetStaffID int64, date time.Time) (*Result, error) {
	s.logger.Info("CopyStaff: source=%d, target=%d, date=%s", sourceStaffID, targetStaffID, date.Format(domain.DateFormat))

	if sourceStaffID == targetStaffID {
		return nil, fmt.Errorf("%w: source and target staff are equal", ErrInvalidInput)
	}
	if err := s.ensureStaff(ctx, sourceStaffID); err != nil {
		return nil, err
	}
	if err := s.ensureStaff(ctx, targetStaffID); err != nil {
		return nil, err
	}

	return s.replaceDay(ctx, OpCopyStaff, targetStaffID, date, s.copyFrom(sourceStaffID, date))
}

// ApplyTemplate заменяет окна дня доступными окнами шаблона
// Слоты вне шаблона остаются без окон
func (s *Service) ApplyTemplate(ctx context.Context, staffID int64, date time.Time, templateID string) (*Result, error) {
	s.logger.Info("ApplyTemplate: staff=%d, date=%s, template=%s", staffID, date.Format(domain.DateFormat), templateID)

	tmpl, ok := LookupTemplate(templateID)
	if !ok {
		s.logger.Warn("ApplyTemplate: unknown template=%s", templateID)
		return nil, fmt.Errorf("%w: %q", ErrUnknownTemplate, templateID)
	}
	if err := s.ensureStaff(ctx, staffID); err != nil {
		return nil, err
	}

	return s.replaceDay(ctx, OpApplyTemplate, staffID, date, func(ctx context.Context, _ []domain.AvailabilityWindow) ([]domain.WindowSpec, bool, string, error) {
		return tmpl.Windows(), true, "", nil
	})
}

// ApplyTemplateRange применяет шаблон к каждой дате диапазона [from, to]
// Каждая дата - отдельная замена; при ошибке уже обработанные даты остаются изменёнными
func (s *Service) ApplyTemplateRange(ctx context.Context, staffID int64, from, to time.Time, templateID string) ([]*Result, error) {
	from, to = domain.DateOnly(from), domain.DateOnly(to)
	s.logger.Info("ApplyTemplateRange: staff=%d, from=%s, to=%s, template=%s",
		staffID, from.Format(domain.DateFormat), to.Format(domain.DateFormat), templateID)

	if to.Before(from) {
		return nil, fmt.Errorf("%w: range end is before start", ErrInvalidInput)
	}
	days := int(to.Sub(from).Hours()/24) + 1
	if s.maxRangeDays > 0 && days > s.maxRangeDays {
		s.logger.Warn("ApplyTemplateRange: %d days requested, limit %d", days, s.maxRangeDays)
		return nil, fmt.Errorf("%w: %d days, limit %d", ErrRangeTooLong, days, s.maxRangeDays)
	}
	if _, ok := LookupTemplate(templateID); !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTemplate, templateID)
	}

	results := make([]*Result, 0, days)
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		res, err := s.ApplyTemplate(ctx, staffID, d, templateID)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}

// LoadDay собирает индекс по текущим окнам дня мастера
func (s *Service) LoadDay(ctx context.Context, staffID int64, date time.Time) (*Result, error) {
	windows, err := s.fetchDay(ctx, staffID, date)
	if err != nil {
		s.logger.Error("LoadDay: failed to fetch windows staff=%d: %v", staffID, err)
		return nil, fmt.Errorf("%w: LoadDay - fetch windows: %v", ErrInternal, err)
	}

	idx := availability.NewIndex(windows)
	return &Result{
		StaffID:        staffID,
		Date:           domain.DateOnly(date),
		Windows:        idx.Windows(staffID, date),
		AvailableSlots: idx.ListAvailableSlots(staffID, date),
		Index:          idx,
	}, nil
}

func (s *Service) copyFrom(sourceStaffID int64, sourceDate time.Time) replacement {
	return func(ctx context.Context, _ []domain.AvailabilityWindow) ([]domain.WindowSpec, bool, string, error) {
		source, err := s.fetchDay(ctx, sourceStaffID, sourceDate)
		if err != nil {
			return nil, false, "", err
		}
		if len(source) == 0 {
			return nil, false, WarningEmptySource, nil
		}

		specs := make([]domain.WindowSpec, 0, len(source))
		for _, w := range source {
			specs = append(specs, w.Spec())
		}
		return specs, true, "", nil
	}
}

// replaceDay выполняет замену окон дня под блокировкой и в транзакции,
// затем перечитывает день из хранилища
func (s *Service) replaceDay(ctx context.Context, op string, staffID int64, date time.Time, compute replacement) (*Result, error) {
	date = domain.DateOnly(date)

	var (
		written bool
		warning string
		count   int
	)

	err := s.locker.WithDayLock(ctx, staffID, date, func(lockCtx context.Context) error {
		return s.txManager.Do(lockCtx, func(txCtx context.Context) error {
			current, err := s.fetchDay(txCtx, staffID, date)
			if err != nil {
				return fmt.Errorf("%w: %s - fetch current windows: %v", ErrInternal, op, err)
			}

			specs, write, warn, err := compute(txCtx, current)
			if err != nil {
				return fmt.Errorf("%w: %s - compute windows: %v", ErrInternal, op, err)
			}
			if !write {
				warning = warn
				return nil
			}

			if err := s.availabilityRepo.Replace(txCtx, staffID, date, specs); err != nil {
				return fmt.Errorf("%w: %s - replace windows: %v", ErrInternal, op, err)
			}

			written = true
			count = len(specs)
			return nil
		})
	})
	if err != nil {
		if errors.Is(err, redislock.ErrLockNotAcquired) {
			s.logger.Warn("%s: day staff=%d date=%s is locked", op, staffID, date.Format(domain.DateFormat))
			return nil, ErrDayLocked
		}
		s.logger.Error("%s: staff=%d date=%s failed: %v", op, staffID, date.Format(domain.DateFormat), err)
		if errors.Is(err, ErrInternal) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrInternal, op, err)
	}

	if warning != "" {
		s.logger.Warn("%s: staff=%d date=%s: %s", op, staffID, date.Format(domain.DateFormat), warning)
	}

	result, err := s.LoadDay(ctx, staffID, date)
	if err != nil {
		return nil, err
	}
	result.Changed = written
	result.Warning = warning

	if written {
		s.logger.Info("%s: staff=%d date=%s replaced with %d windows, %d slots available",
			op, staffID, date.Format(domain.DateFormat), count, len(result.AvailableSlots))
		s.publish(ctx, op, result, count)
	}

	return result, nil
}

func (s *Service) publish(ctx context.Context, op string, result *Result, count int) {
	event := events.AvailabilityReplaced{
		StaffID:        result.StaffID,
		Date:           result.Date.Format(domain.DateFormat),
		Operation:      op,
		WindowCount:    count,
		AvailableSlots: len(result.AvailableSlots),
		OccurredAt:     s.timeProvider.Now().UTC(),
	}
	if err := s.publisher.Publish(ctx, events.SubjectAvailabilityReplaced, event); err != nil {
		s.logger.Warn("%s: failed to publish event: %v", op, err)
	}
}

func (s *Service) fetchDay(ctx context.Context, staffID int64, date time.Time) ([]domain.AvailabilityWindow, error) {
	return s.availabilityRepo.Fetch(ctx, domain.AvailabilityFilter{
		From:     domain.DateOnly(date),
		To:       domain.DateOnly(date),
		StaffIDs: []int64{staffID},
	})
}

func (s *Service) ensureStaff(ctx context.Context, staffID int64) error {
	if staffID <= 0 {
		return fmt.Errorf("%w: staff id must be positive", ErrInvalidInput)
	}

	if _, err := s.staffRepo.GetStaff(ctx, staffID); err != nil {
		if errors.Is(err, catalogRepo.ErrStaffNotFound) {
			s.logger.Warn("staff id=%d not found", staffID)
			return ErrStaffNotFound
		}
		s.logger.Error("failed to get staff id=%d: %v", staffID, err)
		return fmt.Errorf("%w: failed to get staff: %v", ErrInternal, err)
	}
	return nil
}
