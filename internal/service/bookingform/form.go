// Package bookingform конечный автомат формы записи:
// Empty -> StaffChosen -> TimeChosen -> DurationChosen -> Queued | Submitted.
// Каждый переход проверяется по индексу доступности.
package bookingform

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/service/slotplanner"
	"github.com/m04kA/SMC-SalonBooking/pkg/timegrid"
)

// State состояние формы
type State string

const (
	StateEmpty          State = "empty"
	StateStaffChosen    State = "staff_chosen"
	StateTimeChosen     State = "time_chosen"
	StateDurationChosen State = "duration_chosen"
	StateQueued         State = "queued"
	StateSubmitted      State = "submitted"
)

// ErrInvalidTransition переход недопустим из текущего состояния
var ErrInvalidTransition = errors.New("bookingform: invalid transition")

// Form форма записи одного клиента к одному мастеру
type Form struct {
	view slotplanner.AvailabilityView

	state      State
	customerID int64
	services   []domain.SelectedService
	staffID    int64
	date       time.Time
	startTime  string
	slotCount  int
}

// New создаёт пустую форму
func New(view slotplanner.AvailabilityView, customerID int64) *Form {
	return &Form{
		view:       view,
		state:      StateEmpty,
		customerID: customerID,
	}
}

// State текущее состояние
func (f *Form) State() State {
	return f.state
}

// ChooseServices задаёт услуги. Если время уже выбрано, длительность пересчитывается
// и должна помещаться в доступные слоты
func (f *Form) ChooseServices(services []domain.SelectedService) error {
	if f.isFinal() {
		return fmt.Errorf("%w: choose services in state %s", ErrInvalidTransition, f.state)
	}

	prev := f.services
	f.services = append([]domain.SelectedService(nil), services...)

	if f.startTime != "" {
		if _, err := f.plan(); err != nil {
			f.services = prev
			return err
		}
	}
	return nil
}

// ChooseStaff выбирает мастера и дату, сбрасывая выбранное время
func (f *Form) ChooseStaff(staffID int64, date time.Time) error {
	if f.isFinal() {
		return fmt.Errorf("%w: choose staff in state %s", ErrInvalidTransition, f.state)
	}
	if staffID <= 0 {
		return domain.ErrNoStaff
	}
	if date.IsZero() {
		return domain.ErrNoDate
	}

	f.staffID = staffID
	f.date = date
	f.startTime = ""
	f.slotCount = 0
	f.state = StateStaffChosen
	return nil
}

// ChooseTime выбирает время начала; весь интервал услуг должен быть доступен
func (f *Form) ChooseTime(t string) error {
	switch f.state {
	case StateStaffChosen, StateTimeChosen, StateDurationChosen:
	default:
		return fmt.Errorf("%w: choose time in state %s", ErrInvalidTransition, f.state)
	}

	start, err := timegrid.Normalize(t)
	if err != nil {
		return err
	}

	prevStart, prevCount := f.startTime, f.slotCount
	f.startTime = start
	f.slotCount = 0

	if _, err := f.plan(); err != nil {
		f.startTime, f.slotCount = prevStart, prevCount
		return err
	}

	f.state = StateTimeChosen
	return nil
}

// ClearTime сбрасывает выбор времени
func (f *Form) ClearTime() error {
	switch f.state {
	case StateTimeChosen, StateDurationChosen:
	default:
		return fmt.Errorf("%w: clear time in state %s", ErrInvalidTransition, f.state)
	}
	f.startTime = ""
	f.slotCount = 0
	f.state = StateStaffChosen
	return nil
}

// ChooseDuration явно задаёт количество слотов
// Меньшее, чем длятся услуги, значение допустимо: длительность берётся по услугам
// Больше MaxSlots выбрать нельзя
func (f *Form) ChooseDuration(slots int) error {
	switch f.state {
	case StateTimeChosen, StateDurationChosen:
	default:
		return fmt.Errorf("%w: choose duration in state %s", ErrInvalidTransition, f.state)
	}
	if slots <= 0 {
		return slotplanner.ErrInvalidDuration
	}

	if limit := f.MaxSlots(); slots > limit {
		return fmt.Errorf("%w: %d slots requested, %d available", slotplanner.ErrNotContiguous, slots, limit)
	}

	f.slotCount = slots
	f.state = StateDurationChosen
	return nil
}

// MaxSlots максимальное количество слотов подряд от выбранного времени
func (f *Form) MaxSlots() int {
	if f.startTime == "" {
		return 0
	}
	return slotplanner.MaxConsecutiveDuration(f.startTime, f.view.ListAvailableSlots(f.staffID, f.date))
}

// Request текущая заявка
func (f *Form) Request() domain.BookingRequest {
	return domain.BookingRequest{
		CustomerID: f.customerID,
		StaffID:    f.staffID,
		Date:       f.date,
		StartTime:  f.startTime,
		Services:   append([]domain.SelectedService(nil), f.services...),
		SlotCount:  f.slotCount,
	}
}

// Queue откладывает заявку в пакет
func (f *Form) Queue() (domain.BookingRequest, error) {
	return f.finish(StateQueued)
}

// Submit завершает форму для немедленной отправки
func (f *Form) Submit() (domain.BookingRequest, error) {
	return f.finish(StateSubmitted)
}

// Reset возвращает форму в начальное состояние
func (f *Form) Reset() {
	*f = Form{view: f.view, state: StateEmpty, customerID: f.customerID}
}

func (f *Form) finish(next State) (domain.BookingRequest, error) {
	switch f.state {
	case StateTimeChosen, StateDurationChosen:
	default:
		return domain.BookingRequest{}, fmt.Errorf("%w: %s from state %s", ErrInvalidTransition, next, f.state)
	}

	req := f.Request()
	if err := req.Validate(); err != nil {
		return domain.BookingRequest{}, err
	}
	if _, err := f.plan(); err != nil {
		return domain.BookingRequest{}, err
	}

	f.state = next
	return req, nil
}

func (f *Form) plan() (*slotplanner.Plan, error) {
	duration := slotplanner.ResolveEffectiveDuration(f.services, f.slotCount)
	return slotplanner.Check(f.view, f.staffID, f.date, f.startTime, duration)
}

func (f *Form) isFinal() bool {
	return f.state == StateQueued || f.state == StateSubmitted
}
