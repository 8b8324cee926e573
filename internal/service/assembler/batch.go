// Package assembler собирает пакет заявок в payload'ы для создания записей.
package assembler

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/service/slotplanner"
)

var (
	// ErrIndexOutOfRange позиция в пакете не существует
	ErrIndexOutOfRange = errors.New("assembler: pending index out of range")

	// ErrEmptyBatch нечего отправлять
	ErrEmptyBatch = errors.New("assembler: batch is empty")
)

// Batch заявки одного оформления, ожидающие отправки
type Batch struct {
	pending []domain.PendingAppointment
}

// NewBatch создаёт пустой пакет
func NewBatch() *Batch {
	return &Batch{pending: make([]domain.PendingAppointment, 0)}
}

// AddPending проверяет заявку и добавляет её в конец пакета
func (b *Batch) AddPending(req domain.BookingRequest) (*domain.PendingAppointment, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	p := domain.PendingAppointment{
		Request:    req,
		TotalPrice: req.TotalPrice(),
	}
	b.pending = append(b.pending, p)
	return &p, nil
}

// RemovePending удаляет заявку по позиции
func (b *Batch) RemovePending(index int) error {
	if index < 0 || index >= len(b.pending) {
		return fmt.Errorf("%w: %d (size %d)", ErrIndexOutOfRange, index, len(b.pending))
	}
	b.pending = append(b.pending[:index], b.pending[index+1:]...)
	return nil
}

// Pending копия заявок в порядке добавления
func (b *Batch) Pending() []domain.PendingAppointment {
	out := make([]domain.PendingAppointment, len(b.pending))
	copy(out, b.pending)
	return out
}

// Len количество заявок в пакете
func (b *Batch) Len() int {
	return len(b.pending)
}

// Finalize строит payload'ы: сначала текущая заявка (если заполнена), затем пакет
// в порядке добавления. Время окончания считается по эффективной длительности
func (b *Batch) Finalize(current *domain.BookingRequest) ([]domain.AppointmentCreatePayload, error) {
	requests := make([]domain.BookingRequest, 0, len(b.pending)+1)
	if current != nil && current.IsComplete() {
		requests = append(requests, *current)
	}
	for _, p := range b.pending {
		requests = append(requests, p.Request)
	}

	if len(requests) == 0 {
		return nil, ErrEmptyBatch
	}

	payloads := make([]domain.AppointmentCreatePayload, 0, len(requests))
	for i, req := range requests {
		duration := slotplanner.ResolveEffectiveDuration(req.Services, req.SlotCount)
		endTime, err := slotplanner.ComputeEndTime(req.StartTime, duration)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}

		payloads = append(payloads, domain.AppointmentCreatePayload{
			CustomerID:   req.CustomerID,
			StaffID:      req.StaffID,
			Date:         req.Date,
			StartTime:    req.StartTime,
			EndTime:      endTime,
			TotalPrice:   req.TotalPrice(),
			Status:       domain.StatusPending,
			ServiceLines: req.ServiceLines(),
		})
	}

	return payloads, nil
}
