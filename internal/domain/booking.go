package domain

import (
	"errors"
	"strings"
	"time"
)

var (
	// ErrNoServices в заявке не выбрано ни одной услуги
	ErrNoServices = errors.New("domain: no services selected")

	// ErrNoStaff в заявке не выбран мастер
	ErrNoStaff = errors.New("domain: no staff selected")

	// ErrNoTime в заявке не выбрано время
	ErrNoTime = errors.New("domain: no time selected")

	// ErrNoDate в заявке не выбрана дата
	ErrNoDate = errors.New("domain: no date selected")
)

// SelectedService услуга, выбранная в заявке
type SelectedService struct {
	ServiceID       int64
	Name            string
	Price           float64
	DurationMinutes int
}

// BookingRequest незавершённая заявка клиента
// SlotCount - явно выбранное количество слотов (0 - не выбрано)
type BookingRequest struct {
	CustomerID int64
	StaffID    int64
	Date       time.Time
	StartTime  string
	Services   []SelectedService
	SlotCount  int
}

// Validate проверяет, что заявка заполнена
func (r *BookingRequest) Validate() error {
	if len(r.Services) == 0 {
		return ErrNoServices
	}
	if r.StaffID <= 0 {
		return ErrNoStaff
	}
	if r.Date.IsZero() {
		return ErrNoDate
	}
	if strings.TrimSpace(r.StartTime) == "" {
		return ErrNoTime
	}
	return nil
}

// IsComplete returns true if Validate passes
func (r *BookingRequest) IsComplete() bool {
	return r.Validate() == nil
}

// TotalPrice сумма цен выбранных услуг
func (r *BookingRequest) TotalPrice() float64 {
	var total float64
	for _, s := range r.Services {
		total += s.Price
	}
	return total
}

// ServiceMinutes суммарная длительность выбранных услуг
func (r *BookingRequest) ServiceMinutes() int {
	total := 0
	for _, s := range r.Services {
		total += s.DurationMinutes
	}
	return total
}

// ServiceLines позиции для записи в customer_services
func (r *BookingRequest) ServiceLines() []ServiceLine {
	lines := make([]ServiceLine, 0, len(r.Services))
	for _, s := range r.Services {
		lines = append(lines, ServiceLine{
			ServiceID:       s.ServiceID,
			Name:            s.Name,
			Price:           s.Price,
			DurationMinutes: s.DurationMinutes,
		})
	}
	return lines
}

// PendingAppointment заявка, добавленная в пакет до отправки
type PendingAppointment struct {
	Request    BookingRequest
	TotalPrice float64
}
