package domain

import "time"

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusPending    AppointmentStatus = "pending"
	StatusInProgress AppointmentStatus = "in_progress"
	StatusCompleted  AppointmentStatus = "completed"
	StatusCancelled  AppointmentStatus = "cancelled"
	StatusNoShow     AppointmentStatus = "no_show"
)

// IsValid returns true if the status is known
func (s AppointmentStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

// CanTransitionTo returns true if the status may change to next
func (s AppointmentStatus) CanTransitionTo(next AppointmentStatus) bool {
	switch s {
	case StatusPending:
		return next == StatusInProgress || next == StatusCancelled || next == StatusNoShow
	case StatusInProgress:
		return next == StatusCompleted || next == StatusCancelled
	default:
		return false
	}
}

// ServiceLine позиция записи (строка customer_services)
type ServiceLine struct {
	ServiceID       int64
	Name            string
	Price           float64
	DurationMinutes int
}

// Appointment represents a persisted appointment
type Appointment struct {
	ID          int64
	CustomerID  int64
	StaffID     int64
	Date        time.Time
	StartTime   string // "H:MM"
	EndTime     string // "H:MM"
	Status      AppointmentStatus
	TotalAmount float64
	Services    []ServiceLine
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsActive returns true if the appointment occupies staff time
func (a *Appointment) IsActive() bool {
	return a.Status != StatusCancelled && a.Status != StatusNoShow
}

// AppointmentCreatePayload данные для создания записи
type AppointmentCreatePayload struct {
	CustomerID   int64
	StaffID      int64
	Date         time.Time
	StartTime    string
	EndTime      string
	TotalPrice   float64
	Status       AppointmentStatus
	ServiceLines []ServiceLine
}
