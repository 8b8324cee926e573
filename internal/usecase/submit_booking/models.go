package submit_booking

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// Request модель запроса на создание пакета записей
// Первая позиция - текущая заявка, остальные - отложенные в порядке добавления
type Request struct {
	CustomerID int64
	Entries    []Entry
}

// Entry одна запись пакета
type Entry struct {
	StaffID    int64
	Date       time.Time
	StartTime  string  // "H:MM"
	ServiceIDs []int64 // Цены и длительности берутся из каталога
	SlotCount  int     // 0 - длительность по услугам
}

// Response модель ответа
// При частичном сбое FailedIndex указывает на несохранённую позицию,
// NotAttempted - позиции после неё
type Response struct {
	Created       []Appointment
	FailedIndex   *int
	FailureReason string
	NotAttempted  []int
}

// Appointment созданная запись
type Appointment struct {
	ID          int64
	CustomerID  int64
	StaffID     int64
	Date        time.Time
	StartTime   string
	EndTime     string
	Status      string
	TotalAmount float64
	Services    []domain.ServiceLine
	CreatedAt   time.Time
}

func fromDomain(a *domain.Appointment) Appointment {
	return Appointment{
		ID:          a.ID,
		CustomerID:  a.CustomerID,
		StaffID:     a.StaffID,
		Date:        a.Date,
		StartTime:   a.StartTime,
		EndTime:     a.EndTime,
		Status:      string(a.Status),
		TotalAmount: a.TotalAmount,
		Services:    a.Services,
		CreatedAt:   a.CreatedAt,
	}
}
