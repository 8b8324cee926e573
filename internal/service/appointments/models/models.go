package models

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// Request модели

// ListByStaffRequest запрос записей мастера на дату
type ListByStaffRequest struct {
	StaffID         int64
	Date            time.Time
	IncludeInactive bool
}

// UpdateStatusRequest запрос на смену статуса
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// Response модели

// ServiceLineResponse позиция записи
type ServiceLineResponse struct {
	ServiceID       int64   `json:"serviceId"`
	Name            string  `json:"name"`
	Price           float64 `json:"price"`
	DurationMinutes int     `json:"durationMinutes"`
}

// AppointmentResponse ответ с данными записи
type AppointmentResponse struct {
	ID          int64                 `json:"id"`
	CustomerID  int64                 `json:"customerId"`
	StaffID     int64                 `json:"staffId"`
	Date        string                `json:"date"`      // "2025-10-15"
	StartTime   string                `json:"startTime"` // "9:00"
	EndTime     string                `json:"endTime"`
	Status      string                `json:"status"`
	TotalAmount float64               `json:"totalAmount"`
	Services    []ServiceLineResponse `json:"services"`
	CreatedAt   string                `json:"createdAt"`
	UpdatedAt   string                `json:"updatedAt"`
}

// AppointmentListResponse список записей
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}

// FromDomainAppointment конвертирует доменную запись в ответ
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	services := make([]ServiceLineResponse, 0, len(a.Services))
	for _, line := range a.Services {
		services = append(services, ServiceLineResponse{
			ServiceID:       line.ServiceID,
			Name:            line.Name,
			Price:           line.Price,
			DurationMinutes: line.DurationMinutes,
		})
	}

	return &AppointmentResponse{
		ID:          a.ID,
		CustomerID:  a.CustomerID,
		StaffID:     a.StaffID,
		Date:        a.Date.Format(domain.DateFormat),
		StartTime:   a.StartTime,
		EndTime:     a.EndTime,
		Status:      string(a.Status),
		TotalAmount: a.TotalAmount,
		Services:    services,
		CreatedAt:   a.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   a.UpdatedAt.Format(time.RFC3339),
	}
}

// FromDomainAppointmentList конвертирует список записей
func FromDomainAppointmentList(list []*domain.Appointment) *AppointmentListResponse {
	resp := &AppointmentListResponse{
		Appointments: make([]AppointmentResponse, 0, len(list)),
		Total:        len(list),
	}
	for _, a := range list {
		resp.Appointments = append(resp.Appointments, *FromDomainAppointment(a))
	}
	return resp
}
