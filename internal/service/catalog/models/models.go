package models

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// Request модели

// CreateStaffRequest запрос на создание мастера
type CreateStaffRequest struct {
	Name     string `json:"name"`
	Role     string `json:"role"`
	IsActive *bool  `json:"isActive,omitempty"` // по умолчанию true
}

// CreateServiceRequest запрос на создание услуги
type CreateServiceRequest struct {
	Name            string  `json:"name"`
	Price           float64 `json:"price"`
	DurationMinutes int     `json:"durationMinutes"`
	IsActive        *bool   `json:"isActive,omitempty"` // по умолчанию true
}

// CreateCustomerRequest запрос на создание клиента
type CreateCustomerRequest struct {
	Name  string  `json:"name"`
	Phone *string `json:"phone,omitempty"`
	Email *string `json:"email,omitempty"`
}

// ListCustomersRequest поиск клиентов
type ListCustomersRequest struct {
	Search *string
	Limit  uint64
}

// Response модели

// StaffResponse мастер
type StaffResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	IsActive bool   `json:"isActive"`
}

// ServiceResponse услуга
type ServiceResponse struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	Price           float64 `json:"price"`
	DurationMinutes int     `json:"durationMinutes"`
	IsActive        bool    `json:"isActive"`
}

// CustomerResponse клиент
type CustomerResponse struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Phone     *string `json:"phone,omitempty"`
	Email     *string `json:"email,omitempty"`
	CreatedAt string  `json:"createdAt"`
}

// FromDomainStaff конвертирует мастера в ответ
func FromDomainStaff(s *domain.Staff) *StaffResponse {
	return &StaffResponse{ID: s.ID, Name: s.Name, Role: s.Role, IsActive: s.IsActive}
}

// FromDomainService конвертирует услугу в ответ
func FromDomainService(s *domain.Service) *ServiceResponse {
	return &ServiceResponse{
		ID:              s.ID,
		Name:            s.Name,
		Price:           s.Price,
		DurationMinutes: s.DurationMinutes,
		IsActive:        s.IsActive,
	}
}

// FromDomainCustomer конвертирует клиента в ответ
func FromDomainCustomer(c *domain.Customer) *CustomerResponse {
	return &CustomerResponse{
		ID:        c.ID,
		Name:      c.Name,
		Phone:     c.Phone,
		Email:     c.Email,
		CreatedAt: c.CreatedAt.Format(time.RFC3339),
	}
}
