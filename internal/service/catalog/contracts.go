package catalog

import (
	"context"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// CatalogRepository интерфейс репозитория справочников
type CatalogRepository interface {
	ListStaff(ctx context.Context, onlyActive bool) ([]*domain.Staff, error)
	CreateStaff(ctx context.Context, staff *domain.Staff) (*domain.Staff, error)
	ListServices(ctx context.Context, onlyActive bool) ([]*domain.Service, error)
	CreateService(ctx context.Context, service *domain.Service) (*domain.Service, error)
	ListCustomers(ctx context.Context, search *string, limit uint64) ([]*domain.Customer, error)
	CreateCustomer(ctx context.Context, customer *domain.Customer) (*domain.Customer, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
