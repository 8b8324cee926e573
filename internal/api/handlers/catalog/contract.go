package catalog

import (
	"context"

	"github.com/m04kA/SMC-SalonBooking/internal/service/catalog/models"
)

type CatalogService interface {
	ListStaff(ctx context.Context, onlyActive bool) ([]*models.StaffResponse, error)
	CreateStaff(ctx context.Context, req *models.CreateStaffRequest) (*models.StaffResponse, error)
	ListServices(ctx context.Context, onlyActive bool) ([]*models.ServiceResponse, error)
	CreateService(ctx context.Context, req *models.CreateServiceRequest) (*models.ServiceResponse, error)
	ListCustomers(ctx context.Context, req *models.ListCustomersRequest) ([]*models.CustomerResponse, error)
	CreateCustomer(ctx context.Context, req *models.CreateCustomerRequest) (*models.CustomerResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
