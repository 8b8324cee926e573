package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/service/catalog/models"
	"github.com/m04kA/SMC-SalonBooking/pkg/ptr"
)

const defaultCustomersLimit = 50

// Service сервис справочников салона
type Service struct {
	repo   CatalogRepository
	logger Logger
}

// NewService создает новый экземпляр сервиса справочников
func NewService(repo CatalogRepository, logger Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// ListStaff возвращает мастеров
func (s *Service) ListStaff(ctx context.Context, onlyActive bool) ([]*models.StaffResponse, error) {
	staff, err := s.repo.ListStaff(ctx, onlyActive)
	if err != nil {
		s.logger.Error("ListStaff: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListStaff - repository error: %v", ErrInternal, err)
	}

	resp := make([]*models.StaffResponse, 0, len(staff))
	for _, st := range staff {
		resp = append(resp, models.FromDomainStaff(st))
	}
	return resp, nil
}

// CreateStaff создает мастера
func (s *Service) CreateStaff(ctx context.Context, req *models.CreateStaffRequest) (*models.StaffResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" || len(name) > domain.MaxStaffNameLength {
		s.logger.Warn("CreateStaff: invalid name length=%d", len(name))
		return nil, fmt.Errorf("%w: staff name must be 1..%d characters", ErrInvalidInput, domain.MaxStaffNameLength)
	}

	created, err := s.repo.CreateStaff(ctx, &domain.Staff{
		Name:     name,
		Role:     strings.TrimSpace(req.Role),
		IsActive: ptr.ValueOr(req.IsActive, true),
	})
	if err != nil {
		s.logger.Error("CreateStaff: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateStaff - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateStaff: created staff id=%d", created.ID)
	return models.FromDomainStaff(created), nil
}

// ListServices возвращает услуги каталога
func (s *Service) ListServices(ctx context.Context, onlyActive bool) ([]*models.ServiceResponse, error) {
	services, err := s.repo.ListServices(ctx, onlyActive)
	if err != nil {
		s.logger.Error("ListServices: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListServices - repository error: %v", ErrInternal, err)
	}

	resp := make([]*models.ServiceResponse, 0, len(services))
	for _, svc := range services {
		resp = append(resp, models.FromDomainService(svc))
	}
	return resp, nil
}

// CreateService создает услугу
func (s *Service) CreateService(ctx context.Context, req *models.CreateServiceRequest) (*models.ServiceResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" || len(name) > domain.MaxServiceNameLength {
		return nil, fmt.Errorf("%w: service name must be 1..%d characters", ErrInvalidInput, domain.MaxServiceNameLength)
	}
	if req.Price < 0 {
		return nil, fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}
	if req.DurationMinutes <= 0 || req.DurationMinutes > domain.MaxServiceDurationMinutes {
		return nil, fmt.Errorf("%w: duration must be 1..%d minutes", ErrInvalidInput, domain.MaxServiceDurationMinutes)
	}

	created, err := s.repo.CreateService(ctx, &domain.Service{
		Name:            name,
		Price:           req.Price,
		DurationMinutes: req.DurationMinutes,
		IsActive:        ptr.ValueOr(req.IsActive, true),
	})
	if err != nil {
		s.logger.Error("CreateService: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateService - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateService: created service id=%d, duration=%d", created.ID, created.DurationMinutes)
	return models.FromDomainService(created), nil
}

// ListCustomers ищет клиентов по имени или телефону
func (s *Service) ListCustomers(ctx context.Context, req *models.ListCustomersRequest) ([]*models.CustomerResponse, error) {
	limit := req.Limit
	if limit == 0 {
		limit = defaultCustomersLimit
	}

	customers, err := s.repo.ListCustomers(ctx, req.Search, limit)
	if err != nil {
		s.logger.Error("ListCustomers: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListCustomers - repository error: %v", ErrInternal, err)
	}

	resp := make([]*models.CustomerResponse, 0, len(customers))
	for _, c := range customers {
		resp = append(resp, models.FromDomainCustomer(c))
	}
	return resp, nil
}

// CreateCustomer создает клиента
func (s *Service) CreateCustomer(ctx context.Context, req *models.CreateCustomerRequest) (*models.CustomerResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" || len(name) > domain.MaxCustomerNameLength {
		return nil, fmt.Errorf("%w: customer name must be 1..%d characters", ErrInvalidInput, domain.MaxCustomerNameLength)
	}

	created, err := s.repo.CreateCustomer(ctx, &domain.Customer{
		Name:  name,
		Phone: trimmed(req.Phone),
		Email: trimmed(req.Email),
	})
	if err != nil {
		s.logger.Error("CreateCustomer: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateCustomer - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateCustomer: created customer id=%d", created.ID)
	return models.FromDomainCustomer(created), nil
}

// trimmed пустая строка превращается в nil
func trimmed(v *string) *string {
	if v == nil {
		return nil
	}
	s := strings.TrimSpace(*v)
	if s == "" {
		return nil
	}
	return ptr.Ptr(s)
}
