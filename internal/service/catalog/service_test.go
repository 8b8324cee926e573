package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/service/catalog/models"
	"github.com/m04kA/SMC-SalonBooking/pkg/ptr"
)

type fakeRepo struct {
	staff     []*domain.Staff
	services  []*domain.Service
	customers []*domain.Customer
	err       error

	lastSearch *string
	lastLimit  uint64
}

func (f *fakeRepo) ListStaff(ctx context.Context, onlyActive bool) ([]*domain.Staff, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]*domain.Staff, 0)
	for _, s := range f.staff {
		if !onlyActive || s.IsActive {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeRepo) CreateStaff(ctx context.Context, staff *domain.Staff) (*domain.Staff, error) {
	if f.err != nil {
		return nil, f.err
	}
	staff.ID = int64(len(f.staff) + 1)
	f.staff = append(f.staff, staff)
	return staff, nil
}

func (f *fakeRepo) ListServices(ctx context.Context, onlyActive bool) ([]*domain.Service, error) {
	return f.services, f.err
}

func (f *fakeRepo) CreateService(ctx context.Context, service *domain.Service) (*domain.Service, error) {
	service.ID = int64(len(f.services) + 1)
	f.services = append(f.services, service)
	return service, f.err
}

func (f *fakeRepo) ListCustomers(ctx context.Context, search *string, limit uint64) ([]*domain.Customer, error) {
	f.lastSearch, f.lastLimit = search, limit
	return f.customers, f.err
}

func (f *fakeRepo) CreateCustomer(ctx context.Context, customer *domain.Customer) (*domain.Customer, error) {
	customer.ID = int64(len(f.customers) + 1)
	f.customers = append(f.customers, customer)
	return customer, f.err
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func TestStaff(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo, nopLogger{})

	created, err := svc.CreateStaff(context.Background(), &models.CreateStaffRequest{Name: "  Анна ", Role: "stylist"})
	require.NoError(t, err)
	assert.Equal(t, "Анна", created.Name)
	assert.True(t, created.IsActive)

	_, err = svc.CreateStaff(context.Background(), &models.CreateStaffRequest{Name: "Борис", IsActive: ptr.Ptr(false)})
	require.NoError(t, err)

	active, err := svc.ListStaff(context.Background(), true)
	require.NoError(t, err)
	assert.Len(t, active, 1)

	all, err := svc.ListStaff(context.Background(), false)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = svc.CreateStaff(context.Background(), &models.CreateStaffRequest{Name: "   "})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCreateServiceValidation(t *testing.T) {
	svc := NewService(&fakeRepo{}, nopLogger{})

	tests := []struct {
		name string
		req  models.CreateServiceRequest
		ok   bool
	}{
		{name: "valid", req: models.CreateServiceRequest{Name: "Маникюр", Price: 1200, DurationMinutes: 90}, ok: true},
		{name: "empty name", req: models.CreateServiceRequest{Price: 100, DurationMinutes: 30}},
		{name: "negative price", req: models.CreateServiceRequest{Name: "X", Price: -1, DurationMinutes: 30}},
		{name: "zero duration", req: models.CreateServiceRequest{Name: "X", Price: 1}},
		{name: "too long", req: models.CreateServiceRequest{Name: "X", Price: 1, DurationMinutes: domain.MaxServiceDurationMinutes + 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := svc.CreateService(context.Background(), &tt.req)
			if tt.ok {
				require.NoError(t, err)
				assert.Equal(t, tt.req.DurationMinutes, resp.DurationMinutes)
				return
			}
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestCustomers(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo, nopLogger{})

	created, err := svc.CreateCustomer(context.Background(), &models.CreateCustomerRequest{
		Name:  "Ольга",
		Phone: ptr.Ptr(" +7 900 000-00-00 "),
		Email: ptr.Ptr(""),
	})
	require.NoError(t, err)
	require.NotNil(t, created.Phone)
	assert.Equal(t, "+7 900 000-00-00", *created.Phone)
	assert.Nil(t, created.Email)

	_, err = svc.ListCustomers(context.Background(), &models.ListCustomersRequest{Search: ptr.Ptr("Оль")})
	require.NoError(t, err)
	assert.Equal(t, uint64(defaultCustomersLimit), repo.lastLimit)
	assert.Equal(t, "Оль", *repo.lastSearch)

	repo.err = errors.New("db down")
	_, err = svc.ListCustomers(context.Background(), &models.ListCustomersRequest{Limit: 5})
	assert.ErrorIs(t, err, ErrInternal)
}
