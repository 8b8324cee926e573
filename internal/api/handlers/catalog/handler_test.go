package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogService "github.com/m04kA/SMC-SalonBooking/internal/service/catalog"
	"github.com/m04kA/SMC-SalonBooking/internal/service/catalog/models"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type stubService struct {
	onlyActive   bool
	customersReq *models.ListCustomersRequest
	createErr    error
}

func (s *stubService) ListStaff(ctx context.Context, onlyActive bool) ([]*models.StaffResponse, error) {
	s.onlyActive = onlyActive
	return []*models.StaffResponse{{ID: 1, Name: "Анна", IsActive: true}}, nil
}

func (s *stubService) CreateStaff(ctx context.Context, req *models.CreateStaffRequest) (*models.StaffResponse, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	return &models.StaffResponse{ID: 2, Name: req.Name, Role: req.Role, IsActive: true}, nil
}

func (s *stubService) ListServices(ctx context.Context, onlyActive bool) ([]*models.ServiceResponse, error) {
	s.onlyActive = onlyActive
	return []*models.ServiceResponse{}, nil
}

func (s *stubService) CreateService(ctx context.Context, req *models.CreateServiceRequest) (*models.ServiceResponse, error) {
	return nil, s.createErr
}

func (s *stubService) ListCustomers(ctx context.Context, req *models.ListCustomersRequest) ([]*models.CustomerResponse, error) {
	s.customersReq = req
	return []*models.CustomerResponse{}, nil
}

func (s *stubService) CreateCustomer(ctx context.Context, req *models.CreateCustomerRequest) (*models.CustomerResponse, error) {
	return &models.CustomerResponse{ID: 9, Name: req.Name}, nil
}

func TestListStaffActiveParam(t *testing.T) {
	svc := &stubService{}
	h := NewHandler(svc, nopLogger{})

	w := httptest.NewRecorder()
	h.ListStaff(w, httptest.NewRequest(http.MethodGet, "/api/v1/staff", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, svc.onlyActive)

	w = httptest.NewRecorder()
	h.ListStaff(w, httptest.NewRequest(http.MethodGet, "/api/v1/staff?active=false", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, svc.onlyActive)

	w = httptest.NewRecorder()
	h.ListServices(w, httptest.NewRequest(http.MethodGet, "/api/v1/services?active=maybe", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListCustomersParams(t *testing.T) {
	svc := &stubService{}
	h := NewHandler(svc, nopLogger{})

	w := httptest.NewRecorder()
	h.ListCustomers(w, httptest.NewRequest(http.MethodGet, "/api/v1/customers?search=%2B7999&limit=5", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, svc.customersReq.Search)
	assert.Equal(t, "+7999", *svc.customersReq.Search)
	assert.Equal(t, uint64(5), svc.customersReq.Limit)

	w = httptest.NewRecorder()
	h.ListCustomers(w, httptest.NewRequest(http.MethodGet, "/api/v1/customers?limit=0", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateStaff(t *testing.T) {
	h := NewHandler(&stubService{}, nopLogger{})

	w := httptest.NewRecorder()
	h.CreateStaff(w, httptest.NewRequest(http.MethodPost, "/api/v1/staff", strings.NewReader(`{"name":"Ольга","role":"stylist"}`)))
	require.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"id":2,"name":"Ольга","role":"stylist","isActive":true}`, w.Body.String())

	h = NewHandler(&stubService{createErr: catalogService.ErrInvalidInput}, nopLogger{})
	w = httptest.NewRecorder()
	h.CreateStaff(w, httptest.NewRequest(http.MethodPost, "/api/v1/staff", strings.NewReader(`{"name":""}`)))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	h = NewHandler(&stubService{createErr: catalogService.ErrInternal}, nopLogger{})
	w = httptest.NewRecorder()
	h.CreateService(w, httptest.NewRequest(http.MethodPost, "/api/v1/services", strings.NewReader(`{"name":"Стрижка","price":30,"durationMinutes":30}`)))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
