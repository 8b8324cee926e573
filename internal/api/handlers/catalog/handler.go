package catalog

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	catalogService "github.com/m04kA/SMC-SalonBooking/internal/service/catalog"
	"github.com/m04kA/SMC-SalonBooking/internal/service/catalog/models"
	"github.com/m04kA/SMC-SalonBooking/pkg/ptr"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidActive      = "параметр active должен быть true или false"
	msgInvalidLimit       = "параметр limit должен быть положительным числом"
	msgInvalidStaff       = "некорректные данные мастера"
	msgInvalidService     = "некорректные данные услуги"
	msgInvalidCustomer    = "некорректные данные клиента"
)

// Handler справочники салона: мастера, услуги, клиенты
type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// ListStaff GET /api/v1/staff?active=true
func (h *Handler) ListStaff(w http.ResponseWriter, r *http.Request) {
	onlyActive, err := activeParam(r)
	if err != nil {
		h.logger.Warn("GET /staff - Invalid active param: %v", err)
		handlers.RespondBadRequest(w, msgInvalidActive)
		return
	}

	staff, err := h.service.ListStaff(r.Context(), onlyActive)
	if err != nil {
		h.logger.Error("GET /staff - Failed to list staff: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /staff - Staff listed: count=%d", len(staff))
	handlers.RespondJSON(w, http.StatusOK, staff)
}

// CreateStaff POST /api/v1/staff
func (h *Handler) CreateStaff(w http.ResponseWriter, r *http.Request) {
	var req models.CreateStaffRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /staff - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	staff, err := h.service.CreateStaff(r.Context(), &req)
	if err != nil {
		h.respondCreateError(w, "POST /staff", msgInvalidStaff, err)
		return
	}

	h.logger.Info("POST /staff - Staff created: staff_id=%d", staff.ID)
	handlers.RespondJSON(w, http.StatusCreated, staff)
}

// ListServices GET /api/v1/services?active=true
func (h *Handler) ListServices(w http.ResponseWriter, r *http.Request) {
	onlyActive, err := activeParam(r)
	if err != nil {
		h.logger.Warn("GET /services - Invalid active param: %v", err)
		handlers.RespondBadRequest(w, msgInvalidActive)
		return
	}

	services, err := h.service.ListServices(r.Context(), onlyActive)
	if err != nil {
		h.logger.Error("GET /services - Failed to list services: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /services - Services listed: count=%d", len(services))
	handlers.RespondJSON(w, http.StatusOK, services)
}

// CreateService POST /api/v1/services
func (h *Handler) CreateService(w http.ResponseWriter, r *http.Request) {
	var req models.CreateServiceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /services - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	service, err := h.service.CreateService(r.Context(), &req)
	if err != nil {
		h.respondCreateError(w, "POST /services", msgInvalidService, err)
		return
	}

	h.logger.Info("POST /services - Service created: service_id=%d", service.ID)
	handlers.RespondJSON(w, http.StatusCreated, service)
}

// ListCustomers GET /api/v1/customers?search=&limit=
func (h *Handler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	req := &models.ListCustomersRequest{}

	if search := r.URL.Query().Get("search"); search != "" {
		req.Search = ptr.Ptr(search)
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || limit == 0 {
			h.logger.Warn("GET /customers - Invalid limit: %q", raw)
			handlers.RespondBadRequest(w, msgInvalidLimit)
			return
		}
		req.Limit = limit
	}

	customers, err := h.service.ListCustomers(r.Context(), req)
	if err != nil {
		h.logger.Error("GET /customers - Failed to list customers: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /customers - Customers listed: count=%d", len(customers))
	handlers.RespondJSON(w, http.StatusOK, customers)
}

// CreateCustomer POST /api/v1/customers
func (h *Handler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var req models.CreateCustomerRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /customers - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	customer, err := h.service.CreateCustomer(r.Context(), &req)
	if err != nil {
		h.respondCreateError(w, "POST /customers", msgInvalidCustomer, err)
		return
	}

	h.logger.Info("POST /customers - Customer created: customer_id=%d", customer.ID)
	handlers.RespondJSON(w, http.StatusCreated, customer)
}

func (h *Handler) respondCreateError(w http.ResponseWriter, route, invalidMsg string, err error) {
	if errors.Is(err, catalogService.ErrInvalidInput) {
		h.logger.Warn("%s - Invalid input: %v", route, err)
		handlers.RespondBadRequest(w, invalidMsg)
		return
	}
	h.logger.Error("%s - Failed to create: error=%v", route, err)
	handlers.RespondInternalError(w)
}

// activeParam по умолчанию возвращаются только активные записи
func activeParam(r *http.Request) (bool, error) {
	raw := r.URL.Query().Get("active")
	if raw == "" {
		return true, nil
	}
	return strconv.ParseBool(raw)
}
