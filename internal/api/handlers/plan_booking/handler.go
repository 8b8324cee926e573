package plan_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	planBooking "github.com/m04kA/SMC-SalonBooking/internal/usecase/plan_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidInput       = "некорректные данные записи"
	msgServiceNotFound    = "услуга не найдена"
)

type Handler struct {
	useCase PlanBookingUseCase
	logger  Logger
}

func NewHandler(useCase PlanBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/plan
// Ничего не сохраняет; fits=false - нормальный ответ с причиной
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req PlanBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/plan - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /bookings/plan - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, planBooking.ErrServiceNotFound):
			h.logger.Warn("POST /bookings/plan - Service not found: services=%v", req.ServiceIDs)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, planBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings/plan - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings/plan - Failed to plan booking: staff_id=%d, error=%v", req.StaffID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/plan - Planned: staff_id=%d, date=%s, start=%s, fits=%t",
		req.StaffID, req.Date, req.StartTime, result.Fits)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
