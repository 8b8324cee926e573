package get_availability

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	getAvailability "github.com/m04kA/SMC-SalonBooking/internal/usecase/get_availability"
)

const (
	msgMissingFrom   = "параметр from обязателен"
	msgInvalidParams = "некорректные параметры: даты в формате YYYY-MM-DD, staffId - число"
	msgInvalidRange  = "некорректный диапазон дат"
	msgRangeTooLong  = "диапазон дат слишком большой"
)

type Handler struct {
	useCase GetAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability
// Query params: from (required, YYYY-MM-DD), to (optional, по умолчанию from), staffId (optional, повторяемый)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	fromStr := query.Get("from")
	if fromStr == "" {
		h.logger.Warn("GET /availability - Missing from")
		handlers.RespondBadRequest(w, msgMissingFrom)
		return
	}

	useCaseReq, err := ToUseCaseRequest(fromStr, query.Get("to"), query["staffId"])
	if err != nil {
		h.logger.Warn("GET /availability - Invalid query params: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailability.ErrRangeTooLong):
			h.logger.Warn("GET /availability - Range too long: %v", err)
			handlers.RespondBadRequest(w, msgRangeTooLong)

		case errors.Is(err, getAvailability.ErrInvalidInput):
			h.logger.Warn("GET /availability - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRange)

		default:
			h.logger.Error("GET /availability - Failed to get availability: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /availability - Availability retrieved: from=%s, to=%s, days=%d",
		fromStr, query.Get("to"), len(result.Days))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
