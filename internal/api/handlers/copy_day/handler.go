package copy_day

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/service/schedule"
	"github.com/m04kA/SMC-SalonBooking/internal/service/schedule/models"
)

const (
	msgInvalidStaffID     = "некорректный ID мастера"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgSameDate           = "дата источника совпадает с датой назначения"
	msgStaffNotFound      = "мастер не найден"
	msgDayLocked          = "расписание мастера на эту дату сейчас изменяется, повторите запрос"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/staff/{staffId}/availability/{date}/copy
// Пустой день-источник не меняет цель, в ответе будет warning
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	staffID, err := handlers.PathInt64(r, "staffId")
	if err != nil {
		h.logger.Warn("POST /staff/{id}/availability/{date}/copy - Invalid staff ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStaffID)
		return
	}

	source, err := time.Parse(domain.DateFormat, mux.Vars(r)["date"])
	if err != nil {
		h.logger.Warn("POST /staff/{id}/availability/{date}/copy - Invalid source date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	var req CopyDayRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /staff/{id}/availability/{date}/copy - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	target, err := req.ParseTargetDate()
	if err != nil {
		h.logger.Warn("POST /staff/{id}/availability/{date}/copy - Invalid target date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.CopyDay(r.Context(), staffID, source, target)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("POST /staff/{id}/availability/{date}/copy - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgSameDate)

		case errors.Is(err, schedule.ErrStaffNotFound):
			h.logger.Warn("POST /staff/{id}/availability/{date}/copy - Staff not found: staff_id=%d", staffID)
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, schedule.ErrDayLocked):
			h.logger.Warn("POST /staff/{id}/availability/{date}/copy - Day locked: staff_id=%d", staffID)
			handlers.RespondConflict(w, msgDayLocked)

		default:
			h.logger.Error("POST /staff/{id}/availability/{date}/copy - Failed to copy day: staff_id=%d, error=%v", staffID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /staff/{id}/availability/{date}/copy - Day copied: staff_id=%d, source=%s, target=%s, changed=%t",
		staffID, source.Format(domain.DateFormat), target.Format(domain.DateFormat), result.Changed)
	handlers.RespondJSON(w, http.StatusOK, models.FromResult(result))
}
