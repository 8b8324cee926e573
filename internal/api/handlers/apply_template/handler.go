package apply_template

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
	msgUnknownTemplate    = "неизвестный шаблон расписания"
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

// Handle POST /api/v1/staff/{staffId}/availability/{date}/template
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	staffID, err := handlers.PathInt64(r, "staffId")
	if err != nil {
		h.logger.Warn("POST /staff/{id}/availability/{date}/template - Invalid staff ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStaffID)
		return
	}

	date, err := time.Parse(domain.DateFormat, mux.Vars(r)["date"])
	if err != nil {
		h.logger.Warn("POST /staff/{id}/availability/{date}/template - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	var req ApplyTemplateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /staff/{id}/availability/{date}/template - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.ApplyTemplate(r.Context(), staffID, date, req.TemplateID)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrUnknownTemplate):
			h.logger.Warn("POST /staff/{id}/availability/{date}/template - Unknown template: %q", req.TemplateID)
			handlers.RespondBadRequest(w, msgUnknownTemplate)

		case errors.Is(err, schedule.ErrStaffNotFound):
			h.logger.Warn("POST /staff/{id}/availability/{date}/template - Staff not found: staff_id=%d", staffID)
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("POST /staff/{id}/availability/{date}/template - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidStaffID)

		case errors.Is(err, schedule.ErrDayLocked):
			h.logger.Warn("POST /staff/{id}/availability/{date}/template - Day locked: staff_id=%d", staffID)
			handlers.RespondConflict(w, msgDayLocked)

		default:
			h.logger.Error("POST /staff/{id}/availability/{date}/template - Failed to apply template: staff_id=%d, error=%v", staffID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /staff/{id}/availability/{date}/template - Template applied: staff_id=%d, date=%s, template=%s",
		staffID, date.Format(domain.DateFormat), req.TemplateID)
	handlers.RespondJSON(w, http.StatusOK, models.FromResult(result))
}
