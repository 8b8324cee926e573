package toggle_slot

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
	msgInvalidTime        = "время не совпадает со слотом дня (9:00-20:00, шаг 30 минут)"
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

// Handle POST /api/v1/staff/{staffId}/availability/{date}/toggle
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	staffID, err := handlers.PathInt64(r, "staffId")
	if err != nil {
		h.logger.Warn("POST /staff/{id}/availability/{date}/toggle - Invalid staff ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStaffID)
		return
	}

	date, err := time.Parse(domain.DateFormat, mux.Vars(r)["date"])
	if err != nil {
		h.logger.Warn("POST /staff/{id}/availability/{date}/toggle - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	var req ToggleSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /staff/{id}/availability/{date}/toggle - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.ToggleSlot(r.Context(), staffID, date, req.Time)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrInvalidTime):
			h.logger.Warn("POST /staff/{id}/availability/{date}/toggle - Invalid time: %q", req.Time)
			handlers.RespondBadRequest(w, msgInvalidTime)

		case errors.Is(err, schedule.ErrStaffNotFound):
			h.logger.Warn("POST /staff/{id}/availability/{date}/toggle - Staff not found: staff_id=%d", staffID)
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("POST /staff/{id}/availability/{date}/toggle - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidStaffID)

		case errors.Is(err, schedule.ErrDayLocked):
			h.logger.Warn("POST /staff/{id}/availability/{date}/toggle - Day locked: staff_id=%d", staffID)
			handlers.RespondConflict(w, msgDayLocked)

		default:
			h.logger.Error("POST /staff/{id}/availability/{date}/toggle - Failed to toggle slot: staff_id=%d, error=%v", staffID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /staff/{id}/availability/{date}/toggle - Slot toggled: staff_id=%d, date=%s, time=%s",
		staffID, date.Format(domain.DateFormat), req.Time)
	handlers.RespondJSON(w, http.StatusOK, models.FromResult(result))
}
