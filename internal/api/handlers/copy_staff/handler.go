package copy_staff

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
	msgSameStaff          = "мастер-источник совпадает с мастером назначения"
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

// Handle POST /api/v1/staff/{staffId}/availability/{date}/copy-to-staff
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	staffID, err := handlers.PathInt64(r, "staffId")
	if err != nil {
		h.logger.Warn("POST /staff/{id}/availability/{date}/copy-to-staff - Invalid staff ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStaffID)
		return
	}

	date, err := time.Parse(domain.DateFormat, mux.Vars(r)["date"])
	if err != nil {
		h.logger.Warn("POST /staff/{id}/availability/{date}/copy-to-staff - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	var req CopyStaffRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /staff/{id}/availability/{date}/copy-to-staff - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.CopyStaff(r.Context(), staffID, req.TargetStaffID, date)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("POST /staff/{id}/availability/{date}/copy-to-staff - Invalid input: %v", err)
			if staffID == req.TargetStaffID {
				handlers.RespondBadRequest(w, msgSameStaff)
			} else {
				handlers.RespondBadRequest(w, msgInvalidStaffID)
			}

		case errors.Is(err, schedule.ErrStaffNotFound):
			h.logger.Warn("POST /staff/{id}/availability/{date}/copy-to-staff - Staff not found: source=%d, target=%d",
				staffID, req.TargetStaffID)
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, schedule.ErrDayLocked):
			h.logger.Warn("POST /staff/{id}/availability/{date}/copy-to-staff - Day locked: staff_id=%d", req.TargetStaffID)
			handlers.RespondConflict(w, msgDayLocked)

		default:
			h.logger.Error("POST /staff/{id}/availability/{date}/copy-to-staff - Failed to copy: source=%d, target=%d, error=%v",
				staffID, req.TargetStaffID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /staff/{id}/availability/{date}/copy-to-staff - Copied: source=%d, target=%d, date=%s, changed=%t",
		staffID, req.TargetStaffID, date.Format(domain.DateFormat), result.Changed)
	handlers.RespondJSON(w, http.StatusOK, models.FromResult(result))
}
