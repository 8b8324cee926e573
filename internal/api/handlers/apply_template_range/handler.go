package apply_template_range

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/service/schedule"
	"github.com/m04kA/SMC-SalonBooking/internal/service/schedule/models"
)

const (
	msgInvalidStaffID     = "некорректный ID мастера"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidRange       = "конец диапазона раньше начала"
	msgRangeTooLong       = "диапазон дат слишком большой"
	msgUnknownTemplate    = "неизвестный шаблон расписания"
	msgStaffNotFound      = "мастер не найден"
	msgDayLocked          = "расписание мастера сейчас изменяется, повторите запрос"
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

// Handle POST /api/v1/staff/{staffId}/availability/template-range
// Даты обрабатываются по порядку; при ошибке уже обработанные даты остаются изменёнными
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	staffID, err := handlers.PathInt64(r, "staffId")
	if err != nil {
		h.logger.Warn("POST /staff/{id}/availability/template-range - Invalid staff ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStaffID)
		return
	}

	var req ApplyTemplateRangeRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /staff/{id}/availability/template-range - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	from, to, err := req.ParseRange()
	if err != nil {
		h.logger.Warn("POST /staff/{id}/availability/template-range - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	results, err := h.service.ApplyTemplateRange(r.Context(), staffID, from, to, req.TemplateID)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrUnknownTemplate):
			h.logger.Warn("POST /staff/{id}/availability/template-range - Unknown template: %q", req.TemplateID)
			handlers.RespondBadRequest(w, msgUnknownTemplate)

		case errors.Is(err, schedule.ErrRangeTooLong):
			h.logger.Warn("POST /staff/{id}/availability/template-range - Range too long: %s..%s", req.From, req.To)
			handlers.RespondBadRequest(w, msgRangeTooLong)

		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("POST /staff/{id}/availability/template-range - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRange)

		case errors.Is(err, schedule.ErrStaffNotFound):
			h.logger.Warn("POST /staff/{id}/availability/template-range - Staff not found: staff_id=%d", staffID)
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, schedule.ErrDayLocked):
			h.logger.Warn("POST /staff/{id}/availability/template-range - Day locked: staff_id=%d, applied=%d", staffID, len(results))
			handlers.RespondConflict(w, msgDayLocked)

		default:
			h.logger.Error("POST /staff/{id}/availability/template-range - Failed after %d days: staff_id=%d, error=%v",
				len(results), staffID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /staff/{id}/availability/template-range - Template applied: staff_id=%d, from=%s, to=%s, days=%d",
		staffID, from.Format(domain.DateFormat), to.Format(domain.DateFormat), len(results))
	handlers.RespondJSON(w, http.StatusOK, models.FromResults(results))
}
