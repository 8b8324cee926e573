package list_templates

import (
	"net/http"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/service/schedule"
	"github.com/m04kA/SMC-SalonBooking/internal/service/schedule/models"
)

type Handler struct {
	logger Logger
}

func NewHandler(logger Logger) *Handler {
	return &Handler{logger: logger}
}

// Handle GET /api/v1/availability/templates
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	templates := models.FromTemplates(schedule.Templates())

	h.logger.Info("GET /availability/templates - Templates listed: count=%d", len(templates))
	handlers.RespondJSON(w, http.StatusOK, templates)
}
