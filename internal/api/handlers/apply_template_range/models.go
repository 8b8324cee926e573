package apply_template_range

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// ApplyTemplateRangeRequest HTTP request model
type ApplyTemplateRangeRequest struct {
	From       string `json:"from"` // "2025-10-15"
	To         string `json:"to"`   // включительно
	TemplateID string `json:"templateId"`
}

// ParseRange парсит границы диапазона
func (r *ApplyTemplateRangeRequest) ParseRange() (time.Time, time.Time, error) {
	from, err := time.Parse(domain.DateFormat, r.From)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	to, err := time.Parse(domain.DateFormat, r.To)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return from, to, nil
}
