package copy_day

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// CopyDayRequest HTTP request model
type CopyDayRequest struct {
	TargetDate string `json:"targetDate"` // "2025-10-16"
}

// ParseTargetDate парсит дату назначения
func (r *CopyDayRequest) ParseTargetDate() (time.Time, error) {
	return time.Parse(domain.DateFormat, r.TargetDate)
}
