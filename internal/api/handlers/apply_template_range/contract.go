package apply_template_range

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/service/schedule"
)

type ScheduleService interface {
	ApplyTemplateRange(ctx context.Context, staffID int64, from, to time.Time, templateID string) ([]*schedule.Result, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
