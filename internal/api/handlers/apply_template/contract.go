package apply_template

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/service/schedule"
)

type ScheduleService interface {
	ApplyTemplate(ctx context.Context, staffID int64, date time.Time, templateID string) (*schedule.Result, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
