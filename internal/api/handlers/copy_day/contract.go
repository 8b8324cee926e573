package copy_day

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/service/schedule"
)

type ScheduleService interface {
	CopyDay(ctx context.Context, staffID int64, sourceDate, targetDate time.Time) (*schedule.Result, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
