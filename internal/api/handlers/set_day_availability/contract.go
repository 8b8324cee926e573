package set_day_availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/service/schedule"
)

type ScheduleService interface {
	SetDay(ctx context.Context, staffID int64, date time.Time, available bool) (*schedule.Result, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
