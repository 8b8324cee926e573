package copy_staff

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/service/schedule"
)

type ScheduleService interface {
	CopyStaff(ctx context.Context, sourceStaffID, targetStaffID int64, date time.Time) (*schedule.Result, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
