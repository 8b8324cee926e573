package plan_booking

import (
	"context"

	planBooking "github.com/m04kA/SMC-SalonBooking/internal/usecase/plan_booking"
)

type PlanBookingUseCase interface {
	Execute(ctx context.Context, req *planBooking.Request) (*planBooking.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
