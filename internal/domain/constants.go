package domain

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Business validation constants
const (
	MaxServicesPerAppointment = 20
	MaxBatchSize              = 10
	MaxCustomerNameLength     = 200
	MaxStaffNameLength        = 200
	MaxServiceNameLength      = 200
	MaxServiceDurationMinutes = 480 // 8 hours
)

// InactiveStatuses статусы, не занимающие время мастера
var InactiveStatuses = []AppointmentStatus{
	StatusCancelled,
	StatusNoShow,
}

// ActiveStatuses статусы, занимающие время мастера
var ActiveStatuses = []AppointmentStatus{
	StatusPending,
	StatusInProgress,
	StatusCompleted,
}
