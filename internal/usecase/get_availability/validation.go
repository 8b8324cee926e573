package get_availability

import "fmt"

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request, maxRangeDays int) error {
	if req.From.IsZero() || req.To.IsZero() {
		return fmt.Errorf("%w: from and to are required", ErrInvalidInput)
	}

	if req.To.Before(req.From) {
		return fmt.Errorf("%w: to is before from", ErrInvalidInput)
	}

	for _, id := range req.StaffIDs {
		if id <= 0 {
			return fmt.Errorf("%w: staffID must be positive", ErrInvalidInput)
		}
	}

	if maxRangeDays > 0 {
		if days := daysInclusive(req); days > maxRangeDays {
			return fmt.Errorf("%w: %d days requested, limit %d", ErrRangeTooLong, days, maxRangeDays)
		}
	}

	return nil
}

func daysInclusive(req *Request) int {
	return int(req.To.Sub(req.From).Hours()/24) + 1
}
