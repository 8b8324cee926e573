package set_day_availability

// SetDayRequest HTTP request model
type SetDayRequest struct {
	Available *bool `json:"available"`
}
