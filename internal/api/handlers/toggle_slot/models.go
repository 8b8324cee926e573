package toggle_slot

// ToggleSlotRequest HTTP request model
type ToggleSlotRequest struct {
	Time string `json:"time"` // "9:30" или "09:30"
}
