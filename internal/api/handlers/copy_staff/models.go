package copy_staff

// CopyStaffRequest HTTP request model
type CopyStaffRequest struct {
	TargetStaffID int64 `json:"targetStaffId"`
}
