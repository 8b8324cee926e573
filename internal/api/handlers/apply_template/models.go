package apply_template

// ApplyTemplateRequest HTTP request model
type ApplyTemplateRequest struct {
	TemplateID string `json:"templateId"` // full, morning, afternoon, evening, weekday, weekend
}
