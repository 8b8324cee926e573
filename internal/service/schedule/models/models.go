package models

import (
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/service/schedule"
)

// WindowResponse окно дня
type WindowResponse struct {
	StartTime   string `json:"startTime"` // "9:00"
	EndTime     string `json:"endTime"`
	IsAvailable bool   `json:"isAvailable"`
}

// DayResponse состояние дня мастера после изменения
type DayResponse struct {
	StaffID        int64            `json:"staffId"`
	Date           string           `json:"date"` // "2025-10-15"
	Windows        []WindowResponse `json:"windows"`
	AvailableSlots []string         `json:"availableSlots"`
	Changed        bool             `json:"changed"`
	Warning        string           `json:"warning,omitempty"`
}

// DayRangeResponse результат применения шаблона к диапазону дат
type DayRangeResponse struct {
	Days  []DayResponse `json:"days"`
	Total int           `json:"total"`
}

// TemplateResponse шаблон дня
type TemplateResponse struct {
	ID        string `json:"id"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	SlotCount int    `json:"slotCount"`
}

// FromResult конвертирует результат сервиса в ответ
func FromResult(res *schedule.Result) *DayResponse {
	windows := make([]WindowResponse, 0, len(res.Windows))
	for _, w := range res.Windows {
		windows = append(windows, WindowResponse{
			StartTime:   w.StartTime,
			EndTime:     w.EndTime,
			IsAvailable: w.IsAvailable,
		})
	}

	slots := res.AvailableSlots
	if slots == nil {
		slots = []string{}
	}

	return &DayResponse{
		StaffID:        res.StaffID,
		Date:           res.Date.Format(domain.DateFormat),
		Windows:        windows,
		AvailableSlots: slots,
		Changed:        res.Changed,
		Warning:        res.Warning,
	}
}

// FromResults конвертирует результаты по диапазону дат
func FromResults(results []*schedule.Result) *DayRangeResponse {
	resp := &DayRangeResponse{
		Days:  make([]DayResponse, 0, len(results)),
		Total: len(results),
	}
	for _, res := range results {
		resp.Days = append(resp.Days, *FromResult(res))
	}
	return resp
}

// FromTemplates конвертирует список шаблонов
func FromTemplates(templates []schedule.Template) []TemplateResponse {
	out := make([]TemplateResponse, 0, len(templates))
	for _, t := range templates {
		out = append(out, TemplateResponse{
			ID:        t.ID,
			StartTime: t.Start,
			EndTime:   t.End,
			SlotCount: len(t.Windows()),
		})
	}
	return out
}
