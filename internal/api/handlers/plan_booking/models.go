package plan_booking

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	planBooking "github.com/m04kA/SMC-SalonBooking/internal/usecase/plan_booking"
)

// PlanBookingRequest HTTP request model
type PlanBookingRequest struct {
	StaffID    int64   `json:"staffId"`
	Date       string  `json:"date"`      // "2025-10-15"
	StartTime  string  `json:"startTime"` // "13:30"
	ServiceIDs []int64 `json:"serviceIds"`
	SlotCount  int     `json:"slotCount,omitempty"` // 0 - по длительности услуг
}

// PlanBookingResponse HTTP response model
type PlanBookingResponse struct {
	StaffID         int64    `json:"staffId"`
	Date            string   `json:"date"`
	StartTime       string   `json:"startTime"`
	EndTime         string   `json:"endTime,omitempty"`
	Fits            bool     `json:"fits"`
	Reason          string   `json:"reason,omitempty"`
	DurationMinutes int      `json:"durationMinutes"`
	RequiredSlots   int      `json:"requiredSlots"`
	MaxSlots        int      `json:"maxSlots"`
	TotalPrice      float64  `json:"totalPrice"`
	AvailableSlots  []string `json:"availableSlots"`
	StartDisplay    string   `json:"startDisplay"`
	EndDisplay      string   `json:"endDisplay,omitempty"`
	DurationDisplay string   `json:"durationDisplay"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *PlanBookingRequest) ToUseCaseRequest() (*planBooking.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	return &planBooking.Request{
		StaffID:    r.StaffID,
		Date:       date,
		StartTime:  r.StartTime,
		ServiceIDs: r.ServiceIDs,
		SlotCount:  r.SlotCount,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *planBooking.Response) *PlanBookingResponse {
	slots := resp.AvailableSlots
	if slots == nil {
		slots = []string{}
	}

	return &PlanBookingResponse{
		StaffID:         resp.StaffID,
		Date:            resp.Date.Format(domain.DateFormat),
		StartTime:       resp.StartTime,
		EndTime:         resp.EndTime,
		Fits:            resp.Fits,
		Reason:          resp.Reason,
		DurationMinutes: resp.DurationMinutes,
		RequiredSlots:   resp.RequiredSlots,
		MaxSlots:        resp.MaxSlots,
		TotalPrice:      resp.TotalPrice,
		AvailableSlots:  slots,
		StartDisplay:    resp.StartDisplay,
		EndDisplay:      resp.EndDisplay,
		DurationDisplay: resp.DurationDisplay,
	}
}
