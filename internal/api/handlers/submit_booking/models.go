package submit_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	submitBooking "github.com/m04kA/SMC-SalonBooking/internal/usecase/submit_booking"
)

// EntryRequest одна запись пакета
type EntryRequest struct {
	StaffID    int64   `json:"staffId"`
	Date       string  `json:"date"`      // "2025-10-15"
	StartTime  string  `json:"startTime"` // "13:30"
	ServiceIDs []int64 `json:"serviceIds"`
	SlotCount  int     `json:"slotCount,omitempty"`
}

// SubmitBookingRequest HTTP request model
// entries[0] - текущая заявка, остальные - отложенные в порядке добавления
type SubmitBookingRequest struct {
	CustomerID int64          `json:"customerId"`
	Entries    []EntryRequest `json:"entries"`
}

// ServiceLineResponse услуга записи
type ServiceLineResponse struct {
	ServiceID       int64   `json:"serviceId"`
	Name            string  `json:"name"`
	Price           float64 `json:"price"`
	DurationMinutes int     `json:"durationMinutes"`
}

// AppointmentResponse созданная запись
type AppointmentResponse struct {
	ID          int64                 `json:"id"`
	CustomerID  int64                 `json:"customerId"`
	StaffID     int64                 `json:"staffId"`
	Date        string                `json:"date"`
	StartTime   string                `json:"startTime"`
	EndTime     string                `json:"endTime"`
	Status      string                `json:"status"`
	TotalAmount float64               `json:"totalAmount"`
	Services    []ServiceLineResponse `json:"services"`
	CreatedAt   string                `json:"createdAt"`
}

// SubmitBookingResponse HTTP response model
// При частичном сбое заполнены error, failedIndex, failureReason и notAttempted
type SubmitBookingResponse struct {
	Created       []AppointmentResponse `json:"created"`
	Error         string                `json:"error,omitempty"`
	FailedIndex   *int                  `json:"failedIndex,omitempty"`
	FailureReason string                `json:"failureReason,omitempty"`
	NotAttempted  []int                 `json:"notAttempted,omitempty"`
}

// EntryErrorResponse ошибка проверки конкретной записи пакета
type EntryErrorResponse struct {
	Error      string `json:"error"`
	EntryIndex int    `json:"entryIndex"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *SubmitBookingRequest) ToUseCaseRequest() (*submitBooking.Request, error) {
	entries := make([]submitBooking.Entry, 0, len(r.Entries))
	for i, e := range r.Entries {
		date, err := time.Parse(domain.DateFormat, e.Date)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		entries = append(entries, submitBooking.Entry{
			StaffID:    e.StaffID,
			Date:       date,
			StartTime:  e.StartTime,
			ServiceIDs: e.ServiceIDs,
			SlotCount:  e.SlotCount,
		})
	}

	return &submitBooking.Request{
		CustomerID: r.CustomerID,
		Entries:    entries,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *submitBooking.Response) *SubmitBookingResponse {
	created := make([]AppointmentResponse, 0, len(resp.Created))
	for _, a := range resp.Created {
		services := make([]ServiceLineResponse, 0, len(a.Services))
		for _, line := range a.Services {
			services = append(services, ServiceLineResponse{
				ServiceID:       line.ServiceID,
				Name:            line.Name,
				Price:           line.Price,
				DurationMinutes: line.DurationMinutes,
			})
		}

		created = append(created, AppointmentResponse{
			ID:          a.ID,
			CustomerID:  a.CustomerID,
			StaffID:     a.StaffID,
			Date:        a.Date.Format(domain.DateFormat),
			StartTime:   a.StartTime,
			EndTime:     a.EndTime,
			Status:      a.Status,
			TotalAmount: a.TotalAmount,
			Services:    services,
			CreatedAt:   a.CreatedAt.Format(time.RFC3339),
		})
	}

	return &SubmitBookingResponse{
		Created:       created,
		FailedIndex:   resp.FailedIndex,
		FailureReason: resp.FailureReason,
		NotAttempted:  resp.NotAttempted,
	}
}
