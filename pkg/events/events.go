// Package events публикация доменных событий в NATS.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
)

// Subjects
const (
	SubjectAvailabilityReplaced     = "salon.availability.replaced"
	SubjectAppointmentCreated       = "salon.appointment.created"
	SubjectAppointmentStatusChanged = "salon.appointment.status_changed"
)

// Publisher публикует событие
type Publisher interface {
	Publish(ctx context.Context, subject string, data interface{}) error
	Close() error
}

// NATSPublisher публикует JSON-события в NATS
type NATSPublisher struct {
	conn *nats.Conn
}

// NewNATSPublisher подключается к NATS
func NewNATSPublisher(url string, name string) (*NATSPublisher, error) {
	conn, err := nats.Connect(url,
		nats.Name(name),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	return &NATSPublisher{conn: conn}, nil
}

func (p *NATSPublisher) Publish(ctx context.Context, subject string, data interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal event data: %w", err)
	}

	return p.conn.Publish(subject, payload)
}

// Close сбрасывает буфер и закрывает соединение
func (p *NATSPublisher) Close() error {
	if err := p.conn.Drain(); err != nil {
		p.conn.Close()
		return err
	}
	return nil
}

// NoopPublisher используется, когда NATS выключен
type NoopPublisher struct{}

func (NoopPublisher) Publish(ctx context.Context, subject string, data interface{}) error {
	return nil
}

func (NoopPublisher) Close() error {
	return nil
}

// AvailabilityReplaced событие замены окон доступности на день
type AvailabilityReplaced struct {
	StaffID        int64     `json:"staffId"`
	Date           string    `json:"date"`
	Operation      string    `json:"operation"`
	WindowCount    int       `json:"windowCount"`
	AvailableSlots int       `json:"availableSlots"`
	OccurredAt     time.Time `json:"occurredAt"`
}

// AppointmentCreated событие создания записи
type AppointmentCreated struct {
	AppointmentID int64     `json:"appointmentId"`
	CustomerID    int64     `json:"customerId"`
	StaffID       int64     `json:"staffId"`
	Date          string    `json:"date"`
	StartTime     string    `json:"startTime"`
	EndTime       string    `json:"endTime"`
	TotalAmount   float64   `json:"totalAmount"`
	OccurredAt    time.Time `json:"occurredAt"`
}

// AppointmentStatusChanged событие смены статуса записи
type AppointmentStatusChanged struct {
	AppointmentID int64     `json:"appointmentId"`
	From          string    `json:"from"`
	To            string    `json:"to"`
	OccurredAt    time.Time `json:"occurredAt"`
}
