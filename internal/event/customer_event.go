package event

import (
	"time"

	"github.com/google/uuid"
)

// CustomerEventPayload is the public view of a customer. Credential material is never included.
type CustomerEventPayload struct {
	CustomerID int64     `json:"customerId"`
	PersonID   int64     `json:"personId"`
	Status     bool      `json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type CustomerCreatedEvent struct {
	EventID   string               `json:"eventId"`
	Timestamp time.Time            `json:"timestamp"`
	Payload   CustomerEventPayload `json:"payload"`
}

type CustomerUpdatedEvent struct {
	EventID   string               `json:"eventId"`
	Timestamp time.Time            `json:"timestamp"`
	Payload   CustomerEventPayload `json:"payload"`
}

type CustomerDeletedEvent struct {
	EventID    string    `json:"eventId"`
	Timestamp  time.Time `json:"timestamp"`
	CustomerID int64     `json:"customerId"`
}

func NewCustomerCreatedEvent(payload CustomerEventPayload) CustomerCreatedEvent {
	return CustomerCreatedEvent{
		EventID:   uuid.NewString(),
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}

func NewCustomerUpdatedEvent(payload CustomerEventPayload) CustomerUpdatedEvent {
	return CustomerUpdatedEvent{
		EventID:   uuid.NewString(),
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}

func NewCustomerDeletedEvent(customerID int64) CustomerDeletedEvent {
	return CustomerDeletedEvent{
		EventID:    uuid.NewString(),
		Timestamp:  time.Now().UTC(),
		CustomerID: customerID,
	}
}
