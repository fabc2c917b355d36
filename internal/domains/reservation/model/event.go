package model

import (
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventCreated   EventType = "reservation.created"
	EventUpdated   EventType = "reservation.updated"
	EventCancelled EventType = "reservation.cancelled"
)

// Event describes a committed change to a reservation.
type Event struct {
	ID            string    `json:"id"`
	Type          EventType `json:"type"`
	ReservationID int64     `json:"reservation_id"`
	Requester     string    `json:"requester,omitempty"`
	Department    string    `json:"department,omitempty"`
	Items         []string  `json:"items,omitempty"`
	Start         time.Time `json:"start,omitzero"`
	End           time.Time `json:"end,omitzero"`
	OccurredAt    time.Time `json:"occurred_at"`
}

func NewEvent(eventType EventType, id int64, record Reservation) Event {
	return Event{
		ID:            uuid.NewString(),
		Type:          eventType,
		ReservationID: id,
		Requester:     record.Requester,
		Department:    record.Department,
		Items:         record.Items,
		Start:         record.Start,
		End:           record.End,
		OccurredAt:    time.Now().UTC(),
	}
}
