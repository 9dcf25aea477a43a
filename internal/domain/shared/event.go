package shared

import (
	"time"

	"github.com/google/uuid"
)

// Event represents a server mutation delivered over the push channel.
// Concrete payload types live next to the entity they describe
// (catalog.ProductCreatedEvent etc.).
type Event interface {
	EventID() uuid.UUID
	EventName() string
	OccurredAt() time.Time
}

// BaseEvent provides the envelope fields common to all push events.
// The envelope identity is assigned on the receiving side when the
// wire payload is decoded; the channel itself only carries the event
// name and the entity representation.
type BaseEvent struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Timestamp time.Time `json:"timestamp"`
}

// EventID returns the unique event identifier
func (e *BaseEvent) EventID() uuid.UUID {
	return e.ID
}

// EventName returns the wire name of the event (e.g. "product:updated")
func (e *BaseEvent) EventName() string {
	return e.Name
}

// OccurredAt returns when the event was received
func (e *BaseEvent) OccurredAt() time.Time {
	return e.Timestamp
}

// NewBaseEvent creates a new event envelope for the given wire name
func NewBaseEvent(name string) BaseEvent {
	return BaseEvent{
		ID:        uuid.New(),
		Name:      name,
		Timestamp: time.Now(),
	}
}
