package shared

import "context"

// Handler processes one push event
type Handler func(ctx context.Context, event Event)

// EventSource is the subscription surface of the push channel: a
// handler registered for an event name receives every event of that
// name until its disposer is called. Registration is fan-out; multiple
// independent handlers on one name all fire, and disposing one leaves
// the rest intact.
type EventSource interface {
	On(eventName string, fn Handler) func()
}
