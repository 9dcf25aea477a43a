package stream

import (
	"context"
	"sync"

	"github.com/storefront/client/internal/domain/shared"
	"go.uber.org/zap"
)

// Handler processes one decoded push event
type Handler = shared.Handler

// handlerSubscription wraps a handler so it has a removable identity; Go
// function values are not comparable, so the dispatcher tracks the
// wrapper pointer instead.
type handlerSubscription struct {
	eventName string
	fn        Handler
}

// Dispatcher fans decoded events out to every registered subscriber.
// Each subscriber of an event name receives every event of that name
// exactly once, and removing one subscriber never affects the others.
type Dispatcher struct {
	mu       sync.RWMutex
	handlers map[string][]*handlerSubscription
	logger   *zap.Logger
}

// NewDispatcher creates an empty dispatcher
func NewDispatcher(logger *zap.Logger) *Dispatcher {
	return &Dispatcher{
		handlers: make(map[string][]*handlerSubscription),
		logger:   logger,
	}
}

// On registers a handler for an event name and returns its disposer.
// Calling the disposer more than once is a no-op.
func (d *Dispatcher) On(eventName string, fn Handler) func() {
	sub := &handlerSubscription{eventName: eventName, fn: fn}

	d.mu.Lock()
	d.handlers[eventName] = append(d.handlers[eventName], sub)
	d.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			d.remove(sub)
		})
	}
}

// Dispatch delivers an event to every handler registered for its name.
// A panicking handler is recovered and logged so one bad subscriber
// cannot break the fan-out for the rest.
func (d *Dispatcher) Dispatch(ctx context.Context, event shared.Event) {
	d.mu.RLock()
	subs := make([]*handlerSubscription, len(d.handlers[event.EventName()]))
	copy(subs, d.handlers[event.EventName()])
	d.mu.RUnlock()

	for _, sub := range subs {
		d.dispatchTo(ctx, sub, event)
	}
}

// HandlerCount returns the number of subscribers for an event name
func (d *Dispatcher) HandlerCount(eventName string) int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.handlers[eventName])
}

func (d *Dispatcher) dispatchTo(ctx context.Context, sub *handlerSubscription, event shared.Event) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("event handler panicked",
				zap.String("event", event.EventName()),
				zap.Any("panic", r),
			)
		}
	}()

	sub.fn(ctx, event)
}

func (d *Dispatcher) remove(target *handlerSubscription) {
	d.mu.Lock()
	defer d.mu.Unlock()

	subs := d.handlers[target.eventName]
	kept := make([]*handlerSubscription, 0, len(subs))
	for _, s := range subs {
		if s != target {
			kept = append(kept, s)
		}
	}
	if len(kept) == 0 {
		delete(d.handlers, target.eventName)
		return
	}
	d.handlers[target.eventName] = kept
}
