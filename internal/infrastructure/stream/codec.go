package stream

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/storefront/client/internal/domain/catalog"
	"github.com/storefront/client/internal/domain/shared"
)

// envelope is the wire frame carried on every channel message
type envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// deletionPayload is the minimal body of every *:deleted event
type deletionPayload struct {
	ID        uuid.UUID `json:"id" validate:"required"`
	ProductID uuid.UUID `json:"productId,omitempty"`
}

// decodeFunc turns a raw payload into a typed event
type decodeFunc func(data json.RawMessage) (shared.Event, error)

// Codec decodes wire frames into typed, validated events. Payloads
// from the channel are duck-typed JSON; required fields (at minimum
// the entity id) are checked defensively before anything reaches a
// reconciler.
type Codec struct {
	mu       sync.RWMutex
	decoders map[string]decodeFunc
	validate *validator.Validate
}

// NewCodec creates a codec with every storefront event registered
func NewCodec() *Codec {
	c := &Codec{
		decoders: make(map[string]decodeFunc),
		validate: validator.New(),
	}

	c.register(catalog.EventProductCreated, func(data json.RawMessage) (shared.Event, error) {
		var p catalog.Product
		if err := c.unmarshal(data, &p); err != nil {
			return nil, err
		}
		return catalog.NewProductCreatedEvent(p), nil
	})
	c.register(catalog.EventProductUpdated, func(data json.RawMessage) (shared.Event, error) {
		var p catalog.Product
		if err := c.unmarshal(data, &p); err != nil {
			return nil, err
		}
		return catalog.NewProductUpdatedEvent(p), nil
	})
	c.register(catalog.EventProductDeleted, func(data json.RawMessage) (shared.Event, error) {
		payload, err := c.deletion(data)
		if err != nil {
			return nil, err
		}
		return catalog.NewProductDeletedEvent(payload.ID), nil
	})

	c.register(catalog.EventCategoryCreated, func(data json.RawMessage) (shared.Event, error) {
		var cat catalog.Category
		if err := c.unmarshal(data, &cat); err != nil {
			return nil, err
		}
		return catalog.NewCategoryCreatedEvent(cat), nil
	})
	c.register(catalog.EventCategoryUpdated, func(data json.RawMessage) (shared.Event, error) {
		var cat catalog.Category
		if err := c.unmarshal(data, &cat); err != nil {
			return nil, err
		}
		return catalog.NewCategoryUpdatedEvent(cat), nil
	})
	c.register(catalog.EventCategoryDeleted, func(data json.RawMessage) (shared.Event, error) {
		payload, err := c.deletion(data)
		if err != nil {
			return nil, err
		}
		return catalog.NewCategoryDeletedEvent(payload.ID), nil
	})

	c.register(catalog.EventVariantCreated, func(data json.RawMessage) (shared.Event, error) {
		var v catalog.Variant
		if err := c.unmarshal(data, &v); err != nil {
			return nil, err
		}
		return catalog.NewVariantCreatedEvent(v), nil
	})
	c.register(catalog.EventVariantUpdated, func(data json.RawMessage) (shared.Event, error) {
		var v catalog.Variant
		if err := c.unmarshal(data, &v); err != nil {
			return nil, err
		}
		return catalog.NewVariantUpdatedEvent(v), nil
	})
	c.register(catalog.EventVariantDeleted, func(data json.RawMessage) (shared.Event, error) {
		payload, err := c.deletion(data)
		if err != nil {
			return nil, err
		}
		if payload.ProductID == uuid.Nil {
			return nil, fmt.Errorf("%w: variant deletion lacks productId", shared.ErrMalformedPayload)
		}
		return catalog.NewVariantDeletedEvent(payload.ID, payload.ProductID), nil
	})

	return c
}

// Decode turns a raw channel message into a typed event
func (c *Codec) Decode(raw []byte) (shared.Event, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("malformed event frame: %w", err)
	}
	if env.Event == "" {
		return nil, fmt.Errorf("%w: frame has no event name", shared.ErrMalformedPayload)
	}

	c.mu.RLock()
	decode, ok := c.decoders[env.Event]
	c.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown event type: %s", env.Event)
	}

	return decode(env.Data)
}

// IsRegistered checks if an event name is known to the codec
func (c *Codec) IsRegistered(eventName string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.decoders[eventName]
	return ok
}

func (c *Codec) register(eventName string, decode decodeFunc) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.decoders[eventName] = decode
}

func (c *Codec) unmarshal(data json.RawMessage, target any) error {
	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("failed to unmarshal event payload: %w", err)
	}
	if err := c.validate.Struct(target); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrMalformedPayload, err)
	}
	return nil
}

func (c *Codec) deletion(data json.RawMessage) (*deletionPayload, error) {
	var payload deletionPayload
	if err := c.unmarshal(data, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}
