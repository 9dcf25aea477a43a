package catalog

import (
	"github.com/google/uuid"
	"github.com/storefront/client/internal/domain/shared"
)

// Wire event names for product mutations
const (
	EventProductCreated = "product:created"
	EventProductUpdated = "product:updated"
	EventProductDeleted = "product:deleted"
)

// ProductCreatedEvent is delivered when the server creates a product.
// The payload is the full current representation of the product.
type ProductCreatedEvent struct {
	shared.BaseEvent
	Product Product `json:"product"`
}

// NewProductCreatedEvent wraps a decoded product payload
func NewProductCreatedEvent(product Product) *ProductCreatedEvent {
	return &ProductCreatedEvent{
		BaseEvent: shared.NewBaseEvent(EventProductCreated),
		Product:   product,
	}
}

// ProductUpdatedEvent is delivered when the server updates a product
type ProductUpdatedEvent struct {
	shared.BaseEvent
	Product Product `json:"product"`
}

// NewProductUpdatedEvent wraps a decoded product payload
func NewProductUpdatedEvent(product Product) *ProductUpdatedEvent {
	return &ProductUpdatedEvent{
		BaseEvent: shared.NewBaseEvent(EventProductUpdated),
		Product:   product,
	}
}

// ProductDeletedEvent is delivered when the server destroys a product.
// Only the identity survives deletion.
type ProductDeletedEvent struct {
	shared.BaseEvent
	ProductID uuid.UUID `json:"id"`
}

// NewProductDeletedEvent wraps a decoded deletion payload
func NewProductDeletedEvent(productID uuid.UUID) *ProductDeletedEvent {
	return &ProductDeletedEvent{
		BaseEvent: shared.NewBaseEvent(EventProductDeleted),
		ProductID: productID,
	}
}
