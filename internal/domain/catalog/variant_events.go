package catalog

import (
	"github.com/google/uuid"
	"github.com/storefront/client/internal/domain/shared"
)

// Wire event names for variant mutations
const (
	EventVariantCreated = "variant:created"
	EventVariantUpdated = "variant:updated"
	EventVariantDeleted = "variant:deleted"
)

// VariantCreatedEvent is delivered when the server creates a variant
type VariantCreatedEvent struct {
	shared.BaseEvent
	Variant Variant `json:"variant"`
}

// NewVariantCreatedEvent wraps a decoded variant payload
func NewVariantCreatedEvent(variant Variant) *VariantCreatedEvent {
	return &VariantCreatedEvent{
		BaseEvent: shared.NewBaseEvent(EventVariantCreated),
		Variant:   variant,
	}
}

// VariantUpdatedEvent is delivered when the server updates a variant
type VariantUpdatedEvent struct {
	shared.BaseEvent
	Variant Variant `json:"variant"`
}

// NewVariantUpdatedEvent wraps a decoded variant payload
func NewVariantUpdatedEvent(variant Variant) *VariantUpdatedEvent {
	return &VariantUpdatedEvent{
		BaseEvent: shared.NewBaseEvent(EventVariantUpdated),
		Variant:   variant,
	}
}

// VariantDeletedEvent is delivered when the server destroys a variant.
// Deletion payloads carry the parent product id so the reconciler can
// patch the product's expanded variant list without a lookup.
type VariantDeletedEvent struct {
	shared.BaseEvent
	VariantID uuid.UUID `json:"id"`
	ProductID uuid.UUID `json:"productId"`
}

// NewVariantDeletedEvent wraps a decoded deletion payload
func NewVariantDeletedEvent(variantID, productID uuid.UUID) *VariantDeletedEvent {
	return &VariantDeletedEvent{
		BaseEvent: shared.NewBaseEvent(EventVariantDeleted),
		VariantID: variantID,
		ProductID: productID,
	}
}
