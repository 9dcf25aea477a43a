package catalog

import (
	"github.com/google/uuid"
	"github.com/storefront/client/internal/domain/shared"
)

// Wire event names for category mutations
const (
	EventCategoryCreated = "category:created"
	EventCategoryUpdated = "category:updated"
	EventCategoryDeleted = "category:deleted"
)

// CategoryCreatedEvent is delivered when the server creates a category
type CategoryCreatedEvent struct {
	shared.BaseEvent
	Category Category `json:"category"`
}

// NewCategoryCreatedEvent wraps a decoded category payload
func NewCategoryCreatedEvent(category Category) *CategoryCreatedEvent {
	return &CategoryCreatedEvent{
		BaseEvent: shared.NewBaseEvent(EventCategoryCreated),
		Category:  category,
	}
}

// CategoryUpdatedEvent is delivered when the server updates a category.
// An IsActive flip here cascades to product visibility on every
// category-scoped view without any product-level event firing.
type CategoryUpdatedEvent struct {
	shared.BaseEvent
	Category Category `json:"category"`
}

// NewCategoryUpdatedEvent wraps a decoded category payload
func NewCategoryUpdatedEvent(category Category) *CategoryUpdatedEvent {
	return &CategoryUpdatedEvent{
		BaseEvent: shared.NewBaseEvent(EventCategoryUpdated),
		Category:  category,
	}
}

// CategoryDeletedEvent is delivered when the server destroys a category
type CategoryDeletedEvent struct {
	shared.BaseEvent
	CategoryID uuid.UUID `json:"id"`
}

// NewCategoryDeletedEvent wraps a decoded deletion payload
func NewCategoryDeletedEvent(categoryID uuid.UUID) *CategoryDeletedEvent {
	return &CategoryDeletedEvent{
		BaseEvent:  shared.NewBaseEvent(EventCategoryDeleted),
		CategoryID: categoryID,
	}
}
