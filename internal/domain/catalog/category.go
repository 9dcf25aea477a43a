package catalog

import (
	"github.com/google/uuid"
)

// Category is the client-side projection of a product category.
// Categories gate product visibility: a product appearing on a
// category page requires both its own status and the parent
// category's IsActive flag.
type Category struct {
	ID       uuid.UUID `json:"id" validate:"required"`
	Name     string    `json:"name"`
	Slug     string    `json:"slug"`
	IsActive bool      `json:"isActive"`
	ImageURL string    `json:"imageUrl,omitempty"`
}

// EntityID returns the category identity
func (c Category) EntityID() uuid.UUID {
	return c.ID
}

// MergeCategory merges an incoming push representation into the local
// record. Category payloads are complete, so the incoming value wins
// wholesale.
func MergeCategory(_, incoming Category) Category {
	return incoming
}
