package catalog

import (
	"sync"

	"github.com/google/uuid"
)

// CategoryGate tracks which categories are currently inactive so
// product visibility predicates can consult the parent category state
// without any product-level event firing. An active parent category is
// a necessary visibility condition, never a sufficient one: when a
// category comes back, the product's own status gate still applies.
//
// The gate is updated lazily from category events in arrival order; no
// ordering between category and product topics is assumed.
type CategoryGate struct {
	mu       sync.RWMutex
	inactive map[uuid.UUID]struct{}
}

// NewCategoryGate creates a gate with every category considered active
func NewCategoryGate() *CategoryGate {
	return &CategoryGate{
		inactive: make(map[uuid.UUID]struct{}),
	}
}

// SetActive records a category's active flag
func (g *CategoryGate) SetActive(id uuid.UUID, active bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if active {
		delete(g.inactive, id)
		return
	}
	g.inactive[id] = struct{}{}
}

// Forget drops a deleted category from the gate
func (g *CategoryGate) Forget(id uuid.UUID) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.inactive, id)
}

// Allows reports whether the parent category permits visibility.
// A product without a category is not category-gated.
func (g *CategoryGate) Allows(categoryID *uuid.UUID) bool {
	if categoryID == nil {
		return true
	}
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, blocked := g.inactive[*categoryID]
	return !blocked
}
