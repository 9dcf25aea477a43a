package catalog

import (
	"github.com/google/uuid"
	"github.com/storefront/client/internal/domain/catalog"
)

// View visibility predicates. Every product predicate combines the
// product's own status gate with the parent-category gate; the
// category condition is necessary, never sufficient.

// ProductCollection is a reconciled product view
type ProductCollection = Collection[catalog.Product]

// CategoryCollection is a reconciled category view (e.g. the nav menu)
type CategoryCollection = Collection[catalog.Category]

// NewProductView creates a collection of all active products
func NewProductView(gate *CategoryGate) *ProductCollection {
	return NewCollection(func(p catalog.Product) bool {
		return p.IsActive() && gate.Allows(p.CategoryID)
	}, catalog.MergeProduct)
}

// NewFeaturedView creates a collection of active featured products
func NewFeaturedView(gate *CategoryGate) *ProductCollection {
	return NewCollection(func(p catalog.Product) bool {
		return p.IsFeatured && p.IsActive() && gate.Allows(p.CategoryID)
	}, catalog.MergeProduct)
}

// NewSaleView creates a collection of active discounted products
func NewSaleView(gate *CategoryGate) *ProductCollection {
	return NewCollection(func(p catalog.Product) bool {
		return p.OnSale() && p.IsActive() && gate.Allows(p.CategoryID)
	}, catalog.MergeProduct)
}

// NewCategoryPageView creates a collection of the active products of
// one category
func NewCategoryPageView(gate *CategoryGate, categoryID uuid.UUID) *ProductCollection {
	return NewCollection(func(p catalog.Product) bool {
		if p.CategoryID == nil || *p.CategoryID != categoryID {
			return false
		}
		return p.IsActive() && gate.Allows(p.CategoryID)
	}, catalog.MergeProduct)
}

// NewCategoryView creates a collection of active categories
func NewCategoryView() *CategoryCollection {
	return NewCollection(func(c catalog.Category) bool {
		return c.IsActive
	}, catalog.MergeCategory)
}
