package catalog

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Variant is a purchasable variation of a product. It carries two
// independent facets: a color (empty string = no color facet) and a
// dimension triple. The triple is all-or-nothing: a variant either has
// width, depth and height or it has no dimension facet at all.
type Variant struct {
	ID            uuid.UUID        `json:"id" validate:"required"`
	ProductID     uuid.UUID        `json:"productId" validate:"required"`
	Color         string           `json:"color,omitempty"`
	Width         *int             `json:"width,omitempty"`
	Depth         *int             `json:"depth,omitempty"`
	Height        *int             `json:"height,omitempty"`
	StockQuantity int              `json:"stockQuantity"`
	Price         *decimal.Decimal `json:"price,omitempty"`
	IsActive      bool             `json:"isActive"`
}

// EntityID returns the variant identity
func (v Variant) EntityID() uuid.UUID {
	return v.ID
}

// DimensionKey returns the "{width}x{depth}x{height}" matching key.
// ok is false when any of the three fields is missing; such a variant
// has no dimension facet and never participates in dimension matching.
func (v Variant) DimensionKey() (string, bool) {
	if v.Width == nil || v.Depth == nil || v.Height == nil {
		return "", false
	}
	return fmt.Sprintf("%dx%dx%d", *v.Width, *v.Depth, *v.Height), true
}

// HasColor returns true if the variant carries a color facet
func (v Variant) HasColor() bool {
	return v.Color != ""
}
