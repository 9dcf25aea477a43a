package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductStatus represents the status of a product
type ProductStatus string

const (
	ProductStatusActive     ProductStatus = "active"
	ProductStatusInactive   ProductStatus = "inactive"
	ProductStatusOutOfStock ProductStatus = "out_of_stock"
)

// Product is the client-side projection of a catalog product.
// The server owns the entity; the client only mirrors it inside
// per-view collections. Variants is an expanded sub-resource fetched
// separately over REST - push payloads never carry it, so merges must
// preserve the locally known slice.
type Product struct {
	ID            uuid.UUID       `json:"id" validate:"required"`
	Name          string          `json:"name"`
	Price         decimal.Decimal `json:"price"`
	SalePrice     decimal.Decimal `json:"salePrice"`
	StockQuantity int             `json:"stockQuantity"`
	CategoryID    *uuid.UUID      `json:"categoryId,omitempty"`
	BrandID       *uuid.UUID      `json:"brandId,omitempty"`
	Status        ProductStatus   `json:"status"`
	IsFeatured    bool            `json:"isFeatured"`
	ImageURL      string          `json:"imageUrl,omitempty"`
	Variants      []Variant       `json:"-"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// EntityID returns the product identity
func (p Product) EntityID() uuid.UUID {
	return p.ID
}

// IsActive returns true if the product is active
func (p Product) IsActive() bool {
	return p.Status == ProductStatusActive
}

// OnSale returns true if the product carries a discounted price
func (p Product) OnSale() bool {
	return p.SalePrice.IsPositive() && p.SalePrice.LessThan(p.Price)
}

// EffectivePrice returns the sale price when on sale, the list price otherwise
func (p Product) EffectivePrice() decimal.Decimal {
	if p.OnSale() {
		return p.SalePrice
	}
	return p.Price
}

// MergeProduct merges an incoming push representation into the locally
// held record. Push payloads are authoritative for every scalar display
// field; the only locally preserved state is the expanded Variants
// sub-resource, which the channel never carries.
func MergeProduct(existing, incoming Product) Product {
	merged := incoming
	if len(merged.Variants) == 0 {
		merged.Variants = existing.Variants
	}
	return merged
}
