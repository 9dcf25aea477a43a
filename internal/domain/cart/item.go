package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Item is one line of the remote-owned cart. The server computes the
// denormalized display fields and the subtotal; the client never
// recomputes them locally.
type Item struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"productId"`
	VariantID   *uuid.UUID      `json:"variantId,omitempty"`
	Quantity    int             `json:"quantity"`
	ProductName string          `json:"productName"`
	VariantName string          `json:"variantName,omitempty"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	ImageURL    string          `json:"imageUrl,omitempty"`
}

// Snapshot is the authoritative cart representation returned by the
// cart read endpoint. After any successful mutation the store replaces
// its items wholesale with the latest snapshot.
type Snapshot struct {
	Items       []Item          `json:"cart"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
}

// TotalQuantity counts distinct line items, not the sum of quantities
func (s Snapshot) TotalQuantity() int {
	return len(s.Items)
}
