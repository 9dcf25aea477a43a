package api

import (
	"net/url"
	"strconv"

	"github.com/google/uuid"
	"github.com/storefront/client/internal/domain/catalog"
)

// ProductList is the pagination envelope of the product read endpoints
type ProductList struct {
	Items []catalog.Product `json:"items"`
	Total int               `json:"total"`
}

// CategoryList is the pagination envelope of the category read endpoint
type CategoryList struct {
	Items []catalog.Category `json:"items"`
	Total int                `json:"total"`
}

// VariantList is the pagination envelope of the variant read endpoint
type VariantList struct {
	Items []catalog.Variant `json:"items"`
	Total int               `json:"total"`
}

// ProductFilters narrows the public product listing
type ProductFilters struct {
	CategoryID *uuid.UUID
	IsFeatured *bool
	OnSale     *bool
	Search     string
	Page       int
	PageSize   int
}

// Query encodes the filters as URL query parameters
func (f ProductFilters) Query() url.Values {
	q := url.Values{}
	if f.CategoryID != nil {
		q.Set("categoryId", f.CategoryID.String())
	}
	if f.IsFeatured != nil {
		q.Set("isFeatured", strconv.FormatBool(*f.IsFeatured))
	}
	if f.OnSale != nil {
		q.Set("onSale", strconv.FormatBool(*f.OnSale))
	}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	if f.Page > 0 {
		q.Set("page", strconv.Itoa(f.Page))
	}
	if f.PageSize > 0 {
		q.Set("pageSize", strconv.Itoa(f.PageSize))
	}
	return q
}

// AddToCartRequest is the body of the cart creation endpoint
type AddToCartRequest struct {
	ProductID uuid.UUID  `json:"productId"`
	VariantID *uuid.UUID `json:"variantId,omitempty"`
	Quantity  int        `json:"quantity"`
}

// UpdateCartItemRequest is the body of the cart line update endpoint
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// errorBody is the error shape returned by the server of record
type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
