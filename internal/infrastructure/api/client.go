package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/storefront/client/internal/domain/cart"
	"github.com/storefront/client/internal/domain/shared"
	"go.uber.org/zap"
)

// Client is the REST collaborator: the server of record's public
// catalog read endpoints and the session cart endpoints. It is the
// only component issuing HTTP requests; everything it returns is
// treated as authoritative.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

// NewClient creates an API client for the given base URL
func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// GetPublicProducts fetches the filtered public product listing
func (c *Client) GetPublicProducts(ctx context.Context, filters ProductFilters) (*ProductList, error) {
	path := "/products"
	if q := filters.Query().Encode(); q != "" {
		path += "?" + q
	}
	var list ProductList
	if err := c.do(ctx, http.MethodGet, path, nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// GetPublicProductVariants fetches the variants of one product
func (c *Client) GetPublicProductVariants(ctx context.Context, productID uuid.UUID) (*VariantList, error) {
	var list VariantList
	if err := c.do(ctx, http.MethodGet, "/products/"+productID.String()+"/variants", nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// GetPublicCategories fetches the active category listing
func (c *Client) GetPublicCategories(ctx context.Context) (*CategoryList, error) {
	var list CategoryList
	if err := c.do(ctx, http.MethodGet, "/categories", nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// GetCart fetches the authoritative cart snapshot
func (c *Client) GetCart(ctx context.Context) (*cart.Snapshot, error) {
	var snap cart.Snapshot
	if err := c.do(ctx, http.MethodGet, "/cart", nil, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

// AddToCart creates a cart line. The response is the bare created item
// without denormalized display data; callers refetch the snapshot
// instead of trusting it for the displayed list.
func (c *Client) AddToCart(ctx context.Context, req AddToCartRequest) (*cart.Item, error) {
	var item cart.Item
	if err := c.do(ctx, http.MethodPost, "/cart", req, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateCartItem changes the quantity of a cart line
func (c *Client) UpdateCartItem(ctx context.Context, id uuid.UUID, quantity int) (*cart.Item, error) {
	var item cart.Item
	if err := c.do(ctx, http.MethodPut, "/cart/"+id.String(), UpdateCartItemRequest{Quantity: quantity}, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// RemoveFromCart removes a cart line
func (c *Client) RemoveFromCart(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/cart/"+id.String(), nil, nil)
}

// ClearCart removes every cart line
func (c *Client) ClearCart(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/cart", nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, target any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return fmt.Errorf("%w: %v", shared.ErrUpstreamFailure, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.asDomainError(resp)
	}

	if target == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// asDomainError maps a non-2xx response to a DomainError, preferring
// the code carried in the response body
func (c *Client) asDomainError(resp *http.Response) error {
	var body errorBody
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Code != "" {
		return shared.NewDomainError(body.Code, body.Message)
	}

	switch resp.StatusCode {
	case http.StatusNotFound:
		return shared.ErrNotFound
	case http.StatusConflict:
		return shared.ErrOutOfStock
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return shared.ErrInvalidInput
	default:
		return shared.NewDomainError("UPSTREAM_FAILURE", fmt.Sprintf("unexpected status %d", resp.StatusCode))
	}
}
