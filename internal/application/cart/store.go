package cart

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/storefront/client/internal/domain/cart"
	"github.com/storefront/client/internal/domain/shared"
	"github.com/storefront/client/internal/infrastructure/api"
	"go.uber.org/zap"
)

// API is the slice of the REST collaborator the cart store depends on
type API interface {
	GetCart(ctx context.Context) (*cart.Snapshot, error)
	AddToCart(ctx context.Context, req api.AddToCartRequest) (*cart.Item, error)
	UpdateCartItem(ctx context.Context, id uuid.UUID, quantity int) (*cart.Item, error)
	RemoveFromCart(ctx context.Context, id uuid.UUID) error
	ClearCart(ctx context.Context) error
}

// Store owns the cart collection: the one collection mutated by local
// user actions rather than push events. It never merges mutation
// responses into the displayed list; after every successful mutation it
// refetches the authoritative snapshot and replaces items wholesale, so
// there is a single code path from server state to UI state.
//
// A failed mutation surfaces a user-facing notification and leaves the
// items untouched. Stores are constructed per application root, not as
// process-wide singletons, so tests can instantiate isolated copies.
type Store struct {
	api      API
	notifier Notifier
	logger   *zap.Logger

	mu         sync.Mutex
	items      []cart.Item
	total      cart.Snapshot
	loading    bool
	isFetching bool
	fetchGen   uint64
	err        error

	subMu sync.Mutex
	subs  map[uint64]func()
	next  uint64
}

// NewStore creates a cart store with its collaborators injected
func NewStore(apiClient API, notifier Notifier, logger *zap.Logger) *Store {
	return &Store{
		api:      apiClient,
		notifier: notifier,
		logger:   logger,
		subs:     make(map[uint64]func()),
	}
}

// Fetch retrieves the authoritative snapshot and replaces the local
// items wholesale. Calls issued while a fetch is in flight are dropped,
// not queued: the guard exists to prevent two concurrent completions
// from writing items in an unpredictable order.
func (s *Store) Fetch(ctx context.Context) error {
	return s.fetch(ctx, false)
}

// fetch performs the network read. A forced fetch bypasses the
// in-flight guard and supersedes any fetch already running; the
// superseded completion is discarded by generation so the newest
// snapshot always wins.
func (s *Store) fetch(ctx context.Context, force bool) error {
	s.mu.Lock()
	if s.isFetching && !force {
		s.mu.Unlock()
		return nil
	}
	s.isFetching = true
	s.loading = true
	s.fetchGen++
	gen := s.fetchGen
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		if gen == s.fetchGen {
			s.isFetching = false
			s.loading = false
		}
		s.mu.Unlock()
		s.notify()
	}()

	snap, err := s.api.GetCart(ctx)

	s.mu.Lock()
	if gen != s.fetchGen {
		s.mu.Unlock()
		return err
	}
	if err != nil {
		s.err = err
		s.mu.Unlock()
		s.logger.Warn("cart fetch failed", zap.Error(err))
		return err
	}
	s.items = snap.Items
	s.total = *snap
	s.err = nil
	s.mu.Unlock()
	return nil
}

// Add creates a cart line and resynchronizes from the server
func (s *Store) Add(ctx context.Context, productID uuid.UUID, variantID *uuid.UUID, quantity int) error {
	if quantity < 1 {
		return s.fail(ctx, shared.ErrInvalidQuantity, "Quantity must be at least 1")
	}

	return s.mutate(ctx, "Added to cart", func(ctx context.Context) error {
		_, err := s.api.AddToCart(ctx, api.AddToCartRequest{
			ProductID: productID,
			VariantID: variantID,
			Quantity:  quantity,
		})
		return err
	})
}

// UpdateItem changes a line's quantity and resynchronizes
func (s *Store) UpdateItem(ctx context.Context, id uuid.UUID, quantity int) error {
	if quantity < 1 {
		return s.fail(ctx, shared.ErrInvalidQuantity, "Quantity must be at least 1")
	}

	return s.mutate(ctx, "Cart updated", func(ctx context.Context) error {
		_, err := s.api.UpdateCartItem(ctx, id, quantity)
		return err
	})
}

// Remove deletes a cart line and resynchronizes
func (s *Store) Remove(ctx context.Context, id uuid.UUID) error {
	return s.mutate(ctx, "Removed from cart", func(ctx context.Context) error {
		return s.api.RemoveFromCart(ctx, id)
	})
}

// Clear empties the cart. The server's success response already
// confirms the terminal state, so the empty state is set directly
// instead of refetching.
func (s *Store) Clear(ctx context.Context) error {
	s.setLoading(true)
	defer s.setLoading(false)

	if err := s.api.ClearCart(ctx); err != nil {
		return s.fail(ctx, err, "Could not clear the cart")
	}

	s.mu.Lock()
	s.items = nil
	s.total = cart.Snapshot{}
	s.err = nil
	s.mu.Unlock()
	s.notify()

	s.notifyUser(ctx, SeveritySuccess, "Cart cleared")
	return nil
}

// Reset clears all state synchronously with no network call; used on
// sign-out.
func (s *Store) Reset() {
	s.mu.Lock()
	s.items = nil
	s.total = cart.Snapshot{}
	s.loading = false
	s.isFetching = false
	s.err = nil
	s.mu.Unlock()
	s.notify()
}

// Items returns a snapshot of the cart lines
func (s *Store) Items() []cart.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]cart.Item(nil), s.items...)
}

// Snapshot returns the last authoritative snapshot
func (s *Store) Snapshot() cart.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := s.total
	snap.Items = append([]cart.Item(nil), s.items...)
	return snap
}

// TotalQuantity counts distinct line items, not summed quantities
func (s *Store) TotalQuantity() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Loading reports whether an operation is in flight
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Err returns the error of the last failed operation, nil after any
// success
func (s *Store) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Subscribe registers a change callback and returns its disposer
func (s *Store) Subscribe(fn func()) func() {
	s.subMu.Lock()
	id := s.next
	s.next++
	s.subs[id] = fn
	s.subMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.subMu.Lock()
			delete(s.subs, id)
			s.subMu.Unlock()
		})
	}
}

// mutate runs one cart mutation with the shared failure semantics:
// loading reset in all paths, items untouched on failure, notification
// either way, unconditional refetch on success.
func (s *Store) mutate(ctx context.Context, successMsg string, op func(ctx context.Context) error) error {
	s.setLoading(true)
	defer s.setLoading(false)

	if err := op(ctx); err != nil {
		return s.fail(ctx, err, userMessage(err))
	}

	s.mu.Lock()
	s.err = nil
	s.mu.Unlock()
	s.notifyUser(ctx, SeveritySuccess, successMsg)

	// Forced: the resynchronization after a successful mutation must
	// not be lost to an unrelated fetch already in flight
	return s.fetch(ctx, true)
}

func (s *Store) fail(ctx context.Context, err error, message string) error {
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
	s.notify()

	s.logger.Warn("cart mutation failed", zap.Error(err))
	s.notifyUser(ctx, SeverityError, message)
	return err
}

func (s *Store) setLoading(loading bool) {
	s.mu.Lock()
	s.loading = loading
	s.mu.Unlock()
	s.notify()
}

func (s *Store) notifyUser(ctx context.Context, severity Severity, message string) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Notify(ctx, Notification{Severity: severity, Message: message}); err != nil {
		// Notification failure must not fail the cart operation
		s.logger.Warn("failed to deliver cart notification", zap.Error(err))
	}
}

func (s *Store) notify() {
	s.subMu.Lock()
	fns := make([]func(), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// userMessage maps a mutation error to the transient message shown to
// the user
func userMessage(err error) string {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		switch domainErr.Code {
		case "OUT_OF_STOCK":
			return "That quantity is not in stock"
		case "NOT_FOUND":
			return "That item is no longer available"
		}
		if domainErr.Message != "" {
			return domainErr.Message
		}
	}
	return "Something went wrong, please try again"
}
