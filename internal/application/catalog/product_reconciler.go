package catalog

import (
	"context"

	"github.com/storefront/client/internal/domain/catalog"
	"github.com/storefront/client/internal/domain/shared"
	"go.uber.org/zap"
)

// ProductReconciler applies product mutation events to every
// registered product view. Events are applied in arrival order with no
// coalescing; applying the same event twice leaves the collections
// unchanged.
type ProductReconciler struct {
	logger      *zap.Logger
	collections []*ProductCollection
	disposers   []func()
}

// NewProductReconciler creates a reconciler over the given views
func NewProductReconciler(logger *zap.Logger, collections ...*ProductCollection) *ProductReconciler {
	return &ProductReconciler{
		logger:      logger,
		collections: collections,
	}
}

// Register adds another view to reconcile
func (r *ProductReconciler) Register(c *ProductCollection) {
	r.collections = append(r.collections, c)
}

// Bind subscribes the reconciler to the product events of the source
func (r *ProductReconciler) Bind(source shared.EventSource) {
	r.disposers = append(r.disposers,
		source.On(catalog.EventProductCreated, r.handleCreated),
		source.On(catalog.EventProductUpdated, r.handleUpdated),
		source.On(catalog.EventProductDeleted, r.handleDeleted),
	)
}

// Unbind removes all of the reconciler's subscriptions
func (r *ProductReconciler) Unbind() {
	for _, dispose := range r.disposers {
		dispose()
	}
	r.disposers = nil
}

// RefreshAll re-gates every registered view; the category reconciler
// calls this when a parent category flips inactive, since no
// product-level event fires for the cascade.
func (r *ProductReconciler) RefreshAll() {
	for _, c := range r.collections {
		c.Refresh()
	}
}

func (r *ProductReconciler) handleCreated(_ context.Context, event shared.Event) {
	e, ok := event.(*catalog.ProductCreatedEvent)
	if !ok {
		r.logUnexpected(catalog.EventProductCreated, event)
		return
	}
	for _, c := range r.collections {
		c.ApplyCreated(e.Product)
	}
}

func (r *ProductReconciler) handleUpdated(_ context.Context, event shared.Event) {
	e, ok := event.(*catalog.ProductUpdatedEvent)
	if !ok {
		r.logUnexpected(catalog.EventProductUpdated, event)
		return
	}
	for _, c := range r.collections {
		c.ApplyUpdated(e.Product)
	}
}

func (r *ProductReconciler) handleDeleted(_ context.Context, event shared.Event) {
	e, ok := event.(*catalog.ProductDeletedEvent)
	if !ok {
		r.logUnexpected(catalog.EventProductDeleted, event)
		return
	}
	for _, c := range r.collections {
		c.ApplyDeleted(e.ProductID)
	}
}

func (r *ProductReconciler) logUnexpected(expected string, event shared.Event) {
	r.logger.Error("unexpected event type",
		zap.String("expected", expected),
		zap.String("actual", event.EventName()),
	)
}
