package catalog

import (
	"context"

	"github.com/storefront/client/internal/domain/catalog"
	"github.com/storefront/client/internal/domain/shared"
	"go.uber.org/zap"
)

// CategoryReconciler applies category mutation events to the category
// views and keeps the CategoryGate current. When a category flips
// inactive it triggers a refresh of the product views so affected
// products disappear even though no product-level event fired; when a
// category comes back, products are not revealed automatically - their
// own status gate still applies and a later product event re-inserts
// them.
type CategoryReconciler struct {
	logger      *zap.Logger
	gate        *CategoryGate
	collections []*CategoryCollection
	products    *ProductReconciler
	disposers   []func()
}

// NewCategoryReconciler creates a reconciler feeding the gate and the
// given category views; products may be nil when no product views need
// cascading.
func NewCategoryReconciler(logger *zap.Logger, gate *CategoryGate, products *ProductReconciler, collections ...*CategoryCollection) *CategoryReconciler {
	return &CategoryReconciler{
		logger:      logger,
		gate:        gate,
		products:    products,
		collections: collections,
	}
}

// Bind subscribes the reconciler to the category events of the source
func (r *CategoryReconciler) Bind(source shared.EventSource) {
	r.disposers = append(r.disposers,
		source.On(catalog.EventCategoryCreated, r.handleCreated),
		source.On(catalog.EventCategoryUpdated, r.handleUpdated),
		source.On(catalog.EventCategoryDeleted, r.handleDeleted),
	)
}

// Unbind removes all of the reconciler's subscriptions
func (r *CategoryReconciler) Unbind() {
	for _, dispose := range r.disposers {
		dispose()
	}
	r.disposers = nil
}

func (r *CategoryReconciler) handleCreated(_ context.Context, event shared.Event) {
	e, ok := event.(*catalog.CategoryCreatedEvent)
	if !ok {
		r.logUnexpected(catalog.EventCategoryCreated, event)
		return
	}
	r.apply(e.Category, func(c *CategoryCollection) { c.ApplyCreated(e.Category) })
}

func (r *CategoryReconciler) handleUpdated(_ context.Context, event shared.Event) {
	e, ok := event.(*catalog.CategoryUpdatedEvent)
	if !ok {
		r.logUnexpected(catalog.EventCategoryUpdated, event)
		return
	}
	r.apply(e.Category, func(c *CategoryCollection) { c.ApplyUpdated(e.Category) })
}

func (r *CategoryReconciler) handleDeleted(_ context.Context, event shared.Event) {
	e, ok := event.(*catalog.CategoryDeletedEvent)
	if !ok {
		r.logUnexpected(catalog.EventCategoryDeleted, event)
		return
	}
	// A deleted category no longer gates anything; its products are
	// expected to be deleted or recategorized by their own events.
	r.gate.Forget(e.CategoryID)
	for _, c := range r.collections {
		c.ApplyDeleted(e.CategoryID)
	}
}

// apply updates the gate first, then the category views, then cascades
// an eviction pass over the product views when the category went
// inactive
func (r *CategoryReconciler) apply(incoming catalog.Category, update func(*CategoryCollection)) {
	wasAllowed := r.gate.Allows(&incoming.ID)
	r.gate.SetActive(incoming.ID, incoming.IsActive)

	for _, c := range r.collections {
		update(c)
	}

	if wasAllowed && !incoming.IsActive && r.products != nil {
		r.logger.Info("category deactivated, hiding its products",
			zap.String("category_id", incoming.ID.String()),
		)
		r.products.RefreshAll()
	}
}

func (r *CategoryReconciler) logUnexpected(expected string, event shared.Event) {
	r.logger.Error("unexpected event type",
		zap.String("expected", expected),
		zap.String("actual", event.EventName()),
	)
}
