package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/storefront/client/internal/domain/catalog"
	"github.com/storefront/client/internal/domain/shared"
	"go.uber.org/zap"
)

// VariantReconciler patches the expanded Variants slice of the parent
// product wherever that product appears in a registered view. Variant
// events for products the client does not currently hold are dropped;
// the full variant list is refetched whenever such a product is next
// expanded.
type VariantReconciler struct {
	logger      *zap.Logger
	collections []*ProductCollection
	disposers   []func()
}

// NewVariantReconciler creates a reconciler over the given product views
func NewVariantReconciler(logger *zap.Logger, collections ...*ProductCollection) *VariantReconciler {
	return &VariantReconciler{
		logger:      logger,
		collections: collections,
	}
}

// Bind subscribes the reconciler to the variant events of the source
func (r *VariantReconciler) Bind(source shared.EventSource) {
	r.disposers = append(r.disposers,
		source.On(catalog.EventVariantCreated, r.handleUpsert),
		source.On(catalog.EventVariantUpdated, r.handleUpsert),
		source.On(catalog.EventVariantDeleted, r.handleDeleted),
	)
}

// Unbind removes all of the reconciler's subscriptions
func (r *VariantReconciler) Unbind() {
	for _, dispose := range r.disposers {
		dispose()
	}
	r.disposers = nil
}

// handleUpsert covers both created and updated: the payload is the full
// variant representation either way, so upserting by id is idempotent.
func (r *VariantReconciler) handleUpsert(_ context.Context, event shared.Event) {
	var variant catalog.Variant
	switch e := event.(type) {
	case *catalog.VariantCreatedEvent:
		variant = e.Variant
	case *catalog.VariantUpdatedEvent:
		variant = e.Variant
	default:
		r.logger.Error("unexpected event type", zap.String("actual", event.EventName()))
		return
	}

	r.patchProduct(variant.ProductID, func(p catalog.Product) catalog.Product {
		p.Variants = upsertVariant(p.Variants, variant)
		return p
	})
}

func (r *VariantReconciler) handleDeleted(_ context.Context, event shared.Event) {
	e, ok := event.(*catalog.VariantDeletedEvent)
	if !ok {
		r.logger.Error("unexpected event type",
			zap.String("expected", catalog.EventVariantDeleted),
			zap.String("actual", event.EventName()),
		)
		return
	}

	r.patchProduct(e.ProductID, func(p catalog.Product) catalog.Product {
		p.Variants = removeVariant(p.Variants, e.VariantID)
		return p
	})
}

func (r *VariantReconciler) patchProduct(productID uuid.UUID, fn func(catalog.Product) catalog.Product) {
	found := false
	for _, c := range r.collections {
		if c.Patch(productID, fn) {
			found = true
		}
	}
	if !found {
		r.logger.Debug("variant event for unknown product dropped",
			zap.String("product_id", productID.String()),
		)
	}
}

// upsertVariant replaces the variant in place or appends it, keeping
// the slice copy-on-write so concurrent snapshot readers are unaffected
func upsertVariant(variants []catalog.Variant, incoming catalog.Variant) []catalog.Variant {
	next := make([]catalog.Variant, 0, len(variants)+1)
	replaced := false
	for _, v := range variants {
		if v.ID == incoming.ID {
			next = append(next, incoming)
			replaced = true
			continue
		}
		next = append(next, v)
	}
	if !replaced {
		next = append(next, incoming)
	}
	return next
}

func removeVariant(variants []catalog.Variant, id uuid.UUID) []catalog.Variant {
	next := make([]catalog.Variant, 0, len(variants))
	for _, v := range variants {
		if v.ID != id {
			next = append(next, v)
		}
	}
	return next
}
