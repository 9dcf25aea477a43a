package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/storefront/client/internal/domain/catalog"
	"github.com/storefront/client/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeSource is an in-process EventSource with the same fan-out
// contract as the stream dispatcher
type fakeSource struct {
	handlers map[string][]shared.Handler
}

func newFakeSource() *fakeSource {
	return &fakeSource{handlers: make(map[string][]shared.Handler)}
}

func (f *fakeSource) On(eventName string, fn shared.Handler) func() {
	f.handlers[eventName] = append(f.handlers[eventName], fn)
	return func() {}
}

func (f *fakeSource) emit(event shared.Event) {
	for _, fn := range f.handlers[event.EventName()] {
		fn(context.Background(), event)
	}
}

func categoryFixture(active bool) catalog.Category {
	return catalog.Category{
		ID:       uuid.New(),
		Name:     "Bàn làm việc",
		Slug:     "ban-lam-viec",
		IsActive: active,
	}
}

func TestProductReconciler_AppliesToEveryView(t *testing.T) {
	gate := NewCategoryGate()
	all := NewProductView(gate)
	featured := NewFeaturedView(gate)

	source := newFakeSource()
	NewProductReconciler(zap.NewNop(), all, featured).Bind(source)

	p := activeProduct("everywhere")
	p.IsFeatured = true
	source.emit(catalog.NewProductCreatedEvent(p))

	assert.Equal(t, 1, all.Len())
	assert.Equal(t, 1, featured.Len())

	p.IsFeatured = false
	source.emit(catalog.NewProductUpdatedEvent(p))
	assert.Equal(t, 1, all.Len())
	assert.Zero(t, featured.Len())

	source.emit(catalog.NewProductDeletedEvent(p.ID))
	assert.Zero(t, all.Len())
}

func TestCategoryReconciler_CascadeHidesProducts(t *testing.T) {
	gate := NewCategoryGate()
	cat := categoryFixture(true)

	categoryView := NewCategoryView()
	pageView := NewCategoryPageView(gate, cat.ID)
	products := NewProductReconciler(zap.NewNop(), pageView)

	source := newFakeSource()
	products.Bind(source)
	NewCategoryReconciler(zap.NewNop(), gate, products, categoryView).Bind(source)

	source.emit(catalog.NewCategoryCreatedEvent(cat))

	// Two active products of the category, regardless of own status mix
	p1 := activeProduct("chair")
	p1.CategoryID = &cat.ID
	p2 := activeProduct("desk")
	p2.CategoryID = &cat.ID
	source.emit(catalog.NewProductCreatedEvent(p1))
	source.emit(catalog.NewProductCreatedEvent(p2))
	require.Equal(t, 2, pageView.Len())

	// Category flips inactive: every product disappears from the
	// category-scoped view even though no product event fired
	cat.IsActive = false
	source.emit(catalog.NewCategoryUpdatedEvent(cat))
	assert.Zero(t, pageView.Len())
	assert.Zero(t, categoryView.Len())

	// Category comes back: products are not revealed automatically
	cat.IsActive = true
	source.emit(catalog.NewCategoryUpdatedEvent(cat))
	assert.Zero(t, pageView.Len())

	// A later product event re-inserts, with the product's own status
	// gate still applying independently
	source.emit(catalog.NewProductUpdatedEvent(p1))
	assert.Equal(t, 1, pageView.Len())

	p2.Status = catalog.ProductStatusInactive
	source.emit(catalog.NewProductUpdatedEvent(p2))
	assert.Equal(t, 1, pageView.Len())
}

func TestCategoryReconciler_CascadeIdempotent(t *testing.T) {
	gate := NewCategoryGate()
	cat := categoryFixture(true)
	pageView := NewCategoryPageView(gate, cat.ID)
	products := NewProductReconciler(zap.NewNop(), pageView)

	source := newFakeSource()
	products.Bind(source)
	NewCategoryReconciler(zap.NewNop(), gate, products).Bind(source)

	p := activeProduct("chair")
	p.CategoryID = &cat.ID
	source.emit(catalog.NewProductCreatedEvent(p))

	cat.IsActive = false
	source.emit(catalog.NewCategoryUpdatedEvent(cat))
	source.emit(catalog.NewCategoryUpdatedEvent(cat))
	assert.Zero(t, pageView.Len())
}

func TestCategoryReconciler_DeletedForgetsGate(t *testing.T) {
	gate := NewCategoryGate()
	cat := categoryFixture(false)
	categoryView := NewCategoryView()

	source := newFakeSource()
	NewCategoryReconciler(zap.NewNop(), gate, nil, categoryView).Bind(source)

	source.emit(catalog.NewCategoryUpdatedEvent(cat))
	assert.False(t, gate.Allows(&cat.ID))

	source.emit(catalog.NewCategoryDeletedEvent(cat.ID))
	assert.True(t, gate.Allows(&cat.ID))
}

func TestVariantReconciler_PatchesParentProduct(t *testing.T) {
	gate := NewCategoryGate()
	view := NewProductView(gate)

	source := newFakeSource()
	NewProductReconciler(zap.NewNop(), view).Bind(source)
	NewVariantReconciler(zap.NewNop(), view).Bind(source)

	p := activeProduct("sofa")
	source.emit(catalog.NewProductCreatedEvent(p))

	v := catalog.Variant{ID: uuid.New(), ProductID: p.ID, Color: "Đen", StockQuantity: 4, IsActive: true}
	source.emit(catalog.NewVariantCreatedEvent(v))

	got, ok := view.Get(p.ID)
	require.True(t, ok)
	require.Len(t, got.Variants, 1)

	v.StockQuantity = 2
	source.emit(catalog.NewVariantUpdatedEvent(v))
	got, _ = view.Get(p.ID)
	require.Len(t, got.Variants, 1)
	assert.Equal(t, 2, got.Variants[0].StockQuantity)

	source.emit(catalog.NewVariantDeletedEvent(v.ID, p.ID))
	got, _ = view.Get(p.ID)
	assert.Empty(t, got.Variants)
}

func TestVariantReconciler_UnknownProductDropped(t *testing.T) {
	view := NewProductView(NewCategoryGate())
	source := newFakeSource()
	NewVariantReconciler(zap.NewNop(), view).Bind(source)

	v := catalog.Variant{ID: uuid.New(), ProductID: uuid.New(), IsActive: true}
	source.emit(catalog.NewVariantCreatedEvent(v))

	assert.Zero(t, view.Len())
}

func TestGate_NilCategoryAlwaysAllowed(t *testing.T) {
	gate := NewCategoryGate()
	assert.True(t, gate.Allows(nil))

	id := uuid.New()
	gate.SetActive(id, false)
	assert.False(t, gate.Allows(&id))
	assert.True(t, gate.Allows(nil))

	gate.SetActive(id, true)
	assert.True(t, gate.Allows(&id))
}
