package catalog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dims(w, d, h int) (width, depth, height *int) {
	return &w, &d, &h
}

func variantFixture(color string, stock int) Variant {
	return Variant{
		ID:            uuid.New(),
		ProductID:     uuid.New(),
		Color:         color,
		StockQuantity: stock,
		IsActive:      true,
	}
}

func variantWithDims(color string, w, d, h, stock int) Variant {
	v := variantFixture(color, stock)
	v.Width, v.Depth, v.Height = dims(w, d, h)
	return v
}

// seedVariants builds the canonical three-variant fixture: two black
// variants in different sizes, one white in the small size.
func seedVariants() []Variant {
	return []Variant{
		variantWithDims("Đen", 60, 60, 75, 3),
		variantWithDims("Đen", 80, 60, 75, 0),
		variantWithDims("Trắng", 60, 60, 75, 5),
	}
}

func TestUniqueColors(t *testing.T) {
	variants := seedVariants()
	assert.Equal(t, []string{"Đen", "Trắng"}, UniqueColors(variants))
}

func TestUniqueColors_SkipsEmptyAndDuplicates(t *testing.T) {
	variants := []Variant{
		variantFixture("", 1),
		variantFixture("Xám", 1),
		variantFixture("Xám", 2),
	}
	assert.Equal(t, []string{"Xám"}, UniqueColors(variants))
}

func TestUniqueDimensionKeys(t *testing.T) {
	variants := seedVariants()
	assert.Equal(t, []string{"60x60x75", "80x60x75"}, UniqueDimensionKeys(variants))
}

func TestUniqueDimensionKeys_IncompleteTripleExcluded(t *testing.T) {
	w, d := 60, 60
	partial := variantFixture("Đen", 2)
	partial.Width = &w
	partial.Depth = &d
	// Height missing: no dimension facet at all

	variants := append(seedVariants(), partial)
	assert.Equal(t, []string{"60x60x75", "80x60x75"}, UniqueDimensionKeys(variants))

	_, ok := partial.DimensionKey()
	assert.False(t, ok)
}

func TestDimensionsForColor(t *testing.T) {
	variants := seedVariants()
	assert.Equal(t, []string{"60x60x75", "80x60x75"}, DimensionsForColor(variants, "Đen"))
	assert.Equal(t, []string{"60x60x75"}, DimensionsForColor(variants, "Trắng"))
	assert.Empty(t, DimensionsForColor(variants, "Xanh"))
}

func TestResolve_ExactMatch(t *testing.T) {
	variants := seedVariants()

	got := Resolve(variants, "Trắng", "60x60x75")
	require.NotNil(t, got)
	assert.Equal(t, variants[2].ID, got.ID)
}

func TestResolve_FallbackToFirstOfColor(t *testing.T) {
	variants := seedVariants()

	got := Resolve(variants, "Đen", "99x99x99")
	require.NotNil(t, got)
	assert.Equal(t, variants[0].ID, got.ID)
}

func TestResolve_DimensionOnly(t *testing.T) {
	variants := seedVariants()

	got := Resolve(variants, "", "80x60x75")
	require.NotNil(t, got)
	assert.Equal(t, variants[1].ID, got.ID)
}

func TestResolve_NoFacetsGiven(t *testing.T) {
	assert.Nil(t, Resolve(seedVariants(), "", ""))
}

func TestResolve_NoMatch(t *testing.T) {
	assert.Nil(t, Resolve(seedVariants(), "Xanh", "60x60x75"))
}

func TestResolve_Deterministic(t *testing.T) {
	variants := seedVariants()

	first := Resolve(variants, "Đen", "80x60x75")
	require.NotNil(t, first)
	for i := 0; i < 10; i++ {
		again := Resolve(variants, "Đen", "80x60x75")
		require.NotNil(t, again)
		assert.Equal(t, first.ID, again.ID)
	}
}

func TestEffectiveStock_SelectedVariant(t *testing.T) {
	variants := seedVariants()
	assert.Equal(t, 5, EffectiveStock(&variants[2], variants, 99))
}

func TestEffectiveStock_SumOverVariants(t *testing.T) {
	variants := seedVariants()
	assert.Equal(t, 8, EffectiveStock(nil, variants, 99))
}

func TestEffectiveStock_NoVariants(t *testing.T) {
	assert.Equal(t, 12, EffectiveStock(nil, nil, 12))
}
