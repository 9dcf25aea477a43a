package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplySelection_Init(t *testing.T) {
	variants := seedVariants()

	state := ApplySelection(Selection{}, variants, 0, InitSelection{})

	require.NotNil(t, state.Variant)
	assert.Equal(t, variants[0].ID, state.Variant.ID)
	assert.Equal(t, "Đen", state.Color)
	assert.Equal(t, "60x60x75", state.DimensionKey)
	assert.Equal(t, 1, state.Quantity)
}

func TestApplySelection_InitWithoutVariants(t *testing.T) {
	state := ApplySelection(Selection{}, nil, 12, InitSelection{})

	assert.Nil(t, state.Variant)
	assert.Empty(t, state.Color)
	assert.Equal(t, 1, state.Quantity)
}

func TestApplySelection_PickColorKeepsOfferedDimension(t *testing.T) {
	variants := seedVariants()
	state := ApplySelection(Selection{}, variants, 0, InitSelection{})

	state = ApplySelection(state, variants, 0, PickColor{Color: "Trắng"})

	require.NotNil(t, state.Variant)
	assert.Equal(t, variants[2].ID, state.Variant.ID)
	assert.Equal(t, "60x60x75", state.DimensionKey)
	assert.Equal(t, "Trắng", state.Variant.Color)
}

func TestApplySelection_PickColorClearsUnofferedDimension(t *testing.T) {
	variants := seedVariants()
	state := ApplySelection(Selection{}, variants, 0, InitSelection{})
	state = ApplySelection(state, variants, 0, PickDimension{Key: "80x60x75"})
	require.NotNil(t, state.Variant)

	// Trắng offers only 60x60x75, so the stale key must not survive
	state = ApplySelection(state, variants, 0, PickColor{Color: "Trắng"})

	assert.Empty(t, state.DimensionKey)
	require.NotNil(t, state.Variant)
	assert.Equal(t, "Trắng", state.Variant.Color)
}

func TestApplySelection_NeverLeavesMismatchedPair(t *testing.T) {
	variants := seedVariants()
	state := ApplySelection(Selection{}, variants, 0, InitSelection{})

	actions := []SelectionAction{
		PickDimension{Key: "80x60x75"},
		PickColor{Color: "Trắng"},
		PickColor{Color: "Đen"},
		PickDimension{Key: "60x60x75"},
	}
	for _, action := range actions {
		state = ApplySelection(state, variants, 0, action)
		if state.Variant == nil {
			continue
		}
		if state.Color != "" {
			assert.Equal(t, state.Color, state.Variant.Color)
		}
		if state.DimensionKey != "" {
			key, ok := state.Variant.DimensionKey()
			require.True(t, ok)
			assert.Equal(t, state.DimensionKey, key)
		}
	}
}

func TestApplySelection_QuantityClampedToVariantStock(t *testing.T) {
	variants := seedVariants()
	state := ApplySelection(Selection{}, variants, 0, InitSelection{})

	state = ApplySelection(state, variants, 0, SetQuantity{Quantity: 10})
	assert.Equal(t, 3, state.Quantity) // first Đen variant has stock 3

	state = ApplySelection(state, variants, 0, SetQuantity{Quantity: 0})
	assert.Equal(t, 1, state.Quantity)
}

func TestApplySelection_QuantityReclampedOnVariantChange(t *testing.T) {
	variants := seedVariants()
	state := ApplySelection(Selection{}, variants, 0, InitSelection{})
	state = ApplySelection(state, variants, 0, SetQuantity{Quantity: 3})

	// Trắng has stock 5; quantity stays
	state = ApplySelection(state, variants, 0, PickColor{Color: "Trắng"})
	assert.Equal(t, 3, state.Quantity)

	// Back to Đen 80x60x75 with stock 0: clamp skips zero stock and
	// floors at 1 so the view never renders quantity 0
	state = ApplySelection(state, variants, 0, PickColor{Color: "Đen"})
	state = ApplySelection(state, variants, 0, PickDimension{Key: "80x60x75"})
	assert.GreaterOrEqual(t, state.Quantity, 1)
}
