package catalog

// Selection is the facet-selection state of one product-detail view.
// Invariant: Variant, when non-nil, agrees with Color (if set) and
// DimensionKey (if set); Quantity never exceeds the effective stock
// and never drops below 1.
type Selection struct {
	Color        string
	DimensionKey string
	Variant      *Variant
	Quantity     int
}

// SelectionAction mutates a Selection through ApplySelection
type SelectionAction interface {
	isSelectionAction()
}

// InitSelection seeds the view: the first variant (if any) becomes the
// selected one and its facets become the selected facets.
type InitSelection struct{}

// PickColor selects a color facet
type PickColor struct {
	Color string
}

// PickDimension selects a dimension-key facet
type PickDimension struct {
	Key string
}

// SetQuantity requests a quantity; it is clamped to the effective stock
type SetQuantity struct {
	Quantity int
}

func (InitSelection) isSelectionAction() {}
func (PickColor) isSelectionAction()     {}
func (PickDimension) isSelectionAction() {}
func (SetQuantity) isSelectionAction()   {}

// ApplySelection is the single reducer that recomputes the derived
// variant and clamps the quantity in one step, so no caller can ever
// observe a transiently mismatched (color, dimension, variant) triple
// during a multi-field update.
func ApplySelection(state Selection, variants []Variant, productStock int, action SelectionAction) Selection {
	next := state

	switch a := action.(type) {
	case InitSelection:
		next = Selection{Quantity: 1}
		if len(variants) > 0 {
			v := variants[0]
			next.Color = v.Color
			if key, ok := v.DimensionKey(); ok {
				next.DimensionKey = key
			}
			next.Variant = &v
		}
	case PickColor:
		next.Color = a.Color
		// A dimension key the new color does not offer must not survive
		// the color change; Resolve's color fallback would otherwise
		// keep reporting a variant while the pair looks exact.
		if next.DimensionKey != "" && !contains(DimensionsForColor(variants, a.Color), next.DimensionKey) {
			next.DimensionKey = ""
		}
		next.Variant = Resolve(variants, next.Color, next.DimensionKey)
	case PickDimension:
		next.DimensionKey = a.Key
		next.Variant = Resolve(variants, next.Color, next.DimensionKey)
	case SetQuantity:
		next.Quantity = a.Quantity
	}

	stock := EffectiveStock(next.Variant, variants, productStock)
	if stock > 0 && next.Quantity > stock {
		next.Quantity = stock
	}
	if next.Quantity < 1 {
		next.Quantity = 1
	}

	return next
}

func contains(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
