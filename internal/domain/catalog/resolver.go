package catalog

// Variant resolution: pure, stateless functions that derive the
// selectable facets of a product from its flat variant list and
// resolve a (color, dimension key) pair to at most one variant.

// UniqueColors returns the distinct non-empty color values in
// first-seen order.
func UniqueColors(variants []Variant) []string {
	seen := make(map[string]bool, len(variants))
	colors := make([]string, 0, len(variants))
	for _, v := range variants {
		if !v.HasColor() || seen[v.Color] {
			continue
		}
		seen[v.Color] = true
		colors = append(colors, v.Color)
	}
	return colors
}

// UniqueDimensionKeys returns the distinct dimension keys in
// first-seen order. Variants with an incomplete dimension triple
// contribute nothing.
func UniqueDimensionKeys(variants []Variant) []string {
	seen := make(map[string]bool, len(variants))
	keys := make([]string, 0, len(variants))
	for _, v := range variants {
		key, ok := v.DimensionKey()
		if !ok || seen[key] {
			continue
		}
		seen[key] = true
		keys = append(keys, key)
	}
	return keys
}

// DimensionsForColor returns the dimension keys offered by variants of
// the given color, so the UI can narrow the dimension choices once a
// color is picked.
func DimensionsForColor(variants []Variant, color string) []string {
	matching := make([]Variant, 0, len(variants))
	for _, v := range variants {
		if v.Color == color {
			matching = append(matching, v)
		}
	}
	return UniqueDimensionKeys(matching)
}

// Resolve deterministically maps a facet pair to a variant:
//  1. exact match on color (if given) and dimension key (if given)
//  2. otherwise, if a color is given, the first variant with that color
//  3. nil when neither facet is given or nothing matches
//
// Picking a default variant when nothing is selected yet is an explicit
// initialization step of the caller, not part of Resolve.
func Resolve(variants []Variant, color, dimensionKey string) *Variant {
	if color == "" && dimensionKey == "" {
		return nil
	}

	for i := range variants {
		v := variants[i]
		if color != "" && v.Color != color {
			continue
		}
		if dimensionKey != "" {
			key, ok := v.DimensionKey()
			if !ok || key != dimensionKey {
				continue
			}
		}
		return &variants[i]
	}

	// No exact match: fall back to the first variant sharing the color,
	// ignoring the dimension facet entirely.
	if color != "" {
		for i := range variants {
			if variants[i].Color == color {
				return &variants[i]
			}
		}
	}

	return nil
}

// EffectiveStock returns the stock the UI should display and clamp to:
// the selected variant's own stock when one is resolved, the sum over
// all variants when the product has variants but none is selected, and
// the product's own stock field when it has no variants at all.
func EffectiveStock(selected *Variant, variants []Variant, productStock int) int {
	if selected != nil {
		return selected.StockQuantity
	}
	if len(variants) == 0 {
		return productStock
	}
	total := 0
	for _, v := range variants {
		total += v.StockQuantity
	}
	return total
}
