package catalog

// The variant functions below work over the whole product slice plus the ids
// of one variant family. They iterate in catalog order, so "first" always
// means first in all. None of them fail: an empty family, or a family whose
// ids are missing from all, simply yields no results.

// familyMembers returns the products of all whose id is in family, in catalog order.
func familyMembers(all []Product, family []int) []*Product {
	if len(family) == 0 {
		return nil
	}
	ids := make(map[int]struct{}, len(family))
	for _, id := range family {
		ids[id] = struct{}{}
	}
	members := make([]*Product, 0, len(family))
	for i := range all {
		if _, ok := ids[all[i].ID]; ok {
			members = append(members, &all[i])
		}
	}
	return members
}

// AvailableColorsForOption returns the colours of family members whose
// secondary option id equals optionID ("" matches members with no option).
// Colours are de-duplicated by id, first seen wins.
func AvailableColorsForOption(all []Product, family []int, optionID string) []VariantOption {
	colors := []VariantOption{}
	seen := map[string]bool{}
	for _, p := range familyMembers(all, family) {
		if p.Color == nil || p.OptionID() != optionID {
			continue
		}
		if seen[p.Color.ID] {
			continue
		}
		seen[p.Color.ID] = true
		colors = append(colors, *p.Color)
	}
	return colors
}

// AvailableOptionsForColor returns the secondary options of family members
// whose colour id equals colorID. Members without a secondary option are
// skipped; options are de-duplicated by id, first seen wins.
func AvailableOptionsForColor(all []Product, family []int, colorID string) []VariantOption {
	options := []VariantOption{}
	seen := map[string]bool{}
	for _, p := range familyMembers(all, family) {
		if p.AdditionalOption == nil || p.ColorID() != colorID {
			continue
		}
		if seen[p.AdditionalOption.ID] {
			continue
		}
		seen[p.AdditionalOption.ID] = true
		options = append(options, *p.AdditionalOption)
	}
	return options
}

// FindProductByOptions returns the first family member whose colour and
// secondary option ids match, treating an absent option as "". It returns
// nil when the combination has no backing SKU.
func FindProductByOptions(all []Product, family []int, colorID, optionID string) *Product {
	for _, p := range familyMembers(all, family) {
		if p.ColorID() == colorID && p.OptionID() == optionID {
			found := *p
			return &found
		}
	}
	return nil
}
