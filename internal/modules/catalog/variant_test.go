package catalog

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

var (
	red      = VariantOption{ID: "red", Name: "Red", Value: "#ff0000"}
	blue     = VariantOption{ID: "blue", Name: "Blue", Value: "#0000ff"}
	black    = VariantOption{ID: "black", Name: "Black", Value: "#000000"}
	gb64     = VariantOption{ID: "64gb", Name: "64 GB", Value: "64 GB"}
	gb128    = VariantOption{ID: "128gb", Name: "128 GB", Value: "128 GB"}
	gb256    = VariantOption{ID: "256gb", Name: "256 GB", Value: "256 GB"}
	optionOf = func(o VariantOption) *VariantOption { return &o }
)

// phoneFamily is a 2x3 colour/storage grid with one combination missing.
func phoneFamily() []Product {
	return []Product{
		{ID: 1, Name: "Phone Red 64", BasePrice: 500, Color: optionOf(red), AdditionalOption: optionOf(gb64), RelatedProductIDs: []int{2, 3, 4, 5}, Stock: 3},
		{ID: 2, Name: "Phone Red 128", BasePrice: 600, Color: optionOf(red), AdditionalOption: optionOf(gb128), RelatedProductIDs: []int{1, 3, 4, 5}, Stock: 3},
		{ID: 3, Name: "Phone Blue 64", BasePrice: 500, Color: optionOf(blue), AdditionalOption: optionOf(gb64), RelatedProductIDs: []int{1, 2, 4, 5}, Stock: 3},
		{ID: 4, Name: "Phone Blue 256", BasePrice: 700, Color: optionOf(blue), AdditionalOption: optionOf(gb256), RelatedProductIDs: []int{1, 2, 3, 5}, Stock: 3},
		{ID: 5, Name: "Phone Black 64", BasePrice: 500, Color: optionOf(black), AdditionalOption: optionOf(gb64), RelatedProductIDs: []int{1, 2, 3, 4}, Stock: 3},
		{ID: 6, Name: "Case", BasePrice: 20, Stock: 50},
	}
}

func TestAvailableOptionsForColor(t *testing.T) {
	// Two products in one colour yield both of their options.
	all := []Product{
		{ID: 1, Color: optionOf(red), AdditionalOption: optionOf(gb64), RelatedProductIDs: []int{2}},
		{ID: 2, Color: optionOf(red), AdditionalOption: optionOf(gb128), RelatedProductIDs: []int{1}},
	}
	got := AvailableOptionsForColor(all, []int{1, 2}, "red")
	if diff := cmp.Diff([]VariantOption{gb64, gb128}, got); diff != "" {
		t.Errorf("AvailableOptionsForColor() mismatch (-want +got):\n%s", diff)
	}

	tests := []struct {
		name  string
		color string
		want  []VariantOption
	}{
		{"blue", "blue", []VariantOption{gb64, gb256}},
		{"black", "black", []VariantOption{gb64}},
		{"unknown colour", "green", []VariantOption{}},
	}
	family := []int{1, 2, 3, 4, 5}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AvailableOptionsForColor(phoneFamily(), family, tt.color)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestAvailableColorsForOption(t *testing.T) {
	family := []int{1, 2, 3, 4, 5}
	tests := []struct {
		name   string
		option string
		want   []VariantOption
	}{
		{"64 GB in catalog order", "64gb", []VariantOption{red, blue, black}},
		{"128 GB", "128gb", []VariantOption{red}},
		{"no option matches nothing here", "", []VariantOption{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AvailableColorsForOption(phoneFamily(), family, tt.option)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestAvailableColorsDeduplicatesByID(t *testing.T) {
	renamed := VariantOption{ID: "red", Name: "Crimson", Value: "#dc143c"}
	all := []Product{
		{ID: 1, Color: optionOf(red)},
		{ID: 2, Color: optionOf(renamed)},
		{ID: 3, Color: optionOf(blue)},
	}
	got := AvailableColorsForOption(all, []int{1, 2, 3}, "")
	if diff := cmp.Diff([]VariantOption{red, blue}, got); diff != "" {
		t.Errorf("first-seen colour should win (-want +got):\n%s", diff)
	}
}

func TestVariantFunctionsIgnoreMissingMembers(t *testing.T) {
	all := phoneFamily()
	if got := AvailableColorsForOption(all, nil, "64gb"); len(got) != 0 {
		t.Errorf("empty family: got %v", got)
	}
	if got := AvailableOptionsForColor(all, []int{99, 100}, "red"); len(got) != 0 {
		t.Errorf("unknown ids: got %v", got)
	}
	if got := FindProductByOptions(all, []int{99}, "red", "64gb"); got != nil {
		t.Errorf("unknown ids: got product %d", got.ID)
	}
}

func TestFindProductByOptions(t *testing.T) {
	family := []int{1, 2, 3, 4, 5}
	tests := []struct {
		name   string
		color  string
		option string
		wantID int
	}{
		{"red 128", "red", "128gb", 2},
		{"blue 256", "blue", "256gb", 4},
		{"missing combination", "red", "256gb", 0},
		{"colour only does not match optioned products", "red", "", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FindProductByOptions(phoneFamily(), family, tt.color, tt.option)
			if tt.wantID == 0 {
				if got != nil {
					t.Fatalf("want nil, got product %d", got.ID)
				}
				return
			}
			if got == nil || got.ID != tt.wantID {
				t.Fatalf("want product %d, got %+v", tt.wantID, got)
			}
		})
	}
}

func TestFindProductByOptionsWithoutSecondaryOption(t *testing.T) {
	all := []Product{
		{ID: 10, Color: optionOf(red)},
		{ID: 11, Color: optionOf(blue)},
	}
	got := FindProductByOptions(all, []int{10, 11}, "blue", "")
	if got == nil || got.ID != 11 {
		t.Fatalf("want product 11, got %+v", got)
	}
}

func TestFindProductByOptionsReturnsCopy(t *testing.T) {
	all := phoneFamily()
	got := FindProductByOptions(all, []int{1, 2}, "red", "64gb")
	got.Name = "changed"
	if all[0].Name != "Phone Red 64" {
		t.Errorf("catalog product was modified through the result")
	}
}

// Every family member must be reachable from its own colour and option.
func TestResolutionRoundTrip(t *testing.T) {
	all := phoneFamily()
	family := []int{1, 2, 3, 4, 5}
	for _, p := range all[:5] {
		got := FindProductByOptions(all, family, p.ColorID(), p.OptionID())
		if got == nil || got.ID != p.ID {
			t.Errorf("product %d: resolved to %+v", p.ID, got)
		}
	}
}
