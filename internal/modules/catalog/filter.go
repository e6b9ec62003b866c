package catalog

import (
	"math"
	"slices"
	"strings"

	"golang.org/x/text/cases"
)

// Page sizes used by the storefront views.
const (
	CategoryPageSize  = 12
	FavoritesPageSize = 8
	SearchPageSize    = 12
)

// DefaultOptionType is the specification name the secondary-option filter
// falls back to when a product does not model the option structurally.
const DefaultOptionType = "Storage"

// SortOrder selects how filtered products are ordered.
type SortOrder string

const (
	SortNone      SortOrder = ""
	SortPriceAsc  SortOrder = "price_asc"
	SortPriceDesc SortOrder = "price_desc"
)

// ParseSortOrder maps a query value onto a SortOrder. Unknown values keep
// catalog order.
func ParseSortOrder(v string) SortOrder {
	switch SortOrder(strings.ToLower(strings.TrimSpace(v))) {
	case SortPriceAsc:
		return SortPriceAsc
	case SortPriceDesc:
		return SortPriceDesc
	default:
		return SortNone
	}
}

// Filters is a set of independent predicates combined with AND. A zero-value
// field does not filter.
type Filters struct {
	// CategoryIDs matches products tagged with any of these ids. Callers pass
	// the selected category together with its descendants.
	CategoryIDs []string
	// Brands matches case-insensitively.
	Brands []string
	// MinPrice and MaxPrice bound the final price, inclusive.
	MinPrice *float64
	MaxPrice *float64
	// MinRating keeps products rated at least this much.
	MinRating *float64
	// Options matches the secondary option value, or a specification entry
	// named OptionType when the product has no structured option match.
	Options    []string
	OptionType string
	// Query matches name, brand or tags as a case-insensitive substring.
	Query string
	// ProductIDs restricts results to these ids (favorites view).
	ProductIDs []int
}

type predicate func(p *Product, price PriceInfo) bool

// foldSet keys values by their case-folded form. A cases.Caser is stateful,
// so each caller brings its own.
func foldSet(fold cases.Caser, values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v != "" {
			set[fold.String(v)] = true
		}
	}
	return set
}

func (f Filters) predicates() []predicate {
	var preds []predicate
	fold := cases.Fold()

	if len(f.CategoryIDs) > 0 {
		want := make(map[string]bool, len(f.CategoryIDs))
		for _, id := range f.CategoryIDs {
			want[id] = true
		}
		preds = append(preds, func(p *Product, _ PriceInfo) bool {
			for _, id := range p.CategoryIDs {
				if want[id] {
					return true
				}
			}
			return false
		})
	}

	if brands := foldSet(fold, f.Brands); len(brands) > 0 {
		preds = append(preds, func(p *Product, _ PriceInfo) bool {
			return brands[fold.String(strings.TrimSpace(p.Brand))]
		})
	}

	if f.MinPrice != nil || f.MaxPrice != nil {
		lo, hi := 0.0, math.Inf(1)
		if f.MinPrice != nil {
			lo = *f.MinPrice
		}
		if f.MaxPrice != nil {
			hi = *f.MaxPrice
		}
		preds = append(preds, func(_ *Product, price PriceInfo) bool {
			return price.FinalPrice >= lo && price.FinalPrice <= hi
		})
	}

	if f.MinRating != nil {
		minRating := *f.MinRating
		preds = append(preds, func(p *Product, _ PriceInfo) bool { return p.Rating >= minRating })
	}

	if options := foldSet(fold, f.Options); len(options) > 0 {
		specName := f.OptionType
		if specName == "" {
			specName = DefaultOptionType
		}
		preds = append(preds, func(p *Product, _ PriceInfo) bool {
			if p.AdditionalOption != nil && options[fold.String(p.AdditionalOption.Value)] {
				return true
			}
			for _, s := range p.Specifications {
				if strings.EqualFold(s.Name, specName) && options[fold.String(s.Value)] {
					return true
				}
			}
			return false
		})
	}

	if q := fold.String(strings.TrimSpace(f.Query)); q != "" {
		preds = append(preds, func(p *Product, _ PriceInfo) bool {
			if strings.Contains(fold.String(p.Name), q) || strings.Contains(fold.String(p.Brand), q) {
				return true
			}
			for _, tag := range p.Tags {
				if strings.Contains(fold.String(tag), q) {
					return true
				}
			}
			return false
		})
	}

	if len(f.ProductIDs) > 0 {
		ids := make(map[int]bool, len(f.ProductIDs))
		for _, id := range f.ProductIDs {
			ids[id] = true
		}
		preds = append(preds, func(p *Product, _ PriceInfo) bool { return ids[p.ID] })
	}

	return preds
}

type pricedProduct struct {
	product *Product
	price   PriceInfo
}

// apply returns the products of all that satisfy every predicate in f, in
// catalog order, together with their computed prices.
func (f Filters) apply(all []Product) []pricedProduct {
	preds := f.predicates()
	out := make([]pricedProduct, 0, len(all))
next:
	for i := range all {
		p := &all[i]
		price := ComputePriceInfo(*p)
		for _, pred := range preds {
			if !pred(p, price) {
				continue next
			}
		}
		out = append(out, pricedProduct{product: p, price: price})
	}
	return out
}

// FilterAndPaginate filters all with f, orders the result by sort (stable,
// on final price) and returns the 1-based page of size pageSize. Pages
// outside the result, page < 1 and pageSize <= 0 all yield an empty Items
// slice; Total is always the number of products that matched.
func FilterAndPaginate(all []Product, f Filters, sort SortOrder, page, pageSize int) Page {
	matched := f.apply(all)

	switch sort {
	case SortPriceAsc:
		slices.SortStableFunc(matched, func(a, b pricedProduct) int {
			return cmpFloat(a.price.FinalPrice, b.price.FinalPrice)
		})
	case SortPriceDesc:
		slices.SortStableFunc(matched, func(a, b pricedProduct) int {
			return cmpFloat(b.price.FinalPrice, a.price.FinalPrice)
		})
	}

	result := Page{Items: []Product{}, Total: len(matched)}
	if page < 1 || pageSize <= 0 || len(matched) == 0 {
		return result
	}
	// Compare page counts first; (page-1)*pageSize can overflow.
	if page-1 > (len(matched)-1)/pageSize {
		return result
	}
	start := (page - 1) * pageSize
	end := min(start+pageSize, len(matched))
	for _, m := range matched[start:end] {
		result.Items = append(result.Items, *m.product)
	}
	return result
}

func cmpFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// ComputeFacets summarises the products matching f: brand and secondary
// option value counts in first-seen order, and the final-price range.
func ComputeFacets(all []Product, f Filters) Facets {
	matched := f.apply(all)
	facets := Facets{Brands: []FacetCount{}, Options: []FacetCount{}, Total: len(matched)}
	fold := cases.Fold()

	brandIdx := map[string]int{}
	optionIdx := map[string]int{}
	for i, m := range matched {
		price := m.price.FinalPrice
		if i == 0 || price < facets.PriceRange.Min {
			facets.PriceRange.Min = price
		}
		if i == 0 || price > facets.PriceRange.Max {
			facets.PriceRange.Max = price
		}

		if b := strings.TrimSpace(m.product.Brand); b != "" {
			key := fold.String(b)
			if k, ok := brandIdx[key]; ok {
				facets.Brands[k].Count++
			} else {
				brandIdx[key] = len(facets.Brands)
				facets.Brands = append(facets.Brands, FacetCount{Value: b, Count: 1})
			}
		}
		if o := m.product.AdditionalOption; o != nil && o.Value != "" {
			key := fold.String(o.Value)
			if k, ok := optionIdx[key]; ok {
				facets.Options[k].Count++
			} else {
				optionIdx[key] = len(facets.Options)
				facets.Options = append(facets.Options, FacetCount{Value: o.Value, Count: 1})
			}
		}
	}
	facets.PriceRange.Min = RoundPrice(facets.PriceRange.Min)
	facets.PriceRange.Max = RoundPrice(facets.PriceRange.Max)
	return facets
}
