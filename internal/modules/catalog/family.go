package catalog

import (
	"errors"
	"fmt"
	"slices"
)

// ErrCatalogIntegrity is wrapped by every load-time data problem.
var ErrCatalogIntegrity = errors.New("catalog integrity violation")

func integrityErr(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrCatalogIntegrity, fmt.Sprintf(format, args...))
}

// BuildFamilies groups products into variant families and validates them.
//
// When explicit families are given they are the single source of truth and
// products they do not list become singleton families. Otherwise families are
// the connected components of related_product_ids, with links treated as
// undirected. Returned families are ordered by the catalog position of their
// first member, and members are in catalog order.
//
// Data problems that make variant resolution ambiguous are returned joined
// into one error. Problems that are merely untidy come back as warnings.
func BuildFamilies(products []Product, explicit []VariantFamily) ([]VariantFamily, []string, error) {
	var errs []error
	var warnings []string

	pos := make(map[int]int, len(products))
	for i, p := range products {
		if _, dup := pos[p.ID]; dup {
			errs = append(errs, integrityErr("duplicate product id %d", p.ID))
			continue
		}
		pos[p.ID] = i
		if p.Color != nil && p.Color.ID == "" {
			errs = append(errs, integrityErr("product %d has a colour without an id", p.ID))
		}
		if p.AdditionalOption != nil && p.AdditionalOption.ID == "" {
			errs = append(errs, integrityErr("product %d has an additional option without an id", p.ID))
		}
	}
	if len(errs) > 0 {
		return nil, warnings, errors.Join(errs...)
	}

	uf := newUnionFind(len(products))
	names := map[int]string{}
	if len(explicit) > 0 {
		owner := map[int]string{}
		declared := map[string]bool{}
		for _, fam := range explicit {
			if fam.ID != "" && declared[fam.ID] {
				errs = append(errs, integrityErr("family id %q is declared more than once", fam.ID))
				continue
			}
			declared[fam.ID] = true
			first := -1
			for _, id := range fam.ProductIDs {
				i, ok := pos[id]
				if !ok {
					errs = append(errs, integrityErr("family %q references unknown product %d", fam.ID, id))
					continue
				}
				if prev, taken := owner[id]; taken && prev != fam.ID {
					errs = append(errs, integrityErr("product %d is in families %q and %q", id, prev, fam.ID))
					continue
				}
				owner[id] = fam.ID
				if first < 0 {
					first = i
				} else {
					uf.union(first, i)
				}
			}
			if first >= 0 && fam.ID != "" {
				names[uf.find(first)] = fam.ID
			}
		}
		for _, p := range products {
			for _, rid := range p.RelatedProductIDs {
				if owner[rid] != owner[p.ID] || owner[p.ID] == "" {
					warnings = append(warnings, fmt.Sprintf("product %d lists %d as related but they are not in the same family", p.ID, rid))
				}
			}
		}
	} else {
		related := make(map[int]map[int]bool, len(products))
		for _, p := range products {
			related[p.ID] = map[int]bool{}
			for _, rid := range p.RelatedProductIDs {
				related[p.ID][rid] = true
			}
		}
		for i, p := range products {
			for _, rid := range p.RelatedProductIDs {
				j, ok := pos[rid]
				if !ok {
					warnings = append(warnings, fmt.Sprintf("product %d lists unknown related product %d", p.ID, rid))
					continue
				}
				if !related[rid][p.ID] && rid != p.ID {
					warnings = append(warnings, fmt.Sprintf("product %d lists %d as related but not the other way round", p.ID, rid))
				}
				uf.union(i, j)
			}
		}
	}

	groups := map[int][]int{}
	var roots []int
	for i := range products {
		r := uf.find(i)
		if _, ok := groups[r]; !ok {
			roots = append(roots, r)
		}
		groups[r] = append(groups[r], i)
	}

	families := make([]VariantFamily, 0, len(roots))
	for _, r := range roots {
		members := groups[r]
		ids := make([]int, len(members))
		for k, i := range members {
			ids[k] = products[i].ID
		}
		name := names[r]
		if name == "" {
			name = fmt.Sprintf("family-%d", slices.Min(ids))
		}
		fam := VariantFamily{ID: name, ProductIDs: ids}
		errs = append(errs, checkCombinations(products, fam)...)
		families = append(families, fam)
	}

	if len(errs) > 0 {
		return nil, warnings, errors.Join(errs...)
	}
	return families, warnings, nil
}

// checkCombinations reports family members that share a (colour, option)
// pair, which would make FindProductByOptions pick one of them silently.
func checkCombinations(products []Product, fam VariantFamily) []error {
	type combo struct{ color, option string }
	seen := map[combo]int{}
	var errs []error
	for _, p := range familyMembers(products, fam.ProductIDs) {
		c := combo{p.ColorID(), p.OptionID()}
		if first, dup := seen[c]; dup {
			errs = append(errs, integrityErr("family %q: products %d and %d share colour %q and option %q",
				fam.ID, first, p.ID, c.color, c.option))
			continue
		}
		seen[c] = p.ID
	}
	return errs
}

type unionFind struct{ parent []int }

func newUnionFind(n int) *unionFind {
	uf := &unionFind{parent: make([]int, n)}
	for i := range uf.parent {
		uf.parent[i] = i
	}
	return uf
}

func (u *unionFind) find(i int) int {
	for u.parent[i] != i {
		u.parent[i] = u.parent[u.parent[i]]
		i = u.parent[i]
	}
	return i
}

// union keeps the smaller index as root so roots follow catalog order.
func (u *unionFind) union(a, b int) {
	ra, rb := u.find(a), u.find(b)
	if ra == rb {
		return
	}
	if rb < ra {
		ra, rb = rb, ra
	}
	u.parent[rb] = ra
}
