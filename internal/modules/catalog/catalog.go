package catalog

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"slices"

	logx "github.com/georgemunganga/printa-storefront/pkg/logger"
)

// Catalog is the immutable, validated snapshot every request reads from. It
// is built once at startup and never written to, so it is safe to share
// between goroutines.
type Catalog struct {
	products   []Product
	index      map[int]int
	families   []VariantFamily
	familyOf   map[int]int
	categories []Category
	checksum   string
}

// NewCatalog validates products and builds the id and family indexes. The
// returned warnings describe data that loads fine but looks inconsistent.
func NewCatalog(products []Product, categories []Category, explicit []VariantFamily) (*Catalog, []string, error) {
	families, warnings, err := BuildFamilies(products, explicit)
	if err != nil {
		return nil, warnings, err
	}

	c := &Catalog{
		products:   slices.Clone(products),
		index:      make(map[int]int, len(products)),
		families:   families,
		familyOf:   make(map[int]int, len(products)),
		categories: categories,
	}
	if c.products == nil {
		c.products = []Product{}
	}
	if c.categories == nil {
		c.categories = []Category{}
	}
	for i, p := range c.products {
		c.index[p.ID] = i
		if p.CategoryIDs == nil {
			c.products[i].CategoryIDs = []string{}
		}
	}
	for i, fam := range families {
		for _, id := range fam.ProductIDs {
			c.familyOf[id] = i
		}
	}

	sum, err := checksum(c.products, c.categories, c.families)
	if err != nil {
		return nil, warnings, err
	}
	c.checksum = sum
	return c, warnings, nil
}

// LoadCatalog reads everything from repo once and validates it.
func LoadCatalog(ctx context.Context, repo Repository) (*Catalog, error) {
	products, err := repo.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("load products: %w", err)
	}
	categories, err := repo.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("load categories: %w", err)
	}
	families, err := repo.ListFamilies(ctx)
	if err != nil {
		return nil, fmt.Errorf("load variant families: %w", err)
	}

	c, warnings, err := NewCatalog(products, categories, families)
	for _, w := range warnings {
		logx.Warn().Str("component", "catalog").Msg(w)
	}
	if err != nil {
		return nil, err
	}
	logx.Info().
		Int("products", len(c.products)).
		Int("families", len(c.families)).
		Str("checksum", c.checksum).
		Msg("catalog loaded")
	return c, nil
}

func checksum(v ...any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("checksum catalog: %w", err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:8]), nil
}

// Products returns the catalog in its source order. Callers must not modify it.
func (c *Catalog) Products() []Product { return c.products }

// Product returns a copy of the product with the given id.
func (c *Catalog) Product(id int) (Product, bool) {
	i, ok := c.index[id]
	if !ok {
		return Product{}, false
	}
	return c.products[i], true
}

// Family returns the variant family containing product id.
func (c *Catalog) Family(id int) (VariantFamily, bool) {
	i, ok := c.familyOf[id]
	if !ok {
		return VariantFamily{}, false
	}
	return c.families[i], true
}

func (c *Catalog) Families() []VariantFamily { return c.families }

func (c *Catalog) Categories() []Category { return c.categories }

// Checksum identifies the catalog content; it changes whenever the data does.
func (c *Catalog) Checksum() string { return c.checksum }

func (c *Catalog) Len() int { return len(c.products) }
