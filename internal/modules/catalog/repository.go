package catalog

import "context"

// Repository is a read-only source of catalog data. It is read once at
// startup by LoadCatalog.
type Repository interface {
	ListProducts(ctx context.Context) ([]Product, error)
	ListCategories(ctx context.Context) ([]Category, error)
	// ListFamilies may return nil, in which case families are derived from
	// related_product_ids.
	ListFamilies(ctx context.Context) ([]VariantFamily, error)
}
