package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/lib/pq"
)

// postgresRepo loads the catalog from the storefront_* tables. It only ever
// reads; the catalog has no write path.
type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

// productRow holds one storefront_products row before decoding. Variant
// options and specifications are stored as JSONB.
type productRow struct {
	ID                   int64
	Name                 string
	Description          sql.NullString
	Brand                string
	BasePrice            float64
	DiscountPercent      sql.NullFloat64
	Color                []byte
	AdditionalOptionType sql.NullString
	AdditionalOption     []byte
	RelatedProductIDs    pq.Int64Array
	CategoryIDs          pq.StringArray
	Rating               sql.NullFloat64
	ReviewCount          sql.NullInt64
	Stock                int
	Tags                 pq.StringArray
	Specifications       []byte
	Images               pq.StringArray
}

func scanProductRow(scan func(...interface{}) error) (*productRow, error) {
	row := &productRow{}
	err := scan(&row.ID, &row.Name, &row.Description, &row.Brand, &row.BasePrice,
		&row.DiscountPercent, &row.Color, &row.AdditionalOptionType, &row.AdditionalOption,
		&row.RelatedProductIDs, &row.CategoryIDs, &row.Rating, &row.ReviewCount,
		&row.Stock, &row.Tags, &row.Specifications, &row.Images)
	if err != nil {
		return nil, err
	}
	return row, nil
}

func decodeOption(raw []byte) (*VariantOption, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var o VariantOption
	if err := json.Unmarshal(raw, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

func (row *productRow) product() (Product, error) {
	p := Product{
		ID:                   int(row.ID),
		Name:                 row.Name,
		Description:          row.Description.String,
		Brand:                row.Brand,
		BasePrice:            row.BasePrice,
		DiscountPercent:      row.DiscountPercent.Float64,
		AdditionalOptionType: row.AdditionalOptionType.String,
		CategoryIDs:          []string(row.CategoryIDs),
		Rating:               row.Rating.Float64,
		ReviewCount:          int(row.ReviewCount.Int64),
		Stock:                row.Stock,
		Tags:                 []string(row.Tags),
		Images:               []string(row.Images),
	}
	if p.CategoryIDs == nil {
		p.CategoryIDs = []string{}
	}
	for _, id := range row.RelatedProductIDs {
		p.RelatedProductIDs = append(p.RelatedProductIDs, int(id))
	}

	var err error
	if p.Color, err = decodeOption(row.Color); err != nil {
		return p, fmt.Errorf("product %d color: %w", row.ID, err)
	}
	if p.AdditionalOption, err = decodeOption(row.AdditionalOption); err != nil {
		return p, fmt.Errorf("product %d additional_option: %w", row.ID, err)
	}
	if len(row.Specifications) > 0 && string(row.Specifications) != "null" {
		if err := json.Unmarshal(row.Specifications, &p.Specifications); err != nil {
			return p, fmt.Errorf("product %d specifications: %w", row.ID, err)
		}
	}
	return p, nil
}

func (r *postgresRepo) ListProducts(ctx context.Context) ([]Product, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id,name,description,brand,base_price,discount_percent,color,
		       additional_option_type,additional_option,related_product_ids,category_ids,
		       rating,review_count,stock,tags,specifications,images
		FROM storefront_products ORDER BY position, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		row, err := scanProductRow(rows.Scan)
		if err != nil {
			return nil, err
		}
		p, err := row.product()
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *postgresRepo) ListCategories(ctx context.Context) ([]Category, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id,name,COALESCE(parent_id,'') FROM storefront_categories ORDER BY position, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var nodes []categoryRow
	for rows.Next() {
		var n categoryRow
		if err := rows.Scan(&n.ID, &n.Name, &n.ParentID); err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return buildCategoryTree(nodes), nil
}

func (r *postgresRepo) ListFamilies(ctx context.Context) ([]VariantFamily, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id,product_ids FROM storefront_variant_families ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var families []VariantFamily
	for rows.Next() {
		var (
			id  string
			ids pq.Int64Array
		)
		if err := rows.Scan(&id, &ids); err != nil {
			return nil, err
		}
		fam := VariantFamily{ID: id}
		for _, pid := range ids {
			fam.ProductIDs = append(fam.ProductIDs, int(pid))
		}
		families = append(families, fam)
	}
	return families, rows.Err()
}
