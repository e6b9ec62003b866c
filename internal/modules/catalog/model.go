package catalog

// VariantOption is one selectable value on a variant axis: a colour swatch or
// a secondary option such as "128 GB". Identity is by ID.
type VariantOption struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Specification is a free-form named attribute shown on the product page.
type Specification struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Product is a single sellable SKU in the storefront catalog. Products are
// read-only once the catalog is loaded.
type Product struct {
	ID                   int             `json:"id"`
	Name                 string          `json:"name"`
	Description          string          `json:"description,omitempty"`
	Brand                string          `json:"brand"`
	BasePrice            float64         `json:"base_price"`
	DiscountPercent      float64         `json:"discount_percent,omitempty"`
	Color                *VariantOption  `json:"color,omitempty"`
	AdditionalOptionType string          `json:"additional_option_type,omitempty"`
	AdditionalOption     *VariantOption  `json:"additional_option,omitempty"`
	RelatedProductIDs    []int           `json:"related_product_ids,omitempty"`
	CategoryIDs          []string        `json:"category_ids"`
	Rating               float64         `json:"rating,omitempty"`
	ReviewCount          int             `json:"review_count,omitempty"`
	Stock                int             `json:"stock"`
	Tags                 []string        `json:"tags,omitempty"`
	Specifications       []Specification `json:"specifications,omitempty"`
	Images               []string        `json:"images,omitempty"`
}

// ColorID returns the colour id, or "" when the product has no colour.
func (p *Product) ColorID() string { return optionID(p.Color) }

// OptionID returns the secondary option id, or "" when there is none.
func (p *Product) OptionID() string { return optionID(p.AdditionalOption) }

func optionID(o *VariantOption) string {
	if o == nil {
		return ""
	}
	return o.ID
}

// Category is a node in the category tree.
type Category struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Subcategories []Category `json:"subcategories,omitempty"`
}

// VariantFamily groups the SKUs that share a base item and differ only by
// colour and/or secondary option.
type VariantFamily struct {
	ID         string `json:"id"`
	ProductIDs []int  `json:"product_ids"`
}

// PriceInfo is derived from a Product on every call and never stored.
type PriceInfo struct {
	FinalPrice         float64 `json:"final_price"`
	OriginalPrice      float64 `json:"original_price"`
	HasDiscount        bool    `json:"has_discount"`
	DiscountPercentage float64 `json:"discount_percentage"`
}

// Page is one slice of a filtered, sorted product list.
type Page struct {
	Items []Product `json:"items"`
	Total int       `json:"total"`
}

// ProductDetail is the product page payload: the product, its price and the
// variant axes available from it.
type ProductDetail struct {
	Product  Product         `json:"product"`
	Price    PriceInfo       `json:"price"`
	Display  DisplayPrice    `json:"display"`
	FamilyID string          `json:"family_id"`
	Colors   []VariantOption `json:"colors"`
	Options  []VariantOption `json:"options"`
}

// VariantSelection lists the colours available while holding OptionID fixed
// and the options available while holding ColorID fixed.
type VariantSelection struct {
	ProductID int             `json:"product_id"`
	ColorID   string          `json:"color_id"`
	OptionID  string          `json:"option_id,omitempty"`
	Colors    []VariantOption `json:"colors"`
	Options   []VariantOption `json:"options"`
}

// Facets summarises the filterable values of a product set.
type Facets struct {
	Brands     []FacetCount `json:"brands"`
	Options    []FacetCount `json:"options"`
	PriceRange PriceRange   `json:"price_range"`
	Total      int          `json:"total"`
}

// FacetCount is a filter value and the number of products carrying it.
type FacetCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// PriceRange is the min and max final price of a product set.
type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}
