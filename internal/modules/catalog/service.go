package catalog

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/georgemunganga/printa-storefront/internal/core/errx"
	logx "github.com/georgemunganga/printa-storefront/pkg/logger"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrEmptyQuery      = errors.New("search query is required")
)

// Service defines the storefront catalog operations. Every method reads the
// immutable catalog snapshot; none of them write.
type Service interface {
	// GetProduct returns the product page payload for id.
	GetProduct(ctx context.Context, id int) (*ProductDetail, error)

	// ListCategory, Search and Favorites are the three list views. They all
	// go through FilterAndPaginate and differ only in predicates and page size.
	ListCategory(ctx context.Context, q ListQuery) (*Page, error)
	Search(ctx context.Context, q ListQuery) (*Page, error)
	Favorites(ctx context.Context, ids []int, page int) (*Page, error)

	// Variants lists the selectable colours and options around product id.
	// A nil colorID or optionID means "hold the product's own value".
	Variants(ctx context.Context, id int, colorID, optionID *string) (*VariantSelection, error)

	// ResolveVariant returns the family member matching the selection, or
	// nil when that combination has no SKU.
	ResolveVariant(ctx context.Context, id int, colorID, optionID string) (*Product, error)

	Categories(ctx context.Context) ([]Category, error)
	Facets(ctx context.Context, categoryID string) (*Facets, error)
}

// ListQuery carries the user-selectable filters of a list view.
type ListQuery struct {
	Category   string
	Brands     []string
	MinPrice   *float64
	MaxPrice   *float64
	MinRating  *float64
	Options    []string
	OptionType string
	Query      string
	Sort       SortOrder
	Page       int
}

type service struct {
	catalog *Catalog
	cache   PageCache
}

// NewService creates a catalog service over c. cache may be nil.
func NewService(c *Catalog, cache PageCache) Service {
	return &service{catalog: c, cache: cache}
}

func notFound(id int) error {
	return errx.NotFound(fmt.Errorf("%w: %d", ErrProductNotFound, id))
}

func (s *service) GetProduct(ctx context.Context, id int) (*ProductDetail, error) {
	p, ok := s.catalog.Product(id)
	if !ok {
		return nil, notFound(id)
	}
	fam, _ := s.catalog.Family(id)
	all := s.catalog.Products()
	price := ComputePriceInfo(p)
	return &ProductDetail{
		Product:  p,
		Price:    price,
		Display:  price.Display(),
		FamilyID: fam.ID,
		Colors:   AvailableColorsForOption(all, fam.ProductIDs, p.OptionID()),
		Options:  AvailableOptionsForColor(all, fam.ProductIDs, p.ColorID()),
	}, nil
}

func (s *service) filters(q ListQuery) Filters {
	f := Filters{
		Brands:     q.Brands,
		MinPrice:   q.MinPrice,
		MaxPrice:   q.MaxPrice,
		MinRating:  q.MinRating,
		Options:    q.Options,
		OptionType: q.OptionType,
		Query:      q.Query,
	}
	if q.Category != "" {
		f.CategoryIDs = DescendantIDs(s.catalog.Categories(), q.Category)
	}
	return f
}

func (s *service) ListCategory(ctx context.Context, q ListQuery) (*Page, error) {
	return s.page(ctx, "category", q, s.filters(q), CategoryPageSize)
}

func (s *service) Search(ctx context.Context, q ListQuery) (*Page, error) {
	if strings.TrimSpace(q.Query) == "" {
		return nil, errx.BadRequest(ErrEmptyQuery)
	}
	return s.page(ctx, "search", q, s.filters(q), SearchPageSize)
}

func (s *service) Favorites(ctx context.Context, ids []int, page int) (*Page, error) {
	if len(ids) == 0 {
		return &Page{Items: []Product{}, Total: 0}, nil
	}
	f := Filters{ProductIDs: ids}
	result := FilterAndPaginate(s.catalog.Products(), f, SortNone, page, FavoritesPageSize)
	return &result, nil
}

// page runs FilterAndPaginate, going through the page cache when one is
// configured. Cache failures are logged and treated as misses.
func (s *service) page(ctx context.Context, view string, q ListQuery, f Filters, size int) (*Page, error) {
	var key string
	if s.cache != nil {
		key = s.catalog.Checksum() + ":" + view + ":" + q.cacheKey()
		cached, err := s.cache.Get(ctx, key)
		if err == nil {
			return cached, nil
		}
		if !errx.IsCacheMiss(err) {
			logx.Warn().Err(err).Str("key", key).Msg("page cache read failed")
		}
	}

	result := FilterAndPaginate(s.catalog.Products(), f, q.Sort, q.Page, size)

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, &result); err != nil {
			logx.Warn().Err(err).Str("key", key).Msg("page cache write failed")
		}
	}
	return &result, nil
}

// cacheKey renders q canonically: set-valued filters are sorted so that
// equivalent queries share one entry. Free-text values are quoted so a
// separator inside a value cannot merge two different queries.
func (q ListQuery) cacheKey() string {
	num := func(v *float64) string {
		if v == nil {
			return ""
		}
		return strconv.FormatFloat(*v, 'f', -1, 64)
	}
	set := func(values []string) string {
		out := make([]string, 0, len(values))
		for _, v := range values {
			out = append(out, strconv.Quote(strings.ToLower(strings.TrimSpace(v))))
		}
		slices.Sort(out)
		return strings.Join(slices.Compact(out), ",")
	}
	return strings.Join([]string{
		"c=" + strconv.Quote(q.Category),
		"b=" + set(q.Brands),
		"min=" + num(q.MinPrice),
		"max=" + num(q.MaxPrice),
		"r=" + num(q.MinRating),
		"o=" + set(q.Options),
		"ot=" + strconv.Quote(strings.ToLower(q.OptionType)),
		"q=" + strconv.Quote(strings.ToLower(strings.TrimSpace(q.Query))),
		"s=" + string(q.Sort),
		"p=" + strconv.Itoa(q.Page),
	}, "|")
}

func (s *service) Variants(ctx context.Context, id int, colorID, optionID *string) (*VariantSelection, error) {
	p, ok := s.catalog.Product(id)
	if !ok {
		return nil, notFound(id)
	}
	color, option := p.ColorID(), p.OptionID()
	if colorID != nil {
		color = *colorID
	}
	if optionID != nil {
		option = *optionID
	}
	fam, _ := s.catalog.Family(id)
	all := s.catalog.Products()
	return &VariantSelection{
		ProductID: id,
		ColorID:   color,
		OptionID:  option,
		Colors:    AvailableColorsForOption(all, fam.ProductIDs, option),
		Options:   AvailableOptionsForColor(all, fam.ProductIDs, color),
	}, nil
}

func (s *service) ResolveVariant(ctx context.Context, id int, colorID, optionID string) (*Product, error) {
	if _, ok := s.catalog.Product(id); !ok {
		return nil, notFound(id)
	}
	fam, _ := s.catalog.Family(id)
	return FindProductByOptions(s.catalog.Products(), fam.ProductIDs, colorID, optionID), nil
}

func (s *service) Categories(ctx context.Context) ([]Category, error) {
	return s.catalog.Categories(), nil
}

func (s *service) Facets(ctx context.Context, categoryID string) (*Facets, error) {
	var f Filters
	if categoryID != "" {
		f.CategoryIDs = DescendantIDs(s.catalog.Categories(), categoryID)
	}
	facets := ComputeFacets(s.catalog.Products(), f)
	return &facets, nil
}
