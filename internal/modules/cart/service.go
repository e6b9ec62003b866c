package cart

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/georgemunganga/printa-storefront/internal/core/errx"
	"github.com/georgemunganga/printa-storefront/internal/modules/catalog"
	"github.com/google/uuid"
)

var (
	ErrEmptyCart         = errors.New("cart must contain at least one item")
	ErrInvalidQuantity   = errors.New("quantity must be greater than zero")
	ErrUnknownProduct    = errors.New("product not found")
	ErrInsufficientStock = errors.New("quantity exceeds available stock")
)

// ProductLookup is the slice of the catalog the cart needs.
type ProductLookup interface {
	GetProduct(ctx context.Context, id int) (*catalog.ProductDetail, error)
}

// Service prices carts against the catalog.
type Service interface {
	// Quote merges duplicate lines, checks quantities against displayed stock
	// and prices every line with the catalog's final price.
	Quote(ctx context.Context, req QuoteRequest) (*Quote, error)
}

type service struct {
	products ProductLookup
	now      func() time.Time
}

// NewService creates a cart service backed by products.
func NewService(products ProductLookup) Service {
	return &service{products: products, now: time.Now}
}

func (s *service) Quote(ctx context.Context, req QuoteRequest) (*Quote, error) {
	if len(req.Items) == 0 {
		return nil, errx.BadRequest(ErrEmptyCart)
	}

	// Merge repeated products, keeping first-seen order.
	var order []int
	qty := map[int]int{}
	for _, item := range req.Items {
		if item.Quantity <= 0 {
			return nil, errx.BadRequest(fmt.Errorf("%w (product %d)", ErrInvalidQuantity, item.ProductID))
		}
		if _, seen := qty[item.ProductID]; !seen {
			order = append(order, item.ProductID)
		}
		// Saturate instead of wrapping; anything this large fails the stock check.
		if qty[item.ProductID] > math.MaxInt-item.Quantity {
			qty[item.ProductID] = math.MaxInt
			continue
		}
		qty[item.ProductID] += item.Quantity
	}

	q := &Quote{
		ID:        uuid.New(),
		Lines:     make([]Line, 0, len(order)),
		Currency:  Currency,
		CreatedAt: s.now().UTC(),
	}
	var subtotal, total float64
	for _, id := range order {
		detail, err := s.products.GetProduct(ctx, id)
		if err != nil {
			if errors.Is(err, catalog.ErrProductNotFound) {
				return nil, errx.Unprocessable(fmt.Errorf("%w: %d", ErrUnknownProduct, id))
			}
			return nil, err
		}
		p := detail.Product
		n := qty[id]
		if n > p.Stock {
			return nil, errx.Unprocessable(fmt.Errorf("%w: product %d has %d, requested %d",
				ErrInsufficientStock, id, p.Stock, n))
		}

		unit := catalog.RoundPrice(detail.Price.FinalPrice)
		original := catalog.RoundPrice(detail.Price.OriginalPrice)
		line := Line{
			ProductID:         id,
			Name:              p.Name,
			Quantity:          n,
			UnitPrice:         unit,
			OriginalUnitPrice: original,
			LineTotal:         catalog.RoundPrice(unit * float64(n)),
		}
		if p.Color != nil {
			line.Color = p.Color.Name
		}
		if p.AdditionalOption != nil {
			line.Option = p.AdditionalOption.Name
		}
		q.Lines = append(q.Lines, line)
		q.ItemCount += n
		subtotal += original * float64(n)
		total += line.LineTotal
	}

	q.Subtotal = catalog.RoundPrice(subtotal)
	q.Total = catalog.RoundPrice(total)
	q.Savings = catalog.RoundPrice(q.Subtotal - q.Total)
	return q, nil
}
