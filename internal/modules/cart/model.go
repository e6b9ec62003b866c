package cart

import (
	"time"

	"github.com/google/uuid"
)

// Currency every quote is priced in.
const Currency = "USD"

// LineRequest is one cart entry as sent by the storefront.
type LineRequest struct {
	ProductID int `json:"product_id"`
	Quantity  int `json:"quantity"`
}

// QuoteRequest is the payload for pricing a cart.
type QuoteRequest struct {
	Items []LineRequest `json:"items"`
}

// Line is a priced cart entry.
type Line struct {
	ProductID         int     `json:"product_id"`
	Name              string  `json:"name"`
	Color             string  `json:"color,omitempty"`
	Option            string  `json:"option,omitempty"`
	Quantity          int     `json:"quantity"`
	UnitPrice         float64 `json:"unit_price"`
	OriginalUnitPrice float64 `json:"original_unit_price"`
	LineTotal         float64 `json:"line_total"`
}

// Quote is a priced snapshot of a cart. Quotes are computed on request and
// never stored; the ID only lets clients correlate a quote with a later step.
type Quote struct {
	ID        uuid.UUID `json:"id"`
	Lines     []Line    `json:"lines"`
	ItemCount int       `json:"item_count"`
	Subtotal  float64   `json:"subtotal"`
	Savings   float64   `json:"savings"`
	Total     float64   `json:"total"`
	Currency  string    `json:"currency"`
	CreatedAt time.Time `json:"created_at"`
}
