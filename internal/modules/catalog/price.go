package catalog

import (
	"math"

	"github.com/shopspring/decimal"
)

// ComputePriceInfo derives the displayed price of p. It never fails: a
// negative or non-finite base price counts as zero, a non-finite discount as
// none, and the discount is clamped into [0, 100], so FinalPrice never
// exceeds OriginalPrice.
//
// The returned values are not rounded; use RoundPrice or FormatPrice at
// display time.
func ComputePriceInfo(p Product) PriceInfo {
	base := p.BasePrice
	if base < 0 || !finite(base) {
		base = 0
	}
	pct := p.DiscountPercent
	if pct < 0 || !finite(pct) {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}

	final := base
	if pct > 0 {
		final = base * (1 - pct/100)
	}
	return PriceInfo{
		FinalPrice:         final,
		OriginalPrice:      base,
		HasDiscount:        pct > 0,
		DiscountPercentage: pct,
	}
}

// RoundPrice rounds v half-up to two decimals. Every surface that shows a
// price goes through here so list and detail views never disagree by a cent.
func RoundPrice(v float64) float64 {
	if !finite(v) {
		return 0
	}
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}

// FormatPrice renders v with exactly two decimals using RoundPrice's rule.
func FormatPrice(v float64) string {
	if !finite(v) {
		v = 0
	}
	return decimal.NewFromFloat(v).StringFixed(2)
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// DisplayPrice is the rendered form of a PriceInfo.
type DisplayPrice struct {
	Final    string `json:"final"`
	Original string `json:"original,omitempty"`
	Discount string `json:"discount,omitempty"`
}

// Display formats pi for rendering. Original and Discount are only set when
// the product is discounted.
func (pi PriceInfo) Display() DisplayPrice {
	d := DisplayPrice{Final: FormatPrice(pi.FinalPrice)}
	if pi.HasDiscount {
		d.Original = FormatPrice(pi.OriginalPrice)
		d.Discount = "-" + decimal.NewFromFloat(pi.DiscountPercentage).Round(0).String() + "%"
	}
	return d
}
