package pricing

import (
	"strings"

	"nova/models"
)

const (
	taxRate     = 0.20
	shippingFee = 7.50
)

// Line is a priced cart line: unit price times quantity.
type Line struct {
	Price float64 `json:"price"`
	Qty   int     `json:"qty"`
}

// Quote holds the running totals a discount rule may adjust.
type Quote struct {
	Subtotal float64
	Shipping float64
	Discount float64
}

// A rule inspects the quote and returns the adjusted discount and shipping.
// Rules are folded in order; the discount accumulator never decreases, so
// overlapping codes take the larger discount rather than stacking.
type rule struct {
	code  string
	apply func(q Quote) Quote
}

var rules = []rule{
	{"SAVE10", func(q Quote) Quote {
		q.Discount = max(q.Discount, q.Subtotal*0.10)
		return q
	}},
	{"WELCOME5", func(q Quote) Quote {
		if q.Subtotal >= 30 {
			q.Discount = max(q.Discount, 5)
		}
		return q
	}},
	{"FREESHIP", func(q Quote) Quote {
		q.Shipping = 0
		return q
	}},
}

// ValidCode reports whether a promo code selects a known rule.
// Codes are case-insensitive.
func ValidCode(code string) bool {
	code = strings.ToUpper(strings.TrimSpace(code))
	for _, r := range rules {
		if r.code == code {
			return true
		}
	}
	return false
}

// Compute prices a set of cart lines with an optional promo code. It is a
// pure function: unknown codes are simply ignored here and must be rejected
// at the API boundary with ValidCode.
func Compute(lines []Line, promo string) models.Totals {
	q := Quote{}
	for _, l := range lines {
		q.Subtotal += l.Price * float64(l.Qty)
	}
	if len(lines) > 0 {
		q.Shipping = shippingFee
	}

	// Tax applies to the pre-discount subtotal.
	tax := q.Subtotal * taxRate

	code := strings.ToUpper(strings.TrimSpace(promo))
	for _, r := range rules {
		if r.code == code {
			q = r.apply(q)
		}
	}

	return models.Totals{
		Subtotal: q.Subtotal,
		Tax:      tax,
		Shipping: q.Shipping,
		Discount: q.Discount,
		Total:    max(0, q.Subtotal-q.Discount) + tax + q.Shipping,
	}
}
