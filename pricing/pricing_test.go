package pricing

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestComputeNoPromo(t *testing.T) {
	tests := []struct {
		name  string
		lines []Line
		want  float64
	}{
		{"empty cart", nil, 0},
		{"single line", []Line{{Price: 10, Qty: 1}}, 10*1.2 + 7.5},
		{"multiple lines", []Line{{Price: 10, Qty: 2}, {Price: 5.5, Qty: 3}}, 36.5*1.2 + 7.5},
		{"zero-price line still ships", []Line{{Price: 0, Qty: 1}}, 7.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compute(tt.lines, "")
			if !almostEqual(got.Total, tt.want) {
				t.Errorf("Compute(%v).Total = %v, want %v", tt.lines, got.Total, tt.want)
			}
			if got.Discount != 0 {
				t.Errorf("no-promo discount = %v, want 0", got.Discount)
			}
		})
	}
}

func TestComputePromoCodes(t *testing.T) {
	tests := []struct {
		name         string
		lines        []Line
		promo        string
		wantDiscount float64
		wantShipping float64
	}{
		{"SAVE10 on 100", []Line{{Price: 100, Qty: 1}}, "SAVE10", 10, 7.5},
		{"SAVE10 is case-insensitive", []Line{{Price: 100, Qty: 1}}, "save10", 10, 7.5},
		{"WELCOME5 below threshold", []Line{{Price: 29.99, Qty: 1}}, "WELCOME5", 0, 7.5},
		{"WELCOME5 at threshold", []Line{{Price: 30, Qty: 1}}, "WELCOME5", 5, 7.5},
		{"FREESHIP zeroes shipping only", []Line{{Price: 100, Qty: 1}}, "FREESHIP", 0, 0},
		{"unknown code ignored by engine", []Line{{Price: 100, Qty: 1}}, "NOPE", 0, 7.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compute(tt.lines, tt.promo)
			if !almostEqual(got.Discount, tt.wantDiscount) {
				t.Errorf("discount = %v, want %v", got.Discount, tt.wantDiscount)
			}
			if !almostEqual(got.Shipping, tt.wantShipping) {
				t.Errorf("shipping = %v, want %v", got.Shipping, tt.wantShipping)
			}
		})
	}
}

func TestComputeTaxOnPreDiscountSubtotal(t *testing.T) {
	got := Compute([]Line{{Price: 100, Qty: 1}}, "SAVE10")
	if !almostEqual(got.Tax, 20) {
		t.Errorf("tax = %v, want 20 (computed before discount)", got.Tax)
	}
	if !almostEqual(got.Total, 90+20+7.5) {
		t.Errorf("total = %v, want 117.5", got.Total)
	}
}

// Worked storefront example: p1 at 10.00, qty 2, SAVE10.
func TestComputeWorkedExample(t *testing.T) {
	got := Compute([]Line{{Price: 10, Qty: 2}}, "SAVE10")
	want := struct{ subtotal, discount, tax, shipping, total float64 }{20, 2, 4, 7.5, 29.5}

	if !almostEqual(got.Subtotal, want.subtotal) {
		t.Errorf("subtotal = %v, want %v", got.Subtotal, want.subtotal)
	}
	if !almostEqual(got.Discount, want.discount) {
		t.Errorf("discount = %v, want %v", got.Discount, want.discount)
	}
	if !almostEqual(got.Tax, want.tax) {
		t.Errorf("tax = %v, want %v", got.Tax, want.tax)
	}
	if !almostEqual(got.Shipping, want.shipping) {
		t.Errorf("shipping = %v, want %v", got.Shipping, want.shipping)
	}
	if !almostEqual(got.Total, want.total) {
		t.Errorf("total = %v, want %v", got.Total, want.total)
	}
}

func TestComputeDiscountFloor(t *testing.T) {
	// Discount can never push the goods portion below zero.
	got := Compute([]Line{{Price: 0.01, Qty: 1}}, "SAVE10")
	if got.Total < got.Tax+got.Shipping {
		t.Errorf("total %v dropped below tax+shipping %v", got.Total, got.Tax+got.Shipping)
	}
}

func TestValidCode(t *testing.T) {
	tests := []struct {
		code string
		want bool
	}{
		{"SAVE10", true},
		{"welcome5", true},
		{" FREESHIP ", true},
		{"", false},
		{"SAVE20", false},
	}

	for _, tt := range tests {
		if got := ValidCode(tt.code); got != tt.want {
			t.Errorf("ValidCode(%q) = %v, want %v", tt.code, got, tt.want)
		}
	}
}
