package orders

import (
	"errors"
	"strings"
	"testing"
	"time"

	"nova/models"
)

func validSubmission() Submission {
	return Submission{
		Customer: models.Customer{
			Name:    "Jane Doe",
			Email:   "jane@example.com",
			Phone:   "+3161234567",
			Address: "Main St 1, Amsterdam",
		},
		Payment: PaymentInput{Method: "cod"},
		Items:   []models.OrderItem{{ProductID: "iot-1001", Quantity: 2, PriceSnapshot: 14.99}},
	}
}

func TestValidateRejectsMissingCustomerFields(t *testing.T) {
	fields := []struct {
		name  string
		wreck func(*Submission)
	}{
		{"name", func(s *Submission) { s.Customer.Name = "" }},
		{"email", func(s *Submission) { s.Customer.Email = "  " }},
		{"phone", func(s *Submission) { s.Customer.Phone = "" }},
		{"address", func(s *Submission) { s.Customer.Address = "\t" }},
	}

	for _, tt := range fields {
		t.Run(tt.name, func(t *testing.T) {
			sub := validSubmission()
			tt.wreck(&sub)
			_, err := Validate(sub)
			if !errors.Is(err, models.ErrInvalidInput) {
				t.Errorf("missing %s: err = %v, want invalid input", tt.name, err)
			}
		})
	}
}

func TestValidatePayment(t *testing.T) {
	tests := []struct {
		name      string
		payment   PaymentInput
		wantErr   bool
		wantLast4 string
	}{
		{"cod passes", PaymentInput{Method: "cod"}, false, ""},
		{"card with 16 digits", PaymentInput{Method: "card", Number: "4111111111111111"}, false, "1111"},
		{"card number with spaces", PaymentInput{Method: "card", Number: "4111 1111 1111 1234"}, false, "1234"},
		{"card too short", PaymentInput{Method: "card", Number: "41111111"}, true, ""},
		{"card too long", PaymentInput{Method: "card", Number: "41111111111111112222"}, true, ""},
		{"pre-masked last4", PaymentInput{Method: "card", Last4: "9876"}, false, "9876"},
		{"bad pre-masked last4", PaymentInput{Method: "card", Last4: "98"}, true, ""},
		{"unknown method", PaymentInput{Method: "paypal"}, true, ""},
		{"empty method", PaymentInput{}, true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := validSubmission()
			sub.Payment = tt.payment
			order, err := Validate(sub)

			if tt.wantErr {
				if !errors.Is(err, models.ErrInvalidInput) {
					t.Errorf("err = %v, want invalid input", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if order.Payment.Last4 != tt.wantLast4 {
				t.Errorf("last4 = %q, want %q", order.Payment.Last4, tt.wantLast4)
			}
		})
	}
}

func TestValidateNeverStoresFullCardNumber(t *testing.T) {
	sub := validSubmission()
	sub.Payment = PaymentInput{Method: "card", Number: "4111111111111111"}
	order, err := Validate(sub)
	if err != nil {
		t.Fatal(err)
	}
	if len(order.Payment.Last4) != 4 {
		t.Errorf("last4 = %q, want 4 digits", order.Payment.Last4)
	}
	if strings.Contains(order.Payment.Last4, "411111") {
		t.Error("persisted payment leaks more than the last four digits")
	}
}

func TestValidateNormalizesItems(t *testing.T) {
	sub := validSubmission()
	sub.Items = []models.OrderItem{
		{ProductID: "p1", Quantity: 0, PriceSnapshot: 5},
		{ProductID: "p2", Quantity: -3, PriceSnapshot: -1},
	}
	order, err := Validate(sub)
	if err != nil {
		t.Fatal(err)
	}
	if order.Items[0].Quantity != 1 || order.Items[1].Quantity != 1 {
		t.Errorf("quantities = %d/%d, want clamped to 1", order.Items[0].Quantity, order.Items[1].Quantity)
	}
	if order.Items[1].PriceSnapshot != 0 {
		t.Errorf("negative snapshot = %v, want floored to 0", order.Items[1].PriceSnapshot)
	}
}

func TestValidateRejectsItemWithoutProduct(t *testing.T) {
	sub := validSubmission()
	sub.Items = append(sub.Items, models.OrderItem{Quantity: 1})
	if _, err := Validate(sub); !errors.Is(err, models.ErrInvalidInput) {
		t.Errorf("err = %v, want invalid input", err)
	}
}

func TestValidateDefaults(t *testing.T) {
	order, err := Validate(validSubmission())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(order.OrderID, "ord_") {
		t.Errorf("generated order id = %q, want ord_ prefix", order.OrderID)
	}
	if order.Status != "placed" {
		t.Errorf("status = %q, want placed", order.Status)
	}
	if order.CreatedAt.IsZero() {
		t.Error("createdAt not defaulted")
	}
}

func TestValidateKeepsCallerValues(t *testing.T) {
	sub := validSubmission()
	sub.OrderID = "ord_abc123"
	sub.Status = "shipped"
	sub.CreatedAt = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	order, err := Validate(sub)
	if err != nil {
		t.Fatal(err)
	}
	if order.OrderID != "ord_abc123" || order.Status != "shipped" {
		t.Errorf("order = %q/%q, caller values overwritten", order.OrderID, order.Status)
	}
	if !order.CreatedAt.Equal(sub.CreatedAt) {
		t.Errorf("createdAt = %v, want %v", order.CreatedAt, sub.CreatedAt)
	}
}
