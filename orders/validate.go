package orders

import (
	"strings"
	"time"

	"nova/models"
	"nova/utils"
)

// Submission is the checkout payload. Payment may carry a full card number;
// only its last four digits are ever persisted.
type Submission struct {
	OrderID   string             `json:"id"`
	CreatedAt time.Time          `json:"createdAt"`
	Customer  models.Customer    `json:"customer"`
	Payment   PaymentInput       `json:"payment"`
	Items     []models.OrderItem `json:"items"`
	Status    string             `json:"status"`
	Promo     string             `json:"promo"`
	CartID    string             `json:"cartId"`
}

type PaymentInput struct {
	Method string `json:"method"`
	Number string `json:"number"`
	Last4  string `json:"last4"`
}

// Validate checks a submission and normalizes it into a persistable order.
// Any failure aborts checkout before persistence; nothing is written and the
// cart is left untouched.
func Validate(sub Submission) (models.Order, error) {
	customer := models.Customer{
		Name:    strings.TrimSpace(sub.Customer.Name),
		Email:   strings.TrimSpace(sub.Customer.Email),
		Phone:   strings.TrimSpace(sub.Customer.Phone),
		Address: strings.TrimSpace(sub.Customer.Address),
	}
	switch "" {
	case customer.Name:
		return models.Order{}, models.NewValidationError("customer.name", "required")
	case customer.Email:
		return models.Order{}, models.NewValidationError("customer.email", "required")
	case customer.Phone:
		return models.Order{}, models.NewValidationError("customer.phone", "required")
	case customer.Address:
		return models.Order{}, models.NewValidationError("customer.address", "required")
	}

	payment, err := validatePayment(sub.Payment)
	if err != nil {
		return models.Order{}, err
	}

	items := make([]models.OrderItem, 0, len(sub.Items))
	for _, item := range sub.Items {
		if item.ProductID == "" {
			return models.Order{}, models.NewValidationError("items", "product id required on every line")
		}
		if item.Quantity < 1 {
			item.Quantity = 1
		}
		if item.PriceSnapshot < 0 {
			item.PriceSnapshot = 0
		}
		items = append(items, item)
	}

	order := models.Order{
		OrderID:   sub.OrderID,
		Customer:  customer,
		Payment:   payment,
		Items:     items,
		Status:    sub.Status,
		CreatedAt: sub.CreatedAt,
	}
	if order.OrderID == "" {
		order.OrderID = utils.NewOrderID()
	}
	if order.Status == "" {
		order.Status = "placed"
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now()
	}
	return order, nil
}

// validatePayment accepts "cod" as-is and requires a card number that
// resolves to exactly 16 digits. Structural check only: no Luhn, no issuer.
func validatePayment(p PaymentInput) (models.Payment, error) {
	switch p.Method {
	case "cod":
		return models.Payment{Method: "cod"}, nil
	case "card":
		digits := utils.DigitsOnly(p.Number)
		if digits == "" {
			// Clients that pre-mask the number send only its last four digits.
			last4 := utils.DigitsOnly(p.Last4)
			if len(last4) != 4 {
				return models.Payment{}, models.NewValidationError("payment", "card number required")
			}
			return models.Payment{Method: "card", Last4: last4}, nil
		}
		if len(digits) != 16 {
			return models.Payment{}, models.NewValidationError("payment", "card number must be 16 digits")
		}
		return models.Payment{Method: "card", Last4: digits[12:]}, nil
	}
	return models.Payment{}, models.NewValidationError("payment.method", "must be card or cod")
}
