package cart

import (
	"context"

	"nova/models"
)

// Store owns cart state for concurrent isolated sessions. Handlers receive a
// Store instead of reaching for process-wide state, so tests can run against
// the in-memory implementation.
type Store interface {
	Get(ctx context.Context, cartID string) (models.Cart, error)
	AddLine(ctx context.Context, cartID string, line models.CartLine) (models.Cart, error)
	UpdateQuantity(ctx context.Context, cartID, productID string, qty int) (models.Cart, error)
	RemoveLine(ctx context.Context, cartID, productID string) (models.Cart, error)
	Clear(ctx context.Context, cartID string) error
}

// mergeLine folds a new line into the list: an existing productId has its
// quantity incremented, never a second line appended.
func mergeLine(lines []models.CartLine, line models.CartLine) []models.CartLine {
	for i := range lines {
		if lines[i].ProductID == line.ProductID {
			lines[i].Quantity += line.Quantity
			return lines
		}
	}
	return append(lines, line)
}

// setQuantity clamps qty to at least 1 and is a no-op for absent products.
func setQuantity(lines []models.CartLine, productID string, qty int) []models.CartLine {
	if qty < 1 {
		qty = 1
	}
	for i := range lines {
		if lines[i].ProductID == productID {
			lines[i].Quantity = qty
			break
		}
	}
	return lines
}

func removeLine(lines []models.CartLine, productID string) []models.CartLine {
	out := lines[:0]
	for _, l := range lines {
		if l.ProductID != productID {
			out = append(out, l)
		}
	}
	return out
}
