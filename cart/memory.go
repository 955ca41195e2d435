package cart

import (
	"context"
	"sync"

	"nova/models"
)

// MemoryStore is the in-process Store used by tests.
type MemoryStore struct {
	mu    sync.Mutex
	carts map[string][]models.CartLine
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{carts: make(map[string][]models.CartLine)}
}

func (s *MemoryStore) Get(_ context.Context, cartID string) (models.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot(cartID), nil
}

func (s *MemoryStore) AddLine(_ context.Context, cartID string, line models.CartLine) (models.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.carts[cartID] = mergeLine(s.carts[cartID], line)
	return s.snapshot(cartID), nil
}

func (s *MemoryStore) UpdateQuantity(_ context.Context, cartID, productID string, qty int) (models.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.carts[cartID] = setQuantity(s.carts[cartID], productID, qty)
	return s.snapshot(cartID), nil
}

func (s *MemoryStore) RemoveLine(_ context.Context, cartID, productID string) (models.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.carts[cartID] = removeLine(s.carts[cartID], productID)
	return s.snapshot(cartID), nil
}

func (s *MemoryStore) Clear(_ context.Context, cartID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, cartID)
	return nil
}

func (s *MemoryStore) snapshot(cartID string) models.Cart {
	lines := make([]models.CartLine, len(s.carts[cartID]))
	copy(lines, s.carts[cartID])
	return models.Cart{CartID: cartID, Lines: lines}
}
