package repositories

import (
	"context"
	"sync"
)

// MemoryCartStore is an in-memory CartStore used in tests, mirroring the
// Redis hash semantics.
type MemoryCartStore struct {
	mu    sync.Mutex
	carts map[string]map[string]int64
}

// NewMemoryCartStore creates a new MemoryCartStore.
func NewMemoryCartStore() *MemoryCartStore {
	return &MemoryCartStore{
		carts: make(map[string]map[string]int64),
	}
}

func (s *MemoryCartStore) cart(userID string) map[string]int64 {
	cart, ok := s.carts[userID]
	if !ok {
		cart = make(map[string]int64)
		s.carts[userID] = cart
	}
	return cart
}

// IncrQuantity adds delta to the line and returns the new quantity.
func (s *MemoryCartStore) IncrQuantity(_ context.Context, userID, productID string, delta int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.cart(userID)
	cart[productID] += delta
	return cart[productID], nil
}

// SetQuantity overwrites the line quantity.
func (s *MemoryCartStore) SetQuantity(_ context.Context, userID, productID string, quantity int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cart(userID)[productID] = quantity
	return nil
}

// Remove deletes the given lines.
func (s *MemoryCartStore) Remove(_ context.Context, userID string, productIDs ...string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.cart(userID)
	var removed int64
	for _, productID := range productIDs {
		if _, ok := cart[productID]; ok {
			delete(cart, productID)
			removed++
		}
	}
	return removed, nil
}

// Clear drops the whole cart.
func (s *MemoryCartStore) Clear(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.carts, userID)
	return nil
}

// GetAll returns a copy of the cart.
func (s *MemoryCartStore) GetAll(_ context.Context, userID string) (map[string]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.cart(userID)
	lines := make(map[string]int64, len(cart))
	for productID, quantity := range cart {
		lines[productID] = quantity
	}
	return lines, nil
}
