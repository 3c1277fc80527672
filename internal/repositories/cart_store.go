package repositories

import "context"

// CartStore holds each user's cart as product-id -> quantity. It lives in a
// fast key-value store outside the relational transaction; each mutation is
// individually atomic (quantity changes are increments, never
// read-then-write), which is all the cross-request coordination a per-user
// cart needs.
type CartStore interface {
	// IncrQuantity atomically adds delta to the line's quantity and returns
	// the new value, creating the line if needed.
	IncrQuantity(ctx context.Context, userID, productID string, delta int64) (int64, error)
	// SetQuantity overwrites the line's quantity.
	SetQuantity(ctx context.Context, userID, productID string, quantity int64) error
	// Remove deletes the given lines and returns how many existed.
	Remove(ctx context.Context, userID string, productIDs ...string) (int64, error)
	// Clear drops the whole cart.
	Clear(ctx context.Context, userID string) error
	// GetAll returns every line in the cart.
	GetAll(ctx context.Context, userID string) (map[string]int64, error)
}
