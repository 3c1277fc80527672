package services

import (
	"context"
	"fmt"

	"minimall/internal/models"
	"minimall/internal/repositories"
)

// maxCartLineQuantity caps how many units of one product a cart may hold.
const maxCartLineQuantity = 99

// CartLine is a cart entry joined with live product data.
type CartLine struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Stock     int     `json:"stock"`
	Unit      string  `json:"unit"`
	Quantity  int     `json:"quantity"`
	Subtotal  float64 `json:"subtotal"`
}

// CartSummary is the cart with its totals.
type CartSummary struct {
	Items       []CartLine `json:"items"`
	TotalCount  int        `json:"total_count"`
	TotalAmount float64    `json:"total_amount"`
}

// CartCheck partitions the cart into lines that can be ordered right now and
// lines that cannot (product inactive or understocked).
type CartCheck struct {
	ValidItems   []CartLine `json:"valid_items"`
	InvalidItems []CartLine `json:"invalid_items"`
	TotalAmount  float64    `json:"total_amount"`
}

// CartService manages the user's cart in the key-value store, consulting the
// product catalog for stock and status.
type CartService struct {
	uow   repositories.UnitOfWork
	store repositories.CartStore
}

// NewCartService creates a new CartService.
func NewCartService(uow repositories.UnitOfWork, store repositories.CartStore) *CartService {
	return &CartService{
		uow:   uow,
		store: store,
	}
}

// Add puts quantity more units of a product into the cart and returns the
// new line quantity. The mutation is an atomic increment; when the result
// overshoots the product's stock (or the per-line cap) it is compensated
// back down and the add fails, so concurrent adds never lose updates.
func (s *CartService) Add(ctx context.Context, userID, productID string, quantity int) (int64, error) {
	if quantity < 1 || quantity > maxCartLineQuantity {
		return 0, fmt.Errorf("quantity must be between 1 and %d: %w", maxCartLineQuantity, models.ErrValidation)
	}

	product, err := s.uow.Repos().Products.GetByID(productID)
	if err != nil {
		return 0, err
	}
	if product.Status != models.ProductStatusActive {
		return 0, fmt.Errorf("product %s: %w", product.Name, models.ErrProductUnavailable)
	}
	if product.Stock < quantity {
		return 0, fmt.Errorf("product %s: %w", product.Name, models.ErrInsufficientStock)
	}

	newQuantity, err := s.store.IncrQuantity(ctx, userID, productID, int64(quantity))
	if err != nil {
		return 0, err
	}
	if newQuantity > int64(product.Stock) || newQuantity > maxCartLineQuantity {
		if _, rollbackErr := s.store.IncrQuantity(ctx, userID, productID, -int64(quantity)); rollbackErr != nil {
			return 0, rollbackErr
		}
		return 0, fmt.Errorf("cart quantity for %s would exceed stock: %w", product.Name, models.ErrInsufficientStock)
	}
	return newQuantity, nil
}

// Update sets a line's quantity outright. Zero removes the line.
func (s *CartService) Update(ctx context.Context, userID, productID string, quantity int) error {
	if quantity < 0 || quantity > maxCartLineQuantity {
		return fmt.Errorf("quantity must be between 0 and %d: %w", maxCartLineQuantity, models.ErrValidation)
	}
	if quantity == 0 {
		return s.Remove(ctx, userID, productID)
	}

	product, err := s.uow.Repos().Products.GetByID(productID)
	if err != nil {
		return err
	}
	if product.Status != models.ProductStatusActive {
		return fmt.Errorf("product %s: %w", product.Name, models.ErrProductUnavailable)
	}
	if product.Stock < quantity {
		return fmt.Errorf("product %s: %w", product.Name, models.ErrInsufficientStock)
	}

	return s.store.SetQuantity(ctx, userID, productID, int64(quantity))
}

// Remove deletes a line from the cart.
func (s *CartService) Remove(ctx context.Context, userID, productID string) error {
	removed, err := s.store.Remove(ctx, userID, productID)
	if err != nil {
		return err
	}
	if removed == 0 {
		return fmt.Errorf("product %s not in cart: %w", productID, models.ErrNotFound)
	}
	return nil
}

// Clear drops the whole cart.
func (s *CartService) Clear(ctx context.Context, userID string) error {
	return s.store.Clear(ctx, userID)
}

// Count returns the total number of units across all lines.
func (s *CartService) Count(ctx context.Context, userID string) (int, error) {
	lines, err := s.store.GetAll(ctx, userID)
	if err != nil {
		return 0, err
	}
	var count int
	for _, quantity := range lines {
		count += int(quantity)
	}
	return count, nil
}

// List returns the cart joined with live product data. Lines whose product
// vanished or went inactive are hidden, matching the storefront view.
func (s *CartService) List(ctx context.Context, userID string) (*CartSummary, error) {
	lines, err := s.store.GetAll(ctx, userID)
	if err != nil {
		return nil, err
	}

	summary := &CartSummary{Items: []CartLine{}}
	if len(lines) == 0 {
		return summary, nil
	}

	productIDs := make([]string, 0, len(lines))
	for productID := range lines {
		productIDs = append(productIDs, productID)
	}
	products, err := s.uow.Repos().Products.GetByIDs(productIDs)
	if err != nil {
		return nil, err
	}

	for _, product := range products {
		if product.Status != models.ProductStatusActive {
			continue
		}
		quantity := int(lines[product.ID])
		line := CartLine{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
			Stock:     product.Stock,
			Unit:      product.Unit,
			Quantity:  quantity,
			Subtotal:  product.Price * float64(quantity),
		}
		summary.Items = append(summary.Items, line)
		summary.TotalCount += quantity
		summary.TotalAmount += line.Subtotal
	}
	return summary, nil
}

// Check partitions the cart into orderable and non-orderable lines, so the
// client can warn the buyer before settlement.
func (s *CartService) Check(ctx context.Context, userID string) (*CartCheck, error) {
	lines, err := s.store.GetAll(ctx, userID)
	if err != nil {
		return nil, err
	}

	check := &CartCheck{ValidItems: []CartLine{}, InvalidItems: []CartLine{}}
	if len(lines) == 0 {
		return check, nil
	}

	productIDs := make([]string, 0, len(lines))
	for productID := range lines {
		productIDs = append(productIDs, productID)
	}
	products, err := s.uow.Repos().Products.GetByIDs(productIDs)
	if err != nil {
		return nil, err
	}

	for _, product := range products {
		quantity := int(lines[product.ID])
		line := CartLine{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
			Stock:     product.Stock,
			Unit:      product.Unit,
			Quantity:  quantity,
			Subtotal:  product.Price * float64(quantity),
		}
		if product.Status == models.ProductStatusActive && product.Stock >= quantity {
			check.ValidItems = append(check.ValidItems, line)
			check.TotalAmount += line.Subtotal
		} else {
			check.InvalidItems = append(check.InvalidItems, line)
		}
	}
	return check, nil
}
