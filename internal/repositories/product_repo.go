package repositories

import (
	"minimall/internal/models"
)

// ProductRepository defines the interface for product data access, including
// the inventory ledger operations used by order settlement.
type ProductRepository interface {
	GetAll() ([]models.Product, error)
	GetByID(id string) (*models.Product, error)
	GetByIDs(ids []string) ([]models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id string) error

	// Reserve atomically decrements stock and increments the sales counter
	// for an active product. It fails without side effects when the product
	// is missing, inactive, or understocked.
	Reserve(id string, quantity int) error
	// Release undoes a reservation after a cancellation: stock goes back up,
	// the sales counter back down. The caller guards against double release
	// via the order status transition.
	Release(id string, quantity int) error
}
