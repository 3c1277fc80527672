package repositories

import (
	"minimall/internal/models"
)

// OrderRepository defines the interface for order data access.
type OrderRepository interface {
	Create(order *models.Order) error
	GetByID(userID, id string) (*models.Order, error)
	GetByOrderNo(orderNo string) (*models.Order, error)
	ListByUser(userID string, status models.OrderStatus, page, limit int) ([]models.Order, int64, error)

	// UpdateStatus moves an order from one status to another, applying any
	// extra column updates (timestamps, cancel reason) in the same statement.
	// The update is conditional on the current status, so a concurrent
	// transition surfaces as ErrStorageConflict instead of a lost update.
	UpdateStatus(id string, from, to models.OrderStatus, extra map[string]interface{}) error

	// SoftDelete hides a finished order from the user's history.
	SoftDelete(userID, id string) error
}
