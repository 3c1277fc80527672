package repositories

import (
	"minimall/internal/models"
)

// Allow-listed updatable address columns. Anything else in an update payload
// is dropped before it reaches SQL.
var addressUpdatableFields = map[string]bool{
	"receiver_name":  true,
	"receiver_phone": true,
	"province":       true,
	"city":           true,
	"district":       true,
	"detail":         true,
	"is_default":     true,
}

// AddressRepository defines the interface for shipping address data access.
type AddressRepository interface {
	ListByUser(userID string) ([]models.Address, error)
	GetByID(userID, id string) (*models.Address, error)
	Create(address *models.Address) error
	UpdateFields(userID, id string, fields map[string]interface{}) error
	Delete(userID, id string) error
	// ClearDefault unsets the user's current default address.
	ClearDefault(userID string) error
}
