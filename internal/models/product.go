package models

import "gorm.io/gorm"

// Product statuses. Inactive products are hidden from the storefront and
// cannot be ordered or added to a cart.
const (
	ProductStatusActive   = "active"
	ProductStatusInactive = "inactive"
)

// Product represents a product in the store.
type Product struct {
	ID            string  `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name          string  `json:"name" validate:"required,min=2,max=100"`
	Description   string  `json:"description" validate:"omitempty,max=500"`
	Price         float64 `json:"price" validate:"required,gt=0"`
	OriginalPrice float64 `json:"original_price" validate:"omitempty,gte=0"`
	Stock         int     `json:"stock" validate:"gte=0"`
	Sales         int     `json:"sales"`
	Unit          string  `json:"unit" validate:"omitempty,max=20"`
	Images        string  `json:"images"` // JSON array of image URLs
	Status        string  `json:"status" gorm:"type:varchar(20);default:active" validate:"omitempty,oneof=active inactive"`
	gorm.Model            // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
