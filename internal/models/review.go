package models

import "gorm.io/gorm"

// Review is a buyer's review of a product from a delivered order. Submitting
// the review is what moves the order to its completed state.
type Review struct {
	ID        string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID    string `json:"user_id" gorm:"index;type:varchar(36)"`
	OrderID   string `json:"order_id" gorm:"index;type:varchar(36)"`
	ProductID string `json:"product_id" gorm:"index;type:varchar(36)"`
	Rating    int    `json:"rating" validate:"required,min=1,max=5"`
	Content   string `json:"content" validate:"omitempty,max=500"`
	gorm.Model
}
