package models

import "gorm.io/gorm"

// Address is a user's shipping address. Orders copy the receiver fields at
// creation time, so editing an address never rewrites order history.
type Address struct {
	ID            string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	UserID        string `json:"user_id" gorm:"index;type:varchar(36)"`
	ReceiverName  string `json:"receiver_name" validate:"required,max=50"`
	ReceiverPhone string `json:"receiver_phone" validate:"required,max=20"`
	Province      string `json:"province" validate:"required,max=50"`
	City          string `json:"city" validate:"required,max=50"`
	District      string `json:"district" validate:"required,max=50"`
	Detail        string `json:"detail" validate:"required,max=200"`
	IsDefault     bool   `json:"is_default"`
	gorm.Model
}

// FullText joins the address parts into the single line stored on orders.
func (a *Address) FullText() string {
	return a.Province + " " + a.City + " " + a.District + " " + a.Detail
}
