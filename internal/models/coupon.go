package models

import (
	"time"

	"gorm.io/gorm"
)

// Coupon kinds.
const (
	CouponKindFixed   = "fixed"   // discounts a fixed amount
	CouponKindPercent = "percent" // discounts a fraction of the subtotal
)

// UserCoupon statuses.
const (
	UserCouponStatusUnused  = "unused"
	UserCouponStatusUsed    = "used"
	UserCouponStatusExpired = "expired"
)

// Coupon is a discount template users can claim. For fixed coupons Value is
// the discount amount. For percent coupons Rate is the fraction of the
// subtotal the buyer still pays (0.8 means 20% off) and MaxDiscount, when
// positive, caps the computed discount.
type Coupon struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name        string    `json:"name" validate:"required,max=100"`
	Kind        string    `json:"kind" gorm:"type:varchar(20)" validate:"required,oneof=fixed percent"`
	Value       float64   `json:"value" validate:"gte=0"`
	Rate        float64   `json:"rate" validate:"gte=0,lte=1"`
	MinAmount   float64   `json:"min_amount" validate:"gte=0"`
	MaxDiscount float64   `json:"max_discount" validate:"gte=0"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	gorm.Model
}

// ValidAt reports whether the coupon's validity window contains t.
func (c *Coupon) ValidAt(t time.Time) bool {
	return !t.Before(c.StartTime) && !t.After(c.EndTime)
}

// UserCoupon binds a claimed coupon to a user. It is consumed by at most one
// order, inside the same transaction that creates that order.
type UserCoupon struct {
	ID       string     `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID   string     `json:"user_id" gorm:"index;type:varchar(36)"`
	CouponID string     `json:"coupon_id" gorm:"index;type:varchar(36)"`
	Status   string     `json:"status" gorm:"type:varchar(20);default:unused"`
	OrderID  string     `json:"order_id" gorm:"type:varchar(36)"`
	UsedAt   *time.Time `json:"used_at"`
	Coupon   *Coupon    `json:"coupon,omitempty" gorm:"foreignKey:CouponID"`
	gorm.Model
}
