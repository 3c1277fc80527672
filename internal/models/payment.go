package models

import "gorm.io/gorm"

// Payment methods.
const (
	PaymentMethodWechat  = "wechat"
	PaymentMethodAlipay  = "alipay"
	PaymentMethodBalance = "balance"
)

// Payment statuses.
const (
	PaymentStatusPending = "pending"
	PaymentStatusSuccess = "success"
	PaymentStatusFailed  = "failed"
)

// Payment records a collection attempt against an order. The provider
// protocol itself is out of scope; PrepayID is whatever opaque handle the
// provider returned.
type Payment struct {
	ID       string  `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OrderID  string  `json:"order_id" gorm:"index;type:varchar(36)"`
	OrderNo  string  `json:"order_no" gorm:"index;type:varchar(32)"`
	Amount   float64 `json:"amount"`
	Method   string  `json:"method" gorm:"type:varchar(20)" validate:"required,oneof=wechat alipay balance"`
	Status   string  `json:"status" gorm:"type:varchar(20);default:pending"`
	PrepayID string  `json:"prepay_id" gorm:"type:varchar(64)"`
	gorm.Model
}
