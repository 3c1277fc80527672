package models

import (
	"time"

	"gorm.io/gorm"
)

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

// Order lifecycle: pending -> paid -> shipped -> delivered -> completed,
// with cancelled reachable from pending or paid.
const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:   {OrderStatusPaid, OrderStatusCancelled},
	OrderStatusPaid:      {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:   {OrderStatusDelivered},
	OrderStatusDelivered: {OrderStatusCompleted},
}

// CanTransitionTo reports whether moving from s to next is a valid lifecycle
// transition. Terminal states (completed, cancelled) allow nothing.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsValid reports whether s names a known order status.
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusPaid, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// OrderItem is an immutable snapshot of a product line at order time. It is
// deliberately decoupled from the live Product row so later price or name
// changes never affect historical orders.
type OrderItem struct {
	ID          string  `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OrderID     string  `json:"order_id" gorm:"index;type:varchar(36)"`
	ProductID   string  `json:"product_id" gorm:"type:varchar(36)"`
	ProductName string  `json:"product_name"`
	Price       float64 `json:"price"` // Price at the time of order
	Quantity    int     `json:"quantity"`
	TotalAmount float64 `json:"total_amount"`
	gorm.Model
}

// Order represents a customer order together with its monetary breakdown and
// a receiver snapshot copied from the shipping address at creation time.
type Order struct {
	ID              string      `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OrderNo         string      `json:"order_no" gorm:"uniqueIndex;type:varchar(32)"`
	UserID          string      `json:"user_id" gorm:"index;type:varchar(36)"`
	Items           []OrderItem `json:"items" gorm:"foreignKey:OrderID"`
	TotalAmount     float64     `json:"total_amount"`
	DiscountAmount  float64     `json:"discount_amount"`
	DeliveryFee     float64     `json:"delivery_fee"`
	FinalAmount     float64     `json:"final_amount"`
	AddressID       string      `json:"address_id" gorm:"type:varchar(36)"`
	ReceiverName    string      `json:"receiver_name"`
	ReceiverPhone   string      `json:"receiver_phone"`
	ReceiverAddress string      `json:"receiver_address"`
	CouponID        string      `json:"coupon_id" gorm:"type:varchar(36)"`
	Remark          string      `json:"remark"`
	CancelReason    string      `json:"cancel_reason"`
	Status          OrderStatus `json:"status" gorm:"type:varchar(20);index"`
	PaidAt          *time.Time  `json:"paid_at"`
	ShippedAt       *time.Time  `json:"shipped_at"`
	DeliveredAt     *time.Time  `json:"delivered_at"`
	CancelledAt     *time.Time  `json:"cancelled_at"`
	gorm.Model
}
