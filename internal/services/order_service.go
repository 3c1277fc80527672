package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"

	"minimall/internal/models"
	"minimall/internal/repositories"
	"minimall/pkg/rabbitmq"

	"github.com/google/uuid"
)

// OrderItemInput is one requested line of a new order. Price is what the
// client saw in its cart; it is verified against the live product price
// before anything is reserved.
type OrderItemInput struct {
	ProductID string  `json:"product_id" validate:"required"`
	Quantity  int     `json:"quantity" validate:"required,min=1"`
	Price     float64 `json:"price" validate:"gte=0"`
}

// CreateOrderInput is the validated request for order settlement.
type CreateOrderInput struct {
	Items       []OrderItemInput `json:"items" validate:"required,min=1,dive"`
	AddressID   string           `json:"address_id" validate:"required"`
	DeliveryFee float64          `json:"delivery_fee" validate:"gte=0"`
	CouponID    string           `json:"coupon_id"`
	Remark      string           `json:"remark" validate:"omitempty,max=200"`
}

// OrderService orchestrates order settlement and the order lifecycle. All
// multi-step mutations run inside a single unit of work: stock, coupon state
// and the order rows move together or not at all.
type OrderService struct {
	uow      repositories.UnitOfWork
	carts    repositories.CartStore
	mqClient *rabbitmq.Client
}

// NewOrderService creates a new OrderService. mqClient may be nil, in which
// case event publication is skipped.
func NewOrderService(uow repositories.UnitOfWork, carts repositories.CartStore, mqClient *rabbitmq.Client) *OrderService {
	return &OrderService{
		uow:      uow,
		carts:    carts,
		mqClient: mqClient,
	}
}

// newOrderNo derives a unique order number from the current time plus four
// random digits, e.g. 202608291433050217.
func newOrderNo() string {
	return time.Now().Format("20060102150405") + fmt.Sprintf("%04d", rand.Intn(10000))
}

// CreateOrder settles a cart selection into a persisted order.
//
// Inside one transaction it: resolves the shipping address, verifies each
// product's status and submitted price, reserves stock, consumes the coupon
// (if any, and if eligible), computes the totals, and persists the order with
// its item snapshots. Any failure rolls the whole transaction back; no stock
// stays decremented and no coupon stays consumed. After commit the purchased
// lines are removed from the cart and an order.created event is published —
// the cart lives in a separate key-value store and is intentionally outside
// the transaction boundary.
func (s *OrderService) CreateOrder(ctx context.Context, userID string, input CreateOrderInput) (*models.Order, error) {
	if userID == "" {
		return nil, fmt.Errorf("user id is required: %w", models.ErrValidation)
	}
	if len(input.Items) == 0 {
		return nil, fmt.Errorf("order items must not be empty: %w", models.ErrValidation)
	}
	for _, item := range input.Items {
		if item.ProductID == "" || item.Quantity < 1 {
			return nil, fmt.Errorf("order item needs a product id and a positive quantity: %w", models.ErrValidation)
		}
	}

	var created *models.Order
	err := s.uow.Do(func(r *repositories.Repos) error {
		// 1. The shipping address must belong to the buyer.
		address, err := r.Addresses.GetByID(userID, input.AddressID)
		if err != nil {
			return err
		}

		// 2. Verify every product and reserve its stock. A failure here
		// aborts the transaction; earlier reservations roll back with it.
		var subtotal float64
		snapshots := make([]models.OrderItem, 0, len(input.Items))
		for _, item := range input.Items {
			product, err := r.Products.GetByID(item.ProductID)
			if err != nil {
				return err
			}
			if product.Status != models.ProductStatusActive {
				return fmt.Errorf("product %s: %w", product.Name, models.ErrProductUnavailable)
			}
			if err := VerifyPrice(product.Name, item.Price, product.Price); err != nil {
				return err
			}
			if err := r.Products.Reserve(product.ID, item.Quantity); err != nil {
				return err
			}

			lineTotal := product.Price * float64(item.Quantity)
			subtotal += lineTotal
			snapshots = append(snapshots, models.OrderItem{
				ProductID:   product.ID,
				ProductName: product.Name,
				Price:       product.Price,
				Quantity:    item.Quantity,
				TotalAmount: lineTotal,
			})
		}

		orderID := uuid.New().String()
		now := time.Now()

		// 3. Apply the coupon if one was supplied. A missing or ineligible
		// coupon does not fail the order; the buyer simply pays full price.
		// A consume conflict on an eligible coupon does fail it, because at
		// that point the discount was already promised.
		var discount float64
		var couponRef string
		if input.CouponID != "" {
			uc, err := r.Coupons.FindRedeemable(userID, input.CouponID, subtotal, now)
			switch {
			case err == nil:
				discount = CouponDiscount(uc.Coupon, subtotal)
				if err := r.Coupons.Consume(uc.ID, orderID, now); err != nil {
					return err
				}
				couponRef = input.CouponID
			case errors.Is(err, models.ErrNotFound):
				log.Printf("coupon %s not applied for user %s: %v", input.CouponID, userID, err)
			default:
				return err
			}
		}

		// 4-5. Compute the totals and persist the order with its snapshots.
		order := &models.Order{
			ID:              orderID,
			OrderNo:         newOrderNo(),
			UserID:          userID,
			Items:           snapshots,
			TotalAmount:     subtotal,
			DiscountAmount:  discount,
			DeliveryFee:     input.DeliveryFee,
			FinalAmount:     FinalAmount(subtotal, input.DeliveryFee, discount),
			AddressID:       address.ID,
			ReceiverName:    address.ReceiverName,
			ReceiverPhone:   address.ReceiverPhone,
			ReceiverAddress: address.FullText(),
			CouponID:        couponRef,
			Remark:          input.Remark,
			Status:          models.OrderStatusPending,
		}
		if err := r.Orders.Create(order); err != nil {
			return err
		}

		created = order
		return nil
	})
	if err != nil {
		return nil, err
	}

	// 6. Drop the purchased lines from the cart. Failure here leaves stale
	// cart lines, not a broken order, so it is logged and swallowed.
	productIDs := make([]string, 0, len(input.Items))
	for _, item := range input.Items {
		productIDs = append(productIDs, item.ProductID)
	}
	if _, err := s.carts.Remove(ctx, userID, productIDs...); err != nil {
		log.Printf("Warning: failed to remove cart lines for user %s after order %s: %v", userID, created.ID, err)
	}

	s.publish(rabbitmq.RoutingOrderCreated, created)
	return created, nil
}

// CancelOrder cancels a pending or paid order, releasing every reserved item
// and reverting the consumed coupon, all inside one transaction. The
// conditional status update guards against double release: cancelling an
// already-cancelled order fails before any stock moves.
func (s *OrderService) CancelOrder(userID, orderID, reason string) error {
	if reason == "" {
		reason = "cancelled by user"
	}

	var cancelled *models.Order
	err := s.uow.Do(func(r *repositories.Repos) error {
		order, err := r.Orders.GetByID(userID, orderID)
		if err != nil {
			return err
		}
		if !order.Status.CanTransitionTo(models.OrderStatusCancelled) {
			return fmt.Errorf("order %s cannot be cancelled from %s: %w",
				orderID, order.Status, models.ErrInvalidStateTransition)
		}

		now := time.Now()
		err = r.Orders.UpdateStatus(order.ID, order.Status, models.OrderStatusCancelled, map[string]interface{}{
			"cancel_reason": reason,
			"cancelled_at":  now,
		})
		if err != nil {
			return err
		}

		for _, item := range order.Items {
			if err := r.Products.Release(item.ProductID, item.Quantity); err != nil {
				return err
			}
		}

		// The coupon was consumed when the order was created, so it comes
		// back whether the order was still pending or already paid.
		if order.CouponID != "" {
			if err := r.Coupons.Revert(order.ID); err != nil {
				return err
			}
		}

		cancelled = order
		return nil
	})
	if err != nil {
		return err
	}

	s.publish(rabbitmq.RoutingOrderCancelled, cancelled)
	return nil
}

// ConfirmReceipt is the buyer's confirmation that a shipped order arrived.
func (s *OrderService) ConfirmReceipt(userID, orderID string) error {
	return s.uow.Do(func(r *repositories.Repos) error {
		order, err := r.Orders.GetByID(userID, orderID)
		if err != nil {
			return err
		}
		if !order.Status.CanTransitionTo(models.OrderStatusDelivered) {
			return fmt.Errorf("order %s cannot be confirmed from %s: %w",
				orderID, order.Status, models.ErrInvalidStateTransition)
		}
		return r.Orders.UpdateStatus(order.ID, order.Status, models.OrderStatusDelivered, map[string]interface{}{
			"delivered_at": time.Now(),
		})
	})
}

// MarkShipped records the fulfillment side handing the order to a carrier.
func (s *OrderService) MarkShipped(userID, orderID string) error {
	return s.uow.Do(func(r *repositories.Repos) error {
		order, err := r.Orders.GetByID(userID, orderID)
		if err != nil {
			return err
		}
		if !order.Status.CanTransitionTo(models.OrderStatusShipped) {
			return fmt.Errorf("order %s cannot be shipped from %s: %w",
				orderID, order.Status, models.ErrInvalidStateTransition)
		}
		return r.Orders.UpdateStatus(order.ID, order.Status, models.OrderStatusShipped, map[string]interface{}{
			"shipped_at": time.Now(),
		})
	})
}

// GetOrder returns one of the user's orders with its items.
func (s *OrderService) GetOrder(userID, orderID string) (*models.Order, error) {
	return s.uow.Repos().Orders.GetByID(userID, orderID)
}

// ListOrders returns a page of the user's orders, optionally filtered by
// status.
func (s *OrderService) ListOrders(userID string, status models.OrderStatus, page, limit int) ([]models.Order, int64, error) {
	if status != "" && !status.IsValid() {
		return nil, 0, fmt.Errorf("unknown order status %q: %w", status, models.ErrValidation)
	}
	return s.uow.Repos().Orders.ListByUser(userID, status, page, limit)
}

// DeleteOrder hides a finished order from the user's history. Only
// cancelled, delivered, or completed orders can be deleted.
func (s *OrderService) DeleteOrder(userID, orderID string) error {
	return s.uow.Do(func(r *repositories.Repos) error {
		order, err := r.Orders.GetByID(userID, orderID)
		if err != nil {
			return err
		}
		switch order.Status {
		case models.OrderStatusCancelled, models.OrderStatusDelivered, models.OrderStatusCompleted:
			return r.Orders.SoftDelete(userID, orderID)
		default:
			return fmt.Errorf("order %s in status %s cannot be deleted: %w",
				orderID, order.Status, models.ErrInvalidStateTransition)
		}
	})
}

func (s *OrderService) publish(routingKey string, order *models.Order) {
	if s.mqClient == nil || order == nil {
		return
	}
	event := map[string]interface{}{
		"order_id":     order.ID,
		"order_no":     order.OrderNo,
		"user_id":      order.UserID,
		"status":       order.Status,
		"final_amount": order.FinalAmount,
	}
	if err := s.mqClient.PublishJSON(routingKey, event); err != nil {
		log.Printf("Warning: failed to publish %s for order %s: %v", routingKey, order.ID, err)
	}
}
