package services

import (
	"fmt"
	"log"
	"time"

	"minimall/internal/models"
	"minimall/internal/repositories"
	"minimall/pkg/rabbitmq"

	"github.com/google/uuid"
)

// PaymentService starts collection for pending orders and applies the
// provider's success callback. The provider protocol itself is opaque; the
// prepay handle returned here is whatever the client hands to the provider
// SDK.
type PaymentService struct {
	uow      repositories.UnitOfWork
	mqClient *rabbitmq.Client
}

// NewPaymentService creates a new PaymentService. mqClient may be nil.
func NewPaymentService(uow repositories.UnitOfWork, mqClient *rabbitmq.Client) *PaymentService {
	return &PaymentService{
		uow:      uow,
		mqClient: mqClient,
	}
}

// CreatePayment opens a collection attempt for one of the user's pending
// orders.
func (s *PaymentService) CreatePayment(userID, orderID, method string) (*models.Payment, error) {
	switch method {
	case models.PaymentMethodWechat, models.PaymentMethodAlipay, models.PaymentMethodBalance:
	default:
		return nil, fmt.Errorf("unknown payment method %q: %w", method, models.ErrValidation)
	}

	var payment *models.Payment
	err := s.uow.Do(func(r *repositories.Repos) error {
		order, err := r.Orders.GetByID(userID, orderID)
		if err != nil {
			return err
		}
		if order.Status != models.OrderStatusPending {
			return fmt.Errorf("order %s is %s, not payable: %w",
				orderID, order.Status, models.ErrInvalidStateTransition)
		}

		payment = &models.Payment{
			OrderID:  order.ID,
			OrderNo:  order.OrderNo,
			Amount:   order.FinalAmount,
			Method:   method,
			Status:   models.PaymentStatusPending,
			PrepayID: "prepay-" + uuid.New().String(),
		}
		return r.Payments.Create(payment)
	})
	if err != nil {
		return nil, err
	}
	return payment, nil
}

// HandleNotify applies the provider's success callback: the order moves
// pending -> paid and the payment row is marked successful. The callback is
// idempotent, keyed by order number; a repeat delivery for an already-paid
// order is a no-op.
func (s *PaymentService) HandleNotify(orderNo string) error {
	var paid *models.Order
	err := s.uow.Do(func(r *repositories.Repos) error {
		order, err := r.Orders.GetByOrderNo(orderNo)
		if err != nil {
			return err
		}
		if order.Status == models.OrderStatusPaid {
			return nil // duplicate callback
		}
		if !order.Status.CanTransitionTo(models.OrderStatusPaid) {
			return fmt.Errorf("order %s is %s, cannot mark paid: %w",
				order.ID, order.Status, models.ErrInvalidStateTransition)
		}

		err = r.Orders.UpdateStatus(order.ID, order.Status, models.OrderStatusPaid, map[string]interface{}{
			"paid_at": time.Now(),
		})
		if err != nil {
			return err
		}
		if _, err := r.Payments.MarkSuccess(orderNo); err != nil {
			return err
		}
		paid = order
		return nil
	})
	if err != nil {
		return err
	}

	if s.mqClient != nil && paid != nil {
		event := map[string]interface{}{
			"order_id": paid.ID,
			"order_no": paid.OrderNo,
			"user_id":  paid.UserID,
			"amount":   paid.FinalAmount,
		}
		if err := s.mqClient.PublishJSON(rabbitmq.RoutingOrderPaid, event); err != nil {
			log.Printf("Warning: failed to publish order.paid for order %s: %v", paid.ID, err)
		}
	}
	return nil
}

// GetPayment returns the latest payment of one of the user's orders.
func (s *PaymentService) GetPayment(userID, orderID string) (*models.Payment, error) {
	repos := s.uow.Repos()
	if _, err := repos.Orders.GetByID(userID, orderID); err != nil {
		return nil, err
	}
	return repos.Payments.GetByOrderID(orderID)
}
