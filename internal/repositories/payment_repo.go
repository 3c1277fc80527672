package repositories

import (
	"fmt"

	"minimall/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PaymentRepository defines the interface for payment record access.
type PaymentRepository interface {
	Create(payment *models.Payment) error
	GetByOrderID(orderID string) (*models.Payment, error)
	// MarkSuccess flips a pending payment to success. Idempotent under
	// repeated provider callbacks: a second call affects zero rows and
	// reports so via the bool.
	MarkSuccess(orderNo string) (bool, error)
}

// GORMPaymentRepository is a GORM implementation of PaymentRepository.
type GORMPaymentRepository struct {
	db *gorm.DB
}

// NewGORMPaymentRepository creates a new instance of GORMPaymentRepository.
func NewGORMPaymentRepository(db *gorm.DB) *GORMPaymentRepository {
	return &GORMPaymentRepository{
		db: db,
	}
}

// Create records a payment attempt.
func (r *GORMPaymentRepository) Create(payment *models.Payment) error {
	if payment.ID == "" {
		payment.ID = uuid.New().String()
	}
	if payment.Status == "" {
		payment.Status = models.PaymentStatusPending
	}
	if err := r.db.Create(payment).Error; err != nil {
		return fmt.Errorf("failed to create payment: %w", err)
	}
	return nil
}

// GetByOrderID returns the most recent payment for an order.
func (r *GORMPaymentRepository) GetByOrderID(orderID string) (*models.Payment, error) {
	var payment models.Payment
	err := r.db.Order("created_at DESC").First(&payment, "order_id = ?", orderID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("payment for order %s: %w", orderID, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get payment for order %s: %w", orderID, err)
	}
	return &payment, nil
}

// MarkSuccess transitions the order's pending payment to success.
func (r *GORMPaymentRepository) MarkSuccess(orderNo string) (bool, error) {
	res := r.db.Model(&models.Payment{}).
		Where("order_no = ? AND status = ?", orderNo, models.PaymentStatusPending).
		Update("status", models.PaymentStatusSuccess)
	if res.Error != nil {
		return false, fmt.Errorf("failed to mark payment success for %s: %w", orderNo, res.Error)
	}
	return res.RowsAffected > 0, nil
}
