package repositories

import (
	"fmt"
	"time"

	"minimall/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMCouponRepository is a GORM implementation of CouponRepository.
type GORMCouponRepository struct {
	db *gorm.DB
}

// NewGORMCouponRepository creates a new instance of GORMCouponRepository.
func NewGORMCouponRepository(db *gorm.DB) *GORMCouponRepository {
	return &GORMCouponRepository{
		db: db,
	}
}

// CreateCoupon creates a coupon template.
func (r *GORMCouponRepository) CreateCoupon(coupon *models.Coupon) error {
	if coupon.ID == "" {
		coupon.ID = uuid.New().String()
	}
	if err := r.db.Create(coupon).Error; err != nil {
		return fmt.Errorf("failed to create coupon: %w", err)
	}
	return nil
}

// GetCoupon retrieves a coupon template by ID.
func (r *GORMCouponRepository) GetCoupon(id string) (*models.Coupon, error) {
	var coupon models.Coupon
	if err := r.db.First(&coupon, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("coupon %s: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get coupon %s: %w", id, err)
	}
	return &coupon, nil
}

// ListActive returns the coupons whose validity window contains now.
func (r *GORMCouponRepository) ListActive(now time.Time) ([]models.Coupon, error) {
	var coupons []models.Coupon
	err := r.db.Where("start_time <= ? AND end_time >= ?", now, now).Find(&coupons).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list active coupons: %w", err)
	}
	return coupons, nil
}

// Claim creates a redemption, enforcing at most one per user per coupon.
func (r *GORMCouponRepository) Claim(uc *models.UserCoupon) error {
	var count int64
	err := r.db.Model(&models.UserCoupon{}).
		Where("user_id = ? AND coupon_id = ?", uc.UserID, uc.CouponID).
		Count(&count).Error
	if err != nil {
		return fmt.Errorf("failed to check existing claim: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("coupon %s already claimed: %w", uc.CouponID, models.ErrAlreadyConsumed)
	}

	if uc.ID == "" {
		uc.ID = uuid.New().String()
	}
	if uc.Status == "" {
		uc.Status = models.UserCouponStatusUnused
	}
	if err := r.db.Create(uc).Error; err != nil {
		return fmt.Errorf("failed to claim coupon: %w", err)
	}
	return nil
}

// ListUserCoupons returns the user's redemptions, optionally filtered by
// status, with coupon templates preloaded.
func (r *GORMCouponRepository) ListUserCoupons(userID, status string) ([]models.UserCoupon, error) {
	query := r.db.Preload("Coupon").Where("user_id = ?", userID)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	var ucs []models.UserCoupon
	if err := query.Order("created_at DESC").Find(&ucs).Error; err != nil {
		return nil, fmt.Errorf("failed to list user coupons: %w", err)
	}
	return ucs, nil
}

// FindRedeemable loads the user's unused redemption of the coupon and checks
// eligibility against the order amount. The window and threshold checks are
// done here in Go rather than in SQL so the same queries run unchanged on
// the sqlite test driver.
func (r *GORMCouponRepository) FindRedeemable(userID, couponID string, amount float64, now time.Time) (*models.UserCoupon, error) {
	var uc models.UserCoupon
	err := r.db.Preload("Coupon").
		First(&uc, "user_id = ? AND coupon_id = ? AND status = ?",
			userID, couponID, models.UserCouponStatusUnused).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("redeemable coupon %s: %w", couponID, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find redeemable coupon %s: %w", couponID, err)
	}
	if uc.Coupon == nil || !uc.Coupon.ValidAt(now) || uc.Coupon.MinAmount > amount {
		return nil, fmt.Errorf("coupon %s not eligible for amount %.2f: %w", couponID, amount, models.ErrNotFound)
	}
	return &uc, nil
}

// FindAllRedeemable lists the user's eligible redemptions for an order of
// the given amount.
func (r *GORMCouponRepository) FindAllRedeemable(userID string, amount float64, now time.Time) ([]models.UserCoupon, error) {
	var unused []models.UserCoupon
	err := r.db.Preload("Coupon").
		Where("user_id = ? AND status = ?", userID, models.UserCouponStatusUnused).
		Find(&unused).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list redeemable coupons: %w", err)
	}

	redeemable := make([]models.UserCoupon, 0, len(unused))
	for _, uc := range unused {
		if uc.Coupon != nil && uc.Coupon.ValidAt(now) && uc.Coupon.MinAmount <= amount {
			redeemable = append(redeemable, uc)
		}
	}
	return redeemable, nil
}

// Consume transitions a redemption from unused to used. The status guard in
// the WHERE clause makes the transition exclusive under concurrency.
func (r *GORMCouponRepository) Consume(userCouponID, orderID string, now time.Time) error {
	res := r.db.Model(&models.UserCoupon{}).
		Where("id = ? AND status = ?", userCouponID, models.UserCouponStatusUnused).
		Updates(map[string]interface{}{
			"status":   models.UserCouponStatusUsed,
			"order_id": orderID,
			"used_at":  now,
		})
	if res.Error != nil {
		return fmt.Errorf("failed to consume coupon %s: %w", userCouponID, res.Error)
	}
	if res.RowsAffected == 0 {
		var uc models.UserCoupon
		if err := r.db.First(&uc, "id = ?", userCouponID).Error; err != nil {
			return fmt.Errorf("user coupon %s: %w", userCouponID, models.ErrNotFound)
		}
		return fmt.Errorf("user coupon %s: %w", userCouponID, models.ErrAlreadyConsumed)
	}
	return nil
}

// Revert returns the redemption consumed by an order to unused, clearing the
// usage stamp. A no-op when the order consumed nothing.
func (r *GORMCouponRepository) Revert(orderID string) error {
	err := r.db.Model(&models.UserCoupon{}).
		Where("order_id = ? AND status = ?", orderID, models.UserCouponStatusUsed).
		Updates(map[string]interface{}{
			"status":   models.UserCouponStatusUnused,
			"order_id": "",
			"used_at":  nil,
		}).Error
	if err != nil {
		return fmt.Errorf("failed to revert coupon for order %s: %w", orderID, err)
	}
	return nil
}
