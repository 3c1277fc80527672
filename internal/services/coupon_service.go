package services

import (
	"fmt"
	"time"

	"minimall/internal/models"
	"minimall/internal/repositories"
)

// CouponService handles coupon claiming and listing. Consumption happens
// inside the settlement transaction and belongs to OrderService.
type CouponService struct {
	uow repositories.UnitOfWork
}

// NewCouponService creates a new CouponService.
func NewCouponService(uow repositories.UnitOfWork) *CouponService {
	return &CouponService{
		uow: uow,
	}
}

// CreateCoupon creates a coupon template.
func (s *CouponService) CreateCoupon(coupon *models.Coupon) error {
	if coupon.Kind != models.CouponKindFixed && coupon.Kind != models.CouponKindPercent {
		return fmt.Errorf("unknown coupon kind %q: %w", coupon.Kind, models.ErrValidation)
	}
	if coupon.EndTime.Before(coupon.StartTime) {
		return fmt.Errorf("coupon validity window ends before it starts: %w", models.ErrValidation)
	}
	return s.uow.Repos().Coupons.CreateCoupon(coupon)
}

// ListActive returns the coupons currently claimable.
func (s *CouponService) ListActive() ([]models.Coupon, error) {
	return s.uow.Repos().Coupons.ListActive(time.Now())
}

// Claim gives the user their one redemption of a coupon. The coupon must be
// inside its validity window.
func (s *CouponService) Claim(userID, couponID string) (*models.UserCoupon, error) {
	var claimed *models.UserCoupon
	err := s.uow.Do(func(r *repositories.Repos) error {
		coupon, err := r.Coupons.GetCoupon(couponID)
		if err != nil {
			return err
		}
		if !coupon.ValidAt(time.Now()) {
			return fmt.Errorf("coupon %s is outside its validity window: %w", couponID, models.ErrValidation)
		}

		uc := &models.UserCoupon{
			UserID:   userID,
			CouponID: couponID,
			Status:   models.UserCouponStatusUnused,
		}
		if err := r.Coupons.Claim(uc); err != nil {
			return err
		}
		claimed = uc
		return nil
	})
	if err != nil {
		return nil, err
	}
	return claimed, nil
}

// ListMine returns the user's claimed coupons, optionally filtered by
// status.
func (s *CouponService) ListMine(userID, status string) ([]models.UserCoupon, error) {
	if status != "" && status != models.UserCouponStatusUnused &&
		status != models.UserCouponStatusUsed && status != models.UserCouponStatusExpired {
		return nil, fmt.Errorf("unknown coupon status %q: %w", status, models.ErrValidation)
	}
	return s.uow.Repos().Coupons.ListUserCoupons(userID, status)
}

// ListRedeemable returns the user's coupons eligible for an order of the
// given amount, for the order-confirmation screen.
func (s *CouponService) ListRedeemable(userID string, amount float64) ([]models.UserCoupon, error) {
	if amount < 0 {
		return nil, fmt.Errorf("amount must not be negative: %w", models.ErrValidation)
	}
	return s.uow.Repos().Coupons.FindAllRedeemable(userID, amount, time.Now())
}
