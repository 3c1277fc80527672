package repositories

import (
	"time"

	"minimall/internal/models"
)

// CouponRepository defines the interface for coupon and redemption data
// access. Consume and Revert are only ever called inside the settlement and
// cancellation transactions.
type CouponRepository interface {
	CreateCoupon(coupon *models.Coupon) error
	GetCoupon(id string) (*models.Coupon, error)
	ListActive(now time.Time) ([]models.Coupon, error)

	// Claim creates the user's redemption of a coupon. A user can claim any
	// given coupon at most once.
	Claim(uc *models.UserCoupon) error
	ListUserCoupons(userID, status string) ([]models.UserCoupon, error)

	// FindRedeemable returns the user's unused redemption of the given
	// coupon, provided the coupon's validity window contains now and its
	// minimum-order threshold is within amount.
	FindRedeemable(userID, couponID string, amount float64, now time.Time) (*models.UserCoupon, error)
	// FindAllRedeemable lists every redemption of the user that would be
	// eligible for an order of the given amount.
	FindAllRedeemable(userID string, amount float64, now time.Time) ([]models.UserCoupon, error)

	// Consume marks an unused redemption as used by the given order. The
	// status guard makes consumption exclusive: a redemption already used
	// fails with ErrAlreadyConsumed.
	Consume(userCouponID, orderID string, now time.Time) error
	// Revert returns the redemption consumed by the given order to unused.
	Revert(orderID string) error
}
