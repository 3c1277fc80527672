package services_test

import (
	"testing"
	"time"

	"minimall/internal/models"
	"minimall/internal/services"

	"github.com/stretchr/testify/assert"
)

func TestCouponClaim(t *testing.T) {
	f := newOrderFixture(t)
	coupons := services.NewCouponService(f.uow)

	coupon := &models.Coupon{
		Name:      "5 off",
		Kind:      models.CouponKindFixed,
		Value:     5.00,
		StartTime: time.Now().Add(-time.Hour),
		EndTime:   time.Now().Add(time.Hour),
	}
	assert.NoError(t, coupons.CreateCoupon(coupon))

	uc, err := coupons.Claim(f.userID, coupon.ID)
	assert.NoError(t, err)
	assert.Equal(t, models.UserCouponStatusUnused, uc.Status)
	assert.Equal(t, coupon.ID, uc.CouponID)

	// At most one redemption per user per coupon.
	_, err = coupons.Claim(f.userID, coupon.ID)
	assert.ErrorIs(t, err, models.ErrAlreadyConsumed)

	// Another user claims independently.
	_, err = coupons.Claim("user-2", coupon.ID)
	assert.NoError(t, err)
}

func TestCouponClaimOutsideWindow(t *testing.T) {
	f := newOrderFixture(t)
	coupons := services.NewCouponService(f.uow)

	expired := &models.Coupon{
		Name:      "last week's deal",
		Kind:      models.CouponKindFixed,
		Value:     5.00,
		StartTime: time.Now().Add(-48 * time.Hour),
		EndTime:   time.Now().Add(-24 * time.Hour),
	}
	assert.NoError(t, coupons.CreateCoupon(expired))

	_, err := coupons.Claim(f.userID, expired.ID)
	assert.ErrorIs(t, err, models.ErrValidation)

	_, err = coupons.Claim(f.userID, "no-such-coupon")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestCreateCouponValidation(t *testing.T) {
	f := newOrderFixture(t)
	coupons := services.NewCouponService(f.uow)

	err := coupons.CreateCoupon(&models.Coupon{Name: "weird", Kind: "mystery"})
	assert.ErrorIs(t, err, models.ErrValidation)

	err = coupons.CreateCoupon(&models.Coupon{
		Name:      "inverted window",
		Kind:      models.CouponKindFixed,
		Value:     1.00,
		StartTime: time.Now(),
		EndTime:   time.Now().Add(-time.Hour),
	})
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestListRedeemable(t *testing.T) {
	f := newOrderFixture(t)
	coupons := services.NewCouponService(f.uow)

	f.seedClaimedCoupon(t, models.Coupon{
		ID: "c-small", Name: "5 off over 10",
		Kind: models.CouponKindFixed, Value: 5.00, MinAmount: 10.00,
	})
	f.seedClaimedCoupon(t, models.Coupon{
		ID: "c-big", Name: "20 off over 100",
		Kind: models.CouponKindFixed, Value: 20.00, MinAmount: 100.00,
	})

	redeemable, err := coupons.ListRedeemable(f.userID, 50.00)
	assert.NoError(t, err)
	assert.Len(t, redeemable, 1)
	assert.Equal(t, "c-small", redeemable[0].CouponID)

	redeemable, err = coupons.ListRedeemable(f.userID, 150.00)
	assert.NoError(t, err)
	assert.Len(t, redeemable, 2)

	_, err = coupons.ListRedeemable(f.userID, -1)
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestListMine(t *testing.T) {
	f := newOrderFixture(t)
	coupons := services.NewCouponService(f.uow)
	f.seedClaimedCoupon(t, models.Coupon{
		ID: "c-1", Name: "5 off", Kind: models.CouponKindFixed, Value: 5.00,
	})

	mine, err := coupons.ListMine(f.userID, "")
	assert.NoError(t, err)
	assert.Len(t, mine, 1)
	assert.NotNil(t, mine[0].Coupon)

	unused, err := coupons.ListMine(f.userID, models.UserCouponStatusUnused)
	assert.NoError(t, err)
	assert.Len(t, unused, 1)

	used, err := coupons.ListMine(f.userID, models.UserCouponStatusUsed)
	assert.NoError(t, err)
	assert.Empty(t, used)

	_, err = coupons.ListMine(f.userID, "bogus")
	assert.ErrorIs(t, err, models.ErrValidation)
}
