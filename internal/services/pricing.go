package services

import (
	"fmt"
	"math"

	"minimall/internal/models"
)

// PriceEpsilon is the tolerance when comparing a client-submitted line price
// against the authoritative product price. Anything beyond it means the
// price changed (or was tampered with) since the item entered the cart.
const PriceEpsilon = 0.01

// PricedItem is one line going into a price calculation.
type PricedItem struct {
	Price    float64
	Quantity int
}

// Subtotal sums price*quantity over the lines.
func Subtotal(items []PricedItem) float64 {
	var subtotal float64
	for _, item := range items {
		subtotal += item.Price * float64(item.Quantity)
	}
	return subtotal
}

// VerifyPrice rejects a submitted line price that deviates from the
// authoritative price beyond PriceEpsilon.
func VerifyPrice(productName string, submitted, authoritative float64) error {
	if math.Abs(submitted-authoritative) > PriceEpsilon {
		return fmt.Errorf("product %s price changed (submitted %.2f, current %.2f): %w",
			productName, submitted, authoritative, models.ErrPriceMismatch)
	}
	return nil
}

// CouponDiscount computes the discount a coupon grants on the given
// subtotal. Fixed coupons discount min(value, subtotal). Percent coupons
// discount subtotal*(1-rate), capped at MaxDiscount when it is positive.
// Unknown kinds grant nothing.
func CouponDiscount(coupon *models.Coupon, subtotal float64) float64 {
	switch coupon.Kind {
	case models.CouponKindFixed:
		return math.Min(coupon.Value, subtotal)
	case models.CouponKindPercent:
		discount := subtotal * (1 - coupon.Rate)
		if coupon.MaxDiscount > 0 {
			discount = math.Min(discount, coupon.MaxDiscount)
		}
		return discount
	default:
		return 0
	}
}

// FinalAmount computes what the buyer pays: subtotal plus delivery fee minus
// discount, floored at zero.
func FinalAmount(subtotal, deliveryFee, discount float64) float64 {
	return math.Max(0, subtotal+deliveryFee-discount)
}
