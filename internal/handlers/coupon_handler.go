package handlers

import (
	"minimall/internal/models"
	"minimall/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CouponHandler handles HTTP requests for coupons.
type CouponHandler struct {
	service  *services.CouponService
	validate *validator.Validate
}

// NewCouponHandler creates a new CouponHandler.
func NewCouponHandler(service *services.CouponService) *CouponHandler {
	return &CouponHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the coupon routes with the Fiber app.
func (h *CouponHandler) RegisterRoutes(router fiber.Router) {
	couponRoutes := router.Group("/coupons")
	couponRoutes.Get("/", h.HandleListMine)
	couponRoutes.Get("/available", h.HandleListActive)
	couponRoutes.Get("/redeemable", h.HandleListRedeemable)
	couponRoutes.Post("/", h.HandleCreateCoupon)
	couponRoutes.Post("/:id/claim", h.HandleClaim)
}

// HandleListMine lists the user's claimed coupons.
func (h *CouponHandler) HandleListMine(c *fiber.Ctx) error {
	coupons, err := h.service.ListMine(authUserID(c), c.Query("status"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(coupons)
}

// HandleListActive lists the coupons currently claimable.
func (h *CouponHandler) HandleListActive(c *fiber.Ctx) error {
	coupons, err := h.service.ListActive()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(coupons)
}

// HandleListRedeemable lists the user's coupons eligible for the given order
// amount.
func (h *CouponHandler) HandleListRedeemable(c *fiber.Ctx) error {
	amount := c.QueryFloat("amount", 0)
	coupons, err := h.service.ListRedeemable(authUserID(c), amount)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(coupons)
}

// HandleCreateCoupon creates a coupon template.
func (h *CouponHandler) HandleCreateCoupon(c *fiber.Ctx) error {
	var coupon models.Coupon
	if err := c.BodyParser(&coupon); err != nil {
		return respondBadBody(c, err)
	}
	if err := h.validate.Struct(coupon); err != nil {
		return respondValidationErrors(c, err)
	}

	if err := h.service.CreateCoupon(&coupon); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(coupon)
}

// HandleClaim gives the user their redemption of the coupon.
func (h *CouponHandler) HandleClaim(c *fiber.Ctx) error {
	claimed, err := h.service.Claim(authUserID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(claimed)
}
