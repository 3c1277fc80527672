package handlers

import (
	"minimall/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// PaymentHandler handles HTTP requests for payments, including the
// provider's server-to-server callback.
type PaymentHandler struct {
	service  *services.PaymentService
	validate *validator.Validate
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(service *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the authenticated payment routes.
func (h *PaymentHandler) RegisterRoutes(router fiber.Router) {
	paymentRoutes := router.Group("/payment")
	paymentRoutes.Post("/create", h.HandleCreate)
	paymentRoutes.Get("/:order_id", h.HandleGet)
}

// RegisterCallbackRoutes registers the unauthenticated provider callback.
// The provider cannot send a bearer token, so this lives outside the auth
// group.
func (h *PaymentHandler) RegisterCallbackRoutes(router fiber.Router) {
	router.Post("/payment/notify", h.HandleNotify)
}

// CreatePaymentRequest asks for collection on a pending order.
type CreatePaymentRequest struct {
	OrderID string `json:"order_id" validate:"required"`
	Method  string `json:"method" validate:"required,oneof=wechat alipay balance"`
}

// HandleCreate opens a collection attempt and returns the prepay handle.
func (h *PaymentHandler) HandleCreate(c *fiber.Ctx) error {
	var req CreatePaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}

	payment, err := h.service.CreatePayment(authUserID(c), req.OrderID, req.Method)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"prepay_id": payment.PrepayID,
		"amount":    payment.Amount,
	})
}

// PaymentNotifyRequest is the provider's success callback payload.
type PaymentNotifyRequest struct {
	OrderNo string `json:"order_no" validate:"required"`
}

// HandleNotify applies the provider's success callback. The provider
// retries until it reads SUCCESS, so the underlying update is idempotent.
func (h *PaymentHandler) HandleNotify(c *fiber.Ctx) error {
	var req PaymentNotifyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).SendString("FAIL")
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).SendString("FAIL")
	}

	if err := h.service.HandleNotify(req.OrderNo); err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("FAIL")
	}
	return c.SendString("SUCCESS")
}

// HandleGet returns the latest payment of an order.
func (h *PaymentHandler) HandleGet(c *fiber.Ctx) error {
	payment, err := h.service.GetPayment(authUserID(c), c.Params("order_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(payment)
}
