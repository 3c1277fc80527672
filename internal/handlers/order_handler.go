package handlers

import (
	"minimall/internal/models"
	"minimall/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// OrderHandler handles HTTP requests for orders.
type OrderHandler struct {
	service  *services.OrderService
	validate *validator.Validate
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService) *OrderHandler {
	return &OrderHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the order routes with the Fiber app.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	orderRoutes := router.Group("/orders")
	orderRoutes.Post("/", h.HandleCreateOrder)
	orderRoutes.Get("/", h.HandleListOrders)
	orderRoutes.Get("/:id", h.HandleGetOrder)
	orderRoutes.Put("/:id/cancel", h.HandleCancelOrder)
	orderRoutes.Put("/:id/ship", h.HandleMarkShipped)
	orderRoutes.Put("/:id/confirm", h.HandleConfirmReceipt)
	orderRoutes.Delete("/:id", h.HandleDeleteOrder)
}

// HandleCreateOrder settles the submitted items into a new order.
func (h *OrderHandler) HandleCreateOrder(c *fiber.Ctx) error {
	var input services.CreateOrderInput
	if err := c.BodyParser(&input); err != nil {
		return respondBadBody(c, err)
	}
	if err := h.validate.Struct(input); err != nil {
		return respondValidationErrors(c, err)
	}

	order, err := h.service.CreateOrder(c.UserContext(), authUserID(c), input)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"order_id":     order.ID,
		"order_no":     order.OrderNo,
		"final_amount": order.FinalAmount,
	})
}

// HandleListOrders returns a page of the user's orders.
func (h *OrderHandler) HandleListOrders(c *fiber.Ctx) error {
	status := models.OrderStatus(c.Query("status"))
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)
	if limit > 50 {
		limit = 50
	}

	orders, total, err := h.service.ListOrders(authUserID(c), status, page, limit)
	if err != nil {
		return respondError(c, err)
	}

	pages := total / int64(limit)
	if total%int64(limit) != 0 {
		pages++
	}
	return c.JSON(fiber.Map{
		"data": orders,
		"pagination": fiber.Map{
			"page":  page,
			"limit": limit,
			"total": total,
			"pages": pages,
		},
	})
}

// HandleGetOrder returns one order with its items.
func (h *OrderHandler) HandleGetOrder(c *fiber.Ctx) error {
	order, err := h.service.GetOrder(authUserID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(order)
}

// CancelOrderRequest carries the optional cancellation reason.
type CancelOrderRequest struct {
	Reason string `json:"reason" validate:"omitempty,max=200"`
}

// HandleCancelOrder cancels a pending or paid order.
func (h *OrderHandler) HandleCancelOrder(c *fiber.Ctx) error {
	var req CancelOrderRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return respondBadBody(c, err)
		}
		if err := h.validate.Struct(req); err != nil {
			return respondValidationErrors(c, err)
		}
	}

	if err := h.service.CancelOrder(authUserID(c), c.Params("id"), req.Reason); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Order cancelled"})
}

// HandleMarkShipped records the order handed to a carrier.
func (h *OrderHandler) HandleMarkShipped(c *fiber.Ctx) error {
	if err := h.service.MarkShipped(authUserID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Order shipped"})
}

// HandleConfirmReceipt is the buyer confirming a shipped order arrived.
func (h *OrderHandler) HandleConfirmReceipt(c *fiber.Ctx) error {
	if err := h.service.ConfirmReceipt(authUserID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Receipt confirmed"})
}

// HandleDeleteOrder hides a finished order from the user's history.
func (h *OrderHandler) HandleDeleteOrder(c *fiber.Ctx) error {
	if err := h.service.DeleteOrder(authUserID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Order deleted"})
}
