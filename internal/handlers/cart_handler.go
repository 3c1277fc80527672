package handlers

import (
	"minimall/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CartHandler handles HTTP requests for the cart.
type CartHandler struct {
	service  *services.CartService
	validate *validator.Validate
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(service *services.CartService) *CartHandler {
	return &CartHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the cart routes with the Fiber app.
func (h *CartHandler) RegisterRoutes(router fiber.Router) {
	cartRoutes := router.Group("/cart")
	cartRoutes.Get("/", h.HandleList)
	cartRoutes.Get("/count", h.HandleCount)
	cartRoutes.Post("/add", h.HandleAdd)
	cartRoutes.Put("/update", h.HandleUpdate)
	cartRoutes.Post("/check", h.HandleCheck)
	cartRoutes.Delete("/remove/:product_id", h.HandleRemove)
	cartRoutes.Delete("/clear", h.HandleClear)
}

// CartMutationRequest is the body for add and update operations.
type CartMutationRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"min=0,max=99"`
}

// HandleList returns the cart joined with live product data.
func (h *CartHandler) HandleList(c *fiber.Ctx) error {
	summary, err := h.service.List(c.UserContext(), authUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(summary)
}

// HandleCount returns the total unit count.
func (h *CartHandler) HandleCount(c *fiber.Ctx) error {
	count, err := h.service.Count(c.UserContext(), authUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"count": count})
}

// HandleAdd adds units of a product to the cart.
func (h *CartHandler) HandleAdd(c *fiber.Ctx) error {
	var req CartMutationRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}

	quantity, err := h.service.Add(c.UserContext(), authUserID(c), req.ProductID, req.Quantity)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"product_id": req.ProductID,
		"quantity":   quantity,
	})
}

// HandleUpdate sets a line's quantity; zero removes it.
func (h *CartHandler) HandleUpdate(c *fiber.Ctx) error {
	var req CartMutationRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}

	if err := h.service.Update(c.UserContext(), authUserID(c), req.ProductID, req.Quantity); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"product_id": req.ProductID,
		"quantity":   req.Quantity,
	})
}

// HandleCheck partitions the cart into orderable and non-orderable lines.
func (h *CartHandler) HandleCheck(c *fiber.Ctx) error {
	check, err := h.service.Check(c.UserContext(), authUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(check)
}

// HandleRemove deletes one line from the cart.
func (h *CartHandler) HandleRemove(c *fiber.Ctx) error {
	if err := h.service.Remove(c.UserContext(), authUserID(c), c.Params("product_id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Removed"})
}

// HandleClear drops the whole cart.
func (h *CartHandler) HandleClear(c *fiber.Ctx) error {
	if err := h.service.Clear(c.UserContext(), authUserID(c)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Cart cleared"})
}
