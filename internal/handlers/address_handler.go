package handlers

import (
	"minimall/internal/models"
	"minimall/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AddressHandler handles HTTP requests for shipping addresses.
type AddressHandler struct {
	service  *services.AddressService
	validate *validator.Validate
}

// NewAddressHandler creates a new AddressHandler.
func NewAddressHandler(service *services.AddressService) *AddressHandler {
	return &AddressHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the address routes with the Fiber app.
func (h *AddressHandler) RegisterRoutes(router fiber.Router) {
	addressRoutes := router.Group("/addresses")
	addressRoutes.Get("/", h.HandleList)
	addressRoutes.Get("/:id", h.HandleGet)
	addressRoutes.Post("/", h.HandleCreate)
	addressRoutes.Put("/:id", h.HandleUpdate)
	addressRoutes.Delete("/:id", h.HandleDelete)
}

// HandleList returns the user's addresses, default first.
func (h *AddressHandler) HandleList(c *fiber.Ctx) error {
	addresses, err := h.service.List(authUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(addresses)
}

// HandleGet returns one address.
func (h *AddressHandler) HandleGet(c *fiber.Ctx) error {
	address, err := h.service.Get(authUserID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(address)
}

// HandleCreate adds a new address.
func (h *AddressHandler) HandleCreate(c *fiber.Ctx) error {
	var address models.Address
	if err := c.BodyParser(&address); err != nil {
		return respondBadBody(c, err)
	}
	if err := h.validate.Struct(address); err != nil {
		return respondValidationErrors(c, err)
	}

	if err := h.service.Create(authUserID(c), &address); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(address)
}

// HandleUpdate applies a partial, allow-listed update.
func (h *AddressHandler) HandleUpdate(c *fiber.Ctx) error {
	var input services.UpdateAddressInput
	if err := c.BodyParser(&input); err != nil {
		return respondBadBody(c, err)
	}
	if err := h.validate.Struct(input); err != nil {
		return respondValidationErrors(c, err)
	}

	if err := h.service.Update(authUserID(c), c.Params("id"), input); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Address updated"})
}

// HandleDelete removes one address.
func (h *AddressHandler) HandleDelete(c *fiber.Ctx) error {
	if err := h.service.Delete(authUserID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Address deleted"})
}
