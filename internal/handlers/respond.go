package handlers

import (
	"fmt"
	"log"

	"minimall/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// statusForKind maps an error kind to its HTTP status.
func statusForKind(kind string) int {
	switch kind {
	case "validation_error", "product_unavailable", "insufficient_stock",
		"price_mismatch", "invalid_state_transition":
		return fiber.StatusBadRequest
	case "not_found":
		return fiber.StatusNotFound
	case "already_consumed", "storage_conflict":
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

// respondError writes the {error_kind, message} failure body.
func respondError(c *fiber.Ctx, err error) error {
	kind := models.ErrorKind(err)
	if kind == "internal" {
		log.Printf("Internal error on %s %s: %v", c.Method(), c.Path(), err)
	}
	return c.Status(statusForKind(kind)).JSON(fiber.Map{
		"error_kind": kind,
		"message":    err.Error(),
	})
}

// respondValidationErrors formats validator failures field by field.
func respondValidationErrors(c *fiber.Ctx, err error) error {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		errorMessages := make(map[string]string)
		for _, e := range validationErrors {
			errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error_kind": "validation_error",
			"message":    "Validation failed",
			"errors":     errorMessages,
		})
	}
	return respondError(c, fmt.Errorf("%v: %w", err, models.ErrValidation))
}

// respondBadBody rejects an unparseable request body.
func respondBadBody(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error_kind": "validation_error",
		"message":    "Invalid request body",
		"error":      err.Error(),
	})
}

// authUserID pulls the authenticated user ID stored by the JWT middleware.
func authUserID(c *fiber.Ctx) string {
	userID, _ := c.Locals("user_id").(string)
	return userID
}
