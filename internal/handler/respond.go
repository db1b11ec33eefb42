package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"go-agrichain/internal/service"
)

// fail maps service errors to HTTP statuses. Validation problems are
// the caller's to fix (400), state and quantity rejections are
// conflicts with the ledger (409), and a lookup miss is a plain 404.
func fail(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrValidation):
		status = fiber.StatusBadRequest
	case errors.Is(err, service.ErrBatchNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, service.ErrInvalidState), errors.Is(err, service.ErrInsufficientQuantity):
		status = fiber.StatusConflict
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}
