package handler

import (
	"github.com/gofiber/fiber/v2"

	"go-agrichain/internal/service"
)

type TelemetryHandler struct {
	service service.ChainService
}

func NewTelemetryHandler(s service.ChainService) *TelemetryHandler {
	return &TelemetryHandler{service: s}
}

func (h *TelemetryHandler) Get(c *fiber.Ctx) error {
	t, err := h.service.Telemetry()
	if err != nil {
		return fail(c, err)
	}
	if t == nil {
		return c.Status(404).JSON(fiber.Map{"error": "No tracking data recorded yet"})
	}
	return c.JSON(t)
}

func (h *TelemetryHandler) Refresh(c *fiber.Ctx) error {
	t, err := h.service.RefreshTelemetry()
	if err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Tracking snapshot refreshed", "data": t})
}
