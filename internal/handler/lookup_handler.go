package handler

import (
	"github.com/gofiber/fiber/v2"

	"go-agrichain/internal/service"
	"go-agrichain/pkg/qr"
)

type LookupHandler struct {
	lookup  service.LookupService
	baseURL string
}

func NewLookupHandler(lookup service.LookupService, baseURL string) *LookupHandler {
	return &LookupHandler{lookup: lookup, baseURL: baseURL}
}

func (h *LookupHandler) GetBatch(c *fiber.Ctx) error {
	view, err := h.lookup.Lookup(c.Params("id"), c.Query("role", "consumer"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(view)
}

// Scan resolves scanned QR text (an encoded deep link or a raw batch
// code) to a role-filtered view.
func (h *LookupHandler) Scan(c *fiber.Ctx) error {
	var req struct {
		Text string `json:"text"`
		Role string `json:"role"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	id := qr.Decode(req.Text)
	if id == "" {
		return c.Status(400).JSON(fiber.Map{"error": "No batch reference in scanned text"})
	}

	role := req.Role
	if role == "" {
		role = "consumer"
	}
	view, err := h.lookup.Lookup(id, role)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(view)
}

// GetQR renders the batch's traceability QR code as a PNG.
func (h *LookupHandler) GetQR(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, err := h.lookup.Lookup(id, "consumer"); err != nil {
		return fail(c, err)
	}

	size := c.QueryInt("size", 240)
	if size < 64 || size > 1024 {
		size = 240
	}
	png, err := qr.Image(h.baseURL, id, size)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to generate QR code"})
	}

	c.Set(fiber.HeaderContentType, "image/png")
	return c.Send(png)
}
