package handler

import (
	"github.com/gofiber/fiber/v2"

	"go-agrichain/internal/model"
	"go-agrichain/internal/service"
)

type BatchHandler struct {
	service service.ChainService
}

func NewBatchHandler(s service.ChainService) *BatchHandler {
	return &BatchHandler{service: s}
}

func (h *BatchHandler) CreateListing(c *fiber.Ctx) error {
	var req service.CreateListingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	batch, err := h.service.CreateListing(&req)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Listing saved with BatchID " + batch.ID, "data": batch})
}

func (h *BatchHandler) SeedListings(c *fiber.Ctx) error {
	seeded, err := h.service.SeedListings()
	if err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Seeded demo listings", "data": seeded})
}

func (h *BatchHandler) GetListings(c *fiber.Ctx) error {
	status := model.BatchStatus(c.Query("status"))
	listings, err := h.service.Listings(status)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(listings)
}

func (h *BatchHandler) GetInventory(c *fiber.Ctx) error {
	inventory, err := h.service.Inventory()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(inventory)
}

func (h *BatchHandler) DistributorPurchase(c *fiber.Ctx) error {
	var req service.DistributorPurchaseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	batch, err := h.service.DistributorPurchase(c.Params("id"), &req)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Batch purchased", "data": batch})
}

func (h *BatchHandler) RetailerPurchase(c *fiber.Ctx) error {
	var req service.RetailRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	batch, err := h.service.RetailerPurchase(c.Params("id"), &req)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Retail price applied", "data": batch})
}

func (h *BatchHandler) ConsumerPurchase(c *fiber.Ctx) error {
	var req service.ConsumerPurchaseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	record, err := h.service.ConsumerPurchase(c.Params("id"), &req)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Purchase recorded", "data": record})
}

func (h *BatchHandler) GetDistributorPurchases(c *fiber.Ctx) error {
	purchases, err := h.service.DistributorPurchases()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(purchases)
}

func (h *BatchHandler) GetRetailPurchases(c *fiber.Ctx) error {
	purchases, err := h.service.RetailPurchases()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(purchases)
}

func (h *BatchHandler) GetConsumerPurchases(c *fiber.Ctx) error {
	purchases, err := h.service.ConsumerPurchases()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(purchases)
}

func (h *BatchHandler) GetStats(c *fiber.Ctx) error {
	stats, err := h.service.Stats()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(stats)
}
