package handler

import (
	"stockpro-backend/internal/model"
	"stockpro-backend/internal/service"

	"github.com/gofiber/fiber/v2"
)

type InventoryHandler struct {
	service service.InventoryService
}

func NewInventoryHandler(s service.InventoryService) *InventoryHandler {
	return &InventoryHandler{service: s}
}

func (h *InventoryHandler) CreateProduct(c *fiber.Ctx) error {
	var product model.Product
	if err := c.BodyParser(&product); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if err := h.service.CreateProduct(&product, getUserID(c)); err != nil {
		return jsonError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Product created", "data": product})
}

func (h *InventoryHandler) UpdateProduct(c *fiber.Ctx) error {
	productID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	var product model.Product
	if err := c.BodyParser(&product); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	updated, err := h.service.UpdateProduct(productID, &product, getUserID(c))
	if err != nil {
		return jsonError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Product updated", "data": updated})
}

func (h *InventoryHandler) ToggleProduct(c *fiber.Ctx) error {
	productID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	if err := h.service.ToggleProduct(productID, getUserID(c)); err != nil {
		return jsonError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Product visibility toggled"})
}

func (h *InventoryHandler) DeleteProduct(c *fiber.Ctx) error {
	productID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	if err := h.service.DeleteProduct(productID); err != nil {
		return jsonError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Product deleted"})
}

func (h *InventoryHandler) GetProducts(c *fiber.Ctx) error {
	onlyActive := c.QueryBool("active", false)
	products, err := h.service.ListProducts(onlyActive)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(products)
}

func (h *InventoryHandler) GetProduct(c *fiber.Ctx) error {
	productID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	product, err := h.service.GetProduct(productID)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(product)
}

func (h *InventoryHandler) ReceiveBatch(c *fiber.Ctx) error {
	var req service.ReceiveBatchRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	batch, err := h.service.ReceiveBatch(&req, getUserID(c))
	if err != nil {
		return jsonError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Batch received", "data": batch})
}

func (h *InventoryHandler) GetBatches(c *fiber.Ctx) error {
	productID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	batches, err := h.service.ListBatches(productID)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(batches)
}

func (h *InventoryHandler) DeleteBatch(c *fiber.Ctx) error {
	batchID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid batch ID"})
	}

	if err := h.service.DeleteBatch(batchID); err != nil {
		return jsonError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Batch deleted"})
}

func (h *InventoryHandler) UpdateBrandPrices(c *fiber.Ctx) error {
	var req service.BrandPriceUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	updated, err := h.service.UpdateBrandPrices(&req, getUserID(c))
	if err != nil {
		return jsonError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Prices updated", "updated": updated})
}
