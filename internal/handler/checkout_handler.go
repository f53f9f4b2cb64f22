package handler

import (
	"stockpro-backend/internal/service"

	"github.com/gofiber/fiber/v2"
)

type CheckoutHandler struct {
	checkout  service.CheckoutService
	inventory service.InventoryService
}

func NewCheckoutHandler(checkout service.CheckoutService, inventory service.InventoryService) *CheckoutHandler {
	return &CheckoutHandler{checkout: checkout, inventory: inventory}
}

// Checkout settles a cart: validates stock, consumes batches and records
// the sale atomically.
// POST /api/v1/sales
func (h *CheckoutHandler) Checkout(c *fiber.Ctx) error {
	var req service.CheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	sellerID, err := getUserUUID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	sale, err := h.checkout.Checkout(&req, sellerID)
	if err != nil {
		return jsonError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Sale completed", "data": sale})
}

// GET /api/v1/sales
func (h *CheckoutHandler) GetSales(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 0)
	sales, err := h.checkout.RecentSales(limit)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(sales)
}

// GET /api/v1/sales/:id
func (h *CheckoutHandler) GetSale(c *fiber.Ctx) error {
	saleID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid sale ID"})
	}

	sale, err := h.checkout.GetSale(saleID)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(sale)
}

// GetSellableProducts lists active, visible products with their stock
// totals, the catalog the point of sale works from.
// GET /api/v1/sales/products
func (h *CheckoutHandler) GetSellableProducts(c *fiber.Ctx) error {
	products, err := h.inventory.ListSellable()
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(products)
}
