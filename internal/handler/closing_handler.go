package handler

import (
	"stockpro-backend/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ClosingHandler struct {
	service service.ClosingService
}

func NewClosingHandler(s service.ClosingService) *ClosingHandler {
	return &ClosingHandler{service: s}
}

// Preview shows the pending sales grouped by payment method before the
// cashier commits the closing. The totals shown here are advisory, the
// close recomputes them under lock.
// GET /api/v1/closings/preview
func (h *ClosingHandler) Preview(c *fiber.Ctx) error {
	preview, err := h.service.PreviewPending()
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(preview)
}

// POST /api/v1/closings
func (h *ClosingHandler) Close(c *fiber.Ctx) error {
	var req service.CloseRegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	userID, err := getUserUUID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	closing, err := h.service.CloseRegister(&req, userID)
	if err != nil {
		return jsonError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Register closed", "data": closing})
}

// GET /api/v1/closings
func (h *ClosingHandler) History(c *fiber.Ctx) error {
	closings, err := h.service.History()
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(closings)
}

// GET /api/v1/closings/:id
func (h *ClosingHandler) GetClosing(c *fiber.Ctx) error {
	closingID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid closing ID"})
	}

	closing, err := h.service.GetClosing(closingID)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(closing)
}
