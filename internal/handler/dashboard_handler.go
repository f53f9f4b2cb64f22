package handler

import (
	"stockpro-backend/internal/service"

	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	service service.DashboardService
}

func NewDashboardHandler(s service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: s}
}

// GET /api/v1/dashboard
func (h *DashboardHandler) Overview(c *fiber.Ctx) error {
	overview, err := h.service.Overview()
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(overview)
}
