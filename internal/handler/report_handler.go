package handler

import (
	"fmt"
	"time"

	"stockpro-backend/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ReportHandler struct {
	service service.ReportService
}

func NewReportHandler(s service.ReportService) *ReportHandler {
	return &ReportHandler{service: s}
}

// GET /api/v1/reports/stock
func (h *ReportHandler) StockReport(c *fiber.Ctx) error {
	file, err := h.service.StockReport()
	if err != nil {
		return jsonError(c, err)
	}

	buf, err := file.WriteToBuffer()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to render report"})
	}

	filename := fmt.Sprintf("stock_%s.xlsx", time.Now().Format("2006-01-02"))
	c.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(buf.Bytes())
}

// GET /api/v1/reports/finance
func (h *ReportHandler) FinanceReport(c *fiber.Ctx) error {
	start, end, err := parsePeriod(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid date, use YYYY-MM-DD"})
	}

	file, err := h.service.FinanceReport(start, end)
	if err != nil {
		return jsonError(c, err)
	}

	buf, err := file.WriteToBuffer()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to render report"})
	}

	filename := fmt.Sprintf("finance_%s_%s.xlsx", start.Format("2006-01-02"), end.Format("2006-01-02"))
	c.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(buf.Bytes())
}
