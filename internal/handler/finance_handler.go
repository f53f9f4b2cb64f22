package handler

import (
	"time"

	"stockpro-backend/internal/model"
	"stockpro-backend/internal/service"

	"github.com/gofiber/fiber/v2"
)

type FinanceHandler struct {
	service service.FinanceService
}

func NewFinanceHandler(s service.FinanceService) *FinanceHandler {
	return &FinanceHandler{service: s}
}

// parsePeriod reads start/end query params (YYYY-MM-DD). Defaults to the
// current calendar month.
func parsePeriod(c *fiber.Ctx) (time.Time, time.Time, error) {
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	end := now

	if raw := c.Query("start"); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, now.Location())
		if err != nil {
			return start, end, err
		}
		start = parsed
	}
	if raw := c.Query("end"); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, now.Location())
		if err != nil {
			return start, end, err
		}
		// Inclusive end of day.
		end = parsed.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	return start, end, nil
}

// GET /api/v1/finance/summary
func (h *FinanceHandler) Summary(c *fiber.Ctx) error {
	start, end, err := parsePeriod(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid date, use YYYY-MM-DD"})
	}

	summary, err := h.service.Summary(start, end)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(summary)
}

// POST /api/v1/expenses
func (h *FinanceHandler) RecordExpense(c *fiber.Ctx) error {
	var req service.RecordExpenseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	userID, err := getUserUUID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	expense, err := h.service.RecordExpense(&req, userID)
	if err != nil {
		return jsonError(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Expense recorded", "data": expense})
}

// GET /api/v1/expenses
func (h *FinanceHandler) GetExpenses(c *fiber.Ctx) error {
	start, end, err := parsePeriod(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid date, use YYYY-MM-DD"})
	}

	expenses, err := h.service.ListExpenses(start, end)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(expenses)
}

// DELETE /api/v1/expenses/:id
func (h *FinanceHandler) DeleteExpense(c *fiber.Ctx) error {
	expenseID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid expense ID"})
	}

	if err := h.service.DeleteExpense(expenseID); err != nil {
		return jsonError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Expense deleted"})
}

// POST /api/v1/expenses/categories
func (h *FinanceHandler) CreateExpenseCategory(c *fiber.Ctx) error {
	var category model.ExpenseCategory
	if err := c.BodyParser(&category); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if err := h.service.CreateExpenseCategory(&category, getUserID(c)); err != nil {
		return jsonError(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Expense category created", "data": category})
}

// GET /api/v1/expenses/categories
func (h *FinanceHandler) GetExpenseCategories(c *fiber.Ctx) error {
	categories, err := h.service.ListExpenseCategories()
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(categories)
}
