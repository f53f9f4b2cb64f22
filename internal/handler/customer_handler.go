package handler

import (
	"stockpro-backend/internal/model"
	"stockpro-backend/internal/repository"
	"stockpro-backend/pkg/validator"

	"github.com/gofiber/fiber/v2"
)

type CustomerHandler struct {
	customerRepo repository.CustomerRepository
}

func NewCustomerHandler(customerRepo repository.CustomerRepository) *CustomerHandler {
	return &CustomerHandler{customerRepo: customerRepo}
}

// Search matches a partial name or document, used by the POS to attach a
// customer to a sale.
// GET /api/v1/customers?q=...
func (h *CustomerHandler) Search(c *fiber.Ctx) error {
	term := c.Query("q")
	limit := c.QueryInt("limit", 10)

	customers, err := h.customerRepo.Search(term, limit)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to search customers"})
	}
	return c.JSON(customers)
}

// POST /api/v1/customers
func (h *CustomerHandler) Create(c *fiber.Ctx) error {
	var customer model.Customer
	if err := c.BodyParser(&customer); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if errs := validator.ValidateStruct(&customer); len(errs) > 0 {
		return c.Status(400).JSON(fiber.Map{"error": "Validation failed", "details": errs})
	}

	if existing, _ := h.customerRepo.FindByDocument(customer.Document); existing != nil {
		return c.Status(409).JSON(fiber.Map{"error": "Customer document already registered"})
	}

	customer.CreatedBy = getUserID(c)
	customer.UpdatedBy = customer.CreatedBy
	if err := h.customerRepo.Create(&customer); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(201).JSON(fiber.Map{"message": "Customer created", "data": customer})
}
