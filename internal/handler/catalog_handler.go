package handler

import (
	"stockpro-backend/internal/model"
	"stockpro-backend/internal/repository"
	"stockpro-backend/pkg/validator"

	"github.com/gofiber/fiber/v2"
)

// CatalogHandler serves the lookup tables the rest of the catalog hangs
// off: categories, brands, units and payment methods.
type CatalogHandler struct {
	categoryRepo repository.CategoryRepository
	brandRepo    repository.BrandRepository
	unitRepo     repository.UnitRepository
	methodRepo   repository.PaymentMethodRepository
}

func NewCatalogHandler(
	categoryRepo repository.CategoryRepository,
	brandRepo repository.BrandRepository,
	unitRepo repository.UnitRepository,
	methodRepo repository.PaymentMethodRepository,
) *CatalogHandler {
	return &CatalogHandler{
		categoryRepo: categoryRepo,
		brandRepo:    brandRepo,
		unitRepo:     unitRepo,
		methodRepo:   methodRepo,
	}
}

func (h *CatalogHandler) GetCategories(c *fiber.Ctx) error {
	categories, err := h.categoryRepo.FindAll(c.QueryBool("active", false))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch categories"})
	}
	return c.JSON(categories)
}

func (h *CatalogHandler) CreateCategory(c *fiber.Ctx) error {
	var category model.Category
	if err := c.BodyParser(&category); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if errs := validator.ValidateStruct(&category); len(errs) > 0 {
		return c.Status(400).JSON(fiber.Map{"error": "Validation failed", "details": errs})
	}

	category.CreatedBy = getUserID(c)
	category.UpdatedBy = category.CreatedBy
	if err := h.categoryRepo.Create(&category); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(201).JSON(fiber.Map{"message": "Category created", "data": category})
}

func (h *CatalogHandler) UpdateCategory(c *fiber.Ctx) error {
	categoryID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid category ID"})
	}

	category, err := h.categoryRepo.FindByID(categoryID)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Category not found"})
	}

	var req model.Category
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	category.Name = req.Name
	category.VisibleOnline = req.VisibleOnline
	category.UpdatedBy = getUserID(c)
	if err := h.categoryRepo.Update(category); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "Category updated", "data": category})
}

func (h *CatalogHandler) ToggleCategory(c *fiber.Ctx) error {
	categoryID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid category ID"})
	}
	if err := h.categoryRepo.ToggleActive(categoryID, getUserID(c)); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "Category toggled"})
}

func (h *CatalogHandler) GetBrands(c *fiber.Ctx) error {
	brands, err := h.brandRepo.FindAll(c.QueryBool("active", false))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch brands"})
	}
	return c.JSON(brands)
}

func (h *CatalogHandler) CreateBrand(c *fiber.Ctx) error {
	var brand model.Brand
	if err := c.BodyParser(&brand); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if errs := validator.ValidateStruct(&brand); len(errs) > 0 {
		return c.Status(400).JSON(fiber.Map{"error": "Validation failed", "details": errs})
	}

	brand.CreatedBy = getUserID(c)
	brand.UpdatedBy = brand.CreatedBy
	if err := h.brandRepo.Create(&brand); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(201).JSON(fiber.Map{"message": "Brand created", "data": brand})
}

func (h *CatalogHandler) UpdateBrand(c *fiber.Ctx) error {
	brandID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid brand ID"})
	}

	brand, err := h.brandRepo.FindByID(brandID)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Brand not found"})
	}

	var req model.Brand
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	brand.Name = req.Name
	brand.UpdatedBy = getUserID(c)
	if err := h.brandRepo.Update(brand); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "Brand updated", "data": brand})
}

func (h *CatalogHandler) ToggleBrand(c *fiber.Ctx) error {
	brandID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid brand ID"})
	}
	if err := h.brandRepo.ToggleActive(brandID, getUserID(c)); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "Brand toggled"})
}

func (h *CatalogHandler) GetUnits(c *fiber.Ctx) error {
	units, err := h.unitRepo.FindAll()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch units"})
	}
	return c.JSON(units)
}

func (h *CatalogHandler) CreateUnit(c *fiber.Ctx) error {
	var unit model.Unit
	if err := c.BodyParser(&unit); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if errs := validator.ValidateStruct(&unit); len(errs) > 0 {
		return c.Status(400).JSON(fiber.Map{"error": "Validation failed", "details": errs})
	}

	unit.CreatedBy = getUserID(c)
	unit.UpdatedBy = unit.CreatedBy
	if err := h.unitRepo.Create(&unit); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(201).JSON(fiber.Map{"message": "Unit created", "data": unit})
}

// GetPaymentMethods lists payment methods. Inactive methods stay listed
// for history screens, the POS filters on active=true.
func (h *CatalogHandler) GetPaymentMethods(c *fiber.Ctx) error {
	if c.QueryBool("active", false) {
		methods, err := h.methodRepo.FindActive()
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch payment methods"})
		}
		return c.JSON(methods)
	}

	methods, err := h.methodRepo.FindAll()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch payment methods"})
	}
	return c.JSON(methods)
}

func (h *CatalogHandler) CreatePaymentMethod(c *fiber.Ctx) error {
	var method model.PaymentMethod
	if err := c.BodyParser(&method); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if errs := validator.ValidateStruct(&method); len(errs) > 0 {
		return c.Status(400).JSON(fiber.Map{"error": "Validation failed", "details": errs})
	}

	method.CreatedBy = getUserID(c)
	method.UpdatedBy = method.CreatedBy
	if err := h.methodRepo.Create(&method); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(201).JSON(fiber.Map{"message": "Payment method created", "data": method})
}

func (h *CatalogHandler) TogglePaymentMethod(c *fiber.Ctx) error {
	methodID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid payment method ID"})
	}
	if err := h.methodRepo.ToggleActive(methodID, getUserID(c)); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "Payment method toggled"})
}
