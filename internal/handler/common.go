package handler

import (
	"errors"

	"stockpro-backend/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// getUserID extracts the authenticated user's ID from the JWT context
// (set by the auth middleware).
func getUserID(c *fiber.Ctx) string {
	userID := c.Locals("user_id")
	if userID == nil {
		return "system"
	}
	return userID.(string)
}

func getUserUUID(c *fiber.Ctx) (uuid.UUID, error) {
	return uuid.Parse(getUserID(c))
}

func parseUUID(id string) (uuid.UUID, error) {
	return uuid.Parse(id)
}

// statusForError maps service errors onto HTTP status codes so every
// handler reports failures the same way.
func statusForError(err error) int {
	var insufficientStock *service.InsufficientStockError
	var countedAmount *service.CountedAmountError
	var validation *service.ValidationError

	switch {
	case errors.Is(err, service.ErrProductNotFound),
		errors.Is(err, service.ErrBatchNotFound),
		errors.Is(err, service.ErrBrandNotFound),
		errors.Is(err, service.ErrCategoryNotFound),
		errors.Is(err, service.ErrCustomerNotFound),
		errors.Is(err, service.ErrPaymentMethodNotFound):
		return 404
	case errors.As(err, &insufficientStock):
		return 409
	case errors.Is(err, service.ErrNothingToClose):
		return 409
	case errors.Is(err, service.ErrBarcodeTaken),
		errors.Is(err, service.ErrDocumentTaken):
		return 409
	case errors.As(err, &countedAmount),
		errors.As(err, &validation),
		errors.Is(err, service.ErrPaymentMethodInactive):
		return 400
	default:
		return 500
	}
}

func jsonError(c *fiber.Ctx, err error) error {
	status := statusForError(err)
	if status == 500 {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}
