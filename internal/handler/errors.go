package handler

import (
	"errors"
	"strconv"

	"go-sales-dashboard/internal/repository"
	"go-sales-dashboard/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// respondError maps service errors onto HTTP statuses. Store failures are logged and
// reported without detail.
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, repository.ErrProductNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, repository.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, repository.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	default:
		logger.Error().
			Err(err).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Msg("Request failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal Server Error"})
	}
}

func parseID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("Invalid product ID")
	}
	return uint(id), nil
}

// queryInt reads an integer query parameter, using def when it is absent.
func queryInt(c *fiber.Ctx, key string, def int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.New("Invalid " + key + " parameter")
	}
	return v, nil
}
