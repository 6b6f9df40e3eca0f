package handler

import (
	"go-sales-dashboard/internal/service"

	"github.com/gofiber/fiber/v2"
)

const (
	defaultDailyWindow = 7
	defaultTopLimit    = 5
)

type DashboardHandler struct {
	service service.DashboardService
}

func NewDashboardHandler(s service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: s}
}

// GetOverview returns today's figures next to yesterday's.
func (h *DashboardHandler) GetOverview(c *fiber.Ctx) error {
	overview, err := h.service.Overview(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(overview)
}

// GetDailySales returns per-day totals for charts
// Query params: days (default 7)
func (h *DashboardHandler) GetDailySales(c *fiber.Ctx) error {
	days, err := queryInt(c, "days", defaultDailyWindow)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	data, err := h.service.DailySales(c.UserContext(), days)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"period": days,
		"data":   data,
	})
}

func (h *DashboardHandler) GetPredictions(c *fiber.Ctx) error {
	predictions, err := h.service.SalesPrediction(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(predictions)
}

func (h *DashboardHandler) GetStockOverview(c *fiber.Ctx) error {
	overview, err := h.service.StockOverview(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(overview)
}

// GetTopProducts ranks products by revenue
// Query params: days (default 7), limit (default 5)
func (h *DashboardHandler) GetTopProducts(c *fiber.Ctx) error {
	days, err := queryInt(c, "days", defaultDailyWindow)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	limit, err := queryInt(c, "limit", defaultTopLimit)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	top, err := h.service.TopProducts(c.UserContext(), days, limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"period": days,
		"data":   top,
	})
}
