package handler

import (
	"go-sales-dashboard/internal/model"
	"go-sales-dashboard/internal/service"

	"github.com/gofiber/fiber/v2"
)

const defaultTransactionWindow = 7

type InventoryHandler struct {
	service service.InventoryService
}

func NewInventoryHandler(s service.InventoryService) *InventoryHandler {
	return &InventoryHandler{service: s}
}

// productResponse adds the display flags the dashboard shows next to a product.
type productResponse struct {
	model.Product
	StockLevel    model.StockLevel `json:"stock_level"`
	MarginWarning bool             `json:"margin_warning"`
}

func toProductResponse(p *model.Product) productResponse {
	return productResponse{
		Product:       *p,
		StockLevel:    p.StockLevel(),
		MarginWarning: p.MarginWarning(),
	}
}

type restockRequest struct {
	Quantity int `json:"quantity"`
}

func (h *InventoryHandler) CreateProduct(c *fiber.Ctx) error {
	var product model.Product
	if err := c.BodyParser(&product); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	created, err := h.service.CreateProduct(c.UserContext(), &product)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Product created", "data": toProductResponse(created)})
}

// GetProducts lists products. Query params: category, q (name search)
func (h *InventoryHandler) GetProducts(c *fiber.Ctx) error {
	products, err := h.service.GetProducts(c.UserContext(), service.ProductFilter{
		Category: c.Query("category"),
		Query:    c.Query("q"),
	})
	if err != nil {
		return respondError(c, err)
	}

	data := make([]productResponse, 0, len(products))
	for i := range products {
		data = append(data, toProductResponse(&products[i]))
	}
	return c.JSON(data)
}

func (h *InventoryHandler) GetProduct(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	product, err := h.service.GetProduct(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toProductResponse(product))
}

func (h *InventoryHandler) UpdateProduct(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var patch model.ProductPatch
	if err := c.BodyParser(&patch); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	updated, err := h.service.UpdateProduct(c.UserContext(), id, patch)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Product updated", "data": toProductResponse(updated)})
}

func (h *InventoryHandler) DeleteProduct(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := h.service.DeleteProduct(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Product deleted"})
}

func (h *InventoryHandler) Restock(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var req restockRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	updated, err := h.service.Restock(c.UserContext(), id, req.Quantity)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Stock updated", "data": toProductResponse(updated)})
}

func (h *InventoryHandler) GetCategories(c *fiber.Ctx) error {
	categories, err := h.service.Categories(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(categories)
}

func (h *InventoryHandler) RecordSale(c *fiber.Ctx) error {
	var req service.SaleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	result, err := h.service.RecordSale(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Sale recorded", "data": result})
}

// GetTransactions lists recent sales. Query params: days (default 7)
func (h *InventoryHandler) GetTransactions(c *fiber.Ctx) error {
	days, err := queryInt(c, "days", defaultTransactionWindow)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	transactions, err := h.service.GetTransactions(c.UserContext(), days)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"period": days,
		"data":   transactions,
	})
}
