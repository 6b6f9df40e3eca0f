package handler

import (
	"bytes"
	"fmt"
	"time"

	"go-sales-dashboard/internal/service"

	"github.com/gofiber/fiber/v2"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ExportHandler struct {
	service service.ExportService
}

func NewExportHandler(s service.ExportService) *ExportHandler {
	return &ExportHandler{service: s}
}

func (h *ExportHandler) TransactionsCSV(c *fiber.Ctx) error {
	days, err := queryInt(c, "days", defaultTransactionWindow)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var buf bytes.Buffer
	if err := h.service.TransactionsCSV(c.UserContext(), &buf, days); err != nil {
		return respondError(c, err)
	}

	c.Attachment(exportName("csv"))
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	return c.Send(buf.Bytes())
}

func (h *ExportHandler) TransactionsXLSX(c *fiber.Ctx) error {
	days, err := queryInt(c, "days", defaultTransactionWindow)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var buf bytes.Buffer
	if err := h.service.TransactionsXLSX(c.UserContext(), &buf, days); err != nil {
		return respondError(c, err)
	}

	c.Attachment(exportName("xlsx"))
	c.Set(fiber.HeaderContentType, xlsxContentType)
	return c.Send(buf.Bytes())
}

func exportName(ext string) string {
	return fmt.Sprintf("sales_report_%s.%s", time.Now().Format("20060102"), ext)
}
