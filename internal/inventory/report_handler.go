package inventory

import (
	"fmt"

	"github.com/PanuLaosuwan/faststock-backend/internal/httpx"

	"github.com/gofiber/fiber/v2"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// GET /api/event/:id/inventory
func InventoryHandler(rep *Reporter) fiber.Handler {
	return func(c *fiber.Ctx) error {
		eventID, err := httpx.ID(c, "id")
		if err != nil {
			return err
		}

		report, err := rep.Inventory(c.UserContext(), eventID)
		if err != nil {
			return err
		}

		return c.JSON(NewInventoryPayload(report.Grid))
	}
}

// GET /api/event/:id/stock-summary?date=2024-05-01
func StockSummaryHandler(rep *Reporter) fiber.Handler {
	return func(c *fiber.Ctx) error {
		eventID, err := httpx.ID(c, "id")
		if err != nil {
			return err
		}
		date, err := httpx.OptionalDate(c, "date")
		if err != nil {
			return err
		}

		report, err := rep.StockSummary(c.UserContext(), eventID, date)
		if err != nil {
			return err
		}

		return c.JSON(NewSummaryRows(report.Summary))
	}
}

// GET /api/event/:id/stock-summary/export?date=2024-05-01
func StockSummaryExportHandler(rep *Reporter) fiber.Handler {
	return func(c *fiber.Ctx) error {
		eventID, err := httpx.ID(c, "id")
		if err != nil {
			return err
		}
		date, err := httpx.OptionalDate(c, "date")
		if err != nil {
			return err
		}

		report, err := rep.StockSummary(c.UserContext(), eventID, date)
		if err != nil {
			return err
		}

		buf, err := WriteSummaryXLSX(NewSummaryRows(report.Summary), report.Products)
		if err != nil {
			return fmt.Errorf("render summary workbook: %w", err)
		}

		name := fmt.Sprintf("stock-summary-event-%d.xlsx", eventID)
		if date != nil {
			name = fmt.Sprintf("stock-summary-event-%d-%s.xlsx", eventID, date.Format("2006-01-02"))
		}
		c.Set(fiber.HeaderContentType, xlsxContentType)
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, name))
		return c.Send(buf.Bytes())
	}
}
