package inventory

import (
	"fmt"

	"github.com/PanuLaosuwan/faststock-backend/internal/audit"
	"github.com/PanuLaosuwan/faststock-backend/internal/auth"
	"github.com/PanuLaosuwan/faststock-backend/internal/httpx"
	"github.com/PanuLaosuwan/faststock-backend/internal/ledger"
	"github.com/PanuLaosuwan/faststock-backend/internal/models"
	"github.com/PanuLaosuwan/faststock-backend/internal/store"

	"github.com/gofiber/fiber/v2"
)

const entityLost = "lost"

var lostPatchFields = []string{"category", "receiver", "quantity", "subquantity", "desc"}

// LostResponse: lost or broken stock. It is reported alongside the ledger and
// never enters the reconciliation.
type LostResponse struct {
	BarCode     string   `json:"bcode"`
	ProductID   uint     `json:"pid"`
	ProductName string   `json:"pname,omitempty"`
	Date        string   `json:"sdate"`
	Category    string   `json:"category"`
	Receiver    *string  `json:"receiver"`
	Quantity    int64    `json:"quantity"`
	Subquantity *float64 `json:"subquantity"`
	Description *string  `json:"desc"`
}

func lostViewResponse(v store.LostView) LostResponse {
	return LostResponse{
		BarCode:     v.BarCode,
		ProductID:   v.ProductID,
		ProductName: v.ProductName,
		Date:        ledger.FormatDate(v.Date),
		Category:    v.Category,
		Receiver:    v.Receiver,
		Quantity:    v.Quantity,
		Subquantity: v.Subquantity,
		Description: v.Description,
	}
}

func lostEntryResponse(e *models.LostEntry) LostResponse {
	return LostResponse{
		BarCode:     e.BarCode,
		ProductID:   e.ProductID,
		Date:        ledger.FormatDate(e.Date),
		Category:    e.Category,
		Receiver:    e.Receiver,
		Quantity:    e.Quantity,
		Subquantity: e.Subquantity,
		Description: e.Description,
	}
}

func lostViewsResponse(rows []store.LostView) []LostResponse {
	resp := make([]LostResponse, 0, len(rows))
	for _, r := range rows {
		resp = append(resp, lostViewResponse(r))
	}
	return resp
}

// GET /api/lost
func ListLostHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rows, err := st.ListLost(c.UserContext())
		if err != nil {
			return err
		}
		return c.JSON(lostViewsResponse(rows))
	}
}

// GET /api/bars/:barId/lost?date=2024-05-01
func LostByBarHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		barCode, err := httpx.Code(c, "barId")
		if err != nil {
			return err
		}
		date, err := httpx.OptionalDate(c, "date")
		if err != nil {
			return err
		}
		rows, err := st.LostByBar(c.UserContext(), barCode, date)
		if err != nil {
			return err
		}
		return c.JSON(lostViewsResponse(rows))
	}
}

// GET /api/event/:eid/lost
func LostByEventHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		eventID, err := httpx.ID(c, "eid")
		if err != nil {
			return err
		}
		if _, err := st.GetEvent(c.UserContext(), eventID); err != nil {
			return err
		}
		rows, err := st.LostByEvent(c.UserContext(), eventID)
		if err != nil {
			return err
		}
		return c.JSON(lostViewsResponse(rows))
	}
}

// POST /api/bars/:barId/add-lost
func CreateLostHandler(st *store.Store, rec *audit.Recorder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		barCode, err := httpx.Code(c, "barId")
		if err != nil {
			return err
		}
		p, err := httpx.DecodePatch(c.Body(), append([]string{"pid", "sdate"}, lostPatchFields...)...)
		if err != nil {
			return err
		}

		pid, okPID, err := p.ID("pid")
		if err != nil {
			return err
		}
		date, okDate, err := p.Date("sdate")
		if err != nil {
			return err
		}
		category, okCategory, err := p.String("category")
		if err != nil {
			return err
		}
		qty, okQty, err := p.Quantity("quantity")
		if err != nil {
			return err
		}
		if !okPID || !okDate || !okCategory || !okQty {
			return fiber.NewError(fiber.StatusBadRequest, "pid, sdate, category and quantity are required")
		}

		entry := models.LostEntry{
			BarCode:   barCode,
			Date:      date,
			ProductID: pid,
			Category:  category,
			Quantity:  qty,
		}
		if entry.Receiver, _, err = p.NullableString("receiver"); err != nil {
			return err
		}
		if entry.Subquantity, _, err = p.NullableAmount("subquantity"); err != nil {
			return err
		}
		if entry.Description, _, err = p.NullableString("desc"); err != nil {
			return err
		}

		if err := st.CreateLost(c.UserContext(), &entry); err != nil {
			return err
		}

		userID, userName := auth.Actor(c)
		rec.Record(c.UserContext(), audit.LogOptions{
			UserID:      userID,
			UserName:    userName,
			EntityType:  entityLost,
			EntityKey:   ledger.StockKey(barCode, pid, entry.Date),
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Lost %d x pid %d at %s (%s)", qty, pid, barCode, category),
			After:       lostEntryResponse(&entry),
		})

		return c.Status(fiber.StatusCreated).JSON(lostEntryResponse(&entry))
	}
}

// PATCH /api/bars/:barId/lost/:pid/:sdate
func PatchLostHandler(st *store.Store, rec *audit.Recorder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		barCode, pid, date, err := stockKeyParams(c)
		if err != nil {
			return err
		}
		p, err := httpx.DecodePatch(c.Body(), lostPatchFields...)
		if err != nil {
			return err
		}

		fields := map[string]any{}
		if v, ok, err := p.String("category"); err != nil {
			return err
		} else if ok {
			fields["category"] = v
		}
		if v, ok, err := p.Quantity("quantity"); err != nil {
			return err
		} else if ok {
			fields["quantity"] = v
		}
		if v, ok, err := p.NullableString("receiver"); err != nil {
			return err
		} else if ok {
			fields["receiver"] = v
		}
		if v, ok, err := p.NullableAmount("subquantity"); err != nil {
			return err
		} else if ok {
			fields["subquantity"] = v
		}
		if v, ok, err := p.NullableString("desc"); err != nil {
			return err
		} else if ok {
			fields["description"] = v
		}
		if len(fields) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "No updatable fields in request body")
		}

		updated, err := st.PatchLost(c.UserContext(), barCode, pid, date, fields)
		if err != nil {
			return err
		}

		userID, userName := auth.Actor(c)
		rec.Record(c.UserContext(), audit.LogOptions{
			UserID:      userID,
			UserName:    userName,
			EntityType:  entityLost,
			EntityKey:   ledger.StockKey(barCode, pid, date),
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("Lost entry updated %s pid %d on %s", barCode, pid, ledger.FormatDate(date)),
			After:       lostEntryResponse(updated),
		})

		return c.JSON(lostEntryResponse(updated))
	}
}

// DELETE /api/bars/:barId/lost/:pid/:sdate
func DeleteLostHandler(st *store.Store, rec *audit.Recorder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		barCode, pid, date, err := stockKeyParams(c)
		if err != nil {
			return err
		}
		if err := st.DeleteLost(c.UserContext(), barCode, pid, date); err != nil {
			return err
		}

		userID, userName := auth.Actor(c)
		rec.Record(c.UserContext(), audit.LogOptions{
			UserID:      userID,
			UserName:    userName,
			EntityType:  entityLost,
			EntityKey:   ledger.StockKey(barCode, pid, date),
			Action:      models.AuditActionDelete,
			Description: fmt.Sprintf("Lost entry deleted %s pid %d on %s", barCode, pid, ledger.FormatDate(date)),
		})

		return c.SendStatus(fiber.StatusNoContent)
	}
}
