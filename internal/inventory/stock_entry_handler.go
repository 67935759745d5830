package inventory

import (
	"fmt"
	"time"

	"github.com/PanuLaosuwan/faststock-backend/internal/audit"
	"github.com/PanuLaosuwan/faststock-backend/internal/auth"
	"github.com/PanuLaosuwan/faststock-backend/internal/httpx"
	"github.com/PanuLaosuwan/faststock-backend/internal/ledger"
	"github.com/PanuLaosuwan/faststock-backend/internal/models"
	"github.com/PanuLaosuwan/faststock-backend/internal/store"

	"github.com/gofiber/fiber/v2"
)

const entityStock = "stock"

type StockEntryResponse struct {
	BarCode          string   `json:"bcode"`
	ProductID        uint     `json:"pid"`
	ProductName      string   `json:"pname,omitempty"`
	Date             string   `json:"sdate"`
	StartQuantity    int64    `json:"start_quantity"`
	StartSubquantity *float64 `json:"start_subquantity"`
	EndQuantity      int64    `json:"end_quantity"`
	EndSubquantity   *float64 `json:"end_subquantity"`
	Description      *string  `json:"desc"`
}

type BulkStockResponse struct {
	StockEntryResponse
	Created bool `json:"created"`
}

type BulkStockRequest struct {
	Items []BulkStockItem `json:"items"`
}

type BulkStockItem struct {
	ProductID        uint     `json:"pid"`
	Date             string   `json:"sdate"`
	StartQuantity    *int64   `json:"start_quantity"`
	StartSubquantity *float64 `json:"start_subquantity"`
	EndQuantity      *int64   `json:"end_quantity"`
	EndSubquantity   *float64 `json:"end_subquantity"`
	Description      *string  `json:"desc"`
}

var stockPatchFields = []string{"start_quantity", "start_subquantity", "end_quantity", "end_subquantity", "desc"}

func stockViewResponse(v store.StockView) StockEntryResponse {
	return StockEntryResponse{
		BarCode:          v.BarCode,
		ProductID:        v.ProductID,
		ProductName:      v.ProductName,
		Date:             ledger.FormatDate(v.Date),
		StartQuantity:    v.StartQuantity,
		StartSubquantity: v.StartSubquantity,
		EndQuantity:      v.EndQuantity,
		EndSubquantity:   v.EndSubquantity,
		Description:      v.Description,
	}
}

func stockEntryResponse(e *models.StockEntry) StockEntryResponse {
	return StockEntryResponse{
		BarCode:          e.BarCode,
		ProductID:        e.ProductID,
		Date:             ledger.FormatDate(e.Date),
		StartQuantity:    e.StartQuantity,
		StartSubquantity: e.StartSubquantity,
		EndQuantity:      e.EndQuantity,
		EndSubquantity:   e.EndSubquantity,
		Description:      e.Description,
	}
}

func stockViewsResponse(rows []store.StockView) []StockEntryResponse {
	resp := make([]StockEntryResponse, 0, len(rows))
	for _, r := range rows {
		resp = append(resp, stockViewResponse(r))
	}
	return resp
}

// GET /api/stock
func ListStockHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rows, err := st.ListStock(c.UserContext())
		if err != nil {
			return err
		}
		return c.JSON(stockViewsResponse(rows))
	}
}

// GET /api/stock/bar/:barId?date=2024-05-01
func StockByBarHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		barCode, err := httpx.Code(c, "barId")
		if err != nil {
			return err
		}
		date, err := httpx.OptionalDate(c, "date")
		if err != nil {
			return err
		}

		rows, err := st.StockByBar(c.UserContext(), barCode, date)
		if err != nil {
			return err
		}
		return c.JSON(stockViewsResponse(rows))
	}
}

// GET /api/stock/event/:eid?date=2024-05-01
func StockByEventHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		eventID, err := httpx.ID(c, "eid")
		if err != nil {
			return err
		}
		date, err := httpx.OptionalDate(c, "date")
		if err != nil {
			return err
		}
		if _, err := st.GetEvent(c.UserContext(), eventID); err != nil {
			return err
		}

		rows, err := st.StockByEvent(c.UserContext(), eventID, date)
		if err != nil {
			return err
		}
		return c.JSON(stockViewsResponse(rows))
	}
}

// POST /api/bars/:barId/stock-initial
//
// Opening stock for one product and day. The closing quantity defaults to the
// opening one until the day is closed out.
func CreateInitialStockHandler(st *store.Store, rec *audit.Recorder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		barCode, err := httpx.Code(c, "barId")
		if err != nil {
			return err
		}
		p, err := httpx.DecodePatch(c.Body(), append([]string{"pid", "sdate"}, stockPatchFields...)...)
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
		start, okStart, err := p.Quantity("start_quantity")
		if err != nil {
			return err
		}
		if !okPID || !okDate || !okStart {
			return fiber.NewError(fiber.StatusBadRequest, "pid, sdate and start_quantity are required")
		}

		entry := models.StockEntry{
			BarCode:       barCode,
			Date:          date,
			ProductID:     pid,
			StartQuantity: start,
			EndQuantity:   start,
		}
		if entry.StartSubquantity, _, err = p.NullableAmount("start_subquantity"); err != nil {
			return err
		}
		if entry.StartSubquantity == nil {
			zero := 0.0
			entry.StartSubquantity = &zero
		}
		if end, ok, err := p.Quantity("end_quantity"); err != nil {
			return err
		} else if ok {
			entry.EndQuantity = end
		}
		if entry.EndSubquantity, _, err = p.NullableAmount("end_subquantity"); err != nil {
			return err
		}
		if entry.EndSubquantity == nil {
			sub := *entry.StartSubquantity
			entry.EndSubquantity = &sub
		}
		if entry.Description, _, err = p.NullableString("desc"); err != nil {
			return err
		}

		if err := st.CreateStock(c.UserContext(), &entry); err != nil {
			return err
		}

		userID, userName := auth.Actor(c)
		rec.Record(c.UserContext(), audit.LogOptions{
			UserID:      userID,
			UserName:    userName,
			EntityType:  entityStock,
			EntityKey:   ledger.StockKey(entry.BarCode, entry.ProductID, entry.Date),
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Initial stock %s pid %d on %s: %d", entry.BarCode, entry.ProductID, ledger.FormatDate(entry.Date), entry.StartQuantity),
			After:       stockEntryResponse(&entry),
		})

		return c.Status(fiber.StatusCreated).JSON(stockEntryResponse(&entry))
	}
}

// PATCH /api/bars/:barId/stock/:pid/:sdate
func PatchStockHandler(st *store.Store, rec *audit.Recorder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		barCode, pid, date, err := stockKeyParams(c)
		if err != nil {
			return err
		}
		p, err := httpx.DecodePatch(c.Body(), stockPatchFields...)
		if err != nil {
			return err
		}

		fields := map[string]any{}
		for _, col := range []string{"start_quantity", "end_quantity"} {
			if v, ok, err := p.Quantity(col); err != nil {
				return err
			} else if ok {
				fields[col] = v
			}
		}
		for _, col := range []string{"start_subquantity", "end_subquantity"} {
			if v, ok, err := p.NullableAmount(col); err != nil {
				return err
			} else if ok {
				fields[col] = v
			}
		}
		if v, ok, err := p.NullableString("desc"); err != nil {
			return err
		} else if ok {
			fields["description"] = v
		}
		if len(fields) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "No updatable fields in request body")
		}

		before, after, err := st.PatchStock(c.UserContext(), barCode, pid, date, fields)
		if err != nil {
			return err
		}

		userID, userName := auth.Actor(c)
		rec.Record(c.UserContext(), audit.LogOptions{
			UserID:      userID,
			UserName:    userName,
			EntityType:  entityStock,
			EntityKey:   ledger.StockKey(barCode, pid, date),
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("Stock updated %s pid %d on %s", barCode, pid, ledger.FormatDate(date)),
			Before:      stockEntryResponse(before),
			After:       stockEntryResponse(after),
		})

		return c.JSON(stockEntryResponse(after))
	}
}

// DELETE /api/bars/:barId/stock/:pid/:sdate
func DeleteStockHandler(st *store.Store, rec *audit.Recorder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		barCode, pid, date, err := stockKeyParams(c)
		if err != nil {
			return err
		}

		deleted, err := st.DeleteStock(c.UserContext(), barCode, pid, date)
		if err != nil {
			return err
		}

		userID, userName := auth.Actor(c)
		rec.Record(c.UserContext(), audit.LogOptions{
			UserID:      userID,
			UserName:    userName,
			EntityType:  entityStock,
			EntityKey:   ledger.StockKey(barCode, pid, date),
			Action:      models.AuditActionDelete,
			Description: fmt.Sprintf("Stock deleted %s pid %d on %s", barCode, pid, ledger.FormatDate(date)),
			Before:      stockEntryResponse(deleted),
		})

		return c.JSON(fiber.Map{"message": "Stock entry deleted", "deleted": stockEntryResponse(deleted)})
	}
}

// POST /api/bars/:barId/stock-bulk
//
// Applies every item or none. Each applied row reports whether it was newly
// created or overwrote an existing entry.
func BulkUpsertStockHandler(st *store.Store, rec *audit.Recorder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		barCode, err := httpx.Code(c, "barId")
		if err != nil {
			return err
		}

		var body BulkStockRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		items := make([]ledger.BatchItem, 0, len(body.Items))
		for i, it := range body.Items {
			item, err := it.batchItem(i)
			if err != nil {
				return err
			}
			items = append(items, item)
		}

		writes, err := ledger.NormalizeBatch(barCode, items)
		if err != nil {
			return err
		}
		results, err := st.BulkUpsertStock(c.UserContext(), writes)
		if err != nil {
			return err
		}

		userID, userName := auth.Actor(c)
		resp := make([]BulkStockResponse, 0, len(results))
		for _, r := range results {
			row := BulkStockResponse{StockEntryResponse: writeResponse(r.StockWrite), Created: r.Created}
			action := models.AuditActionUpdate
			if r.Created {
				action = models.AuditActionCreate
			}
			rec.Record(c.UserContext(), audit.LogOptions{
				UserID:      userID,
				UserName:    userName,
				EntityType:  entityStock,
				EntityKey:   r.Key(),
				Action:      action,
				Description: fmt.Sprintf("Bulk stock %s %s pid %d on %s", action, r.BarCode, r.ProductID, ledger.FormatDate(r.Date)),
				After:       row.StockEntryResponse,
			})
			resp = append(resp, row)
		}

		return c.JSON(resp)
	}
}

func (it BulkStockItem) batchItem(i int) (ledger.BatchItem, error) {
	if it.StartQuantity == nil {
		return ledger.BatchItem{}, ledger.InvalidInput("items[%d]: start_quantity is required", i)
	}
	if it.Date == "" {
		return ledger.BatchItem{}, ledger.InvalidInput("items[%d]: sdate is required", i)
	}
	date, err := ledger.ParseDate(it.Date)
	if err != nil {
		return ledger.BatchItem{}, ledger.InvalidInput("items[%d]: sdate must be YYYY-MM-DD", i)
	}
	if *it.StartQuantity < 0 || (it.EndQuantity != nil && *it.EndQuantity < 0) ||
		(it.StartSubquantity != nil && *it.StartSubquantity < 0) ||
		(it.EndSubquantity != nil && *it.EndSubquantity < 0) {
		return ledger.BatchItem{}, ledger.InvalidInput("items[%d]: quantities must not be negative", i)
	}

	return ledger.BatchItem{
		ProductID:        it.ProductID,
		Date:             date,
		StartQuantity:    *it.StartQuantity,
		StartSubquantity: it.StartSubquantity,
		EndQuantity:      it.EndQuantity,
		EndSubquantity:   it.EndSubquantity,
		Description:      it.Description,
	}, nil
}

func writeResponse(w ledger.StockWrite) StockEntryResponse {
	startSub, endSub := w.StartSubquantity, w.EndSubquantity
	return StockEntryResponse{
		BarCode:          w.BarCode,
		ProductID:        w.ProductID,
		Date:             ledger.FormatDate(w.Date),
		StartQuantity:    w.StartQuantity,
		StartSubquantity: &startSub,
		EndQuantity:      w.EndQuantity,
		EndSubquantity:   &endSub,
		Description:      w.Description,
	}
}

func stockKeyParams(c *fiber.Ctx) (string, uint, time.Time, error) {
	barCode, err := httpx.Code(c, "barId")
	if err != nil {
		return "", 0, time.Time{}, err
	}
	pid, err := httpx.ID(c, "pid")
	if err != nil {
		return "", 0, time.Time{}, err
	}
	date, err := httpx.Date(c, "sdate")
	if err != nil {
		return "", 0, time.Time{}, err
	}
	return barCode, pid, date, nil
}
