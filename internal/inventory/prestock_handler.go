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

const entityPrestock = "prestock"

var prestockPatchFields = []string{"order_quantity", "order_subquantity", "real_quantity", "real_subquantity", "psdate", "desc"}

type PrestockResponse struct {
	EventID          uint     `json:"eid"`
	ProductID        uint     `json:"pid"`
	ProductName      string   `json:"pname,omitempty"`
	OrderQuantity    *int64   `json:"order_quantity"`
	OrderSubquantity *float64 `json:"order_subquantity"`
	RealQuantity     *int64   `json:"real_quantity"`
	RealSubquantity  *float64 `json:"real_subquantity"`
	Date             *string  `json:"psdate"`
	Description      *string  `json:"desc"`
}

func prestockViewResponse(v store.PrestockView) PrestockResponse {
	return PrestockResponse{
		EventID:          v.EventID,
		ProductID:        v.ProductID,
		ProductName:      v.ProductName,
		OrderQuantity:    v.OrderQuantity,
		OrderSubquantity: v.OrderSubquantity,
		RealQuantity:     v.RealQuantity,
		RealSubquantity:  v.RealSubquantity,
		Date:             optionalDate(v.Date),
		Description:      v.Description,
	}
}

func prestockEntryResponse(e *models.PrestockEntry) PrestockResponse {
	return PrestockResponse{
		EventID:          e.EventID,
		ProductID:        e.ProductID,
		OrderQuantity:    e.OrderQuantity,
		OrderSubquantity: e.OrderSubquantity,
		RealQuantity:     e.RealQuantity,
		RealSubquantity:  e.RealSubquantity,
		Date:             optionalDate(e.Date),
		Description:      e.Description,
	}
}

func prestockViewsResponse(rows []store.PrestockView) []PrestockResponse {
	resp := make([]PrestockResponse, 0, len(rows))
	for _, r := range rows {
		resp = append(resp, prestockViewResponse(r))
	}
	return resp
}

func prestockKey(eventID, productID uint) string {
	return fmt.Sprintf("%d|%d", eventID, productID)
}

// GET /api/prestock
func ListPrestockHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rows, err := st.ListPrestock(c.UserContext())
		if err != nil {
			return err
		}
		return c.JSON(prestockViewsResponse(rows))
	}
}

// GET /api/event/:eid/prestock
func PrestockByEventHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		eventID, err := httpx.ID(c, "eid")
		if err != nil {
			return err
		}
		if _, err := st.GetEvent(c.UserContext(), eventID); err != nil {
			return err
		}
		rows, err := st.PrestockByEvent(c.UserContext(), eventID)
		if err != nil {
			return err
		}
		return c.JSON(prestockViewsResponse(rows))
	}
}

// POST /api/prestock
func CreatePrestockHandler(st *store.Store, rec *audit.Recorder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := httpx.DecodePatch(c.Body(), append([]string{"eid", "pid"}, prestockPatchFields...)...)
		if err != nil {
			return err
		}

		eventID, okEvent, err := p.ID("eid")
		if err != nil {
			return err
		}
		productID, okProduct, err := p.ID("pid")
		if err != nil {
			return err
		}
		if !okEvent || !okProduct {
			return fiber.NewError(fiber.StatusBadRequest, "eid and pid are required")
		}

		entry := models.PrestockEntry{EventID: eventID, ProductID: productID}
		fields, err := prestockFields(p)
		if err != nil {
			return err
		}
		applyPrestockFields(&entry, fields)

		if err := st.CreatePrestock(c.UserContext(), &entry); err != nil {
			return err
		}

		userID, userName := auth.Actor(c)
		rec.Record(c.UserContext(), audit.LogOptions{
			UserID:      userID,
			UserName:    userName,
			EntityType:  entityPrestock,
			EntityKey:   prestockKey(eventID, productID),
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Prestock created for event %d pid %d", eventID, productID),
			After:       prestockEntryResponse(&entry),
		})

		return c.Status(fiber.StatusCreated).JSON(prestockEntryResponse(&entry))
	}
}

// PATCH /api/prestock/:eid/:pid
func PatchPrestockHandler(st *store.Store, rec *audit.Recorder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		eventID, err := httpx.ID(c, "eid")
		if err != nil {
			return err
		}
		productID, err := httpx.ID(c, "pid")
		if err != nil {
			return err
		}
		p, err := httpx.DecodePatch(c.Body(), prestockPatchFields...)
		if err != nil {
			return err
		}
		fields, err := prestockFields(p)
		if err != nil {
			return err
		}
		if len(fields) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "No updatable fields in request body")
		}

		updated, err := st.PatchPrestock(c.UserContext(), eventID, productID, fields)
		if err != nil {
			return err
		}

		userID, userName := auth.Actor(c)
		rec.Record(c.UserContext(), audit.LogOptions{
			UserID:      userID,
			UserName:    userName,
			EntityType:  entityPrestock,
			EntityKey:   prestockKey(eventID, productID),
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("Prestock updated for event %d pid %d", eventID, productID),
			After:       prestockEntryResponse(updated),
		})

		return c.JSON(prestockEntryResponse(updated))
	}
}

// DELETE /api/prestock/:eid/:pid
func DeletePrestockHandler(st *store.Store, rec *audit.Recorder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		eventID, err := httpx.ID(c, "eid")
		if err != nil {
			return err
		}
		productID, err := httpx.ID(c, "pid")
		if err != nil {
			return err
		}

		if err := st.DeletePrestock(c.UserContext(), eventID, productID); err != nil {
			return err
		}

		userID, userName := auth.Actor(c)
		rec.Record(c.UserContext(), audit.LogOptions{
			UserID:      userID,
			UserName:    userName,
			EntityType:  entityPrestock,
			EntityKey:   prestockKey(eventID, productID),
			Action:      models.AuditActionDelete,
			Description: fmt.Sprintf("Prestock deleted for event %d pid %d", eventID, productID),
		})

		return c.SendStatus(fiber.StatusNoContent)
	}
}

// prestockFields maps a request body to column updates. Every prestock value
// is nullable.
func prestockFields(p httpx.Patch) (map[string]any, error) {
	fields := map[string]any{}
	for _, col := range []string{"order_quantity", "real_quantity"} {
		v, ok, err := p.NullableQuantity(col)
		if err != nil {
			return nil, err
		}
		if ok {
			fields[col] = v
		}
	}
	for _, col := range []string{"order_subquantity", "real_subquantity"} {
		v, ok, err := p.NullableAmount(col)
		if err != nil {
			return nil, err
		}
		if ok {
			fields[col] = v
		}
	}
	if v, ok, err := p.NullableDate("psdate"); err != nil {
		return nil, err
	} else if ok {
		fields["psdate"] = v
	}
	if v, ok, err := p.NullableString("desc"); err != nil {
		return nil, err
	} else if ok {
		fields["description"] = v
	}
	return fields, nil
}

func applyPrestockFields(e *models.PrestockEntry, fields map[string]any) {
	for col, v := range fields {
		switch col {
		case "order_quantity":
			e.OrderQuantity = v.(*int64)
		case "real_quantity":
			e.RealQuantity = v.(*int64)
		case "order_subquantity":
			e.OrderSubquantity = v.(*float64)
		case "real_subquantity":
			e.RealSubquantity = v.(*float64)
		case "psdate":
			e.Date = v.(*time.Time)
		case "description":
			e.Description = v.(*string)
		}
	}
}

func optionalDate(d *time.Time) *string {
	if d == nil {
		return nil
	}
	s := ledger.FormatDate(*d)
	return &s
}
