package admin

import (
	"github.com/PanuLaosuwan/faststock-backend/internal/httpx"
	"github.com/PanuLaosuwan/faststock-backend/internal/ledger"
	"github.com/PanuLaosuwan/faststock-backend/internal/models"
	"github.com/PanuLaosuwan/faststock-backend/internal/store"

	"github.com/gofiber/fiber/v2"
)

type BarResponse struct {
	Code        string  `json:"bcode"`
	EventID     uint    `json:"eid"`
	UserID      uint    `json:"uid"`
	Description *string `json:"desc"`
}

var barFields = []string{"bcode", "eid", "uid", "desc"}

// reservedBarCode is the inventory report's prestock key.
const reservedBarCode = "prestock"

func checkBarCode(code string) error {
	if code == reservedBarCode {
		return ledger.InvalidInput("bcode %q is reserved", code)
	}
	return nil
}

func barResponse(b *models.Bar) BarResponse {
	return BarResponse{Code: b.Code, EventID: b.EventID, UserID: b.UserID, Description: b.Description}
}

func barsResponse(bars []models.Bar) []BarResponse {
	res := make([]BarResponse, 0, len(bars))
	for i := range bars {
		res = append(res, barResponse(&bars[i]))
	}
	return res
}

func readBar(p httpx.Patch) (*models.Bar, error) {
	code, okCode, err := p.String("bcode")
	if err != nil {
		return nil, err
	}
	eventID, okEvent, err := p.ID("eid")
	if err != nil {
		return nil, err
	}
	userID, okUser, err := p.ID("uid")
	if err != nil {
		return nil, err
	}
	if !okCode || !okEvent || !okUser {
		return nil, ledger.InvalidInput("bcode, eid and uid are required")
	}
	if err := checkBarCode(code); err != nil {
		return nil, err
	}
	bar := &models.Bar{Code: code, EventID: eventID, UserID: userID}
	if bar.Description, _, err = p.NullableString("desc"); err != nil {
		return nil, err
	}
	return bar, nil
}

// GET /api/bars
func ListBarsHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		bars, err := st.ListBars(c.UserContext())
		if err != nil {
			return err
		}
		return c.JSON(barsResponse(bars))
	}
}

// GET /api/event/:eid/bars
func BarsByEventHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		eventID, err := httpx.ID(c, "eid")
		if err != nil {
			return err
		}
		if _, err := st.GetEvent(c.UserContext(), eventID); err != nil {
			return err
		}
		bars, err := st.BarsByEvent(c.UserContext(), eventID)
		if err != nil {
			return err
		}
		return c.JSON(barsResponse(bars))
	}
}

// GET /api/bars/:id
func GetBarHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		code, err := httpx.Code(c, "id")
		if err != nil {
			return err
		}
		bar, err := st.GetBar(c.UserContext(), code)
		if err != nil {
			return err
		}
		return c.JSON(barResponse(bar))
	}
}

// POST /api/bars
func CreateBarHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := httpx.DecodePatch(c.Body(), barFields...)
		if err != nil {
			return err
		}
		bar, err := readBar(p)
		if err != nil {
			return err
		}
		if err := st.CreateBar(c.UserContext(), bar); err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(barResponse(bar))
	}
}

// PUT /api/bars/:id
func ReplaceBarHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		code, err := httpx.Code(c, "id")
		if err != nil {
			return err
		}
		p, err := httpx.DecodePatch(c.Body(), barFields...)
		if err != nil {
			return err
		}
		bar, err := readBar(p)
		if err != nil {
			return err
		}
		updated, err := st.UpdateBar(c.UserContext(), code, map[string]any{
			"bcode":       bar.Code,
			"eid":         bar.EventID,
			"uid":         bar.UserID,
			"description": bar.Description,
		})
		if err != nil {
			return err
		}
		return c.JSON(barResponse(updated))
	}
}

// PATCH /api/bars/:id
func PatchBarHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		code, err := httpx.Code(c, "id")
		if err != nil {
			return err
		}
		p, err := httpx.DecodePatch(c.Body(), barFields...)
		if err != nil {
			return err
		}

		fields := map[string]any{}
		if v, ok, err := p.String("bcode"); err != nil {
			return err
		} else if ok {
			if err := checkBarCode(v); err != nil {
				return err
			}
			fields["bcode"] = v
		}
		for _, col := range []string{"eid", "uid"} {
			if v, ok, err := p.ID(col); err != nil {
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

		updated, err := st.UpdateBar(c.UserContext(), code, fields)
		if err != nil {
			return err
		}
		return c.JSON(barResponse(updated))
	}
}

// DELETE /api/bars/:id removes the bar together with its stock rows.
func DeleteBarHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		code, err := httpx.Code(c, "id")
		if err != nil {
			return err
		}
		if err := st.DeleteBar(c.UserContext(), code); err != nil {
			return err
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
