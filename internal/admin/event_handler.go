package admin

import (
	"time"

	"github.com/PanuLaosuwan/faststock-backend/internal/httpx"
	"github.com/PanuLaosuwan/faststock-backend/internal/ledger"
	"github.com/PanuLaosuwan/faststock-backend/internal/models"
	"github.com/PanuLaosuwan/faststock-backend/internal/store"

	"github.com/gofiber/fiber/v2"
)

type EventResponse struct {
	ID          uint    `json:"eid"`
	Name        string  `json:"ename"`
	StartDate   string  `json:"edate_start"`
	EndDate     string  `json:"edate_end"`
	Day         int     `json:"day"`
	Location    *string `json:"location"`
	Description *string `json:"desc"`
}

// "day" is accepted by the decoder only so it can be rejected.
var eventFields = []string{"ename", "edate_start", "edate_end", "location", "desc", "day"}

func eventResponse(e *models.Event) EventResponse {
	return EventResponse{
		ID:          e.ID,
		Name:        e.Name,
		StartDate:   ledger.FormatDate(e.StartDate),
		EndDate:     ledger.FormatDate(e.EndDate),
		Day:         e.Day,
		Location:    e.Location,
		Description: e.Description,
	}
}

// eventDates validates a date pair and returns the derived day count.
func eventDates(start, end time.Time) (int, error) {
	if ledger.Day(end).Before(ledger.Day(start)) {
		return 0, ledger.InvalidInput("edate_end must not be before edate_start")
	}
	return ledger.DayCount(start, end), nil
}

func decodeEvent(c *fiber.Ctx) (httpx.Patch, error) {
	p, err := httpx.DecodePatch(c.Body(), eventFields...)
	if err != nil {
		return nil, err
	}
	if p.Has("day") {
		return nil, ledger.InvalidInput("day is derived from edate_start and edate_end and cannot be set")
	}
	return p, nil
}

// readEvent fills a complete event from the body. Used by POST and PUT.
func readEvent(p httpx.Patch) (*models.Event, error) {
	name, okName, err := p.String("ename")
	if err != nil {
		return nil, err
	}
	start, okStart, err := p.Date("edate_start")
	if err != nil {
		return nil, err
	}
	end, okEnd, err := p.Date("edate_end")
	if err != nil {
		return nil, err
	}
	if !okName || !okStart || !okEnd {
		return nil, ledger.InvalidInput("ename, edate_start and edate_end are required")
	}
	days, err := eventDates(start, end)
	if err != nil {
		return nil, err
	}

	ev := &models.Event{Name: name, StartDate: ledger.Day(start), EndDate: ledger.Day(end), Day: days}
	if ev.Location, _, err = p.NullableString("location"); err != nil {
		return nil, err
	}
	if ev.Description, _, err = p.NullableString("desc"); err != nil {
		return nil, err
	}
	return ev, nil
}

// GET /api/event
func ListEventsHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		events, err := st.ListEvents(c.UserContext())
		if err != nil {
			return err
		}
		res := make([]EventResponse, 0, len(events))
		for i := range events {
			res = append(res, eventResponse(&events[i]))
		}
		return c.JSON(res)
	}
}

// GET /api/event/:id
func GetEventHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := httpx.ID(c, "id")
		if err != nil {
			return err
		}
		ev, err := st.GetEvent(c.UserContext(), id)
		if err != nil {
			return err
		}
		return c.JSON(eventResponse(ev))
	}
}

// POST /api/event
func CreateEventHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := decodeEvent(c)
		if err != nil {
			return err
		}
		ev, err := readEvent(p)
		if err != nil {
			return err
		}
		if err := st.CreateEvent(c.UserContext(), ev); err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(eventResponse(ev))
	}
}

// PUT /api/event/:id replaces every field.
func ReplaceEventHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := httpx.ID(c, "id")
		if err != nil {
			return err
		}
		p, err := decodeEvent(c)
		if err != nil {
			return err
		}
		ev, err := readEvent(p)
		if err != nil {
			return err
		}

		updated, err := st.UpdateEvent(c.UserContext(), id, map[string]any{
			"ename":       ev.Name,
			"edate_start": ev.StartDate,
			"edate_end":   ev.EndDate,
			"day":         ev.Day,
			"location":    ev.Location,
			"description": ev.Description,
		})
		if err != nil {
			return err
		}
		return c.JSON(eventResponse(updated))
	}
}

// PATCH /api/event/:id
//
// Dates change only as a pair so the derived day count stays consistent.
func PatchEventHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := httpx.ID(c, "id")
		if err != nil {
			return err
		}
		p, err := decodeEvent(c)
		if err != nil {
			return err
		}

		fields := map[string]any{}
		if v, ok, err := p.String("ename"); err != nil {
			return err
		} else if ok {
			fields["ename"] = v
		}
		if v, ok, err := p.NullableString("location"); err != nil {
			return err
		} else if ok {
			fields["location"] = v
		}
		if v, ok, err := p.NullableString("desc"); err != nil {
			return err
		} else if ok {
			fields["description"] = v
		}

		start, okStart, err := p.Date("edate_start")
		if err != nil {
			return err
		}
		end, okEnd, err := p.Date("edate_end")
		if err != nil {
			return err
		}
		if okStart != okEnd {
			return ledger.InvalidInput("edate_start and edate_end must be changed together")
		}
		if okStart {
			days, err := eventDates(start, end)
			if err != nil {
				return err
			}
			fields["edate_start"] = ledger.Day(start)
			fields["edate_end"] = ledger.Day(end)
			fields["day"] = days
		}

		if len(fields) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "No updatable fields in request body")
		}

		updated, err := st.UpdateEvent(c.UserContext(), id, fields)
		if err != nil {
			return err
		}
		return c.JSON(eventResponse(updated))
	}
}

// DELETE /api/event/:id
func DeleteEventHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := httpx.ID(c, "id")
		if err != nil {
			return err
		}
		if err := st.DeleteEvent(c.UserContext(), id); err != nil {
			return err
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
