package inventory

import (
	"context"
	"time"

	"github.com/PanuLaosuwan/faststock-backend/internal/ledger"
	"github.com/PanuLaosuwan/faststock-backend/internal/models"
	"github.com/PanuLaosuwan/faststock-backend/internal/store"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Reporter builds the per-event inventory grid and stock summary from the
// ledger rows in the store.
type Reporter struct {
	st  *store.Store
	log *logrus.Logger
}

func NewReporter(st *store.Store, log *logrus.Logger) *Reporter {
	return &Reporter{st: st, log: log}
}

type InventoryReport struct {
	Event *models.Event
	Dates []time.Time
	Grid  ledger.Grid
}

type SummaryReport struct {
	Event    *models.Event
	Dates    []time.Time
	Products []ledger.ProductRef
	Summary  ledger.Summary
}

type eventData struct {
	event *models.Event
	bars  []ledger.BarRef
	index *ledger.Index
}

// load reads the event, its bars, prestock and stock concurrently. The first
// failure cancels the other reads.
func (r *Reporter) load(ctx context.Context, eventID uint, date *time.Time) (*eventData, error) {
	var (
		ev       *models.Event
		bars     []ledger.BarRef
		prestock []store.PrestockView
		stock    []store.StockView
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		ev, err = r.st.GetEvent(gctx, eventID)
		return err
	})
	g.Go(func() error {
		var err error
		bars, err = r.st.BarRefsByEvent(gctx, eventID)
		return err
	})
	g.Go(func() error {
		var err error
		prestock, err = r.st.PrestockByEvent(gctx, eventID)
		return err
	})
	g.Go(func() error {
		var err error
		stock, err = r.st.StockByEvent(gctx, eventID, date)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	preRows := make([]ledger.PrestockRow, 0, len(prestock))
	for _, p := range prestock {
		preRows = append(preRows, p.LedgerRow())
	}
	stockRows := make([]ledger.StockRow, 0, len(stock))
	for _, s := range stock {
		stockRows = append(stockRows, s.LedgerRow())
	}

	return &eventData{
		event: ev,
		bars:  bars,
		index: ledger.NewIndex(preRows, stockRows),
	}, nil
}

// reportDates is the event's full range, or just date when one is given.
func reportDates(ev *models.Event, date *time.Time) ([]time.Time, error) {
	all, err := ledger.DateRange(ev.StartDate, ev.EndDate)
	if err != nil {
		return nil, err
	}
	if date == nil {
		return all, nil
	}

	d := ledger.Day(*date)
	if d.Before(all[0]) || d.After(all[len(all)-1]) {
		return nil, ledger.InvalidInput("date %s is outside event %d (%s to %s)",
			ledger.FormatDate(d), ev.ID, ledger.FormatDate(all[0]), ledger.FormatDate(all[len(all)-1]))
	}
	return []time.Time{d}, nil
}

func (r *Reporter) Inventory(ctx context.Context, eventID uint) (*InventoryReport, error) {
	data, err := r.load(ctx, eventID, nil)
	if err != nil {
		return nil, err
	}
	dates, err := reportDates(data.event, nil)
	if err != nil {
		return nil, err
	}

	slots := ledger.ResolveBars(data.bars, data.index)
	r.logOrphans(data.event.ID, slots)

	return &InventoryReport{
		Event: data.event,
		Dates: dates,
		Grid:  ledger.AssembleGrid(dates, slots, data.index),
	}, nil
}

// StockSummary computes the carry-forward totals. With a date, the range is
// that single day and must fall inside the event.
func (r *Reporter) StockSummary(ctx context.Context, eventID uint, date *time.Time) (*SummaryReport, error) {
	data, err := r.load(ctx, eventID, date)
	if err != nil {
		return nil, err
	}
	dates, err := reportDates(data.event, date)
	if err != nil {
		return nil, err
	}

	slots := ledger.ResolveBars(data.bars, data.index)
	r.logOrphans(data.event.ID, slots)

	sum := ledger.Summarize(dates, slots, data.index)
	for _, c := range sum.Corrections {
		r.log.WithFields(logrus.Fields{
			"event_id":       data.event.ID,
			"bcode":          c.BarCode,
			"pid":            c.ProductID,
			"pname":          c.ProductName,
			"sdate":          ledger.FormatDate(c.Date),
			"prev_remaining": c.PrevRemaining,
			"start_quantity": c.StartQuantity,
		}).Warn("opening stock below previous remainder, delta clamped to zero")
	}

	return &SummaryReport{Event: data.event, Dates: dates, Products: data.index.Products(), Summary: sum}, nil
}

func (r *Reporter) logOrphans(eventID uint, slots []ledger.BarSlot) {
	for _, s := range slots {
		if !s.Known {
			r.log.WithFields(logrus.Fields{"event_id": eventID, "bcode": s.Code}).
				Warn("stock rows reference a bar code with no bar record")
		}
	}
}
