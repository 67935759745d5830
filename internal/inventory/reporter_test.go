package inventory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/PanuLaosuwan/faststock-backend/internal/inventory"
	"github.com/PanuLaosuwan/faststock-backend/internal/ledger"
	"github.com/PanuLaosuwan/faststock-backend/internal/models"
	"github.com/PanuLaosuwan/faststock-backend/internal/store"
	"github.com/PanuLaosuwan/faststock-backend/internal/testdb"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

type seeded struct {
	st      *store.Store
	eventID uint
	beer    uint
	soda    uint
}

func date(s string) time.Time {
	d, err := ledger.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// seed creates event 2024-05-01..03 with bars B1 and B2 and products Beer
// and Soda. Only Beer has stock rows until a test adds more.
func seed(t *testing.T) seeded {
	t.Helper()
	ctx := context.Background()
	st := store.New(testdb.Open(t))

	u := models.User{Username: "staff", PasswordHash: "x", Name: "Staff"}
	ev := models.Event{Name: "Fest", StartDate: date("2024-05-01"), EndDate: date("2024-05-03"), Day: 3}
	beer := models.Product{Name: "Beer", Category: "drink", Unit: "case", Subunit: "bottle", Factor: 24}
	soda := models.Product{Name: "Soda", Category: "drink", Unit: "pack", Subunit: "can", Factor: 6}
	if err := st.CreateUser(ctx, &u); err != nil {
		t.Fatal(err)
	}
	if err := st.CreateEvent(ctx, &ev); err != nil {
		t.Fatal(err)
	}
	for _, p := range []*models.Product{&beer, &soda} {
		if err := st.CreateProduct(ctx, p); err != nil {
			t.Fatal(err)
		}
	}
	for _, code := range []string{"B2", "B1"} {
		if err := st.CreateBar(ctx, &models.Bar{Code: code, EventID: ev.ID, UserID: u.ID}); err != nil {
			t.Fatal(err)
		}
	}
	return seeded{st: st, eventID: ev.ID, beer: beer.ID, soda: soda.ID}
}

func (s seeded) stock(t *testing.T, bar string, pid uint, day string, start, end int64) {
	t.Helper()
	e := models.StockEntry{BarCode: bar, ProductID: pid, Date: date(day), StartQuantity: start, EndQuantity: end}
	if err := s.st.CreateStock(context.Background(), &e); err != nil {
		t.Fatalf("stock %s/%d/%s: %v", bar, pid, day, err)
	}
}

func TestInventoryGridIsDense(t *testing.T) {
	s := seed(t)
	s.stock(t, "B1", s.beer, "2024-05-02", 10, 3)
	s.stock(t, "B2", s.soda, "2024-05-01", 4, 4)

	log, _ := test.NewNullLogger()
	report, err := inventory.NewReporter(s.st, log).Inventory(context.Background(), s.eventID)
	if err != nil {
		t.Fatal(err)
	}

	if len(report.Dates) != 3 {
		t.Fatalf("dates = %d, want 3", len(report.Dates))
	}
	if len(report.Grid.Bars) != 2 || report.Grid.Bars[0].Code != "B1" {
		t.Fatalf("bars = %+v", report.Grid.Bars)
	}
	for _, b := range report.Grid.Bars {
		if len(b.Rows) != 6 {
			t.Errorf("bar %s has %d rows, want 3 dates x 2 products", b.Code, len(b.Rows))
		}
	}

	var recorded int
	for _, r := range report.Grid.Bars[0].Rows {
		if r.Recorded {
			recorded++
			if r.ProductID != s.beer || *r.StartQuantity != 10 {
				t.Errorf("recorded row = %+v", r)
			}
		}
	}
	if recorded != 1 {
		t.Errorf("B1 recorded rows = %d, want 1", recorded)
	}
}

func TestStockSummaryLogsClampedDeltas(t *testing.T) {
	s := seed(t)
	s.stock(t, "B1", s.beer, "2024-05-01", 10, 2)
	s.stock(t, "B1", s.beer, "2024-05-02", 5, 1)

	log, hook := test.NewNullLogger()
	report, err := inventory.NewReporter(s.st, log).StockSummary(context.Background(), s.eventID, nil)
	if err != nil {
		t.Fatal(err)
	}

	if len(report.Summary.Corrections) != 1 {
		t.Fatalf("corrections = %+v", report.Summary.Corrections)
	}
	var warned []*logrus.Entry
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.WarnLevel {
			warned = append(warned, e)
		}
	}
	if len(warned) != 1 {
		t.Fatalf("warn entries = %d, want 1", len(warned))
	}
	if warned[0].Data["bcode"] != "B1" || warned[0].Data["prev_remaining"] != int64(8) || warned[0].Data["sdate"] != "2024-05-02" {
		t.Errorf("warn fields = %v", warned[0].Data)
	}

	total := report.Summary.Totals[0].Products[0]
	if total.ProductName != "Beer" || *total.Received != 10 || *total.Consumed != 3 || *total.Remaining != 7 {
		t.Errorf("B1 Beer total = received %v consumed %v remaining %v", *total.Received, *total.Consumed, *total.Remaining)
	}
}

func TestStockSummaryDateFilter(t *testing.T) {
	s := seed(t)
	s.stock(t, "B1", s.beer, "2024-05-01", 10, 4)
	s.stock(t, "B1", s.beer, "2024-05-02", 8, 5)

	log, _ := test.NewNullLogger()
	rep := inventory.NewReporter(s.st, log)

	d := date("2024-05-02")
	report, err := rep.StockSummary(context.Background(), s.eventID, &d)
	if err != nil {
		t.Fatal(err)
	}
	if len(report.Dates) != 1 || len(report.Summary.Days) != 1 {
		t.Fatalf("dates = %v", report.Dates)
	}
	if got := *report.Summary.Totals[0].Products[0].Received; got != 8 {
		t.Errorf("received = %d, want 8 (the day is a first observation)", got)
	}

	outside := date("2024-05-09")
	if _, err := rep.StockSummary(context.Background(), s.eventID, &outside); !errors.Is(err, ledger.ErrInvalidInput) {
		t.Errorf("outside date: err = %v, want InvalidInput", err)
	}
}

func TestReportsUnknownEvent(t *testing.T) {
	s := seed(t)
	log, _ := test.NewNullLogger()
	rep := inventory.NewReporter(s.st, log)

	if _, err := rep.Inventory(context.Background(), 999); !errors.Is(err, ledger.ErrNotFound) {
		t.Errorf("Inventory: err = %v, want NotFound", err)
	}
	if _, err := rep.StockSummary(context.Background(), 999, nil); !errors.Is(err, ledger.ErrNotFound) {
		t.Errorf("StockSummary: err = %v, want NotFound", err)
	}
}
