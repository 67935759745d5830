package ledger_test

import (
	"testing"

	"github.com/PanuLaosuwan/faststock-backend/internal/ledger"
)

func TestResolveBarsAppendsOrphans(t *testing.T) {
	ix := ledger.NewIndex(nil, []ledger.StockRow{
		stockRow(t, "ZZ", 1, "Beer", "2024-05-01", 1, 0),
		stockRow(t, "B1", 1, "Beer", "2024-05-01", 1, 0),
		stockRow(t, "AA", 1, "Beer", "2024-05-01", 1, 0),
	})
	slots := ledger.ResolveBars([]ledger.BarRef{{Code: "B1"}, {Code: "B2"}, {Code: "B1"}}, ix)

	want := []ledger.BarSlot{{"B1", true}, {"B2", true}, {"ZZ", false}, {"AA", false}}
	if len(slots) != len(want) {
		t.Fatalf("slots = %v, want %v", slots, want)
	}
	for i := range want {
		if slots[i] != want[i] {
			t.Errorf("slots[%d] = %v, want %v", i, slots[i], want[i])
		}
	}
}

func TestAssembleGridIsDense(t *testing.T) {
	dates := days(t, "2024-05-01", "2024-05-03")
	ix := ledger.NewIndex(
		[]ledger.PrestockRow{{ProductID: 2, ProductName: "Soda", RealQuantity: i64(40)}},
		[]ledger.StockRow{
			stockRow(t, "B1", 1, "Beer", "2024-05-02", 10, 0),
			stockRow(t, "B9", 1, "Beer", "2024-05-01", 3, 1),
		},
	)
	slots := ledger.ResolveBars([]ledger.BarRef{{Code: "B1"}, {Code: "B2"}}, ix)

	grid := ledger.AssembleGrid(dates, slots, ix)

	if len(grid.Prestock) != 1 || grid.Prestock[0].ProductID != 2 {
		t.Fatalf("prestock = %+v", grid.Prestock)
	}
	if len(grid.Bars) != 3 {
		t.Fatalf("bars = %d, want 3", len(grid.Bars))
	}

	products := ix.Products()
	for _, bg := range grid.Bars {
		if len(bg.Rows) != len(dates)*len(products) {
			t.Fatalf("%s: rows = %d, want %d", bg.Code, len(bg.Rows), len(dates)*len(products))
		}
		seen := make(map[string]bool)
		for i, r := range bg.Rows {
			k := ledger.StockKey(bg.Code, r.ProductID, r.Date)
			if seen[k] {
				t.Errorf("%s: duplicate cell %s", bg.Code, k)
			}
			seen[k] = true

			wantDate, wantProduct := dates[i/len(products)], products[i%len(products)]
			if !r.Date.Equal(wantDate) || r.ProductID != wantProduct.ID {
				t.Errorf("%s row %d = (%s, %d), want (%s, %d)", bg.Code, i,
					ledger.FormatDate(r.Date), r.ProductID, ledger.FormatDate(wantDate), wantProduct.ID)
			}
		}
	}

	b1 := grid.Bars[0]
	// dates outer, products inner: index 2 is 2024-05-02 / Soda, 3 is 2024-05-02 / Beer
	hit := b1.Rows[3]
	if !hit.Recorded || hit.ProductID != 1 || *hit.StartQuantity != 10 || *hit.EndQuantity != 0 {
		t.Errorf("recorded cell = %+v", hit)
	}
	if hit.BarID == nil || *hit.BarID != "B1" {
		t.Errorf("bar id = %v, want B1", hit.BarID)
	}
	miss := b1.Rows[0]
	if miss.Recorded || miss.StartQuantity != nil || miss.EndQuantity != nil ||
		miss.StartSubquantity != nil || miss.EndSubquantity != nil {
		t.Errorf("placeholder = %+v", miss)
	}

	orphan := grid.Bars[2]
	if orphan.Code != "B9" || orphan.Rows[0].BarID != nil {
		t.Errorf("orphan = %s bar id %v", orphan.Code, orphan.Rows[0].BarID)
	}
}

func TestAssembleGridEmptyInputs(t *testing.T) {
	slots := []ledger.BarSlot{{Code: "B1", Known: true}}

	noProducts := ledger.AssembleGrid(days(t, "2024-05-01", "2024-05-02"), slots, ledger.NewIndex(nil, nil))
	if len(noProducts.Bars) != 1 || len(noProducts.Bars[0].Rows) != 0 {
		t.Errorf("no products: %+v", noProducts.Bars)
	}

	ix := ledger.NewIndex(nil, []ledger.StockRow{stockRow(t, "B1", 1, "Beer", "2024-05-01", 1, 1)})
	noDates := ledger.AssembleGrid(nil, slots, ix)
	if len(noDates.Bars[0].Rows) != 0 {
		t.Errorf("no dates: %d rows", len(noDates.Bars[0].Rows))
	}
}

func TestAssembleGridKeepsZeroDistinctFromUnknown(t *testing.T) {
	row := stockRow(t, "B1", 1, "Beer", "2024-05-01", 0, 0)
	row.StartSubquantity = f64(0)
	ix := ledger.NewIndex(nil, []ledger.StockRow{row})

	grid := ledger.AssembleGrid(days(t, "2024-05-01", "2024-05-02"), []ledger.BarSlot{{Code: "B1", Known: true}}, ix)
	zero, unknown := grid.Bars[0].Rows[0], grid.Bars[0].Rows[1]
	if zero.StartQuantity == nil || *zero.StartQuantity != 0 || zero.StartSubquantity == nil {
		t.Errorf("zero row = %+v", zero)
	}
	if zero.EndSubquantity != nil {
		t.Errorf("unrecorded sub-quantity should stay nil, got %v", *zero.EndSubquantity)
	}
	if unknown.StartQuantity != nil {
		t.Errorf("unknown row = %+v", unknown)
	}
}
