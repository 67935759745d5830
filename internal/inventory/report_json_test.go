package inventory

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/PanuLaosuwan/faststock-backend/internal/ledger"
)

func i64(v int64) *int64 { return &v }

func TestSummaryBarKeysFollowProductOrder(t *testing.T) {
	bar := SummaryBar{
		BarCode: "B1",
		Products: []ledger.ProductFigures{
			{ProductID: 2, ProductName: "Soda", Received: i64(29), Consumed: i64(19), Remaining: i64(10)},
			{ProductID: 1, ProductName: "Beer"},
		},
	}

	got, err := json.Marshal(bar)
	if err != nil {
		t.Fatal(err)
	}
	want := `{"bcode":"B1","Soda stock":29,"Soda ใช้":19,"Soda เหลือ":10,"Beer stock":null,"Beer ใช้":null,"Beer เหลือ":null}`
	if string(got) != want {
		t.Errorf("got  %s\nwant %s", got, want)
	}
}

func TestNewSummaryRowsPutsTotalFirst(t *testing.T) {
	d1 := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	sum := ledger.Summary{
		Totals: []ledger.BarFigures{{BarCode: "B1"}},
		Days: []ledger.DayFigures{
			{Date: d1, Bars: []ledger.BarFigures{{BarCode: "B1"}}},
			{Date: d1.AddDate(0, 0, 1), Bars: []ledger.BarFigures{{BarCode: "B1"}}},
		},
	}

	rows := NewSummaryRows(sum)
	var dates []string
	for _, r := range rows {
		dates = append(dates, r.Date)
	}
	want := []string{"Total", "2024-05-01", "2024-05-02"}
	if len(dates) != len(want) {
		t.Fatalf("dates = %v, want %v", dates, want)
	}
	for i := range want {
		if dates[i] != want[i] {
			t.Errorf("row %d date = %q, want %q", i, dates[i], want[i])
		}
	}
}

func TestInventoryPayloadWithoutBars(t *testing.T) {
	got, err := json.Marshal(NewInventoryPayload(ledger.Grid{}))
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != `{"prestock":[]}` {
		t.Errorf("got %s", got)
	}
}

func TestInventoryPayloadRendersMissingRowsAsNull(t *testing.T) {
	d := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	code := "B2"
	grid := ledger.Grid{
		Bars: []ledger.BarGrid{
			{Code: "B2", Rows: []ledger.GridRow{{BarID: &code, ProductID: 1, ProductName: "Beer", Date: d, StartQuantity: i64(5), EndQuantity: i64(1), Recorded: true}}},
			{Code: "B1", Rows: []ledger.GridRow{{ProductID: 1, ProductName: "Beer", Date: d}}},
		},
	}

	got, err := json.Marshal(NewInventoryPayload(grid))
	if err != nil {
		t.Fatal(err)
	}
	want := `{"prestock":[],` +
		`"B2":[{"bid":"B2","pid":1,"pname":"Beer","sdate":"2024-05-01","start_quantity":5,"end_quantity":1,"start_subquantity":null,"end_subquantity":null}],` +
		`"B1":[{"bid":null,"pid":1,"pname":"Beer","sdate":"2024-05-01","start_quantity":null,"end_quantity":null,"start_subquantity":null,"end_subquantity":null}]}`
	if string(got) != want {
		t.Errorf("got  %s\nwant %s", got, want)
	}

	rows, ok := NewInventoryPayload(grid).Bar("B1")
	if !ok || len(rows) != 1 || rows[0].BarID != nil {
		t.Errorf("Bar(B1) = %+v, %v", rows, ok)
	}
}
