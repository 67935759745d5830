package ledger_test

import (
	"testing"
	"time"

	"github.com/PanuLaosuwan/faststock-backend/internal/ledger"
)

func i64(v int64) *int64     { return &v }
func f64(v float64) *float64 { return &v }

func stockRow(t *testing.T, bar string, pid uint, name, date string, start, end int64) ledger.StockRow {
	t.Helper()
	return ledger.StockRow{
		BarCode:       bar,
		ProductID:     pid,
		ProductName:   name,
		Date:          mustDate(t, date),
		StartQuantity: i64(start),
		EndQuantity:   i64(end),
	}
}

func days(t *testing.T, start, end string) []time.Time {
	t.Helper()
	dates, err := ledger.DateRange(mustDate(t, start), mustDate(t, end))
	if err != nil {
		t.Fatalf("DateRange: %v", err)
	}
	return dates
}

func intOrNil(p *int64) any {
	if p == nil {
		return nil
	}
	return *p
}
