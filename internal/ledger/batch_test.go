package ledger_test

import (
	"testing"

	"github.com/PanuLaosuwan/faststock-backend/internal/ledger"
)

func TestNormalizeBatchDefaults(t *testing.T) {
	writes, err := ledger.NormalizeBatch(" B1 ", []ledger.BatchItem{
		{ProductID: 1, Date: mustDate(t, "2024-05-01"), StartQuantity: 12},
		{ProductID: 2, Date: mustDate(t, "2024-05-01"), StartQuantity: 6, StartSubquantity: f64(0.5),
			EndQuantity: i64(2), EndSubquantity: f64(0.25)},
	})
	if err != nil {
		t.Fatalf("NormalizeBatch: %v", err)
	}
	if len(writes) != 2 {
		t.Fatalf("len = %d, want 2", len(writes))
	}

	first := writes[0]
	if first.BarCode != "B1" || first.EndQuantity != 12 || first.StartSubquantity != 0 || first.EndSubquantity != 0 {
		t.Errorf("defaults not applied: %+v", first)
	}
	second := writes[1]
	if second.EndQuantity != 2 || second.StartSubquantity != 0.5 || second.EndSubquantity != 0.25 {
		t.Errorf("explicit values lost: %+v", second)
	}
}

func TestNormalizeBatchRejects(t *testing.T) {
	d := mustDate(t, "2024-05-01")
	cases := []struct {
		name  string
		bar   string
		items []ledger.BatchItem
	}{
		{"empty batch", "B1", nil},
		{"missing bar", "  ", []ledger.BatchItem{{ProductID: 1, Date: d}}},
		{"missing product", "B1", []ledger.BatchItem{{Date: d}}},
		{"missing date", "B1", []ledger.BatchItem{{ProductID: 1}}},
		{"duplicate key", "B1", []ledger.BatchItem{
			{ProductID: 1, Date: d, StartQuantity: 1},
			{ProductID: 1, Date: mustDate(t, "2024-05-01T10:00:00Z"), StartQuantity: 2},
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ledger.NormalizeBatch(tc.bar, tc.items)
			if ledger.KindOf(err) != ledger.KindInvalidInput {
				t.Fatalf("err = %v, want invalid input", err)
			}
		})
	}
}
