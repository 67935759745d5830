package store_test

import (
	"context"
	"testing"

	"github.com/PanuLaosuwan/faststock-backend/internal/ledger"
	"github.com/PanuLaosuwan/faststock-backend/internal/models"
)

func batch(t *testing.T, f fixture, items ...ledger.BatchItem) []ledger.StockWrite {
	t.Helper()
	writes, err := ledger.NormalizeBatch("B1", items)
	if err != nil {
		t.Fatalf("NormalizeBatch: %v", err)
	}
	return writes
}

func TestBulkUpsertCreatedThenUpdated(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	end := int64(3)
	writes := batch(t, f,
		ledger.BatchItem{ProductID: f.beer.ID, Date: day(t, "2024-05-01"), StartQuantity: 10},
		ledger.BatchItem{ProductID: f.soda.ID, Date: day(t, "2024-05-01"), StartQuantity: 6, EndQuantity: &end},
	)

	first, err := f.st.BulkUpsertStock(ctx, writes)
	if err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	for i, r := range first {
		if !r.Created {
			t.Errorf("first run row %d created = false", i)
		}
	}

	second, err := f.st.BulkUpsertStock(ctx, writes)
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	for i, r := range second {
		if r.Created {
			t.Errorf("second run row %d created = true", i)
		}
	}

	beer, err := f.st.GetStock(ctx, "B1", f.beer.ID, day(t, "2024-05-01"))
	if err != nil {
		t.Fatalf("GetStock: %v", err)
	}
	if beer.StartQuantity != 10 || beer.EndQuantity != 10 || beer.StartSubquantity == nil || *beer.StartSubquantity != 0 {
		t.Errorf("beer = %+v", beer)
	}
	rows, _ := f.st.StockByBar(ctx, "B1", nil)
	if len(rows) != 2 {
		t.Errorf("rows after two runs = %d, want 2", len(rows))
	}
}

func TestBulkUpsertOverwritesExisting(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	d := day(t, "2024-05-02")
	note := "initial"
	if err := f.st.CreateStock(ctx, &models.StockEntry{BarCode: "B1", Date: d, ProductID: f.beer.ID, StartQuantity: 1, EndQuantity: 1, Description: &note}); err != nil {
		t.Fatalf("CreateStock: %v", err)
	}

	end := int64(7)
	res, err := f.st.BulkUpsertStock(ctx, batch(t, f, ledger.BatchItem{ProductID: f.beer.ID, Date: d, StartQuantity: 20, EndQuantity: &end}))
	if err != nil {
		t.Fatalf("BulkUpsertStock: %v", err)
	}
	if len(res) != 1 || res[0].Created {
		t.Fatalf("results = %+v", res)
	}

	got, _ := f.st.GetStock(ctx, "B1", f.beer.ID, d)
	if got.StartQuantity != 20 || got.EndQuantity != 7 || got.Description != nil {
		t.Errorf("stored = %+v", got)
	}
}

func TestBulkUpsertIsAtomic(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.st.BulkUpsertStock(ctx, batch(t, f,
		ledger.BatchItem{ProductID: f.beer.ID, Date: day(t, "2024-05-01"), StartQuantity: 10},
		ledger.BatchItem{ProductID: 999, Date: day(t, "2024-05-01"), StartQuantity: 1},
	))
	if ledger.KindOf(err) != ledger.KindReferenceViolation {
		t.Fatalf("err = %v, want reference violation", err)
	}

	rows, err := f.st.StockByBar(ctx, "B1", nil)
	if err != nil {
		t.Fatalf("StockByBar: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("rows = %d after failed batch, want 0", len(rows))
	}
}

func TestBulkUpsertCancelledContext(t *testing.T) {
	f := setup(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.st.BulkUpsertStock(ctx, batch(t, f, ledger.BatchItem{ProductID: f.beer.ID, Date: day(t, "2024-05-01"), StartQuantity: 1}))
	if err == nil {
		t.Fatal("expected error on cancelled context")
	}
	rows, _ := f.st.StockByBar(context.Background(), "B1", nil)
	if len(rows) != 0 {
		t.Errorf("rows = %d, want 0", len(rows))
	}
}
