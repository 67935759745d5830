package ledger

import (
	"strings"
	"time"
)

// BatchItem is one requested ledger write before defaults are applied.
type BatchItem struct {
	ProductID        uint
	Date             time.Time
	StartQuantity    int64
	StartSubquantity *float64
	EndQuantity      *int64
	EndSubquantity   *float64
	Description      *string
}

// StockWrite is a fully specified row for the upsert.
type StockWrite struct {
	BarCode          string
	ProductID        uint
	Date             time.Time
	StartQuantity    int64
	StartSubquantity float64
	EndQuantity      int64
	EndSubquantity   float64
	Description      *string
}

func (w StockWrite) Key() string { return StockKey(w.BarCode, w.ProductID, w.Date) }

type WriteResult struct {
	StockWrite
	Created bool
}

// NormalizeBatch fills defaults for a bulk write to one bar: a missing closing
// quantity takes the opening quantity and missing sub-quantities become zero.
// A batch naming the same (product, date) twice is rejected.
func NormalizeBatch(barCode string, items []BatchItem) ([]StockWrite, error) {
	barCode = strings.TrimSpace(barCode)
	if barCode == "" {
		return nil, InvalidInput("bar code is required")
	}
	if len(items) == 0 {
		return nil, InvalidInput("items must not be empty")
	}

	writes := make([]StockWrite, 0, len(items))
	seen := make(map[string]int, len(items))
	for i, it := range items {
		if it.ProductID == 0 {
			return nil, InvalidInput("items[%d]: pid is required", i)
		}
		if it.Date.IsZero() {
			return nil, InvalidInput("items[%d]: sdate is required", i)
		}

		w := StockWrite{
			BarCode:       barCode,
			ProductID:     it.ProductID,
			Date:          Day(it.Date),
			StartQuantity: it.StartQuantity,
			EndQuantity:   it.StartQuantity,
			Description:   it.Description,
		}
		if it.EndQuantity != nil {
			w.EndQuantity = *it.EndQuantity
		}
		if it.StartSubquantity != nil {
			w.StartSubquantity = *it.StartSubquantity
		}
		if it.EndSubquantity != nil {
			w.EndSubquantity = *it.EndSubquantity
		}

		if j, dup := seen[w.Key()]; dup {
			return nil, InvalidInput("items[%d] repeats pid %d on %s from items[%d]", i, w.ProductID, FormatDate(w.Date), j)
		}
		seen[w.Key()] = i
		writes = append(writes, w)
	}

	return writes, nil
}
