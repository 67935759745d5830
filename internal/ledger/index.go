package ledger

import (
	"strconv"
	"time"
)

// StockRow is one ledger record as read from the store, joined with the
// product name. Quantity pointers are nil when the value was never recorded.
type StockRow struct {
	BarCode          string
	ProductID        uint
	ProductName      string
	Date             time.Time
	StartQuantity    *int64
	StartSubquantity *float64
	EndQuantity      *int64
	EndSubquantity   *float64
}

type PrestockRow struct {
	ProductID        uint
	ProductName      string
	OrderQuantity    *int64
	OrderSubquantity *float64
	RealQuantity     *int64
	RealSubquantity  *float64
	Date             *time.Time
}

type BarRef struct {
	Code    string
	EventID uint
}

type ProductRef struct {
	ID   uint
	Name string
}

// Index holds the rows fetched for one event in lookup form. It is built once
// per report and never mutated afterwards.
type Index struct {
	stock         map[string]StockRow
	prestock      map[uint]PrestockRow
	prestockOrder []uint
	products      []ProductRef
	barCodes      []string
}

// StockKey is the composite "bar|product|YYYY-MM-DD" key used by the index.
func StockKey(barCode string, productID uint, date time.Time) string {
	return barCode + "|" + strconv.FormatUint(uint64(productID), 10) + "|" + FormatDate(date)
}

// NewIndex indexes prestock and stock rows. The product catalog lists each
// product once, in first-seen order: prestock rows first, then stock rows.
func NewIndex(prestock []PrestockRow, stock []StockRow) *Index {
	ix := &Index{
		stock:    make(map[string]StockRow, len(stock)),
		prestock: make(map[uint]PrestockRow, len(prestock)),
	}

	seenProduct := make(map[uint]bool)
	addProduct := func(id uint, name string) {
		if seenProduct[id] {
			return
		}
		seenProduct[id] = true
		ix.products = append(ix.products, ProductRef{ID: id, Name: name})
	}

	for _, p := range prestock {
		if _, dup := ix.prestock[p.ProductID]; !dup {
			ix.prestockOrder = append(ix.prestockOrder, p.ProductID)
		}
		ix.prestock[p.ProductID] = p
		addProduct(p.ProductID, p.ProductName)
	}

	seenBar := make(map[string]bool)
	for _, s := range stock {
		ix.stock[StockKey(s.BarCode, s.ProductID, s.Date)] = s
		addProduct(s.ProductID, s.ProductName)
		if !seenBar[s.BarCode] {
			seenBar[s.BarCode] = true
			ix.barCodes = append(ix.barCodes, s.BarCode)
		}
	}

	return ix
}

func (ix *Index) Lookup(barCode string, productID uint, date time.Time) (StockRow, bool) {
	row, ok := ix.stock[StockKey(barCode, productID, date)]
	return row, ok
}

func (ix *Index) Products() []ProductRef {
	return append([]ProductRef(nil), ix.products...)
}

// Prestock returns the prestock rows in input order, one per product.
func (ix *Index) Prestock() []PrestockRow {
	out := make([]PrestockRow, 0, len(ix.prestockOrder))
	for _, pid := range ix.prestockOrder {
		out = append(out, ix.prestock[pid])
	}
	return out
}

// StockBarCodes lists the bar codes that appear in stock rows, first-seen order.
func (ix *Index) StockBarCodes() []string {
	return append([]string(nil), ix.barCodes...)
}

func (ix *Index) Len() int { return len(ix.stock) }
