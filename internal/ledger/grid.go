package ledger

import "time"

// BarSlot is a bar that takes part in a report. Known is false for codes that
// only appear in stock rows and have no bar record.
type BarSlot struct {
	Code  string
	Known bool
}

// ResolveBars returns the event's bars in the given order followed by any
// orphan codes from the stock rows, deduplicated by code.
func ResolveBars(bars []BarRef, ix *Index) []BarSlot {
	seen := make(map[string]bool, len(bars))
	slots := make([]BarSlot, 0, len(bars))
	for _, b := range bars {
		if seen[b.Code] {
			continue
		}
		seen[b.Code] = true
		slots = append(slots, BarSlot{Code: b.Code, Known: true})
	}
	for _, code := range ix.StockBarCodes() {
		if seen[code] {
			continue
		}
		seen[code] = true
		slots = append(slots, BarSlot{Code: code})
	}
	return slots
}

// GridRow is one (bar, product, date) cell. All four quantity fields are nil
// on placeholder rows; zero means a recorded empty value.
type GridRow struct {
	BarID            *string
	ProductID        uint
	ProductName      string
	Date             time.Time
	StartQuantity    *int64
	EndQuantity      *int64
	StartSubquantity *float64
	EndSubquantity   *float64
	Recorded         bool
}

type BarGrid struct {
	Code string
	Rows []GridRow
}

type Grid struct {
	Prestock []PrestockRow
	Bars     []BarGrid
}

// AssembleGrid builds the dense matrix for every slot: dates outer, catalog
// order inner. A bar gets exactly len(dates)*len(products) rows, or none when
// either is empty.
func AssembleGrid(dates []time.Time, slots []BarSlot, ix *Index) Grid {
	products := ix.Products()
	grid := Grid{
		Prestock: ix.Prestock(),
		Bars:     make([]BarGrid, 0, len(slots)),
	}

	for _, slot := range slots {
		bg := BarGrid{Code: slot.Code, Rows: []GridRow{}}
		if len(dates) == 0 || len(products) == 0 {
			grid.Bars = append(grid.Bars, bg)
			continue
		}

		var barID *string
		if slot.Known {
			code := slot.Code
			barID = &code
		}

		bg.Rows = make([]GridRow, 0, len(dates)*len(products))
		for _, d := range dates {
			for _, p := range products {
				row := GridRow{
					BarID:       barID,
					ProductID:   p.ID,
					ProductName: p.Name,
					Date:        d,
				}
				if s, ok := ix.Lookup(slot.Code, p.ID, d); ok {
					row.StartQuantity = s.StartQuantity
					row.EndQuantity = s.EndQuantity
					row.StartSubquantity = s.StartSubquantity
					row.EndSubquantity = s.EndSubquantity
					row.Recorded = true
				}
				bg.Rows = append(bg.Rows, row)
			}
		}
		grid.Bars = append(grid.Bars, bg)
	}

	return grid
}
