package ledger

import "time"

// ProductFigures carries one product's numbers for a bar. In the totals,
// Received is new stock only, Consumed is the sum of daily usage and Remaining
// is their difference. In a per-day breakdown they are that day's opening,
// usage and opening minus usage. nil means unknown.
type ProductFigures struct {
	ProductID   uint
	ProductName string
	Received    *int64
	Consumed    *int64
	Remaining   *int64
}

type BarFigures struct {
	BarCode  string
	Products []ProductFigures
}

type DayFigures struct {
	Date time.Time
	Bars []BarFigures
}

// Correction records a day whose opening quantity was below the previous
// day's remainder. The negative delta is clamped to zero in the totals.
type Correction struct {
	BarCode       string
	ProductID     uint
	ProductName   string
	Date          time.Time
	PrevRemaining int64
	StartQuantity int64
}

type Summary struct {
	Totals      []BarFigures
	Days        []DayFigures
	Corrections []Correction
}

// tally walks one (bar, product) chain in date order.
type tally struct {
	prev     *int64
	received *int64
	consumed *int64
}

func (t *tally) gap() { t.prev = nil }

// observe folds one present row into the tally. It returns the previous
// remainder and true when the opening quantity had to be clamped.
func (t *tally) observe(row StockRow) (int64, bool) {
	var (
		clampedFrom int64
		clamped     bool
	)

	if row.StartQuantity != nil {
		start := *row.StartQuantity
		delta := start
		if t.prev != nil {
			delta = start - *t.prev
			if delta < 0 {
				clampedFrom, clamped = *t.prev, true
				delta = 0
			}
		}
		t.received = addInt(t.received, delta)
	}
	if row.EndQuantity != nil {
		t.consumed = addInt(t.consumed, *row.EndQuantity)
	}

	t.prev = subInt(row.StartQuantity, row.EndQuantity)
	return clampedFrom, clamped
}

// Summarize computes the carry-forward totals for every bar slot and
// product in the catalog, plus one breakdown entry per date. A date with no
// row breaks the chain: the next present row counts as a first observation.
func Summarize(dates []time.Time, slots []BarSlot, ix *Index) Summary {
	products := ix.Products()
	sum := Summary{
		Totals: make([]BarFigures, 0, len(slots)),
		Days:   make([]DayFigures, len(dates)),
	}
	for i, d := range dates {
		sum.Days[i] = DayFigures{Date: d, Bars: make([]BarFigures, 0, len(slots))}
	}

	for _, slot := range slots {
		total := BarFigures{BarCode: slot.Code, Products: make([]ProductFigures, 0, len(products))}
		daily := make([]BarFigures, len(dates))
		for i := range daily {
			daily[i] = BarFigures{BarCode: slot.Code, Products: make([]ProductFigures, 0, len(products))}
		}

		for _, p := range products {
			var t tally
			for i, d := range dates {
				day := ProductFigures{ProductID: p.ID, ProductName: p.Name}
				row, ok := ix.Lookup(slot.Code, p.ID, d)
				if !ok {
					t.gap()
					daily[i].Products = append(daily[i].Products, day)
					continue
				}

				if prev, clamped := t.observe(row); clamped {
					sum.Corrections = append(sum.Corrections, Correction{
						BarCode:       slot.Code,
						ProductID:     p.ID,
						ProductName:   p.Name,
						Date:          d,
						PrevRemaining: prev,
						StartQuantity: *row.StartQuantity,
					})
				}

				day.Received = row.StartQuantity
				day.Consumed = row.EndQuantity
				day.Remaining = subInt(row.StartQuantity, row.EndQuantity)
				daily[i].Products = append(daily[i].Products, day)
			}

			total.Products = append(total.Products, ProductFigures{
				ProductID:   p.ID,
				ProductName: p.Name,
				Received:    t.received,
				Consumed:    t.consumed,
				Remaining:   subInt(t.received, t.consumed),
			})
		}

		sum.Totals = append(sum.Totals, total)
		for i := range dates {
			sum.Days[i].Bars = append(sum.Days[i].Bars, daily[i])
		}
	}

	return sum
}

func addInt(acc *int64, v int64) *int64 {
	n := v
	if acc != nil {
		n += *acc
	}
	return &n
}

func subInt(a, b *int64) *int64 {
	if a == nil || b == nil {
		return nil
	}
	n := *a - *b
	return &n
}
