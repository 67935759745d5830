package inventory

import (
	"bytes"
	"encoding/json"

	"github.com/PanuLaosuwan/faststock-backend/internal/ledger"
)

// Column suffixes of the stock summary, one triple per product.
const (
	suffixStock = " stock"
	suffixUsed  = " ใช้"
	suffixLeft  = " เหลือ"

	totalLabel = "Total"
)

type InventoryRow struct {
	BarID            *string  `json:"bid"`
	ProductID        uint     `json:"pid"`
	ProductName      string   `json:"pname"`
	Date             string   `json:"sdate"`
	StartQuantity    *int64   `json:"start_quantity"`
	EndQuantity      *int64   `json:"end_quantity"`
	StartSubquantity *float64 `json:"start_subquantity"`
	EndSubquantity   *float64 `json:"end_subquantity"`
}

type PrestockRow struct {
	ProductID        uint     `json:"pid"`
	ProductName      string   `json:"pname"`
	OrderQuantity    *int64   `json:"order_quantity"`
	OrderSubquantity *float64 `json:"order_subquantity"`
	RealQuantity     *int64   `json:"real_quantity"`
	RealSubquantity  *float64 `json:"real_subquantity"`
	Date             *string  `json:"psdate"`
}

type barRows struct {
	code string
	rows []InventoryRow
}

// InventoryPayload renders as {"prestock": [...], "<bcode>": [...], ...}
// with bar keys in report order.
type InventoryPayload struct {
	Prestock []PrestockRow
	bars     []barRows
}

func NewInventoryPayload(grid ledger.Grid) InventoryPayload {
	p := InventoryPayload{
		Prestock: make([]PrestockRow, 0, len(grid.Prestock)),
		bars:     make([]barRows, 0, len(grid.Bars)),
	}
	for _, pre := range grid.Prestock {
		row := PrestockRow{
			ProductID:        pre.ProductID,
			ProductName:      pre.ProductName,
			OrderQuantity:    pre.OrderQuantity,
			OrderSubquantity: pre.OrderSubquantity,
			RealQuantity:     pre.RealQuantity,
			RealSubquantity:  pre.RealSubquantity,
			Date:             optionalDate(pre.Date),
		}
		p.Prestock = append(p.Prestock, row)
	}
	for _, bg := range grid.Bars {
		rows := make([]InventoryRow, 0, len(bg.Rows))
		for _, r := range bg.Rows {
			rows = append(rows, InventoryRow{
				BarID:            r.BarID,
				ProductID:        r.ProductID,
				ProductName:      r.ProductName,
				Date:             ledger.FormatDate(r.Date),
				StartQuantity:    r.StartQuantity,
				EndQuantity:      r.EndQuantity,
				StartSubquantity: r.StartSubquantity,
				EndSubquantity:   r.EndSubquantity,
			})
		}
		p.bars = append(p.bars, barRows{code: bg.Code, rows: rows})
	}
	return p
}

// Bar returns the rows rendered under code.
func (p InventoryPayload) Bar(code string) ([]InventoryRow, bool) {
	for _, b := range p.bars {
		if b.code == code {
			return b.rows, true
		}
	}
	return nil, false
}

func (p InventoryPayload) MarshalJSON() ([]byte, error) {
	var obj orderedObject
	obj.add("prestock", p.Prestock)
	for _, b := range p.bars {
		obj.add(b.code, b.rows)
	}
	return obj.bytes()
}

// SummaryBar is one bar's figures, flattened to "<pname> stock" style keys
// only when encoded.
type SummaryBar struct {
	BarCode  string
	Products []ledger.ProductFigures
}

func (b SummaryBar) MarshalJSON() ([]byte, error) {
	var obj orderedObject
	obj.add("bcode", b.BarCode)
	for _, p := range b.Products {
		obj.add(p.ProductName+suffixStock, p.Received)
		obj.add(p.ProductName+suffixUsed, p.Consumed)
		obj.add(p.ProductName+suffixLeft, p.Remaining)
	}
	return obj.bytes()
}

type SummaryRow struct {
	Date string       `json:"date"`
	Bars []SummaryBar `json:"bars"`
}

// NewSummaryRows returns the Total row followed by one row per date.
func NewSummaryRows(sum ledger.Summary) []SummaryRow {
	rows := make([]SummaryRow, 0, len(sum.Days)+1)
	rows = append(rows, SummaryRow{Date: totalLabel, Bars: summaryBars(sum.Totals)})
	for _, d := range sum.Days {
		rows = append(rows, SummaryRow{Date: ledger.FormatDate(d.Date), Bars: summaryBars(d.Bars)})
	}
	return rows
}

func summaryBars(in []ledger.BarFigures) []SummaryBar {
	out := make([]SummaryBar, 0, len(in))
	for _, b := range in {
		out = append(out, SummaryBar{BarCode: b.BarCode, Products: b.Products})
	}
	return out
}

// orderedObject writes a JSON object whose keys keep insertion order.
type orderedObject struct {
	buf bytes.Buffer
	n   int
	err error
}

func (o *orderedObject) add(key string, v any) {
	if o.err != nil {
		return
	}
	if o.n == 0 {
		o.buf.WriteByte('{')
	} else {
		o.buf.WriteByte(',')
	}
	o.n++

	k, err := json.Marshal(key)
	if err != nil {
		o.err = err
		return
	}
	val, err := json.Marshal(v)
	if err != nil {
		o.err = err
		return
	}
	o.buf.Write(k)
	o.buf.WriteByte(':')
	o.buf.Write(val)
}

func (o *orderedObject) bytes() ([]byte, error) {
	if o.err != nil {
		return nil, o.err
	}
	if o.n == 0 {
		return []byte("{}"), nil
	}
	o.buf.WriteByte('}')
	return o.buf.Bytes(), nil
}
