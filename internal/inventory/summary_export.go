package inventory

import (
	"bytes"
	"fmt"

	"github.com/PanuLaosuwan/faststock-backend/internal/ledger"

	"github.com/xuri/excelize/v2"
)

const summarySheet = "Summary"

// WriteSummaryXLSX renders the summary rows as one sheet: date, bcode, then
// a stock/used/left column triple per product. Unknown values stay blank.
func WriteSummaryXLSX(rows []SummaryRow, products []ledger.ProductRef) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, err
	}

	header := []any{"date", "bcode"}
	for _, p := range products {
		header = append(header, p.Name+suffixStock, p.Name+suffixUsed, p.Name+suffixLeft)
	}
	if err := f.SetSheetRow(summarySheet, "A1", &header); err != nil {
		return nil, err
	}

	line := 2
	for _, r := range rows {
		for _, b := range r.Bars {
			values := []any{r.Date, b.BarCode}
			byID := make(map[uint]ledger.ProductFigures, len(b.Products))
			for _, pf := range b.Products {
				byID[pf.ProductID] = pf
			}
			for _, p := range products {
				pf := byID[p.ID]
				values = append(values, cellValue(pf.Received), cellValue(pf.Consumed), cellValue(pf.Remaining))
			}

			cell, err := excelize.CoordinatesToCellName(1, line)
			if err != nil {
				return nil, err
			}
			if err := f.SetSheetRow(summarySheet, cell, &values); err != nil {
				return nil, fmt.Errorf("write row %d: %w", line, err)
			}
			line++
		}
	}

	if err := f.SetPanes(summarySheet, &excelize.Panes{
		Freeze:      true,
		XSplit:      2,
		YSplit:      1,
		TopLeftCell: "C2",
		ActivePane:  "bottomRight",
	}); err != nil {
		return nil, err
	}

	return f.WriteToBuffer()
}

func cellValue(v *int64) any {
	if v == nil {
		return nil
	}
	return *v
}
