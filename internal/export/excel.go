// Package export содержит выгрузку офферов в Excel.
package export

import (
	"fmt"
	"strconv"

	"offerbase/internal/model"

	"github.com/xuri/excelize/v2"
)

// sheetName — имя листа выгрузки
const sheetName = "Offers"

// columns — заголовки выгрузки
var columns = []interface{}{
	"ID", "Source", "Offer", "Geo", "Rate", "Guarantee", "Note", "Status", "Added by",
}

// RenderTable формирует xlsx-документ из строк выгрузки
func RenderTable(rows []model.OfferExportRow) ([]byte, error) {
	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}

	if err := f.SetSheetRow(sheetName, "A1", &columns); err != nil {
		return nil, fmt.Errorf("failed to write header row: %w", err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("failed to compute cell name: %w", err)
		}

		values := []interface{}{
			row.ID,
			row.SourceName,
			row.OfferName,
			row.Geo,
			row.Rate,
			row.Guarantee,
			row.Note,
			string(row.Status),
			OwnerLabel(row),
		}
		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	// Ширины колонок под типичное содержимое
	widths := []struct {
		start, end string
		width      float64
	}{
		{"A", "A", 5},
		{"B", "C", 20},
		{"D", "D", 15},
		{"E", "G", 18},
		{"I", "I", 25},
	}
	for _, w := range widths {
		if err := f.SetColWidth(sheetName, w.start, w.end, w.width); err != nil {
			return nil, fmt.Errorf("failed to set column width: %w", err)
		}
	}

	if len(rows) > 0 {
		filterRange := fmt.Sprintf("A1:I%d", len(rows)+1)
		if err := f.AutoFilter(sheetName, filterRange, nil); err != nil {
			return nil, fmt.Errorf("failed to set autofilter: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}

	return buf.Bytes(), nil
}

// OwnerLabel возвращает подпись владельца строки выгрузки:
// "id / @username", только id или "-" для офферов без владельца
func OwnerLabel(row model.OfferExportRow) string {
	if row.OwnerID == 0 {
		return "-"
	}

	label := strconv.FormatInt(row.OwnerID, 10)
	if row.OwnerUsername != "" {
		label += " / @" + row.OwnerUsername
	}
	return label
}
