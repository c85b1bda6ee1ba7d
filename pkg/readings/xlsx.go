package readings

import (
	"fmt"
	"io"

	"github.com/raterudder/plancompare/pkg/types"
	"github.com/xuri/excelize/v2"
)

// ParseXLSX reads a readings table from the active sheet of a workbook laid
// out like the CSV export. Hour cells are read as raw values so number
// formats such as "#,##0.00" do not leak into the kWh text; the header row
// and the date column keep their displayed text.
func ParseXLSX(r io.Reader) (types.ReadingTable, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return types.ReadingTable{}, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	displayed, err := f.GetRows(sheet)
	if err != nil {
		return types.ReadingTable{}, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	raw, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return types.ReadingTable{}, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	return parseRecords(mergeRows(displayed, raw))
}

// mergeRows takes the header row and the first column from displayed and
// every other cell from raw.
func mergeRows(displayed, raw [][]string) [][]string {
	rows := make([][]string, len(displayed))
	for i, d := range displayed {
		if i == 0 || i >= len(raw) {
			rows[i] = d
			continue
		}
		row := raw[i]
		if len(row) > 0 && len(d) > 0 {
			row[0] = d[0]
		}
		rows[i] = row
	}
	return rows
}
