package readings

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/raterudder/plancompare/pkg/types"
)

// ParseCSV reads a readings table from CSV. The first column is the date and
// the remaining 24 columns are the hours.
func ParseCSV(r io.Reader) (types.ReadingTable, error) {
	reader := csv.NewReader(r)
	// rows are checked against the header in parseRecords
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return types.ReadingTable{}, fmt.Errorf("failed to read csv: %w", err)
	}
	return parseRecords(records)
}
