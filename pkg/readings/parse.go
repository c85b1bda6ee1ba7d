package readings

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/raterudder/plancompare/pkg/types"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidHeader = errors.New("invalid header")
	ErrInvalidDate   = errors.New("invalid date")
	ErrInvalidValue  = errors.New("invalid kWh value")
)

// hourSuffix is appended to every hour column header by the meter portal,
// e.g. "13時台" for the 13:00-13:59 column.
const hourSuffix = "時台"

// dateLayout accepts both zero padded and unpadded months and days.
const dateLayout = "2006/1/2"

// parseHourHeader turns a column header such as "7時台" or "7" into the hour.
func parseHourHeader(h string) (int, error) {
	s := strings.TrimSpace(h)
	s = strings.TrimSuffix(s, hourSuffix)
	s = strings.TrimSpace(s)
	hour, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: column %q is not an hour", ErrInvalidHeader, h)
	}
	if hour < 0 || hour >= types.HoursPerDay {
		return 0, fmt.Errorf("%w: hour %d in column %q is out of range", ErrInvalidHeader, hour, h)
	}
	return hour, nil
}

// parseHeader returns the hour each column after the date column holds.
func parseHeader(header []string) ([]int, error) {
	if len(header) != types.HoursPerDay+1 {
		return nil, fmt.Errorf("%w: expected a date column and %d hour columns, got %d columns", ErrInvalidHeader, types.HoursPerDay, len(header))
	}
	hours := make([]int, 0, types.HoursPerDay)
	var seen [types.HoursPerDay]bool
	for _, h := range header[1:] {
		hour, err := parseHourHeader(h)
		if err != nil {
			return nil, err
		}
		if seen[hour] {
			return nil, fmt.Errorf("%w: hour %d appears more than once", ErrInvalidHeader, hour)
		}
		seen[hour] = true
		hours = append(hours, hour)
	}
	return hours, nil
}

func parseDate(s string) (time.Time, error) {
	d, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q does not match YYYY/MM/DD", ErrInvalidDate, s)
	}
	return d, nil
}

func parseValue(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	v, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidValue, s)
	}
	return v, nil
}

func isBlank(record []string) bool {
	for _, c := range record {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// parseRecords builds a table from a header record followed by one record per
// date. Missing trailing cells count as zero; blank records are skipped. A
// header with no rows gives an empty table.
func parseRecords(records [][]string) (types.ReadingTable, error) {
	if len(records) == 0 {
		return types.ReadingTable{}, fmt.Errorf("%w: missing header", ErrInvalidHeader)
	}
	header := records[0]
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	hours, err := parseHeader(header)
	if err != nil {
		return types.ReadingTable{}, err
	}

	var table types.ReadingTable
	for i, record := range records[1:] {
		line := i + 2
		if isBlank(record) {
			continue
		}
		if len(record) > len(header) {
			return types.ReadingTable{}, fmt.Errorf("line %d: expected %d columns, got %d", line, len(header), len(record))
		}
		date, err := parseDate(record[0])
		if err != nil {
			return types.ReadingTable{}, fmt.Errorf("line %d: %w", line, err)
		}
		day := types.DayReadings{Date: date}
		for col, cell := range record[1:] {
			v, err := parseValue(cell)
			if err != nil {
				return types.ReadingTable{}, fmt.Errorf("line %d, hour %d: %w", line, hours[col], err)
			}
			day.KWH[hours[col]] = v
		}
		table.Days = append(table.Days, day)
	}
	return table, nil
}
