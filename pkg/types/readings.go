package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// HoursPerDay is the number of hourly columns in every reading row.
const HoursPerDay = 24

// DateLayout is the layout of the date column in a readings file.
const DateLayout = "2006/01/02"

// DayReadings holds the kWh consumed in each hour of a single date.
type DayReadings struct {
	Date time.Time                    `json:"date"`
	KWH  [HoursPerDay]decimal.Decimal `json:"kwh"`
}

// Total returns the sum of every hour of the day.
func (d DayReadings) Total() decimal.Decimal {
	var total decimal.Decimal
	for _, v := range d.KWH {
		total = total.Add(v)
	}
	return total
}

// ReadingTable is one billing period worth of hourly readings, one row per
// date.
type ReadingTable struct {
	// Period is the billing period label, usually taken from the file name.
	Period string `json:"period"`
	// Source is where the readings were loaded from.
	Source string        `json:"source"`
	Days   []DayReadings `json:"days"`
}

// Total returns the sum of every cell in the table.
func (t ReadingTable) Total() decimal.Decimal {
	var total decimal.Decimal
	for _, d := range t.Days {
		total = total.Add(d.Total())
	}
	return total
}

// Day returns the row for the given calendar date. Only the year, month and
// day are compared.
func (t ReadingTable) Day(date time.Time) (DayReadings, bool) {
	y, m, d := date.Date()
	for _, day := range t.Days {
		dy, dm, dd := day.Date.Date()
		if dy == y && dm == m && dd == d {
			return day, true
		}
	}
	return DayReadings{}, false
}
