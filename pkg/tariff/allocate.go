package tariff

import (
	"time"

	"github.com/raterudder/plancompare/pkg/types"
	"github.com/shopspring/decimal"
)

// AllocateStandard splits the table's total consumption, rounded to a whole
// kWh, across the plan's cumulative brackets.
func AllocateStandard(table types.ReadingTable, plan types.StandardPlan) types.StandardAmounts {
	return allocateStandardTotal(Round(table.Total()), plan)
}

func allocateStandardTotal(total decimal.Decimal, plan types.StandardPlan) types.StandardAmounts {
	limit1, limit2 := plan.Tier1LimitKWH, plan.Tier2LimitKWH
	switch {
	case total.GreaterThan(limit2):
		return types.StandardAmounts{
			Tier1: limit1,
			Tier2: limit2.Sub(limit1),
			Tier3: total.Sub(limit2),
		}
	case total.GreaterThan(limit1):
		return types.StandardAmounts{
			Tier1: limit1,
			Tier2: total.Sub(limit1),
		}
	default:
		return types.StandardAmounts{Tier1: total}
	}
}

// IsWeekend reports whether the date falls on a Saturday or Sunday.
func IsWeekend(date time.Time) bool {
	switch date.Weekday() {
	case time.Saturday, time.Sunday:
		return true
	}
	return false
}

// AllocateDay sums a single day's readings into the bands of the schedule
// that applies on that day.
func AllocateDay(day types.DayReadings, schedules Schedules) types.TimeOfUseAmounts {
	s := schedules.For(day.Date)
	return types.TimeOfUseAmounts{
		Day:   sumHours(day, s.Day),
		Life:  sumHours(day, s.Life),
		Night: sumHours(day, s.Night),
	}
}

// AllocateDate is AllocateDay for the table's row on the given date. A date
// with no row contributes nothing.
func AllocateDate(table types.ReadingTable, date time.Time, schedules Schedules) types.TimeOfUseAmounts {
	day, ok := table.Day(date)
	if !ok {
		return types.TimeOfUseAmounts{}
	}
	return AllocateDay(day, schedules)
}

// AllocateTimeOfUse accumulates AllocateDay over every row of the table.
func AllocateTimeOfUse(table types.ReadingTable, schedules Schedules) types.TimeOfUseAmounts {
	var total types.TimeOfUseAmounts
	for _, day := range table.Days {
		total = total.Add(AllocateDay(day, schedules))
	}
	return total
}

func sumHours(day types.DayReadings, hours types.HourSet) decimal.Decimal {
	var sum decimal.Decimal
	for _, h := range hours {
		if h < 0 || h >= types.HoursPerDay {
			continue
		}
		sum = sum.Add(day.KWH[h])
	}
	return sum
}
