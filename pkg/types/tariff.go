package types

import (
	"slices"

	"github.com/shopspring/decimal"
)

// Plan identifiers.
const (
	PlanStandard = "standard"
	PlanNight    = "night"
	PlanDay      = "day"
)

// StandardPlan is the flat plan with three cumulative consumption brackets.
// Tier1 applies up to Tier1LimitKWH, Tier2 up to Tier2LimitKWH and Tier3 to
// everything above.
type StandardPlan struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	BaseCharge    decimal.Decimal `json:"baseCharge"`
	Tier1         decimal.Decimal `json:"tier1"`
	Tier2         decimal.Decimal `json:"tier2"`
	Tier3         decimal.Decimal `json:"tier3"`
	Tier1LimitKWH decimal.Decimal `json:"tier1LimitKWH"`
	Tier2LimitKWH decimal.Decimal `json:"tier2LimitKWH"`
}

// TimeOfUsePlan charges by the band the consumption happened in.
type TimeOfUsePlan struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	BaseCharge decimal.Decimal `json:"baseCharge"`
	Day        decimal.Decimal `json:"day"`
	Life       decimal.Decimal `json:"life"`
	Night      decimal.Decimal `json:"night"`
}

// Band is one of the time-of-use tiers.
type Band string

const (
	BandDay   Band = "day"
	BandLife  Band = "life"
	BandNight Band = "night"
)

// HourSet is a set of hours of the day (0-23).
type HourSet []int

// Contains checks if the hour is in the set.
func (h HourSet) Contains(hour int) bool {
	return slices.Contains(h, hour)
}

// BandSchedule assigns every hour of a day to one of the bands.
type BandSchedule struct {
	Day   HourSet `json:"day"`
	Life  HourSet `json:"life"`
	Night HourSet `json:"night"`
}

// Band returns the band the hour belongs to. The second return value is false
// if no band contains the hour.
func (s BandSchedule) Band(hour int) (Band, bool) {
	switch {
	case s.Day.Contains(hour):
		return BandDay, true
	case s.Life.Contains(hour):
		return BandLife, true
	case s.Night.Contains(hour):
		return BandNight, true
	}
	return "", false
}

// StandardAmounts is the kWh allocated to each Standard Plan bracket.
type StandardAmounts struct {
	Tier1 decimal.Decimal `json:"tier1"`
	Tier2 decimal.Decimal `json:"tier2"`
	Tier3 decimal.Decimal `json:"tier3"`
}

// Total returns the sum of the brackets.
func (a StandardAmounts) Total() decimal.Decimal {
	return a.Tier1.Add(a.Tier2).Add(a.Tier3)
}

// TimeOfUseAmounts is the kWh consumed in each time-of-use band.
type TimeOfUseAmounts struct {
	Day   decimal.Decimal `json:"day"`
	Life  decimal.Decimal `json:"life"`
	Night decimal.Decimal `json:"night"`
}

// Total returns the sum of the bands.
func (a TimeOfUseAmounts) Total() decimal.Decimal {
	return a.Day.Add(a.Life).Add(a.Night)
}

// Add returns the band-wise sum of a and b.
func (a TimeOfUseAmounts) Add(b TimeOfUseAmounts) TimeOfUseAmounts {
	return TimeOfUseAmounts{
		Day:   a.Day.Add(b.Day),
		Life:  a.Life.Add(b.Life),
		Night: a.Night.Add(b.Night),
	}
}

// Direction of a plan's cost relative to the Standard Plan.
const (
	DirectionMore = "more"
	DirectionLess = "less"
)

// PlanDelta is a plan's rounded cost minus the Standard Plan's rounded cost.
type PlanDelta struct {
	Amount    int64  `json:"amount"`
	Direction string `json:"direction"`
}

// PlanCost is the cost of one plan for a billing period.
type PlanCost struct {
	PlanID string `json:"planID"`
	Name   string `json:"name"`
	// Cost is the unrounded cost.
	Cost    decimal.Decimal `json:"cost"`
	Rounded int64           `json:"rounded"`
	// VsStandard is nil for the Standard Plan itself.
	VsStandard *PlanDelta `json:"vsStandard,omitempty"`
}
