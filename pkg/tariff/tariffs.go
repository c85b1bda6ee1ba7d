package tariff

import (
	"errors"
	"fmt"
	"time"

	"github.com/raterudder/plancompare/pkg/types"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidSchedule = errors.New("invalid band schedule")
	ErrInvalidPlan     = errors.New("invalid plan")
)

// Schedules holds the band schedule for weekdays and for weekends.
type Schedules struct {
	Weekday types.BandSchedule `json:"weekday"`
	Weekend types.BandSchedule `json:"weekend"`
}

// For returns the schedule that applies on the given date.
func (s Schedules) For(date time.Time) types.BandSchedule {
	if IsWeekend(date) {
		return s.Weekend
	}
	return s.Weekday
}

// Tariffs is the full rate configuration. It is built once at startup and
// never modified afterwards.
type Tariffs struct {
	Currency  string              `json:"currency"`
	Standard  types.StandardPlan  `json:"standard"`
	Night     types.TimeOfUsePlan `json:"night"`
	Day       types.TimeOfUsePlan `json:"day"`
	Schedules Schedules           `json:"schedules"`
}

// Default returns the built-in tariffs.
func Default() Tariffs {
	return Tariffs{
		Currency: "JPY",
		Standard: types.StandardPlan{
			ID:            types.PlanStandard,
			Name:          "Standard Plan",
			BaseCharge:    decimal.RequireFromString("796.06"),
			Tier1:         decimal.RequireFromString("19.67"),
			Tier2:         decimal.RequireFromString("24.78"),
			Tier3:         decimal.RequireFromString("27.71"),
			Tier1LimitKWH: decimal.NewFromInt(120),
			Tier2LimitKWH: decimal.NewFromInt(300),
		},
		Night: types.TimeOfUsePlan{
			ID:         types.PlanNight,
			Name:       "Night Plan",
			BaseCharge: decimal.RequireFromString("565.20"),
			Day:        decimal.RequireFromString("26.25"),
			Life:       decimal.RequireFromString("32.65"),
			Night:      decimal.RequireFromString("18.88"),
		},
		Day: types.TimeOfUsePlan{
			ID:         types.PlanDay,
			Name:       "Day Plan",
			BaseCharge: decimal.RequireFromString("565.20"),
			Day:        decimal.RequireFromString("20.05"),
			Life:       decimal.RequireFromString("32.65"),
			Night:      decimal.RequireFromString("22.98"),
		},
		Schedules: Schedules{
			Weekday: types.BandSchedule{
				Day:   types.HourSet{9, 10, 11, 12, 13, 14, 15},
				Life:  types.HourSet{6, 7, 8, 16, 17, 18, 19, 20, 21, 22},
				Night: types.HourSet{0, 1, 2, 3, 4, 5, 23},
			},
			Weekend: types.BandSchedule{
				Day:   types.HourSet{8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20, 21},
				Life:  types.HourSet{},
				Night: types.HourSet{0, 1, 2, 3, 4, 5, 6, 7, 22, 23},
			},
		},
	}
}

// Validate checks that every schedule assigns each hour to exactly one band
// and that the plans have usable rates and bracket limits.
func (t Tariffs) Validate() error {
	if err := validateSchedule(t.Schedules.Weekday); err != nil {
		return fmt.Errorf("weekday: %w", err)
	}
	if err := validateSchedule(t.Schedules.Weekend); err != nil {
		return fmt.Errorf("weekend: %w", err)
	}
	if err := validateStandard(t.Standard); err != nil {
		return err
	}
	for _, p := range []types.TimeOfUsePlan{t.Night, t.Day} {
		if err := validateTimeOfUse(p); err != nil {
			return err
		}
	}
	return nil
}

func validateSchedule(s types.BandSchedule) error {
	var seen [types.HoursPerDay]types.Band
	bands := []struct {
		band  types.Band
		hours types.HourSet
	}{
		{types.BandDay, s.Day},
		{types.BandLife, s.Life},
		{types.BandNight, s.Night},
	}
	for _, b := range bands {
		for _, h := range b.hours {
			if h < 0 || h >= types.HoursPerDay {
				return fmt.Errorf("%w: hour %d in %s band is out of range", ErrInvalidSchedule, h, b.band)
			}
			if seen[h] != "" {
				return fmt.Errorf("%w: hour %d is in both %s and %s bands", ErrInvalidSchedule, h, seen[h], b.band)
			}
			seen[h] = b.band
		}
	}
	for h, b := range seen {
		if b == "" {
			return fmt.Errorf("%w: hour %d is not assigned to a band", ErrInvalidSchedule, h)
		}
	}
	return nil
}

func validateStandard(p types.StandardPlan) error {
	if err := checkRates(p.ID, []namedRate{
		{"baseCharge", p.BaseCharge},
		{"tier1", p.Tier1},
		{"tier2", p.Tier2},
		{"tier3", p.Tier3},
	}); err != nil {
		return err
	}
	if !p.Tier1LimitKWH.IsPositive() {
		return fmt.Errorf("%w: %s tier1 limit must be positive", ErrInvalidPlan, p.ID)
	}
	if !p.Tier2LimitKWH.GreaterThan(p.Tier1LimitKWH) {
		return fmt.Errorf("%w: %s tier2 limit must be greater than tier1 limit", ErrInvalidPlan, p.ID)
	}
	return nil
}

func validateTimeOfUse(p types.TimeOfUsePlan) error {
	return checkRates(p.ID, []namedRate{
		{"baseCharge", p.BaseCharge},
		{"day", p.Day},
		{"life", p.Life},
		{"night", p.Night},
	})
}

type namedRate struct {
	name  string
	value decimal.Decimal
}

// checkRates returns an error naming the first negative rate in order.
func checkRates(planID string, rates []namedRate) error {
	for _, r := range rates {
		if r.value.IsNegative() {
			return fmt.Errorf("%w: %s %s is negative", ErrInvalidPlan, planID, r.name)
		}
	}
	return nil
}
