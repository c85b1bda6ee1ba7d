package types

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestBandSchedule(t *testing.T) {
	s := BandSchedule{
		Day:   HourSet{9, 10, 11},
		Life:  HourSet{},
		Night: HourSet{0, 23},
	}

	t.Run("hour in band", func(t *testing.T) {
		b, ok := s.Band(10)
		assert.True(t, ok)
		assert.Equal(t, BandDay, b)

		b, ok = s.Band(23)
		assert.True(t, ok)
		assert.Equal(t, BandNight, b)
	})

	t.Run("hour not assigned", func(t *testing.T) {
		_, ok := s.Band(12)
		assert.False(t, ok)
	})

	t.Run("empty band", func(t *testing.T) {
		assert.False(t, s.Life.Contains(0))
		var nilSet HourSet
		assert.False(t, nilSet.Contains(0))
	})
}

func TestAmountsTotal(t *testing.T) {
	s := StandardAmounts{
		Tier1: decimal.NewFromInt(120),
		Tier2: decimal.NewFromInt(180),
		Tier3: decimal.NewFromInt(1),
	}
	assert.True(t, decimal.NewFromInt(301).Equal(s.Total()))

	a := TimeOfUseAmounts{Day: decimal.RequireFromString("1.5"), Night: decimal.NewFromInt(2)}
	b := TimeOfUseAmounts{Day: decimal.NewFromInt(1), Life: decimal.RequireFromString("0.25")}
	sum := a.Add(b)
	assert.True(t, decimal.RequireFromString("2.5").Equal(sum.Day))
	assert.True(t, decimal.RequireFromString("0.25").Equal(sum.Life))
	assert.True(t, decimal.NewFromInt(2).Equal(sum.Night))
	assert.True(t, decimal.RequireFromString("4.75").Equal(sum.Total()))
}

func TestComparisonCheapest(t *testing.T) {
	c := Comparison{
		StandardCost: PlanCost{PlanID: PlanStandard, Rounded: 953},
		NightCost:    PlanCost{PlanID: PlanNight, Rounded: 794},
		DayCost:      PlanCost{PlanID: PlanDay, Rounded: 763},
	}
	assert.Equal(t, PlanDay, c.Cheapest().PlanID)

	c.DayCost.Rounded = 953
	c.NightCost.Rounded = 953
	assert.Equal(t, PlanStandard, c.Cheapest().PlanID)
}
