package tariff

import (
	"github.com/raterudder/plancompare/pkg/types"
	"github.com/shopspring/decimal"
)

// StandardCost is the plan's base charge plus each bracket's kWh times its
// rate.
func StandardCost(a types.StandardAmounts, p types.StandardPlan) decimal.Decimal {
	return p.BaseCharge.
		Add(a.Tier1.Mul(p.Tier1)).
		Add(a.Tier2.Mul(p.Tier2)).
		Add(a.Tier3.Mul(p.Tier3))
}

// TimeOfUseCost is the plan's base charge plus each band's kWh times its rate.
func TimeOfUseCost(a types.TimeOfUseAmounts, p types.TimeOfUsePlan) decimal.Decimal {
	return p.BaseCharge.
		Add(a.Day.Mul(p.Day)).
		Add(a.Life.Mul(p.Life)).
		Add(a.Night.Mul(p.Night))
}

// StandardPlanCost wraps the Standard Plan's cost for reporting.
func StandardPlanCost(p types.StandardPlan, cost decimal.Decimal) types.PlanCost {
	return types.PlanCost{
		PlanID:  p.ID,
		Name:    p.Name,
		Cost:    cost,
		Rounded: RoundInt(cost),
	}
}

// TimeOfUsePlanCost wraps a time-of-use plan's cost for reporting along with
// how it compares to the Standard Plan. The difference is taken between the
// two rounded costs.
func TimeOfUsePlanCost(p types.TimeOfUsePlan, cost decimal.Decimal, standard types.PlanCost) types.PlanCost {
	rounded := RoundInt(cost)
	delta := rounded - standard.Rounded
	direction := types.DirectionMore
	if delta < 0 {
		direction = types.DirectionLess
	}
	return types.PlanCost{
		PlanID:  p.ID,
		Name:    p.Name,
		Cost:    cost,
		Rounded: rounded,
		VsStandard: &types.PlanDelta{
			Amount:    delta,
			Direction: direction,
		},
	}
}
