package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// Comparison is the result of costing one billing period under every plan.
type Comparison struct {
	Period     string    `json:"period"`
	Source     string    `json:"source"`
	Currency   string    `json:"currency"`
	Days       int       `json:"days"`
	ComputedAt time.Time `json:"computedAt"`

	Standard         StandardAmounts `json:"standard"`
	StandardTotalKWH decimal.Decimal `json:"standardTotalKWH"`
	// Tier1LimitKWH and Tier2LimitKWH are the bracket limits the standard
	// amounts were allocated with.
	Tier1LimitKWH decimal.Decimal `json:"tier1LimitKWH"`
	Tier2LimitKWH decimal.Decimal `json:"tier2LimitKWH"`

	TimeOfUse         TimeOfUseAmounts `json:"timeOfUse"`
	TimeOfUseTotalKWH decimal.Decimal  `json:"timeOfUseTotalKWH"`

	StandardCost PlanCost `json:"standardCost"`
	NightCost    PlanCost `json:"nightCost"`
	DayCost      PlanCost `json:"dayCost"`
}

// Costs returns the plan costs in report order.
func (c Comparison) Costs() []PlanCost {
	return []PlanCost{c.StandardCost, c.NightCost, c.DayCost}
}

// Cheapest returns the plan with the lowest rounded cost. Ties go to the plan
// listed first.
func (c Comparison) Cheapest() PlanCost {
	costs := c.Costs()
	best := costs[0]
	for _, pc := range costs[1:] {
		if pc.Rounded < best.Rounded {
			best = pc
		}
	}
	return best
}
