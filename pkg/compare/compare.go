package compare

import (
	"context"
	"log/slog"
	"time"

	"github.com/raterudder/plancompare/pkg/log"
	"github.com/raterudder/plancompare/pkg/metrics"
	"github.com/raterudder/plancompare/pkg/tariff"
	"github.com/raterudder/plancompare/pkg/types"
)

// Comparer costs reading tables under every plan.
type Comparer struct {
	tariffs *tariff.Tariffs
	now     func() time.Time
}

// New creates a Comparer. The tariffs are read on every call so a pointer
// returned by tariff.Configured can be passed before flags are parsed.
func New(tariffs *tariff.Tariffs) *Comparer {
	return &Comparer{
		tariffs: tariffs,
		now:     time.Now,
	}
}

// Tariffs returns the tariffs used for comparisons.
func (c *Comparer) Tariffs() tariff.Tariffs {
	return *c.tariffs
}

// Compare allocates the table under the standard and time-of-use policies and
// costs it under the Standard, Night and Day plans.
func (c *Comparer) Compare(ctx context.Context, table types.ReadingTable) types.Comparison {
	t := c.tariffs

	standard := tariff.AllocateStandard(table, t.Standard)
	standardCost := tariff.StandardPlanCost(t.Standard, tariff.StandardCost(standard, t.Standard))

	tou := tariff.AllocateTimeOfUse(table, t.Schedules)
	nightCost := tariff.TimeOfUsePlanCost(t.Night, tariff.TimeOfUseCost(tou, t.Night), standardCost)
	dayCost := tariff.TimeOfUsePlanCost(t.Day, tariff.TimeOfUseCost(tou, t.Day), standardCost)

	comparison := types.Comparison{
		Period:            table.Period,
		Source:            table.Source,
		Currency:          t.Currency,
		Days:              len(table.Days),
		ComputedAt:        c.now().UTC(),
		Standard:          standard,
		StandardTotalKWH:  standard.Total(),
		Tier1LimitKWH:     t.Standard.Tier1LimitKWH,
		Tier2LimitKWH:     t.Standard.Tier2LimitKWH,
		TimeOfUse:         tou,
		TimeOfUseTotalKWH: tou.Total(),
		StandardCost:      standardCost,
		NightCost:         nightCost,
		DayCost:           dayCost,
	}
	for _, pc := range comparison.Costs() {
		metrics.ObservePlanCost(pc.PlanID, pc.Rounded)
	}

	log.Ctx(ctx).DebugContext(
		ctx,
		"compared plans",
		slog.String("period", comparison.Period),
		slog.String("standardKWH", comparison.StandardTotalKWH.String()),
		slog.Int64("standard", standardCost.Rounded),
		slog.Int64("night", nightCost.Rounded),
		slog.Int64("day", dayCost.Rounded),
	)
	return comparison
}
