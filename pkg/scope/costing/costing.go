package costing

import (
	"math"

	"ai-scoping-be/pkg/scope"
	"ai-scoping-be/pkg/scope/schedule"
)

// BuildPlan turns a role/month allocation into resourcing plan rows, one per
// role in first-seen order. Cost is total effort times the monthly rate,
// rounded to cents; a discount multiplies the cost only, exactly once.
func BuildPlan(alloc *schedule.Allocation, rateFor func(role string) float64, discountPercent float64) []scope.PlanEntry {
	plan := make([]scope.PlanEntry, 0, len(alloc.RoleOrder))

	for idx, role := range alloc.RoleOrder {
		months := alloc.Usage[role]
		monthly := make(map[string]float64, len(alloc.MonthLabels))
		total := 0.0
		for _, label := range alloc.MonthLabels {
			monthly[label] = months[label]
			total += months[label]
		}

		rate := rateFor(role)
		cost := round2(total * rate)
		if discountPercent > 0 {
			cost = round2(cost * (1 - discountPercent/100.0))
		}

		plan = append(plan, scope.PlanEntry{
			ID:           idx + 1,
			Role:         role,
			RatePerMonth: rate,
			Monthly:      monthly,
			Efforts:      total,
			Cost:         cost,
		})
	}
	return plan
}

// TotalCost sums the (already discounted) costs of a plan.
func TotalCost(plan []scope.PlanEntry) float64 {
	total := 0.0
	for _, entry := range plan {
		total += entry.Cost
	}
	return round2(total)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
