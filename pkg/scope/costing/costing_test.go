package costing

import (
	"context"
	"errors"
	"testing"

	"ai-scoping-be/pkg/scope/schedule"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPlan(t *testing.T) {
	alloc := &schedule.Allocation{
		RoleOrder:   []string{"Backend Developer", "QA Engineer"},
		MonthLabels: []string{"Month 1", "Month 2"},
		Usage: map[string]map[string]float64{
			"Backend Developer": {"Month 1": 1.0, "Month 2": 0.75},
			"QA Engineer":       {"Month 1": 0.25, "Month 2": 0.5},
		},
	}
	rates := map[string]float64{"Backend Developer": 3000, "QA Engineer": 2000}

	plan := BuildPlan(alloc, func(role string) float64 { return rates[role] }, 0)

	require.Len(t, plan, 2)
	assert.Equal(t, 1, plan[0].ID)
	assert.Equal(t, "Backend Developer", plan[0].Role)
	assert.Equal(t, 3000.0, plan[0].RatePerMonth)
	assert.Equal(t, 1.75, plan[0].Efforts)
	assert.Equal(t, 5250.0, plan[0].Cost)

	assert.Equal(t, 2, plan[1].ID)
	assert.Equal(t, 0.75, plan[1].Efforts)
	assert.Equal(t, 1500.0, plan[1].Cost)
}

func TestBuildPlanAppliesDiscountOnce(t *testing.T) {
	alloc := &schedule.Allocation{
		RoleOrder:   []string{"Data Engineer"},
		MonthLabels: []string{"Month 1", "Month 2"},
		Usage: map[string]map[string]float64{
			"Data Engineer": {"Month 1": 1.0, "Month 2": 1.0},
		},
	}

	plan := BuildPlan(alloc, func(string) float64 { return 2000 }, 10)

	require.Len(t, plan, 1)
	// 2.0 months * 2000 = 4000, minus 10% = 3600.
	assert.Equal(t, 3600.0, plan[0].Cost)
	assert.Equal(t, 2.0, plan[0].Efforts)
}

func TestTotalCost(t *testing.T) {
	alloc := &schedule.Allocation{
		RoleOrder:   []string{"A", "B"},
		MonthLabels: []string{"Month 1"},
		Usage: map[string]map[string]float64{
			"A": {"Month 1": 1.0},
			"B": {"Month 1": 0.5},
		},
	}
	plan := BuildPlan(alloc, func(string) float64 { return 1000 }, 0)

	assert.Equal(t, 1500.0, TotalCost(plan))
}

type stubRateSource struct {
	rates  map[uuid.UUID]map[string]float64
	byName map[string]uuid.UUID
	err    error
}

func (s *stubRateSource) Rates(_ context.Context, companyId uuid.UUID) (map[string]float64, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.rates[companyId], nil
}

func (s *stubRateSource) FindCompanyIdByName(_ context.Context, name string) (*uuid.UUID, error) {
	if s.err != nil {
		return nil, s.err
	}
	if id, ok := s.byName[name]; ok {
		return &id, nil
	}
	return nil, nil
}

func TestResolverRateForCascade(t *testing.T) {
	resolver := NewResolver(&stubRateSource{}, map[string]float64{"QA Engineer": 1800}, 2000, "Sigmoid")

	companyRates := map[string]float64{"Backend Developer": 3200}

	assert.Equal(t, 3200.0, resolver.RateFor(companyRates, "Backend Developer"))
	assert.Equal(t, 1800.0, resolver.RateFor(companyRates, "QA Engineer"))
	assert.Equal(t, 2000.0, resolver.RateFor(companyRates, "Unknown Role"))
}

func TestResolverRateMapFallsBackToDefaultCompany(t *testing.T) {
	projectCompany := uuid.New()
	defaultCompany := uuid.New()
	source := &stubRateSource{
		rates: map[uuid.UUID]map[string]float64{
			defaultCompany: {"Backend Developer": 2900},
		},
		byName: map[string]uuid.UUID{"Sigmoid": defaultCompany},
	}
	resolver := NewResolver(source, nil, 2000, "Sigmoid")

	// The project's company has no card, so the default company's applies.
	rates := resolver.RateMap(context.Background(), &projectCompany)
	assert.Equal(t, map[string]float64{"Backend Developer": 2900}, rates)

	// No company at all also lands on the default company.
	rates = resolver.RateMap(context.Background(), nil)
	assert.Equal(t, map[string]float64{"Backend Developer": 2900}, rates)
}

func TestResolverRateMapDegradesOnLookupFailure(t *testing.T) {
	companyId := uuid.New()
	resolver := NewResolver(&stubRateSource{err: errors.New("db down")}, nil, 2000, "Sigmoid")

	rates := resolver.RateMap(context.Background(), &companyId)

	assert.Empty(t, rates)
	assert.Equal(t, 2000.0, resolver.RateFor(rates, "Anything"))
}
