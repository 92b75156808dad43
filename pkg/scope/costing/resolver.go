package costing

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/google/uuid"
)

// CompanyRates fetches the role->monthly-rate map for one company. An empty
// map means the company has no rate card.
type CompanyRates interface {
	Rates(ctx context.Context, companyId uuid.UUID) (map[string]float64, error)
	FindCompanyIdByName(ctx context.Context, name string) (*uuid.UUID, error)
}

// Resolver resolves the effective rate map for a project through the cascade:
// project company's rate card, then the default company's, then the static
// built-in table, then the flat default rate. DB lookups are cached.
type Resolver struct {
	source             CompanyRates
	cache              *gocache.Cache
	staticRates        map[string]float64
	defaultRate        float64
	defaultCompanyName string
}

func NewResolver(source CompanyRates, staticRates map[string]float64, defaultRate float64, defaultCompanyName string) *Resolver {
	return &Resolver{
		source:             source,
		cache:              gocache.New(10*time.Minute, 15*time.Minute),
		staticRates:        staticRates,
		defaultRate:        defaultRate,
		defaultCompanyName: defaultCompanyName,
	}
}

// RateMap returns the company-level rate map for a project. A lookup failure
// degrades to an empty map; RateFor then falls through to the static table.
func (r *Resolver) RateMap(ctx context.Context, companyId *uuid.UUID) map[string]float64 {
	if companyId != nil {
		if rates := r.cachedRates(ctx, *companyId); len(rates) > 0 {
			return rates
		}
	}

	defaultId, err := r.defaultCompanyId(ctx)
	if err != nil || defaultId == nil {
		return map[string]float64{}
	}
	return r.cachedRates(ctx, *defaultId)
}

// RateFor resolves one role against a company rate map with static and flat
// fallbacks.
func (r *Resolver) RateFor(companyRates map[string]float64, role string) float64 {
	if rate, ok := companyRates[role]; ok {
		return rate
	}
	if rate, ok := r.staticRates[role]; ok {
		return rate
	}
	return r.defaultRate
}

func (r *Resolver) cachedRates(ctx context.Context, companyId uuid.UUID) map[string]float64 {
	key := "rates:" + companyId.String()
	if cached, ok := r.cache.Get(key); ok {
		return cached.(map[string]float64)
	}
	rates, err := r.source.Rates(ctx, companyId)
	if err != nil {
		return map[string]float64{}
	}
	if rates == nil {
		rates = map[string]float64{}
	}
	r.cache.Set(key, rates, gocache.DefaultExpiration)
	return rates
}

func (r *Resolver) defaultCompanyId(ctx context.Context) (*uuid.UUID, error) {
	key := "company:" + r.defaultCompanyName
	if cached, ok := r.cache.Get(key); ok {
		id := cached.(uuid.UUID)
		return &id, nil
	}
	id, err := r.source.FindCompanyIdByName(ctx, r.defaultCompanyName)
	if err != nil || id == nil {
		return nil, err
	}
	r.cache.Set(key, *id, gocache.DefaultExpiration)
	return id, nil
}
