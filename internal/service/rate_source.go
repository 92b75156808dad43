package service

import (
	"context"

	"ai-scoping-be/internal/repository/specification"
	"ai-scoping-be/internal/repository/unitofwork"
	"ai-scoping-be/pkg/scope/costing"

	"github.com/google/uuid"
)

// rateSource adapts the company and rate card repositories to the costing
// resolver's lookup interface.
type rateSource struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewRateSource(uowFactory unitofwork.RepositoryFactory) costing.CompanyRates {
	return &rateSource{uowFactory: uowFactory}
}

func (r *rateSource) Rates(ctx context.Context, companyId uuid.UUID) (map[string]float64, error) {
	uow := r.uowFactory.NewUnitOfWork(ctx)
	cards, err := uow.RateCardRepository().FindAll(ctx, specification.ByCompanyId{CompanyId: companyId})
	if err != nil {
		return nil, err
	}
	rates := make(map[string]float64, len(cards))
	for _, card := range cards {
		rates[card.Role] = card.MonthlyRate
	}
	return rates, nil
}

func (r *rateSource) FindCompanyIdByName(ctx context.Context, name string) (*uuid.UUID, error) {
	uow := r.uowFactory.NewUnitOfWork(ctx)
	company, err := uow.CompanyRepository().FindOne(ctx, specification.ByCompanyName{Name: name})
	if err != nil || company == nil {
		return nil, err
	}
	return &company.Id, nil
}
