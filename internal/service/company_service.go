package service

import (
	"context"
	"time"

	"ai-scoping-be/internal/constant"
	"ai-scoping-be/internal/dto"
	"ai-scoping-be/internal/entity"
	"ai-scoping-be/internal/pkg/logger"
	"ai-scoping-be/internal/repository/specification"
	"ai-scoping-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type ICompanyService interface {
	Create(ctx context.Context, req *dto.CreateCompanyRequest) (*dto.CreateCompanyResponse, error)
	List(ctx context.Context) ([]dto.CompanyItem, error)
	UpsertRateCard(ctx context.Context, companyId uuid.UUID, req *dto.UpsertRateCardRequest) (*dto.RateCardItem, error)
	ListRateCards(ctx context.Context, companyId uuid.UUID) ([]dto.RateCardItem, error)
}

type companyService struct {
	uowFactory unitofwork.RepositoryFactory
	log        logger.ILogger
}

func NewCompanyService(uowFactory unitofwork.RepositoryFactory, log logger.ILogger) ICompanyService {
	return &companyService{
		uowFactory: uowFactory,
		log:        log,
	}
}

func (s *companyService) Create(ctx context.Context, req *dto.CreateCompanyRequest) (*dto.CreateCompanyResponse, error) {
	currency := req.Currency
	if currency == "" {
		currency = constant.DefaultCurrency
	}

	company := &entity.Company{
		Id:        uuid.New(),
		Name:      req.Name,
		Currency:  currency,
		CreatedAt: time.Now(),
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.CompanyRepository().Create(ctx, company); err != nil {
		return nil, err
	}
	return &dto.CreateCompanyResponse{Id: company.Id}, nil
}

func (s *companyService) List(ctx context.Context) ([]dto.CompanyItem, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	companies, err := uow.CompanyRepository().FindAll(ctx, specification.OrderBy{Field: "name", Desc: false})
	if err != nil {
		return nil, err
	}

	items := make([]dto.CompanyItem, len(companies))
	for i, c := range companies {
		items[i] = dto.CompanyItem{
			Id:       c.Id,
			Name:     c.Name,
			Currency: c.Currency,
		}
	}
	return items, nil
}

// UpsertRateCard creates or updates the single rate card row for a role
// within a company. Role names match exactly; casing is the caller's problem.
func (s *companyService) UpsertRateCard(ctx context.Context, companyId uuid.UUID, req *dto.UpsertRateCardRequest) (*dto.RateCardItem, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	company, err := uow.CompanyRepository().FindOne(ctx, specification.ByID{ID: companyId})
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, nil
	}

	repo := uow.RateCardRepository()
	card, err := repo.FindOne(ctx,
		specification.ByCompanyId{CompanyId: companyId},
		specification.Filter("role", req.Role),
	)
	if err != nil {
		return nil, err
	}

	if card != nil {
		card.MonthlyRate = req.MonthlyRate
		now := time.Now()
		card.UpdatedAt = &now
		if err := repo.Update(ctx, card); err != nil {
			return nil, err
		}
	} else {
		card = &entity.RateCard{
			Id:          uuid.New(),
			CompanyId:   companyId,
			Role:        req.Role,
			MonthlyRate: req.MonthlyRate,
			CreatedAt:   time.Now(),
		}
		if err := repo.Create(ctx, card); err != nil {
			return nil, err
		}
	}

	return &dto.RateCardItem{
		Id:          card.Id,
		Role:        card.Role,
		MonthlyRate: card.MonthlyRate,
	}, nil
}

func (s *companyService) ListRateCards(ctx context.Context, companyId uuid.UUID) ([]dto.RateCardItem, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	company, err := uow.CompanyRepository().FindOne(ctx, specification.ByID{ID: companyId})
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, nil
	}

	cards, err := uow.RateCardRepository().FindAll(ctx,
		specification.ByCompanyId{CompanyId: companyId},
		specification.OrderBy{Field: "role", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	items := make([]dto.RateCardItem, len(cards))
	for i, c := range cards {
		items[i] = dto.RateCardItem{
			Id:          c.Id,
			Role:        c.Role,
			MonthlyRate: c.MonthlyRate,
		}
	}
	return items, nil
}
