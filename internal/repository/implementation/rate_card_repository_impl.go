package implementation

import (
	"context"
	"errors"

	"ai-scoping-be/internal/entity"
	"ai-scoping-be/internal/mapper"
	"ai-scoping-be/internal/model"
	"ai-scoping-be/internal/repository/contract"
	"ai-scoping-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RateCardRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.RateCardMapper
}

func NewRateCardRepository(db *gorm.DB) contract.RateCardRepository {
	return &RateCardRepositoryImpl{
		db:     db,
		mapper: mapper.NewRateCardMapper(),
	}
}

func (r *RateCardRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *RateCardRepositoryImpl) Create(ctx context.Context, card *entity.RateCard) error {
	m := r.mapper.ToModel(card)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*card = *r.mapper.ToEntity(m)
	return nil
}

func (r *RateCardRepositoryImpl) Update(ctx context.Context, card *entity.RateCard) error {
	m := r.mapper.ToModel(card)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*card = *r.mapper.ToEntity(m)
	return nil
}

func (r *RateCardRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.RateCard{}, id).Error
}

func (r *RateCardRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.RateCard, error) {
	var m model.RateCard
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *RateCardRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.RateCard, error) {
	var models []*model.RateCard
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}
