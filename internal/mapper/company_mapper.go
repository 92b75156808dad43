package mapper

import (
	"time"

	"ai-scoping-be/internal/entity"
	"ai-scoping-be/internal/model"

	"gorm.io/gorm"
)

type CompanyMapper struct{}

func NewCompanyMapper() *CompanyMapper {
	return &CompanyMapper{}
}

func (m *CompanyMapper) ToEntity(e *model.Company) *entity.Company {
	if e == nil {
		return nil
	}

	var deletedAt *time.Time
	if e.DeletedAt.Valid {
		t := e.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !e.UpdatedAt.IsZero() {
		t := e.UpdatedAt
		updatedAt = &t
	}

	return &entity.Company{
		Id:        e.Id,
		Name:      e.Name,
		Currency:  e.Currency,
		CreatedAt: e.CreatedAt,
		UpdatedAt: updatedAt,
		DeletedAt: deletedAt,
		IsDeleted: e.DeletedAt.Valid,
	}
}

func (m *CompanyMapper) ToModel(e *entity.Company) *model.Company {
	if e == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if e.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *e.DeletedAt, Valid: true}
	} else if e.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if e.UpdatedAt != nil {
		updatedAt = *e.UpdatedAt
	}

	return &model.Company{
		Id:        e.Id,
		Name:      e.Name,
		Currency:  e.Currency,
		CreatedAt: e.CreatedAt,
		UpdatedAt: updatedAt,
		DeletedAt: deletedAt,
	}
}

type RateCardMapper struct{}

func NewRateCardMapper() *RateCardMapper {
	return &RateCardMapper{}
}

func (m *RateCardMapper) ToEntity(e *model.RateCard) *entity.RateCard {
	if e == nil {
		return nil
	}

	var deletedAt *time.Time
	if e.DeletedAt.Valid {
		t := e.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !e.UpdatedAt.IsZero() {
		t := e.UpdatedAt
		updatedAt = &t
	}

	return &entity.RateCard{
		Id:          e.Id,
		CompanyId:   e.CompanyId,
		Role:        e.Role,
		MonthlyRate: e.MonthlyRate,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   updatedAt,
		DeletedAt:   deletedAt,
		IsDeleted:   e.DeletedAt.Valid,
	}
}

func (m *RateCardMapper) ToModel(e *entity.RateCard) *model.RateCard {
	if e == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if e.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *e.DeletedAt, Valid: true}
	} else if e.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if e.UpdatedAt != nil {
		updatedAt = *e.UpdatedAt
	}

	return &model.RateCard{
		Id:          e.Id,
		CompanyId:   e.CompanyId,
		Role:        e.Role,
		MonthlyRate: e.MonthlyRate,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   updatedAt,
		DeletedAt:   deletedAt,
	}
}

func (m *RateCardMapper) ToEntities(cards []*model.RateCard) []*entity.RateCard {
	entities := make([]*entity.RateCard, len(cards))
	for i, e := range cards {
		entities[i] = m.ToEntity(e)
	}
	return entities
}
