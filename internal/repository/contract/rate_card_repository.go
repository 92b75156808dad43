package contract

import (
	"context"

	"ai-scoping-be/internal/entity"
	"ai-scoping-be/internal/repository/specification"

	"github.com/google/uuid"
)

type RateCardRepository interface {
	Create(ctx context.Context, card *entity.RateCard) error
	Update(ctx context.Context, card *entity.RateCard) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.RateCard, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.RateCard, error)
}
