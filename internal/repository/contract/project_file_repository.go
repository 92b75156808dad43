package contract

import (
	"context"

	"ai-scoping-be/internal/entity"
	"ai-scoping-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ProjectFileRepository interface {
	Create(ctx context.Context, file *entity.ProjectFile) error
	Update(ctx context.Context, file *entity.ProjectFile) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteAllByProjectIdUnscoped(ctx context.Context, projectId uuid.UUID) error // Hard delete all
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ProjectFile, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ProjectFile, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
