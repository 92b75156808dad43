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

type ProjectFileRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ProjectFileMapper
}

func NewProjectFileRepository(db *gorm.DB) contract.ProjectFileRepository {
	return &ProjectFileRepositoryImpl{
		db:     db,
		mapper: mapper.NewProjectFileMapper(),
	}
}

func (r *ProjectFileRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ProjectFileRepositoryImpl) Create(ctx context.Context, file *entity.ProjectFile) error {
	m := r.mapper.ToModel(file)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*file = *r.mapper.ToEntity(m)
	return nil
}

func (r *ProjectFileRepositoryImpl) Update(ctx context.Context, file *entity.ProjectFile) error {
	m := r.mapper.ToModel(file)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*file = *r.mapper.ToEntity(m)
	return nil
}

func (r *ProjectFileRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.ProjectFile{}, id).Error
}

func (r *ProjectFileRepositoryImpl) DeleteAllByProjectIdUnscoped(ctx context.Context, projectId uuid.UUID) error {
	return r.db.WithContext(ctx).Unscoped().Where("project_id = ?", projectId).Delete(&model.ProjectFile{}).Error
}

func (r *ProjectFileRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ProjectFile, error) {
	var m model.ProjectFile
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *ProjectFileRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ProjectFile, error) {
	var models []*model.ProjectFile
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *ProjectFileRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.ProjectFile{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
