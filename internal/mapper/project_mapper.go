package mapper

import (
	"time"

	"ai-scoping-be/internal/entity"
	"ai-scoping-be/internal/model"

	"gorm.io/gorm"
)

type ProjectMapper struct{}

func NewProjectMapper() *ProjectMapper {
	return &ProjectMapper{}
}

func (m *ProjectMapper) ToEntity(e *model.Project) *entity.Project {
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

	return &entity.Project{
		Id:                e.Id,
		Name:              e.Name,
		Status:            e.Status,
		Domain:            e.Domain,
		Complexity:        e.Complexity,
		TechStack:         e.TechStack,
		UseCases:          e.UseCases,
		Compliance:        e.Compliance,
		Duration:          e.Duration,
		UserUnderstanding: e.UserUnderstanding,
		CompanyId:         e.CompanyId,
		CreatedAt:         e.CreatedAt,
		UpdatedAt:         updatedAt,
		DeletedAt:         deletedAt,
		IsDeleted:         e.DeletedAt.Valid,
	}
}

func (m *ProjectMapper) ToModel(e *entity.Project) *model.Project {
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

	return &model.Project{
		Id:                e.Id,
		Name:              e.Name,
		Status:            e.Status,
		Domain:            e.Domain,
		Complexity:        e.Complexity,
		TechStack:         e.TechStack,
		UseCases:          e.UseCases,
		Compliance:        e.Compliance,
		Duration:          e.Duration,
		UserUnderstanding: e.UserUnderstanding,
		CompanyId:         e.CompanyId,
		CreatedAt:         e.CreatedAt,
		UpdatedAt:         updatedAt,
		DeletedAt:         deletedAt,
	}
}

func (m *ProjectMapper) ToEntities(projects []*model.Project) []*entity.Project {
	entities := make([]*entity.Project, len(projects))
	for i, e := range projects {
		entities[i] = m.ToEntity(e)
	}
	return entities
}

type ProjectFileMapper struct{}

func NewProjectFileMapper() *ProjectFileMapper {
	return &ProjectFileMapper{}
}

func (m *ProjectFileMapper) ToEntity(e *model.ProjectFile) *entity.ProjectFile {
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

	return &entity.ProjectFile{
		Id:          e.Id,
		ProjectId:   e.ProjectId,
		FileName:    e.FileName,
		StoragePath: e.StoragePath,
		ContentType: e.ContentType,
		SizeBytes:   e.SizeBytes,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   updatedAt,
		DeletedAt:   deletedAt,
		IsDeleted:   e.DeletedAt.Valid,
	}
}

func (m *ProjectFileMapper) ToModel(e *entity.ProjectFile) *model.ProjectFile {
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

	return &model.ProjectFile{
		Id:          e.Id,
		ProjectId:   e.ProjectId,
		FileName:    e.FileName,
		StoragePath: e.StoragePath,
		ContentType: e.ContentType,
		SizeBytes:   e.SizeBytes,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   updatedAt,
		DeletedAt:   deletedAt,
	}
}

func (m *ProjectFileMapper) ToEntities(files []*model.ProjectFile) []*entity.ProjectFile {
	entities := make([]*entity.ProjectFile, len(files))
	for i, e := range files {
		entities[i] = m.ToEntity(e)
	}
	return entities
}
