package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ByProjectId filters child rows (files) by their owning project
type ByProjectId struct {
	ProjectId uuid.UUID
}

func (s ByProjectId) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("project_id = ?", s.ProjectId)
}

// ByCompanyId filters by company
type ByCompanyId struct {
	CompanyId uuid.UUID
}

func (s ByCompanyId) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("company_id = ?", s.CompanyId)
}

// ByCompanyName filters companies by exact name
type ByCompanyName struct {
	Name string
}

func (s ByCompanyName) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("name = ?", s.Name)
}

// ByDocumentId filters knowledge chunks by their source document
type ByDocumentId struct {
	DocumentId uuid.UUID
}

func (s ByDocumentId) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("document_id = ?", s.DocumentId)
}
