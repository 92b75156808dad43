package unitofwork

import (
	"context"

	"ai-scoping-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	ProjectRepository() contract.ProjectRepository
	ProjectFileRepository() contract.ProjectFileRepository
	CompanyRepository() contract.CompanyRepository
	RateCardRepository() contract.RateCardRepository
	KnowledgeDocumentRepository() contract.KnowledgeDocumentRepository
	KnowledgeChunkRepository() contract.KnowledgeChunkRepository
}
