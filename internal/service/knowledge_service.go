package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"ai-scoping-be/internal/dto"
	"ai-scoping-be/internal/entity"
	"ai-scoping-be/internal/pkg/logger"
	"ai-scoping-be/internal/repository/specification"
	"ai-scoping-be/internal/repository/unitofwork"
	"ai-scoping-be/pkg/blob"

	"github.com/google/uuid"
)

type IKnowledgeService interface {
	UploadDocument(ctx context.Context, title, fileName string, data []byte) (*dto.IngestDocumentResponse, error)
	List(ctx context.Context) ([]dto.KnowledgeDocumentItem, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type knowledgeService struct {
	uowFactory       unitofwork.RepositoryFactory
	blobStore        blob.Store
	publisherService IPublisherService
	log              logger.ILogger
}

func NewKnowledgeService(
	uowFactory unitofwork.RepositoryFactory,
	blobStore blob.Store,
	publisherService IPublisherService,
	log logger.ILogger,
) IKnowledgeService {
	return &knowledgeService{
		uowFactory:       uowFactory,
		blobStore:        blobStore,
		publisherService: publisherService,
		log:              log,
	}
}

// UploadDocument stores the raw file and records the document, then hands the
// heavy work (extraction, chunking, embedding) to the ingest consumer.
func (s *knowledgeService) UploadDocument(ctx context.Context, title, fileName string, data []byte) (*dto.IngestDocumentResponse, error) {
	doc := &entity.KnowledgeDocument{
		Id:          uuid.New(),
		Title:       title,
		StoragePath: fmt.Sprintf("knowledge/%s/%s", uuid.New().String(), fileName),
		CreatedAt:   time.Now(),
	}

	if _, err := s.blobStore.Upload(ctx, data, doc.StoragePath, true); err != nil {
		return nil, fmt.Errorf("upload knowledge document: %w", err)
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.KnowledgeDocumentRepository().Create(ctx, doc); err != nil {
		return nil, err
	}

	payload, err := json.Marshal(dto.PublishIngestDocumentMessage{DocumentId: doc.Id})
	if err != nil {
		return nil, err
	}
	if err := s.publisherService.Publish(ctx, payload); err != nil {
		return nil, fmt.Errorf("publish ingest event: %w", err)
	}

	s.log.Info("knowledge", "document queued for ingestion", map[string]interface{}{
		"document_id": doc.Id.String(),
		"file_name":   fileName,
	})
	return &dto.IngestDocumentResponse{Id: doc.Id}, nil
}

func (s *knowledgeService) List(ctx context.Context) ([]dto.KnowledgeDocumentItem, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	docs, err := uow.KnowledgeDocumentRepository().FindAll(ctx, specification.OrderBy{Field: "created_at", Desc: true})
	if err != nil {
		return nil, err
	}

	items := make([]dto.KnowledgeDocumentItem, 0, len(docs))
	for _, doc := range docs {
		count, err := uow.KnowledgeChunkRepository().Count(ctx, specification.ByDocumentId{DocumentId: doc.Id})
		if err != nil {
			return nil, err
		}
		items = append(items, dto.KnowledgeDocumentItem{
			Id:          doc.Id,
			Title:       doc.Title,
			StoragePath: doc.StoragePath,
			ChunkCount:  count,
		})
	}
	return items, nil
}

func (s *knowledgeService) Delete(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	doc, err := uow.KnowledgeDocumentRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return err
	}
	if doc == nil {
		return nil
	}

	// Blob first, then rows. Chunks go before the document so a failure can
	// never orphan searchable chunks of a deleted document.
	if err := s.blobStore.Delete(ctx, doc.StoragePath); err != nil {
		s.log.Warn("knowledge", "failed to delete document blob", map[string]interface{}{
			"document_id": id.String(),
			"error":       err.Error(),
		})
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.KnowledgeChunkRepository().DeleteByDocumentIdUnscoped(ctx, id); err != nil {
		return err
	}
	if err := uow.KnowledgeDocumentRepository().Delete(ctx, id); err != nil {
		return err
	}
	return uow.Commit()
}
