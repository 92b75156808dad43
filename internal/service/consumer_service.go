package service

import (
	"context"
	"encoding/json"
	"path/filepath"
	"time"

	"ai-scoping-be/internal/dto"
	"ai-scoping-be/internal/entity"
	"ai-scoping-be/internal/pkg/logger"
	"ai-scoping-be/internal/repository/specification"
	"ai-scoping-be/internal/repository/unitofwork"
	"ai-scoping-be/pkg/blob"
	"ai-scoping-be/pkg/embedding"
	"ai-scoping-be/pkg/extract"
	"ai-scoping-be/pkg/utils"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub            *gochannel.GoChannel
	topicName         string
	uowFactory        unitofwork.RepositoryFactory
	blobStore         blob.Store
	embeddingProvider embedding.EmbeddingProvider
	log               logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	blobStore blob.Store,
	embeddingProvider embedding.EmbeddingProvider,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:            pubSub,
		topicName:         topicName,
		uowFactory:        uowFactory,
		blobStore:         blobStore,
		embeddingProvider: embeddingProvider,
		log:               log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

// processMessage extracts, chunks and embeds one knowledge document, then
// replaces its chunk rows in a single transaction.
func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishIngestDocumentMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.log.Error("ingest", "failed to unmarshal ingest message", map[string]interface{}{"error": err.Error()})
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	doc, err := uow.KnowledgeDocumentRepository().FindOne(ctx, specification.ByID{ID: payload.DocumentId})
	if err != nil {
		cs.log.Error("ingest", "failed to load knowledge document", map[string]interface{}{
			"document_id": payload.DocumentId.String(),
			"error":       err.Error(),
		})
		msg.Nack()
		return
	}
	if doc == nil {
		cs.log.Warn("ingest", "knowledge document not found, skipping", map[string]interface{}{
			"document_id": payload.DocumentId.String(),
		})
		msg.Ack()
		return
	}

	data, err := cs.blobStore.Download(ctx, doc.StoragePath)
	if err != nil {
		cs.log.Error("ingest", "failed to download document blob", map[string]interface{}{
			"document_id": doc.Id.String(),
			"error":       err.Error(),
		})
		msg.Nack()
		return
	}

	text, _ := extract.ExtractAll(ctx, []extract.Document{{Name: filepath.Base(doc.StoragePath), Data: data}})
	if text == "" {
		cs.log.Warn("ingest", "document produced no text, nothing to index", map[string]interface{}{
			"document_id": doc.Id.String(),
		})
		msg.Ack()
		return
	}

	// ChunkSize 1500 chars (~375 tokens) with 200 overlap keeps each chunk
	// well inside the embedding model's context.
	chunks := utils.SplitText(text, 1500, 200)

	var newChunks []*entity.KnowledgeChunk
	for i, chunk := range chunks {
		res, err := cs.embeddingProvider.Generate(ctx, chunk, "RETRIEVAL_DOCUMENT")
		if err != nil {
			cs.log.Error("ingest", "failed to embed chunk", map[string]interface{}{
				"document_id": doc.Id.String(),
				"chunk_index": i,
				"error":       err.Error(),
			})
			msg.Nack()
			return
		}
		newChunks = append(newChunks, &entity.KnowledgeChunk{
			Id:             uuid.New(),
			DocumentId:     doc.Id,
			Title:          doc.Title,
			Chunk:          chunk,
			ChunkIndex:     i,
			EmbeddingValue: res.Embedding.Values,
			CreatedAt:      time.Now(),
		})
	}

	if err := uow.Begin(ctx); err != nil {
		cs.log.Error("ingest", "failed to begin transaction", map[string]interface{}{"error": err.Error()})
		msg.Nack()
		return
	}
	defer uow.Rollback()

	if err := uow.KnowledgeChunkRepository().DeleteByDocumentIdUnscoped(ctx, doc.Id); err != nil {
		cs.log.Error("ingest", "failed to delete old chunks", map[string]interface{}{"error": err.Error()})
		msg.Nack()
		return
	}
	if len(newChunks) > 0 {
		if err := uow.KnowledgeChunkRepository().CreateBulk(ctx, newChunks); err != nil {
			cs.log.Error("ingest", "failed to insert chunks", map[string]interface{}{"error": err.Error()})
			msg.Nack()
			return
		}
	}
	if err := uow.Commit(); err != nil {
		cs.log.Error("ingest", "failed to commit transaction", map[string]interface{}{"error": err.Error()})
		msg.Nack()
		return
	}

	cs.log.Info("ingest", "knowledge document indexed", map[string]interface{}{
		"document_id": doc.Id.String(),
		"chunks":      len(newChunks),
	})
	msg.Ack()
}
