package dto

import "github.com/google/uuid"

type IngestDocumentResponse struct {
	Id uuid.UUID `json:"id"`
}

// PublishIngestDocumentMessage is the payload published when a knowledge
// document is uploaded and awaits chunking + embedding.
type PublishIngestDocumentMessage struct {
	DocumentId uuid.UUID `json:"document_id"`
}

type KnowledgeDocumentItem struct {
	Id          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	StoragePath string    `json:"storage_path"`
	ChunkCount  int64     `json:"chunk_count"`
}
