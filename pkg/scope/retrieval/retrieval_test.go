package retrieval

import (
	"context"
	"errors"
	"testing"

	"ai-scoping-be/internal/entity"
	"ai-scoping-be/internal/pkg/logger"
	"ai-scoping-be/internal/repository/contract"
	"ai-scoping-be/internal/repository/specification"
	"ai-scoping-be/pkg/embedding"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubEmbedder struct {
	resp *embedding.EmbeddingResponse
	err  error
}

func (s *stubEmbedder) Generate(ctx context.Context, text string, taskType string) (*embedding.EmbeddingResponse, error) {
	return s.resp, s.err
}

type stubChunkRepo struct {
	scored []*contract.ScoredKnowledgeChunk
	err    error
}

func (s *stubChunkRepo) Create(ctx context.Context, chunk *entity.KnowledgeChunk) error { return nil }
func (s *stubChunkRepo) CreateBulk(ctx context.Context, chunks []*entity.KnowledgeChunk) error {
	return nil
}
func (s *stubChunkRepo) DeleteByDocumentIdUnscoped(ctx context.Context, documentId uuid.UUID) error {
	return nil
}
func (s *stubChunkRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.KnowledgeChunk, error) {
	return nil, nil
}
func (s *stubChunkRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return 0, nil
}
func (s *stubChunkRepo) SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int, threshold float64) ([]*contract.ScoredKnowledgeChunk, error) {
	return s.scored, s.err
}

func testVector() *embedding.EmbeddingResponse {
	return &embedding.EmbeddingResponse{
		Embedding: embedding.EmbeddingResponseEmbedding{Values: []float32{0.1, 0.2}},
	}
}

func TestRetrieveGroupsByDocument(t *testing.T) {
	docA := uuid.New()
	docB := uuid.New()
	repo := &stubChunkRepo{scored: []*contract.ScoredKnowledgeChunk{
		{Chunk: &entity.KnowledgeChunk{Id: uuid.New(), DocumentId: docA, Title: "Playbook", Chunk: "alpha"}, Similarity: 0.9},
		{Chunk: &entity.KnowledgeChunk{Id: uuid.New(), DocumentId: docB, Title: "Rates", Chunk: "bravo"}, Similarity: 0.8},
		{Chunk: &entity.KnowledgeChunk{Id: uuid.New(), DocumentId: docA, Title: "Playbook", Chunk: "charlie"}, Similarity: 0.7},
	}}
	r := NewRetriever(&stubEmbedder{resp: testVector()}, repo, 5, 0.3, logger.NewZapLogger("", false))

	groups, err := r.Retrieve(context.Background(), "payments platform")
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, docA, groups[0].DocumentId)
	assert.Equal(t, []string{"alpha", "charlie"}, []string{groups[0].Hits[0].Chunk, groups[0].Hits[1].Chunk})
	assert.Equal(t, []string{"alpha", "charlie", "bravo"}, Texts(groups))
}

func TestRetrieveDegradesOnEmbeddingFailure(t *testing.T) {
	r := NewRetriever(&stubEmbedder{err: errors.New("ollama down")}, &stubChunkRepo{}, 5, 0.3, logger.NewZapLogger("", false))

	groups, err := r.Retrieve(context.Background(), "payments platform")
	assert.NoError(t, err)
	assert.Nil(t, groups)
}

func TestRetrieveDegradesOnSearchFailure(t *testing.T) {
	repo := &stubChunkRepo{err: errors.New("pgvector: connection reset")}
	r := NewRetriever(&stubEmbedder{resp: testVector()}, repo, 5, 0.3, logger.NewZapLogger("", false))

	groups, err := r.Retrieve(context.Background(), "payments platform")
	assert.NoError(t, err)
	assert.Nil(t, groups)
}

func TestRetrieveEmptyQuery(t *testing.T) {
	r := NewRetriever(&stubEmbedder{resp: testVector()}, &stubChunkRepo{}, 5, 0.3, logger.NewZapLogger("", false))

	groups, err := r.Retrieve(context.Background(), "")
	assert.NoError(t, err)
	assert.Nil(t, groups)
}
