package retrieval

import (
	"context"

	"ai-scoping-be/internal/pkg/logger"
	"ai-scoping-be/internal/repository/contract"
	"ai-scoping-be/pkg/embedding"

	"github.com/google/uuid"
)

// Hit is one scored knowledge chunk.
type Hit struct {
	Id         uuid.UUID
	DocumentId uuid.UUID
	Title      string
	Chunk      string
	Score      float64
}

// Group collects the hits of one source document, in retrieval order.
type Group struct {
	DocumentId uuid.UUID
	Title      string
	Hits       []Hit
}

type Retriever struct {
	embedder  embedding.EmbeddingProvider
	chunkRepo contract.KnowledgeChunkRepository
	topK      int
	threshold float64
	log       logger.ILogger
}

func NewRetriever(embedder embedding.EmbeddingProvider, chunkRepo contract.KnowledgeChunkRepository, topK int, threshold float64, log logger.ILogger) *Retriever {
	if topK <= 0 {
		topK = 5
	}
	return &Retriever{
		embedder:  embedder,
		chunkRepo: chunkRepo,
		topK:      topK,
		threshold: threshold,
		log:       log,
	}
}

// Retrieve embeds the query and runs a cosine similarity search over the
// knowledge index. Embedding and search failures both degrade to an empty
// result rather than an error; scope generation continues without KB context.
func (r *Retriever) Retrieve(ctx context.Context, query string) ([]Group, error) {
	if query == "" {
		return nil, nil
	}

	resp, err := r.embedder.Generate(ctx, query, "retrieval_query")
	if err != nil {
		r.log.Warn("retrieval", "query embedding failed, continuing without KB context", map[string]interface{}{"error": err.Error()})
		return nil, nil
	}
	if resp == nil || len(resp.Embedding.Values) == 0 {
		r.log.Warn("retrieval", "query embedding came back empty, continuing without KB context", nil)
		return nil, nil
	}

	scored, err := r.chunkRepo.SearchSimilarWithScore(ctx, resp.Embedding.Values, r.topK, r.threshold)
	if err != nil {
		r.log.Warn("retrieval", "similarity search failed, continuing without KB context", map[string]interface{}{"error": err.Error()})
		return nil, nil
	}

	// Group by source document, preserving hit order both across and within
	// groups.
	var groups []Group
	index := map[uuid.UUID]int{}
	for _, s := range scored {
		hit := Hit{
			Id:         s.Chunk.Id,
			DocumentId: s.Chunk.DocumentId,
			Title:      s.Chunk.Title,
			Chunk:      s.Chunk.Chunk,
			Score:      s.Similarity,
		}
		if pos, ok := index[hit.DocumentId]; ok {
			groups[pos].Hits = append(groups[pos].Hits, hit)
			continue
		}
		index[hit.DocumentId] = len(groups)
		groups = append(groups, Group{
			DocumentId: hit.DocumentId,
			Title:      hit.Title,
			Hits:       []Hit{hit},
		})
	}
	return groups, nil
}

// Texts flattens grouped hits back into chunk texts in retrieval order.
func Texts(groups []Group) []string {
	var out []string
	for _, g := range groups {
		for _, h := range g.Hits {
			out = append(out, h.Chunk)
		}
	}
	return out
}
