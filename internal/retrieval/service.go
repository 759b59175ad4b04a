// Package retrieval answers natural-language queries by nearest-neighbor
// search over the persisted document vectors, optionally expanding the query
// through a hypothetical answer (HyDE) first.
package retrieval

import (
	"context"
	"fmt"
	"strings"

	"github.com/bull/semsearch/internal/storage"
)

// DefaultTopK is the result count used when the caller passes zero.
const DefaultTopK = 5

// Embedder is the single-text embedding capability.
type Embedder interface {
	EmbedText(ctx context.Context, text string) ([]float32, error)
}

// VectorSearcher issues nearest-neighbor queries against the collection.
type VectorSearcher interface {
	SearchNearest(ctx context.Context, vector []float32, topK int, includeEmbedding bool) ([]*storage.SearchResult, error)
}

// Service embeds a query and returns the topK most similar records, highest
// score first. Ordering and tie-breaks are the store's.
type Service struct {
	embedder Embedder
	store    VectorSearcher
}

// NewService creates a retrieval service.
func NewService(embedder Embedder, store VectorSearcher) *Service {
	return &Service{
		embedder: embedder,
		store:    store,
	}
}

// Search performs a semantic similarity search for query. An empty or
// whitespace-only query short-circuits to an empty result set without any
// embedding or search calls. Stored embeddings are omitted from results
// unless includeEmbedding is set. Embedding or search failures propagate as
// a single error.
func (s *Service) Search(ctx context.Context, query string, topK int, includeEmbedding bool) ([]*storage.SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return []*storage.SearchResult{}, nil
	}
	if topK <= 0 {
		topK = DefaultTopK
	}

	vector, err := s.embedder.EmbedText(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	results, err := s.store.SearchNearest(ctx, vector, topK, includeEmbedding)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	return results, nil
}
