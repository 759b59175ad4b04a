package retrieval

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/bull/semsearch/internal/storage"
)

// MaxHypothesisChars caps hypothesis length to bound embedding cost.
const MaxHypothesisChars = 1500

// ChatCompleter is the chat capability used for hypothesis generation.
type ChatCompleter interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// HydeService performs retrieval via hypothetical document embeddings: a
// chat model drafts a short hypothetical answer to the query and that answer
// is embedded instead of the raw query. Short queries often lack the
// vocabulary of the documents that answer them; the hypothesis narrows that
// gap at the cost of one extra model call. When hypothesis generation fails
// or comes back empty the raw query is embedded instead, so retrieval still
// works without the chat model.
type HydeService struct {
	embedder Embedder
	store    VectorSearcher
	chat     ChatCompleter
	prompts  Prompts
	maxChars int
	logger   *slog.Logger
}

// NewHydeService creates a HyDE retrieval service. A zero maxChars selects
// MaxHypothesisChars; a nil logger falls back to slog.Default.
func NewHydeService(embedder Embedder, store VectorSearcher, chat ChatCompleter, prompts Prompts, maxChars int, logger *slog.Logger) *HydeService {
	if maxChars <= 0 {
		maxChars = MaxHypothesisChars
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &HydeService{
		embedder: embedder,
		store:    store,
		chat:     chat,
		prompts:  prompts,
		maxChars: maxChars,
		logger:   logger,
	}
}

// Search generates a hypothesis for query, embeds it (or the raw query when
// generation fails), and returns the topK most similar records, highest
// score first. An empty query short-circuits to an empty result set.
func (h *HydeService) Search(ctx context.Context, query string, topK int, includeEmbedding bool) ([]*storage.SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return []*storage.SearchResult{}, nil
	}
	if topK <= 0 {
		topK = DefaultTopK
	}

	textToEmbed := query
	if hypothesis := h.generateHypothesis(ctx, query); hypothesis != "" {
		textToEmbed = hypothesis
	}

	vector, err := h.embedder.EmbedText(ctx, textToEmbed)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	results, err := h.store.SearchNearest(ctx, vector, topK, includeEmbedding)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	return results, nil
}

// generateHypothesis asks the chat model for a short reference passage
// answering the question. Returns empty on failure or empty response, which
// callers treat as "embed the raw query".
func (h *HydeService) generateHypothesis(ctx context.Context, question string) string {
	user := strings.ReplaceAll(h.prompts.Hyde, "{{question}}", question)

	response, err := h.chat.Complete(ctx, h.prompts.HydeSystem, user)
	if err != nil {
		h.logger.Warn("hypothesis generation failed, embedding raw query", "error", err)
		return ""
	}

	hypothesis := strings.TrimSpace(response)
	if hypothesis == "" {
		return ""
	}
	if runes := []rune(hypothesis); len(runes) > h.maxChars {
		hypothesis = string(runes[:h.maxChars])
	}
	return hypothesis
}
