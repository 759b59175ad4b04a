// Package indexer drives the ingest pipeline: clean, chunk, embed, validate,
// persist, with per-chunk error isolation.
package indexer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/bull/semsearch/internal/embedding"
	"github.com/bull/semsearch/internal/source"
	"github.com/bull/semsearch/internal/storage"
	"github.com/bull/semsearch/internal/textutil"
)

const (
	// UnknownDocument and UnknownAuthor replace blank metadata.
	UnknownDocument = "Unknown Document"
	UnknownAuthor   = "Unknown Author"

	// DefaultMaxContentChars bounds the text sent to the embedding service
	// per chunk. Chunks over the limit are truncated before embedding so an
	// oversized payload cannot fail the call downstream.
	DefaultMaxContentChars = 8000
)

// Chunker is the chunking strategy capability. It never fails; degraded
// input still yields at least one chunk.
type Chunker interface {
	Chunk(ctx context.Context, document string) []string
}

// Embedder is the single-text embedding capability.
type Embedder interface {
	EmbedText(ctx context.Context, text string) ([]float32, error)
	Dimensions() int
}

// RecordStore persists document vectors by id.
type RecordStore interface {
	Upsert(ctx context.Context, record *storage.DocumentVector) error
}

// IndexResult contains statistics about a batch indexing operation.
type IndexResult struct {
	TotalDocs      int
	TotalChunks    int
	SuccessfulDocs int
	FailedDocs     []FailedDoc
	Duration       time.Duration
}

// FailedDoc represents a document that failed to index entirely.
type FailedDoc struct {
	Title  string
	Reason string
}

// Pipeline orchestrates indexing for one or more documents. Chunks are
// processed strictly in document order; embedding and upsert failures skip
// the affected chunk and never abort the document. Runs for different
// documents share no mutable state and may execute concurrently.
type Pipeline struct {
	chunker         Chunker
	embedder        Embedder
	store           RecordStore
	maxContentChars int
	logger          *slog.Logger
}

// NewPipeline creates an indexing pipeline. A zero maxContentChars selects
// DefaultMaxContentChars; a nil logger falls back to slog.Default.
func NewPipeline(chunker Chunker, embedder Embedder, store RecordStore, maxContentChars int, logger *slog.Logger) *Pipeline {
	if maxContentChars <= 0 {
		maxContentChars = DefaultMaxContentChars
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		chunker:         chunker,
		embedder:        embedder,
		store:           store,
		maxContentChars: maxContentChars,
		logger:          logger,
	}
}

// IndexDocument chunks, embeds and persists one document's text and returns
// the number of chunks persisted. Empty or whitespace-only text is a no-op.
// Cancellation is observed between chunks: remaining chunks are not started
// and already-persisted chunks stay persisted. Partial success is expected;
// the error is reserved for conditions that prevent the run from starting.
func (p *Pipeline) IndexDocument(ctx context.Context, rawText, title, author string) (int, error) {
	return p.indexText(ctx, rawText, title, author, 0)
}

// IndexPages indexes an extracted document page by page so each persisted
// chunk carries its source page number. Returns the total chunks persisted.
func (p *Pipeline) IndexPages(ctx context.Context, doc *source.Document) (int, error) {
	title := doc.Title
	author := doc.Author

	total := 0
	for _, page := range doc.Pages {
		if ctx.Err() != nil {
			p.logger.Info("indexing cancelled", "title", title, "persisted", total)
			return total, nil
		}
		count, err := p.indexText(ctx, page.Text, title, author, page.Number)
		if err != nil {
			return total, err
		}
		total += count
	}
	return total, nil
}

// IndexAll indexes a batch of documents with per-document isolation: one
// document's total failure is reported but does not stop the batch.
func (p *Pipeline) IndexAll(ctx context.Context, docs []*source.Document) (*IndexResult, error) {
	start := time.Now()
	result := &IndexResult{TotalDocs: len(docs)}

	for _, doc := range docs {
		if ctx.Err() != nil {
			p.logger.Info("batch indexing cancelled", "processed", result.SuccessfulDocs)
			break
		}

		count, err := p.IndexPages(ctx, doc)
		if err != nil {
			p.logger.Warn("failed to index document", "title", doc.Title, "error", err)
			result.FailedDocs = append(result.FailedDocs, FailedDoc{
				Title:  doc.Title,
				Reason: err.Error(),
			})
			continue
		}
		result.SuccessfulDocs++
		result.TotalChunks += count
	}

	result.Duration = time.Since(start)
	p.logger.Info("indexing complete",
		"successful", result.SuccessfulDocs,
		"failed", len(result.FailedDocs),
		"chunks", result.TotalChunks,
		"duration", result.Duration,
	)
	return result, nil
}

func (p *Pipeline) indexText(ctx context.Context, rawText, title, author string, page int) (int, error) {
	if textutil.Clean(rawText) == "" {
		return 0, nil
	}

	chunks := p.chunker.Chunk(ctx, rawText)
	p.logger.Debug("chunked document", "title", title, "chunks", len(chunks), "page", page)

	safeTitle := orUnknown(title, UnknownDocument)
	safeAuthor := orUnknown(author, UnknownAuthor)

	persisted := 0
	for i, chunk := range chunks {
		if ctx.Err() != nil {
			// Cooperative stop between chunks; what is persisted stays.
			p.logger.Info("indexing cancelled", "title", safeTitle, "persisted", persisted)
			return persisted, nil
		}

		cleaned := textutil.Clean(chunk)
		if cleaned == "" {
			continue
		}
		cleaned = truncateRunes(cleaned, p.maxContentChars)

		// Frame the embedded text with the document metadata so title and
		// author vocabulary participate in retrieval.
		searchText := fmt.Sprintf("Title: %s\nAuthor: %s\n\n%s", safeTitle, safeAuthor, cleaned)

		vector, err := p.embedder.EmbedText(ctx, searchText)
		if err != nil {
			p.logger.Warn("embedding failed, skipping chunk", "title", safeTitle, "chunk", i, "error", err)
			continue
		}

		if err := embedding.Validate(vector, p.embedder.Dimensions()); err != nil {
			p.logger.Warn("invalid embedding, skipping chunk", "title", safeTitle, "chunk", i, "error", err)
			continue
		}

		record := &storage.DocumentVector{
			ID:           uuid.Must(uuid.NewV7()).String(),
			DocumentName: safeTitle,
			Author:       safeAuthor,
			Page:         page,
			Content:      cleaned,
			Embedding:    vector,
		}

		if err := p.store.Upsert(ctx, record); err != nil {
			p.logger.Warn("upsert failed, skipping chunk", "title", safeTitle, "chunk", i, "error", err)
			continue
		}
		persisted++
	}

	return persisted, nil
}

func orUnknown(value, fallback string) string {
	if v := textutil.Clean(value); v != "" {
		return v
	}
	return fallback
}

func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
