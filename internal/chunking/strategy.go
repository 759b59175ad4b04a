package chunking

import (
	"context"
	"log/slog"

	"github.com/bull/semsearch/internal/textutil"
)

// Default chunking parameters, matching the recursive fallback configuration
// of the indexing service this replaces.
const (
	DefaultMaxChunkSize        = 1200
	DefaultOverlap             = 200
	DefaultSimilarityThreshold = 0.75
)

// Options configures a Chunker.
type Options struct {
	MaxChunkSize        int
	Overlap             int
	SimilarityThreshold float64
	Granularity         Granularity
}

// withDefaults fills zero-valued fields.
func (o Options) withDefaults() Options {
	if o.MaxChunkSize <= 0 {
		o.MaxChunkSize = DefaultMaxChunkSize
	}
	if o.Overlap <= 0 {
		o.Overlap = DefaultOverlap
	}
	if o.SimilarityThreshold <= 0 {
		o.SimilarityThreshold = DefaultSimilarityThreshold
	}
	if o.Granularity == "" {
		o.Granularity = GranularityParagraph
	}
	return o
}

// Chunker produces retrieval-sized chunks from raw document text. Semantic
// grouping is the primary path; when it errors or yields nothing the whole
// cleaned document goes through the windowed splitter instead. Semantic
// grouping depends on a remote embedding service that can be slow or
// unavailable, and a degraded split must never block indexing.
type Chunker struct {
	embed  EmbedFunc
	opts   Options
	logger *slog.Logger
}

// NewChunker creates a Chunker with the given embedding capability. A nil
// logger falls back to slog.Default.
func NewChunker(embed EmbedFunc, opts Options, logger *slog.Logger) *Chunker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Chunker{
		embed:  embed,
		opts:   opts.withDefaults(),
		logger: logger,
	}
}

// Chunk cleans the document and returns an ordered, non-empty sequence of
// chunks, each at most MaxChunkSize characters. Oversized semantic groups
// are hard-split by the windowed splitter, order preserved. Chunk never
// fails: embedding errors downgrade to the fallback splitter, and degenerate
// input yields exactly one chunk holding the cleaned text.
func (c *Chunker) Chunk(ctx context.Context, document string) []string {
	cleaned := textutil.Clean(document)

	chunks := c.semanticChunks(ctx, cleaned)
	if chunks == nil {
		chunks = textutil.Split(cleaned, c.opts.MaxChunkSize, c.opts.Overlap)
	}

	if len(chunks) == 0 {
		// The pipeline must never see zero chunks for a non-empty input.
		chunks = []string{cleaned}
	}
	return chunks
}

// semanticChunks runs the primary path. A nil return signals the caller to
// fall back; the grouper's error is inspected here rather than thrown
// through the call stack.
func (c *Chunker) semanticChunks(ctx context.Context, cleaned string) []string {
	if c.embed == nil {
		return nil
	}

	groups, err := GroupBlocks(ctx, cleaned, c.embed, c.opts.SimilarityThreshold, c.opts.Granularity)
	if err != nil {
		c.logger.Warn("semantic grouping unavailable, falling back to recursive split", "error", err)
		return nil
	}
	if len(groups) == 0 {
		c.logger.Warn("semantic grouping produced no groups, falling back to recursive split")
		return nil
	}

	var chunks []string
	for _, group := range groups {
		if len([]rune(group)) > c.opts.MaxChunkSize {
			chunks = append(chunks, textutil.Split(group, c.opts.MaxChunkSize, c.opts.Overlap)...)
			continue
		}
		chunks = append(chunks, group)
	}
	return chunks
}
