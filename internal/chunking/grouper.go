package chunking

import (
	"context"
	"fmt"
	"math"
	"strings"
)

// EmbedFunc is the injected single-text embedding capability. The produced
// dimensionality is whatever the model emits; grouping only compares vectors
// against each other.
type EmbedFunc func(ctx context.Context, text string) ([]float32, error)

// embeddedBlock pairs a block with its embedding for the duration of one
// grouping run.
type embeddedBlock struct {
	block  TextBlock
	vector []float32
}

// GroupBlocks splits text into blocks at the chosen granularity, embeds each
// block, and merges adjacent blocks whose embedding similarity to the
// immediately preceding block meets threshold (inclusive). Blocks are
// embedded sequentially and in order; any embedding failure aborts the whole
// run, partial results are discarded. Zero blocks yields zero groups and the
// caller is expected to fall back.
func GroupBlocks(ctx context.Context, text string, embed EmbedFunc, threshold float64, granularity Granularity) ([]string, error) {
	blocks := splitBlocks(text, granularity)
	if len(blocks) == 0 {
		return nil, nil
	}

	embedded := make([]embeddedBlock, len(blocks))
	for i, block := range blocks {
		vector, err := embed(ctx, block.Text)
		if err != nil {
			return nil, fmt.Errorf("embed block %d: %w", block.Index, err)
		}
		embedded[i] = embeddedBlock{block: block, vector: vector}
	}

	separator := blockSeparator(granularity)

	var groups []string
	current := []string{embedded[0].block.Text}
	for i := 1; i < len(embedded); i++ {
		similarity := cosineSimilarity(embedded[i-1].vector, embedded[i].vector)
		if similarity >= threshold {
			current = append(current, embedded[i].block.Text)
			continue
		}
		groups = append(groups, strings.Join(current, separator))
		current = []string{embedded[i].block.Text}
	}
	groups = append(groups, strings.Join(current, separator))

	return groups, nil
}

func blockSeparator(granularity Granularity) string {
	if granularity == GranularitySentence {
		return " "
	}
	return "\n\n"
}

// cosineSimilarity returns the cosine of the angle between a and b. Vectors
// of mismatched length or zero magnitude score 0.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
