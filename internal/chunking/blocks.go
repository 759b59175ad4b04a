// Package chunking splits cleaned document text into retrieval-sized chunks.
// The primary path groups adjacent text blocks by embedding similarity; a
// deterministic windowed splitter backs it up when embeddings are
// unavailable.
package chunking

import (
	"regexp"
	"strings"
)

// Granularity selects the atomic block unit for semantic grouping.
type Granularity string

const (
	// GranularityParagraph splits blocks on blank-line boundaries.
	GranularityParagraph Granularity = "paragraph"
	// GranularitySentence splits blocks on sentence-terminal punctuation.
	GranularitySentence Granularity = "sentence"
)

// TextBlock is an atomic unit of source text with its position in the
// document. Blocks only live for the duration of a grouping run.
type TextBlock struct {
	Index int
	Text  string
}

var (
	paragraphBreak = regexp.MustCompile(`\r?\n\s*\r?\n`)
	sentenceEnd    = regexp.MustCompile(`([.!?])\s+`)
)

// splitBlocks breaks text into ordered blocks at the chosen granularity.
// Empty segments are dropped; whitespace-only input yields zero blocks.
func splitBlocks(text string, granularity Granularity) []TextBlock {
	var parts []string
	switch granularity {
	case GranularitySentence:
		parts = splitSentences(text)
	default:
		parts = paragraphBreak.Split(text, -1)
	}

	blocks := make([]TextBlock, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		blocks = append(blocks, TextBlock{Index: len(blocks), Text: part})
	}
	return blocks
}

// splitSentences cuts after sentence-terminal punctuation followed by
// whitespace, keeping the punctuation with its sentence.
func splitSentences(text string) []string {
	marked := sentenceEnd.ReplaceAllString(text, "$1\x00")
	return strings.Split(marked, "\x00")
}
