package textutil

import (
	"strings"
	"unicode"
)

// boundaryLookback is the fraction of the window searched backwards for a
// paragraph or whitespace boundary before hard-cutting mid-token.
const boundaryLookback = 5

// Split slides a window of maxChunkSize characters across text, advancing by
// maxChunkSize-overlap each step. Window edges prefer paragraph breaks, then
// any whitespace, within the trailing fifth of the window; otherwise the cut
// is mid-token. Every character of the input is covered by at least one
// window (leading/trailing whitespace trimmed per chunk aside), every chunk
// is at most maxChunkSize characters, and non-empty input yields at least
// one chunk. Deterministic, no I/O, cannot fail.
func Split(text string, maxChunkSize, overlap int) []string {
	if maxChunkSize <= 0 {
		maxChunkSize = 1
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= maxChunkSize {
		overlap = maxChunkSize - 1
	}

	runes := []rune(text)
	if len(runes) == 0 {
		return nil
	}

	var chunks []string
	start := 0
	for {
		end := start + maxChunkSize
		if end >= len(runes) {
			end = len(runes)
		} else {
			end = adjustBoundary(runes, start, end)
		}

		if chunk := strings.TrimSpace(string(runes[start:end])); chunk != "" {
			chunks = append(chunks, chunk)
		}

		if end >= len(runes) {
			break
		}

		next := end - overlap
		if next <= start {
			// Forward progress even when the overlap swallows the whole
			// advanced window.
			next = start + 1
		}
		start = next
	}

	if len(chunks) == 0 {
		// Whitespace-only input still yields one (empty-after-trim) chunk so
		// callers never observe zero chunks for non-empty input.
		chunks = []string{strings.TrimSpace(text)}
	}

	return chunks
}

// adjustBoundary searches backwards from end for a paragraph break, then any
// whitespace, within the lookback region. Returns end unchanged when no
// boundary is found.
func adjustBoundary(runes []rune, start, end int) int {
	window := end - start
	lookback := window / boundaryLookback
	if lookback < 1 {
		return end
	}
	limit := end - lookback

	// Paragraph boundary: "\n\n" inside the lookback region.
	for i := end - 1; i > limit; i-- {
		if runes[i] == '\n' && runes[i-1] == '\n' {
			return i + 1
		}
	}

	// Any whitespace.
	for i := end - 1; i > limit; i-- {
		if unicode.IsSpace(runes[i]) {
			return i + 1
		}
	}

	return end
}
