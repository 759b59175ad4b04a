// Package textutil provides text normalization and deterministic splitting
// primitives used by the chunking and indexing layers.
package textutil

import (
	"strings"
	"unicode"
)

// Clean strips non-printable control characters from extracted text and trims
// surrounding whitespace. Line breaks, carriage returns, tabs and form feeds
// survive so paragraph structure is preserved for downstream chunking.
// Empty input yields empty output.
func Clean(s string) string {
	if s == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsControl(r) && r != '\n' && r != '\r' && r != '\t' && r != '\f' {
			continue
		}
		b.WriteRune(r)
	}

	return strings.TrimSpace(b.String())
}
