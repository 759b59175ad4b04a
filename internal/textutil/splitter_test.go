package textutil

import (
	"strings"
	"testing"
)

// TestSplit_BoundedChunkSize verifies no chunk ever exceeds the window size.
func TestSplit_BoundedChunkSize(t *testing.T) {
	text := strings.Repeat("lorem ipsum dolor sit amet ", 200)

	chunks := Split(text, 100, 20)

	if len(chunks) == 0 {
		t.Fatal("expected at least one chunk")
	}
	for i, chunk := range chunks {
		if len([]rune(chunk)) > 100 {
			t.Errorf("chunk %d has %d chars, want <= 100", i, len([]rune(chunk)))
		}
	}
}

// TestSplit_WindowedCoverage verifies the fixed-step windows cover the whole
// input with the configured overlap when no break boundaries exist.
func TestSplit_WindowedCoverage(t *testing.T) {
	// 3000 characters with no whitespace: windows never shift, so chunk
	// positions are exact.
	text := strings.Repeat("abcdefghij", 300)

	chunks := Split(text, 1000, 200)

	if len(chunks) != 4 {
		t.Fatalf("expected 4 chunks, got %d", len(chunks))
	}

	// Consecutive chunks share exactly 200 characters.
	for i := 1; i < len(chunks); i++ {
		prev := []rune(chunks[i-1])
		tail := string(prev[len(prev)-200:])
		if !strings.HasPrefix(chunks[i], tail) {
			t.Errorf("chunk %d does not start with the previous chunk's 200-char tail", i)
		}
	}

	// Non-overlapping remainders reconstruct the original text.
	var rebuilt strings.Builder
	rebuilt.WriteString(chunks[0])
	for i := 1; i < len(chunks); i++ {
		rebuilt.WriteString(chunks[i][200:])
	}
	if rebuilt.String() != text {
		t.Error("concatenated chunks (overlap removed) do not reconstruct input")
	}
}

func TestSplit_PrefersWhitespaceBoundary(t *testing.T) {
	// A space sits inside the lookback region of the first window; the cut
	// should land there instead of mid-word.
	text := strings.Repeat("a", 90) + " " + strings.Repeat("b", 100)

	chunks := Split(text, 100, 0)

	if len(chunks) < 2 {
		t.Fatalf("expected at least 2 chunks, got %d", len(chunks))
	}
	if chunks[0] != strings.Repeat("a", 90) {
		t.Errorf("first chunk = %q, want the 90 a's before the space", chunks[0])
	}
}

func TestSplit_ShortInputSingleChunk(t *testing.T) {
	chunks := Split("short text", 1000, 200)
	if len(chunks) != 1 || chunks[0] != "short text" {
		t.Errorf("Split(short) = %v, want single unmodified chunk", chunks)
	}
}

func TestSplit_EmptyInput(t *testing.T) {
	if chunks := Split("", 100, 10); chunks != nil {
		t.Errorf("Split(\"\") = %v, want nil", chunks)
	}
}

func TestSplit_Deterministic(t *testing.T) {
	text := strings.Repeat("the quick brown fox jumps over the lazy dog. ", 50)
	first := Split(text, 120, 30)
	second := Split(text, 120, 30)
	if len(first) != len(second) {
		t.Fatalf("chunk counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("chunk %d differs between runs", i)
		}
	}
}

// TestSplit_DegenerateOverlap verifies forward progress when overlap is
// clamped against the chunk size.
func TestSplit_DegenerateOverlap(t *testing.T) {
	chunks := Split(strings.Repeat("x", 50), 10, 10)
	if len(chunks) == 0 {
		t.Fatal("expected chunks for degenerate overlap")
	}
	for i, chunk := range chunks {
		if len(chunk) > 10 {
			t.Errorf("chunk %d exceeds max size", i)
		}
	}
}
