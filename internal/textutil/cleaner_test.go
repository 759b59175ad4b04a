package textutil

import "testing"

// TestClean_RemovesControlCharacters verifies non-printable control characters
// are stripped while line breaks and tabs survive.
func TestClean_RemovesControlCharacters(t *testing.T) {
	input := "hello\x00world\x07 and\tmore\nlines\f"

	got := Clean(input)

	want := "helloworld and\tmore\nlines"
	if got != want {
		t.Errorf("Clean() = %q, want %q", got, want)
	}
}

func TestClean_TrimsWhitespace(t *testing.T) {
	got := Clean("  \n  some text  \r\n ")
	if got != "some text" {
		t.Errorf("Clean() = %q, want %q", got, "some text")
	}
}

func TestClean_EmptyInput(t *testing.T) {
	if got := Clean(""); got != "" {
		t.Errorf("Clean(\"\") = %q, want empty", got)
	}
	if got := Clean("\x00\x01\x02"); got != "" {
		t.Errorf("Clean(control-only) = %q, want empty", got)
	}
}

// TestClean_Pure verifies repeated calls return identical output.
func TestClean_Pure(t *testing.T) {
	input := "text with\x1bescape"
	first := Clean(input)
	second := Clean(input)
	if first != second {
		t.Errorf("Clean not deterministic: %q vs %q", first, second)
	}
}
