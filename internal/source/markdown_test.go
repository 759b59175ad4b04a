package source

import (
	"strings"
	"testing"
)

func TestExtractMarkdown_TitleFromHeading(t *testing.T) {
	input := `# The Document Title

First paragraph of body text.

## Section

Second paragraph.
`

	doc, err := ExtractMarkdown([]byte(input))
	if err != nil {
		t.Fatalf("ExtractMarkdown failed: %v", err)
	}

	if doc.Title != "The Document Title" {
		t.Errorf("Title = %q, want %q", doc.Title, "The Document Title")
	}
	if len(doc.Pages) != 1 {
		t.Fatalf("expected 1 page, got %d", len(doc.Pages))
	}
}

func TestExtractMarkdown_StripsFormatting(t *testing.T) {
	input := "Some **bold** and *italic* and a [link](https://example.com) here.\n"

	doc, err := ExtractMarkdown([]byte(input))
	if err != nil {
		t.Fatalf("ExtractMarkdown failed: %v", err)
	}

	text := doc.Pages[0].Text
	if strings.Contains(text, "**") || strings.Contains(text, "](") {
		t.Errorf("formatting syntax survived: %q", text)
	}
	for _, want := range []string{"bold", "italic", "link"} {
		if !strings.Contains(text, want) {
			t.Errorf("text missing %q: %q", want, text)
		}
	}
}

func TestExtractMarkdown_ParagraphsSeparated(t *testing.T) {
	input := "First paragraph.\n\nSecond paragraph.\n"

	doc, err := ExtractMarkdown([]byte(input))
	if err != nil {
		t.Fatalf("ExtractMarkdown failed: %v", err)
	}

	if !strings.Contains(doc.Pages[0].Text, "First paragraph.\n\nSecond paragraph.") {
		t.Errorf("paragraph boundary lost: %q", doc.Pages[0].Text)
	}
}

func TestExtractMarkdown_KeepsCodeBlockContent(t *testing.T) {
	input := "Intro.\n\n```go\nfunc main() {}\n```\n\nOutro.\n"

	doc, err := ExtractMarkdown([]byte(input))
	if err != nil {
		t.Fatalf("ExtractMarkdown failed: %v", err)
	}

	if !strings.Contains(doc.Pages[0].Text, "func main() {}") {
		t.Errorf("code content lost: %q", doc.Pages[0].Text)
	}
}

func TestExtractMarkdown_NoHeading(t *testing.T) {
	doc, err := ExtractMarkdown([]byte("Just a body with no heading.\n"))
	if err != nil {
		t.Fatalf("ExtractMarkdown failed: %v", err)
	}
	if doc.Title != "" {
		t.Errorf("Title = %q, want empty", doc.Title)
	}
}

func TestDocumentText_JoinsPages(t *testing.T) {
	doc := &Document{Pages: []Page{
		{Number: 1, Text: "page one"},
		{Number: 2, Text: "  "},
		{Number: 3, Text: "page three"},
	}}

	got := doc.Text()
	if got != "page one\n\npage three" {
		t.Errorf("Text() = %q", got)
	}
}
