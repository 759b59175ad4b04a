// Package source loads raw document text from local files (PDF, Markdown,
// plain text) and GitHub repositories. Extraction is plumbing: it produces
// text pages for the indexing pipeline and knows nothing about chunking or
// embeddings.
package source

import "strings"

// Page is one page of extracted text. Number is 1-based for paginated
// sources (PDF) and 0 for sources without page structure.
type Page struct {
	Number int
	Text   string
}

// Document is a raw extracted document handed to the indexing pipeline.
type Document struct {
	Title  string
	Author string
	Pages  []Page
}

// Text joins all pages into a single string.
func (d *Document) Text() string {
	if len(d.Pages) == 1 {
		return d.Pages[0].Text
	}
	parts := make([]string, 0, len(d.Pages))
	for _, p := range d.Pages {
		if strings.TrimSpace(p.Text) == "" {
			continue
		}
		parts = append(parts, p.Text)
	}
	return strings.Join(parts, "\n\n")
}
