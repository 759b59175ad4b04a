package source

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LoadFile extracts a document from a local file, dispatching on extension:
// .pdf goes through the PDF extractor, .md/.markdown through the markdown
// extractor, anything else is read as plain text. The title falls back to
// the file name (without extension) when the content does not provide one.
func LoadFile(path string) (*Document, error) {
	var doc *Document

	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		extracted, err := ExtractPDF(path)
		if err != nil {
			return nil, err
		}
		doc = extracted

	case ".md", ".markdown":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		extracted, err := ExtractMarkdown(data)
		if err != nil {
			return nil, err
		}
		doc = extracted

	default:
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		doc = &Document{Pages: []Page{{Number: 0, Text: string(data)}}}
	}

	if doc.Title == "" {
		base := filepath.Base(path)
		doc.Title = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return doc, nil
}
