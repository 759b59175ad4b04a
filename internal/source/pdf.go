package source

import (
	"fmt"

	"github.com/ledongthuc/pdf"
)

// ExtractPDF extracts per-page plain text from a PDF file. Pages whose text
// extraction fails are kept as empty pages so page numbering stays aligned
// with the source document; the pipeline skips empty pages on its own.
func ExtractPDF(path string) (*Document, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf %s: %w", path, err)
	}
	defer f.Close()

	total := reader.NumPage()
	pages := make([]Page, 0, total)
	for i := 1; i <= total; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			pages = append(pages, Page{Number: i})
			continue
		}

		content, err := page.GetPlainText(nil)
		if err != nil {
			pages = append(pages, Page{Number: i})
			continue
		}
		pages = append(pages, Page{Number: i, Text: content})
	}

	return &Document{Pages: pages}, nil
}
