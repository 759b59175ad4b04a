package source

import (
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"go.abhg.dev/goldmark/toc"
)

var blankRuns = regexp.MustCompile(`\n{3,}`)

// ExtractMarkdown parses markdown and returns its plain text as a single
// page, with the first top-level heading as the document title when one
// exists. Formatting syntax is dropped; code block contents, list items and
// link text survive as text.
func ExtractMarkdown(src []byte) (*Document, error) {
	md := goldmark.New(
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
	)

	reader := text.NewReader(src)
	doc := md.Parser().Parse(reader)

	title := documentTitle(doc, src)
	plain := plainText(doc, src)

	return &Document{
		Title: title,
		Pages: []Page{{Number: 0, Text: plain}},
	}, nil
}

// documentTitle returns the first H1 heading's text, or empty.
func documentTitle(doc ast.Node, src []byte) string {
	tree, err := toc.Inspect(doc, src,
		toc.MinDepth(1),
		toc.MaxDepth(1),
		toc.Compact(true),
	)
	if err != nil || len(tree.Items) == 0 {
		return ""
	}
	return string(tree.Items[0].Title)
}

// plainText walks the AST collecting text content, separating block-level
// nodes with blank lines so paragraph structure survives for chunking.
func plainText(doc ast.Node, src []byte) string {
	var b strings.Builder

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		switch node := n.(type) {
		case *ast.Text:
			if entering {
				b.Write(node.Segment.Value(src))
				if node.SoftLineBreak() || node.HardLineBreak() {
					b.WriteByte('\n')
				}
			}
		case *ast.AutoLink:
			if entering {
				b.Write(node.URL(src))
			}
		case *ast.FencedCodeBlock:
			if entering {
				writeSegments(&b, src, node.Lines())
			} else {
				b.WriteString("\n\n")
			}
		case *ast.CodeBlock:
			if entering {
				writeSegments(&b, src, node.Lines())
			} else {
				b.WriteString("\n\n")
			}
		default:
			if !entering && n.Type() == ast.TypeBlock {
				b.WriteString("\n\n")
			}
		}
		return ast.WalkContinue, nil
	})

	collapsed := blankRuns.ReplaceAllString(b.String(), "\n\n")
	return strings.TrimSpace(collapsed)
}

func writeSegments(b *strings.Builder, src []byte, lines *text.Segments) {
	for i := 0; i < lines.Len(); i++ {
		segment := lines.At(i)
		b.Write(segment.Value(src))
	}
}
