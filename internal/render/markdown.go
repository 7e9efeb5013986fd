package render

import (
	"os"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"

	"github.com/harrison/bookbinder/internal/assembler"
)

// newMarkdown builds the goldmark engine shared by every renderer: GFM,
// autolinks and task lists, heading ids, raw HTML passed through.
func newMarkdown() goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Linkify,
			extension.TaskList,
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithUnsafe(),
		),
	)
}

// anchorIDs generates heading ids with an anchor dialect. Unlike goldmark's
// default it never appends a counter to repeated ids, so every heading gets
// exactly the anchor the table of contents links to.
type anchorIDs struct {
	dialect assembler.Dialect
}

func newAnchorIDs(dialect assembler.Dialect) *anchorIDs {
	return &anchorIDs{dialect: dialect}
}

func (a *anchorIDs) Generate(value []byte, _ ast.NodeKind) []byte {
	return []byte(assembler.Anchor(string(value), a.dialect))
}

func (a *anchorIDs) Put([]byte) {}

// parseContext returns a parser context whose heading ids follow dialect.
func parseContext(dialect assembler.Dialect) parser.Context {
	return parser.NewContext(parser.WithIDs(newAnchorIDs(dialect)))
}

// parsedDocument is one markdown file and its AST.
type parsedDocument struct {
	Path   string
	Source []byte
	Root   ast.Node
}

// parseFiles reads and parses each path in order.
func parseFiles(md goldmark.Markdown, dialect assembler.Dialect, paths []string) ([]parsedDocument, error) {
	docs := make([]parsedDocument, 0, len(paths))
	for _, p := range paths {
		src, err := os.ReadFile(p)
		if err != nil {
			return nil, err
		}
		root := md.Parser().Parse(text.NewReader(src), parser.WithContext(parseContext(dialect)))
		docs = append(docs, parsedDocument{Path: p, Source: src, Root: root})
	}
	return docs, nil
}

// plainText concatenates the text content below n.
func plainText(n ast.Node, src []byte) string {
	var buf []byte
	_ = ast.Walk(n, func(child ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := child.(type) {
		case *ast.Text:
			buf = append(buf, t.Segment.Value(src)...)
			if t.SoftLineBreak() || t.HardLineBreak() {
				buf = append(buf, ' ')
			}
		case *ast.String:
			buf = append(buf, t.Value...)
		case *ast.CodeSpan:
			for c := t.FirstChild(); c != nil; c = c.NextSibling() {
				if seg, ok := c.(*ast.Text); ok {
					buf = append(buf, seg.Segment.Value(src)...)
				}
			}
			return ast.WalkSkipChildren, nil
		case *ast.AutoLink:
			buf = append(buf, t.Label(src)...)
		}
		return ast.WalkContinue, nil
	})
	return string(buf)
}

// headingAnchors returns the anchor of every heading in docs, in document
// order.
func headingAnchors(docs []parsedDocument, dialect assembler.Dialect) []string {
	var anchors []string
	for _, doc := range docs {
		_ = ast.Walk(doc.Root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
			if h, ok := n.(*ast.Heading); ok && entering {
				anchors = append(anchors, assembler.Anchor(plainText(h, doc.Source), dialect))
				return ast.WalkSkipChildren, nil
			}
			return ast.WalkContinue, nil
		})
	}
	return anchors
}

// blockLines returns the raw lines of a code or HTML block.
func blockLines(n ast.Node, src []byte) string {
	var buf []byte
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf = append(buf, seg.Value(src)...)
	}
	return string(buf)
}

type nopLogger struct{}

func (nopLogger) LogDebug(string) {}
func (nopLogger) LogInfo(string)  {}
func (nopLogger) LogWarn(string)  {}
