package render

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/fumiama/go-docx"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"

	"github.com/harrison/bookbinder/internal/assembler"
	"github.com/harrison/bookbinder/internal/fileutil"
)

const (
	emuPerInch = 914400
	// A4 width less one inch margins on both sides.
	docxContentWidth = int64(6.27 * emuPerInch)
	docxCodeFont     = "Courier New"
	docxCodeShade    = "F6F8FA"
	docxLinkColor    = "0969DA"
)

// Heading sizes in points for levels 1 through 6.
var docxHeadingSizes = []int{20, 16, 14, 12, 11, 11}

// DOCXStats summarizes one DOCX render.
type DOCXStats struct {
	Paragraphs int
	Images     int
}

// DOCXRenderer lays out markdown documents into a single Word document.
type DOCXRenderer struct {
	md      goldmark.Markdown
	dialect assembler.Dialect
	logger  assembler.Logger
}

// NewDOCXRenderer creates a renderer.
func NewDOCXRenderer(logger assembler.Logger) *DOCXRenderer {
	if logger == nil {
		logger = nopLogger{}
	}
	return &DOCXRenderer{
		md:      newMarkdown(),
		dialect: assembler.PDFDialect,
		logger:  logger,
	}
}

// Render concatenates docs in order and writes the result to output. Each
// top level heading after the first starts a new page.
func (r *DOCXRenderer) Render(docs []string, output string) (*DOCXStats, error) {
	if len(docs) == 0 {
		return nil, ErrNoDocuments
	}

	parsed, err := parseFiles(r.md, r.dialect, docs)
	if err != nil {
		return nil, fmt.Errorf("failed to read markdown: %w", err)
	}

	w := &docxWriter{
		doc:    docx.New().WithDefaultTheme().WithA4Page(),
		logger: r.logger,
	}
	for _, doc := range parsed {
		w.src = doc.Source
		w.dir = filepath.Dir(doc.Path)
		for n := doc.Root.FirstChild(); n != nil; n = n.NextSibling() {
			if err := w.block(n, 0); err != nil {
				return &w.stats, err
			}
		}
	}

	if err := fileutil.EnsureDir(filepath.Dir(output)); err != nil {
		return &w.stats, err
	}
	f, err := os.Create(output)
	if err != nil {
		return &w.stats, fmt.Errorf("failed to create %s: %w", output, err)
	}
	if _, err := w.doc.WriteTo(f); err != nil {
		f.Close()
		return &w.stats, fmt.Errorf("failed to write %s: %w", output, err)
	}
	if err := f.Close(); err != nil {
		return &w.stats, fmt.Errorf("failed to close %s: %w", output, err)
	}
	return &w.stats, nil
}

type docxWriter struct {
	doc    *docx.Docx
	para   *docx.Paragraph
	logger assembler.Logger

	bold, italic, mono int
	size               int
	seenChapter        bool

	src   []byte
	dir   string
	stats DOCXStats
}

func (w *docxWriter) paragraph() *docx.Paragraph {
	w.para = w.doc.AddParagraph()
	w.stats.Paragraphs++
	return w.para
}

func (w *docxWriter) block(n ast.Node, depth int) error {
	switch b := n.(type) {
	case *ast.Heading:
		w.heading(b)
	case *ast.Paragraph, *ast.TextBlock:
		w.paragraph()
		return w.inlines(b)
	case *ast.List:
		return w.list(b, depth)
	case *ast.FencedCodeBlock, *ast.CodeBlock:
		for _, line := range strings.Split(strings.TrimRight(blockLines(n, w.src), "\n"), "\n") {
			w.paragraph().AddText(line).Font(docxCodeFont, docxCodeFont, docxCodeFont, "").Shade("clear", "auto", docxCodeShade)
		}
	case *ast.Blockquote:
		w.italic++
		defer func() { w.italic-- }()
		for c := b.FirstChild(); c != nil; c = c.NextSibling() {
			if err := w.block(c, depth); err != nil {
				return err
			}
		}
	case *ast.ThematicBreak:
		w.paragraph().Justification("center").AddText("* * *")
	case *east.Table:
		for row := b.FirstChild(); row != nil; row = row.NextSibling() {
			var cells []string
			for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
				cells = append(cells, plainText(cell, w.src))
			}
			run := w.paragraph().AddText(strings.Join(cells, " | "))
			if _, header := row.(*east.TableHeader); header {
				run.Bold()
			}
		}
	case *ast.HTMLBlock:
		w.logger.LogDebug("Skipping raw HTML block in DOCX output")
	default:
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			if err := w.block(c, depth); err != nil {
				return err
			}
		}
	}
	return nil
}

func (w *docxWriter) heading(h *ast.Heading) {
	p := w.paragraph()
	if h.Level == 1 {
		if w.seenChapter {
			p.AddPageBreaks()
		}
		w.seenChapter = true
	}
	level := h.Level
	if level > len(docxHeadingSizes) {
		level = len(docxHeadingSizes)
	}
	p.AddText(plainText(h, w.src)).Bold().Size(halfPoints(docxHeadingSizes[level-1]))
}

func (w *docxWriter) list(l *ast.List, depth int) error {
	number := l.Start
	for item := l.FirstChild(); item != nil; item = item.NextSibling() {
		marker := "•"
		if l.IsOrdered() {
			marker = strconv.Itoa(number) + "."
			number++
		}
		prefix := strings.Repeat("    ", depth) + marker + " "

		first := true
		for c := item.FirstChild(); c != nil; c = c.NextSibling() {
			if nested, ok := c.(*ast.List); ok {
				if err := w.list(nested, depth+1); err != nil {
					return err
				}
				continue
			}
			if !first {
				if err := w.block(c, depth+1); err != nil {
					return err
				}
				continue
			}
			first = false
			w.paragraph().AddText(prefix)
			if err := w.inlines(c); err != nil {
				return err
			}
		}
	}
	return nil
}

func (w *docxWriter) inlines(n ast.Node) error {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if err := w.inline(c); err != nil {
			return err
		}
	}
	return nil
}

func (w *docxWriter) inline(n ast.Node) error {
	switch t := n.(type) {
	case *ast.Text:
		text := string(t.Segment.Value(w.src))
		if t.SoftLineBreak() || t.HardLineBreak() {
			text += " "
		}
		w.text(text)
	case *ast.String:
		w.text(string(t.Value))
	case *ast.Emphasis:
		if t.Level >= 2 {
			w.bold++
			defer func() { w.bold-- }()
		} else {
			w.italic++
			defer func() { w.italic-- }()
		}
		return w.inlines(t)
	case *ast.CodeSpan:
		w.mono++
		w.text(plainText(t, w.src))
		w.mono--
	case *ast.Link:
		dest := string(t.Destination)
		if u, err := url.Parse(dest); err == nil && u.IsAbs() {
			w.para.AddLink(plainText(t, w.src), dest)
			return nil
		}
		w.bold++
		defer func() { w.bold-- }()
		return w.inlines(t)
	case *ast.AutoLink:
		w.para.AddLink(string(t.Label(w.src)), string(t.URL(w.src)))
	case *ast.Image:
		return w.image(t)
	case *east.TaskCheckBox:
		if t.IsChecked {
			w.text("[x] ")
		} else {
			w.text("[ ] ")
		}
	case *ast.RawHTML:
	default:
		return w.inlines(n)
	}
	return nil
}

func (w *docxWriter) text(s string) {
	if s == "" {
		return
	}
	run := w.para.AddText(s)
	if w.bold > 0 {
		run.Bold()
	}
	if w.italic > 0 {
		run.Italic()
	}
	if w.mono > 0 {
		run.Font(docxCodeFont, docxCodeFont, docxCodeFont, "").Shade("clear", "auto", docxCodeShade)
	}
}

func (w *docxWriter) image(img *ast.Image) error {
	dest := string(img.Destination)
	path := dest
	if unescaped, err := url.PathUnescape(dest); err == nil {
		path = unescaped
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(w.dir, filepath.FromSlash(path))
	}

	run, err := w.para.AddInlineDrawingFrom(path)
	if err != nil {
		w.logger.LogWarn(fmt.Sprintf("Image %s cannot be embedded in DOCX: %v", dest, err))
		w.italic++
		w.text(plainText(img, w.src))
		w.italic--
		return nil
	}

	if drawing, ok := run.Children[0].(*docx.Drawing); ok && drawing.Inline != nil && drawing.Inline.Extent != nil {
		cx, cy := drawing.Inline.Extent.CX, drawing.Inline.Extent.CY
		if cx > docxContentWidth {
			drawing.Inline.Size(docxContentWidth, cy*docxContentWidth/cx)
		}
	}
	w.stats.Images++
	return nil
}

// halfPoints formats a point size as the half-point string DOCX expects.
func halfPoints(points int) string {
	return strconv.Itoa(points * 2)
}
