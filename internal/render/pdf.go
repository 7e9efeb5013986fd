package render

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"

	"github.com/harrison/bookbinder/internal/assembler"
	"github.com/harrison/bookbinder/internal/fileutil"
)

const (
	mmPerPoint  = 25.4 / 72
	listIndent  = 6.0
	quoteIndent = 6.0
)

// Image types fpdf can embed.
var pdfImageTypes = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
}

// ErrNoDocuments is returned when a PDF render is asked for with no input.
var ErrNoDocuments = errors.New("no markdown documents to render")

// PDFStats summarizes one PDF render.
type PDFStats struct {
	Headings      int
	Images        int
	InternalLinks int
}

// PDFRenderer lays out markdown documents into a single PDF.
type PDFRenderer struct {
	// Title is stored in the document metadata.
	Title string

	style   *PDFStyle
	dialect assembler.Dialect
	md      goldmark.Markdown
	logger  assembler.Logger
}

// NewPDFRenderer creates a renderer using style; nil selects the built-in
// style sheet. Heading anchors follow the PDF dialect.
func NewPDFRenderer(style *PDFStyle, logger assembler.Logger) *PDFRenderer {
	if style == nil {
		style = DefaultPDFStyle()
	}
	if logger == nil {
		logger = nopLogger{}
	}
	return &PDFRenderer{
		style:   style,
		dialect: assembler.PDFDialect,
		md:      newMarkdown(),
		logger:  logger,
	}
}

// Render concatenates docs in order and writes the result to output.
// Headings become outline bookmarks, links to a known #anchor become
// internal links, and every other link is set in bold.
func (r *PDFRenderer) Render(docs []string, output string) (*PDFStats, error) {
	if len(docs) == 0 {
		return nil, ErrNoDocuments
	}

	parsed, err := parseFiles(r.md, r.dialect, docs)
	if err != nil {
		return nil, fmt.Errorf("failed to read markdown: %w", err)
	}

	w := newPDFWriter(r.style, r.dialect, r.logger)
	if r.Title != "" {
		w.pdf.SetTitle(r.Title, true)
	}
	w.declareAnchors(headingAnchors(parsed, r.dialect))
	w.pdf.AddPage()

	for _, doc := range parsed {
		w.document(doc)
		if w.pdf.Err() {
			break
		}
	}

	if err := w.pdf.Error(); err != nil {
		return &w.stats, fmt.Errorf("failed to lay out pdf: %w", err)
	}
	if err := fileutil.EnsureDir(filepath.Dir(output)); err != nil {
		return &w.stats, err
	}
	if err := w.pdf.OutputFileAndClose(output); err != nil {
		return &w.stats, fmt.Errorf("failed to write %s: %w", output, err)
	}
	return &w.stats, nil
}

// pdfWriter holds layout state while walking the markdown ASTs.
type pdfWriter struct {
	pdf     *fpdf.Fpdf
	style   *PDFStyle
	dialect assembler.Dialect
	logger  assembler.Logger

	translate  func(string) string
	bodyFamily string
	bodyUTF8   bool
	bodyFaces  map[string]bool
	codeFamily string
	codeUTF8   bool
	codeFaces  map[string]bool

	links   map[string]int
	placed  map[string]bool
	outline []int

	bold, italic, mono int
	size               float64
	baseLeft           float64
	indent             float64

	src   []byte
	dir   string
	stats PDFStats
}

func newPDFWriter(style *PDFStyle, dialect assembler.Dialect, logger assembler.Logger) *pdfWriter {
	pdf := fpdf.New(style.orientation(), "mm", style.Paper, "")
	w := &pdfWriter{
		pdf:      pdf,
		style:    style,
		dialect:  dialect,
		logger:   logger,
		links:    make(map[string]int),
		placed:   make(map[string]bool),
		size:     style.Font.Size,
		baseLeft: style.Margins.Left,
	}

	pdf.SetCreator("bookbinder", true)
	pdf.SetMargins(style.Margins.Left, style.Margins.Top, style.Margins.Right)
	pdf.SetAutoPageBreak(true, style.Margins.Bottom)
	pdf.SetTextColor(style.TextColor[0], style.TextColor[1], style.TextColor[2])
	w.setupFonts()

	if style.PageNumbers {
		pdf.AliasNbPages("")
		pdf.SetFooterFunc(func() {
			pdf.SetY(-style.Margins.Bottom * 0.75)
			pdf.SetFont(w.bodyFamily, "", style.Font.Size*0.8)
			pdf.CellFormat(0, 6, fmt.Sprintf("%d / {nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
		})
	}
	return w
}

func (w *pdfWriter) setupFonts() {
	w.translate = w.pdf.UnicodeTranslatorFromDescriptor("")

	w.bodyFamily, w.bodyUTF8, w.bodyFaces = w.registerFamily("body", w.style.Font)
	w.codeFamily, w.codeUTF8, w.codeFaces = w.registerFamily("code", w.style.CodeFont)
	w.applyFont()
}

// registerFamily embeds the TrueType faces of font under name, or falls
// back to the named core font with all four faces.
func (w *pdfWriter) registerFamily(name string, font FontStyle) (string, bool, map[string]bool) {
	if !font.Embedded() {
		return font.Family, false, map[string]bool{"": true, "B": true, "I": true, "BI": true}
	}

	faces := map[string]bool{}
	for style, file := range map[string]string{
		"":   font.Regular,
		"B":  font.Bold,
		"I":  font.Italic,
		"BI": font.BoldItalic,
	} {
		if file == "" {
			continue
		}
		w.pdf.AddUTF8Font(name, style, file)
		faces[style] = true
	}
	return name, true, faces
}

// declareAnchors reserves an internal link for every distinct anchor so
// links can be written before the heading they point at.
func (w *pdfWriter) declareAnchors(anchors []string) {
	for _, anchor := range anchors {
		if _, ok := w.links[anchor]; !ok {
			w.links[anchor] = w.pdf.AddLink()
		}
	}
}

func (w *pdfWriter) document(doc parsedDocument) {
	w.src = doc.Source
	w.dir = filepath.Dir(doc.Path)
	for n := doc.Root.FirstChild(); n != nil; n = n.NextSibling() {
		w.block(n)
	}
}

func (w *pdfWriter) block(n ast.Node) {
	switch b := n.(type) {
	case *ast.Heading:
		w.heading(b)
	case *ast.Paragraph:
		w.inlines(b)
		w.pdf.Ln(w.lineHeight())
		w.pdf.Ln(w.style.ParagraphSpacing)
	case *ast.TextBlock:
		w.inlines(b)
		w.pdf.Ln(w.lineHeight())
	case *ast.List:
		w.list(b)
	case *ast.FencedCodeBlock, *ast.CodeBlock:
		w.codeBlock(n)
	case *ast.Blockquote:
		w.blockquote(b)
	case *ast.ThematicBreak:
		w.rule()
	case *east.Table:
		w.table(b)
	case *ast.HTMLBlock:
		w.logger.LogDebug("Skipping raw HTML block in PDF output")
	default:
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			w.block(c)
		}
	}
}

func (w *pdfWriter) heading(h *ast.Heading) {
	title := plainText(h, w.src)

	if h.Level == 1 && w.style.PageBreakBeforeChapter && w.pageHasContent() {
		w.pdf.AddPage()
	}

	w.size = w.style.headingSize(h.Level)
	w.bold++
	w.applyFont()

	// Keep the heading with at least one line of what follows.
	_, pageHeight := w.pdf.GetPageSize()
	if w.pdf.GetY()+3*w.lineHeight() > pageHeight-w.style.Margins.Bottom {
		w.pdf.AddPage()
	}

	w.pdf.Ln(w.style.ParagraphSpacing)
	anchor := assembler.Anchor(title, w.dialect)
	if id, ok := w.links[anchor]; ok && !w.placed[anchor] {
		w.pdf.SetLink(id, -1, -1)
		w.placed[anchor] = true
	}
	w.bookmark(title, h.Level)
	w.pdf.MultiCell(0, w.lineHeight(), w.encode(title), "", "L", false)

	w.bold--
	w.size = w.style.Font.Size
	w.applyFont()
	w.pdf.Ln(w.style.ParagraphSpacing / 2)
	w.stats.Headings++
}

// bookmark adds an outline entry and returns its outline depth. Outline
// levels may only deepen one step at a time, so depth counts the open
// headings above this one rather than using the heading level directly.
func (w *pdfWriter) bookmark(title string, level int) int {
	for len(w.outline) > 0 && w.outline[len(w.outline)-1] >= level {
		w.outline = w.outline[:len(w.outline)-1]
	}
	depth := len(w.outline)
	w.outline = append(w.outline, level)
	w.pdf.Bookmark(w.encode(title), depth, -1)
	return depth
}

func (w *pdfWriter) inlines(n ast.Node) {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		w.inline(c)
	}
}

func (w *pdfWriter) inline(n ast.Node) {
	switch t := n.(type) {
	case *ast.Text:
		w.write(string(t.Segment.Value(w.src)))
		if t.HardLineBreak() {
			w.pdf.Ln(w.lineHeight())
		} else if t.SoftLineBreak() {
			w.write(" ")
		}
	case *ast.String:
		w.write(string(t.Value))
	case *ast.Emphasis:
		if t.Level >= 2 {
			w.bold++
			w.applyFont()
			w.inlines(t)
			w.bold--
		} else {
			w.italic++
			w.applyFont()
			w.inlines(t)
			w.italic--
		}
		w.applyFont()
	case *ast.CodeSpan:
		w.mono++
		w.applyFont()
		w.write(plainText(t, w.src))
		w.mono--
		w.applyFont()
	case *ast.Link:
		w.link(string(t.Destination), t)
	case *ast.AutoLink:
		w.bold++
		w.applyFont()
		w.write(string(t.Label(w.src)))
		w.bold--
		w.applyFont()
	case *ast.Image:
		w.image(t)
	case *east.TaskCheckBox:
		if t.IsChecked {
			w.write("[x] ")
		} else {
			w.write("[ ] ")
		}
	case *ast.RawHTML:
	default:
		w.inlines(n)
	}
}

func (w *pdfWriter) link(dest string, n ast.Node) {
	if strings.HasPrefix(dest, "#") {
		anchor := dest[1:]
		if unescaped, err := url.PathUnescape(anchor); err == nil {
			anchor = unescaped
		}
		if id, ok := w.links[anchor]; ok {
			c := w.style.LinkColor
			w.pdf.SetTextColor(c[0], c[1], c[2])
			w.pdf.WriteLinkID(w.lineHeight(), w.encode(plainText(n, w.src)), id)
			c = w.style.TextColor
			w.pdf.SetTextColor(c[0], c[1], c[2])
			w.stats.InternalLinks++
			return
		}
	}

	w.bold++
	w.applyFont()
	w.inlines(n)
	w.bold--
	w.applyFont()
}

func (w *pdfWriter) image(img *ast.Image) {
	dest := string(img.Destination)
	path := dest
	if unescaped, err := url.PathUnescape(dest); err == nil {
		path = unescaped
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(w.dir, filepath.FromSlash(path))
	}

	alt := plainText(img, w.src)
	if !pdfImageTypes[strings.ToLower(filepath.Ext(path))] {
		w.logger.LogWarn(fmt.Sprintf("Image %s cannot be embedded in PDF, using its alt text", dest))
		w.altText(alt)
		return
	}
	if _, err := os.Stat(path); err != nil {
		w.logger.LogWarn(fmt.Sprintf("Image %s not found, using its alt text", dest))
		w.altText(alt)
		return
	}

	if w.pdf.GetX() > w.left()+0.1 {
		w.pdf.Ln(w.lineHeight())
	}

	options := fpdf.ImageOptions{ReadDpi: true}
	info := w.pdf.RegisterImageOptions(path, options)
	if info == nil || w.pdf.Err() {
		return
	}

	width, height := info.Extent()
	if limit := w.contentWidth(); width > limit {
		height = height * limit / width
		width = limit
	}
	_, pageHeight := w.pdf.GetPageSize()
	if limit := pageHeight - w.style.Margins.Top - w.style.Margins.Bottom; height > limit {
		width = width * limit / height
		height = limit
	}
	w.pdf.ImageOptions(path, -1, 0, width, height, true, options, 0, "")
	w.stats.Images++
}

func (w *pdfWriter) altText(alt string) {
	if alt == "" {
		return
	}
	w.italic++
	w.applyFont()
	w.write(alt)
	w.italic--
	w.applyFont()
}

func (w *pdfWriter) list(l *ast.List) {
	number := l.Start
	w.pushIndent(listIndent)
	for item := l.FirstChild(); item != nil; item = item.NextSibling() {
		marker := "•"
		if l.IsOrdered() {
			marker = fmt.Sprintf("%d.", number)
			number++
		}
		w.pdf.SetX(w.left() - listIndent)
		w.pdf.CellFormat(listIndent, w.lineHeight(), w.encode(marker), "", 0, "L", false, 0, "")
		for c := item.FirstChild(); c != nil; c = c.NextSibling() {
			w.block(c)
		}
	}
	w.popIndent(listIndent)
	if _, nested := l.Parent().(*ast.ListItem); !nested {
		w.pdf.Ln(w.style.ParagraphSpacing)
	}
}

func (w *pdfWriter) codeBlock(n ast.Node) {
	code := strings.TrimRight(blockLines(n, w.src), "\n")
	code = strings.ReplaceAll(code, "\t", "    ")

	w.mono++
	w.applyFont()
	bg := w.style.CodeBackground
	w.pdf.SetFillColor(bg[0], bg[1], bg[2])
	w.pdf.MultiCell(0, w.lineHeight(), w.encode(code), "", "L", true)
	w.mono--
	w.applyFont()
	w.pdf.Ln(w.style.ParagraphSpacing)
}

func (w *pdfWriter) blockquote(q *ast.Blockquote) {
	w.pushIndent(quoteIndent)
	w.italic++
	w.applyFont()
	for c := q.FirstChild(); c != nil; c = c.NextSibling() {
		w.block(c)
	}
	w.italic--
	w.applyFont()
	w.popIndent(quoteIndent)
}

func (w *pdfWriter) rule() {
	if w.pdf.GetX() > w.left()+0.1 {
		w.pdf.Ln(w.lineHeight())
	}
	pageWidth, _ := w.pdf.GetPageSize()
	y := w.pdf.GetY() + w.style.ParagraphSpacing
	c := w.style.RuleColor
	w.pdf.SetDrawColor(c[0], c[1], c[2])
	w.pdf.Line(w.left(), y, pageWidth-w.style.Margins.Right, y)
	w.pdf.SetY(y + w.style.ParagraphSpacing)
}

// table sets each row as one line of cell texts separated by bars, with
// the header row in bold.
func (w *pdfWriter) table(t *east.Table) {
	for row := t.FirstChild(); row != nil; row = row.NextSibling() {
		var cells []string
		for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
			cells = append(cells, plainText(cell, w.src))
		}
		_, header := row.(*east.TableHeader)
		if header {
			w.bold++
			w.applyFont()
		}
		w.pdf.MultiCell(0, w.lineHeight(), w.encode(strings.Join(cells, " | ")), "", "L", false)
		if header {
			w.bold--
			w.applyFont()
		}
	}
	w.pdf.Ln(w.style.ParagraphSpacing)
}

func (w *pdfWriter) write(s string) {
	w.pdf.Write(w.lineHeight(), w.encode(s))
}

// encode converts UTF-8 text for the current font. Core fonts take cp1252.
func (w *pdfWriter) encode(s string) string {
	if w.mono > 0 {
		if w.codeUTF8 {
			return s
		}
		return w.translate(s)
	}
	if w.bodyUTF8 {
		return s
	}
	return w.translate(s)
}

func (w *pdfWriter) applyFont() {
	family, faces, size := w.bodyFamily, w.bodyFaces, w.size
	if w.mono > 0 {
		family, faces = w.codeFamily, w.codeFaces
		size = w.size * w.style.CodeFont.Size / w.style.Font.Size
	}

	face := ""
	if w.bold > 0 {
		face += "B"
	}
	if w.italic > 0 {
		face += "I"
	}
	for _, candidate := range []string{face, strings.TrimSuffix(face, "I"), strings.TrimPrefix(face, "B"), ""} {
		if faces[candidate] {
			face = candidate
			break
		}
	}
	w.pdf.SetFont(family, face, size)
}

// lineHeight converts the current font size to a line advance in mm.
func (w *pdfWriter) lineHeight() float64 {
	return w.size * w.style.LineHeight * mmPerPoint
}

func (w *pdfWriter) left() float64 {
	return w.baseLeft + w.indent
}

func (w *pdfWriter) contentWidth() float64 {
	pageWidth, _ := w.pdf.GetPageSize()
	return pageWidth - w.left() - w.style.Margins.Right
}

func (w *pdfWriter) pushIndent(d float64) {
	w.indent += d
	w.pdf.SetLeftMargin(w.left())
	w.pdf.SetX(w.left())
}

func (w *pdfWriter) popIndent(d float64) {
	w.indent -= d
	w.pdf.SetLeftMargin(w.left())
}

// pageHasContent reports whether anything was written below the top margin
// of the current page.
func (w *pdfWriter) pageHasContent() bool {
	return w.pdf.GetY() > w.style.Margins.Top+0.5
}
