package builder

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/harrison/bookbinder/internal/assembler"
	"github.com/harrison/bookbinder/internal/fileutil"
	"github.com/harrison/bookbinder/internal/models"
	"github.com/harrison/bookbinder/internal/render"
)

// File names below the reserved output directories.
const (
	bookFile  = "book.md"
	imagesDir = "images"
	pdfFile   = "output.pdf"
	docxFile  = "book.docx"
)

// assembledBook records where the markdown stage put its documents.
type assembledBook struct {
	markdownRoot string // multi-file tree
	intro        string // intro document, empty when the input has no loose files
	pdfSource    string // single document in the PDF anchor dialect
	title        string
	stats        *assembler.Stats
	duplicates   []string
}

// renderSources returns the documents the PDF and DOCX renderers consume,
// in order.
func (a *assembledBook) renderSources() []string {
	if a.intro == "" {
		return []string{a.pdfSource}
	}
	return []string{a.intro, a.pdfSource}
}

func (b *Builder) newAssembler() *assembler.Assembler {
	return &assembler.Assembler{
		FS:                 b.fs,
		Policy:             assembler.DefaultPolicy(),
		Resolver:           assembler.NewResolver(b.fs),
		SectionLevels:      b.cfg.Levels(),
		ImageExtensions:    fileutil.NormalizeExtensions(b.cfg.ImageExtensions),
		MarkdownExtensions: fileutil.NormalizeExtensions(b.cfg.MarkdownExtensions),
		Logger:             b.log,
	}
}

func (b *Builder) newTOCBuilder(mode assembler.Mode, dialect assembler.Dialect) *assembler.TOCBuilder {
	return &assembler.TOCBuilder{
		Policy:        assembler.DefaultPolicy(),
		Resolver:      assembler.NewResolver(b.fs),
		Mode:          mode,
		Dialect:       dialect,
		SectionLevels: b.cfg.Levels(),
	}
}

// assemble writes the three markdown layouts: the multi-file tree, the
// single GitHub-flavored document and the single PDF-dialect document.
func (b *Builder) assemble(tree *models.Node, output string) (*assembledBook, error) {
	asm := b.newAssembler()
	book := &assembledBook{
		markdownRoot: filepath.Join(output, models.ReservedMarkdownDir.Name()),
		title:        tree.Name,
	}

	if err := b.fs.EnsureDir(book.markdownRoot); err != nil {
		return nil, err
	}

	intro := filepath.Join(book.markdownRoot, models.ReservedIntro.Name())
	introFiles, err := asm.CollectIntro(tree.Path, intro)
	if err != nil {
		return nil, fmt.Errorf("failed to collect intro: %w", err)
	}
	if introFiles > 0 {
		book.intro = intro
		b.log.LogDebug(fmt.Sprintf("Collected %d intro file(s)", introFiles))
	}

	multiTOC := b.newTOCBuilder(assembler.ModeMultiFile, assembler.GitHubDialect)
	entries, err := multiTOC.Entries(tree.Children)
	if err != nil {
		return nil, fmt.Errorf("failed to build table of contents: %w", err)
	}
	for _, entry := range entries {
		b.log.LogChapter(entry.Title, entry.Depth)
	}
	summary := filepath.Join(book.markdownRoot, models.ReservedToc.Name())
	if err := multiTOC.Write(b.fs, summary, entries); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", summary, err)
	}

	book.stats, err = asm.Assemble(tree.Children, assembler.MultiFile{Root: book.markdownRoot})
	if err != nil {
		return nil, err
	}

	single := filepath.Join(output, models.ReservedBookDir.Name(), bookFile)
	if err := b.fs.EnsureDir(filepath.Dir(single)); err != nil {
		return nil, err
	}
	if _, err := asm.CollectIntro(tree.Path, single); err != nil {
		return nil, fmt.Errorf("failed to collect intro: %w", err)
	}
	singleTOC, err := b.writeSingle(tree, asm, assembler.GitHubDialect, single)
	if err != nil {
		return nil, err
	}
	book.duplicates = assembler.DuplicateAnchors(singleTOC)

	book.pdfSource = filepath.Join(output, models.ReservedPDFDir.Name(), bookFile)
	if err := b.fs.EnsureDir(filepath.Dir(book.pdfSource)); err != nil {
		return nil, err
	}
	if _, err := b.writeSingle(tree, asm, assembler.PDFDialect, book.pdfSource); err != nil {
		return nil, err
	}

	return book, nil
}

// writeSingle appends a table of contents linking to dialect anchors and the
// whole body to doc. Images go under images/ beside doc.
func (b *Builder) writeSingle(tree *models.Node, asm *assembler.Assembler, dialect assembler.Dialect, doc string) ([]assembler.TOCEntry, error) {
	toc := b.newTOCBuilder(assembler.ModeSingle, dialect)
	entries, err := toc.Entries(tree.Children)
	if err != nil {
		return nil, fmt.Errorf("failed to build table of contents: %w", err)
	}
	if err := toc.Write(b.fs, doc, entries); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", doc, err)
	}

	target := assembler.SingleDocument{Path: doc, ImageRoot: filepath.Join(filepath.Dir(doc), imagesDir)}
	if _, err := asm.Assemble(tree.Children, target); err != nil {
		return nil, err
	}
	return entries, nil
}

// render runs one render stage and reports its artifact; a failure is
// carried in the artifact rather than returned.
func (b *Builder) render(stage models.ArtifactKind, book *assembledBook, result *models.BuildResult) models.Artifact {
	output := result.Output
	switch stage {
	case models.ArtifactHTML:
		dst := filepath.Join(output, models.ReservedHTMLDir.Name())
		return models.Artifact{Kind: stage, Path: dst, Error: b.renderHTML(book, dst)}

	case models.ArtifactPDF:
		dst := filepath.Join(output, models.ReservedPDFDir.Name(), pdfFile)
		pages, err := b.renderPDF(book, dst)
		result.Pages = pages
		return models.Artifact{Kind: stage, Path: dst, Error: err}

	case models.ArtifactDOCX:
		dst := filepath.Join(output, models.ReservedDOCXDir.Name(), docxFile)
		return models.Artifact{Kind: stage, Path: dst, Error: b.renderDOCX(book, dst)}
	}
	return models.Artifact{Kind: stage, Error: fmt.Errorf("unknown stage %q", stage)}
}

func (b *Builder) renderHTML(book *assembledBook, dst string) error {
	var css []byte
	if path := b.cfg.HTML.StyleSheet; path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read html style sheet: %w", err)
		}
		css = data
	}

	renderer := render.NewHTMLRenderer(css, fileutil.NormalizeExtensions(b.cfg.ImageExtensions), b.log)
	stats, err := renderer.RenderTree(book.markdownRoot, dst)
	if err != nil {
		return err
	}
	b.log.LogInfo(fmt.Sprintf("Rendered %d HTML page(s), copied %d asset(s)", stats.Pages, stats.Assets))
	return nil
}

// renderPDF writes the PDF and reads its page count back. A file that
// cannot be read back is logged but not treated as a failure.
func (b *Builder) renderPDF(book *assembledBook, dst string) (int, error) {
	style, err := render.LoadPDFStyle(b.cfg.PDF.StyleSheet)
	if err != nil {
		return 0, err
	}
	if b.cfg.PDF.Paper != "" {
		style.Paper = b.cfg.PDF.Paper
	}

	renderer := render.NewPDFRenderer(style, b.log)
	renderer.Title = book.title
	stats, err := renderer.Render(book.renderSources(), dst)
	if err != nil {
		return 0, err
	}
	b.log.LogInfo(fmt.Sprintf("Laid out %d heading(s), %d image(s), %d internal link(s)", stats.Headings, stats.Images, stats.InternalLinks))

	pages, err := render.CountPages(dst)
	if err != nil {
		b.log.LogWarn(fmt.Sprintf("Could not read back %s: %v", dst, err))
		return 0, nil
	}
	return pages, nil
}

func (b *Builder) renderDOCX(book *assembledBook, dst string) error {
	stats, err := render.NewDOCXRenderer(b.log).Render(book.renderSources(), dst)
	if err != nil {
		return err
	}
	b.log.LogInfo(fmt.Sprintf("Wrote %d paragraph(s), %d image(s) to %s", stats.Paragraphs, stats.Images, dst))
	return nil
}
