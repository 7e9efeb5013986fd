package assembler

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/harrison/bookbinder/internal/models"
)

// Stats summarizes one assembly pass.
type Stats struct {
	Chapters  int      // Headings emitted
	Fragments int      // Markdown fragments and preambles appended
	Images    int      // Images copied
	Documents []string // Documents written, in first-write order
}

// Assembler concatenates chapter content into assembled documents.
type Assembler struct {
	FS                 FileSystem
	Policy             *Policy
	Resolver           *Resolver
	SectionLevels      int
	ImageExtensions    map[string]bool // lowercase, with leading dot
	MarkdownExtensions map[string]bool // lowercase, with leading dot
	Logger             Logger
}

// Assemble walks children in document order and appends each chapter to
// the document chosen by target.
func (a *Assembler) Assemble(children []*models.Node, target Target) (*Stats, error) {
	stats := &Stats{}
	seen := make(map[string]bool)
	if err := a.assembleLevel(children, "", 0, target, stats, seen); err != nil {
		return stats, err
	}
	return stats, nil
}

func (a *Assembler) assembleLevel(children []*models.Node, parentRel string, level int, target Target, stats *Stats, seen map[string]bool) error {
	depth := nextLevel(level, LevelCap(a.SectionLevels))

	for _, child := range children {
		if a.Policy.ShouldIgnore(child) || !child.HasChildren() {
			continue
		}

		rel := path.Join(parentRel, child.Name)
		doc := target.DocumentFor(rel, child)
		if !seen[doc] {
			if err := a.FS.EnsureDir(filepath.Dir(doc)); err != nil {
				return err
			}
			seen[doc] = true
			stats.Documents = append(stats.Documents, doc)
		}

		if err := a.assembleChapter(child, rel, depth, doc, target, stats); err != nil {
			return err
		}

		if err := a.assembleLevel(child.Children, rel, depth, target, stats, seen); err != nil {
			return err
		}
	}
	return nil
}

// assembleChapter emits the heading, preamble and direct leaf content of
// one chapter.
func (a *Assembler) assembleChapter(chapter *models.Node, rel string, depth int, doc string, target Target, stats *Stats) error {
	title, err := a.Resolver.Title(chapter)
	if err != nil {
		return err
	}
	a.logger().LogDebug(fmt.Sprintf("Assembling chapter %q at level %d", title, depth))

	if err := a.appendLine(doc, strings.Repeat("#", depth)+" "+title); err != nil {
		return err
	}
	stats.Chapters++

	if preamble := chapter.Child(models.ReservedPreamble.Name()); preamble != nil && !preamble.IsDir() {
		if err := a.appendFile(doc, preamble.Path); err != nil {
			return err
		}
		stats.Fragments++
	}

	for _, item := range chapter.Children {
		if item.IsDir() || a.Policy.ShouldIgnore(item) {
			continue
		}

		ext := strings.ToLower(filepath.Ext(item.Name))
		switch {
		case a.ImageExtensions[ext]:
			if err := a.insertImage(item, rel, chapter, doc, target); err != nil {
				return err
			}
			stats.Images++
		case a.MarkdownExtensions[ext]:
			if err := a.appendFile(doc, item.Path); err != nil {
				return err
			}
			stats.Fragments++
		default:
			a.logger().LogDebug(fmt.Sprintf("Skipping %s: not markdown or image", item.Path))
		}
	}
	return nil
}

// insertImage copies item into the chapter's image directory and appends an
// embed whose path is relative to doc.
func (a *Assembler) insertImage(item *models.Node, rel string, chapter *models.Node, doc string, target Target) error {
	dir := target.ImageDirFor(rel, chapter)
	if err := a.FS.EnsureDir(dir); err != nil {
		return err
	}
	dst := filepath.Join(dir, item.Name)
	if err := a.FS.CopyFile(item.Path, dst); err != nil {
		return err
	}
	a.logger().LogDebug(fmt.Sprintf("Copied image %s", dst))
	return a.appendLine(doc, fmt.Sprintf("![%s](%s)", item.Name, escapeLink(Relativize(doc, dst))))
}

// CollectIntro appends every loose, non-hidden, non-image file directly in
// root to target, in listing order, each followed by a newline. It returns
// the number of files appended; target is not created when there are none.
func (a *Assembler) CollectIntro(root, target string) (int, error) {
	files, err := a.FS.ListFiles(root)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, file := range files {
		name := filepath.Base(file)
		if strings.HasPrefix(name, ".") || a.ImageExtensions[strings.ToLower(filepath.Ext(name))] {
			continue
		}
		if err := a.appendFile(target, file); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

func (a *Assembler) appendFile(doc, src string) error {
	data, err := a.FS.ReadFile(src)
	if err != nil {
		return err
	}
	return a.appendLine(doc, string(data))
}

func (a *Assembler) appendLine(doc, text string) error {
	return a.FS.AppendFile(doc, []byte(text+"\n"))
}

func (a *Assembler) logger() Logger {
	if a.Logger == nil {
		return nopLogger{}
	}
	return a.Logger
}
