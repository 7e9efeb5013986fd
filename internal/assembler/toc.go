package assembler

import (
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/harrison/bookbinder/internal/models"
)

// TOCTitle is the first line of every table of contents.
const TOCTitle = "# Table of Contents"

// Mode selects how TOC entries link to their chapters.
type Mode int

const (
	// ModeSingle links to in-document anchors of one assembled document.
	ModeSingle Mode = iota
	// ModeMultiFile links to one assembled file per chapter.
	ModeMultiFile
)

// String returns the string representation of Mode.
func (m Mode) String() string {
	switch m {
	case ModeSingle:
		return "single"
	case ModeMultiFile:
		return "multi"
	default:
		return "unknown"
	}
}

// ParseMode parses "single" or "multi".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "single":
		return ModeSingle, nil
	case "multi", "multi-file":
		return ModeMultiFile, nil
	default:
		return 0, fmt.Errorf("unknown toc mode %q, must be single or multi", s)
	}
}

// TOCEntry is one chapter line of the table of contents.
type TOCEntry struct {
	Title  string // Resolved chapter title
	Depth  int    // 1-based nesting depth, capped
	Anchor string // Slug of Title in the builder's dialect
	Link   string // File path or "#anchor" target
	Path   string // Source directory
}

// Line formats the entry as a markdown list item indented two spaces per
// ancestor. Entries past the depth cap share the indent of the cap.
func (e TOCEntry) Line() string {
	return fmt.Sprintf("%s* [%s](%s)", strings.Repeat("  ", e.Depth-1), e.Title, e.Link)
}

// TOCBuilder walks a tree and produces table of contents entries.
type TOCBuilder struct {
	Policy        *Policy
	Resolver      *Resolver
	Mode          Mode
	Dialect       Dialect
	SectionLevels int
}

// Entries returns the chapters under children in pre-order.
func (b *TOCBuilder) Entries(children []*models.Node) ([]TOCEntry, error) {
	return b.collect(children, "", 0, nil)
}

// collect appends the entries for children (whose parent sits at level) to
// acc and returns the extended slice.
func (b *TOCBuilder) collect(children []*models.Node, parentRel string, level int, acc []TOCEntry) ([]TOCEntry, error) {
	depth := nextLevel(level, LevelCap(b.SectionLevels))

	for _, child := range children {
		if b.Policy.ShouldIgnore(child) || !child.HasChildren() {
			continue
		}

		title, err := b.Resolver.Title(child)
		if err != nil {
			return nil, err
		}

		rel := path.Join(parentRel, child.Name)
		entry := TOCEntry{
			Title:  title,
			Depth:  depth,
			Anchor: Anchor(title, b.Dialect),
			Path:   child.Path,
		}
		if b.Mode == ModeMultiFile {
			entry.Link = escapeLink(path.Join(rel, child.Name+".md"))
		} else {
			entry.Link = "#" + entry.Anchor
		}
		acc = append(acc, entry)

		acc, err = b.collect(child.Children, rel, depth, acc)
		if err != nil {
			return nil, err
		}
	}
	return acc, nil
}

// Write appends the TOC title line followed by one line per entry to target.
func (b *TOCBuilder) Write(fs FileSystem, target string, entries []TOCEntry) error {
	if err := fs.AppendFile(target, []byte(TOCTitle+"\n")); err != nil {
		return err
	}
	for _, e := range entries {
		if err := fs.AppendFile(target, []byte(e.Line()+"\n")); err != nil {
			return err
		}
	}
	return nil
}

// Markdown renders entries as a standalone TOC document.
func Markdown(entries []TOCEntry) string {
	var sb strings.Builder
	sb.WriteString(TOCTitle)
	sb.WriteString("\n")
	for _, e := range entries {
		sb.WriteString(e.Line())
		sb.WriteString("\n")
	}
	return sb.String()
}

// DuplicateAnchors returns the anchors shared by more than one entry,
// sorted.
func DuplicateAnchors(entries []TOCEntry) []string {
	counts := make(map[string]int, len(entries))
	for _, e := range entries {
		counts[e.Anchor]++
	}
	var dups []string
	for anchor, n := range counts {
		if n > 1 {
			dups = append(dups, anchor)
		}
	}
	sort.Strings(dups)
	return dups
}
