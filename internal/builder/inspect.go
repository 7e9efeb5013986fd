package builder

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/harrison/bookbinder/internal/assembler"
	"github.com/harrison/bookbinder/internal/config"
	"github.com/harrison/bookbinder/internal/fileutil"
	"github.com/harrison/bookbinder/internal/models"
)

// Report describes an input tree without building it.
type Report struct {
	Input      string
	Entries    []assembler.TOCEntry // Chapters in document order
	Fragments  int                  // Markdown files and preambles that would be appended
	Images     int                  // Images that would be copied
	IntroFiles int                  // Loose files at the input root
	EmptyDirs  []string             // Directories skipped for having no entries, relative to Input
	Duplicates []string             // Anchors shared by more than one chapter
}

// Inspect loads input and reports what a build would produce. It never
// writes. Only an unreadable input is an error.
func Inspect(input string, cfg *config.Config) (*Report, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	tree, err := loadInput(input)
	if err != nil {
		return nil, err
	}

	b := New(Options{Config: cfg})
	entries, err := b.newTOCBuilder(assembler.ModeSingle, assembler.GitHubDialect).Entries(tree.Children)
	if err != nil {
		return nil, err
	}

	report := &Report{
		Input:      tree.Path,
		Entries:    entries,
		Duplicates: assembler.DuplicateAnchors(entries),
	}

	images := fileutil.NormalizeExtensions(cfg.ImageExtensions)
	markdown := fileutil.NormalizeExtensions(cfg.MarkdownExtensions)
	policy := assembler.DefaultPolicy()

	for _, child := range tree.Children {
		if !child.IsDir() && !policy.ShouldIgnore(child) && !images[strings.ToLower(filepath.Ext(child.Name))] {
			report.IntroFiles++
		}
	}

	var walk func(nodes []*models.Node, rel string)
	walk = func(nodes []*models.Node, rel string) {
		for _, n := range nodes {
			if policy.ShouldIgnore(n) || !n.IsDir() {
				continue
			}
			childRel := path.Join(rel, n.Name)
			if !n.HasChildren() {
				report.EmptyDirs = append(report.EmptyDirs, childRel)
				continue
			}
			if preamble := n.Child(models.ReservedPreamble.Name()); preamble != nil && !preamble.IsDir() {
				report.Fragments++
			}
			for _, item := range n.Children {
				if item.IsDir() || policy.ShouldIgnore(item) {
					continue
				}
				ext := strings.ToLower(filepath.Ext(item.Name))
				switch {
				case markdown[ext]:
					report.Fragments++
				case images[ext]:
					report.Images++
				}
			}
			walk(n.Children, childRel)
		}
	}
	walk(tree.Children, "")

	return report, nil
}

// TableOfContents returns the chapters under input as they appear in the
// table of contents for mode.
func TableOfContents(input string, cfg *config.Config, mode assembler.Mode) ([]assembler.TOCEntry, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	tree, err := loadInput(input)
	if err != nil {
		return nil, err
	}
	return New(Options{Config: cfg}).newTOCBuilder(mode, assembler.GitHubDialect).Entries(tree.Children)
}

func loadInput(input string) (*models.Node, error) {
	if input == "" {
		return nil, &ConfigError{Field: "input", Message: "an input directory is required"}
	}
	info, err := os.Stat(input)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return nil, &PreconditionError{Path: input, Message: "input directory does not exist"}
	case err != nil:
		return nil, &PreconditionError{Path: input, Message: "input directory is unreadable", Err: err}
	case !info.IsDir():
		return nil, &PreconditionError{Path: input, Message: "input is not a directory"}
	}

	tree, err := fileutil.LoadTree(input)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", input, err)
	}
	return tree, nil
}
