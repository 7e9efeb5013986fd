package assembler

import (
	"path/filepath"

	"github.com/harrison/bookbinder/internal/models"
)

// Target decides where a chapter's assembled text and images go. rel is the
// slash-separated path of the chapter directory relative to the input root.
type Target interface {
	DocumentFor(rel string, chapter *models.Node) string
	ImageDirFor(rel string, chapter *models.Node) string
}

// SingleDocument assembles every chapter into one file. Images are copied
// under ImageRoot mirroring the chapter path, so equal image names in
// different chapters do not collide.
type SingleDocument struct {
	Path      string
	ImageRoot string
}

// DocumentFor returns the single document path.
func (s SingleDocument) DocumentFor(string, *models.Node) string {
	return s.Path
}

// ImageDirFor returns ImageRoot/rel.
func (s SingleDocument) ImageDirFor(rel string, _ *models.Node) string {
	return filepath.Join(s.ImageRoot, filepath.FromSlash(rel))
}

// MultiFile assembles each chapter into Root/rel/<name>.md with its images
// beside it.
type MultiFile struct {
	Root string
}

// DocumentFor returns Root/rel/<name>.md.
func (m MultiFile) DocumentFor(rel string, chapter *models.Node) string {
	return filepath.Join(m.Root, filepath.FromSlash(rel), chapter.Name+".md")
}

// ImageDirFor returns Root/rel.
func (m MultiFile) ImageDirFor(rel string, _ *models.Node) string {
	return filepath.Join(m.Root, filepath.FromSlash(rel))
}
