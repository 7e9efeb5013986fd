package assembler

import (
	"fmt"
	"strings"

	"github.com/harrison/bookbinder/internal/models"
)

// Resolver computes chapter titles.
type Resolver struct {
	fs FileSystem
}

// NewResolver creates a resolver reading title overrides through fs.
func NewResolver(fs FileSystem) *Resolver {
	return &Resolver{fs: fs}
}

// Title returns the trimmed contents of the chapter's title-override file
// when one sits directly inside it, otherwise the directory name.
func (r *Resolver) Title(chapter *models.Node) (string, error) {
	override := chapter.Child(models.ReservedTitleOverride.Name())
	if override == nil || override.IsDir() {
		return chapter.Name, nil
	}

	data, err := r.fs.ReadFile(override.Path)
	if err != nil {
		return "", fmt.Errorf("failed to read title for %s: %w", chapter.Name, err)
	}
	return strings.TrimSpace(string(data)), nil
}
