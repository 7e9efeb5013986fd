package fileutil

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/harrison/bookbinder/internal/models"
)

// LoadTree reads the directory at path and returns it as a node tree.
// Children are ordered by name. Nothing is filtered out.
func LoadTree(path string) (*models.Node, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path %s: %w", path, err)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to access directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", absPath)
	}

	root := &models.Node{
		Name: filepath.Base(absPath),
		Path: absPath,
		Kind: models.KindDirectory,
	}
	if err := loadChildren(root); err != nil {
		return nil, err
	}
	return root, nil
}

// loadChildren populates dir.Children recursively.
func loadChildren(dir *models.Node) error {
	entries, err := os.ReadDir(dir.Path)
	if err != nil {
		return fmt.Errorf("failed to read directory %s: %w", dir.Path, err)
	}

	children := make([]*models.Node, 0, len(entries))
	for _, entry := range entries {
		child := &models.Node{
			Name: entry.Name(),
			Path: filepath.Join(dir.Path, entry.Name()),
			Kind: models.KindFile,
		}
		if entry.IsDir() {
			child.Kind = models.KindDirectory
			if err := loadChildren(child); err != nil {
				return err
			}
		}
		children = append(children, child)
	}
	dir.Children = children
	return nil
}
