package fileutil

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// OS implements the assembler's filesystem capabilities on the local disk.
type OS struct{}

// ReadFile returns the full contents of path.
func (OS) ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

// Exists reports whether path names an existing regular file.
func (OS) Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// AppendFile appends data to path, creating the file if needed.
func (OS) AppendFile(path string, data []byte) error {
	return AppendFile(path, data)
}

// CopyFile copies src to dst, replacing dst.
func (OS) CopyFile(src, dst string) error {
	return CopyFile(src, dst)
}

// EnsureDir creates path and any missing parents.
func (OS) EnsureDir(path string) error {
	return EnsureDir(path)
}

// ListFiles returns the non-hidden regular files directly inside dir.
func (OS) ListFiles(dir string) ([]string, error) {
	return ListImmediateFiles(dir)
}

// AppendFile appends data to the file at path, creating it if necessary.
func AppendFile(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open %s for append: %w", path, err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("failed to append to %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	return nil
}

// CopyFile copies the contents of src into dst.
func CopyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("failed to copy %s to %s: %w", src, dst, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", dst, err)
	}
	return nil
}

// EnsureDir creates the directory at path if it does not already exist.
func EnsureDir(path string) error {
	if err := os.MkdirAll(path, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", path, err)
	}
	return nil
}

// ListImmediateFiles returns the absolute paths of the regular, non-hidden
// files directly inside dir, ordered by name. Directories are skipped.
func ListImmediateFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		absPath, err := filepath.Abs(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to resolve path %s: %w", entry.Name(), err)
		}
		files = append(files, absPath)
	}
	return files, nil
}

// IsEmptyDir reports whether path is a directory with no entries.
// A missing path is reported as empty.
func IsEmptyDir(path string) (bool, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	_, err = f.Readdirnames(1)
	if errors.Is(err, io.EOF) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return false, nil
}
