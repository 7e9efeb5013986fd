package fileutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanDirectory(t *testing.T) {
	// tmpDir/
	//   summary.md
	//   _intro.md
	//   Cover.PNG
	//   notes.txt
	//   ch1/
	//     ch1.md
	//     pic.png
	//     sub/
	//       sub.md
	//   .git/
	//     HEAD.md
	//   drafts/
	//     draft.md
	tmpDir := t.TempDir()
	writeFiles(t, tmpDir,
		"summary.md",
		"_intro.md",
		"Cover.PNG",
		"notes.txt",
		"ch1/ch1.md",
		"ch1/pic.png",
		"ch1/sub/sub.md",
		".git/HEAD.md",
		"drafts/draft.md",
	)

	tests := []struct {
		name string
		opts ScanOptions
		want []string
	}{
		{
			name: "non-recursive scan lists loose files only",
			opts: ScanOptions{},
			want: []string{"Cover.PNG", "_intro.md", "notes.txt", "summary.md"},
		},
		{
			name: "recursive markdown scan skips hidden directories",
			opts: ScanOptions{Extensions: []string{".md"}, Recursive: true},
			want: []string{"_intro.md", "ch1/ch1.md", "ch1/sub/sub.md", "drafts/draft.md", "summary.md"},
		},
		{
			name: "extension matching is case-insensitive and dot-optional",
			opts: ScanOptions{Extensions: []string{"png"}, Recursive: true},
			want: []string{"Cover.PNG", "ch1/pic.png"},
		},
		{
			name: "excluded directories are not descended",
			opts: ScanOptions{Extensions: []string{".md"}, Recursive: true, ExcludeDirs: []string{"drafts", "sub"}},
			want: []string{"_intro.md", "ch1/ch1.md", "summary.md"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ScanDirectory(tmpDir, tt.opts)
			require.NoError(t, err)
			assert.Empty(t, result.Errors)

			got := make([]string, 0, len(result.Files))
			for _, f := range result.Files {
				assert.True(t, filepath.IsAbs(f), "expected absolute path, got %s", f)
				rel, err := filepath.Rel(tmpDir, f)
				require.NoError(t, err)
				got = append(got, filepath.ToSlash(rel))
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestScanDirectoryErrors(t *testing.T) {
	tmpDir := t.TempDir()
	filePath := filepath.Join(tmpDir, "file.md")
	require.NoError(t, os.WriteFile(filePath, []byte("x"), 0644))

	_, err := ScanDirectory(filepath.Join(tmpDir, "missing"), ScanOptions{})
	assert.Error(t, err)

	_, err = ScanDirectory(filePath, ScanOptions{})
	assert.ErrorContains(t, err, "not a directory")
}

func TestNormalizeExtensions(t *testing.T) {
	got := NormalizeExtensions([]string{"MD", ".Png", " ", ".jpeg"})
	assert.Equal(t, map[string]bool{".md": true, ".png": true, ".jpeg": true}, got)
}

// writeFiles creates each slash-separated relative path under root with
// placeholder content. Paths ending in "/" create empty directories.
func writeFiles(t *testing.T, root string, paths ...string) {
	t.Helper()
	for _, p := range paths {
		full := filepath.Join(root, filepath.FromSlash(p))
		if p[len(p)-1] == '/' {
			require.NoError(t, os.MkdirAll(full, 0755))
			continue
		}
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
		require.NoError(t, os.WriteFile(full, []byte("content of "+p), 0644))
	}
}
