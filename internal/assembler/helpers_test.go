package assembler

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/harrison/bookbinder/internal/fileutil"
	"github.com/harrison/bookbinder/internal/models"
)

// buildTree writes files (slash-separated path -> content) under a fresh temp
// dir and loads it. Keys ending in "/" create empty directories.
func buildTree(t *testing.T, files map[string]string) *models.Node {
	t.Helper()
	root := t.TempDir()
	for p, content := range files {
		full := filepath.Join(root, filepath.FromSlash(p))
		if strings.HasSuffix(p, "/") {
			require.NoError(t, os.MkdirAll(full, 0755))
			continue
		}
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0644))
	}
	tree, err := fileutil.LoadTree(root)
	require.NoError(t, err)
	return tree
}

func newTestAssembler() *Assembler {
	fs := fileutil.OS{}
	return &Assembler{
		FS:                 fs,
		Policy:             DefaultPolicy(),
		Resolver:           NewResolver(fs),
		SectionLevels:      MaxSectionLevels,
		ImageExtensions:    fileutil.NormalizeExtensions([]string{".png"}),
		MarkdownExtensions: fileutil.NormalizeExtensions([]string{".md"}),
	}
}

func newTestTOCBuilder(mode Mode) *TOCBuilder {
	return &TOCBuilder{
		Policy:        DefaultPolicy(),
		Resolver:      NewResolver(fileutil.OS{}),
		Mode:          mode,
		Dialect:       GitHubDialect,
		SectionLevels: MaxSectionLevels,
	}
}

func readString(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

// nestedTree returns files for a chain of n nested chapters l1/l2/.../ln,
// each holding one fragment.
func nestedTree(n int) map[string]string {
	files := make(map[string]string)
	dir := ""
	for i := 1; i <= n; i++ {
		name := "l" + string(rune('0'+i))
		if dir == "" {
			dir = name
		} else {
			dir = dir + "/" + name
		}
		files[dir+"/text.md"] = "text " + name
	}
	return files
}
