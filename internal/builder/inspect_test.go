package builder

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrison/bookbinder/internal/assembler"
	"github.com/harrison/bookbinder/internal/config"
)

func TestInspect(t *testing.T) {
	input := writeTree(t, map[string]string{
		"README.md":        "intro",
		"cover.png":        "not an intro file",
		"ch1/_title.md":    "Setup",
		"ch1/_content.md":  "preamble",
		"ch1/a.md":         "a",
		"ch1/shot.png":     "png bytes",
		"ch1/notes.txt":    "ignored type",
		"ch2/_title.md":    "Setup",
		"ch2/inner/b.md":   "b",
		"ch2/inner/empty/": "",
		"drafts/":          "",
		".git/config":      "hidden",
		"html/old.html":    "reserved",
	})

	report, err := Inspect(input, nil)
	require.NoError(t, err)

	titles := make([]string, len(report.Entries))
	for i, e := range report.Entries {
		titles[i] = e.Title
	}
	assert.Equal(t, []string{"Setup", "Setup", "inner"}, titles)
	assert.Equal(t, 3, report.Fragments)
	assert.Equal(t, 1, report.Images)
	assert.Equal(t, 1, report.IntroFiles)
	assert.Equal(t, []string{"ch2/inner/empty", "drafts"}, report.EmptyDirs)
	assert.Equal(t, []string{"setup"}, report.Duplicates)
}

func TestInspect_HonorsImageExtensions(t *testing.T) {
	input := writeTree(t, map[string]string{
		"ch/a.md":  "a",
		"ch/b.JPG": "jpg",
		"ch/c.png": "png",
	})
	cfg := config.DefaultConfig()
	cfg.ImageExtensions = []string{".jpg"}

	report, err := Inspect(input, cfg)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Images)
}

func TestInspect_MissingInput(t *testing.T) {
	_, err := Inspect(filepath.Join(t.TempDir(), "nope"), nil)

	var precondition *PreconditionError
	assert.ErrorAs(t, err, &precondition)

	_, err = Inspect("", nil)
	var confErr *ConfigError
	assert.ErrorAs(t, err, &confErr)
}

func TestTableOfContents(t *testing.T) {
	input := writeTree(t, map[string]string{
		"Part One/a.md":     "a",
		"Part One/sub/b.md": "b",
	})

	multi, err := TableOfContents(input, nil, assembler.ModeMultiFile)
	require.NoError(t, err)
	require.Len(t, multi, 2)
	assert.Equal(t, "* [Part One](Part%20One/Part%20One.md)", multi[0].Line())
	assert.Equal(t, "  * [sub](Part%20One/sub/sub.md)", multi[1].Line())

	single, err := TableOfContents(input, nil, assembler.ModeSingle)
	require.NoError(t, err)
	assert.Equal(t, "* [Part One](#part-one)", single[0].Line())
}

func TestTableOfContents_SectionLevels(t *testing.T) {
	input := writeTree(t, map[string]string{
		"a/b/c/d.md": "deep",
	})
	cfg := config.DefaultConfig()
	cfg.SectionLevels = 2

	entries, err := TableOfContents(input, cfg, assembler.ModeSingle)
	require.NoError(t, err)

	depths := make([]int, len(entries))
	for i, e := range entries {
		depths[i] = e.Depth
	}
	assert.Equal(t, []int{1, 2, 2}, depths)
}
