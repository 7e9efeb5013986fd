package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCommand_SampleBook(t *testing.T) {
	stdout, _, err := execute(t, "validate", sampleBook)
	require.NoError(t, err)

	assert.Contains(t, stdout, "Chapters:    3\n")
	assert.Contains(t, stdout, "Fragments:   4\n")
	assert.Contains(t, stdout, "Images:      1\n")
	assert.Contains(t, stdout, "Intro files: 1\n")
	assert.Contains(t, stdout, "✓ Input is valid")
}

func TestValidateCommand_Warnings(t *testing.T) {
	input := t.TempDir()
	for p, content := range map[string]string{
		"a/_title.md": "Overview",
		"a/x.md":      "x",
		"b/_title.md": "Overview",
		"b/y.md":      "y",
	} {
		full := filepath.Join(input, filepath.FromSlash(p))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0644))
	}
	require.NoError(t, os.MkdirAll(filepath.Join(input, "empty"), 0755))

	stdout, _, err := execute(t, "validate", input)
	require.NoError(t, err, "findings are warnings, not failures")

	assert.Contains(t, stdout, "Warning: Empty directories")
	assert.Contains(t, stdout, "1. empty")
	assert.Contains(t, stdout, "Warning: Duplicate anchors")
	assert.Contains(t, stdout, "1. #overview")
	assert.NotContains(t, stdout, "Input is valid")
}

func TestValidateCommand_NoChapters(t *testing.T) {
	input := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(input, "only.md"), []byte("loose"), 0644))

	stdout, _, err := execute(t, "validate", input)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Warning: No chapters found")
}

func TestValidateCommand_UnreadableInput(t *testing.T) {
	_, _, err := execute(t, "validate", filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}
