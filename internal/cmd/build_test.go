package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrison/bookbinder/internal/builder"
)

func TestBuildCommand_Markdown(t *testing.T) {
	output := filepath.Join(t.TempDir(), "dist")

	stdout, stderr, err := execute(t, "build",
		"-i", sampleBook, "-o", output,
		"--format", "markdown",
		"--log-dir", "", "--no-history")
	require.NoError(t, err)

	assert.Equal(t,
		"# Table of Contents\n"+
			"* [Getting Started](01-getting-started/01-getting-started.md)\n"+
			"  * [first-steps](01-getting-started/first-steps/first-steps.md)\n"+
			"* [02-reference](02-reference/02-reference.md)\n",
		readString(t, filepath.Join(output, "markdown", "summary.md")))

	assert.Equal(t,
		"# Getting Started\n"+
			"Read this chapter first.\n\n"+
			"![diagram.png](diagram.png)\n"+
			"Run the installer, then restart your shell.\n\n",
		readString(t, filepath.Join(output, "markdown", "01-getting-started", "01-getting-started.md")))

	assert.Equal(t, "This book was assembled by bookbinder.\n\n", readString(t, filepath.Join(output, "markdown", "_intro.md")))
	assert.FileExists(t, filepath.Join(output, "book", "images", "01-getting-started", "diagram.png"))

	assert.Contains(t, stdout, "Building book:")
	assert.Contains(t, stdout, "Built 1 of 1 artifacts")
	assert.Contains(t, stderr, "=== Build Summary ===")
	assert.Contains(t, stderr, "Chapters: 3")
}

func TestBuildCommand_AllFormats(t *testing.T) {
	output := filepath.Join(t.TempDir(), "dist")

	_, stderr, err := execute(t, "build",
		"--input", sampleBook, "--output", output,
		"--format", "markdown,html,pdf,docx",
		"--log-dir", "", "--no-history")
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(output, "html", "02-reference", "02-reference.html"))
	assert.FileExists(t, filepath.Join(output, "pdf", "output.pdf"))
	assert.FileExists(t, filepath.Join(output, "docx", "book.docx"))
	assert.Contains(t, stderr, "PDF pages:")
	assert.Contains(t, stderr, "Build succeeded")
}

func TestBuildCommand_RequiresEmptyOutputOrForce(t *testing.T) {
	output := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(output, "notes.txt"), []byte("mine"), 0644))
	args := []string{"build", "-i", sampleBook, "-o", output, "--format", "markdown", "--log-dir", "", "--no-history"}

	_, _, err := execute(t, args...)
	var precondition *builder.PreconditionError
	require.ErrorAs(t, err, &precondition)
	assert.Equal(t, "mine", readString(t, filepath.Join(output, "notes.txt")))

	_, _, err = execute(t, append(args, "--force")...)
	require.NoError(t, err)
	assert.NoFileExists(t, filepath.Join(output, "notes.txt"))
}

func TestBuildCommand_ConfigErrors(t *testing.T) {
	badConfig := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(badConfig, []byte("formats: [\n"), 0644))

	tests := []struct {
		name string
		args []string
	}{
		{"missing input", []string{"build", "-o", t.TempDir()}},
		{"unknown format", []string{"build", "-i", sampleBook, "-o", t.TempDir(), "--format", "epub"}},
		{"bad log level", []string{"build", "-i", sampleBook, "-o", t.TempDir(), "--log-level", "loud"}},
		{"zero section levels", []string{"build", "-i", sampleBook, "-o", t.TempDir(), "--section-levels", "0"}},
		{"malformed config file", []string{"build", "--config", badConfig, "-i", sampleBook, "-o", t.TempDir()}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, append(tt.args, "--log-dir", "", "--no-history")...)
			var confErr *builder.ConfigError
			assert.ErrorAs(t, err, &confErr)
		})
	}
}

func TestBuildCommand_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("section_levels: 1\nformats: [markdown]\nlog_dir: \"\"\nhistory:\n  enabled: false\n"), 0644))
	output := filepath.Join(dir, "dist")

	_, _, err := execute(t, "build", "--config", cfgPath, "-i", sampleBook, "-o", output)
	require.NoError(t, err)

	book := readString(t, filepath.Join(output, "book", "book.md"))
	assert.Contains(t, book, "\n# first-steps\n", "section_levels: 1 keeps every chapter at level 1")
	assert.NoDirExists(t, filepath.Join(output, "html"))
}

func TestBuildCommand_WritesRunLog(t *testing.T) {
	logDir := filepath.Join(t.TempDir(), "logs")

	_, _, err := execute(t, "build", "-i", sampleBook, "-o", filepath.Join(t.TempDir(), "dist"),
		"--format", "markdown", "--log-dir", logDir, "--no-history")
	require.NoError(t, err)

	content := readString(t, filepath.Join(logDir, "latest.log"))
	assert.Contains(t, content, "=== MARKDOWN ===")
	assert.Contains(t, content, "=== BUILD SUMMARY ===")
}
