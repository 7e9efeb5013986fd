package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// Warning represents a user-facing warning message
type Warning struct {
	Title      string   // Main warning title
	Message    string   // Detailed explanation (optional)
	Files      []string // Related paths or anchors (optional)
	Suggestion string   // Action to take (optional)
}

// Display shows a formatted warning in yellow
func (w Warning) Display(out io.Writer) {
	var b strings.Builder

	b.WriteString("⚠️  Warning: ")
	b.WriteString(w.Title)
	b.WriteString("\n")

	if w.Message != "" {
		b.WriteString("    " + w.Message + "\n")
	}

	if len(w.Files) > 0 {
		if len(w.Files) == 1 {
			b.WriteString("    Affected entry:\n")
		} else {
			b.WriteString("    Affected entries:\n")
		}
		for i, file := range w.Files {
			fmt.Fprintf(&b, "      %d. %s\n", i+1, file)
		}
	}

	if w.Suggestion != "" {
		b.WriteString("    Suggestion:\n")
		b.WriteString("    " + w.Suggestion + "\n")
	}

	color.New(color.FgYellow).Fprint(out, b.String())
}

// WarnDuplicateAnchors creates a warning for chapter titles that share an anchor
func WarnDuplicateAnchors(anchors []string) Warning {
	files := make([]string, len(anchors))
	for i, a := range anchors {
		files[i] = "#" + a
	}
	return Warning{
		Title:      "Duplicate anchors",
		Message:    "Several chapters share a heading anchor; links resolve to the first one",
		Files:      files,
		Suggestion: "Give the chapters distinct titles (or a _title.md override)",
	}
}

// WarnEmptyDirectories creates a warning for directories that contribute nothing
func WarnEmptyDirectories(dirs []string) Warning {
	return Warning{
		Title:   "Empty directories",
		Message: "These directories have no content and are skipped",
		Files:   dirs,
	}
}
