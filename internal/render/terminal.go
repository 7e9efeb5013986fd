package render

import (
	"fmt"

	"github.com/charmbracelet/glamour"
)

// TerminalOptions controls terminal markdown rendering.
type TerminalOptions struct {
	// Style is a glamour standard style name ("dark", "light", "notty",
	// ...); empty picks one from the terminal background.
	Style string
	// Width wraps output at this many columns; zero disables wrapping.
	Width int
}

// RenderTerminal formats markdown for display in a terminal.
func RenderTerminal(markdown string, opts TerminalOptions) (string, error) {
	var rendererOpts []glamour.TermRendererOption
	if opts.Style == "" || opts.Style == "auto" {
		rendererOpts = append(rendererOpts, glamour.WithAutoStyle())
	} else {
		rendererOpts = append(rendererOpts, glamour.WithStandardStyle(opts.Style))
	}
	if opts.Width > 0 {
		rendererOpts = append(rendererOpts, glamour.WithWordWrap(opts.Width))
	}

	renderer, err := glamour.NewTermRenderer(rendererOpts...)
	if err != nil {
		return "", fmt.Errorf("failed to create terminal renderer: %w", err)
	}
	return renderer.Render(markdown)
}
