package display

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// ProgressIndicator manages multi-step progress display
type ProgressIndicator struct {
	writer  io.Writer
	total   int
	current int
}

// NewProgressIndicator creates a new progress indicator
func NewProgressIndicator(w io.Writer, total int) *ProgressIndicator {
	return &ProgressIndicator{
		writer: w,
		total:  total,
	}
}

// Start displays the header message
func (p *ProgressIndicator) Start(title string) {
	fmt.Fprintf(p.writer, "%s:\n", title)
}

// Step displays progress for the current item: [N/Total] name (cyan)
func (p *ProgressIndicator) Step(name string) {
	p.current++
	color.New(color.FgCyan).Fprintf(p.writer, "  [%d/%d] %s\n", p.current, p.total, name)
}

// Fail marks the current item as failed (red)
func (p *ProgressIndicator) Fail(name string, err error) {
	color.New(color.FgRed).Fprintf(p.writer, "  ✗ %s: %v\n", name, err)
}

// Complete displays the final message with a green checkmark
func (p *ProgressIndicator) Complete(message string) {
	fmt.Fprintf(p.writer, "%s %s\n", color.New(color.FgGreen).Sprint("✓"), message)
}
