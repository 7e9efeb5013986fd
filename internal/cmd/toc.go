package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/harrison/bookbinder/internal/assembler"
	"github.com/harrison/bookbinder/internal/builder"
	"github.com/harrison/bookbinder/internal/render"
)

// NewTOCCommand creates the toc command
func NewTOCCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "toc <input-directory>",
		Short: "Print the table of contents of an input directory",
		Long: `Print the table of contents a build would produce, without writing anything.

In single mode entries link to in-document anchors; in multi mode they link
to the per-chapter markdown files. Output is formatted for the terminal
unless --plain is given or stdout is not a terminal.`,
		Args: cobra.ExactArgs(1),
		RunE: runTOC,
	}

	cmd.Flags().String("mode", "single", "Link style: single or multi")
	cmd.Flags().Bool("plain", false, "Print raw markdown")
	cmd.Flags().String("style", "", "Terminal style (dark, light, notty, ...); default follows the terminal")
	cmd.Flags().Int("width", 80, "Wrap terminal output at this many columns (0 disables wrapping)")

	return cmd
}

func runTOC(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	modeFlag, _ := cmd.Flags().GetString("mode")
	mode, err := assembler.ParseMode(modeFlag)
	if err != nil {
		return &builder.ConfigError{Field: "mode", Err: err}
	}

	entries, err := builder.TableOfContents(args[0], cfg, mode)
	if err != nil {
		return err
	}
	text := assembler.Markdown(entries)

	out := cmd.OutOrStdout()
	plain, _ := cmd.Flags().GetBool("plain")
	if plain || !isStdout(out) || !isatty.IsTerminal(os.Stdout.Fd()) {
		fmt.Fprint(out, text)
		return nil
	}

	style, _ := cmd.Flags().GetString("style")
	width, _ := cmd.Flags().GetInt("width")
	rendered, err := render.RenderTerminal(text, render.TerminalOptions{Style: style, Width: width})
	if err != nil {
		return err
	}
	fmt.Fprint(out, rendered)
	return nil
}

// isStdout reports whether w is the process stdout.
func isStdout(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && f == os.Stdout
}
