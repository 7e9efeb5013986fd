package cmd

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for bookbinder
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bookbinder",
		Short: "Assemble a directory of markdown chapters into a book",
		Long: `Bookbinder turns a directory tree of markdown fragments and images into a book.

Every non-empty directory is a chapter, nested directories are sub-chapters,
and files are appended in name order. A build produces a table of contents,
one markdown file per chapter, a single assembled document, HTML pages, a PDF
and (optionally) a DOCX file.`,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
		// main prints the error once with its own prefix
		SilenceErrors: true,
	}

	cmd.PersistentFlags().String("config", "", "Path to config file (default: .bookbinder/config.yaml)")

	cmd.AddCommand(NewBuildCommand())
	cmd.AddCommand(NewTOCCommand())
	cmd.AddCommand(NewValidateCommand())
	cmd.AddCommand(NewHistoryCommand())

	return cmd
}
