package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/harrison/bookbinder/internal/builder"
	"github.com/harrison/bookbinder/internal/display"
)

// NewValidateCommand creates and returns the validate subcommand
func NewValidateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <input-directory>",
		Short: "Check an input directory without building it",
		Long: `Load and walk an input directory, reporting:
  - Chapters, markdown fragments and images a build would use
  - Loose files at the root that become the introduction
  - Empty directories that are skipped
  - Chapters whose titles share an anchor

Exit code: 0 unless the input cannot be read. Findings are warnings.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			report, err := builder.Inspect(args[0], cfg)
			if err != nil {
				return err
			}
			printReport(cmd.OutOrStdout(), report)
			return nil
		},
	}

	return cmd
}

// printReport writes the validation summary followed by any warnings.
func printReport(w io.Writer, report *builder.Report) {
	fmt.Fprintf(w, "Input: %s\n", report.Input)
	fmt.Fprintf(w, "  Chapters:    %d\n", len(report.Entries))
	fmt.Fprintf(w, "  Fragments:   %d\n", report.Fragments)
	fmt.Fprintf(w, "  Images:      %d\n", report.Images)
	fmt.Fprintf(w, "  Intro files: %d\n", report.IntroFiles)

	if len(report.EmptyDirs) > 0 {
		display.WarnEmptyDirectories(report.EmptyDirs).Display(w)
	}
	if len(report.Duplicates) > 0 {
		display.WarnDuplicateAnchors(report.Duplicates).Display(w)
	}
	if len(report.Entries) == 0 {
		display.Warning{
			Title:      "No chapters found",
			Suggestion: "Chapters are directories containing at least one file",
		}.Display(w)
		return
	}
	if len(report.EmptyDirs) == 0 && len(report.Duplicates) == 0 {
		fmt.Fprintln(w, "✓ Input is valid")
	}
}
