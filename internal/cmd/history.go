package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harrison/bookbinder/internal/config"
	"github.com/harrison/bookbinder/internal/history"
)

// NewHistoryCommand creates the history command
func NewHistoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded builds",
		Long: `List the most recent builds recorded in the history database
($BOOKBINDER_HOME/history.db unless history.db_path is configured).`,
		Args: cobra.NoArgs,
		RunE: runHistory,
	}

	cmd.Flags().Int("limit", 10, "Number of builds to show (0 shows all)")

	return cmd
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	limit, _ := cmd.Flags().GetInt("limit")
	out := cmd.OutOrStdout()

	dbPath, err := config.HistoryDBPath(cfg)
	if err != nil {
		return fmt.Errorf("failed to get history database path: %w", err)
	}
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		fmt.Fprintln(out, "No builds recorded yet.")
		return nil
	}

	store, err := history.NewStore(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open history database: %w", err)
	}
	defer store.Close()

	builds, err := store.Recent(context.Background(), limit)
	if err != nil {
		return err
	}
	if len(builds) == 0 {
		fmt.Fprintln(out, "No builds recorded yet.")
		return nil
	}

	printBuilds(out, builds)
	return nil
}

// printBuilds writes one block per build, most recent first.
func printBuilds(w io.Writer, builds []*history.Build) {
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)

	for _, b := range builds {
		status := green.Sprint(b.Status)
		if b.Status != history.StatusSuccess {
			status = red.Sprint(b.Status)
		}
		fmt.Fprintf(w, "%s  %s  %s\n", b.StartedAt.Local().Format("2006-01-02 15:04:05"), status, b.ID)
		fmt.Fprintf(w, "  %s -> %s\n", b.Input, b.Output)
		fmt.Fprintf(w, "  formats: %s  chapters: %d  images: %d  pages: %d  duration: %s\n",
			strings.Join(b.Formats, ","), b.Chapters, b.Images, b.Pages, b.Duration().Round(time.Millisecond))
		if b.Error != "" {
			fmt.Fprintf(w, "  error: %s\n", b.Error)
		}
	}
}
