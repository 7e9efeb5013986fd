package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harrison/bookbinder/internal/builder"
	"github.com/harrison/bookbinder/internal/config"
	"github.com/harrison/bookbinder/internal/history"
	"github.com/harrison/bookbinder/internal/logger"
)

// NewBuildCommand creates the build command
func NewBuildCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the book from an input directory",
		Long: `Build assembles the input tree into the output directory:

  markdown/   one file per chapter, _intro.md and summary.md
  book/       book.md, the whole book as a single document
  html/       one page per markdown file plus html-styles.css
  pdf/        book.md in PDF anchor style and output.pdf
  docx/       book.docx (only with --format docx)

The output directory must be empty unless --force is given, in which case
it is removed first.

Configuration is loaded from .bookbinder/config.yaml if present.
CLI flags override configuration file settings.

Examples:
  bookbinder build -i chapters -o dist
  bookbinder build -i chapters -o dist --force
  bookbinder build -i chapters -o dist --format markdown --format docx
  bookbinder build -i chapters -o dist --section-levels 3 --log-level debug`,
		Args: cobra.NoArgs,
		RunE: runBuild,
	}

	cmd.Flags().StringP("input", "i", "", "Input directory holding the chapters")
	cmd.Flags().StringP("output", "o", "", "Output directory")
	cmd.Flags().BoolP("force", "f", false, "Replace a non-empty output directory")
	cmd.Flags().StringSlice("format", nil, "Formats to produce: markdown, html, pdf, docx (repeatable)")
	cmd.Flags().Int("section-levels", 0, "Deepest heading level assigned to chapters (1-6)")
	cmd.Flags().String("log-level", "", "Log level: trace, debug, info, warn, error")
	cmd.Flags().String("log-dir", "", "Directory for run logs (empty disables file logging)")
	cmd.Flags().Bool("no-history", false, "Do not record this build in the history database")

	return cmd
}

// loadConfig loads the file named by --config, or .bookbinder/config.yaml
// in the working directory.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath != "" {
		cfg, err := config.LoadConfig(configPath)
		if err != nil {
			return nil, &builder.ConfigError{Field: "config", Err: err}
		}
		return cfg, nil
	}

	cfg, err := config.LoadConfigFromDir(".")
	if err != nil {
		return nil, &builder.ConfigError{Field: "config", Err: err}
	}
	return cfg, nil
}

// runBuild implements the build command logic
func runBuild(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	input, _ := cmd.Flags().GetString("input")
	output, _ := cmd.Flags().GetString("output")
	force, _ := cmd.Flags().GetBool("force")

	// Build flag pointers for merge (only flags the user set)
	var sectionLevelsPtr *int
	if cmd.Flags().Changed("section-levels") {
		v, _ := cmd.Flags().GetInt("section-levels")
		sectionLevelsPtr = &v
	}
	var formatsPtr *[]string
	if cmd.Flags().Changed("format") {
		v, _ := cmd.Flags().GetStringSlice("format")
		formatsPtr = &v
	}
	var logLevelPtr *string
	if cmd.Flags().Changed("log-level") {
		v, _ := cmd.Flags().GetString("log-level")
		logLevelPtr = &v
	}
	var logDirPtr *string
	if cmd.Flags().Changed("log-dir") {
		v, _ := cmd.Flags().GetString("log-dir")
		logDirPtr = &v
	}
	var noHistoryPtr *bool
	if cmd.Flags().Changed("no-history") {
		v, _ := cmd.Flags().GetBool("no-history")
		noHistoryPtr = &v
	}

	cfg.MergeWithFlags(sectionLevelsPtr, formatsPtr, logLevelPtr, logDirPtr, noHistoryPtr)

	if err := cfg.Validate(); err != nil {
		return &builder.ConfigError{Err: err}
	}

	out := cmd.OutOrStdout()
	loggers := []logger.BuildLogger{logger.NewConsoleLogger(cmd.ErrOrStderr(), cfg.LogLevel)}
	if cfg.LogDir != "" {
		fileLogger, err := logger.NewFileLoggerWithDirAndLevel(cfg.LogDir, cfg.LogLevel)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Warning: file logging disabled: %v\n", err)
		} else {
			defer fileLogger.Close()
			loggers = append(loggers, fileLogger)
		}
	}
	log := logger.NewMultiLogger(loggers...)

	var store *history.Store
	if cfg.History.Enabled {
		store, err = openHistory(cfg)
		if err != nil {
			log.LogWarn(fmt.Sprintf("Build history disabled: %v", err))
			store = nil
		} else {
			defer store.Close()
		}
	}

	b := builder.New(builder.Options{
		Input:   input,
		Output:  output,
		Force:   force,
		Config:  cfg,
		Logger:  log,
		History: store,
		Out:     out,
	})
	_, err = b.Build(context.Background())
	return err
}

// openHistory opens the history database configured in cfg.
func openHistory(cfg *config.Config) (*history.Store, error) {
	dbPath, err := config.HistoryDBPath(cfg)
	if err != nil {
		return nil, err
	}
	return history.NewStore(dbPath)
}
