// Package builder runs a book build: it checks the input and output
// directories, locks the output, assembles the markdown and then renders
// the requested formats from it.
package builder

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/harrison/bookbinder/internal/config"
	"github.com/harrison/bookbinder/internal/display"
	"github.com/harrison/bookbinder/internal/filelock"
	"github.com/harrison/bookbinder/internal/fileutil"
	"github.com/harrison/bookbinder/internal/history"
	"github.com/harrison/bookbinder/internal/logger"
	"github.com/harrison/bookbinder/internal/models"
)

// Options configures one build.
type Options struct {
	Input  string // Source root
	Output string // Destination root
	Force  bool   // Remove a non-empty destination before building

	Config  *config.Config     // nil selects config.DefaultConfig()
	Logger  logger.BuildLogger // nil discards log events
	History *history.Store     // nil disables history recording
	Out     io.Writer          // progress lines and warnings; nil disables them
}

// Builder runs builds. A Builder may be reused; each Build call is
// independent.
type Builder struct {
	opts Options
	cfg  *config.Config
	log  logger.BuildLogger
	fs   fileutil.OS
}

// New creates a Builder from opts.
func New(opts Options) *Builder {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	log := opts.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Builder{opts: opts, cfg: cfg, log: log}
}

// Build performs the run. Configuration and precondition problems are
// reported before anything is written. An I/O error while assembling
// markdown aborts the run and leaves partial output in place. Render
// failures do not stop later stages; they are collected into a
// RenderError returned alongside the result.
func (b *Builder) Build(ctx context.Context) (result *models.BuildResult, err error) {
	started := time.Now()
	defer func() {
		b.record(ctx, result, started, err)
	}()

	input, output, err := b.resolvePaths()
	if err != nil {
		return nil, err
	}

	lock, err := b.acquireLock(output)
	if err != nil {
		return nil, err
	}
	defer lock.Unlock()

	if err := b.prepareOutput(output); err != nil {
		return nil, err
	}

	result = &models.BuildResult{
		ID:     uuid.NewString(),
		Input:  input,
		Output: output,
	}
	b.log.LogInfo(fmt.Sprintf("Building %s into %s (build %s)", input, output, result.ID))

	tree, err := fileutil.LoadTree(input)
	if err != nil {
		return result, err
	}

	stages := b.stages()
	var progress *display.ProgressIndicator
	if b.opts.Out != nil {
		progress = display.NewProgressIndicator(b.opts.Out, len(stages))
		progress.Start("Building book")
	}

	var book *assembledBook
	var failures []StageFailure
	for i, stage := range stages {
		if progress != nil {
			progress.Step(string(stage))
		}
		b.log.LogStageStart(string(stage))
		stageStart := time.Now()

		var artifact models.Artifact
		if stage == models.ArtifactMarkdown {
			book, err = b.assemble(tree, output)
			if err != nil {
				return result, fmt.Errorf("failed to assemble markdown: %w", err)
			}
			result.Chapters = book.stats.Chapters
			result.Fragments = book.stats.Fragments
			result.Images = book.stats.Images
			result.Duplicates = book.duplicates
			artifact = models.Artifact{Kind: stage, Path: book.markdownRoot}
		} else {
			artifact = b.render(stage, book, result)
		}

		result.Artifacts = append(result.Artifacts, artifact)
		if artifact.Error != nil {
			failures = append(failures, StageFailure{Stage: string(stage), Err: artifact.Error})
			b.log.LogError(fmt.Sprintf("%s stage failed: %v", stage, artifact.Error))
			if progress != nil {
				progress.Fail(string(stage), artifact.Error)
			}
		}
		b.log.LogStageComplete(string(stage), time.Since(stageStart))
		b.log.LogProgress("stages", i+1, len(stages))
	}

	if len(result.Duplicates) > 0 {
		b.log.LogWarn(fmt.Sprintf("Duplicate anchors: %v", result.Duplicates))
		if b.opts.Out != nil {
			display.WarnDuplicateAnchors(result.Duplicates).Display(b.opts.Out)
		}
	}

	result.Duration = time.Since(started)
	b.log.LogSummary(result)

	if progress != nil {
		progress.Complete(fmt.Sprintf("Built %d of %d artifacts in %s", len(stages)-len(failures), len(stages), output))
	}

	if len(failures) > 0 {
		return result, &RenderError{Failures: failures}
	}
	return result, nil
}

// stages lists the stages to run in order. Markdown always runs first
// since every other format renders from it.
func (b *Builder) stages() []models.ArtifactKind {
	stages := []models.ArtifactKind{models.ArtifactMarkdown}
	for _, kind := range []models.ArtifactKind{models.ArtifactHTML, models.ArtifactPDF, models.ArtifactDOCX} {
		if b.cfg.Wants(kind) {
			stages = append(stages, kind)
		}
	}
	return stages
}

func (b *Builder) resolvePaths() (string, string, error) {
	if b.opts.Input == "" {
		return "", "", &ConfigError{Field: "input", Message: "an input directory is required"}
	}
	if b.opts.Output == "" {
		return "", "", &ConfigError{Field: "output", Message: "an output directory is required"}
	}
	if err := b.cfg.Validate(); err != nil {
		return "", "", &ConfigError{Err: err}
	}

	input, err := filepath.Abs(b.opts.Input)
	if err != nil {
		return "", "", &ConfigError{Field: "input", Err: err}
	}
	output, err := filepath.Abs(b.opts.Output)
	if err != nil {
		return "", "", &ConfigError{Field: "output", Err: err}
	}

	info, err := os.Stat(input)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return "", "", &PreconditionError{Path: input, Message: "input directory does not exist"}
	case err != nil:
		return "", "", &PreconditionError{Path: input, Message: "input directory is unreadable", Err: err}
	case !info.IsDir():
		return "", "", &PreconditionError{Path: input, Message: "input is not a directory"}
	}
	if input == output {
		return "", "", &PreconditionError{Path: output, Message: "output directory must differ from the input directory"}
	}
	if rel, err := filepath.Rel(output, input); err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", "", &PreconditionError{Path: input, Message: "input directory lies inside the output directory"}
	}

	return input, output, nil
}

func (b *Builder) acquireLock(output string) (*filelock.FileLock, error) {
	lock, err := filelock.ForOutput(output)
	if err != nil {
		return nil, &PreconditionError{Path: output, Message: "cannot lock output directory", Err: err}
	}
	if err := lock.TryLock(); err != nil {
		if errors.Is(err, filelock.ErrLocked) {
			return nil, &PreconditionError{Path: output, Message: "another build is writing to this output directory"}
		}
		return nil, &PreconditionError{Path: output, Message: "cannot lock output directory", Err: err}
	}
	return lock, nil
}

// prepareOutput refuses a non-empty output unless forced, in which case the
// directory is removed and recreated.
func (b *Builder) prepareOutput(output string) error {
	empty, err := fileutil.IsEmptyDir(output)
	if err != nil {
		return &PreconditionError{Path: output, Message: "output directory is unreadable", Err: err}
	}
	if !empty {
		if !b.opts.Force {
			return &PreconditionError{Path: output, Message: "output directory is not empty (use --force to replace it)"}
		}
		b.log.LogInfo(fmt.Sprintf("Removing existing output %s", output))
		if err := os.RemoveAll(output); err != nil {
			return fmt.Errorf("failed to clean output directory %s: %w", output, err)
		}
	}
	return fileutil.EnsureDir(output)
}

// record writes the build to history. History failures never fail a build.
func (b *Builder) record(ctx context.Context, result *models.BuildResult, started time.Time, buildErr error) {
	if b.opts.History == nil {
		return
	}
	formats := make([]string, 0, 4)
	for _, stage := range b.stages() {
		formats = append(formats, string(stage))
	}
	entry := history.FromResult(result, b.opts.Input, b.opts.Output, formats, started, buildErr)
	if err := b.opts.History.Record(ctx, entry); err != nil {
		b.log.LogWarn(fmt.Sprintf("Failed to record build history: %v", err))
	}
}
