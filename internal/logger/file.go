package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/harrison/bookbinder/internal/models"
)

// DefaultLogDir is where build logs go when no directory is configured.
var DefaultLogDir = filepath.Join(".bookbinder", "logs")

// FileLogger logs build events to files in a log directory.
// It creates a timestamped log file per run and maintains a latest.log
// symlink pointing to the most recent run.
// It is thread-safe and supports log level filtering.
type FileLogger struct {
	logDir   string
	runLog   *os.File
	runFile  string
	logLevel string
	mu       sync.Mutex
}

// NewFileLogger creates a new FileLogger that writes to DefaultLogDir at
// level "info".
func NewFileLogger() (*FileLogger, error) {
	return NewFileLoggerWithDirAndLevel(DefaultLogDir, "info")
}

// NewFileLoggerWithDir creates a new FileLogger with a custom log directory.
// Uses default log level "info".
func NewFileLoggerWithDir(logDir string) (*FileLogger, error) {
	return NewFileLoggerWithDirAndLevel(logDir, "info")
}

// NewFileLoggerWithDirAndLevel creates a new FileLogger with a custom log directory and log level.
func NewFileLoggerWithDirAndLevel(logDir string, logLevel string) (*FileLogger, error) {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	// Generate timestamped filename: run-YYYYMMDD-HHMMSS.log
	stamp := time.Now().Format("20060102-150405")
	runFile := filepath.Join(logDir, fmt.Sprintf("run-%s.log", stamp))

	file, err := os.OpenFile(runFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create run log file: %w", err)
	}

	symlinkPath := filepath.Join(logDir, "latest.log")
	if _, err := os.Lstat(symlinkPath); err == nil {
		if err := os.Remove(symlinkPath); err != nil {
			file.Close()
			return nil, fmt.Errorf("failed to remove old symlink: %w", err)
		}
	}
	if err := os.Symlink(filepath.Base(runFile), symlinkPath); err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to create symlink: %w", err)
	}

	logger := &FileLogger{
		logDir:   logDir,
		runLog:   file,
		runFile:  runFile,
		logLevel: normalizeLogLevel(logLevel),
	}

	logger.writeRunLog("=== Bookbinder Build Log ===\n")
	logger.writeRunLog(fmt.Sprintf("Started at: %s\n\n", time.Now().Format(time.RFC3339)))

	return logger, nil
}

// Path returns the run log file path.
func (fl *FileLogger) Path() string {
	return fl.runFile
}

// shouldLog checks if a message at the given level should be logged.
func (fl *FileLogger) shouldLog(messageLevel string) bool {
	return logLevelToInt(messageLevel) >= logLevelToInt(fl.logLevel)
}

// LogTrace logs a trace-level message (most verbose).
func (fl *FileLogger) LogTrace(message string) {
	fl.logWithLevel("TRACE", message)
}

// LogDebug logs a debug-level message.
func (fl *FileLogger) LogDebug(message string) {
	fl.logWithLevel("DEBUG", message)
}

// LogInfo logs an info-level message.
func (fl *FileLogger) LogInfo(message string) {
	fl.logWithLevel("INFO", message)
}

// LogWarn logs a warning-level message.
func (fl *FileLogger) LogWarn(message string) {
	fl.logWithLevel("WARN", message)
}

// LogError logs an error-level message.
func (fl *FileLogger) LogError(message string) {
	fl.logWithLevel("ERROR", message)
}

func (fl *FileLogger) logWithLevel(level string, message string) {
	if !fl.shouldLog(strings.ToLower(level)) {
		return
	}
	fl.writeRunLog(fmt.Sprintf("[%s] [%s] %s\n", timestamp(), level, message))
}

// LogStageStart logs the start of a build stage at INFO level.
func (fl *FileLogger) LogStageStart(stage string) {
	if !fl.shouldLog("info") {
		return
	}
	fl.writeRunLog(fmt.Sprintf("\n[%s] === %s ===\n", timestamp(), strings.ToUpper(stage)))
}

// LogStageComplete logs the completion of a build stage at INFO level.
func (fl *FileLogger) LogStageComplete(stage string, duration time.Duration) {
	if !fl.shouldLog("info") {
		return
	}
	fl.writeRunLog(fmt.Sprintf("[%s] %s complete in %.3fs\n", timestamp(), stage, duration.Seconds()))
}

// LogChapter logs an assembled chapter at DEBUG level.
func (fl *FileLogger) LogChapter(title string, depth int) {
	if !fl.shouldLog("debug") {
		return
	}
	fl.writeRunLog(fmt.Sprintf("[%s] chapter depth=%d title=%q\n", timestamp(), depth, title))
}

// LogProgress logs stage progress at INFO level.
func (fl *FileLogger) LogProgress(label string, done, total int) {
	if !fl.shouldLog("info") {
		return
	}
	fl.writeRunLog(fmt.Sprintf("[%s] %s: %d/%d\n", timestamp(), label, done, total))
}

// LogSummary writes the build summary at INFO level.
func (fl *FileLogger) LogSummary(result *models.BuildResult) {
	if result == nil || !fl.shouldLog("info") {
		return
	}

	ts := timestamp()
	status := "SUCCESS"
	if failed := result.Failed(); len(failed) > 0 {
		status = fmt.Sprintf("FAILED (%d stage(s))", len(failed))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\n[%s] === BUILD SUMMARY ===\n", ts)
	fmt.Fprintf(&b, "[%s] Build ID:     %s\n", ts, result.ID)
	fmt.Fprintf(&b, "[%s] Input:        %s\n", ts, result.Input)
	fmt.Fprintf(&b, "[%s] Output:       %s\n", ts, result.Output)
	fmt.Fprintf(&b, "[%s] Chapters:     %d\n", ts, result.Chapters)
	fmt.Fprintf(&b, "[%s] Fragments:    %d\n", ts, result.Fragments)
	fmt.Fprintf(&b, "[%s] Images:       %d\n", ts, result.Images)
	fmt.Fprintf(&b, "[%s] PDF pages:    %d\n", ts, result.Pages)
	fmt.Fprintf(&b, "[%s] Total time:   %.1fs\n", ts, result.Duration.Seconds())
	for _, artifact := range result.Artifacts {
		if artifact.Error != nil {
			fmt.Fprintf(&b, "[%s]   %s: %s (error: %v)\n", ts, artifact.Kind, artifact.Path, artifact.Error)
		} else {
			fmt.Fprintf(&b, "[%s]   %s: %s\n", ts, artifact.Kind, artifact.Path)
		}
	}
	for _, anchor := range result.Duplicates {
		fmt.Fprintf(&b, "[%s] Duplicate anchor: #%s\n", ts, anchor)
	}
	fmt.Fprintf(&b, "[%s] Status:       %s\n", ts, status)
	fmt.Fprintf(&b, "[%s] Completed at: %s\n", ts, time.Now().Format(time.RFC3339))

	fl.writeRunLog(b.String())
}

// Close flushes and closes the run log file.
// It should be called when the logger is no longer needed.
func (fl *FileLogger) Close() error {
	fl.mu.Lock()
	defer fl.mu.Unlock()

	if fl.runLog != nil {
		if err := fl.runLog.Sync(); err != nil {
			return fmt.Errorf("failed to sync run log: %w", err)
		}
		if err := fl.runLog.Close(); err != nil {
			return fmt.Errorf("failed to close run log: %w", err)
		}
		fl.runLog = nil
	}

	return nil
}

// writeRunLog is a thread-safe helper to write to the run log file.
func (fl *FileLogger) writeRunLog(message string) {
	fl.mu.Lock()
	defer fl.mu.Unlock()

	if fl.runLog != nil {
		fl.runLog.WriteString(message)
		fl.runLog.Sync()
	}
}
