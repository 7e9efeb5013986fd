// Package logger provides logging implementations for book builds.
//
// The logger package records build progress at the stage and summary
// levels. Implementations are thread-safe and support various output
// destinations (console, file, or several at once).
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"

	"github.com/harrison/bookbinder/internal/models"
)

// Log level constants for filtering
const (
	levelTrace int = 0
	levelDebug int = 1
	levelInfo  int = 2
	levelWarn  int = 3
	levelError int = 4
)

// ConsoleLogger logs build progress to a writer with timestamps and thread safety.
// All output is prefixed with [HH:MM:SS] timestamps for tracking the build.
// It supports log level filtering to control message verbosity.
// Color output is automatically enabled for terminal output (os.Stdout/os.Stderr).
type ConsoleLogger struct {
	writer      io.Writer
	logLevel    string
	mutex       sync.Mutex
	colorOutput bool
}

// NewConsoleLogger creates a ConsoleLogger that writes to the provided io.Writer.
// If writer is nil, messages are silently discarded.
// logLevel determines the minimum log level for messages to be output.
// Valid levels: trace, debug, info, warn, error (case-insensitive).
// If logLevel is empty or invalid, defaults to "info".
func NewConsoleLogger(writer io.Writer, logLevel string) *ConsoleLogger {
	return &ConsoleLogger{
		writer:      writer,
		logLevel:    normalizeLogLevel(logLevel),
		colorOutput: isTerminal(writer),
	}
}

// isTerminal checks if the writer is a terminal that supports colors.
// Returns true for os.Stdout and os.Stderr when they are TTYs.
func isTerminal(w io.Writer) bool {
	if w == nil {
		return false
	}

	if w == os.Stdout || w == os.Stderr {
		// fatih/color already honors NO_COLOR and TTY detection
		return !color.NoColor
	}

	return false
}

// ValidLevel reports whether level names a supported log level.
func ValidLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "error":
		return true
	}
	return false
}

// normalizeLogLevel converts a log level string to lowercase and validates it.
// Returns "info" as default for empty or invalid levels.
func normalizeLogLevel(level string) string {
	if ValidLevel(level) {
		return strings.ToLower(strings.TrimSpace(level))
	}
	return "info"
}

// shouldLog checks if a message at the given level should be logged.
func (cl *ConsoleLogger) shouldLog(messageLevel string) bool {
	return logLevelToInt(messageLevel) >= logLevelToInt(cl.logLevel)
}

// logLevelToInt converts a log level string to its numeric value.
func logLevelToInt(level string) int {
	switch level {
	case "trace":
		return levelTrace
	case "debug":
		return levelDebug
	case "info":
		return levelInfo
	case "warn":
		return levelWarn
	case "error":
		return levelError
	default:
		return levelInfo
	}
}

// LogTrace logs a trace-level message (most verbose).
// Format: "[HH:MM:SS] [TRACE] <message>"
func (cl *ConsoleLogger) LogTrace(message string) {
	cl.logWithLevel("TRACE", message)
}

// LogDebug logs a debug-level message.
// Format: "[HH:MM:SS] [DEBUG] <message>"
func (cl *ConsoleLogger) LogDebug(message string) {
	cl.logWithLevel("DEBUG", message)
}

// LogInfo logs an info-level message.
// Format: "[HH:MM:SS] [INFO] <message>"
func (cl *ConsoleLogger) LogInfo(message string) {
	cl.logWithLevel("INFO", message)
}

// LogWarn logs a warning-level message.
// Format: "[HH:MM:SS] [WARN] <message>"
func (cl *ConsoleLogger) LogWarn(message string) {
	cl.logWithLevel("WARN", message)
}

// LogError logs an error-level message.
// Format: "[HH:MM:SS] [ERROR] <message>"
func (cl *ConsoleLogger) LogError(message string) {
	cl.logWithLevel("ERROR", message)
}

// logWithLevel is a helper that logs a message at the specified level if filtering allows it.
func (cl *ConsoleLogger) logWithLevel(level string, message string) {
	if cl.writer == nil {
		return
	}

	if !cl.shouldLog(strings.ToLower(level)) {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	ts := timestamp()
	var formatted string
	if cl.colorOutput {
		formatted = cl.formatWithColor(ts, level, message)
	} else {
		formatted = fmt.Sprintf("[%s] [%s] %s\n", ts, level, message)
	}

	cl.writer.Write([]byte(formatted))
}

// formatWithColor formats a log message with ANSI color codes.
func (cl *ConsoleLogger) formatWithColor(ts, level, message string) string {
	var coloredLevel string

	switch strings.ToUpper(level) {
	case "TRACE":
		coloredLevel = color.New(color.FgHiBlack).Sprint(level)
	case "DEBUG":
		coloredLevel = color.New(color.FgCyan).Sprint(level)
	case "INFO":
		coloredLevel = color.New(color.FgBlue).Sprint(level)
	case "WARN":
		coloredLevel = color.New(color.FgYellow).Sprint(level)
	case "ERROR":
		coloredLevel = color.New(color.FgRed).Sprint(level)
	default:
		coloredLevel = level
	}

	return fmt.Sprintf("[%s] [%s] %s\n", ts, coloredLevel, message)
}

// LogStageStart logs the start of a build stage at INFO level.
// Format: "[HH:MM:SS] Starting <stage> stage"
func (cl *ConsoleLogger) LogStageStart(stage string) {
	if cl.writer == nil || !cl.shouldLog("info") {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	name := stage
	if cl.colorOutput {
		name = color.New(color.Bold).Sprint(stage)
	}
	cl.writer.Write([]byte(fmt.Sprintf("[%s] Starting %s stage\n", timestamp(), name)))
}

// LogStageComplete logs the completion of a build stage at INFO level.
// Format: "[HH:MM:SS] <stage> stage complete (<duration>)"
func (cl *ConsoleLogger) LogStageComplete(stage string, duration time.Duration) {
	if cl.writer == nil || !cl.shouldLog("info") {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	ts := timestamp()
	durationStr := formatDuration(duration)

	var message string
	if cl.colorOutput {
		name := color.New(color.Bold).Sprint(stage)
		completeText := color.New(color.FgGreen).Sprint("complete")
		message = fmt.Sprintf("[%s] %s stage %s (%s)\n", ts, name, completeText, durationStr)
	} else {
		message = fmt.Sprintf("[%s] %s stage complete (%s)\n", ts, stage, durationStr)
	}

	cl.writer.Write([]byte(message))
}

// LogChapter logs an assembled chapter at DEBUG level.
// Format: "[HH:MM:SS] Chapter <title> (level <depth>)"
func (cl *ConsoleLogger) LogChapter(title string, depth int) {
	if cl.writer == nil || !cl.shouldLog("debug") {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	indent := strings.Repeat("  ", max(depth-1, 0))
	cl.writer.Write([]byte(fmt.Sprintf("[%s] %sChapter %s (level %d)\n", timestamp(), indent, title, depth)))
}

// LogProgress logs how many of a stage's steps have finished at INFO level.
// Format: "[HH:MM:SS] <label>: [=====     ] 1/2 (50%)"
func (cl *ConsoleLogger) LogProgress(label string, done, total int) {
	if cl.writer == nil || !cl.shouldLog("info") {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	pb := NewProgressBar(total, 10, cl.colorOutput)
	pb.Update(done)
	cl.writer.Write([]byte(fmt.Sprintf("[%s] %s: %s\n", timestamp(), label, pb.Render())))
}

// LogSummary logs the build summary at INFO level.
func (cl *ConsoleLogger) LogSummary(result *models.BuildResult) {
	if cl.writer == nil || result == nil || !cl.shouldLog("info") {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	ts := timestamp()
	failed := result.Failed()
	scheme := newColorScheme()

	var b strings.Builder
	if cl.colorOutput {
		fmt.Fprintf(&b, "[%s] %s\n", ts, color.New(color.Bold).Sprint("=== Build Summary ==="))
		for _, line := range summaryMetrics(result) {
			fmt.Fprintf(&b, "[%s] %s\n", ts, scheme.metric(line.label, line.value))
		}
		for _, artifact := range result.Artifacts {
			fmt.Fprintf(&b, "[%s]   - %s: %s\n", ts, artifact.Kind, scheme.artifactStatus(artifact))
		}
		if len(result.Duplicates) > 0 {
			fmt.Fprintf(&b, "[%s] %s\n", ts, scheme.warn.Sprintf("Duplicate anchors: %d", len(result.Duplicates)))
		}
		fmt.Fprintf(&b, "[%s] %s\n", ts, scheme.outcome(len(failed)))
	} else {
		fmt.Fprintf(&b, "[%s] === Build Summary ===\n", ts)
		for _, line := range summaryMetrics(result) {
			fmt.Fprintf(&b, "[%s] %s: %v\n", ts, line.label, line.value)
		}
		for _, artifact := range result.Artifacts {
			status := "ok"
			if artifact.Error != nil {
				status = fmt.Sprintf("failed: %v", artifact.Error)
			}
			fmt.Fprintf(&b, "[%s]   - %s: %s\n", ts, artifact.Kind, status)
		}
		if len(result.Duplicates) > 0 {
			fmt.Fprintf(&b, "[%s] Duplicate anchors: %d\n", ts, len(result.Duplicates))
		}
		if len(failed) == 0 {
			fmt.Fprintf(&b, "[%s] Build succeeded\n", ts)
		} else {
			fmt.Fprintf(&b, "[%s] Build finished with %d failed stage(s)\n", ts, len(failed))
		}
	}

	cl.writer.Write([]byte(b.String()))
}

type metric struct {
	label string
	value interface{}
}

// summaryMetrics lists the counters shown in every build summary.
func summaryMetrics(result *models.BuildResult) []metric {
	metrics := []metric{
		{"Chapters", result.Chapters},
		{"Fragments", result.Fragments},
		{"Images", result.Images},
	}
	if result.Pages > 0 {
		metrics = append(metrics, metric{"PDF pages", result.Pages})
	}
	metrics = append(metrics, metric{"Duration", formatDuration(result.Duration)})
	return metrics
}

// timestamp returns the current time formatted as "15:04:05" (HH:MM:SS).
func timestamp() string {
	return time.Now().Format("15:04:05")
}

// formatDuration converts a time.Duration to a human-readable string.
// Examples: "5s", "1m30s", "2h15m". Durations under a second keep
// millisecond precision.
func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Hour:
		hours := d / time.Hour
		remainder := d % time.Hour
		if remainder == 0 {
			return fmt.Sprintf("%dh", hours)
		}
		minutes := remainder / time.Minute
		remainder = remainder % time.Minute
		if remainder == 0 {
			return fmt.Sprintf("%dh%dm", hours, minutes)
		}
		seconds := remainder / time.Second
		return fmt.Sprintf("%dh%dm%ds", hours, minutes, seconds)
	case d >= time.Minute:
		minutes := d / time.Minute
		remainder := d % time.Minute
		if remainder == 0 {
			return fmt.Sprintf("%dm", minutes)
		}
		seconds := remainder / time.Second
		return fmt.Sprintf("%dm%ds", minutes, seconds)
	case d >= time.Second:
		return fmt.Sprintf("%ds", int64(d.Seconds()))
	default:
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
}
