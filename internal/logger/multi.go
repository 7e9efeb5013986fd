package logger

import (
	"time"

	"github.com/harrison/bookbinder/internal/models"
)

// BuildLogger is the set of events a build reports.
type BuildLogger interface {
	LogTrace(message string)
	LogDebug(message string)
	LogInfo(message string)
	LogWarn(message string)
	LogError(message string)
	LogStageStart(stage string)
	LogStageComplete(stage string, duration time.Duration)
	LogChapter(title string, depth int)
	LogProgress(label string, done, total int)
	LogSummary(result *models.BuildResult)
}

var (
	_ BuildLogger = (*ConsoleLogger)(nil)
	_ BuildLogger = (*FileLogger)(nil)
	_ BuildLogger = (*MultiLogger)(nil)
	_ BuildLogger = (*NoOpLogger)(nil)
)

// MultiLogger forwards every event to each of its loggers in order.
type MultiLogger struct {
	loggers []BuildLogger
}

// NewMultiLogger creates a MultiLogger. Nil loggers are skipped.
func NewMultiLogger(loggers ...BuildLogger) *MultiLogger {
	m := &MultiLogger{}
	for _, l := range loggers {
		if l != nil {
			m.loggers = append(m.loggers, l)
		}
	}
	return m
}

func (m *MultiLogger) LogTrace(message string) {
	for _, l := range m.loggers {
		l.LogTrace(message)
	}
}

func (m *MultiLogger) LogDebug(message string) {
	for _, l := range m.loggers {
		l.LogDebug(message)
	}
}

func (m *MultiLogger) LogInfo(message string) {
	for _, l := range m.loggers {
		l.LogInfo(message)
	}
}

func (m *MultiLogger) LogWarn(message string) {
	for _, l := range m.loggers {
		l.LogWarn(message)
	}
}

func (m *MultiLogger) LogError(message string) {
	for _, l := range m.loggers {
		l.LogError(message)
	}
}

func (m *MultiLogger) LogStageStart(stage string) {
	for _, l := range m.loggers {
		l.LogStageStart(stage)
	}
}

func (m *MultiLogger) LogStageComplete(stage string, duration time.Duration) {
	for _, l := range m.loggers {
		l.LogStageComplete(stage, duration)
	}
}

func (m *MultiLogger) LogChapter(title string, depth int) {
	for _, l := range m.loggers {
		l.LogChapter(title, depth)
	}
}

func (m *MultiLogger) LogProgress(label string, done, total int) {
	for _, l := range m.loggers {
		l.LogProgress(label, done, total)
	}
}

func (m *MultiLogger) LogSummary(result *models.BuildResult) {
	for _, l := range m.loggers {
		l.LogSummary(result)
	}
}

// NoOpLogger is a BuildLogger that discards all events.
// Useful for testing or when logging is disabled.
type NoOpLogger struct{}

// NewNoOpLogger creates a NoOpLogger instance.
func NewNoOpLogger() *NoOpLogger {
	return &NoOpLogger{}
}

func (n *NoOpLogger) LogTrace(string)                        {}
func (n *NoOpLogger) LogDebug(string)                        {}
func (n *NoOpLogger) LogInfo(string)                         {}
func (n *NoOpLogger) LogWarn(string)                         {}
func (n *NoOpLogger) LogError(string)                        {}
func (n *NoOpLogger) LogStageStart(string)                   {}
func (n *NoOpLogger) LogStageComplete(string, time.Duration) {}
func (n *NoOpLogger) LogChapter(string, int)                 {}
func (n *NoOpLogger) LogProgress(string, int, int)           {}
func (n *NoOpLogger) LogSummary(*models.BuildResult)         {}
