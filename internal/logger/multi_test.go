package logger

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/harrison/bookbinder/internal/models"
)

func TestMultiLogger_FansOut(t *testing.T) {
	first := &bytes.Buffer{}
	second := &bytes.Buffer{}
	m := NewMultiLogger(NewConsoleLogger(first, "info"), nil, NewConsoleLogger(second, "info"))

	m.LogInfo("hello")
	m.LogStageStart("docx")
	m.LogStageComplete("docx", time.Second)
	m.LogSummary(&models.BuildResult{})

	for i, buf := range []*bytes.Buffer{first, second} {
		out := buf.String()
		for _, want := range []string{"[INFO] hello", "Starting docx stage", "docx stage complete (1s)", "Build succeeded"} {
			if !strings.Contains(out, want) {
				t.Errorf("logger %d missing %q:\n%s", i, want, out)
			}
		}
	}
}

func TestNoOpLogger(t *testing.T) {
	var l BuildLogger = NewNoOpLogger()
	l.LogInfo("x")
	l.LogChapter("x", 1)
	l.LogProgress("x", 1, 1)
	l.LogSummary(nil)
}
