package logger

import (
	"bytes"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/harrison/bookbinder/internal/models"
)

var timestampPattern = regexp.MustCompile(`^\[\d{2}:\d{2}:\d{2}\] `)

func TestConsoleLogger_LevelFiltering(t *testing.T) {
	tests := []struct {
		name     string
		level    string
		expected []string
		filtered []string
	}{
		{"trace shows everything", "trace", []string{"[TRACE]", "[DEBUG]", "[INFO]", "[WARN]", "[ERROR]"}, nil},
		{"info hides debug", "info", []string{"[INFO]", "[WARN]", "[ERROR]"}, []string{"[TRACE]", "[DEBUG]"}},
		{"error only", "error", []string{"[ERROR]"}, []string{"[INFO]", "[WARN]"}},
		{"uppercase accepted", "WARN", []string{"[WARN]", "[ERROR]"}, []string{"[INFO]"}},
		{"invalid defaults to info", "loud", []string{"[INFO]"}, []string{"[DEBUG]"}},
		{"empty defaults to info", "", []string{"[INFO]"}, []string{"[DEBUG]"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			cl := NewConsoleLogger(buf, tt.level)
			cl.LogTrace("t")
			cl.LogDebug("d")
			cl.LogInfo("i")
			cl.LogWarn("w")
			cl.LogError("e")

			out := buf.String()
			for _, want := range tt.expected {
				if !strings.Contains(out, want) {
					t.Errorf("expected %q in output:\n%s", want, out)
				}
			}
			for _, unwanted := range tt.filtered {
				if strings.Contains(out, unwanted) {
					t.Errorf("did not expect %q in output:\n%s", unwanted, out)
				}
			}
		})
	}
}

func TestConsoleLogger_Format(t *testing.T) {
	buf := &bytes.Buffer{}
	cl := NewConsoleLogger(buf, "info")

	cl.LogWarn("missing image")

	line := buf.String()
	if !timestampPattern.MatchString(line) {
		t.Fatalf("expected [HH:MM:SS] prefix, got %q", line)
	}
	if !strings.HasSuffix(line, "[WARN] missing image\n") {
		t.Errorf("unexpected line %q", line)
	}
}

func TestConsoleLogger_NilWriter(t *testing.T) {
	cl := NewConsoleLogger(nil, "trace")
	cl.LogInfo("ignored")
	cl.LogStageStart("markdown")
	cl.LogSummary(&models.BuildResult{})
}

func TestConsoleLogger_Stages(t *testing.T) {
	buf := &bytes.Buffer{}
	cl := NewConsoleLogger(buf, "info")

	cl.LogStageStart("markdown")
	cl.LogStageComplete("markdown", 250*time.Millisecond)

	out := buf.String()
	if !strings.Contains(out, "Starting markdown stage") {
		t.Errorf("missing stage start: %s", out)
	}
	if !strings.Contains(out, "markdown stage complete (250ms)") {
		t.Errorf("missing stage completion: %s", out)
	}

	buf.Reset()
	quiet := NewConsoleLogger(buf, "warn")
	quiet.LogStageStart("pdf")
	if buf.Len() != 0 {
		t.Errorf("stage events should be filtered at warn, got %q", buf.String())
	}
}

func TestConsoleLogger_ChapterIsDebug(t *testing.T) {
	buf := &bytes.Buffer{}
	NewConsoleLogger(buf, "info").LogChapter("Intro", 1)
	if buf.Len() != 0 {
		t.Fatalf("chapter should not log at info: %q", buf.String())
	}

	NewConsoleLogger(buf, "debug").LogChapter("Details", 3)
	if !strings.Contains(buf.String(), "    Chapter Details (level 3)") {
		t.Errorf("unexpected chapter line %q", buf.String())
	}
}

func TestConsoleLogger_Progress(t *testing.T) {
	buf := &bytes.Buffer{}
	NewConsoleLogger(buf, "info").LogProgress("chapters", 1, 2)

	if !strings.Contains(buf.String(), "chapters: [=====     ] 1/2 (50%)") {
		t.Errorf("unexpected progress line %q", buf.String())
	}
}

func TestConsoleLogger_Summary(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		buf := &bytes.Buffer{}
		NewConsoleLogger(buf, "info").LogSummary(&models.BuildResult{
			Chapters:  4,
			Fragments: 6,
			Images:    2,
			Pages:     9,
			Duration:  1500 * time.Millisecond,
			Artifacts: []models.Artifact{
				{Kind: models.ArtifactMarkdown, Path: "out/markdown"},
				{Kind: models.ArtifactPDF, Path: "out/pdf/output.pdf"},
			},
		})

		out := buf.String()
		for _, want := range []string{
			"=== Build Summary ===",
			"Chapters: 4",
			"Fragments: 6",
			"Images: 2",
			"PDF pages: 9",
			"Duration: 1s",
			"  - markdown: ok",
			"  - pdf: ok",
			"Build succeeded",
		} {
			if !strings.Contains(out, want) {
				t.Errorf("expected %q in summary:\n%s", want, out)
			}
		}
	})

	t.Run("failed stage and duplicates", func(t *testing.T) {
		buf := &bytes.Buffer{}
		NewConsoleLogger(buf, "info").LogSummary(&models.BuildResult{
			Artifacts: []models.Artifact{
				{Kind: models.ArtifactMarkdown},
				{Kind: models.ArtifactHTML, Error: errors.New("disk full")},
			},
			Duplicates: []string{"setup"},
		})

		out := buf.String()
		if strings.Contains(out, "PDF pages") {
			t.Errorf("page count should be omitted without a PDF:\n%s", out)
		}
		for _, want := range []string{"  - html: failed: disk full", "Duplicate anchors: 1", "Build finished with 1 failed stage(s)"} {
			if !strings.Contains(out, want) {
				t.Errorf("expected %q in summary:\n%s", want, out)
			}
		}
	})
}

func TestValidLevel(t *testing.T) {
	for _, level := range []string{"trace", "debug", "info", "warn", "error", " Info "} {
		if !ValidLevel(level) {
			t.Errorf("ValidLevel(%q) = false", level)
		}
	}
	for _, level := range []string{"", "warning", "fatal"} {
		if ValidLevel(level) {
			t.Errorf("ValidLevel(%q) = true", level)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{250 * time.Millisecond, "250ms"},
		{5 * time.Second, "5s"},
		{90 * time.Second, "1m30s"},
		{2 * time.Minute, "2m"},
		{2*time.Hour + 15*time.Minute, "2h15m"},
		{time.Hour + 2*time.Minute + 3*time.Second, "1h2m3s"},
	}
	for _, tt := range tests {
		if got := formatDuration(tt.in); got != tt.want {
			t.Errorf("formatDuration(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
