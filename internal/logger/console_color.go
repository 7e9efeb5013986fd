package logger

import (
	"fmt"

	"github.com/fatih/color"

	"github.com/harrison/bookbinder/internal/models"
)

// colorScheme holds the colors used by the build summary.
// Green marks produced artifacts, red failed stages, yellow anchor
// collisions and cyan metric labels.
type colorScheme struct {
	success *color.Color
	fail    *color.Color
	warn    *color.Color
	label   *color.Color
	value   *color.Color
}

func newColorScheme() *colorScheme {
	return &colorScheme{
		success: color.New(color.FgGreen),
		fail:    color.New(color.FgRed),
		warn:    color.New(color.FgYellow),
		label:   color.New(color.FgCyan),
		value:   color.New(color.FgWhite),
	}
}

// metric formats "label: value" with a colored label.
func (s *colorScheme) metric(label string, value interface{}) string {
	return fmt.Sprintf("%s: %s", s.label.Sprint(label), s.value.Sprintf("%v", value))
}

// artifactStatus is "ok" in green, or the stage error in red.
func (s *colorScheme) artifactStatus(a models.Artifact) string {
	if a.Error != nil {
		return s.fail.Sprintf("failed: %v", a.Error)
	}
	return s.success.Sprint("ok")
}

// outcome is the closing line of the summary.
func (s *colorScheme) outcome(failed int) string {
	if failed == 0 {
		return s.success.Sprint("Build succeeded")
	}
	return s.fail.Sprintf("Build finished with %d failed stage(s)", failed)
}
