// Package display provides terminal output for build progress and warnings.
//
// # Progress Indicators
//
// Use ProgressIndicator for the stages of a build:
//
//	progress := display.NewProgressIndicator(os.Stdout, len(stages))
//	progress.Start("Building book")
//	for _, stage := range stages {
//	    progress.Step(stage)
//	    // ... run stage ...
//	}
//	progress.Complete("Built 3 artifacts")
//
// # Warning Messages
//
// Display warnings with optional components:
//
//	warning := display.Warning{
//	    Title:      "Duplicate anchors",
//	    Message:    "Links to these headings resolve to the first chapter",
//	    Files:      []string{"setup/_title.md", "appendix/setup"},
//	    Suggestion: "Give the chapters distinct titles",
//	}
//	warning.Display(os.Stderr)
//
// Colors come from fatih/color and are dropped automatically when the
// output is not a terminal or NO_COLOR is set.
package display
