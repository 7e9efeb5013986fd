package models

import "time"

// ArtifactKind names an output format produced by a build
type ArtifactKind string

const (
	ArtifactMarkdown ArtifactKind = "markdown"
	ArtifactHTML     ArtifactKind = "html"
	ArtifactPDF      ArtifactKind = "pdf"
	ArtifactDOCX     ArtifactKind = "docx"
)

// Artifact describes one produced (or failed) output
type Artifact struct {
	Kind  ArtifactKind // Output format
	Path  string       // Primary file or directory written
	Error error        // Non-nil if the stage failed
}

// BuildResult represents the aggregate result of one build run
type BuildResult struct {
	ID         string        // Build identifier
	Input      string        // Absolute input root
	Output     string        // Absolute output root
	Chapters   int           // Chapters emitted into the body
	Fragments  int           // Markdown fragments appended
	Images     int           // Images copied
	Pages      int           // PDF page count (0 when no PDF was produced)
	Duration   time.Duration // Total build time
	Artifacts  []Artifact    // Produced artifacts, in stage order
	Duplicates []string      // Anchors shared by more than one chapter
}

// Failed returns the artifacts whose stage failed.
func (r *BuildResult) Failed() []Artifact {
	var failed []Artifact
	for _, a := range r.Artifacts {
		if a.Error != nil {
			failed = append(failed, a)
		}
	}
	return failed
}
