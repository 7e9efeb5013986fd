// Package assembler turns a loaded input tree into assembled markdown.
//
// A chapter is a non-ignored directory with at least one child. The package
// walks chapters in pre-order, siblings in listing order, and produces:
//
//   - a table of contents (TOCBuilder), one entry per chapter, indented by
//     depth and linking either to a per-chapter file or to an in-document
//     anchor depending on Mode;
//   - the document body (Assembler), one heading per chapter followed by the
//     chapter preamble, its markdown fragments and image embeds;
//   - the book introduction (Assembler.CollectIntro) from loose files at the
//     input root.
//
// Nesting depth is 1-based and capped at min(section levels, 6). Chapters
// nested deeper than the cap reuse the cap.
//
// All output goes through the FileSystem capability as appends, so a target
// file is never rewritten in place. Callers must not run two assemblers
// against the same target concurrently.
package assembler

// FileSystem is the set of filesystem capabilities the assembler consumes.
type FileSystem interface {
	ReadFile(path string) ([]byte, error)
	Exists(path string) bool
	AppendFile(path string, data []byte) error
	CopyFile(src, dst string) error
	EnsureDir(path string) error
	ListFiles(dir string) ([]string, error)
}

// Logger receives progress messages from the assembler.
type Logger interface {
	LogDebug(message string)
	LogInfo(message string)
	LogWarn(message string)
}

type nopLogger struct{}

func (nopLogger) LogDebug(string) {}
func (nopLogger) LogInfo(string)  {}
func (nopLogger) LogWarn(string)  {}
