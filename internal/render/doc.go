// Package render turns assembled markdown into the book's output formats.
//
// Every renderer consumes files the assembler has already finished writing:
// HTMLRenderer converts the multi-file markdown tree page by page,
// PDFRenderer and DOCXRenderer lay out an ordered list of markdown
// documents into a single file, and RenderTerminal formats markdown for a
// terminal preview. All of them parse markdown with goldmark so the
// heading anchors they produce agree with the table of contents.
package render
