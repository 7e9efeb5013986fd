package models

// ReservedKind enumerates filenames and directory names with special meaning
// to the assembler. Reserved entries are never treated as generic content.
type ReservedKind int

const (
	// ReservedTitleOverride holds a chapter's display title
	ReservedTitleOverride ReservedKind = iota
	// ReservedPreamble is inlined right after a chapter heading
	ReservedPreamble
	// ReservedIntro is the collected book introduction in the output tree
	ReservedIntro
	// ReservedToc is the generated table of contents file
	ReservedToc
	// ReservedMarkdownDir is the multi-file markdown output directory
	ReservedMarkdownDir
	// ReservedHTMLDir is the HTML output directory
	ReservedHTMLDir
	// ReservedPDFDir is the PDF output directory
	ReservedPDFDir
	// ReservedBookDir is the single-document markdown output directory
	ReservedBookDir
	// ReservedDOCXDir is the DOCX output directory
	ReservedDOCXDir
)

var reservedNames = map[ReservedKind]string{
	ReservedTitleOverride: "_title.md",
	ReservedPreamble:      "_content.md",
	ReservedIntro:         "_intro.md",
	ReservedToc:           "summary.md",
	ReservedMarkdownDir:   "markdown",
	ReservedHTMLDir:       "html",
	ReservedPDFDir:        "pdf",
	ReservedBookDir:       "book",
	ReservedDOCXDir:       "docx",
}

// AllReservedKinds lists every reserved kind in declaration order.
func AllReservedKinds() []ReservedKind {
	return []ReservedKind{
		ReservedTitleOverride,
		ReservedPreamble,
		ReservedIntro,
		ReservedToc,
		ReservedMarkdownDir,
		ReservedHTMLDir,
		ReservedPDFDir,
		ReservedBookDir,
		ReservedDOCXDir,
	}
}

// Name returns the on-disk name of the reserved entry.
func (k ReservedKind) Name() string {
	return reservedNames[k]
}

// String returns the string representation of ReservedKind.
func (k ReservedKind) String() string {
	switch k {
	case ReservedTitleOverride:
		return "title-override"
	case ReservedPreamble:
		return "preamble"
	case ReservedIntro:
		return "intro"
	case ReservedToc:
		return "toc"
	case ReservedMarkdownDir:
		return "markdown-dir"
	case ReservedHTMLDir:
		return "html-dir"
	case ReservedPDFDir:
		return "pdf-dir"
	case ReservedBookDir:
		return "book-dir"
	case ReservedDOCXDir:
		return "docx-dir"
	default:
		return "unknown"
	}
}

// ReservedNames returns the names of all reserved entries.
func ReservedNames() []string {
	kinds := AllReservedKinds()
	names := make([]string, 0, len(kinds))
	for _, k := range kinds {
		names = append(names, k.Name())
	}
	return names
}

// LookupReserved returns the reserved kind matching name exactly.
func LookupReserved(name string) (ReservedKind, bool) {
	for k, n := range reservedNames {
		if n == name {
			return k, true
		}
	}
	return 0, false
}
