// Package fileutil provides the filesystem primitives the book assembler
// consumes: loading an input directory into a node tree, listing the loose
// files of a directory, and append-only writers for the assembled output.
//
// # Ordering
//
// Every listing is returned in filesystem-listing order, which for this
// package means lexical order by name (the order os.ReadDir guarantees).
// The assembler's output order is derived from these listings, so re-running
// a build over an unchanged tree produces byte-identical markdown.
//
// # Loading a tree
//
//	root, err := fileutil.LoadTree("/path/to/book")
//	if err != nil {
//	    return err
//	}
//	for _, chapter := range root.Children {
//	    fmt.Println(chapter.Name, chapter.IsDir())
//	}
//
// LoadTree filters nothing. Hidden files and reserved names are a concern of
// the assembler's filter policy.
//
// # Writing
//
// OS implements the small filesystem capability set the assembler depends on
// (read, exists, append, copy, ensure-directory, list files). Appends open the
// target in O_APPEND mode for each block so the output is strictly ordered by
// call order and never rewritten in place.
//
// # Scanning
//
// ScanDirectory walks a directory and returns sorted absolute paths of files
// matching an extension set, skipping hidden and excluded directories. The
// HTML stage uses it to find the pages and images of the multi-file tree.
package fileutil
