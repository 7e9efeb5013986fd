package models

// NodeKind distinguishes files from directories in a loaded tree
type NodeKind int

const (
	// KindFile is a regular file
	KindFile NodeKind = iota
	// KindDirectory is a directory; its Children are populated by the loader
	KindDirectory
)

// String returns the string representation of NodeKind.
func (k NodeKind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindDirectory:
		return "directory"
	default:
		return "unknown"
	}
}

// Node represents one filesystem entry discovered under the input root
type Node struct {
	Name     string   // Base name
	Path     string   // Absolute source path
	Kind     NodeKind // File or directory
	Children []*Node  // Ordered children (directories only)
}

// IsDir reports whether the node is a directory.
func (n *Node) IsDir() bool {
	return n != nil && n.Kind == KindDirectory
}

// HasChildren reports whether the node is a directory with at least one child.
// A directory without children is never a chapter.
func (n *Node) HasChildren() bool {
	return n.IsDir() && len(n.Children) > 0
}

// Child returns the direct child with the given name, or nil.
func (n *Node) Child(name string) *Node {
	if n == nil {
		return nil
	}
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}
