package assembler

import (
	"strings"

	"github.com/harrison/bookbinder/internal/models"
)

// Policy decides whether a node is excluded from the table of contents,
// the body and image copying.
type Policy struct {
	ignore map[string]struct{}
}

// NewPolicy creates a policy ignoring the given exact names in addition to
// hidden entries.
func NewPolicy(names ...string) *Policy {
	ignore := make(map[string]struct{}, len(names))
	for _, name := range names {
		ignore[name] = struct{}{}
	}
	return &Policy{ignore: ignore}
}

// DefaultPolicy ignores every reserved name.
func DefaultPolicy() *Policy {
	return NewPolicy(models.ReservedNames()...)
}

// ShouldIgnore reports whether node is hidden or carries an ignored name.
func (p *Policy) ShouldIgnore(node *models.Node) bool {
	if node == nil {
		return true
	}
	return p.IgnoresName(node.Name)
}

// IgnoresName applies the policy to a bare name.
func (p *Policy) IgnoresName(name string) bool {
	if strings.HasPrefix(name, ".") {
		return true
	}
	_, ok := p.ignore[name]
	return ok
}
