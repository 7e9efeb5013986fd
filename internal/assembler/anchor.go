package assembler

import (
	"fmt"
	"regexp"
	"strings"
)

// Dialect captures how a markdown renderer normalizes heading anchors.
// Exclude matches every character the renderer drops from a slug after
// lowercasing and replacing spaces with hyphens.
type Dialect struct {
	Name    string
	Exclude *regexp.Regexp
}

var (
	// GitHubDialect keeps letters, marks, digits, hyphens and underscores.
	GitHubDialect = Dialect{
		Name:    "github",
		Exclude: regexp.MustCompile(`[^\p{L}\p{M}\p{N}_-]`),
	}

	// PDFDialect drops ASCII punctuation other than hyphen and underscore
	// and keeps everything else.
	PDFDialect = Dialect{
		Name:    "pdf",
		Exclude: regexp.MustCompile("[!\"#$%&'()*+,./:;<=>?@\\[\\\\\\]^`{|}~]"),
	}
)

// cjkPunctuation is stripped from every anchor regardless of dialect.
const cjkPunctuation = "，。？！：；、“”‘’（）《》〈〉【】「」『』…—·～"

// DialectByName returns the dialect registered under name.
func DialectByName(name string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case GitHubDialect.Name:
		return GitHubDialect, nil
	case PDFDialect.Name:
		return PDFDialect, nil
	default:
		return Dialect{}, fmt.Errorf("unknown anchor dialect %q", name)
	}
}

// Anchor computes the in-document link slug for title under dialect.
// Equal titles always produce equal anchors; duplicates are not
// disambiguated.
func Anchor(title string, dialect Dialect) string {
	slug := strings.ToLower(title)
	slug = strings.ReplaceAll(slug, " ", "-")
	if dialect.Exclude != nil {
		slug = dialect.Exclude.ReplaceAllString(slug, "")
	}
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(cjkPunctuation, r) {
			return -1
		}
		return r
	}, slug)
}
