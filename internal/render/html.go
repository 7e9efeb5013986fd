package render

import (
	"bytes"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/parser"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/harrison/bookbinder/internal/assembler"
	"github.com/harrison/bookbinder/internal/filelock"
	"github.com/harrison/bookbinder/internal/fileutil"
)

// StyleSheetName is the stylesheet every HTML page links to, written at the
// root of the html output tree.
const StyleSheetName = "html-styles.css"

const htmlHeader = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>%s</title>
<link rel="stylesheet" href="%s">
</head>
<body>
<article class="markdown-body">
`

const htmlFooter = `</article>
</body>
</html>
`

// HTMLStats summarizes one HTML render pass.
type HTMLStats struct {
	Pages  int
	Assets int
}

// HTMLRenderer converts markdown pages to standalone HTML pages.
type HTMLRenderer struct {
	md              goldmark.Markdown
	dialect         assembler.Dialect
	imageExtensions map[string]bool
	styleSheet      []byte
	logger          assembler.Logger
}

// NewHTMLRenderer creates a renderer. styleSheet is the CSS written next to
// the pages; nil selects the built-in stylesheet. imageExtensions lists the
// asset files copied alongside the pages.
func NewHTMLRenderer(styleSheet []byte, imageExtensions map[string]bool, logger assembler.Logger) *HTMLRenderer {
	if styleSheet == nil {
		styleSheet = DefaultHTMLStyleSheet()
	}
	if logger == nil {
		logger = nopLogger{}
	}
	return &HTMLRenderer{
		md:              newMarkdown(),
		dialect:         assembler.GitHubDialect,
		imageExtensions: imageExtensions,
		styleSheet:      styleSheet,
		logger:          logger,
	}
}

// Render converts markdown to an HTML fragment and rewrites relative links
// to markdown files so they point at the rendered pages.
func (r *HTMLRenderer) Render(src []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.md.Convert(src, &buf, parser.WithContext(parseContext(r.dialect))); err != nil {
		return nil, fmt.Errorf("markdown convert: %w", err)
	}
	return RewriteLinks(buf.Bytes())
}

// Page renders src and wraps it in the page header and footer. depth is the
// number of directories between the page and the html output root.
func (r *HTMLRenderer) Page(src []byte, title string, depth int) ([]byte, error) {
	body, err := r.Render(src)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, htmlHeader, html.EscapeString(title), StyleHref(depth))
	buf.Write(body)
	buf.WriteString(htmlFooter)
	return buf.Bytes(), nil
}

// RenderTree renders every markdown file under srcRoot to the same relative
// path under dstRoot with an .html extension, copies image assets and writes
// the stylesheet.
func (r *HTMLRenderer) RenderTree(srcRoot, dstRoot string) (*HTMLStats, error) {
	stats := &HTMLStats{}

	srcRoot, err := filepath.Abs(srcRoot)
	if err != nil {
		return stats, err
	}

	pages, err := fileutil.ScanDirectory(srcRoot, fileutil.ScanOptions{
		Extensions: []string{".md"},
		Recursive:  true,
	})
	if err != nil {
		return stats, fmt.Errorf("failed to scan %s: %w", srcRoot, err)
	}

	if err := filelock.AtomicWrite(filepath.Join(dstRoot, StyleSheetName), r.styleSheet); err != nil {
		return stats, err
	}

	for _, page := range pages.Files {
		rel, err := filepath.Rel(srcRoot, page)
		if err != nil {
			return stats, err
		}

		src, err := os.ReadFile(page)
		if err != nil {
			return stats, fmt.Errorf("failed to read %s: %w", page, err)
		}

		title := strings.TrimSuffix(filepath.Base(rel), filepath.Ext(rel))
		out, err := r.Page(src, title, pageDepth(rel))
		if err != nil {
			return stats, fmt.Errorf("failed to render %s: %w", page, err)
		}

		dst := filepath.Join(dstRoot, strings.TrimSuffix(rel, filepath.Ext(rel))+".html")
		if err := filelock.AtomicWrite(dst, out); err != nil {
			return stats, err
		}
		r.logger.LogDebug(fmt.Sprintf("Rendered %s", dst))
		stats.Pages++
	}

	if len(r.imageExtensions) == 0 {
		return stats, nil
	}

	assets, err := fileutil.ScanDirectory(srcRoot, fileutil.ScanOptions{
		Extensions: extensionList(r.imageExtensions),
		Recursive:  true,
	})
	if err != nil {
		return stats, fmt.Errorf("failed to scan %s: %w", srcRoot, err)
	}
	for _, asset := range assets.Files {
		rel, err := filepath.Rel(srcRoot, asset)
		if err != nil {
			return stats, err
		}
		dst := filepath.Join(dstRoot, rel)
		if err := fileutil.EnsureDir(filepath.Dir(dst)); err != nil {
			return stats, err
		}
		if err := fileutil.CopyFile(asset, dst); err != nil {
			return stats, err
		}
		stats.Assets++
	}

	return stats, nil
}

// StyleHref returns the stylesheet link for a page depth directories below
// the html root.
func StyleHref(depth int) string {
	if depth < 0 {
		depth = 0
	}
	return strings.Repeat("../", depth) + StyleSheetName
}

// RewriteLinks rewrites relative hrefs that target a markdown file (with or
// without a fragment) to the matching .html page. Absolute URLs, fragment
// only links and other files are left alone.
func RewriteLinks(fragment []byte) ([]byte, error) {
	context := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(bytes.NewReader(fragment), context)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.DataAtom == atom.A {
			for i, attr := range n.Attr {
				if attr.Key == "href" {
					n.Attr[i].Val = rewriteHref(attr.Val)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	var buf bytes.Buffer
	for _, n := range nodes {
		walk(n)
		if err := html.Render(&buf, n); err != nil {
			return nil, fmt.Errorf("render html: %w", err)
		}
	}
	return buf.Bytes(), nil
}

func rewriteHref(href string) string {
	u, err := url.Parse(href)
	if err != nil || u.IsAbs() || u.Host != "" || u.Path == "" || u.RawQuery != "" {
		return href
	}

	pathPart, fragment, hasFragment := strings.Cut(href, "#")
	if !strings.HasSuffix(strings.ToLower(pathPart), ".md") {
		return href
	}
	pathPart = pathPart[:len(pathPart)-len(".md")] + ".html"
	if hasFragment {
		return pathPart + "#" + fragment
	}
	return pathPart
}

// pageDepth counts the directories in a slash or OS separated relative path.
func pageDepth(rel string) int {
	return strings.Count(filepath.ToSlash(rel), "/")
}

func extensionList(set map[string]bool) []string {
	list := make([]string, 0, len(set))
	for ext := range set {
		list = append(list, ext)
	}
	return list
}
