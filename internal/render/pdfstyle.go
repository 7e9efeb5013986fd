package render

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Paper sizes the PDF renderer accepts.
var paperSizes = map[string]bool{
	"a3":      true,
	"a4":      true,
	"a5":      true,
	"letter":  true,
	"legal":   true,
	"tabloid": true,
}

// FontStyle selects a font family and size. When Regular names a TrueType
// file the family is embedded as a UTF-8 font, with optional bold and italic
// faces; otherwise Family must be one of the core PDF fonts.
type FontStyle struct {
	Family     string  `yaml:"family"`
	Size       float64 `yaml:"size"`
	Regular    string  `yaml:"regular"`
	Bold       string  `yaml:"bold"`
	Italic     string  `yaml:"italic"`
	BoldItalic string  `yaml:"bold_italic"`
}

// Embedded reports whether the style embeds TrueType files.
func (f FontStyle) Embedded() bool {
	return f.Regular != ""
}

// Margins holds page margins in millimetres.
type Margins struct {
	Left   float64 `yaml:"left"`
	Top    float64 `yaml:"top"`
	Right  float64 `yaml:"right"`
	Bottom float64 `yaml:"bottom"`
}

// PDFStyle is the yaml style sheet that drives PDF layout.
type PDFStyle struct {
	Paper                  string    `yaml:"paper"`
	Orientation            string    `yaml:"orientation"`
	Margins                Margins   `yaml:"margins"`
	Font                   FontStyle `yaml:"font"`
	CodeFont               FontStyle `yaml:"code_font"`
	LineHeight             float64   `yaml:"line_height"`
	ParagraphSpacing       float64   `yaml:"paragraph_spacing"`
	HeadingSizes           []float64 `yaml:"heading_sizes"`
	PageBreakBeforeChapter bool      `yaml:"page_break_before_chapter"`
	PageNumbers            bool      `yaml:"page_numbers"`
	TextColor              [3]int    `yaml:"text_color"`
	LinkColor              [3]int    `yaml:"link_color"`
	CodeBackground         [3]int    `yaml:"code_background"`
	RuleColor              [3]int    `yaml:"rule_color"`
}

// DefaultPDFStyle returns the built-in style sheet.
func DefaultPDFStyle() *PDFStyle {
	style := &PDFStyle{}
	if err := yaml.Unmarshal(defaultPDFStyleSheet, style); err != nil {
		panic(fmt.Sprintf("built-in pdf style sheet is invalid: %v", err))
	}
	return style
}

// LoadPDFStyle reads a yaml style sheet over the built-in defaults. An empty
// path returns the defaults. Relative font paths resolve against the style
// sheet's directory.
func LoadPDFStyle(path string) (*PDFStyle, error) {
	style := DefaultPDFStyle()
	if path == "" {
		return style, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read pdf style sheet: %w", err)
	}
	if err := yaml.Unmarshal(data, style); err != nil {
		return nil, fmt.Errorf("failed to parse pdf style sheet %s: %w", path, err)
	}

	base := filepath.Dir(path)
	style.Font.resolve(base)
	style.CodeFont.resolve(base)

	if err := style.Validate(); err != nil {
		return nil, fmt.Errorf("invalid pdf style sheet %s: %w", path, err)
	}
	return style, nil
}

// Validate checks the style sheet for values the renderer cannot use.
func (s *PDFStyle) Validate() error {
	if !paperSizes[strings.ToLower(s.Paper)] {
		return fmt.Errorf("unsupported paper %q", s.Paper)
	}
	switch strings.ToLower(s.Orientation) {
	case "", "portrait", "p", "landscape", "l":
	default:
		return fmt.Errorf("unsupported orientation %q", s.Orientation)
	}
	if s.Font.Size <= 0 || s.CodeFont.Size <= 0 {
		return fmt.Errorf("font sizes must be positive")
	}
	if s.LineHeight <= 0 {
		return fmt.Errorf("line_height must be positive, got %v", s.LineHeight)
	}
	if len(s.HeadingSizes) == 0 {
		return fmt.Errorf("heading_sizes must list at least one size")
	}
	return nil
}

// ValidPaper reports whether paper names a supported paper size.
func ValidPaper(paper string) bool {
	return paperSizes[strings.ToLower(paper)]
}

// headingSize returns the font size for a 1-based heading level.
func (s *PDFStyle) headingSize(level int) float64 {
	if level < 1 {
		level = 1
	}
	if level > len(s.HeadingSizes) {
		return s.HeadingSizes[len(s.HeadingSizes)-1]
	}
	return s.HeadingSizes[level-1]
}

func (s *PDFStyle) orientation() string {
	if strings.HasPrefix(strings.ToLower(s.Orientation), "l") {
		return "L"
	}
	return "P"
}

func (f *FontStyle) resolve(base string) {
	for _, p := range []*string{&f.Regular, &f.Bold, &f.Italic, &f.BoldItalic} {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(base, *p)
		}
	}
}
