package render

import _ "embed"

//go:embed assets/html-styles.css
var defaultHTMLStyleSheet []byte

//go:embed assets/pdf-styles.yaml
var defaultPDFStyleSheet []byte

// DefaultHTMLStyleSheet returns a copy of the built-in page stylesheet.
func DefaultHTMLStyleSheet() []byte {
	return append([]byte(nil), defaultHTMLStyleSheet...)
}
