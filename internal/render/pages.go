package render

import (
	"fmt"

	pdflib "github.com/ledongthuc/pdf"
)

// CountPages opens a written PDF and returns its page count.
func CountPages(path string) (int, error) {
	f, reader, err := pdflib.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open pdf %s: %w", path, err)
	}
	defer f.Close()

	return reader.NumPage(), nil
}
