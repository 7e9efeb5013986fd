package render

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPDFStyle(t *testing.T) {
	style := DefaultPDFStyle()

	assert.Equal(t, "Letter", style.Paper)
	assert.Equal(t, "Helvetica", style.Font.Family)
	assert.False(t, style.Font.Embedded())
	assert.Len(t, style.HeadingSizes, 6)
	assert.True(t, style.PageBreakBeforeChapter)
	require.NoError(t, style.Validate())
}

func TestLoadPDFStyle(t *testing.T) {
	t.Run("empty path returns defaults", func(t *testing.T) {
		style, err := LoadPDFStyle("")
		require.NoError(t, err)
		assert.Equal(t, DefaultPDFStyle(), style)
	})

	t.Run("overrides keep unspecified defaults", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "pdf.yaml")
		require.NoError(t, os.WriteFile(path, []byte("paper: A4\nfont:\n  family: Times\n  size: 12\n  regular: fonts/Serif.ttf\n"), 0644))

		style, err := LoadPDFStyle(path)
		require.NoError(t, err)
		assert.Equal(t, "A4", style.Paper)
		assert.Equal(t, 12.0, style.Font.Size)
		assert.Equal(t, filepath.Join(dir, "fonts", "Serif.ttf"), style.Font.Regular)
		assert.True(t, style.Font.Embedded())
		assert.Equal(t, DefaultPDFStyle().LineHeight, style.LineHeight)
		assert.Equal(t, "Courier", style.CodeFont.Family)
	})

	t.Run("invalid values", func(t *testing.T) {
		tests := map[string]string{
			"paper":       "paper: Napkin\n",
			"orientation": "orientation: sideways\n",
			"font size":   "font:\n  size: 0\n",
			"line height": "line_height: -1\n",
			"headings":    "heading_sizes: []\n",
			"malformed":   "paper: [unclosed\n",
		}
		for name, content := range tests {
			t.Run(name, func(t *testing.T) {
				path := filepath.Join(t.TempDir(), "pdf.yaml")
				require.NoError(t, os.WriteFile(path, []byte(content), 0644))

				_, err := LoadPDFStyle(path)
				assert.Error(t, err)
			})
		}
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadPDFStyle(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})
}

func TestHeadingSize(t *testing.T) {
	style := DefaultPDFStyle()
	style.HeadingSizes = []float64{20, 16}

	assert.Equal(t, 20.0, style.headingSize(0))
	assert.Equal(t, 20.0, style.headingSize(1))
	assert.Equal(t, 16.0, style.headingSize(2))
	assert.Equal(t, 16.0, style.headingSize(6))
}

func TestValidPaper(t *testing.T) {
	assert.True(t, ValidPaper("letter"))
	assert.True(t, ValidPaper("A4"))
	assert.False(t, ValidPaper("B5"))
}
