package assembler

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRelativize(t *testing.T) {
	p := func(s string) string { return filepath.FromSlash(s) }

	tests := []struct {
		name string
		doc  string
		file string
		want string
	}{
		{
			name: "same directory",
			doc:  p("/out/book/book.md"),
			file: p("/out/book/pic.png"),
			want: "pic.png",
		},
		{
			name: "child directory",
			doc:  p("/out/book/book.md"),
			file: p("/out/book/images/ch1/pic.png"),
			want: "images/ch1/pic.png",
		},
		{
			name: "sibling directory",
			doc:  p("/out/pdf/book.md"),
			file: p("/out/book/images/pic.png"),
			want: "../book/images/pic.png",
		},
		{
			name: "chapter file beside its image deep in the tree",
			doc:  p("/out/markdown/a/b/c/d/d.md"),
			file: p("/out/markdown/a/b/c/d/pic.png"),
			want: "pic.png",
		},
		{
			name: "deeply nested image below the document",
			doc:  p("/out/markdown/a/a.md"),
			file: p("/out/markdown/a/b/c/pic.png"),
			want: "b/c/pic.png",
		},
		{
			name: "deeply nested document above a sibling branch",
			doc:  p("/out/markdown/a/b/c/c.md"),
			file: p("/out/markdown/x/pic.png"),
			want: "../../../x/pic.png",
		},
		{
			name: "mixed absolute and relative falls back to base name",
			doc:  p("/out/book.md"),
			file: p("images/pic.png"),
			want: "pic.png",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Relativize(tt.doc, tt.file)
			assert.Equal(t, tt.want, got)
			assert.False(t, filepath.IsAbs(got))
		})
	}
}

func TestEscapeLink(t *testing.T) {
	assert.Equal(t, "Part%20One/Part%20One.md", escapeLink("Part One/Part One.md"))
	assert.Equal(t, "../images/pic.png", escapeLink("../images/pic.png"))
}

func TestLevelCap(t *testing.T) {
	assert.Equal(t, 6, LevelCap(0))
	assert.Equal(t, 6, LevelCap(9))
	assert.Equal(t, 3, LevelCap(3))
	assert.Equal(t, 1, nextLevel(0, 6))
	assert.Equal(t, 6, nextLevel(6, 6))
	assert.Equal(t, 3, nextLevel(3, 3))
}
