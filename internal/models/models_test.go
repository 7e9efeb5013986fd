package models

import (
	"errors"
	"testing"
)

func TestNodeKindString(t *testing.T) {
	tests := []struct {
		kind NodeKind
		want string
	}{
		{KindFile, "file"},
		{KindDirectory, "directory"},
		{NodeKind(42), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("NodeKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestNode(t *testing.T) {
	file := &Node{Name: "a.md", Kind: KindFile}
	empty := &Node{Name: "empty", Kind: KindDirectory}
	dir := &Node{Name: "ch1", Kind: KindDirectory, Children: []*Node{file, empty}}

	if file.IsDir() || file.HasChildren() {
		t.Error("a file is neither a directory nor has children")
	}
	if !empty.IsDir() || empty.HasChildren() {
		t.Error("empty directory should be a directory without children")
	}
	if !dir.HasChildren() {
		t.Error("ch1 should have children")
	}
	if got := dir.Child("a.md"); got != file {
		t.Errorf("Child(a.md) = %v, want %v", got, file)
	}
	if got := dir.Child("missing"); got != nil {
		t.Errorf("Child(missing) = %v, want nil", got)
	}

	var nilNode *Node
	if nilNode.IsDir() || nilNode.Child("x") != nil {
		t.Error("nil node should behave as an absent entry")
	}
}

func TestReservedNames(t *testing.T) {
	want := []string{"_title.md", "_content.md", "_intro.md", "summary.md", "markdown", "html", "pdf", "book", "docx"}
	kinds := AllReservedKinds()
	if len(kinds) != len(want) {
		t.Fatalf("AllReservedKinds() returned %d kinds, want %d", len(kinds), len(want))
	}
	for i, k := range kinds {
		if k.Name() != want[i] {
			t.Errorf("kind %d Name() = %q, want %q", k, k.Name(), want[i])
		}
	}
}

func TestBuildResultFailed(t *testing.T) {
	result := &BuildResult{
		Artifacts: []Artifact{
			{Kind: ArtifactMarkdown, Path: "out/markdown"},
			{Kind: ArtifactHTML, Error: errors.New("bad css")},
			{Kind: ArtifactPDF, Path: "out/pdf/output.pdf"},
		},
	}

	failed := result.Failed()
	if len(failed) != 1 || failed[0].Kind != ArtifactHTML {
		t.Errorf("Failed() = %+v, want only the html artifact", failed)
	}
	if len((&BuildResult{}).Failed()) != 0 {
		t.Error("empty result should have no failures")
	}
}
