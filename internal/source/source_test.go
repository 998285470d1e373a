package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestPosition(t *testing.T) {
	src := FromString("<string>", "abc\ndefg\nhi\n")

	tests := []struct {
		offset int64
		want   string
	}{
		{0, "line 1, col 0"},
		{2, "line 1, col 2"},
		{4, "line 2, col 1"},
		{7, "line 2, col 4"},
		{9, "line 3, col 1"},
	}
	for _, tt := range tests {
		if got := src.Position(tt.offset); got != tt.want {
			t.Errorf("Position(%d) = %q, want %q", tt.offset, got, tt.want)
		}
	}
}

func TestPositionFallback(t *testing.T) {
	src := FromString("<string>", "no trailing newline")
	if got := src.Position(5); got != "byte offset 5" {
		t.Fatalf("Position(5) = %q", got)
	}
	if got := src.Position(1000); got != "byte offset 1000" {
		t.Fatalf("Position(1000) = %q", got)
	}
}

func TestFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.xml")
	if err := os.WriteFile(path, []byte("<a>\n</a>\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	src, err := FromFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if src.ID() != path {
		t.Fatalf("ID() = %q", src.ID())
	}
	if got := src.Position(4); got != "line 2, col 1" {
		t.Fatalf("Position(4) = %q", got)
	}

	if _, err := FromFile(filepath.Join(t.TempDir(), "missing.xml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
