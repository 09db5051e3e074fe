package expiryscan

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestItemNameFromFile(t *testing.T) {
	cases := map[string]string{
		"greek_yogurt-2.jpg": "greek yogurt",
		"milk.png":           "milk",
		"paneer_block.jpeg":  "paneer block",
		"bread-01.webp":      "bread",
		"7.png":              "7", // lone counter stays, nothing left otherwise
	}
	for in, want := range cases {
		if got := itemNameFromFile(in); got != want {
			t.Errorf("itemNameFromFile(%q) = %q want %q", in, got, want)
		}
	}
}

func TestIsSupportedExt(t *testing.T) {
	for _, name := range []string{"a.png", "b.JPG", "c.jpeg", "d.gif", "e.webp"} {
		if !isSupportedExt(name) {
			t.Errorf("%s should be supported", name)
		}
	}
	for _, name := range []string{"a.txt", "b.pdf", "noext", "c.png.part"} {
		if isSupportedExt(name) {
			t.Errorf("%s should not be supported", name)
		}
	}
}

func TestListImageFilesSortedAndFiltered(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.jpg", "a.png", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "sub.png"), 0o755); err != nil {
		t.Fatal(err)
	}
	got := listImageFiles(dir)
	if !reflect.DeepEqual(got, []string{"a.png", "b.jpg"}) {
		t.Fatalf("listImageFiles = %v", got)
	}
}
