package cmd

import (
	"io"
	"os"
	"path/filepath"
	"testing"
)

func TestOpenSource_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.slang")

	content := "a = 1\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	file, err := openSource(path)
	if err != nil {
		t.Fatalf("openSource failed: %v", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		t.Fatalf("reading source: %v", err)
	}

	if string(data) != content {
		t.Errorf("got %q, want %q", string(data), content)
	}
}

func TestOpenSource_Missing(t *testing.T) {
	_, err := openSource(filepath.Join(t.TempDir(), "nope.slang"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestOpenSource_Stdin(t *testing.T) {
	file, err := openSource("-")
	if err != nil {
		t.Fatalf("openSource(-) failed: %v", err)
	}

	// Closing the stdin wrapper must not close os.Stdin itself.
	if err := file.Close(); err != nil {
		t.Errorf("close failed: %v", err)
	}
}

func TestUniqueSources_Duplicates(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.slang")

	if err := os.WriteFile(path, []byte("a = 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	// Same file through a relative-style indirection and a symlink.
	link := filepath.Join(dir, "link.slang")
	if err := os.Symlink(path, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	unique := uniqueSources([]string{path, link, path})
	if len(unique) != 1 {
		t.Errorf("expected 1 unique source, got %d: %v", len(unique), unique)
	}
}

func TestUniqueSources_StdinOnce(t *testing.T) {
	unique := uniqueSources([]string{"-", "-", "-"})
	if len(unique) != 1 || unique[0] != "-" {
		t.Errorf("expected single stdin source, got %v", unique)
	}
}

func TestUniqueSources_MissingPassedThrough(t *testing.T) {
	// Unresolvable paths are kept so the command reports the open error.
	missing := filepath.Join(t.TempDir(), "nope.slang")

	unique := uniqueSources([]string{missing})
	if len(unique) != 1 || unique[0] != missing {
		t.Errorf("expected missing path passed through, got %v", unique)
	}
}
