package cmd

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rensoftworks/slang/lang"
)

func writeSource(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "doc.slang")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	return path
}

func TestCheckSource_Valid(t *testing.T) {
	path := writeSource(t, "a = 1\nb = { c = true }\n")

	var c Check
	if err := c.checkSource(context.Background(), path); err != nil {
		t.Errorf("expected valid source, got %v", err)
	}
}

func TestCheckSource_Invalid(t *testing.T) {
	path := writeSource(t, "a = { b = 1\n")

	var c Check

	err := c.checkSource(context.Background(), path)
	if err == nil {
		t.Fatal("expected parse error")
	}

	if !errors.Is(err, lang.ErrTruncated) {
		t.Errorf("expected truncation error, got %v", err)
	}
}

func TestSourceSnippet(t *testing.T) {
	source := "a = 1\nb = ]\n"
	path := writeSource(t, source)

	_, err := lang.ParseString(context.Background(), source)
	if err == nil {
		t.Fatal("expected parse error")
	}

	var le *lang.Error
	if !errors.As(err, &le) {
		t.Fatalf("expected *lang.Error, got %T", err)
	}

	snippet := sourceSnippet(path, le)
	if !strings.Contains(snippet, "b = ]") {
		t.Errorf("snippet missing source line: %q", snippet)
	}

	if !strings.Contains(snippet, "^") {
		t.Errorf("snippet missing caret: %q", snippet)
	}
}

func TestSourceSnippet_Stdin(t *testing.T) {
	_, err := lang.ParseString(context.Background(), "= 1")
	if err == nil {
		t.Fatal("expected parse error")
	}

	var le *lang.Error
	if !errors.As(err, &le) {
		t.Fatalf("expected *lang.Error, got %T", err)
	}

	// Stdin cannot be re-read for snippet rendering.
	if snippet := sourceSnippet(stdinSource, le); snippet != "" {
		t.Errorf("expected empty snippet for stdin, got %q", snippet)
	}
}
