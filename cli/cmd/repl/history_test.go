package repl

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestHistory(t *testing.T) *History {
	t.Helper()

	return NewHistory(filepath.Join(t.TempDir(), baseHistory))
}

func TestHistory_LoadMissingFile(t *testing.T) {
	h := newTestHistory(t)

	if err := h.Load(); err != nil {
		t.Fatalf("Load of missing file failed: %v", err)
	}

	if h.Len() != 0 {
		t.Errorf("expected empty history, got %d entries", h.Len())
	}
}

func TestHistory_WriteAndReload(t *testing.T) {
	h := newTestHistory(t)

	if _, err := h.WriteWithMode("a = 1", modeEval); err != nil {
		t.Fatal(err)
	}

	if _, err := h.WriteWithMode("list", modeCtrl); err != nil {
		t.Fatal(err)
	}

	reloaded := NewHistory(h.path)
	if err := reloaded.Load(); err != nil {
		t.Fatalf("reload failed: %v", err)
	}

	entries := reloaded.Entries()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}

	if entries[0].Line != "a = 1" || entries[0].Mode != modeEval {
		t.Errorf("entry 0: got %+v", entries[0])
	}

	if entries[1].Line != "list" || entries[1].Mode != modeCtrl {
		t.Errorf("entry 1: got %+v", entries[1])
	}
}

func TestHistory_SkipsConsecutiveDuplicates(t *testing.T) {
	h := newTestHistory(t)

	_, _ = h.WriteWithMode("a = 1", modeEval)
	_, _ = h.WriteWithMode("a = 1", modeEval)

	if h.Len() != 1 {
		t.Errorf("expected 1 entry, got %d", h.Len())
	}
}

func TestHistory_MovesDuplicateToEnd(t *testing.T) {
	h := newTestHistory(t)

	_, _ = h.WriteWithMode("first", modeEval)
	_, _ = h.WriteWithMode("second", modeEval)
	_, _ = h.WriteWithMode("first", modeEval)

	entries := h.Entries()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}

	if entries[0].Line != "second" || entries[1].Line != "first" {
		t.Errorf("unexpected order: %+v", entries)
	}

	// The file on disk reflects the reordering.
	data, err := os.ReadFile(h.path)
	if err != nil {
		t.Fatal(err)
	}

	want := "E:second\nE:first\n"
	if string(data) != want {
		t.Errorf("file content: got %q, want %q", string(data), want)
	}
}

func TestHistory_ModesShareFile(t *testing.T) {
	h := newTestHistory(t)

	// Identical lines in different modes are distinct entries.
	_, _ = h.WriteWithMode("print", modeEval)
	_, _ = h.WriteWithMode("print", modeCtrl)

	if h.Len() != 2 {
		t.Errorf("expected 2 entries, got %d", h.Len())
	}
}

func TestHistory_GetEntryBounds(t *testing.T) {
	h := newTestHistory(t)

	_, _ = h.WriteWithMode("only", modeEval)

	if _, err := h.GetEntry(-1); err == nil {
		t.Error("expected error for negative index")
	}

	if _, err := h.GetEntry(1); err == nil {
		t.Error("expected error for out-of-range index")
	}

	entry, err := h.GetEntry(0)
	if err != nil {
		t.Fatalf("GetEntry(0) failed: %v", err)
	}

	if entry.Line != "only" {
		t.Errorf("got %q, want %q", entry.Line, "only")
	}
}

func TestHistory_IgnoresBlankLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), baseHistory)

	content := strings.Join([]string{"E:a = 1", "", "  ", "C:quit", ""}, "\n")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	h := NewHistory(path)
	if err := h.Load(); err != nil {
		t.Fatal(err)
	}

	if h.Len() != 2 {
		t.Errorf("expected 2 entries, got %d", h.Len())
	}
}
