package repl

import (
	"context"
	"slices"
	"testing"

	"github.com/rensoftworks/slang/lang"
)

func parseDoc(t *testing.T, source string) *lang.Map {
	t.Helper()

	doc, err := lang.ParseString(context.Background(), source)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	return doc
}

func TestWordBounds(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		cursor int
		word   string
		start  int
		end    int
	}{
		{"empty", "", 0, "", 0, 0},
		{"single word", "server", 3, "server", 0, 6},
		{"cursor at end", "server", 6, "server", 0, 6},
		{"after space", "a + ser", 7, "ser", 4, 7},
		{"cursor on boundary", "a ", 2, "", 2, 2},
		{"after dot", "server.ho", 9, "ho", 7, 9},
		{"between dots", "a.b.c", 2, "b", 2, 3},
		{"hyphenated word", "log-level", 5, "log-level", 0, 9},
		{"inside parens", "len(tags)", 6, "tags", 4, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			word, start, end := wordBounds(tt.input, tt.cursor)
			if word != tt.word || start != tt.start || end != tt.end {
				t.Errorf("got (%q, %d, %d), want (%q, %d, %d)",
					word, start, end, tt.word, tt.start, tt.end)
			}
		})
	}
}

func TestParentPath(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wordStart int
		want      string
	}{
		{"top level", "ser", 0, ""},
		{"single parent", "server.ho", 7, "server"},
		{"nested parent", "x + server.http.ho", 16, "server.http"},
		{"after operator", "a + b", 4, ""},
		{"trailing dot only", "server.", 7, "server"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parentPath(tt.input, tt.wordStart); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestChildCandidates(t *testing.T) {
	doc := parseDoc(t, `
server = {
	host = "localhost"
	http = { port = 8080 }
}
debug = false
`)

	t.Run("top level includes keys and builtins", func(t *testing.T) {
		names := childCandidates(doc, "")

		for _, want := range []string{"server", "debug", "len"} {
			if !slices.Contains(names, want) {
				t.Errorf("missing candidate %q in %v", want, names)
			}
		}
	})

	t.Run("nested map keys", func(t *testing.T) {
		names := childCandidates(doc, "server")

		if !slices.Equal(names, []string{"host", "http"}) {
			t.Errorf("got %v, want [host http]", names)
		}
	})

	t.Run("deeply nested", func(t *testing.T) {
		names := childCandidates(doc, "server.http")

		if !slices.Equal(names, []string{"port"}) {
			t.Errorf("got %v, want [port]", names)
		}
	})

	t.Run("non-map parent", func(t *testing.T) {
		if names := childCandidates(doc, "debug"); names != nil {
			t.Errorf("expected nil for scalar parent, got %v", names)
		}
	})

	t.Run("unknown parent", func(t *testing.T) {
		if names := childCandidates(doc, "nope"); names != nil {
			t.Errorf("expected nil for unknown parent, got %v", names)
		}
	})
}

func TestFormatPreview(t *testing.T) {
	doc := parseDoc(t, `
name = "service"
count = 3
nested = { a = 1, b = 2 }
items = [1, 2, 3]
`)

	tests := []struct {
		key  string
		want string
	}{
		{"name", `"service"`},
		{"count", "3"},
		{"nested", "{ 2 entries }"},
		{"items", "[ 3 items ]"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			val, ok := doc.Get(tt.key)
			if !ok {
				t.Fatalf("key %q missing", tt.key)
			}

			if got := formatPreview(val); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
