package lang

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func mustParse(t *testing.T, input string) *Map {
	t.Helper()

	doc, err := ParseString(context.Background(), input)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	return doc
}

func getValue(t *testing.T, m *Map, key string) *Value {
	t.Helper()

	v, ok := m.Get(key)
	if !ok {
		t.Fatalf("key %q not found", key)
	}

	return v
}

func TestParseString_Scalars(t *testing.T) {
	tests := []struct {
		name  string
		input string
		key   string
		want  *Value
	}{
		{
			name:  "number",
			input: "a = 1",
			key:   "a",
			want:  Number(1),
		},
		{
			name:  "negative fraction",
			input: "a = -2.5",
			key:   "a",
			want:  Number(-2.5),
		},
		{
			name:  "true literal",
			input: "a = true",
			key:   "a",
			want:  Bool(true),
		},
		{
			name:  "false literal",
			input: "a = false",
			key:   "a",
			want:  Bool(false),
		},
		{
			name:  "null literal",
			input: "a = null",
			key:   "a",
			want:  Null(),
		},
		{
			name:  "bare word is a string",
			input: "a = hello",
			key:   "a",
			want:  String("hello"),
		},
		{
			name:  "quoted string",
			input: `a = "hello world"`,
			key:   "a",
			want:  String("hello world"),
		},
		{
			name:  "escaped quote",
			input: `a = "say \"hi\""`,
			key:   "a",
			want:  String(`say "hi"`),
		},
		{
			name:  "escaped backslash",
			input: `a = "back\\slash"`,
			key:   "a",
			want:  String(`back\slash`),
		},
		{
			name:  "unrecognized escape passes through",
			input: `a = "tab\there"`,
			key:   "a",
			want:  String(`tab\there`),
		},
		{
			name:  "quoted null stays a string",
			input: `a = "null"`,
			key:   "a",
			want:  String("null"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := mustParse(t, tt.input)

			got := getValue(t, doc, tt.key)
			if !got.Equal(tt.want) {
				t.Errorf("got %v %+v, want %v %+v",
					got.Kind, got, tt.want.Kind, tt.want)
			}
		})
	}
}

func TestParseString_Documents(t *testing.T) {
	t.Run("multiple pairs", func(t *testing.T) {
		doc := mustParse(t, "a = true\nb = false\nc = null")

		if doc.Len() != 3 {
			t.Fatalf("expected 3 keys, got %d", doc.Len())
		}

		if !getValue(t, doc, "a").Equal(Bool(true)) {
			t.Error("a != true")
		}

		if !getValue(t, doc, "b").Equal(Bool(false)) {
			t.Error("b != false")
		}

		if !getValue(t, doc, "c").Equal(Null()) {
			t.Error("c != null")
		}
	})

	t.Run("comma separated", func(t *testing.T) {
		doc := mustParse(t, "a = 1, b = 2, c = 3")

		if doc.Len() != 3 {
			t.Fatalf("expected 3 keys, got %d", doc.Len())
		}
	})

	t.Run("nested map", func(t *testing.T) {
		doc := mustParse(t, "a = { b = 1 }")

		a := getValue(t, doc, "a")
		if a.Kind != KindMap {
			t.Fatalf("expected map, got %v", a.Kind)
		}

		if !getValue(t, a.Doc, "b").Equal(Number(1)) {
			t.Error("a.b != 1")
		}
	})

	t.Run("empty nested map", func(t *testing.T) {
		doc := mustParse(t, "a = {}")

		a := getValue(t, doc, "a")
		if a.Kind != KindMap || a.Doc.Len() != 0 {
			t.Errorf("expected empty map, got %v", a)
		}
	})

	t.Run("array", func(t *testing.T) {
		doc := mustParse(t, "a = [1, 2, 3]")

		a := getValue(t, doc, "a")
		if !a.Equal(Array(Number(1), Number(2), Number(3))) {
			t.Errorf("got %+v", a)
		}
	})

	t.Run("nested array and map in array", func(t *testing.T) {
		doc := mustParse(t, `a = [[1, 2], { b = x }, "s"]`)

		a := getValue(t, doc, "a")
		if a.Kind != KindArray || len(a.Items) != 3 {
			t.Fatalf("got %+v", a)
		}

		if !a.Items[0].Equal(Array(Number(1), Number(2))) {
			t.Errorf("inner array: got %+v", a.Items[0])
		}

		if a.Items[1].Kind != KindMap {
			t.Errorf("inner map: got %v", a.Items[1].Kind)
		}

		if !a.Items[2].Equal(String("s")) {
			t.Errorf("inner string: got %+v", a.Items[2])
		}
	})

	t.Run("duplicate key overwrites in place", func(t *testing.T) {
		doc := mustParse(t, "a = 1\nb = 2\na = 3")

		if !getValue(t, doc, "a").Equal(Number(3)) {
			t.Error("a != 3")
		}

		keys := doc.Keys()
		if len(keys) != 2 || keys[0] != "a" || keys[1] != "b" {
			t.Errorf("keys: got %v, want [a b]", keys)
		}
	})

	t.Run("quoted key", func(t *testing.T) {
		doc := mustParse(t, `"my key" = 1`)

		if !getValue(t, doc, "my key").Equal(Number(1)) {
			t.Error("quoted key not found")
		}
	})

	t.Run("empty input", func(t *testing.T) {
		doc := mustParse(t, "")

		if doc.Len() != 0 {
			t.Errorf("expected empty document, got %d keys", doc.Len())
		}
	})

	t.Run("blank lines and separators only", func(t *testing.T) {
		doc := mustParse(t, "\n\n  , ,\n")

		if doc.Len() != 0 {
			t.Errorf("expected empty document, got %d keys", doc.Len())
		}
	})
}

func TestParseString_Comments(t *testing.T) {
	tests := []struct {
		name  string
		input string
		keys  int
	}{
		{
			name:  "comment line skipped",
			input: "# ignore = this { [ ] }\na = 1",
			keys:  1,
		},
		{
			name:  "trailing comment",
			input: "a = 1 # trailing",
			keys:  1,
		},
		{
			name:  "comment only",
			input: "# nothing here",
			keys:  0,
		},
		{
			name:  "comment between pairs",
			input: "a = 1\n# note\nb = 2",
			keys:  2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := mustParse(t, tt.input)

			if doc.Len() != tt.keys {
				t.Errorf("expected %d keys, got %d", tt.keys, doc.Len())
			}
		})
	}
}

func TestParseString_Constants(t *testing.T) {
	t.Run("basic substitution", func(t *testing.T) {
		doc := mustParse(t, "@x = 5\na = @x")

		if !getValue(t, doc, "a").Equal(Number(5)) {
			t.Error("a != 5")
		}

		if _, ok := doc.Get("x"); ok {
			t.Error("constant name leaked into document")
		}

		if doc.Len() != 1 {
			t.Errorf("expected 1 key, got %d", doc.Len())
		}
	})

	t.Run("aliasing", func(t *testing.T) {
		doc := mustParse(t, "@x = 5\n@y = @x\na = @y")

		if !getValue(t, doc, "a").Equal(Number(5)) {
			t.Error("a != 5")
		}
	})

	t.Run("visible inside nested map", func(t *testing.T) {
		doc := mustParse(t, "@x = 5\na = { b = @x }")

		a := getValue(t, doc, "a")
		if !getValue(t, a.Doc, "b").Equal(Number(5)) {
			t.Error("a.b != 5")
		}
	})

	t.Run("visible inside array", func(t *testing.T) {
		doc := mustParse(t, "@x = 5\na = [@x, @x]")

		if !getValue(t, doc, "a").Equal(Array(Number(5), Number(5))) {
			t.Error("array constants not substituted")
		}
	})

	t.Run("declared inside nested map", func(t *testing.T) {
		doc := mustParse(t, "a = { @x = 1\nb = @x }\nc = @x")

		a := getValue(t, doc, "a")
		if !getValue(t, a.Doc, "b").Equal(Number(1)) {
			t.Error("a.b != 1")
		}

		// Constant visibility is document-global within one parse.
		if !getValue(t, doc, "c").Equal(Number(1)) {
			t.Error("c != 1")
		}
	})

	t.Run("not shared across invocations", func(t *testing.T) {
		mustParse(t, "@x = 5\na = @x")

		_, err := ParseString(context.Background(), "a = @x")
		if !errors.Is(err, ErrUndefinedConstant) {
			t.Fatalf("got %v, want ErrUndefinedConstant", err)
		}
	})

	t.Run("complex constant value", func(t *testing.T) {
		doc := mustParse(t, "@m = { p = 1 }\na = @m")

		a := getValue(t, doc, "a")
		if a.Kind != KindMap {
			t.Fatalf("expected map, got %v", a.Kind)
		}

		if !getValue(t, a.Doc, "p").Equal(Number(1)) {
			t.Error("a.p != 1")
		}
	})
}

func TestParseString_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{
			name:  "key followed by key",
			input: "a b",
			want:  ErrUnexpectedToken,
		},
		{
			name:  "equals without key",
			input: "= 1",
			want:  ErrUnexpectedToken,
		},
		{
			name:  "closing brace at top level",
			input: "}",
			want:  ErrUnexpectedToken,
		},
		{
			name:  "closing bracket in value position",
			input: "a = ]",
			want:  ErrUnexpectedToken,
		},
		{
			name:  "equals inside array",
			input: "a = [b = 1]",
			want:  ErrUnexpectedToken,
		},
		{
			name:  "undefined constant",
			input: "a = @missing",
			want:  ErrUndefinedConstant,
		},
		{
			name:  "undefined constant in array",
			input: "a = [@missing]",
			want:  ErrUndefinedConstant,
		},
		{
			name:  "truncated after key",
			input: "a",
			want:  ErrTruncated,
		},
		{
			name:  "truncated after equals",
			input: "a = ",
			want:  ErrTruncated,
		},
		{
			name:  "unclosed brace",
			input: "a = { b = 1",
			want:  ErrTruncated,
		},
		{
			name:  "unclosed bracket",
			input: "a = [1, 2",
			want:  ErrTruncated,
		},
		{
			name:  "truncated constant declaration",
			input: "@x",
			want:  ErrTruncated,
		},
		{
			name:  "bare backslash",
			input: `a = \z`,
			want:  ErrLex,
		},
		{
			name:  "unterminated string",
			input: `a = "open`,
			want:  ErrLex,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := ParseString(context.Background(), tt.input)
			if doc != nil {
				t.Error("expected nil document on error")
			}

			if !errors.Is(err, tt.want) {
				t.Fatalf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestParseString_TrailingCommentAtEOF(t *testing.T) {
	doc := mustParse(t, "a = 1\n# trailing comment with no newline")

	if doc.Len() != 1 {
		t.Errorf("expected 1 key, got %d", doc.Len())
	}
}

func TestParseString_MaxDepth(t *testing.T) {
	t.Run("within limit", func(t *testing.T) {
		input := "a = " + strings.Repeat("[", 20) + strings.Repeat("]", 20)

		if _, err := ParseString(context.Background(), input); err != nil {
			t.Fatalf("parse error: %v", err)
		}
	})

	t.Run("exceeds limit", func(t *testing.T) {
		input := "a = " + strings.Repeat("[", 30) + strings.Repeat("]", 30)

		_, err := ParseString(context.Background(), input, WithMaxDepth(10))
		if !errors.Is(err, ErrMaxDepthExceeded) {
			t.Fatalf("got %v, want ErrMaxDepthExceeded", err)
		}
	})

	t.Run("deep maps exceed limit", func(t *testing.T) {
		var sb strings.Builder

		for range 30 {
			sb.WriteString("a = { ")
		}

		_, err := ParseString(context.Background(), sb.String(), WithMaxDepth(10))
		if !errors.Is(err, ErrMaxDepthExceeded) {
			t.Fatalf("got %v, want ErrMaxDepthExceeded", err)
		}
	})
}

func TestParseString_ErrorPosition(t *testing.T) {
	_, err := ParseString(context.Background(), "a = 1\nb = @nope")

	ee := &Error{}
	if !errors.As(err, &ee) {
		t.Fatalf("error is not *Error: %v", err)
	}

	pos, ok := ee.Pos()
	if !ok {
		t.Fatal("error carries no position")
	}

	if pos.Line != 2 {
		t.Errorf("line: got %d, want 2", pos.Line)
	}

	snippet := ee.Snippet("a = 1\nb = @nope")
	if !strings.Contains(snippet, "b = @nope") {
		t.Errorf("snippet missing source line:\n%s", snippet)
	}

	if !strings.Contains(snippet, "^") {
		t.Errorf("snippet missing caret:\n%s", snippet)
	}
}

func TestParseReader(t *testing.T) {
	doc, err := ParseReader(context.Background(), strings.NewReader("a = 1"))
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	if !getValue(t, doc, "a").Equal(Number(1)) {
		t.Error("a != 1")
	}
}

func BenchmarkParseString(b *testing.B) {
	input := `
		# server settings
		host = "localhost"
		port = 8080
		debug = true
		@timeout = 30
		limits = { connect = @timeout, read = @timeout, write = 60 }
		tags = ["web", "api", "internal"]
	`

	b.ReportAllocs()

	for b.Loop() {
		if _, err := ParseString(context.Background(), input); err != nil {
			b.Fatal(err)
		}
	}
}
