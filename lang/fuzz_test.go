package lang

import (
	"context"
	"testing"
	"unicode/utf8"
)

// FuzzParseString exercises the full parse path with arbitrary input and
// checks the serializer round trip whenever parsing succeeds.
func FuzzParseString(f *testing.F) {
	// Seed corpus with known valid inputs
	f.Add("a = 1")
	f.Add("a = { b = 1 }")
	f.Add("a = [1, 2, 3]")
	f.Add("a = true\nb = false\nc = null")
	f.Add("@x = 5\na = @x")
	f.Add("@x = 5\n@y = @x\na = @y")
	f.Add("# comment { [ = \na = 1")
	f.Add(`"key with space" = "value \" quoted"`)
	f.Add("a = [[1], { b = [2] }]")
	f.Add("a = -12.34, b = hello")
	f.Add("a = 1\na = 2")

	f.Fuzz(func(t *testing.T, input string) {
		// Skip invalid UTF-8
		if !utf8.ValidString(input) {
			t.Skip("invalid UTF-8")
		}

		// Parsing must never panic, whatever the input
		defer func() {
			if r := recover(); r != nil {
				t.Errorf("parse panicked on input %q: %v", input, r)
			}
		}()

		doc, err := ParseString(context.Background(), input)
		if err != nil {
			// Errors are fine, but must never come with a document
			if doc != nil {
				t.Errorf("non-nil document alongside error: %v", err)
			}

			return
		}

		// Successful parses must round-trip through the serializer
		text := Stringify(doc, false)

		again, err := ParseString(context.Background(), text)
		if err != nil {
			t.Fatalf("reparse of %q failed: %v", text, err)
		}

		if !doc.Equal(again) {
			t.Errorf("round trip changed document:\n in: %q\nout: %q",
				input, text)
		}
	})
}

// FuzzScanner checks that tokenization terminates and covers the input
// exactly, token by token.
func FuzzScanner(f *testing.F) {
	f.Add("a = 1")
	f.Add(`"string with \" escape"`)
	f.Add("-12.5")
	f.Add("@name")
	f.Add("a\r\nb")
	f.Add("{}[]=#,")

	f.Fuzz(func(t *testing.T, input string) {
		if !utf8.ValidString(input) {
			t.Skip("invalid UTF-8")
		}

		s := newScanner(input)
		offset := 0

		for {
			tok, err := s.next()
			if err != nil {
				return
			}

			if tok.Kind == TokenEOF {
				if offset != len(input) {
					t.Errorf("EOF at offset %d before end of input (%d)",
						offset, len(input))
				}

				return
			}

			if tok.Text == "" {
				t.Fatalf("empty token %v at offset %d", tok.Kind, offset)
			}

			if tok.Pos.Offset != offset {
				t.Fatalf("token %v at offset %d, expected %d",
					tok.Kind, tok.Pos.Offset, offset)
			}

			offset += len(tok.Text)
		}
	})
}
