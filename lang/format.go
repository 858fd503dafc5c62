package lang

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
)

// Stringify renders the document as canonical slang text. With inline
// set, pairs are joined with ", " on a single line; otherwise each
// top-level pair is on its own line and the output ends with a newline.
//
// The output contains no comments and no constants, and parses back to
// an equal document.
func Stringify(m *Map, inline bool) string {
	var sb strings.Builder

	// Stringify never fails: strings.Builder does not error.
	_ = m.Format(context.Background(), &sb, inline)

	return sb.String()
}

// Format writes the document as canonical slang text to the writer.
func (m *Map) Format(_ context.Context, w io.Writer, inline bool) error {
	count := 0

	for key, val := range m.All() {
		if count > 0 {
			sep := "\n"
			if inline {
				sep = ", "
			}

			if _, err := fmt.Fprint(w, sep); err != nil {
				return err
			}
		}

		if err := formatPair(w, key, val); err != nil {
			return err
		}

		count++
	}

	if !inline && count > 0 {
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}

	return nil
}

// FormatJSON writes the document as JSON to the writer, preserving key
// order. An indent of 0 produces compact output.
func (m *Map) FormatJSON(_ context.Context, w io.Writer, indent int) error {
	var (
		jsonData []byte
		err      error
	)

	if indent > 0 {
		jsonData, err = json.MarshalIndent(m, "", strings.Repeat(" ", indent))
	} else {
		jsonData, err = json.Marshal(m)
	}

	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(jsonData))

	return err
}

// FormatYAML writes the document as YAML to the writer. An indent of 0
// produces flow-style output.
func (m *Map) FormatYAML(ctx context.Context, w io.Writer, indent int) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	yamlData, err := yaml.MarshalContext(ctx, m.ToNative(), opts...)
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(w, string(yamlData))

	return err
}

// MarshalJSON implements json.Marshaler, preserving key order.
func (m *Map) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte('{')

	count := 0

	for key, val := range m.All() {
		if count > 0 {
			buf.WriteByte(',')
		}

		keyData, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}

		buf.Write(keyData)
		buf.WriteByte(':')

		valData, err := json.Marshal(val)
		if err != nil {
			return nil, err
		}

		buf.Write(valData)

		count++
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// MarshalJSON implements json.Marshaler.
func (v *Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindMap:
		return v.Doc.MarshalJSON()

	case KindArray:
		var buf bytes.Buffer

		buf.WriteByte('[')

		for i, item := range v.Items {
			if i > 0 {
				buf.WriteByte(',')
			}

			data, err := json.Marshal(item)
			if err != nil {
				return nil, err
			}

			buf.Write(data)
		}

		buf.WriteByte(']')

		return buf.Bytes(), nil

	default:
		return json.Marshal(v.ToNative())
	}
}

// String renders the value in canonical syntax. Useful for printing a
// single value outside of a document, such as an evaluation result.
func (v *Value) String() string {
	if v == nil {
		return "null"
	}

	var sb strings.Builder

	_ = formatValue(&sb, v)

	return sb.String()
}

// formatPair writes one key = value pair.
func formatPair(w io.Writer, key string, val *Value) error {
	if _, err := fmt.Fprint(w, formatKey(key), " = "); err != nil {
		return err
	}

	return formatValue(w, val)
}

// formatKey renders a key, quoting it when its text would not survive a
// round trip as a bare word.
func formatKey(key string) string {
	if needsQuoting(key) {
		return quote(key)
	}

	return key
}

// needsQuoting reports whether a key must be written as a quoted string.
// A key is safe to emit bare only when the tokenizer would read it back
// as a single Word or Number token spanning the whole key.
func needsQuoting(key string) bool {
	if key == "" {
		return true
	}

	tok, err := newScanner(key).next()
	if err != nil {
		return true
	}

	if tok.Kind != TokenWord && tok.Kind != TokenNumber {
		return true
	}

	return len(tok.Text) != len(key)
}

// formatValue writes a value in canonical syntax.
func formatValue(w io.Writer, v *Value) error {
	switch v.Kind {
	case KindNull:
		_, err := fmt.Fprint(w, "null")

		return err

	case KindBool:
		_, err := fmt.Fprint(w, strconv.FormatBool(v.Bool))

		return err

	case KindNumber:
		_, err := fmt.Fprint(w, formatNumber(v.Num))

		return err

	case KindString:
		_, err := fmt.Fprint(w, quote(v.Str))

		return err

	case KindArray:
		if _, err := fmt.Fprint(w, "["); err != nil {
			return err
		}

		for i, item := range v.Items {
			if i > 0 {
				if _, err := fmt.Fprint(w, ", "); err != nil {
					return err
				}
			}

			if err := formatValue(w, item); err != nil {
				return err
			}
		}

		_, err := fmt.Fprint(w, "]")

		return err

	case KindMap:
		if v.Doc.Len() == 0 {
			_, err := fmt.Fprint(w, "{}")

			return err
		}

		if _, err := fmt.Fprint(w, "{ "); err != nil {
			return err
		}

		count := 0

		for key, val := range v.Doc.All() {
			if count > 0 {
				if _, err := fmt.Fprint(w, ", "); err != nil {
					return err
				}
			}

			if err := formatPair(w, key, val); err != nil {
				return err
			}

			count++
		}

		_, err := fmt.Fprint(w, " }")

		return err

	default:
		_, err := fmt.Fprint(w, "<unknown>")

		return err
	}
}

// formatNumber renders a float in canonical form: no exponent notation,
// no trailing zeros, whole values without a decimal point.
func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// quote renders a string literal, escaping backslashes and quotes.
func quote(s string) string {
	var sb strings.Builder

	sb.Grow(len(s) + 2)
	sb.WriteByte('"')

	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\', '"':
			sb.WriteByte('\\')
		}

		sb.WriteByte(s[i])
	}

	sb.WriteByte('"')

	return sb.String()
}
