package lang

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"github.com/rensoftworks/slang/log"
)

// DefaultMaxDepth is the default maximum nesting depth for documents and
// arrays. Users may modify this before parsing to change the default.
var DefaultMaxDepth = 100

// Option configures parsing behavior.
type Option func(*parser)

// WithMaxDepth sets the maximum nesting depth for documents and arrays.
func WithMaxDepth(depth int) Option {
	return func(p *parser) {
		p.maxDepth = depth
	}
}

// WithLogger sets the structured logger for trace-level debugging.
// If not provided, the logger is zero-valued and all logging is a no-op.
func WithLogger(logger log.Logger) Option {
	return func(p *parser) {
		p.logger = logger
	}
}

// ParseReader parses a document from an io.Reader.
func ParseReader(
	ctx context.Context,
	r io.Reader,
	opts ...Option,
) (*Map, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, ErrReadInput.Wrap(err)
	}

	return ParseString(ctx, string(data), opts...)
}

// ParseString parses a document from a string.
//
// Parsing is all-or-nothing: the first error aborts the parse and no
// partial document is returned. Constants declared in the input are
// scoped to this invocation and are not part of the result.
func ParseString(ctx context.Context, s string, opts ...Option) (*Map, error) {
	p := &parser{
		scan:     newScanner(s),
		consts:   make(map[string]*Value),
		maxDepth: DefaultMaxDepth,
	}

	for _, opt := range opts {
		opt(p)
	}

	p.logger.TraceContext(ctx, "parse start",
		slog.Int("source_length", len(s)))

	doc, err := p.parseDocument(ctx, true)
	if err != nil {
		return nil, err
	}

	p.logger.TraceContext(ctx, "parse complete",
		slog.Int("key_count", doc.Len()),
		slog.Int("constant_count", len(p.consts)))

	return doc, nil
}

// mode identifies a state of the parser's mode stack.
type mode int

const (
	modeKey mode = iota
	modeEquals
	modeValue
	modeComment
	modeDeclareConstant
	modeRetrieveConstant
)

// String returns a human-readable name for the mode.
func (m mode) String() string {
	switch m {
	case modeKey:
		return "Key"

	case modeEquals:
		return "Equals"

	case modeValue:
		return "Value"

	case modeComment:
		return "Comment"

	case modeDeclareConstant:
		return "DeclareConstant"

	case modeRetrieveConstant:
		return "RetrieveConstant"

	default:
		return "Unknown"
	}
}

// expected maps each mode to the token kinds it accepts. A token outside
// its mode's row aborts the parse with ErrUnexpectedToken.
var expected = map[mode]map[TokenKind]bool{
	modeKey: {
		TokenWord:       true,
		TokenNumber:     true,
		TokenString:     true,
		TokenAt:         true,
		TokenHash:       true,
		TokenNewline:    true,
		TokenSeparator:  true,
		TokenRightBrace: true,
	},
	modeEquals: {
		TokenEquals:    true,
		TokenHash:      true,
		TokenSeparator: true,
		TokenNewline:   true,
	},
	modeValue: {
		TokenWord:        true,
		TokenNumber:      true,
		TokenString:      true,
		TokenAt:          true,
		TokenHash:        true,
		TokenLeftBrace:   true,
		TokenLeftBracket: true,
		TokenSeparator:   true,
		TokenNewline:     true,
	},
	modeDeclareConstant: {
		TokenWord:      true,
		TokenNumber:    true,
		TokenString:    true,
		TokenSeparator: true,
	},
	modeRetrieveConstant: {
		TokenWord:      true,
		TokenNumber:    true,
		TokenString:    true,
		TokenSeparator: true,
	},
}

// parser holds the state for a single parse invocation.
type parser struct {
	scan     *scanner
	modes    []mode
	consts   map[string]*Value // constant table, per invocation
	logger   log.Logger
	maxDepth int
	depth    int
}

func (p *parser) push(m mode) { p.modes = append(p.modes, m) }

func (p *parser) pop() { p.modes = p.modes[:len(p.modes)-1] }

// swap replaces the top of the mode stack.
func (p *parser) swap(m mode) { p.modes[len(p.modes)-1] = m }

func (p *parser) mode() mode { return p.modes[len(p.modes)-1] }

// enter checks and claims one level of nesting depth.
func (p *parser) enter(pos Position) error {
	p.depth++
	if p.depth > p.maxDepth {
		return ErrMaxDepthExceeded.WithPosition(pos).
			With(slog.Int("max_depth", p.maxDepth))
	}

	return nil
}

func (p *parser) leave() { p.depth-- }

// parseDocument parses key = value pairs until the closing brace of a
// nested document, or until EOF when top is set.
func (p *parser) parseDocument(ctx context.Context, top bool) (*Map, error) {
	if err := p.enter(p.scan.position()); err != nil {
		return nil, err
	}
	defer p.leave()

	p.push(modeKey)

	doc := NewMap()

	var (
		pendingKey   string
		pendingConst string
		haveConst    bool
	)

	// store routes a completed value to the constant table or the
	// document, whichever the pending declaration selects.
	store := func(v *Value) {
		if haveConst {
			p.consts[pendingConst] = v
			haveConst = false

			return
		}

		doc.Set(pendingKey, v)
	}

	for {
		tok, err := p.scan.next()
		if err != nil {
			return nil, err
		}

		if tok.Kind == TokenEOF {
			// A trailing comment is complete at end of input.
			for p.mode() == modeComment {
				p.pop()
			}

			if top && p.mode() == modeKey {
				p.pop()

				return doc, nil
			}

			return nil, ErrTruncated.WithPosition(tok.Pos).
				With(slog.String("mode", p.mode().String()))
		}

		cur := p.mode()

		if cur != modeComment && !expected[cur][tok.Kind] {
			return nil, p.unexpected(tok, cur)
		}

		switch cur {
		case modeComment:
			if tok.Kind == TokenNewline {
				p.pop()
			}

		case modeKey:
			switch tok.Kind {
			case TokenNewline, TokenSeparator:
				// skip

			case TokenHash:
				p.push(modeComment)

			case TokenWord, TokenNumber:
				pendingKey = tok.Text

				p.push(modeEquals)

			case TokenString:
				pendingKey = unquote(tok.Text)

				p.push(modeEquals)

			case TokenAt:
				p.push(modeDeclareConstant)

			case TokenRightBrace:
				if top {
					return nil, p.unexpected(tok, cur)
				}

				p.pop()

				return doc, nil
			}

		case modeEquals:
			switch tok.Kind {
			case TokenEquals:
				p.swap(modeValue)

			case TokenHash:
				p.push(modeComment)
			}

		case modeDeclareConstant:
			switch tok.Kind {
			case TokenWord, TokenNumber, TokenString:
				pendingConst = constantName(tok)
				haveConst = true

				p.swap(modeEquals)

				p.logger.TraceContext(ctx, "declare constant",
					slog.String("name", pendingConst))
			}

		case modeRetrieveConstant:
			switch tok.Kind {
			case TokenWord, TokenNumber, TokenString:
				name := constantName(tok)

				v, ok := p.consts[name]
				if !ok {
					return nil, ErrUndefinedConstant.
						WithPosition(tok.Pos).
						With(slog.String("name", name))
				}

				p.pop()
				store(v)
			}

		case modeValue:
			switch tok.Kind {
			case TokenNewline, TokenSeparator:
				// skip

			case TokenHash:
				p.push(modeComment)

			case TokenAt:
				p.swap(modeRetrieveConstant)

			case TokenLeftBrace:
				nested, err := p.parseDocument(ctx, false)
				if err != nil {
					return nil, err
				}

				p.pop()
				store(MapValue(nested))

			case TokenLeftBracket:
				items, err := p.parseArray(ctx)
				if err != nil {
					return nil, err
				}

				p.pop()
				store(&Value{Kind: KindArray, Items: items})

			default: // Word, Number, String
				v, err := scalar(tok)
				if err != nil {
					return nil, err
				}

				p.pop()
				store(v)
			}
		}
	}
}

// arrayExpected lists the token kinds accepted between array brackets.
var arrayExpected = map[TokenKind]bool{
	TokenWord:         true,
	TokenNumber:       true,
	TokenString:       true,
	TokenAt:           true,
	TokenHash:         true,
	TokenLeftBrace:    true,
	TokenLeftBracket:  true,
	TokenRightBracket: true,
	TokenSeparator:    true,
	TokenNewline:      true,
}

// parseArray parses array elements after an opening bracket, consuming
// through the matching closing bracket.
func (p *parser) parseArray(ctx context.Context) ([]*Value, error) {
	if err := p.enter(p.scan.position()); err != nil {
		return nil, err
	}
	defer p.leave()

	items := make([]*Value, 0)
	inComment := false

	for {
		tok, err := p.scan.next()
		if err != nil {
			return nil, err
		}

		if tok.Kind == TokenEOF {
			return nil, ErrTruncated.WithPosition(tok.Pos).
				With(slog.String("context", "array"))
		}

		if inComment {
			if tok.Kind == TokenNewline {
				inComment = false
			}

			continue
		}

		if !arrayExpected[tok.Kind] {
			return nil, ErrUnexpectedToken.WithPosition(tok.Pos).
				With(
					slog.String("token", tok.String()),
					slog.String("context", "array"),
					slog.String("expected", expectedList(arrayExpected)),
				)
		}

		switch tok.Kind {
		case TokenNewline, TokenSeparator:
			// skip

		case TokenHash:
			inComment = true

		case TokenRightBracket:
			return items, nil

		case TokenAt:
			v, err := p.retrieveConstant()
			if err != nil {
				return nil, err
			}

			items = append(items, v)

		case TokenLeftBracket:
			nested, err := p.parseArray(ctx)
			if err != nil {
				return nil, err
			}

			items = append(items, &Value{Kind: KindArray, Items: nested})

		case TokenLeftBrace:
			nested, err := p.parseDocument(ctx, false)
			if err != nil {
				return nil, err
			}

			items = append(items, MapValue(nested))

		default: // Word, Number, String
			v, err := scalar(tok)
			if err != nil {
				return nil, err
			}

			items = append(items, v)
		}
	}
}

// retrieveConstant reads the constant name following an '@' and resolves
// it against the invocation's constant table.
func (p *parser) retrieveConstant() (*Value, error) {
	for {
		tok, err := p.scan.next()
		if err != nil {
			return nil, err
		}

		switch tok.Kind {
		case TokenSeparator:
			// skip

		case TokenWord, TokenNumber, TokenString:
			name := constantName(tok)

			v, ok := p.consts[name]
			if !ok {
				return nil, ErrUndefinedConstant.
					WithPosition(tok.Pos).
					With(slog.String("name", name))
			}

			return v, nil

		case TokenEOF:
			return nil, ErrTruncated.WithPosition(tok.Pos).
				With(slog.String("context", "constant reference"))

		default:
			return nil, ErrUnexpectedToken.WithPosition(tok.Pos).
				With(
					slog.String("token", tok.String()),
					slog.String("context", "constant reference"),
					slog.String("expected", "Number, String, Word"),
				)
		}
	}
}

// constantName extracts a constant's name from its naming token. Quoted
// names are unquoted but not unescaped, matching key handling.
func constantName(tok Token) string {
	if tok.Kind == TokenString {
		return unquote(tok.Text)
	}

	return tok.Text
}

// unexpected builds the error for a token outside its mode's expected set.
func (p *parser) unexpected(tok Token, cur mode) error {
	return ErrUnexpectedToken.WithPosition(tok.Pos).
		With(
			slog.String("token", tok.String()),
			slog.String("mode", cur.String()),
			slog.String("expected", expectedList(expected[cur])),
		)
}

// expectedList renders an expected-token set as a sorted, comma-joined
// string for error attributes.
func expectedList(set map[TokenKind]bool) string {
	names := make([]string, 0, len(set))
	for kind := range set {
		names = append(names, kind.String())
	}

	sort.Strings(names)

	return strings.Join(names, ", ")
}

// scalar converts a Word, Number, or String token into a value.
func scalar(tok Token) (*Value, error) {
	switch tok.Kind {
	case TokenWord:
		switch tok.Text {
		case "null":
			return Null(), nil

		case "true":
			return Bool(true), nil

		case "false":
			return Bool(false), nil

		default:
			return String(tok.Text), nil
		}

	case TokenNumber:
		f, err := strconv.ParseFloat(tok.Text, 64)
		if err != nil {
			return nil, ErrInvalidNumber.WithPosition(tok.Pos).Wrap(err)
		}

		return Number(f), nil

	case TokenString:
		return String(unescape(unquote(tok.Text))), nil

	default:
		return nil, ErrUnexpectedToken.WithPosition(tok.Pos).
			With(slog.String("token", tok.String()))
	}
}

// unquote strips the surrounding double quotes from a string literal.
func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}

	return s
}

// unescape resolves the recognized escape sequences \" and \\. Any other
// backslash sequence passes through with the backslash retained.
func unescape(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}

	var sb strings.Builder

	sb.Grow(len(s))

	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			switch s[i+1] {
			case '"', '\\':
				sb.WriteByte(s[i+1])

				i++

				continue
			}
		}

		sb.WriteByte(s[i])
	}

	return sb.String()
}
