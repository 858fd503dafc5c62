package lang

import (
	"strings"
)

// TokenKind identifies the lexical class of a token.
type TokenKind int

// Token kinds, in no particular order. The scanner's matching priority is
// fixed by matchOrder, not by these values.
const (
	TokenEOF TokenKind = iota
	TokenString
	TokenNumber
	TokenAt
	TokenWord
	TokenNewline
	TokenSeparator
	TokenEquals
	TokenLeftBrace
	TokenRightBrace
	TokenLeftBracket
	TokenRightBracket
	TokenHash
)

// String returns a human-readable name for the token kind.
func (k TokenKind) String() string {
	switch k {
	case TokenEOF:
		return "EOF"

	case TokenString:
		return "String"

	case TokenNumber:
		return "Number"

	case TokenAt:
		return "At"

	case TokenWord:
		return "Word"

	case TokenNewline:
		return "Newline"

	case TokenSeparator:
		return "Separator"

	case TokenEquals:
		return "Equals"

	case TokenLeftBrace:
		return "LeftBrace"

	case TokenRightBrace:
		return "RightBrace"

	case TokenLeftBracket:
		return "LeftBracket"

	case TokenRightBracket:
		return "RightBracket"

	case TokenHash:
		return "Hash"

	default:
		return "Unknown"
	}
}

// Position locates a token within the source text.
type Position struct {
	Offset int // byte offset from the start of input
	Line   int // 1-based line number
	Column int // 1-based column number
}

// Token is a single lexical unit of slang source text.
// Text holds the raw matched input, including quotes for strings.
type Token struct {
	Text string
	Kind TokenKind
	Pos  Position
}

// scanner produces tokens from an in-memory source string.
//
// Matching is anchored at the cursor and tried in a fixed priority order;
// the first rule that matches a non-empty prefix wins. Input that no rule
// matches is a lexical error.
type scanner struct {
	input string
	pos   int
	line  int
	col   int
}

func newScanner(input string) *scanner {
	return &scanner{input: input, line: 1, col: 1}
}

// matcher reports the length in bytes of the prefix of s it matches,
// or 0 for no match.
type matcher struct {
	kind  TokenKind
	match func(s string) int
}

// matchOrder fixes the token matching priority. String and Number outrank
// Word so that quoted text and numeric literals are never swallowed as
// bare words; Newline outranks Separator so that comment-terminating
// newlines are never absorbed into a separator run.
var matchOrder = []matcher{
	{TokenString, matchString},
	{TokenNumber, matchNumber},
	{TokenAt, matchRune('@')},
	{TokenWord, matchWord},
	{TokenNewline, matchNewline},
	{TokenSeparator, matchSeparator},
	{TokenEquals, matchRune('=')},
	{TokenLeftBrace, matchRune('{')},
	{TokenRightBrace, matchRune('}')},
	{TokenLeftBracket, matchRune('[')},
	{TokenRightBracket, matchRune(']')},
	{TokenHash, matchRune('#')},
}

// next returns the next token in the input, or a lexical error carrying
// the position of the first unmatchable byte.
func (s *scanner) next() (Token, error) {
	if s.pos >= len(s.input) {
		return Token{Kind: TokenEOF, Pos: s.position()}, nil
	}

	rest := s.input[s.pos:]

	for _, m := range matchOrder {
		n := m.match(rest)
		if n == 0 {
			continue
		}

		tok := Token{
			Text: rest[:n],
			Kind: m.kind,
			Pos:  s.position(),
		}

		s.consume(tok.Text)

		return tok, nil
	}

	return Token{}, ErrLex.WithPosition(s.position())
}

func (s *scanner) position() Position {
	return Position{Offset: s.pos, Line: s.line, Column: s.col}
}

// consume advances the cursor past text, updating line and column.
func (s *scanner) consume(text string) {
	s.pos += len(text)

	for _, r := range text {
		if r == '\n' {
			s.line++
			s.col = 1
		} else {
			s.col++
		}
	}
}

// matchRune returns a matcher for a single literal byte.
func matchRune(r byte) func(string) int {
	return func(s string) int {
		if len(s) > 0 && s[0] == r {
			return 1
		}

		return 0
	}
}

// matchString matches a double-quoted string literal. A backslash escapes
// the following byte, whatever it is. An unterminated literal is not a
// match; the leading quote then falls through every other rule and
// surfaces as a lexical error.
func matchString(s string) int {
	if len(s) == 0 || s[0] != '"' {
		return 0
	}

	i := 1
	for i < len(s) {
		switch s[i] {
		case '\\':
			i += 2

		case '"':
			return i + 1

		default:
			i++
		}
	}

	return 0
}

// matchNumber matches an optional minus sign, one or more digits, and an
// optional fractional part. A trailing bare dot is not consumed.
func matchNumber(s string) int {
	i := 0
	if i < len(s) && s[i] == '-' {
		i++
	}

	start := i
	for i < len(s) && isDigit(s[i]) {
		i++
	}

	if i == start {
		return 0
	}

	if i+1 < len(s) && s[i] == '.' && isDigit(s[i+1]) {
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
		}
	}

	return i
}

// matchWord matches a run of bytes excluding quotes, whitespace, comment
// markers, backslashes, and the structural characters of the language.
func matchWord(s string) int {
	i := 0
	for i < len(s) && isWordByte(s[i]) {
		i++
	}

	return i
}

// matchNewline matches optional non-newline whitespace followed by at
// least one line break.
func matchNewline(s string) int {
	i := 0
	for i < len(s) && isInlineSpace(s[i]) {
		i++
	}

	if i >= len(s) || (s[i] != '\n' && s[i] != '\r') {
		return 0
	}

	for i < len(s) && (s[i] == '\n' || s[i] == '\r') {
		i++
	}

	return i
}

// matchSeparator matches a run of commas and non-newline whitespace.
func matchSeparator(s string) int {
	i := 0
	for i < len(s) && (s[i] == ',' || isInlineSpace(s[i])) {
		i++
	}

	return i
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isInlineSpace(b byte) bool { return b == ' ' || b == '\t' }

func isWordByte(b byte) bool {
	switch b {
	case '"', '#', '\\', '=', '{', '}', '[', ']', ',':
		return false
	}

	if b == ' ' || b == '\t' || b == '\n' || b == '\r' {
		return false
	}

	return true
}

// String returns the token rendered for diagnostics.
func (t Token) String() string {
	var sb strings.Builder

	sb.WriteString(t.Kind.String())

	if t.Text != "" && t.Kind != TokenNewline && t.Kind != TokenSeparator {
		sb.WriteString("(")
		sb.WriteString(t.Text)
		sb.WriteString(")")
	}

	return sb.String()
}
