package lexer

import (
	"fmt"
)

// Error describes input that matches no token rule. Lexing does not attempt
// token-level recovery; the first bad byte fails the whole pass.
type Error struct {
	// Offset is the byte offset of the offending input.
	Offset int
	// Text is the offending slice, up to the next separator.
	Text string
}

func (e *Error) Error() string {
	return fmt.Sprintf("lexer error: unrecognized input %q at offset %d", e.Text, e.Offset)
}

// Scanner produces tokens lazily from a complete source document. It is
// single-pass; create a new Scanner to restart from the beginning.
type Scanner struct {
	src string
	pos int
}

// New returns a Scanner over src.
func New(src string) *Scanner {
	return &Scanner{src: src}
}

func isAlpha(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isHexDigit(c byte) bool {
	return isDigit(c) || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F'
}

func isWordChar(c byte) bool {
	return isAlpha(c) || isDigit(c) || c == '_'
}

// Next returns the next token. At the end of the input it returns an EOF
// token indefinitely. Spaces and tabs are dropped, ';' comments run to the
// end of the line and are never surfaced, and a run of line breaks collapses
// into a single Newline token whose Text keeps the raw slice so callers can
// count physical lines.
func (s *Scanner) Next() (Token, error) {
	for s.pos < len(s.src) {
		c := s.src[s.pos]
		switch {
		case c == ' ' || c == '\t':
			s.pos++
		case c == ';':
			for s.pos < len(s.src) && s.src[s.pos] != '\n' {
				s.pos++
			}
		case c == '\n' || c == '\r':
			return s.newline()
		case c == ',':
			s.pos++
			return Token{Kind: Comma, Text: ","}, nil
		case c == '=':
			s.pos++
			return Token{Kind: Equals, Text: "="}, nil
		case c == '\\':
			s.pos++
			return Token{Kind: Backslash, Text: `\`}, nil
		case c == '$':
			return s.number(isHexDigit)
		case c == '#':
			return s.number(isDigit)
		case c == '%':
			return s.number(func(b byte) bool { return b == '0' || b == '1' })
		case isDigit(c):
			return s.bareNumber()
		case isAlpha(c):
			return s.word()
		default:
			return Token{}, s.errorAt(s.pos)
		}
	}
	return Token{Kind: EOF}, nil
}

// newline consumes a run of '\n' and '\r' bytes. A carriage return without a
// following line feed matches no rule.
func (s *Scanner) newline() (Token, error) {
	start := s.pos
	sawLF := false
	for s.pos < len(s.src) && (s.src[s.pos] == '\n' || s.src[s.pos] == '\r') {
		if s.src[s.pos] == '\n' {
			sawLF = true
		}
		s.pos++
	}
	if !sawLF {
		return Token{}, s.errorAt(start)
	}
	return Token{Kind: Newline, Text: s.src[start:s.pos]}, nil
}

// number consumes a prefixed numeric literal. The prefix marker is kept in
// the token text; the parser resolves the value later.
func (s *Scanner) number(digit func(byte) bool) (Token, error) {
	start := s.pos
	s.pos++ // prefix marker
	for s.pos < len(s.src) && digit(s.src[s.pos]) {
		s.pos++
	}
	if s.pos == start+1 {
		return Token{}, s.errorAt(start)
	}
	return Token{Kind: Num, Text: s.src[start:s.pos]}, nil
}

// bareNumber consumes an unprefixed decimal literal.
func (s *Scanner) bareNumber() (Token, error) {
	start := s.pos
	for s.pos < len(s.src) && isDigit(s.src[s.pos]) {
		s.pos++
	}
	return Token{Kind: Num, Text: s.src[start:s.pos]}, nil
}

// word consumes an identifier-like sequence and classifies it. Maximal munch
// plus keyword lookup gives single-letter operand tokens (X, Y, P, A, ...)
// the right matching priority: "xor" can never lex as X followed by "or".
func (s *Scanner) word() (Token, error) {
	start := s.pos
	for s.pos < len(s.src) && isWordChar(s.src[s.pos]) {
		s.pos++
	}
	text := s.src[start:s.pos]
	if s.pos < len(s.src) && s.src[s.pos] == ':' {
		s.pos++
		return Token{Kind: Label, Text: text}, nil
	}
	if k, ok := keywords[lower(text)]; ok {
		return Token{Kind: k, Text: text}, nil
	}
	return Token{Kind: Ident, Text: text}, nil
}

// lower is an ASCII-only ToLower; source keywords are plain ASCII.
func lower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + 'a' - 'A'
		}
	}
	return string(b)
}

// errorAt builds an Error whose Text runs from pos to the next separator.
func (s *Scanner) errorAt(pos int) error {
	end := pos
	for end < len(s.src) {
		c := s.src[end]
		if c == ' ' || c == '\t' || c == '\n' || c == '\r' {
			break
		}
		end++
	}
	return &Error{Offset: pos, Text: s.src[pos:end]}
}
