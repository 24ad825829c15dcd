package lexer

import (
	"fmt"
)

// Cursor is a single-pass view over a Scanner with one token of lookahead.
// It is the only interface the parser needs: peek, accept, expect, and a
// printable description of the current token for diagnostics.
type Cursor struct {
	s      *Scanner
	tok    Token
	err    error
	primed bool
}

// NewCursor returns a Cursor pulling from s.
func NewCursor(s *Scanner) *Cursor {
	return &Cursor{s: s}
}

func (c *Cursor) prime() {
	if !c.primed {
		c.tok, c.err = c.s.Next()
		c.primed = true
	}
}

// Peek returns the token at the current position without consuming it.
func (c *Cursor) Peek() (Token, error) {
	c.prime()
	return c.tok, c.err
}

// Pop returns and consumes the token at the current position.
func (c *Cursor) Pop() (Token, error) {
	c.prime()
	tok, err := c.tok, c.err
	if err == nil && tok.Kind != EOF {
		c.primed = false
	}
	return tok, err
}

// Accept consumes the next token if it is of kind k and reports whether it
// did.
func (c *Cursor) Accept(k Kind) (bool, error) {
	tok, err := c.Peek()
	if err != nil {
		return false, err
	}
	if tok.Kind != k {
		return false, nil
	}
	_, _ = c.Pop()
	return true, nil
}

// Expect consumes the next token, which must be of kind k; anything else is
// a syntax error naming what was found instead.
func (c *Cursor) Expect(k Kind) error {
	ok, err := c.Accept(k)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("syntax error: expected %s but got %s", k, c.Describe())
	}
	return nil
}

// Describe returns the printable form of the token at the current position.
// Lexer failures and end of input get stable descriptions so they can appear
// in error messages.
func (c *Cursor) Describe() string {
	tok, err := c.Peek()
	if err != nil {
		return "unlexable input"
	}
	return tok.String()
}
