package lexer

import (
	"errors"
	"testing"
)

// collect lexes src to completion and fails the test on a lexer error.
func collect(t *testing.T, src string) []Token {
	t.Helper()
	s := New(src)
	var toks []Token
	for {
		tok, err := s.Next()
		if err != nil {
			t.Fatalf("unexpected lexer error for %q: %v", src, err)
		}
		if tok.Kind == EOF {
			return toks
		}
		toks = append(toks, tok)
	}
}

// kinds reduces a token slice to its kinds for compact comparison.
func kinds(toks []Token) []Kind {
	out := make([]Kind, len(toks))
	for i, tok := range toks {
		out[i] = tok.Kind
	}
	return out
}

func matchKinds(t *testing.T, src string, want ...Kind) {
	t.Helper()
	got := kinds(collect(t, src))
	if len(got) != len(want) {
		t.Fatalf("%q lexed to %v, want %v", src, got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("%q lexed to %v, want %v", src, got, want)
		}
	}
}

func TestCommentOnly(t *testing.T) {
	matchKinds(t, "; comment")
}

func TestMnemonicThenComment(t *testing.T) {
	matchKinds(t, "mov ; comment", MOV)
	matchKinds(t, "MOV ; coMMeNT", MOV)
}

// Single-letter operand keywords must not swallow longer words that start
// with the same letter.
func TestKeywordPriority(t *testing.T) {
	matchKinds(t, "xor", XOR)
	matchKinds(t, "x", X)
	matchKinds(t, "xident", Ident)
	matchKinds(t, "clra", Ident)
	matchKinds(t, "clr a", CLR, A)
	matchKinds(t, "clr   a", CLR, A)
	matchKinds(t, "nzs", NZS)
	matchKinds(t, "nz", NZ)
	matchKinds(t, "endif", ENDIF)
	matchKinds(t, "endi", ENDI)
	matchKinds(t, "end", END)
}

func TestLabelOrIdent(t *testing.T) {
	toks := collect(t, "x:")
	if len(toks) != 1 || toks[0].Kind != Label || toks[0].Text != "x" {
		t.Fatalf("lexing \"x:\" = %v, want Label 'x'", toks)
	}

	toks = collect(t, "xident")
	if len(toks) != 1 || toks[0].Kind != Ident || toks[0].Text != "xident" {
		t.Fatalf("lexing \"xident\" = %v, want Ident 'xident'", toks)
	}
}

// Numeric literals keep their prefix marker; values are resolved later by
// the parser.
func TestNumberForms(t *testing.T) {
	toks := collect(t, "$1F #31 %11111 31")
	want := []string{"$1F", "#31", "%11111", "31"}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(toks), len(want))
	}
	for i, tok := range toks {
		if tok.Kind != Num || tok.Text != want[i] {
			t.Errorf("token %d = %v, want Num '%s'", i, tok, want[i])
		}
	}
}

func TestNewlineCollapse(t *testing.T) {
	toks := collect(t, "nop\n\n\nnop")
	matchKinds(t, "nop\n\n\nnop", NOP, Newline, NOP)
	if toks[1].Text != "\n\n\n" {
		t.Errorf("Newline text = %q, want raw slice for line counting", toks[1].Text)
	}
}

func TestCarriageReturnNewline(t *testing.T) {
	matchKinds(t, "nop\r\nnop", NOP, Newline, NOP)
}

func TestFullDocument(t *testing.T) {
	doc := "; comment\n" +
		"MOV $1, ident       MOV $2, ALU\n" +
		"label:\n" +
		"    jmp nt0 ; inline comment\n"
	matchKinds(t, doc,
		Newline,
		MOV, Num, Comma, Ident,
		MOV, Num, Comma, ALU,
		Newline,
		Label, Newline,
		JMP, NT0, Newline,
	)
}

func TestLexError(t *testing.T) {
	s := New("clr @bad")
	tok, err := s.Next()
	if err != nil || tok.Kind != CLR {
		t.Fatalf("first token = %v, %v; want CLR", tok, err)
	}
	_, err = s.Next()
	var lerr *Error
	if !errors.As(err, &lerr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if lerr.Text != "@bad" {
		t.Errorf("offending slice = %q, want \"@bad\"", lerr.Text)
	}
}

func TestEmptyNumberIsError(t *testing.T) {
	s := New("$")
	if _, err := s.Next(); err == nil {
		t.Fatal("expected error for bare '$'")
	}
}

func TestEOFIsSticky(t *testing.T) {
	s := New("")
	for i := 0; i < 3; i++ {
		tok, err := s.Next()
		if err != nil || tok.Kind != EOF {
			t.Fatalf("call %d = %v, %v; want EOF", i, tok, err)
		}
	}
}

func TestTokenString(t *testing.T) {
	tests := []struct {
		tok  Token
		want string
	}{
		{Token{Kind: Ident, Text: "foo"}, "Ident 'foo'"},
		{Token{Kind: Num, Text: "$1F"}, "Num '$1F'"},
		{Token{Kind: Label, Text: "start"}, "Label 'start'"},
		{Token{Kind: XOR, Text: "xor"}, "XOR"},
		{Token{Kind: EOF}, "end of input"},
	}
	for _, tc := range tests {
		if got := tc.tok.String(); got != tc.want {
			t.Errorf("String() = %q, want %q", got, tc.want)
		}
	}
}
