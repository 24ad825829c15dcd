// Package lexer converts SCU DSP assembly source text into a stream of
// typed tokens and provides a one-token-lookahead cursor for the parser.
package lexer

import (
	"fmt"
	"strings"
)

// Kind identifies a token type. Keyword kinds cover the full SCU DSP
// mnemonic and operand vocabulary; keywords without a grammar production yet
// still lex, and are rejected by the parser with a clear diagnostic.
type Kind int

const (
	// EOF marks the end of the input.
	EOF Kind = iota
	// Newline is one or more consecutive line breaks.
	Newline
	// Comma separates operands.
	Comma
	// Equals is the '=' directive token.
	Equals
	// Backslash is the line-continuation token.
	Backslash
	// Ident is a bare identifier that matches no keyword.
	Ident
	// Num is a numeric literal with its prefix marker retained.
	Num
	// Label is an identifier that was followed by ':', colon stripped.
	Label

	// Instruction mnemonics.
	NOP
	MOV
	MVI
	DMA
	DMAH
	JMP
	CLR
	BTM
	LPS
	END
	ENDI

	// ALU operations.
	AND
	OR
	XOR
	ADD
	SUB
	AD2
	SR
	RR
	SL
	RL
	RL8

	// Memory operands and registers.
	M0
	M1
	M2
	M3
	MC0
	MC1
	MC2
	MC3
	X
	Y
	P
	A
	MUL
	ALU
	ALH
	ALL
	RX
	PL
	RA0
	WA0
	LOP
	TOP
	CT0
	CT1
	CT2
	CT3
	D0

	// Condition codes.
	Z
	NZ
	S
	NS
	C
	NC
	T0
	NT0
	ZS
	NZS

	// Directives reserved for the macro layer.
	EQU
	ORG
	ENDS
	IF
	IFDEF
	ENDIF

	numKinds
)

const (
	firstKeyword = NOP
	lastKeyword  = ENDIF
)

var kindNames = [numKinds]string{
	EOF:       "end of input",
	Newline:   "Newline",
	Comma:     "Comma",
	Equals:    "=",
	Backslash: "\\",
	Ident:     "Ident",
	Num:       "Num",
	Label:     "Label",
	NOP:       "NOP",
	MOV:       "MOV",
	MVI:       "MVI",
	DMA:       "DMA",
	DMAH:      "DMAH",
	JMP:       "JMP",
	CLR:       "CLR",
	BTM:       "BTM",
	LPS:       "LPS",
	END:       "END",
	ENDI:      "ENDI",
	AND:       "AND",
	OR:        "OR",
	XOR:       "XOR",
	ADD:       "ADD",
	SUB:       "SUB",
	AD2:       "AD2",
	SR:        "SR",
	RR:        "RR",
	SL:        "SL",
	RL:        "RL",
	RL8:       "RL8",
	M0:        "M0",
	M1:        "M1",
	M2:        "M2",
	M3:        "M3",
	MC0:       "MC0",
	MC1:       "MC1",
	MC2:       "MC2",
	MC3:       "MC3",
	X:         "X",
	Y:         "Y",
	P:         "P",
	A:         "A",
	MUL:       "MUL",
	ALU:       "ALU",
	ALH:       "ALH",
	ALL:       "ALL",
	RX:        "RX",
	PL:        "PL",
	RA0:       "RA0",
	WA0:       "WA0",
	LOP:       "LOP",
	TOP:       "TOP",
	CT0:       "CT0",
	CT1:       "CT1",
	CT2:       "CT2",
	CT3:       "CT3",
	D0:        "D0",
	Z:         "Z",
	NZ:        "NZ",
	S:         "S",
	NS:        "NS",
	C:         "C",
	NC:        "NC",
	T0:        "T0",
	NT0:       "NT0",
	ZS:        "ZS",
	NZS:       "NZS",
	EQU:       "EQU",
	ORG:       "ORG",
	ENDS:      "ENDS",
	IF:        "IF",
	IFDEF:     "IFDEF",
	ENDIF:     "ENDIF",
}

// keywords maps the lowercased keyword text to its kind. Building it from
// kindNames keeps the table and the kind set from drifting apart.
var keywords = make(map[string]Kind, lastKeyword-firstKeyword+1)

func init() {
	for k := firstKeyword; k <= lastKeyword; k++ {
		keywords[strings.ToLower(kindNames[k])] = k
	}
}

func (k Kind) String() string {
	if k < 0 || k >= numKinds {
		return "unknown"
	}
	return kindNames[k]
}

// Token is one lexical element of a source document. Tokens are immutable
// once produced and compare structurally. Text holds the original source
// slice; for Num tokens this includes the base prefix marker, for Label
// tokens the trailing colon is stripped.
type Token struct {
	Kind Kind
	Text string
}

// String returns the token's printable form for diagnostics. Payload-bearing
// tokens include their text.
func (t Token) String() string {
	switch t.Kind {
	case Ident, Num, Label:
		return fmt.Sprintf("%s '%s'", t.Kind, t.Text)
	}
	return t.Kind.String()
}
