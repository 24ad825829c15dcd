package assembler

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/scudsp/scuasm/dsp"
	"github.com/scudsp/scuasm/lexer"
)

// Parser recognizes one bundle's worth of instructions per source line and
// drives a Program as a side effect while parsing. It is recursive-descent
// with one method per grammar production and never needs more than one token
// of lookahead:
//
//	document := (line)*
//	line     := Newline | label? instr (instr)* Newline
//	instr    := alu | mov | clr | loop | end
type Parser struct {
	cur  *lexer.Cursor
	prog *Program
	opts Options
}

// NewParser returns a Parser reading from cur and emitting into prog.
func NewParser(cur *lexer.Cursor, prog *Program, opts Options) *Parser {
	return &Parser{cur: cur, prog: prog, opts: opts}
}

func (p *Parser) debugf(format string, args ...any) {
	if p.opts.Debug {
		log.Printf(format, args...)
	}
}

func (p *Parser) peek() (lexer.Token, error) {
	return p.cur.Peek()
}

// pop consumes the token a preceding successful peek already inspected.
func (p *Parser) pop() lexer.Token {
	tok, err := p.cur.Pop()
	if err != nil {
		panic("internal error: pop after successful peek")
	}
	return tok
}

func (p *Parser) accept(k lexer.Kind) (bool, error) {
	return p.cur.Accept(k)
}

func (p *Parser) expect(k lexer.Kind) error {
	return p.cur.Expect(k)
}

// Classification predicates over token kinds. Predicates instead of
// membership tables keep the token set and the classifications from
// drifting apart.

// isALU reports whether k is an ALU operation mnemonic.
func isALU(k lexer.Kind) bool {
	switch k {
	case lexer.NOP, lexer.AND, lexer.OR, lexer.XOR, lexer.ADD, lexer.SUB,
		lexer.AD2, lexer.SR, lexer.RR, lexer.SL, lexer.RL, lexer.RL8:
		return true
	}
	return false
}

// isLoop reports whether k is a loop flow-control mnemonic.
func isLoop(k lexer.Kind) bool {
	return k == lexer.BTM || k == lexer.LPS
}

// isEnd reports whether k is an end flow-control mnemonic.
func isEnd(k lexer.Kind) bool {
	return k == lexer.END || k == lexer.ENDI
}

// isInstruction reports whether k can start an instruction production.
func isInstruction(k lexer.Kind) bool {
	return isALU(k) || k == lexer.MOV || k == lexer.CLR || isLoop(k) || isEnd(k)
}

// isReserved reports whether k is a mnemonic or directive the instruction
// set defines but this assembler does not implement yet.
func isReserved(k lexer.Kind) bool {
	switch k {
	case lexer.MVI, lexer.JMP, lexer.DMA, lexer.DMAH,
		lexer.EQU, lexer.ORG, lexer.ENDS, lexer.IF, lexer.IFDEF, lexer.ENDIF:
		return true
	}
	return false
}

// memOperand maps a memory-operand token kind to its 3-bit field encoding.
func memOperand(k lexer.Kind) (dsp.MemOperand, bool) {
	switch k {
	case lexer.M0:
		return dsp.M0, true
	case lexer.M1:
		return dsp.M1, true
	case lexer.M2:
		return dsp.M2, true
	case lexer.M3:
		return dsp.M3, true
	case lexer.MC0:
		return dsp.MC0, true
	case lexer.MC1:
		return dsp.MC1, true
	case lexer.MC2:
		return dsp.MC2, true
	case lexer.MC3:
		return dsp.MC3, true
	}
	return 0, false
}

// Document parses an entire source document, committing one bundle per
// line. Any error aborts the pass; the Program's Line field holds the
// 0-based line the error belongs to.
func (p *Parser) Document() error {
	for {
		tok, err := p.peek()
		if err != nil {
			return err
		}
		switch {
		case tok.Kind == lexer.EOF:
			if p.prog.Emitting() {
				return p.prog.Commit()
			}
			return nil
		case tok.Kind == lexer.Newline:
			p.pop()
			if p.prog.Emitting() {
				if err := p.prog.Commit(); err != nil {
					return err
				}
			}
			p.prog.Line += strings.Count(tok.Text, "\n")
		case tok.Kind == lexer.Label:
			if p.prog.Emitting() {
				return fmt.Errorf("syntax error: label %s must appear at the start of a line", tok)
			}
			p.pop()
			p.debugf("register label %q at pc %d", tok.Text, p.prog.PC())
			p.prog.AddLabel(tok.Text)
		case isInstruction(tok.Kind):
			p.prog.BeginIfIdle()
			if err := p.instruction(); err != nil {
				return err
			}
		case isReserved(tok.Kind):
			return fmt.Errorf("syntax error: %s is not supported by this assembler yet", tok.Kind)
		default:
			return fmt.Errorf("syntax error: could not parse instruction near %s", p.cur.Describe())
		}
	}
}

// instruction dispatches on the current token to the matching production.
func (p *Parser) instruction() error {
	tok, err := p.peek()
	if err != nil {
		return err
	}
	p.debugf("parse instruction near %s", tok)
	switch {
	case isALU(tok.Kind):
		return p.alu()
	case tok.Kind == lexer.MOV:
		return p.mov()
	case tok.Kind == lexer.CLR:
		return p.clr()
	case isLoop(tok.Kind):
		return p.loop()
	case isEnd(tok.Kind):
		return p.end()
	}
	return fmt.Errorf("syntax error: could not parse instruction near %s", tok)
}

// alu parses one ALU operation. Each mnemonic maps to a fixed, disjoint bit
// pattern; NOP contributes no bits but still counts as an issued
// instruction and occupies no category slot.
func (p *Parser) alu() error {
	p.debugf("parse ALU instruction")
	tok, err := p.peek()
	if err != nil {
		return err
	}
	switch tok.Kind {
	case lexer.NOP:
		p.pop()
		p.prog.Emit(0)
		return nil
	case lexer.AND:
		p.prog.EmitBit(26)
	case lexer.OR:
		p.prog.EmitBit(27)
	case lexer.XOR:
		p.prog.EmitBits(26, 27)
	case lexer.ADD:
		p.prog.EmitBit(28)
	case lexer.SUB:
		p.prog.EmitBits(26, 28)
	case lexer.AD2:
		p.prog.EmitBits(27, 28)
	case lexer.SR:
		p.prog.EmitBit(29)
	case lexer.RR:
		p.prog.EmitBits(26, 29)
	case lexer.SL:
		p.prog.EmitBits(27, 29)
	case lexer.RL:
		p.prog.EmitBits(26, 27, 29)
	case lexer.RL8:
		p.prog.EmitBits(26, 27, 28, 29)
	default:
		return fmt.Errorf("syntax error: could not parse ALU command near %s", tok)
	}
	p.pop()
	p.prog.Register(dsp.CatALU)
	return nil
}

// mov parses the MOV family: MOV MUL,P; MOV ALU,A; MOV [s],<X|P|Y>; and the
// signed-immediate form MOV SImm,[d].
func (p *Parser) mov() error {
	p.debugf("parse bus transfer instruction")
	if err := p.expect(lexer.MOV); err != nil {
		return err
	}

	// MOV MUL, P
	if ok, err := p.accept(lexer.MUL); err != nil {
		return err
	} else if ok {
		if err := p.expect(lexer.Comma); err != nil {
			return err
		}
		if err := p.expect(lexer.P); err != nil {
			return err
		}
		p.prog.EmitBit(dsp.BitMulToP)
		p.prog.Register(dsp.CatXBus)
		return nil
	}

	// MOV ALU, A
	if ok, err := p.accept(lexer.ALU); err != nil {
		return err
	} else if ok {
		if err := p.expect(lexer.Comma); err != nil {
			return err
		}
		if err := p.expect(lexer.A); err != nil {
			return err
		}
		p.prog.EmitBit(dsp.BitAluToA)
		p.prog.Register(dsp.CatYBus)
		return nil
	}

	tok, err := p.peek()
	if err != nil {
		return err
	}

	// MOV SImm, [d]
	if tok.Kind == lexer.Num {
		return p.movImmediate()
	}

	// Otherwise a memory operand source. Take the token now; its validity is
	// checked once the destination bus is known.
	if tok.Kind == lexer.Newline || tok.Kind == lexer.EOF {
		return fmt.Errorf("syntax error: illegal source for MOV instruction, got: %s", tok)
	}
	src := p.pop()
	if err := p.expect(lexer.Comma); err != nil {
		return err
	}

	if ok, err := p.accept(lexer.X); err != nil {
		return err
	} else if ok {
		return p.movTransfer(src, dsp.DestX, dsp.CatXBus)
	}
	if ok, err := p.accept(lexer.P); err != nil {
		return err
	} else if ok {
		return p.movTransfer(src, dsp.DestP, dsp.CatXBus)
	}
	if ok, err := p.accept(lexer.Y); err != nil {
		return err
	} else if ok {
		return p.movTransfer(src, dsp.DestY, dsp.CatYBus)
	}

	return fmt.Errorf("syntax error: illegal destination for MOV instruction, got: %s", p.cur.Describe())
}

// movTransfer encodes a memory-operand-to-bus transfer.
func (p *Parser) movTransfer(src lexer.Token, dest dsp.BusDest, cat dsp.Category) error {
	mem, ok := memOperand(src.Kind)
	if !ok {
		return fmt.Errorf("syntax error: illegal MOV source address for %s destination, got: %s", dest, src)
	}
	p.prog.Emit(dsp.EncodeMove(mem, dest))
	p.prog.Register(cat)
	return nil
}

// movImmediate handles MOV SImm, [d]. Only the range check is implemented:
// the D1-Bus field packing still has to be derived from hardware
// documentation, so the operands are consumed and no bits are contributed.
func (p *Parser) movImmediate() error {
	value, err := p.number()
	if err != nil {
		return err
	}
	if value >= 127 {
		return fmt.Errorf("'%d' will not fit in signed 8-bit immediate value (in MOV SImm, [d])", value)
	}
	if err := p.expect(lexer.Comma); err != nil {
		return err
	}
	tok, err := p.peek()
	if err != nil {
		return err
	}
	if tok.Kind == lexer.Newline || tok.Kind == lexer.EOF {
		return fmt.Errorf("syntax error: expected a destination in MOV SImm, [d], got: %s", tok)
	}
	p.pop()
	return nil
}

// clr parses CLR A. It shares the ALU issue slot.
func (p *Parser) clr() error {
	p.debugf("parse CLR A")
	if err := p.expect(lexer.CLR); err != nil {
		return err
	}
	if err := p.expect(lexer.A); err != nil {
		return err
	}
	p.prog.EmitBit(dsp.BitClrA)
	p.prog.Register(dsp.CatALU)
	return nil
}

// loop parses BTM and LPS.
func (p *Parser) loop() error {
	p.debugf("parse loop instruction")
	tok, err := p.peek()
	if err != nil {
		return err
	}
	switch tok.Kind {
	case lexer.BTM:
		p.prog.EmitBits(31, 30, 29)
	case lexer.LPS:
		p.prog.EmitBits(31, 30, 29, 27)
	default:
		return fmt.Errorf("syntax error: could not parse loop (BTM/LPS) instruction near %s", tok)
	}
	p.pop()
	p.prog.Register(dsp.CatFlow)
	return p.endOfBundle("LPS/BTM")
}

// end parses END and ENDI.
func (p *Parser) end() error {
	p.debugf("parse end instruction")
	tok, err := p.peek()
	if err != nil {
		return err
	}
	switch tok.Kind {
	case lexer.END:
		p.prog.EmitBits(31, 30, 29, 28)
	case lexer.ENDI:
		p.prog.EmitBits(31, 30, 29, 28, 27)
	default:
		return fmt.Errorf("syntax error: could not parse END instruction near %s", tok)
	}
	p.pop()
	p.prog.Register(dsp.CatFlow)
	return p.endOfBundle("END/ENDI")
}

// endOfBundle enforces the own-line rule for flow-control instructions: the
// SCU manual (pp. 91) implies END and LOOP types issue apart from the normal
// ALU/bus bundle, so a newline must follow directly. Consuming it also
// commits the bundle.
func (p *Parser) endOfBundle(what string) error {
	tok, err := p.peek()
	if err != nil {
		return err
	}
	if tok.Kind != lexer.Newline {
		return fmt.Errorf("syntax error: expected a newline after %s; these instructions must be issued on their own, not as part of a bundle", what)
	}
	p.pop()
	if err := p.prog.Commit(); err != nil {
		return err
	}
	p.prog.Line += strings.Count(tok.Text, "\n")
	return nil
}

// number consumes a numeric literal and resolves its textual form. The
// retained prefix marker selects the base: $ hex, % binary, # or nothing
// decimal.
func (p *Parser) number() (uint32, error) {
	tok, err := p.peek()
	if err != nil {
		return 0, err
	}
	if tok.Kind != lexer.Num {
		return 0, fmt.Errorf("syntax error: expected number, got: %s", tok)
	}
	p.pop()

	text := tok.Text
	base := 10
	switch {
	case strings.HasPrefix(text, "$"):
		text, base = text[1:], 16
	case strings.HasPrefix(text, "#"):
		text = text[1:]
	case strings.HasPrefix(text, "%"):
		text, base = text[1:], 2
	}
	v, err := strconv.ParseUint(text, base, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid numeric literal %q: %w", tok.Text, err)
	}
	return uint32(v), nil
}
