package assembler

import (
	"fmt"
	"log"

	"github.com/scudsp/scuasm/dsp"
)

// Program accumulates the output of an assembly pass: the committed
// instruction words, the program counter, the label table and the bundle
// currently being built. A Program is owned by exactly one pass at a time;
// the parser mutates it as each instruction is recognized.
type Program struct {
	// Words holds the committed 32-bit instruction words in program order.
	Words []uint32
	// Labels maps each label name to the program counter recorded at the
	// moment the label appeared. A redefinition overwrites the prior value.
	Labels map[string]uint32
	// Line is the current 0-based source line, maintained by the parser and
	// used to attribute errors.
	Line int

	pc       uint32
	word     uint32
	emitting bool
	emitted  int
	counts   [dsp.NumCategories]int
}

// NewProgram returns an empty Program ready for one assembly pass.
func NewProgram() *Program {
	return &Program{Labels: make(map[string]uint32)}
}

// The ensure methods guard the contract between parser and emitter. A
// violation is a defect in this program, never a user-facing condition.

func (p *Program) ensureEmitting() {
	if !p.emitting {
		panic("internal error: emitter should be emitting")
	}
}

func (p *Program) ensureNotEmitting() {
	if p.emitting {
		panic("internal error: emitter should NOT be emitting")
	}
}

// Begin starts accumulating a new bundle.
func (p *Program) Begin() {
	p.ensureNotEmitting()
	p.word = 0
	p.emitted = 0
	p.counts = [dsp.NumCategories]int{}
	p.emitting = true
}

// BeginIfIdle starts a new bundle unless one is already being accumulated.
// Beginning twice without an intervening commit must not reset work already
// contributed.
func (p *Program) BeginIfIdle() {
	if !p.emitting {
		p.Begin()
	}
}

// Emitting reports whether a bundle is currently being accumulated.
func (p *Program) Emitting() bool {
	return p.emitting
}

// Emit ORs a whole instruction word into the current bundle and counts one
// issued instruction.
func (p *Program) Emit(word uint32) {
	p.ensureEmitting()
	p.word |= word
	p.emitted++
}

// EmitBit sets a single bit in the current bundle and counts one issued
// instruction.
func (p *Program) EmitBit(bit uint) {
	p.ensureEmitting()
	p.word |= 1 << bit
	p.emitted++
}

// EmitBits sets all the given bits in the current bundle and counts one
// issued instruction.
func (p *Program) EmitBits(bits ...uint) {
	p.ensureEmitting()
	for _, b := range bits {
		p.word |= 1 << b
	}
	p.emitted++
}

// Register notes that an instruction of the given category was contributed
// to the current bundle.
func (p *Program) Register(cat dsp.Category) {
	p.ensureEmitting()
	p.counts[cat]++
}

// validate checks the issue-slot rules for the current bundle. The limits
// follow real-world programs and community reverse engineering rather than
// the vendor manual: the manual claims 4 instructions per bundle, but the
// X-Bus and Y-Bus fields are one-hot coded and independent, so 2 of each may
// issue concurrently alongside one ALU operation and the D1-Bus.
func (p *Program) validate() error {
	if p.counts[dsp.CatFlow] > 1 {
		return fmt.Errorf("illegal program: bundle contains more than one flow control instruction")
	}
	if p.counts[dsp.CatALU] > 1 {
		return fmt.Errorf("illegal program: bundle contains more than one ALU instruction")
	}
	if p.counts[dsp.CatXBus] > 2 {
		return fmt.Errorf("illegal program: bundle contains more than 2 X-Bus instructions")
	}
	if p.counts[dsp.CatYBus] > 2 {
		return fmt.Errorf("illegal program: bundle contains more than 2 Y-Bus instructions")
	}
	if p.emitted > 6 {
		return fmt.Errorf("illegal program: more than 6 instructions issued in a single bundle")
	}
	return nil
}

// Commit ends the current bundle. A bundle with no contributed instructions
// is discarded without advancing the program counter, which handles blank
// and comment-only lines. Otherwise the bundle is validated and, on success,
// appended to the program. The accumulation state is cleared either way so
// the next line starts clean.
func (p *Program) Commit() error {
	p.ensureEmitting()
	var err error
	if p.emitted > 0 {
		err = p.validate()
		if err == nil {
			p.Words = append(p.Words, p.word)
			p.pc += dsp.WordBytes
		}
	}
	p.emitting = false
	p.word = 0
	p.emitted = 0
	p.counts = [dsp.NumCategories]int{}
	return err
}

// AddLabel records the current program counter under the given name,
// overwriting any earlier entry.
func (p *Program) AddLabel(name string) {
	p.Labels[name] = p.pc
}

// PC returns the current program counter in bytes.
func (p *Program) PC() uint32 {
	return p.pc
}

// SetPC overrides the program counter. Hook for origin/relocation
// directives.
func (p *Program) SetPC(pc uint32) {
	p.pc = pc
}

// Bytes serializes the committed words as a big-endian byte image.
func (p *Program) Bytes() []byte {
	return dsp.WordsToBytes(p.Words)
}

// DebugDump logs the committed words in binary and hex.
func (p *Program) DebugDump() {
	for i, w := range p.Words {
		log.Printf("[%d] %#034b %#010x", i, w, w)
	}
}
