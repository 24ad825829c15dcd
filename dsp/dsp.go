// Package dsp holds the fixed instruction-set facts of the Sega Saturn SCU
// DSP that are shared between the assembler and its callers: functional-unit
// categories, the bus-transfer field layout and word/byte conversion.
package dsp

// Category classifies an instruction by the hardware resource it occupies
// within a bundle. The set is closed; per-bundle issue counts are kept in an
// array indexed by it.
type Category int

const (
	// CatALU is the arithmetic/logic unit slot.
	CatALU Category = iota
	// CatXBus is an X-Bus data transfer slot.
	CatXBus
	// CatYBus is a Y-Bus data transfer slot.
	CatYBus
	// CatD1Bus is the D1-Bus (immediate/DMA) transfer slot.
	CatD1Bus
	// CatFlow is the flow-control slot (loop and end instructions).
	CatFlow
	// NumCategories is the number of categories, for array sizing.
	NumCategories
)

var categoryNames = [NumCategories]string{
	"ALU",
	"X-Bus",
	"Y-Bus",
	"D1-Bus",
	"flow control",
}

func (c Category) String() string {
	if c < 0 || c >= NumCategories {
		return "unknown"
	}
	return categoryNames[c]
}

// WordBytes is the width of one instruction word in bytes.
const WordBytes = 4

// Fixed single-bit encodings for the non-addressed transfer forms.
const (
	// BitMulToP encodes MOV MUL, P.
	BitMulToP = 24
	// BitAluToA encodes MOV ALU, A.
	BitAluToA = 18
	// BitClrA encodes CLR A.
	BitClrA = 17
)

// MemOperand identifies one of the eight data-RAM access forms. Its value is
// the 3-bit field encoding: M0..M3 address RAM banks 0-3 directly, MC0..MC3
// address them through CT0..CT3 with post-increment.
type MemOperand uint32

const (
	M0 MemOperand = iota
	M1
	M2
	M3
	MC0
	MC1
	MC2
	MC3
)

// BusDest identifies the destination of a MOV [s], [d] transfer.
type BusDest int

const (
	// DestX is the X-Bus input register.
	DestX BusDest = iota
	// DestP is the multiplier P register, written over the X-Bus.
	DestP
	// DestY is the Y-Bus input register.
	DestY
	// DestA is the ALU A register, written over the Y-Bus.
	DestA
)

var busDestNames = [...]string{"X", "P", "Y", "A"}

func (d BusDest) String() string {
	if d < 0 || int(d) >= len(busDestNames) {
		return "unknown"
	}
	return busDestNames[d]
}

// EncodeMove packs a memory-operand-to-bus transfer into its instruction
// word. The 3-bit source field sits at bit 20 for the X-Bus destinations and
// bit 14 for the Y-Bus destinations, below the destination's fixed high bits.
// SCU user manual pp. 109 describes the X-Bus layout; the Y-Bus layout is the
// community-confirmed mirror of it.
func EncodeMove(src MemOperand, dest BusDest) uint32 {
	var base uint32
	var offset uint
	switch dest {
	case DestX:
		base = 1 << 25
		offset = 20
	case DestP:
		base = 1<<24 | 1<<23
		offset = 20
	case DestY:
		base = 1 << 19
		offset = 14
	default:
		panic("internal error: no transfer encoding for destination " + dest.String())
	}
	return base | uint32(src&7)<<offset
}

// Bits builds an instruction word from a list of bit positions.
func Bits(positions ...uint) uint32 {
	var w uint32
	for _, b := range positions {
		w |= 1 << b
	}
	return w
}
