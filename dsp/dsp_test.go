package dsp_test

import (
	"bytes"
	"testing"

	"github.com/scudsp/scuasm/dsp"
)

// TestEncodeMove checks the full memory-operand matrix against the
// documented field layouts: a 3-bit ordinal source field at the
// destination-specific offset, under the destination's fixed high bits.
func TestEncodeMove(t *testing.T) {
	operands := []dsp.MemOperand{
		dsp.M0, dsp.M1, dsp.M2, dsp.M3,
		dsp.MC0, dsp.MC1, dsp.MC2, dsp.MC3,
	}

	tests := []struct {
		dest   dsp.BusDest
		base   uint32
		offset uint
	}{
		{dsp.DestX, 1 << 25, 20},
		{dsp.DestP, 1<<24 | 1<<23, 20},
		{dsp.DestY, 1 << 19, 14},
	}
	for _, tc := range tests {
		for i, src := range operands {
			want := tc.base | uint32(i)<<tc.offset
			got := dsp.EncodeMove(src, tc.dest)
			if got != want {
				t.Errorf("EncodeMove(%d, %s) = %#010x, want %#010x", src, tc.dest, got, want)
			}
		}
	}
}

// The source field encoding is order-preserving over M0..MC3.
func TestMemOperandOrdinals(t *testing.T) {
	ordered := []dsp.MemOperand{
		dsp.M0, dsp.M1, dsp.M2, dsp.M3,
		dsp.MC0, dsp.MC1, dsp.MC2, dsp.MC3,
	}
	for i, op := range ordered {
		if uint32(op) != uint32(i) {
			t.Errorf("operand %d has encoding %d, want %d", i, op, i)
		}
	}
}

func TestEncodeMovePanicsOnA(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for DestA, which has no transfer encoding")
		}
	}()
	dsp.EncodeMove(dsp.M0, dsp.DestA)
}

func TestBits(t *testing.T) {
	if got := dsp.Bits(26, 27); got != 0x0C000000 {
		t.Errorf("Bits(26, 27) = %#010x, want 0x0c000000", got)
	}
	if got := dsp.Bits(); got != 0 {
		t.Errorf("Bits() = %#010x, want 0", got)
	}
}

func TestWordsToBytesBigEndian(t *testing.T) {
	got := dsp.WordsToBytes([]uint32{0x12345678, 0xF8000000})
	want := []byte{0x12, 0x34, 0x56, 0x78, 0xF8, 0x00, 0x00, 0x00}
	if !bytes.Equal(got, want) {
		t.Errorf("WordsToBytes = % X, want % X", got, want)
	}
}

func TestBytesToWordsPadding(t *testing.T) {
	got := dsp.BytesToWords([]byte{0x12, 0x34, 0x56, 0x78, 0xAB})
	want := []uint32{0x12345678, 0xAB000000}
	if len(got) != len(want) {
		t.Fatalf("got %d words, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("word %d = %#010x, want %#010x", i, got[i], want[i])
		}
	}
}

func TestCategoryString(t *testing.T) {
	tests := []struct {
		cat  dsp.Category
		want string
	}{
		{dsp.CatALU, "ALU"},
		{dsp.CatXBus, "X-Bus"},
		{dsp.CatYBus, "Y-Bus"},
		{dsp.CatD1Bus, "D1-Bus"},
		{dsp.CatFlow, "flow control"},
		{dsp.Category(99), "unknown"},
	}
	for _, tc := range tests {
		if got := tc.cat.String(); got != tc.want {
			t.Errorf("Category(%d).String() = %q, want %q", tc.cat, got, tc.want)
		}
	}
}
