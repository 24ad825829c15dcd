package dsp

import (
	"encoding/binary"
)

// WordsToBytes converts a slice of 32-bit instruction words to a big-endian
// byte image. The SCU DSP program RAM is written via the big-endian SH-2
// host, so the on-disk format is big-endian.
func WordsToBytes(words []uint32) []byte {
	out := make([]byte, len(words)*WordBytes)
	for i, w := range words {
		binary.BigEndian.PutUint32(out[i*WordBytes:], w)
	}
	return out
}

// BytesToWords interprets bytes as big-endian 32-bit words.
// If the length is not a multiple of four, the final word is zero-padded.
func BytesToWords(b []byte) []uint32 {
	for len(b)%WordBytes != 0 {
		b = append(b, 0)
	}
	out := make([]uint32, len(b)/WordBytes)
	for i := range out {
		out[i] = binary.BigEndian.Uint32(b[i*WordBytes:])
	}
	return out
}
