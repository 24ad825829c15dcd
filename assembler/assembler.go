// Package assembler translates SCU DSP mnemonic source text into packed
// 32-bit machine words. Instructions placed on one source line form a
// bundle that issues together; the assembler validates each bundle's
// issue-slot usage before committing it.
package assembler

import (
	"fmt"
	"strings"

	"github.com/scudsp/scuasm/lexer"
)

// Options controls optional assembler behaviour.
type Options struct {
	// Relaxed loosens parsing strictness for documents written for the
	// original vendor assembler. It is threaded to the grammar productions;
	// the concrete rule relaxations are still being collected from legacy
	// sources.
	Relaxed bool
	// Debug enables internal parser tracing through the log package.
	Debug bool
}

// LineError attributes an assembly error to a source line.
type LineError struct {
	// Line is 0-based; rendered messages use 1-based numbering.
	Line int
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line+1, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

// Assemble runs a full assembly pass over src and returns the completed
// Program. On failure the returned error is a *LineError wrapping the
// cause; the partial Program is returned alongside for diagnostics and must
// not be treated as a valid result.
func Assemble(src string, opts Options) (*Program, error) {
	// Extra newline in case the document doesn't have its own.
	if !strings.HasSuffix(src, "\n") {
		src += "\n"
	}

	cur := lexer.NewCursor(lexer.New(src))
	prog := NewProgram()
	if err := NewParser(cur, prog, opts).Document(); err != nil {
		return prog, &LineError{Line: prog.Line, Err: err}
	}
	return prog, nil
}
