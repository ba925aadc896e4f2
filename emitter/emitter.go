// Package emitter builds the NASM-compatible x86-64 assembly text for
// a compiled program.
//
// Emitter is a single capability set - one method per token kind,
// plus header/footer/build - shared by two concrete implementations,
// one per target ABI, implemented as per-operation methods that each
// append a chunk of assembly text, generalized from a single
// hard-coded target into an interface with one implementation per
// ABI.
package emitter

import (
	"fmt"
	"strings"

	"github.com/skx/bfc/target"
)

// Emitter accumulates the assembly text for one compilation.  Every
// method other than Build appends to the internal buffer; Build
// returns the accumulated text.
type Emitter interface {
	// Header writes the prologue: section declarations, the global
	// entry symbol, the zero-initialized tape buffer, and the
	// instruction that points the data-pointer register at it.
	Header()

	// IncPointer advances the data pointer by n bytes.
	IncPointer(n uint64)

	// DecPointer retreats the data pointer by n bytes.
	DecPointer(n uint64)

	// IncValue adds n to the current cell, modulo 256.
	IncValue(n uint64)

	// DecValue subtracts n from the current cell, modulo 256.
	DecValue(n uint64)

	// OutputValue writes the current cell to standard output n
	// times.
	OutputValue(n uint64)

	// InputValue reads n bytes from standard input, storing the
	// last one read into the current cell.
	InputValue(n uint64)

	// LoopStart emits the label and zero-test that open loop id.
	LoopStart(id int)

	// LoopEnd emits the back-branch and label that close loop id.
	LoopEnd(id int)

	// Footer writes the epilogue: a call to the platform's
	// process-exit primitive with exit code zero.
	Footer()

	// Build returns the accumulated assembly text.
	Build() string
}

// New constructs the Emitter for the given target.  An unrecognized
// target is a fatal error surfaced to the caller.
func New(t target.Target, tapeSize uint64, pretty bool) (Emitter, error) {
	switch t {
	case target.Unix:
		return newUnix(tapeSize, pretty), nil
	case target.Win64:
		return newWin64(tapeSize, pretty), nil
	default:
		return nil, fmt.Errorf("emitter: unsupported target %q", t)
	}
}

// base holds the state common to every target: the grows-only text
// buffer and the immutable construction-time settings (tape size,
// prettification flag). It is embedded by each concrete emitter
// rather than duplicated.
type base struct {
	tapeSize uint64
	pretty   bool
	buf      strings.Builder
}

// write appends raw text to the buffer.
func (b *base) write(s string) {
	b.buf.WriteString(s)
}

// writef appends formatted text to the buffer.
func (b *base) writef(format string, args ...interface{}) {
	fmt.Fprintf(&b.buf, format, args...)
}

// comment appends a single assembly comment line, but only when the
// pretty flag is set - cosmetic decoration never changes behavior.
func (b *base) comment(format string, args ...interface{}) {
	if !b.pretty {
		return
	}
	b.writef("        ; "+format+"\n", args...)
}

// note appends a single assembly comment line unconditionally,
// regardless of the pretty flag.  It exists so the syscall-naming
// substrings (sys_write, sys_read, sys_exit) always appear next to the
// instructions that implement them, independent of cosmetic
// decoration.
func (b *base) note(format string, args ...interface{}) {
	b.writef("    ; "+format+"\n", args...)
}

// Build returns the accumulated assembly text.
func (b *base) Build() string {
	return b.buf.String()
}
