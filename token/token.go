// Package token contains the closed set of tokens that the lexer
// produces when scanning a tape-machine source program.
//
// There are eight token kinds.  Six of them carry a repeat count -
// the number of times their effect should be applied - and two of
// them (the loop markers) carry no payload at all.
package token

import "fmt"

// Kind identifies which of the eight token variants a Token is.
type Kind byte

const (
	// PointerRight advances the data pointer by Count bytes.
	PointerRight Kind = '>'

	// PointerLeft retreats the data pointer by Count bytes.
	PointerLeft Kind = '<'

	// Increment adds Count to the current cell, modulo 256.
	Increment Kind = '+'

	// Decrement subtracts Count from the current cell, modulo 256.
	Decrement Kind = '-'

	// Output writes the current cell to standard output Count times.
	Output Kind = '.'

	// Input reads Count bytes from standard input, storing the last
	// one read into the current cell.
	Input Kind = ','

	// LoopStart marks the entry of a "while current cell is nonzero"
	// loop.  It carries no count.
	LoopStart Kind = '['

	// LoopEnd marks the exit of a loop opened by a matching
	// LoopStart.  It carries no count.
	LoopEnd Kind = ']'
)

// String renders a Kind as the single source character it represents.
func (k Kind) String() string {
	return string(rune(k))
}

// hasCount reports whether tokens of this kind carry a repeat count.
func (k Kind) hasCount() bool {
	switch k {
	case LoopStart, LoopEnd:
		return false
	default:
		return true
	}
}

// Token is a single, immutable instruction produced by the lexer.
//
// Count is meaningless (and always zero) for LoopStart and LoopEnd;
// for the other six kinds it is the number of times the token's
// effect should be applied, and is always >= 1.
type Token struct {
	Kind  Kind
	Count uint64
}

// New builds a repeatable token of the given kind and count.  It
// panics if asked to build a LoopStart/LoopEnd with New - those have
// their own constructors because they carry no count.
func New(k Kind, count uint64) Token {
	if !k.hasCount() {
		panic(fmt.Sprintf("token: kind %q does not take a repeat count", k))
	}
	if count < 1 {
		panic(fmt.Sprintf("token: kind %q requires a repeat count >= 1, got %d", k, count))
	}
	return Token{Kind: k, Count: count}
}

// NewLoopStart builds a nullary loop-start token.
func NewLoopStart() Token {
	return Token{Kind: LoopStart}
}

// NewLoopEnd builds a nullary loop-end token.
func NewLoopEnd() Token {
	return Token{Kind: LoopEnd}
}

// String renders the token back into its canonical source form: the
// command character, optionally followed by its repeat count when
// that count came from more than a single bare character (i.e.
// always, since the lexer never distinguishes the two - the
// canonical form always includes the count for repeatable kinds).
//
// Re-lexing the concatenation of String() over a token sequence
// yields the same token sequence; see the lexer's round-trip tests.
func (t Token) String() string {
	if !t.Kind.hasCount() {
		return t.Kind.String()
	}
	return fmt.Sprintf("%s%d", t.Kind, t.Count)
}

// IsLoop reports whether the token is one of the two nullary loop
// markers.
func (t Token) IsLoop() bool {
	return t.Kind == LoopStart || t.Kind == LoopEnd
}
