// Package compiler is the driver that glues the lexer, the
// validator, and an Emitter together into a single compilation.
//
// The three steps mirror a conventional three-stage toy compiler: (1)
// tokenize the source, (2) check it is well-formed, (3) walk the
// tokens, threading a loop-id counter and a stack of open-loop ids,
// dispatching each token to the Emitter.
package compiler

import (
	"fmt"

	"github.com/skx/bfc/emitter"
	"github.com/skx/bfc/lexer"
	"github.com/skx/bfc/stack"
	"github.com/skx/bfc/target"
	"github.com/skx/bfc/token"
	"github.com/skx/bfc/validator"
)

// defaultTapeSize is used when a Compiler is constructed without an
// explicit tape size.
const defaultTapeSize = 30000

// Compiler holds our object-state.
type Compiler struct {
	// source holds the program text we're compiling.
	source string

	// target names the ABI/OS this compilation emits for.
	target target.Target

	// tapeSize is the number of bytes reserved for the tape.
	tapeSize uint64

	// pretty, when set, asks the Emitter to decorate its output with
	// harmless comments.
	pretty bool

	// tokens holds the program, broken down into a run-length-encoded
	// token sequence.  Populated by Tokenize.
	tokens []token.Token

	// warnings accumulates non-fatal lexer diagnostics (numeric
	// overflow fallbacks).
	warnings []string
}

// New creates a new compiler for the given source and target, with
// the default tape size and no pretty-printing.
func New(source string, tgt target.Target) *Compiler {
	return &Compiler{
		source:   source,
		target:   tgt,
		tapeSize: defaultTapeSize,
	}
}

// SetTapeSize overrides the default tape size.
func (c *Compiler) SetTapeSize(n uint64) {
	c.tapeSize = n
}

// SetPretty toggles cosmetic decoration of the emitted assembly.
func (c *Compiler) SetPretty(val bool) {
	c.pretty = val
}

// Warnings returns the non-fatal diagnostics collected while
// tokenizing, if any.
func (c *Compiler) Warnings() []string {
	return c.warnings
}

// Tokenize lexes the source into c.tokens.  It never fails: the
// lexer itself has no fatal error path.
func (c *Compiler) Tokenize() {
	tokens, warnings := lexer.Tokenize(c.source)
	c.tokens = tokens
	c.warnings = warnings
}

// Compile runs the full pipeline - tokenize, validate, generate - and
// returns the assembly text for the program.
func (c *Compiler) Compile() (string, error) {
	c.Tokenize()

	if err := validator.Validate(c.tokens); err != nil {
		return "", fmt.Errorf("syntax error: %w", err)
	}

	return c.generate()
}

// generate walks the token sequence, assigning loop ids and
// dispatching each token to a freshly constructed Emitter.
func (c *Compiler) generate() (string, error) {
	e, err := emitter.New(c.target, c.tapeSize, c.pretty)
	if err != nil {
		return "", err
	}

	e.Header()

	loopIDs := stack.New()
	nextID := 0

	for _, tok := range c.tokens {
		switch tok.Kind {
		case token.PointerRight:
			e.IncPointer(tok.Count)
		case token.PointerLeft:
			e.DecPointer(tok.Count)
		case token.Increment:
			e.IncValue(tok.Count)
		case token.Decrement:
			e.DecValue(tok.Count)
		case token.Output:
			e.OutputValue(tok.Count)
		case token.Input:
			e.InputValue(tok.Count)

		case token.LoopStart:
			id := nextID
			nextID++
			loopIDs.Push(id)
			e.LoopStart(id)

		case token.LoopEnd:
			// The validator has already guaranteed this stack
			// is non-empty for accepted input; stay resilient
			// anyway.
			if id, err := loopIDs.Pop(); err == nil {
				e.LoopEnd(id)
			}
		}
	}

	e.Footer()

	return e.Build(), nil
}
