// Package validator enforces the one non-local invariant in the
// language: that loop-start and loop-end tokens are globally
// balanced.
//
// Validate is a pure function over a token sequence: a single forward
// pass with a stack of indices of unmatched loop-start tokens, the
// same bracket-counting logic an expression compiler uses to
// sanity-check its token stream before building an internal form,
// generalized from ad-hoc checks into a dedicated pass.
package validator

import (
	"fmt"

	"github.com/skx/bfc/stack"
	"github.com/skx/bfc/token"
)

// Validate reports whether tokens is bracket-balanced.  On failure it
// returns a diagnostic naming the offending token's index and whether
// the mismatch was an unmatched open or an unmatched close.
func Validate(tokens []token.Token) error {
	opens := stack.New()

	for i, tok := range tokens {
		switch tok.Kind {
		case token.LoopStart:
			opens.Push(i)

		case token.LoopEnd:
			if opens.Empty() {
				return fmt.Errorf("unmatched loop-end ']' at token %d", i)
			}
			// Pairing itself is discharged here; the id that
			// will label this pair is assigned later by the
			// compiler driver, which re-derives it from source
			// order rather than trusting anything computed here.
			if _, err := opens.Pop(); err != nil {
				return fmt.Errorf("unmatched loop-end ']' at token %d", i)
			}
		}
	}

	if !opens.Empty() {
		idx, err := opens.Peek()
		if err != nil {
			return fmt.Errorf("unmatched loop-start '['")
		}
		return fmt.Errorf("unmatched loop-start '[' at token %d", idx)
	}

	return nil
}
