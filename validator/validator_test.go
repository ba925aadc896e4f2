package validator

import (
	"testing"

	"github.com/skx/bfc/token"
	"github.com/stretchr/testify/assert"
)

func toks(kinds ...token.Kind) []token.Token {
	out := make([]token.Token, len(kinds))
	for i, k := range kinds {
		if k == token.LoopStart || k == token.LoopEnd {
			out[i] = token.Token{Kind: k}
		} else {
			out[i] = token.New(k, 1)
		}
	}
	return out
}

// TestEmptyAccepted checks that empty input is accepted by the
// validator.
func TestEmptyAccepted(t *testing.T) {
	assert.NoError(t, Validate(nil))
}

// TestBalancedAccepted checks a handful of well-formed programs.
func TestBalancedAccepted(t *testing.T) {
	programs := [][]token.Token{
		toks(token.LoopStart, token.Increment, token.LoopEnd),
		toks(token.Increment, token.LoopStart, token.LoopStart, token.Decrement, token.LoopEnd, token.LoopEnd),
		toks(token.LoopStart, token.LoopEnd, token.LoopStart, token.LoopEnd),
	}
	for _, p := range programs {
		assert.NoError(t, Validate(p))
	}
}

// TestUnmatchedOpenAtIndexZero checks that a single unmatched '[' is
// rejected, naming index 0.
func TestUnmatchedOpenAtIndexZero(t *testing.T) {
	err := Validate(toks(token.LoopStart))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "0")
	assert.Contains(t, err.Error(), "[")
}

// TestUnmatchedCloseAtIndexZero checks that a single unmatched ']' is
// rejected, naming index 0.
func TestUnmatchedCloseAtIndexZero(t *testing.T) {
	err := Validate(toks(token.LoopEnd))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "0")
	assert.Contains(t, err.Error(), "]")
}

// TestNestedUnbalanced checks that "[[[]]" (one extra open) is
// rejected.
func TestNestedUnbalanced(t *testing.T) {
	err := Validate(toks(token.LoopStart, token.LoopStart, token.LoopStart, token.LoopEnd, token.LoopEnd))
	assert.Error(t, err)
}

// TestCloseBeforeOpen checks that a loop-end preceding any loop-start
// is rejected even when the overall counts balance.
func TestCloseBeforeOpen(t *testing.T) {
	err := Validate(toks(token.LoopEnd, token.LoopStart))
	assert.Error(t, err)
}
