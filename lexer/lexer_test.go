package lexer

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/skx/bfc/token"
	"github.com/stretchr/testify/assert"
)

// lex is a small helper used throughout this file.
func lex(t *testing.T, input string) []token.Token {
	t.Helper()
	toks, _ := Tokenize(input)
	return toks
}

// TestEmptyInput checks that empty input yields the empty token
// sequence.
func TestEmptyInput(t *testing.T) {
	toks := lex(t, "")
	assert.Empty(t, toks)
}

// TestNumberAfterCommand checks "+60 .2" -> [increment(60), output(2)].
func TestNumberAfterCommand(t *testing.T) {
	got := lex(t, "+60 .2")
	want := []token.Token{
		token.New(token.Increment, 60),
		token.New(token.Output, 2),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("token mismatch (-want +got):\n%s", diff)
	}
}

// TestCombineRepeatedChars checks "++++<<>>--" -> [increment(4),
// pointer-left(2), pointer-right(2), decrement(2)].
func TestCombineRepeatedChars(t *testing.T) {
	got := lex(t, "++++<<>>--")
	want := []token.Token{
		token.New(token.Increment, 4),
		token.New(token.PointerLeft, 2),
		token.New(token.PointerRight, 2),
		token.New(token.Decrement, 2),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("token mismatch (-want +got):\n%s", diff)
	}
}

// TestLoopsAndComments checks "[abc+2]--" -> [loop-start,
// increment(2), loop-end, decrement(2)].
func TestLoopsAndComments(t *testing.T) {
	got := lex(t, "[abc+2]--")
	want := []token.Token{
		token.NewLoopStart(),
		token.New(token.Increment, 2),
		token.NewLoopEnd(),
		token.New(token.Decrement, 2),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("token mismatch (-want +got):\n%s", diff)
	}
}

// TestMixedProgram exercises pointer motion, loops, and I/O together.
func TestMixedProgram(t *testing.T) {
	got := lex(t, ">>+3[--.]<,1")
	want := []token.Token{
		token.New(token.PointerRight, 2),
		token.New(token.Increment, 3),
		token.NewLoopStart(),
		token.New(token.Decrement, 2),
		token.New(token.Output, 1),
		token.NewLoopEnd(),
		token.New(token.PointerLeft, 1),
		token.New(token.Input, 1),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("token mismatch (-want +got):\n%s", diff)
	}
}

// TestDigitsBeforeAnyCommandAreSkipped checks that leading digits,
// not adjacent to a preceding repeatable command, are discarded.
func TestDigitsBeforeAnyCommandAreSkipped(t *testing.T) {
	got := lex(t, "123+")
	want := []token.Token{token.New(token.Increment, 1)}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("token mismatch (-want +got):\n%s", diff)
	}
}

// TestAllCountsAreAtLeastOne checks that every emitted token's
// repeat count is >= 1.
func TestAllCountsAreAtLeastOne(t *testing.T) {
	toks := lex(t, "+++<<.,->-<[+]")
	for _, tok := range toks {
		if tok.IsLoop() {
			continue
		}
		assert.GreaterOrEqual(t, tok.Count, uint64(1))
	}
}

// TestNumericOverflowFallsBack checks that an unparsable numeric
// suffix is reported as a warning and the lexer falls back to the
// run-length count rather than aborting.
func TestNumericOverflowFallsBack(t *testing.T) {
	huge := "99999999999999999999999999999999999999"
	toks, warnings := Tokenize("++" + huge)
	assert.NotEmpty(t, warnings)
	want := []token.Token{token.New(token.Increment, 2)}
	if diff := cmp.Diff(want, toks); diff != "" {
		t.Errorf("token mismatch (-want +got):\n%s", diff)
	}
}

// TestRoundTrip checks that re-lexing the concatenation of the
// canonical string forms of the produced tokens yields the same token
// sequence.
func TestRoundTrip(t *testing.T) {
	sources := []string{
		"",
		"+60 .2",
		"++++<<>>--",
		"[abc+2]--",
		">>+3[--.]<,1",
	}

	for _, src := range sources {
		first := lex(t, src)

		var rebuilt string
		for _, tok := range first {
			rebuilt += tok.String()
		}

		second := lex(t, rebuilt)
		if diff := cmp.Diff(first, second); diff != "" {
			t.Errorf("round-trip mismatch for %q (-first +second):\n%s", src, diff)
		}
	}
}
