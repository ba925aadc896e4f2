// Package formatter implements a single-pass pure function that
// rewrites raw source text into a canonical, indented form.
//
// It is a separate pass operating on raw command characters, not part
// of the compiler proper. It picks one unambiguous layout rule and
// applies it everywhere, rather than special-casing the first bracket
// encountered:
//
//   - consecutive identical repeatable-command characters (with any
//     attached decimal suffix) share one line at the current indent;
//   - a "[" always starts a fresh line at the current indent, then
//     increases the indent for what follows;
//   - a "]" always decreases the indent first, then starts a fresh
//     line at that (outer) indent;
//   - every non-command, non-digit byte (comments, whitespace,
//     anything else) is discarded;
//   - a digit run stays attached to whichever repeatable command
//     immediately preceded it, and is dropped if it appears with no
//     open run (e.g. immediately after a bracket).
package formatter

import "strings"

const repeatable = ">+-.,<"

func isRepeatable(b byte) bool {
	return strings.IndexByte(repeatable, b) >= 0
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// Format rewrites source into its canonical, indented form.
func Format(source string) string {
	var out strings.Builder

	tabs := 0
	var pending strings.Builder
	pendingCmd := byte(0)

	indent := func() {
		for i := 0; i < tabs; i++ {
			out.WriteByte('\t')
		}
	}

	flush := func() {
		if pendingCmd == 0 {
			return
		}
		indent()
		out.WriteString(pending.String())
		out.WriteByte('\n')
		pending.Reset()
		pendingCmd = 0
	}

	for i := 0; i < len(source); i++ {
		c := source[i]

		switch {
		case c == '[' || c == ']':
			flush()
			if c == ']' && tabs > 0 {
				tabs--
			}
			indent()
			out.WriteByte(c)
			out.WriteByte('\n')
			if c == '[' {
				tabs++
			}

		case isRepeatable(c):
			if pendingCmd != 0 && pendingCmd != c {
				flush()
			}
			pendingCmd = c
			pending.WriteByte(c)

		case isDigit(c):
			if pendingCmd != 0 {
				pending.WriteByte(c)
			}
			// A digit with no open run (e.g. right after a
			// bracket) has nothing to attach to and is dropped.

		default:
			// Comments, whitespace, and anything else: discarded.
		}
	}

	flush()

	return out.String()
}
