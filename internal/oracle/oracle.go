// Package oracle computes Wordle-style feedback: the per-position
// green/yellow/gray coloring of a guess against an answer.
package oracle

import "github.com/wordleforge/server/internal/dictionary"

// Color is a single tile's evaluation result.
type Color uint8

const (
	Gray Color = iota
	Yellow
	Green
)

// String serializes Color the way spec.md §6 requires at the wire
// boundary: lowercase "green" | "yellow" | "gray".
func (c Color) String() string {
	switch c {
	case Green:
		return "green"
	case Yellow:
		return "yellow"
	default:
		return "gray"
	}
}

// Pattern is the five-position coloring produced by Feedback.
type Pattern [dictionary.Length]Color

// Pack encodes p as a base-3 integer in [0, 3^5), suitable as a cache key
// per spec.md §9's suggestion (3^5 = 243 possible patterns).
func (p Pattern) Pack() int {
	n := 0
	for _, c := range p {
		n = n*3 + int(c)
	}
	return n
}

// Strings returns p as five lowercase color strings, position order.
func (p Pattern) Strings() [dictionary.Length]string {
	var out [dictionary.Length]string
	for i, c := range p {
		out[i] = c.String()
	}
	return out
}

// AllGreen reports whether every position is Green — the win condition.
func (p Pattern) AllGreen() bool {
	for _, c := range p {
		if c != Green {
			return false
		}
	}
	return true
}

// Feedback computes the standard two-pass Wordle coloring of guess against
// answer, per spec.md §4.1. It is total, deterministic, and pure: greens
// are resolved first and claim their letter from the answer's tally,
// then yellows claim from what tally remains, so a guess with more copies
// of a letter than the answer contains grays out the excess copies.
func Feedback(guess, answer dictionary.Word) Pattern {
	var pattern Pattern
	tally := answer.Counts()

	for i := 0; i < dictionary.Length; i++ {
		if guess[i] == answer[i] {
			pattern[i] = Green
			tally[guess[i]-'a']--
		}
	}
	for i := 0; i < dictionary.Length; i++ {
		if pattern[i] == Green {
			continue
		}
		l := guess[i] - 'a'
		if tally[l] > 0 {
			pattern[i] = Yellow
			tally[l]--
		} else {
			pattern[i] = Gray
		}
	}
	return pattern
}
