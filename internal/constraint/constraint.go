// Package constraint filters a candidate set of words down to those
// consistent with an accumulated list of guess/pattern pairs.
package constraint

import (
	"github.com/wordleforge/server/internal/dictionary"
	"github.com/wordleforge/server/internal/oracle"
)

// GuessRecord pairs a guessed word with the pattern it produced against
// some (possibly unknown to the caller) answer.
type GuessRecord struct {
	Word    dictionary.Word
	Pattern oracle.Pattern
}

// requirement, derived once per GuessRecord, implements the decomposed
// constraint check from spec.md §4.2: req(L) is the number of
// green-or-yellow occurrences of letter L in the record, and capped(L)
// records whether some position graying out L proves the answer contains
// exactly req(L) copies (as opposed to zero).
type requirement struct {
	req    [26]int
	capped [26]bool
}

func deriveRequirement(rec GuessRecord) requirement {
	var r requirement
	for i := 0; i < dictionary.Length; i++ {
		if rec.Pattern[i] == oracle.Green || rec.Pattern[i] == oracle.Yellow {
			r.req[rec.Word[i]-'a']++
		}
	}
	for i := 0; i < dictionary.Length; i++ {
		if rec.Pattern[i] == oracle.Gray {
			l := rec.Word[i] - 'a'
			if r.req[l] > 0 {
				r.capped[l] = true
			}
		}
	}
	return r
}

// matches applies a single derived requirement to a word's letters and
// precomputed multiset. Green checks run first — cheapest, per spec.md
// §4.2's performance notes — then yellow, then gray.
func matches(w dictionary.Word, counts [26]uint8, rec GuessRecord, r requirement) bool {
	for i := 0; i < dictionary.Length; i++ {
		if rec.Pattern[i] == oracle.Green && w[i] != rec.Word[i] {
			return false
		}
	}
	for i := 0; i < dictionary.Length; i++ {
		if rec.Pattern[i] != oracle.Yellow {
			continue
		}
		l := rec.Word[i] - 'a'
		if w[i] == rec.Word[i] || int(counts[l]) < r.req[l] {
			return false
		}
	}
	for i := 0; i < dictionary.Length; i++ {
		if rec.Pattern[i] != oracle.Gray {
			continue
		}
		l := rec.Word[i] - 'a'
		if w[i] == rec.Word[i] {
			return false
		}
		if r.capped[l] {
			if int(counts[l]) != r.req[l] {
				return false
			}
		} else if counts[l] != 0 {
			return false
		}
	}
	return true
}

// Satisfies reports whether w is consistent with rec. This is defined to
// agree with oracle.Feedback(rec.Word, w) == rec.Pattern for every w — that
// equivalence is a mandatory invariant, exercised directly in the package
// tests.
func Satisfies(w dictionary.Word, rec GuessRecord) bool {
	return matches(w, w.Counts(), rec, deriveRequirement(rec))
}

// SatisfiesAll reports whether w is consistent with every record in recs.
func SatisfiesAll(w dictionary.Word, recs []GuessRecord) bool {
	counts := w.Counts()
	for _, rec := range recs {
		if !matches(w, counts, rec, deriveRequirement(rec)) {
			return false
		}
	}
	return true
}

// Filter returns the subset of candidates (dictionary ids) consistent with
// every record in recs, per spec.md §4.2. It accepts an existing candidate
// set and threads it through, supporting the Search Driver's incremental
// narrowing.
func Filter(dict *dictionary.Dictionary, candidates []int, recs []GuessRecord) []int {
	if len(recs) == 0 {
		out := make([]int, len(candidates))
		copy(out, candidates)
		return out
	}
	reqs := make([]requirement, len(recs))
	for i, rec := range recs {
		reqs[i] = deriveRequirement(rec)
	}

	out := make([]int, 0, len(candidates))
	for _, id := range candidates {
		w := dict.At(id)
		counts := dict.CountsAt(id)
		ok := true
		for i, rec := range recs {
			if !matches(w, counts, rec, reqs[i]) {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, id)
		}
	}
	return out
}
