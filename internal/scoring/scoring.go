// Package scoring computes letter-frequency statistics over the dictionary
// and the word- and guess-level scores the Search Driver uses to rank
// candidate guesses. Grounded on the original puzzle_generator.py's
// LetterFrequencyAnalyzer, adapted into precomputed arrays the way the
// dictionary package precomputes per-word letter counts.
package scoring

import (
	"github.com/wordleforge/server/internal/dictionary"
)

// Weights bundles the magic constants spec.md §9 calls out as
// undocumented but implementer-configurable: the frequency-boost
// coefficient and cap, and the composite guess-score weights.
type Weights struct {
	// FrequencyBoostCoefficient is β in score(w) = base(w)*(1+β*min(F/100,10)).
	FrequencyBoostCoefficient float64
	// FrequencyDivisor and FrequencyCap bound the boost term.
	FrequencyDivisor float64
	FrequencyCap     float64

	// Composite guess-score weights: 20*infoGain + 5*green + 2*yellow +
	// 100*score(g) - 20*overlap.
	InfoGainWeight     float64
	GreenWeight        float64
	YellowWeight       float64
	FrequencyBonusMul  float64
	DiversityPenalty   float64
	InfoGainThreshold  float64 // fraction of C_prev that must shrink to avoid the prune
}

// DefaultWeights returns spec.md's stated constants.
func DefaultWeights() Weights {
	return Weights{
		FrequencyBoostCoefficient: 0.5,
		FrequencyDivisor:          100,
		FrequencyCap:              10,
		InfoGainWeight:            20,
		GreenWeight:               5,
		YellowWeight:              2,
		FrequencyBonusMul:         100,
		DiversityPenalty:          20,
		InfoGainThreshold:         0.1,
	}
}

// LetterStats holds per-letter and per-letter-per-position frequencies
// derived once from a Dictionary, per spec.md §4.3.
type LetterStats struct {
	letter [26]float64
	pos    [26][dictionary.Length]float64
}

// Compute derives LetterStats from every word in dict.
func Compute(dict *dictionary.Dictionary) *LetterStats {
	ls := &LetterStats{}
	n := dict.Len()
	if n == 0 {
		return ls
	}
	for id := 0; id < n; id++ {
		w := dict.At(id)
		var seen [26]bool
		for pos, b := range w {
			l := b - 'a'
			ls.pos[l][pos]++
			if !seen[l] {
				ls.letter[l]++
				seen[l] = true
			}
		}
	}
	total := float64(n)
	for l := 0; l < 26; l++ {
		ls.letter[l] /= total
		for p := 0; p < dictionary.Length; p++ {
			ls.pos[l][p] /= total
		}
	}
	return ls
}

// LetterFreq returns f_letter[L]: the fraction of dictionary words
// containing L at least once.
func (ls *LetterStats) LetterFreq(l byte) float64 { return ls.letter[l-'a'] }

// PositionFreq returns f_pos[L][i]: the fraction of dictionary words with
// L at position i.
func (ls *LetterStats) PositionFreq(l byte, pos int) float64 { return ls.pos[l-'a'][pos] }

// Base computes base(w) per spec.md §4.3: position frequency weighted 2x,
// plus each unique letter's overall frequency counted once.
func (ls *LetterStats) Base(w dictionary.Word) float64 {
	var score float64
	var seen [26]bool
	for pos, b := range w {
		l := b - 'a'
		score += 2 * ls.pos[l][pos]
		if !seen[l] {
			score += ls.letter[l]
			seen[l] = true
		}
	}
	return score
}

// Score computes score(w) per spec.md §4.3: base(w) boosted by external
// word frequency, capped so extremely common words don't dominate.
func (ls *LetterStats) Score(w dictionary.Word, freq *dictionary.FrequencyTable, weights Weights) float64 {
	f := freq.Get(w)
	boost := f / weights.FrequencyDivisor
	if boost > weights.FrequencyCap {
		boost = weights.FrequencyCap
	}
	return ls.Base(w) * (1 + weights.FrequencyBoostCoefficient*boost)
}

// CompositeInput bundles the per-guess figures spec.md §4.3 combines into
// a single composite score.
type CompositeInput struct {
	InfoGain       int // |C_prev| - |C_new|
	GreenCount     int
	YellowCount    int
	GuessScore     float64 // score(g)
	OverlapLetters int     // |letters(g) ∩ used_letters|
}

// Composite computes the per-guess composite score from spec.md §4.3:
//
//	20*infoGain + 5*green + 2*yellow + 100*score(g) - 20*overlap
func Composite(in CompositeInput, w Weights) float64 {
	return w.InfoGainWeight*float64(in.InfoGain) +
		w.GreenWeight*float64(in.GreenCount) +
		w.YellowWeight*float64(in.YellowCount) +
		w.FrequencyBonusMul*in.GuessScore -
		w.DiversityPenalty*float64(in.OverlapLetters)
}
