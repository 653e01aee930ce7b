// Package curator selects a working subset of the dictionary biased toward
// high-scoring and high-frequency words, with a randomized tail for
// diversity, per spec.md §4.4. Grounded on the original
// PuzzleGenerator._select_curated_words, adapted into a pure function over
// dictionary ids so the Search Driver can precompute it once per Generator
// instance.
package curator

import (
	"math/rand"
	"sort"

	"github.com/wordleforge/server/internal/dictionary"
	"github.com/wordleforge/server/internal/scoring"
)

// DefaultSize is the curator pool size when the caller does not override
// it; spec.md §4.4 gives 2,000 as the default within a 2,000-5,000 range.
const DefaultSize = 2000

// Curate returns up to size dictionary ids: the top 70% by score(w) in
// descending order (deterministic), plus a uniform-without-replacement
// random 30% of the remainder for diversity. The full dictionary is
// unaffected — CandidateSet is always defined over it — this is only the
// pool the Search Driver preferentially draws guesses from.
func Curate(dict *dictionary.Dictionary, ls *scoring.LetterStats, freq *dictionary.FrequencyTable, weights scoring.Weights, rng *rand.Rand, size int) []int {
	n := dict.Len()
	if size > n {
		size = n
	}
	if size <= 0 {
		return nil
	}

	ids := dict.All()
	sort.Slice(ids, func(i, j int) bool {
		si := ls.Score(dict.At(ids[i]), freq, weights)
		sj := ls.Score(dict.At(ids[j]), freq, weights)
		if si != sj {
			return si > sj
		}
		return ids[i] < ids[j] // deterministic tiebreak on load order
	})

	topCount := int(float64(size) * 0.7)
	if topCount > n {
		topCount = n
	}
	pool := make([]int, 0, size)
	chosen := make(map[int]bool, size)
	for _, id := range ids[:topCount] {
		pool = append(pool, id)
		chosen[id] = true
	}

	remaining := make([]int, 0, n-len(pool))
	for _, id := range ids {
		if !chosen[id] {
			remaining = append(remaining, id)
		}
	}
	tailCount := size - len(pool)
	if tailCount > len(remaining) {
		tailCount = len(remaining)
	}
	rng.Shuffle(len(remaining), func(i, j int) { remaining[i], remaining[j] = remaining[j], remaining[i] })
	pool = append(pool, remaining[:tailCount]...)

	return pool
}
