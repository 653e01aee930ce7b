// Package generator implements the Search Driver from spec.md §4.5: a
// bounded, randomized greedy search over the dictionary that assembles a
// four-guess puzzle narrowing the candidate set as far as it can within a
// fixed attempt budget. Grounded on original_source/puzzle_generator.py's
// PuzzleGenerator.generate_puzzle, translated into an explicit state
// machine over dictionary ids the way the rest of this module avoids
// allocating dictionary.Word values in hot loops.
package generator

import (
	"math/rand"
	"sort"

	"github.com/wordleforge/server/internal/constraint"
	"github.com/wordleforge/server/internal/curator"
	"github.com/wordleforge/server/internal/dictionary"
	"github.com/wordleforge/server/internal/oracle"
	"github.com/wordleforge/server/internal/puzzleerr"
	"github.com/wordleforge/server/internal/scoring"
)

// NumGuesses is the fixed puzzle length spec.md §3 requires.
const NumGuesses = 4

// Status reports whether the returned Puzzle achieved a unique answer.
type Status int

const (
	// StatusOptimal means the four guesses narrowed CandidateSet to
	// exactly {answer}.
	StatusOptimal Status = iota
	// StatusAmbiguous means the search exhausted its attempt budget
	// without reaching uniqueness; the best attempt found is returned.
	StatusAmbiguous
)

func (s Status) String() string {
	if s == StatusOptimal {
		return "optimal"
	}
	return "ambiguous"
}

// Puzzle is a completed (or best-effort) generation result.
type Puzzle struct {
	Answer              dictionary.Word
	Guesses             []constraint.GuessRecord
	RemainingCandidates int
	Status              Status
	AttemptsUsed        int
}

// Config bundles the Search Driver's tunables. Every field has a
// spec.md-derived default via DefaultConfig.
type Config struct {
	MaxAttempts int
	CuratorSize int
	Weights     scoring.Weights

	// AnswerPercentile is the 20th-percentile-by-count floor used when
	// sampling an answer no caller specified.
	AnswerPercentile float64
	// AnswerFreqFloor is used verbatim as theta when the frequency table
	// has no positive entries to derive a percentile from.
	AnswerFreqFloor float64

	// EarlyNarrowFloor triggers pool restriction once |C_cur| drops
	// below it, per spec.md §4.5 step 3's early-narrowing note.
	EarlyNarrowFloor int
	// EarlyNarrowFillers caps how many high-score curator entries are
	// added back into a narrowed pool so it never empties out.
	EarlyNarrowFillers int

	// CuratorPoolWindow is how many of the curator's top entries are
	// used as the deterministic candidate pool for the first half of
	// attempts.
	CuratorPoolWindow int
	// RandomPoolSize is how many ids are freshly sampled from the full
	// dictionary as the candidate pool for the remaining attempts.
	RandomPoolSize int
}

// DefaultConfig returns spec.md's stated constants.
func DefaultConfig() Config {
	return Config{
		MaxAttempts:        500,
		CuratorSize:        curator.DefaultSize,
		Weights:            scoring.DefaultWeights(),
		AnswerPercentile:   0.20,
		AnswerFreqFloor:    0.1,
		EarlyNarrowFloor:   10,
		EarlyNarrowFillers: 50,
		CuratorPoolWindow:  300,
		RandomPoolSize:     400,
	}
}

// Generator owns the precomputed, dictionary-derived state that is
// expensive to build (letter statistics, the curator pool) but cheap to
// reuse across many Generate calls. It is safe for concurrent use: each
// Generate call takes its own RNG and memoization cache, per spec.md §5.
type Generator struct {
	dict        *dictionary.Dictionary
	freq        *dictionary.FrequencyTable
	stats       *scoring.LetterStats
	curatorPool []int
	cfg         Config
}

// New builds a Generator. constructionSeed seeds the one-time curator
// selection; pass 0 to seed from a fixed but arbitrary value — callers
// wanting cryptographic unpredictability for the curator pool itself
// should derive constructionSeed from crypto/rand once at process start.
func New(dict *dictionary.Dictionary, freq *dictionary.FrequencyTable, cfg Config, constructionSeed int64) (*Generator, error) {
	if dict == nil || dict.Len() == 0 {
		return nil, puzzleerr.Precondition("dictionary must be non-empty", nil)
	}
	stats := scoring.Compute(dict)
	rng := rand.New(rand.NewSource(constructionSeed))
	pool := curator.Curate(dict, stats, freq, cfg.Weights, rng, cfg.CuratorSize)
	return &Generator{dict: dict, freq: freq, stats: stats, curatorPool: pool, cfg: cfg}, nil
}

// Request configures a single Generate call.
type Request struct {
	// Answer, if non-nil, pins the puzzle's answer. It must be a member
	// of the Generator's dictionary.
	Answer *dictionary.Word
	// Seed drives every random choice made during this call: answer
	// sampling (when Answer is nil) and per-attempt candidate pool
	// sampling. Two calls with the same Seed and the same Answer (or
	// both nil) against the same Generator produce byte-identical
	// Puzzles, per spec.md §8 S6.
	Seed int64
	// MaxAttempts overrides the Generator's configured attempt budget
	// when positive.
	MaxAttempts int
}

type cacheKey [NumGuesses]int

func makeCacheKey(ids []int) cacheKey {
	var k cacheKey
	for i := range k {
		k[i] = -1
	}
	tmp := append([]int(nil), ids...)
	sort.Ints(tmp)
	copy(k[:], tmp)
	return k
}

// Generate runs the bounded randomized greedy search described in
// spec.md §4.5 and returns the resulting Puzzle.
func (g *Generator) Generate(req Request) (*Puzzle, error) {
	rng := rand.New(rand.NewSource(req.Seed))

	answerID, err := g.resolveAnswer(req, rng)
	if err != nil {
		return nil, err
	}
	answer := g.dict.At(answerID)

	maxAttempts := g.cfg.MaxAttempts
	if req.MaxAttempts > 0 {
		maxAttempts = req.MaxAttempts
	}

	cache := make(map[cacheKey][]int)

	var bestPuzzle *Puzzle
	var bestAttemptRemaining int
	var lastPartial *Puzzle

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		guesses := make([]constraint.GuessRecord, 0, NumGuesses)
		chosenIDs := make([]int, 0, NumGuesses)
		usedLetters := make(map[byte]bool)
		cCur := g.dict.All()

		pool := g.attemptPool(attempt, maxAttempts, rng)

		for guessNum := 1; guessNum <= NumGuesses; guessNum++ {
			effectivePool := pool
			if len(cCur) < g.cfg.EarlyNarrowFloor {
				effectivePool = g.narrowPool(pool, cCur, answerID)
			}

			var selBestID = -1
			var selBestScore float64
			var selBestRemaining []int
			var selBestPattern oracle.Pattern
			haveSel := false

			for _, cand := range effectivePool {
				if cand == answerID {
					continue
				}
				if containsInt(chosenIDs, cand) {
					continue
				}

				candWord := g.dict.At(cand)
				overlap := overlapCount(candWord, usedLetters)
				if overlap > 3 && guessNum < 2 {
					continue
				}

				pattern := oracle.Feedback(candWord, answer)
				key := makeCacheKey(append(append([]int(nil), chosenIDs...), cand))
				cNew, ok := cache[key]
				if !ok {
					cNew = constraint.Filter(g.dict, cCur, []constraint.GuessRecord{{Word: candWord, Pattern: pattern}})
					cache[key] = cNew
				}
				if len(cNew) == 0 {
					continue
				}

				infoGain := len(cCur) - len(cNew)
				// Once cCur is down to the answer alone no guess can shrink
				// it further; the prune is skipped so the attempt still
				// fills all NumGuesses slots.
				if guessNum > 1 && len(cCur) > 1 {
					shrink := float64(infoGain) / float64(len(cCur))
					if shrink < g.cfg.Weights.InfoGainThreshold {
						continue
					}
				}

				greens, yellows := countColors(pattern)
				composite := scoring.Composite(scoring.CompositeInput{
					InfoGain:       infoGain,
					GreenCount:     greens,
					YellowCount:    yellows,
					GuessScore:     g.stats.Score(candWord, g.freq, g.cfg.Weights),
					OverlapLetters: overlap,
				}, g.cfg.Weights)

				if !haveSel || composite > selBestScore ||
					(composite == selBestScore && len(cNew) < len(selBestRemaining)) {
					haveSel = true
					selBestID = cand
					selBestScore = composite
					selBestRemaining = cNew
					selBestPattern = pattern
				}
			}

			if !haveSel {
				break
			}

			guesses = append(guesses, constraint.GuessRecord{Word: g.dict.At(selBestID), Pattern: selBestPattern})
			chosenIDs = append(chosenIDs, selBestID)
			for l := range letterSet(g.dict.At(selBestID)) {
				usedLetters[l] = true
			}
			cCur = selBestRemaining
		}

		if len(guesses) < NumGuesses {
			lastPartial = &Puzzle{Answer: answer, Guesses: guesses, RemainingCandidates: len(cCur), Status: StatusAmbiguous, AttemptsUsed: attempt}
			continue
		}

		if err := verifyAnswerSurvives(cCur, answerID); err != nil {
			return nil, err
		}

		if len(cCur) == 1 {
			return &Puzzle{Answer: answer, Guesses: guesses, RemainingCandidates: 1, Status: StatusOptimal, AttemptsUsed: attempt}, nil
		}

		if bestPuzzle == nil || len(cCur) < bestAttemptRemaining {
			bestPuzzle = &Puzzle{Answer: answer, Guesses: guesses, RemainingCandidates: len(cCur), Status: StatusAmbiguous, AttemptsUsed: attempt}
			bestAttemptRemaining = len(cCur)
		}
	}

	if bestPuzzle != nil {
		return bestPuzzle, nil
	}
	if lastPartial != nil {
		return lastPartial, nil
	}
	return nil, puzzleerr.InternalInconsistency("no attempt produced any guesses", nil)
}

// resolveAnswer validates a caller-supplied answer, or samples one per
// spec.md §4.5's weighted-percentile scheme, drawing from the single RNG
// handle Generate owns for the whole call.
func (g *Generator) resolveAnswer(req Request, rng *rand.Rand) (int, error) {
	if req.Answer != nil {
		id, ok := g.dict.IndexOf(*req.Answer)
		if !ok {
			return 0, puzzleerr.Precondition("answer is not a member of the dictionary", nil)
		}
		return id, nil
	}

	var positive []float64
	for _, id := range g.dict.All() {
		f := g.freq.Get(g.dict.At(id))
		if f > 0 {
			positive = append(positive, f)
		}
	}

	theta := g.cfg.AnswerFreqFloor
	if len(positive) > 0 {
		sort.Float64s(positive)
		idx := int(g.cfg.AnswerPercentile * float64(len(positive)-1))
		theta = positive[idx]
	}

	var pool []int
	for _, id := range g.dict.All() {
		if g.freq.Get(g.dict.At(id)) >= theta {
			pool = append(pool, id)
		}
	}
	if len(pool) == 0 {
		pool = g.dict.All()
	}

	total := 0.0
	weights := make([]float64, len(pool))
	for i, id := range pool {
		w := g.freq.Get(g.dict.At(id)) + 1
		weights[i] = w
		total += w
	}
	r := rng.Float64() * total
	for i, w := range weights {
		r -= w
		if r <= 0 {
			return pool[i], nil
		}
	}
	return pool[len(pool)-1], nil
}

// attemptPool picks the per-attempt candidate pool per spec.md §4.5 step
// 2: the curator's deterministic top window for the first half of the
// attempt budget, a fresh random sample from the full dictionary after.
func (g *Generator) attemptPool(attempt, maxAttempts int, rng *rand.Rand) []int {
	if attempt < maxAttempts/2 {
		n := g.cfg.CuratorPoolWindow
		if n > len(g.curatorPool) {
			n = len(g.curatorPool)
		}
		return g.curatorPool[:n]
	}

	all := g.dict.All()
	n := g.cfg.RandomPoolSize
	if n > len(all) {
		n = len(all)
	}
	shuffled := append([]int(nil), all...)
	rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
	return shuffled[:n]
}

// narrowPool restricts pool to its intersection with cCur, topped up with
// high-score curator fillers so a tight candidate set never starves the
// selection loop of options, per spec.md §4.5 step 3.
func (g *Generator) narrowPool(pool, cCur []int, answerID int) []int {
	inC := make(map[int]bool, len(cCur))
	for _, id := range cCur {
		inC[id] = true
	}

	seen := make(map[int]bool, len(pool))
	out := make([]int, 0, len(pool))
	for _, id := range pool {
		if inC[id] && id != answerID && !seen[id] {
			out = append(out, id)
			seen[id] = true
		}
	}

	fillers := 0
	for _, id := range g.curatorPool {
		if fillers >= g.cfg.EarlyNarrowFillers {
			break
		}
		if id == answerID || seen[id] {
			continue
		}
		out = append(out, id)
		seen[id] = true
		fillers++
	}
	return out
}

func verifyAnswerSurvives(cCur []int, answerID int) error {
	for _, id := range cCur {
		if id == answerID {
			return nil
		}
	}
	return puzzleerr.InternalInconsistency("answer is not present in its own candidate set", nil)
}

func containsInt(s []int, v int) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}

func overlapCount(w dictionary.Word, used map[byte]bool) int {
	n := 0
	for l := range letterSet(w) {
		if used[l] {
			n++
		}
	}
	return n
}

func letterSet(w dictionary.Word) map[byte]bool {
	s := make(map[byte]bool, dictionary.Length)
	for _, b := range w {
		s[b] = true
	}
	return s
}

func countColors(p oracle.Pattern) (greens, yellows int) {
	for _, c := range p {
		switch c {
		case oracle.Green:
			greens++
		case oracle.Yellow:
			yellows++
		}
	}
	return
}
