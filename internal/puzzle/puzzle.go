// Package puzzle is the façade spec.md §4.6 describes: it composes
// dictionary, oracle, constraint, scoring, curator and generator into the
// three operations callers actually need — generate a puzzle, score a
// guess against a known answer, and filter a candidate set by a guess
// history — without exposing the internals of any one component.
package puzzle

import (
	"github.com/wordleforge/server/internal/constraint"
	"github.com/wordleforge/server/internal/dictionary"
	"github.com/wordleforge/server/internal/generator"
	"github.com/wordleforge/server/internal/oracle"
	"github.com/wordleforge/server/internal/puzzleerr"
)

// Status and Puzzle are re-exported from generator: the façade is the
// only supported way to obtain one, but the type itself belongs to the
// component that produces it.
type Status = generator.Status
type Puzzle = generator.Puzzle

const (
	StatusOptimal   = generator.StatusOptimal
	StatusAmbiguous = generator.StatusAmbiguous
)

// Error and its Kinds are re-exported from puzzleerr so callers only ever
// import this package.
type Error = puzzleerr.Error
type Kind = puzzleerr.Kind

const (
	KindPrecondition          = puzzleerr.KindPrecondition
	KindInternalInconsistency = puzzleerr.KindInternalInconsistency
)

// Service wraps a loaded dictionary and frequency table with a
// precomputed Generator, ready to serve concurrent requests.
type Service struct {
	dict *dictionary.Dictionary
	freq *dictionary.FrequencyTable
	gen  *generator.Generator
}

// New builds a Service. constructionSeed seeds the one-time curator
// selection inside the underlying Generator.
func New(dict *dictionary.Dictionary, freq *dictionary.FrequencyTable, cfg generator.Config, constructionSeed int64) (*Service, error) {
	gen, err := generator.New(dict, freq, cfg, constructionSeed)
	if err != nil {
		return nil, err
	}
	return &Service{dict: dict, freq: freq, gen: gen}, nil
}

// GenerateRequest mirrors generator.Request but accepts a raw string
// answer so HTTP handlers never need to reach into dictionary.Word.
type GenerateRequest struct {
	Answer      string
	Seed        int64
	MaxAttempts int
}

// Generate produces a Puzzle per spec.md §4.5.
func (s *Service) Generate(req GenerateRequest) (*Puzzle, error) {
	genReq := generator.Request{Seed: req.Seed, MaxAttempts: req.MaxAttempts}
	if req.Answer != "" {
		w, err := dictionary.Parse(req.Answer)
		if err != nil {
			return nil, puzzleerr.Precondition("answer must be five lowercase letters", err)
		}
		genReq.Answer = &w
	}
	return s.gen.Generate(genReq)
}

// Feedback scores a single guess against an answer, per spec.md §4.1.
func (s *Service) Feedback(guess, answer string) (oracle.Pattern, error) {
	g, err := dictionary.Parse(guess)
	if err != nil {
		return oracle.Pattern{}, puzzleerr.Precondition("guess must be five lowercase letters", err)
	}
	a, err := dictionary.Parse(answer)
	if err != nil {
		return oracle.Pattern{}, puzzleerr.Precondition("answer must be five lowercase letters", err)
	}
	return oracle.Feedback(g, a), nil
}

// FilterRequest is a single guess/pattern step in a filter history. Colors
// are supplied as "green", "yellow", or "gray".
type FilterRequest struct {
	Guess   string
	Pattern [dictionary.Length]string
}

// FilterDictionary applies a guess history to the full dictionary and
// returns the surviving words, per spec.md §4.2.
func (s *Service) FilterDictionary(history []FilterRequest) ([]string, error) {
	recs := make([]constraint.GuessRecord, 0, len(history))
	for _, h := range history {
		w, err := dictionary.Parse(h.Guess)
		if err != nil {
			return nil, puzzleerr.Precondition("guess must be five lowercase letters", err)
		}
		var pat oracle.Pattern
		for i, c := range h.Pattern {
			color, err := parseColor(c)
			if err != nil {
				return nil, puzzleerr.Precondition("pattern entry must be green, yellow, or gray", err)
			}
			pat[i] = color
		}
		recs = append(recs, constraint.GuessRecord{Word: w, Pattern: pat})
	}

	ids := constraint.Filter(s.dict, s.dict.All(), recs)
	return s.dict.Words(ids), nil
}

func parseColor(s string) (oracle.Color, error) {
	switch s {
	case "green":
		return oracle.Green, nil
	case "yellow":
		return oracle.Yellow, nil
	case "gray", "grey":
		return oracle.Gray, nil
	default:
		return 0, puzzleerr.Precondition("unknown color "+s, nil)
	}
}

// WordCount reports the loaded dictionary's size, for the /debug/words
// endpoint.
func (s *Service) WordCount() int { return s.dict.Len() }
