// Puzzle routes: generate, feedback, filter. Grounded on the root
// internal/httpserver's handleNewGame/handleGuess for the request/response
// and best-effort-persistence shape, redirected at the puzzle façade
// instead of the in-memory game store.
package httpserver

import (
	"encoding/json"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/wordleforge/server/internal/accountstore"
	"github.com/wordleforge/server/internal/puzzle"
	"github.com/wordleforge/server/internal/seedkey"
)

const anonCookieName = "wordleforge_anon"

type generateReq struct {
	Answer      string `json:"answer,omitempty"`
	SeedKey     string `json:"seedKey,omitempty"`
	MaxAttempts int    `json:"maxAttempts,omitempty"`
}

type patternRes struct {
	Guess   string    `json:"guess"`
	Pattern [5]string `json:"pattern"`
}

type generateRes struct {
	Answer              string       `json:"answer"`
	Guesses             []patternRes `json:"guesses"`
	Status              string       `json:"status"`
	RemainingCandidates int          `json:"remainingCandidates"`
	AttemptsUsed        int          `json:"attemptsUsed"`
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateReq
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	svcReq := puzzle.GenerateRequest{Answer: req.Answer, MaxAttempts: req.MaxAttempts}
	if req.SeedKey != "" {
		svcReq.Seed = seedkey.Derive(seedSaltFromEnv(), req.SeedKey)
	} else {
		svcReq.Seed = cryptoSeed()
	}

	start := time.Now()
	p, err := s.puzzles.Generate(svcReq)
	if err != nil {
		writeGenErr(w, err)
		return
	}
	elapsed := time.Since(start)

	res := generateRes{
		Answer:              p.Answer.String(),
		Status:              p.Status.String(),
		RemainingCandidates: p.RemainingCandidates,
		AttemptsUsed:        p.AttemptsUsed,
	}
	for _, g := range p.Guesses {
		res.Guesses = append(res.Guesses, patternRes{Guess: g.Word.String(), Pattern: g.Pattern.Strings()})
	}

	if s.accounts != nil {
		s.logGeneration(w, r, p.Status.String(), p.AttemptsUsed, p.RemainingCandidates, elapsed)
	}

	writeJSON(w, http.StatusOK, res)
}

func (s *Server) logGeneration(w http.ResponseWriter, r *http.Request, status string, attempts, remaining int, elapsed time.Duration) {
	entry := accountstore.GenerationLogEntry{
		Status: status, AttemptsUsed: attempts, RemainingCandidates: remaining,
		DurationMS: elapsed.Milliseconds(),
	}
	if me, _ := r.Context().Value(ctxUserKey{}).(*authUser); me != nil {
		entry.UserID = me.ID
	} else {
		entry.AnonymousID = s.ensureAnonID(w, r)
	}
	if err := s.accounts.LogGeneration(entry); err != nil {
		log.Warn().Err(err).Msg("log generation")
	}
}

func (s *Server) ensureAnonID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(anonCookieName); err == nil && c.Value != "" {
		return c.Value
	}
	id := genID()
	http.SetCookie(w, &http.Cookie{
		Name: anonCookieName, Value: id, Path: "/", HttpOnly: true,
		Secure:  os.Getenv("NODE_ENV") == "production",
		Expires: time.Now().Add(180 * 24 * time.Hour),
	})
	return id
}

type feedbackReq struct {
	Guess  string `json:"guess"`
	Answer string `json:"answer"`
}

func (s *Server) handleFeedback(w http.ResponseWriter, r *http.Request) {
	var req feedbackReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid_json"}`, http.StatusBadRequest)
		return
	}
	pattern, err := s.puzzles.Feedback(req.Guess, req.Answer)
	if err != nil {
		writeGenErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"pattern": pattern.Strings()})
}

type filterStep struct {
	Guess   string    `json:"guess"`
	Pattern [5]string `json:"pattern"`
}

type filterReq struct {
	History []filterStep `json:"history"`
}

func (s *Server) handleFilter(w http.ResponseWriter, r *http.Request) {
	var req filterReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid_json"}`, http.StatusBadRequest)
		return
	}
	hist := make([]puzzle.FilterRequest, 0, len(req.History))
	for _, h := range req.History {
		hist = append(hist, puzzle.FilterRequest{Guess: h.Guess, Pattern: h.Pattern})
	}
	words, err := s.puzzles.FilterDictionary(hist)
	if err != nil {
		writeGenErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"candidates": words, "count": len(words)})
}

func writeGenErr(w http.ResponseWriter, err error) {
	var pe *puzzle.Error
	if e, ok := err.(*puzzle.Error); ok {
		pe = e
	}
	if pe == nil {
		http.Error(w, `{"error":"internal"}`, http.StatusInternalServerError)
		return
	}
	switch pe.Kind {
	case puzzle.KindPrecondition:
		http.Error(w, `{"error":"`+pe.Msg+`"}`, http.StatusBadRequest)
	default:
		log.Error().Err(pe).Msg("internal inconsistency")
		http.Error(w, `{"error":"internal"}`, http.StatusInternalServerError)
	}
}

func seedSaltFromEnv() string { return getEnv("SEED_SALT", "wordleforge") }

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
