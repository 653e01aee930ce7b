// Package httpserver wires the puzzle façade and the account store behind
// a chi router. Grounded on the root internal/httpserver/server.go:
// middleware stack, JSON default responses, credentialed CORS, anonymous
// cookie identity, and JWT auth are all kept in the teacher's shape —
// only the routed operations change, from Wordle gameplay to puzzle
// generation.
package httpserver

import (
	"crypto/rand"
	"encoding/binary"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/wordleforge/server/internal/accountstore"
	"github.com/wordleforge/server/internal/puzzle"
)

// Server bundles the router, the puzzle façade, and the account store.
type Server struct {
	r        *chi.Mux
	puzzles  *puzzle.Service
	accounts *accountstore.Store
	seedSalt string
}

// New constructs a Server, installs middleware, and registers routes.
// accounts may be nil, in which case auth and stats routes respond
// 503 rather than panicking — useful for tests that only exercise the
// puzzle endpoints.
func New(puzzles *puzzle.Service, accounts *accountstore.Store, seedSalt string) *Server {
	s := &Server{r: chi.NewRouter(), puzzles: puzzles, accounts: accounts, seedSalt: seedSalt}

	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(30 * time.Second))
	s.r.Use(jsonContentType)
	s.r.Use(corsFromEnv)

	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"wordleforge","endpoints":["/health","POST /puzzle/generate","POST /puzzle/feedback","POST /puzzle/filter","/auth/*","/stats/me","/debug/words"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Get("/debug/words", s.handleDebugWords)

	s.r.With(s.withOptionalAuth()).Post("/puzzle/generate", s.handleGenerate)
	s.r.Post("/puzzle/feedback", s.handleFeedback)
	s.r.Post("/puzzle/filter", s.handleFilter)

	s.mountAuthRoutes()

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not_found","path":"`+r.URL.Path+`"}`, http.StatusNotFound)
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router, useful for tests.
func (s *Server) Router() chi.Router { return s.r }

func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// corsFromEnv enables credentialed CORS for a single configured origin.
func corsFromEnv(next http.Handler) http.Handler {
	origin := os.Getenv("CLIENT_ORIGIN")
	if origin == "" {
		origin = "http://localhost:5173"
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// cryptoSeed draws an unpredictable int64 from crypto/rand, the same
// technique cmd/server uses to seed the curator's one-time construction
// RNG. Used wherever a generator seed is needed but no reproducible
// seedKey was supplied.
func cryptoSeed() int64 {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return int64(binary.BigEndian.Uint64(b[:]))
}

func (s *Server) handleDebugWords(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]int{"dictionary": s.puzzles.WordCount()})
}
