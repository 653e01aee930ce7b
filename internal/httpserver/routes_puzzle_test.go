package httpserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/wordleforge/server/internal/dictionary"
	"github.com/wordleforge/server/internal/generator"
	"github.com/wordleforge/server/internal/puzzle"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	words := []string{
		"plant", "crane", "bumpy", "zesty", "vixen", "grasp", "chunk",
		"frown", "gloom", "smirk", "twist", "orbit", "quilt", "flock",
		"nudge", "hatch", "vapor", "index", "jolly", "knack",
	}
	dict, err := dictionary.LoadStrings(words)
	if err != nil {
		t.Fatal(err)
	}
	freq := dictionary.NewFrequencyTable(0)
	svc, err := puzzle.New(dict, freq, generator.DefaultConfig(), 1)
	if err != nil {
		t.Fatal(err)
	}
	return New(svc, nil, "wordleforge")
}

func doGenerate(t *testing.T, s *Server, body string) generateRes {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/puzzle/generate", strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var res generateRes
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatal(err)
	}
	return res
}

// Without a seedKey, /puzzle/generate must not silently seed the
// generator's RNG with the Go zero value on every call — two anonymous
// requests must be able to land on different puzzles.
func TestHandleGenerateWithoutSeedKeyVaries(t *testing.T) {
	s := newTestServer(t)

	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		res := doGenerate(t, s, `{}`)
		seen[res.Answer] = true
	}
	if len(seen) < 2 {
		t.Fatalf("20 unseeded /puzzle/generate calls all produced the same answer set %v; RNG is not being seeded unpredictably", seen)
	}
}

// The same seedKey must reproduce the same puzzle across calls.
func TestHandleGenerateWithSeedKeyIsReproducible(t *testing.T) {
	s := newTestServer(t)

	a := doGenerate(t, s, `{"seedKey":"table-7"}`)
	b := doGenerate(t, s, `{"seedKey":"table-7"}`)
	if a.Answer != b.Answer {
		t.Errorf("same seedKey produced different answers: %q vs %q", a.Answer, b.Answer)
	}
	if len(a.Guesses) != len(b.Guesses) {
		t.Fatalf("guess count differs: %d vs %d", len(a.Guesses), len(b.Guesses))
	}
	for i := range a.Guesses {
		if a.Guesses[i] != b.Guesses[i] {
			t.Errorf("guess %d differs: %+v vs %+v", i, a.Guesses[i], b.Guesses[i])
		}
	}
}
