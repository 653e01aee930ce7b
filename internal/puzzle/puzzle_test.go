package puzzle

import (
	"testing"

	"github.com/wordleforge/server/internal/dictionary"
	"github.com/wordleforge/server/internal/generator"
)

func newService(t *testing.T) *Service {
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
	svc, err := New(dict, freq, generator.DefaultConfig(), 1)
	if err != nil {
		t.Fatal(err)
	}
	return svc
}

func TestServiceFeedbackS1(t *testing.T) {
	svc := newService(t)
	p, err := svc.Feedback("crane", "slate")
	if err != nil {
		t.Fatal(err)
	}
	got := p.Strings()
	want := [5]string{"gray", "gray", "green", "gray", "green"}
	if got != want {
		t.Errorf("Feedback(crane, slate) = %v, want %v", got, want)
	}
}

func TestServiceFeedbackS2DuplicateCap(t *testing.T) {
	svc := newService(t)
	p, err := svc.Feedback("llama", "salad")
	if err != nil {
		t.Fatal(err)
	}
	got := p.Strings()
	want := [5]string{"yellow", "gray", "yellow", "gray", "yellow"}
	if got != want {
		t.Errorf("Feedback(llama, salad) = %v, want %v", got, want)
	}
}

func TestServiceFeedbackS3SelfIdentity(t *testing.T) {
	svc := newService(t)
	p, err := svc.Feedback("stare", "stare")
	if err != nil {
		t.Fatal(err)
	}
	if !p.AllGreen() {
		t.Errorf("Feedback(stare, stare) = %v, want all green", p.Strings())
	}
}

func TestServiceFeedbackRejectsBadInput(t *testing.T) {
	svc := newService(t)
	if _, err := svc.Feedback("toolong", "stare"); err == nil {
		t.Error("expected error for wrong-length guess")
	}
	if _, err := svc.Feedback("crane", "ST4TE"); err == nil {
		t.Error("expected error for non-lowercase answer")
	}
}

func TestServiceGenerateAndFilterAgree(t *testing.T) {
	svc := newService(t)
	p, err := svc.Generate(GenerateRequest{Answer: "plant", Seed: 3})
	if err != nil {
		t.Fatal(err)
	}
	if len(p.Guesses) == 0 {
		t.Fatal("expected at least one guess")
	}

	history := make([]FilterRequest, len(p.Guesses))
	for i, g := range p.Guesses {
		history[i] = FilterRequest{Guess: g.Word.String(), Pattern: g.Pattern.Strings()}
	}
	candidates, err := svc.FilterDictionary(history)
	if err != nil {
		t.Fatal(err)
	}
	found := false
	for _, c := range candidates {
		if c == "plant" {
			found = true
		}
	}
	if !found {
		t.Errorf("filtering the puzzle's own guesses must retain the answer; got %v", candidates)
	}
}

func TestServiceGenerateRejectsUnknownAnswer(t *testing.T) {
	svc := newService(t)
	_, err := svc.Generate(GenerateRequest{Answer: "zzzzz"})
	if err == nil {
		t.Fatal("expected error")
	}
	pe, ok := err.(*Error)
	if !ok || pe.Kind != KindPrecondition {
		t.Fatalf("expected KindPrecondition, got %v", err)
	}
}

func TestServiceFilterDictionaryRejectsBadColor(t *testing.T) {
	svc := newService(t)
	_, err := svc.FilterDictionary([]FilterRequest{
		{Guess: "crane", Pattern: [5]string{"green", "green", "green", "green", "purple"}},
	})
	if err == nil {
		t.Fatal("expected error for invalid color")
	}
}

func TestServiceWordCount(t *testing.T) {
	svc := newService(t)
	if svc.WordCount() != 20 {
		t.Errorf("WordCount() = %d, want 20", svc.WordCount())
	}
}
