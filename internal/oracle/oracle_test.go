package oracle

import (
	"testing"

	"github.com/wordleforge/server/internal/dictionary"
)

func word(t *testing.T, s string) dictionary.Word {
	t.Helper()
	w, err := dictionary.Parse(s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return w
}

func TestFeedbackAllGreen(t *testing.T) {
	answer := word(t, "crane")
	p := Feedback(answer, answer)
	if !p.AllGreen() {
		t.Fatalf("expected all green, got %v", p.Strings())
	}
}

func TestFeedbackMoreCopiesInGuessThanInAnswer(t *testing.T) {
	// answer "algae" has one 'a' at position 0 and one at position 3.
	// guess "abaca" has three 'a's: positions 0,2,4.
	guess := word(t, "abaca")
	answer := word(t, "algae")
	p := Feedback(guess, answer)

	// position 0: guess 'a' == answer 'a' -> green
	if p[0] != Green {
		t.Errorf("pos0 = %v, want green", p[0])
	}
	// position 2: guess 'a', answer[2]='g' != 'a'; answer has a second 'a'
	// at position 3, not yet consumed by a green -> yellow
	if p[2] != Yellow {
		t.Errorf("pos2 = %v, want yellow", p[2])
	}
	// position 4: guess 'a', answer[4]='e'; both answer a's already
	// consumed (green at 0, yellow at 2) -> gray
	if p[4] != Gray {
		t.Errorf("pos4 = %v, want gray", p[4])
	}
}

func TestFeedbackDuplicateLetterInAnswerSingleInGuess(t *testing.T) {
	// answer "sassy" has three 's's; guess "silly" has one 's'.
	guess := word(t, "silly")
	answer := word(t, "sassy")
	p := Feedback(guess, answer)
	if p[0] != Green {
		t.Errorf("pos0 = %v, want green (both s)", p[0])
	}
}

func TestFeedbackNoOverlap(t *testing.T) {
	guess := word(t, "bumpy")
	answer := word(t, "cadge")
	p := Feedback(guess, answer)
	for i, c := range p {
		if c != Gray {
			t.Errorf("pos%d = %v, want gray", i, c)
		}
	}
}

func TestPatternPackIsInRangeAndCollisionFree(t *testing.T) {
	seen := make(map[int]Pattern)
	guess := word(t, "route")
	for _, a := range []string{"route", "outer", "toque", "otter", "route"} {
		answer := word(t, a)
		p := Feedback(guess, answer)
		key := p.Pack()
		if key < 0 || key >= 243 {
			t.Fatalf("pack() = %d out of [0,243)", key)
		}
		if prev, ok := seen[key]; ok && prev != p {
			t.Fatalf("pack collision: %v and %v both map to %d", prev, p, key)
		}
		seen[key] = p
	}
}
