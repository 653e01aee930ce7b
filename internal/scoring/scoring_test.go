package scoring

import (
	"strings"
	"testing"

	"github.com/wordleforge/server/internal/dictionary"
)

func TestLetterStatsFrequenciesAreFractions(t *testing.T) {
	dict, err := dictionary.LoadStrings([]string{"aabbb", "crane", "trace"})
	// aabbb isn't a real word but the dictionary package only enforces
	// shape, not vocabulary; that's an application-level curated list
	// concern.
	if err != nil {
		t.Fatal(err)
	}
	ls := Compute(dict)

	// 'a' appears (at least once) in "aabbb" and "crane" and "trace": 3/3.
	if got := ls.LetterFreq('a'); got != 1.0 {
		t.Errorf("LetterFreq('a') = %v, want 1.0", got)
	}
	// 'c' appears only in crane/trace: 2/3.
	want := 2.0 / 3.0
	if got := ls.LetterFreq('c'); got != want {
		t.Errorf("LetterFreq('c') = %v, want %v", got, want)
	}
}

func TestScoreIsMonotonicInFrequency(t *testing.T) {
	dict, err := dictionary.LoadStrings([]string{"crane", "trace", "eagle", "grape"})
	if err != nil {
		t.Fatal(err)
	}
	ls := Compute(dict)
	w, _ := dictionary.Parse("crane")

	weights := DefaultWeights()
	freq := dictionary.NewFrequencyTable(0)
	low := ls.Score(w, freq, weights)

	hiFreqTable, err := dictionary.LoadFrequencyTable(strings.NewReader("crane 500"), 0)
	if err != nil {
		t.Fatal(err)
	}
	high := ls.Score(w, hiFreqTable, weights)

	if !(high > low) {
		t.Errorf("expected frequency boost to raise score: low=%v high=%v", low, high)
	}
}

func TestScoreBoostIsCapped(t *testing.T) {
	dict, err := dictionary.LoadStrings([]string{"crane", "trace"})
	if err != nil {
		t.Fatal(err)
	}
	ls := Compute(dict)
	w, _ := dictionary.Parse("crane")
	weights := DefaultWeights()

	moderate, _ := dictionary.LoadFrequencyTable(strings.NewReader("crane 1000"), 0)
	extreme, _ := dictionary.LoadFrequencyTable(strings.NewReader("crane 100000"), 0)

	sModerate := ls.Score(w, moderate, weights)
	sExtreme := ls.Score(w, extreme, weights)
	if sModerate != sExtreme {
		t.Errorf("expected frequency boost to saturate at the cap: moderate=%v extreme=%v", sModerate, sExtreme)
	}
}

func TestCompositeWeightsDirection(t *testing.T) {
	w := DefaultWeights()
	base := CompositeInput{InfoGain: 10, GreenCount: 1, YellowCount: 1, GuessScore: 1, OverlapLetters: 0}
	better := base
	better.InfoGain = 20
	if Composite(better, w) <= Composite(base, w) {
		t.Errorf("higher info gain should increase composite score")
	}

	worse := base
	worse.OverlapLetters = 5
	if Composite(worse, w) >= Composite(base, w) {
		t.Errorf("higher letter overlap should decrease composite score")
	}
}
