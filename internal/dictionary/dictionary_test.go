package dictionary

import (
	"strings"
	"testing"
)

func TestParseRejectsWrongLengthAndCase(t *testing.T) {
	cases := []string{"cat", "toolongword", "CRANE", "cr4ne", ""}
	for _, c := range cases {
		if _, err := Parse(c); err == nil {
			t.Errorf("Parse(%q) succeeded, want error", c)
		}
	}
}

func TestLoadSkipsInvalidAndDuplicateLines(t *testing.T) {
	src := "crane\nCRANE\n  trace  \n\nbad\ntoolongone\ncrane\ngrape\n"
	dict, err := Load(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	if dict.Len() != 3 {
		t.Fatalf("Len() = %d, want 3 (crane, trace, grape)", dict.Len())
	}
	if !dict.Contains(mustParse(t, "crane")) {
		t.Error("expected crane in dictionary")
	}
}

func TestLoadRejectsEmptyResult(t *testing.T) {
	_, err := Load(strings.NewReader("bad\ntoolongone\n"))
	if err == nil {
		t.Fatal("expected error for a dictionary with zero valid words")
	}
}

func TestCountsMatchesLetterMultiset(t *testing.T) {
	w := mustParse(t, "sassy")
	c := w.Counts()
	if c['s'-'a'] != 3 {
		t.Errorf("count of 's' = %d, want 3", c['s'-'a'])
	}
	if c['a'-'a'] != 1 || c['y'-'a'] != 1 {
		t.Errorf("unexpected counts: %v", c)
	}
}

func TestWordsReturnsSortedStrings(t *testing.T) {
	dict, err := LoadStrings([]string{"zesty", "amber", "crane"})
	if err != nil {
		t.Fatal(err)
	}
	got := dict.Words(dict.All())
	want := []string{"amber", "crane", "zesty"}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Words()[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func mustParse(t *testing.T, s string) Word {
	t.Helper()
	w, err := Parse(s)
	if err != nil {
		t.Fatal(err)
	}
	return w
}
