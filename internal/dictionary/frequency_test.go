package dictionary

import (
	"strings"
	"testing"
)

func TestLoadFrequencyTableParsesValidLines(t *testing.T) {
	src := "crane 1500\ntrace 900.5\nBAD_LINE\ngrape\nzz 10\ncrane 2000\n"
	ft, err := LoadFrequencyTable(strings.NewReader(src), 0)
	if err != nil {
		t.Fatal(err)
	}
	if got := ft.Get(mustParse(t, "crane")); got != 2000 {
		t.Errorf("Get(crane) = %v, want 2000 (last value wins)", got)
	}
	if got := ft.Get(mustParse(t, "trace")); got != 900.5 {
		t.Errorf("Get(trace) = %v, want 900.5", got)
	}
	if ft.Len() != 2 {
		t.Errorf("Len() = %d, want 2", ft.Len())
	}
}

func TestFrequencyTableDefaultForMissingWord(t *testing.T) {
	ft := NewFrequencyTable(5)
	if got := ft.Get(mustParse(t, "crane")); got != 5 {
		t.Errorf("Get(missing) = %v, want default 5", got)
	}
}

func TestFrequencyTableRejectsNegativeValues(t *testing.T) {
	ft, err := LoadFrequencyTable(strings.NewReader("crane -5\n"), 0)
	if err != nil {
		t.Fatal(err)
	}
	if ft.Len() != 0 {
		t.Errorf("expected negative-frequency line to be skipped, Len() = %d", ft.Len())
	}
}
