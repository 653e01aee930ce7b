// Package dictionary holds the fixed five-letter word set the puzzle
// generator draws from, plus the external word-frequency data used to
// weight answer selection and word scoring.
package dictionary

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"
)

// Length is the fixed word length this system supports. spec.md's
// non-goals rule out any other length.
const Length = 5

// Word is a five-letter lowercase word stored as a fixed byte array so it
// is cheap to copy and usable as a map key.
type Word [Length]byte

// Parse validates s and returns it as a Word. s must be exactly Length
// lowercase ASCII letters a-z.
func Parse(s string) (Word, error) {
	var w Word
	if len(s) != Length {
		return w, fmt.Errorf("dictionary: word %q is not %d letters", s, Length)
	}
	for i := 0; i < Length; i++ {
		c := s[i]
		if c < 'a' || c > 'z' {
			return w, fmt.Errorf("dictionary: word %q has non a-z byte at position %d", s, i)
		}
		w[i] = c
	}
	return w, nil
}

// String returns the word's lowercase string form.
func (w Word) String() string {
	return string(w[:])
}

// Counts returns the per-letter multiset of w, indexed by letter-'a'.
func (w Word) Counts() [26]uint8 {
	var c [26]uint8
	for _, b := range w {
		c[b-'a']++
	}
	return c
}

// normalize trims and lowercases line and returns it as a Word, reporting
// whether it is a well-formed dictionary word.
func normalize(line string) (Word, bool) {
	s := strings.ToLower(strings.TrimSpace(line))
	if s == "" {
		return Word{}, false
	}
	w, err := Parse(s)
	if err != nil {
		return Word{}, false
	}
	return w, true
}

// Dictionary is the fixed, load-ordered set of Words the generator operates
// over. It is immutable after Load returns.
type Dictionary struct {
	words  []Word
	counts [][26]uint8
	index  map[Word]int
}

// Load reads one word per line from r. Lines that are not exactly Length
// a-z letters (after trimming and lowercasing) are rejected, per spec.md
// §6's dictionary file format.
func Load(r io.Reader) (*Dictionary, error) {
	d := &Dictionary{index: make(map[Word]int)}
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		w, ok := normalize(sc.Text())
		if !ok {
			continue
		}
		if _, dup := d.index[w]; dup {
			continue
		}
		d.index[w] = len(d.words)
		d.words = append(d.words, w)
		c := w.Counts()
		d.counts = append(d.counts, c)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("dictionary: read: %w", err)
	}
	if len(d.words) == 0 {
		return nil, fmt.Errorf("dictionary: no valid %d-letter words found", Length)
	}
	return d, nil
}

// LoadStrings builds a Dictionary directly from a slice of words, in order.
// Invalid or duplicate words are skipped, mirroring Load's tolerance.
func LoadStrings(words []string) (*Dictionary, error) {
	return Load(strings.NewReader(strings.Join(words, "\n")))
}

// Len returns the number of words in the dictionary.
func (d *Dictionary) Len() int { return len(d.words) }

// At returns the word with the given id. Ids are stable for the lifetime
// of the Dictionary and correspond to load order.
func (d *Dictionary) At(id int) Word { return d.words[id] }

// CountsAt returns the precomputed letter multiset for the word at id.
func (d *Dictionary) CountsAt(id int) [26]uint8 { return d.counts[id] }

// IndexOf returns the id of w and whether it is present.
func (d *Dictionary) IndexOf(w Word) (int, bool) {
	id, ok := d.index[w]
	return id, ok
}

// Contains reports whether w is a member of the dictionary.
func (d *Dictionary) Contains(w Word) bool {
	_, ok := d.index[w]
	return ok
}

// All returns every id in the dictionary, in load order. The slice is
// freshly allocated per call, so callers may reorder or modify it.
func (d *Dictionary) All() []int {
	ids := make([]int, len(d.words))
	for i := range ids {
		ids[i] = i
	}
	return ids
}

// Words returns the sorted, lexicographically-ordered string form of the
// given ids. Used at the wire boundary (spec.md §6's filter_dictionary),
// which requires deterministic client display order.
func (d *Dictionary) Words(ids []int) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = d.words[id].String()
	}
	sort.Strings(out)
	return out
}
