package dictionary

import (
	_ "embed"
	"os"
	"strings"
)

// Embedded fallback data ensures the service can start even when no word
// list or frequency file has been configured, mirroring the teacher's
// pattern of shipping small embedded defaults alongside file-based
// overrides.
//
//go:embed default_words.txt
var embeddedWords string

//go:embed default_frequency.txt
var embeddedFrequency string

// LoadFromEnv builds a Dictionary and FrequencyTable using the same
// three-tier precedence spec.md §6 describes for the collaborator's word
// files, generalized to a third (frequency) file:
//
//  1. WORDS_ALLOWED_FILE set: it alone is the working dictionary. The
//     answers file, even if also set, is not read or merged in.
//  2. Only WORDS_ANSWERS_FILE set: it is the working dictionary.
//  3. Neither set: fall back to the embedded default word list.
//
// WORDS_FREQUENCY_FILE, if set and openable, is loaded independently; if
// unset or it cannot be opened, the embedded frequency data is loaded
// instead of an empty table, so answer selection remains
// frequency-weighted out of the box.
func LoadFromEnv() (*Dictionary, *FrequencyTable, error) {
	answersPath := os.Getenv("WORDS_ANSWERS_FILE")
	allowedPath := os.Getenv("WORDS_ALLOWED_FILE")
	freqPath := os.Getenv("WORDS_FREQUENCY_FILE")

	var dict *Dictionary
	var err error
	switch {
	case allowedPath != "":
		dict, err = loadFile(allowedPath)
	case answersPath != "":
		dict, err = loadFile(answersPath)
	default:
		dict, err = LoadStrings(strings.Split(embeddedWords, "\n"))
	}
	if err != nil {
		return nil, nil, err
	}

	var freq *FrequencyTable
	if freqPath != "" {
		f, ferr := os.Open(freqPath)
		if ferr == nil {
			defer f.Close()
			freq, err = LoadFrequencyTable(f, 0)
			if err != nil {
				return nil, nil, err
			}
		}
	}
	if freq == nil {
		freq, err = LoadFrequencyTable(strings.NewReader(embeddedFrequency), 0)
		if err != nil {
			return nil, nil, err
		}
	}
	return dict, freq, nil
}

func loadFile(path string) (*Dictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f)
}
