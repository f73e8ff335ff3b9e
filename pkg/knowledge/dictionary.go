package knowledge

import (
	"strings"

	"github.com/coregx/ahocorasick"
)

// DictionaryEntry is a saved dictionary lookup (headword + definition)
// supplied by the hosting app.
type DictionaryEntry struct {
	ID         string `json:"id"`
	Word       string `json:"word"`
	Definition string `json:"definition,omitempty"`
}

// DictionaryMatcher finds dictionary headwords contained in free text.
// A single Aho-Corasick automaton scans all headwords in one pass.
type DictionaryMatcher struct {
	ac      *ahocorasick.Automaton
	entries []DictionaryEntry // indexed by pattern id
}

// CompileDictionary builds a matcher from dictionary entries. Entries with
// empty headwords are skipped. Returns nil when nothing is matchable.
func CompileDictionary(entries []DictionaryEntry) (*DictionaryMatcher, error) {
	var patterns []string
	var kept []DictionaryEntry
	for _, e := range entries {
		w := strings.ToLower(strings.TrimSpace(e.Word))
		if w == "" {
			continue
		}
		patterns = append(patterns, w)
		kept = append(kept, e)
	}
	if len(patterns) == 0 {
		return nil, nil
	}

	automaton, err := ahocorasick.NewBuilder().
		AddStrings(patterns).
		SetMatchKind(ahocorasick.LeftmostLongest).
		SetPrefilter(true).
		Build()
	if err != nil {
		return nil, err
	}

	return &DictionaryMatcher{ac: automaton, entries: kept}, nil
}

// Match returns the entries whose headword appears in content
// (case-insensitive substring containment). Each entry is reported once.
func (d *DictionaryMatcher) Match(content string) []DictionaryEntry {
	if d == nil || d.ac == nil {
		return nil
	}

	haystack := []byte(strings.ToLower(content))
	seen := make(map[int]bool)
	var result []DictionaryEntry

	for _, m := range d.ac.FindAllOverlapping(haystack) {
		if seen[m.PatternID] {
			continue
		}
		seen[m.PatternID] = true
		if m.PatternID < len(d.entries) {
			result = append(result, d.entries[m.PatternID])
		}
	}
	return result
}
