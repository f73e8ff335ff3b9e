// Package keywords provides keyword extraction and Jaccard similarity
// scoring over free text. It powers link discovery and related-content
// suggestions; every function is deterministic and side-effect free.
package keywords

import (
	"sort"
	"strings"
	"unicode"

	"github.com/orsinium-labs/stopwords"
)

// maxKeywords caps Extract output.
const maxKeywords = 10

// english is the robust stop-word list; custom entries cover domain noise
// the generic list misses.
var english = stopwords.MustGet("en")

var customStop = map[string]bool{
	"note": true, "task": true, "item": true, "thing": true,
	"today": true, "tomorrow": true, "also": true, "really": true,
}

// normalize lowercases and replaces punctuation with spaces.
func normalize(text string) string {
	var out strings.Builder
	out.Grow(len(text))

	for _, ch := range text {
		c := unicode.ToLower(ch)
		if unicode.IsLetter(c) || unicode.IsDigit(c) {
			out.WriteRune(c)
		} else {
			out.WriteRune(' ')
		}
	}
	return out.String()
}

// Extract returns up to ten keywords, most frequent first. Tokens of
// length <=2 and stop words are discarded. Frequency ties are broken by
// first appearance in the text (insertion-stable sort).
func Extract(text string) []string {
	counts := make(map[string]int)
	var order []string

	for _, w := range strings.Fields(normalize(text)) {
		if len(w) <= 2 {
			continue
		}
		if english.Contains(w) || customStop[w] {
			continue
		}
		if counts[w] == 0 {
			order = append(order, w)
		}
		counts[w]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	if len(order) > maxKeywords {
		order = order[:maxKeywords]
	}
	return order
}

// Similarity computes the Jaccard index over the two texts' keyword sets.
// Returns a value in [0,1]; 0 when either keyword set is empty. Symmetric
// for any pair of inputs.
func Similarity(a, b string) float64 {
	setA := toSet(Extract(a))
	setB := toSet(Extract(b))
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}

	intersection := 0
	for w := range setA {
		if setB[w] {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	return float64(intersection) / float64(union)
}

func toSet(words []string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}
