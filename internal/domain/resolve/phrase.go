package resolve

import (
	"strings"

	"github.com/cloudflare/ahocorasick"
)

// PhraseIndex locates registry names inside normalized text in a
// single Aho-Corasick pass. Besides the plain names it also knows the
// honorific forms "sr. <first> <last>" and "sra. <first> <last>" that
// letters commonly use.
type PhraseIndex struct {
	matcher  *ahocorasick.Matcher
	patterns []string
	record   []int // pattern index -> registry record index
}

// NewPhraseIndex builds the phrase index from driver names. Names are
// stored normalized so queries must be normalized text as well.
func NewPhraseIndex(names []string) *PhraseIndex {
	idx := &PhraseIndex{}

	seen := make(map[string]struct{}, len(names)*3)
	add := func(pattern string, rec int) {
		if pattern == "" {
			return
		}
		if _, dup := seen[pattern]; dup {
			return
		}
		seen[pattern] = struct{}{}
		idx.patterns = append(idx.patterns, pattern)
		idx.record = append(idx.record, rec)
	}

	for i, name := range names {
		normalized := Normalize(name)
		add(normalized, i)

		parts := strings.Fields(normalized)
		if len(parts) >= 2 {
			firstLast := parts[0] + " " + parts[len(parts)-1]
			add("sr "+firstLast, i)
			add("sra "+firstLast, i)
		}
	}

	if len(idx.patterns) > 0 {
		bytePatterns := make([][]byte, len(idx.patterns))
		for i, p := range idx.patterns {
			bytePatterns[i] = []byte(p)
		}
		idx.matcher = ahocorasick.NewMatcher(bytePatterns)
	}
	return idx
}

// Match returns the registry record whose name (or honorific variant)
// occurs earliest in the normalized text. Matches must sit on word
// boundaries: "ana silva" inside "banana silva" does not count.
func (idx *PhraseIndex) Match(normalizedText string) (int, bool) {
	if idx.matcher == nil || normalizedText == "" {
		return 0, false
	}

	hits := idx.matcher.Match([]byte(normalizedText))
	if len(hits) == 0 {
		return 0, false
	}

	padded := " " + normalizedText + " "
	bestPos, bestLen, bestRec := -1, 0, -1
	for _, h := range hits {
		if h < 0 || h >= len(idx.patterns) {
			continue
		}
		pattern := idx.patterns[h]
		pos := strings.Index(padded, " "+pattern+" ")
		if pos < 0 {
			continue
		}
		if bestPos < 0 || pos < bestPos || (pos == bestPos && len(pattern) > bestLen) {
			bestPos, bestLen, bestRec = pos, len(pattern), idx.record[h]
		}
	}
	if bestRec < 0 {
		return 0, false
	}
	return bestRec, true
}

// PatternCount returns the number of indexed phrases.
func (idx *PhraseIndex) PatternCount() int {
	return len(idx.patterns)
}
