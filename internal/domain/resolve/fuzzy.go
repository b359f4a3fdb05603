package resolve

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// TokenSetRatio scores two strings 0-100 using order-independent token
// overlap: both sides are split into word sets, and the shared tokens
// are compared against each side's remainder. A string whose tokens are
// a subset of the other's scores 100, which is what makes the scorer
// robust to OCR text where a name is surrounded by unrelated words.
func TokenSetRatio(a, b string) int {
	ta := tokenSet(a)
	tb := tokenSet(b)

	if len(ta) == 0 || len(tb) == 0 {
		if len(ta) == 0 && len(tb) == 0 {
			return 100
		}
		return 0
	}

	var shared, onlyA, onlyB []string
	for tok := range ta {
		if _, ok := tb[tok]; ok {
			shared = append(shared, tok)
		} else {
			onlyA = append(onlyA, tok)
		}
	}
	for tok := range tb {
		if _, ok := ta[tok]; !ok {
			onlyB = append(onlyB, tok)
		}
	}

	// One token set contained in the other is a perfect set match.
	if len(shared) > 0 && (len(onlyA) == 0 || len(onlyB) == 0) {
		return 100
	}

	sort.Strings(shared)
	sort.Strings(onlyA)
	sort.Strings(onlyB)

	s0 := strings.Join(shared, " ")
	s1 := strings.TrimSpace(s0 + " " + strings.Join(onlyA, " "))
	s2 := strings.TrimSpace(s0 + " " + strings.Join(onlyB, " "))

	best := similarity(s1, s2)
	if s0 != "" {
		if v := similarity(s0, s1); v > best {
			best = v
		}
		if v := similarity(s0, s2); v > best {
			best = v
		}
	}
	return best
}

// similarity converts edit distance into a 0-100 score, with a
// secondary subsequence rank so that near-prefix matches keep a
// moderate floor. The rank contribution is capped at 60, well under
// every acceptance threshold in the resolver.
func similarity(s1, s2 string) int {
	if s1 == s2 {
		return 100
	}

	maxLen := len([]rune(s1))
	if l := len([]rune(s2)); l > maxLen {
		maxLen = l
	}
	if maxLen == 0 {
		return 100
	}

	distance := levenshtein.ComputeDistance(s1, s2)
	score := 100 * (maxLen - distance) / maxLen

	if rank := fuzzy.RankMatchFold(s2, s1); rank >= 0 && rank < len(s1) {
		if rankScore := 60 - (rank * 40 / len(s1)); rankScore > score {
			score = rankScore
		}
	}
	return score
}

func tokenSet(s string) map[string]struct{} {
	fields := strings.Fields(s)
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return set
}

// Match is a scored registry hit produced by BestMatch.
type Match struct {
	Index int
	Score int
}

// BestMatch finds the candidate with the highest token-set score
// against the query, accepting it only at or above threshold. Ties are
// broken by the earliest index so resolution stays deterministic.
// This is the shared primitive behind the NER, global and final fuzzy
// stages; only the query and threshold differ between them.
func BestMatch(query string, candidates []string, threshold int) (Match, bool) {
	best := Match{Index: -1, Score: -1}
	for i, cand := range candidates {
		if score := TokenSetRatio(query, cand); score > best.Score {
			best = Match{Index: i, Score: score}
		}
	}
	if best.Index < 0 || best.Score < threshold {
		return Match{}, false
	}
	return best, true
}
