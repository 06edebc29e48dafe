package search

import (
	"math"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/hbollon/go-edlib"
)

const (
	MinScore = 0.0
	MaxScore = 100.0

	// token-set agreement never outranks an exact spelling match
	tokenSetWeight = 0.95
)

// Similarity scores two strings in [0,100]. It ignores case and surrounding
// or repeated whitespace, is symmetric, and returns 100 for equal input.
// The score is the best of a plain indel ratio, a token-sort ratio and a
// down-weighted token-set ratio, so transpositions ("pyhton") and partial
// token overlap ("python django") still score high.
//
// Inputs made only of punctuation normalize to nothing; they match each
// other only when their trimmed lowercase forms are equal.
func Similarity(a, b string) float64 {
	na, nb := NormalizeQuery(a), NormalizeQuery(b)
	if na == "" || nb == "" {
		if strings.ToLower(strings.TrimSpace(a)) == strings.ToLower(strings.TrimSpace(b)) {
			return MaxScore
		}
		return MinScore
	}
	if na == nb {
		return MaxScore
	}

	best := ratio(na, nb)
	best = math.Max(best, ratio(sortedTokens(na), sortedTokens(nb)))
	best = math.Max(best, tokenSetRatio(na, nb)*tokenSetWeight)

	return clampScore(round2(best))
}

// ratio is 2*LCS/(len(a)+len(b)) scaled to 100; each insertion or deletion
// needed to turn a into b lowers it.
func ratio(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	total := utf8.RuneCountInString(a) + utf8.RuneCountInString(b)
	lcs := edlib.LCS(a, b)
	return 200 * float64(lcs) / float64(total)
}

func sortedTokens(s string) string {
	words := strings.Fields(s)
	sort.Strings(words)
	return strings.Join(words, " ")
}

// tokenSetRatio compares the shared tokens against each side's remainder.
// Tokens are counted, so a repeated word only matches as often as it
// occurs on both sides.
func tokenSetRatio(a, b string) float64 {
	countA := tokenCounts(a)
	countB := tokenCounts(b)

	inter := make([]string, 0)
	onlyA := make([]string, 0)
	onlyB := make([]string, 0)
	for w, n := range countA {
		m := countB[w]
		for i := 0; i < n; i++ {
			if i < m {
				inter = append(inter, w)
			} else {
				onlyA = append(onlyA, w)
			}
		}
	}
	for w, m := range countB {
		for i := countA[w]; i < m; i++ {
			onlyB = append(onlyB, w)
		}
	}
	sort.Strings(inter)
	sort.Strings(onlyA)
	sort.Strings(onlyB)

	base := strings.Join(inter, " ")
	withA := strings.TrimSpace(base + " " + strings.Join(onlyA, " "))
	withB := strings.TrimSpace(base + " " + strings.Join(onlyB, " "))

	best := ratio(base, withA)
	best = math.Max(best, ratio(base, withB))
	best = math.Max(best, ratio(withA, withB))
	return best
}

func tokenCounts(s string) map[string]int {
	out := map[string]int{}
	for _, w := range strings.Fields(s) {
		out[w]++
	}
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func clampScore(v float64) float64 {
	if v < MinScore {
		return MinScore
	}
	if v > MaxScore {
		return MaxScore
	}
	return v
}
