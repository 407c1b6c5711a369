// Package matcher ranks short texts (file names, titles) against a search query.
//
// Scores are 0..100. The final score of a text is the best of a plain edit-distance
// ratio, a best-window partial ratio, a per-token ratio and an accent-folded
// subsequence ratio.
package matcher

import (
	"math"
	"sort"
	"strings"
	"unicode"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

type Ranked[T any] struct {
	Item  T
	Score int
}

// Rank keeps the items scoring at least cutoff, best first.
// Items with equal scores keep their input order.
func Rank[T any](query string, items []T, texts func(T) []string, cutoff int) []Ranked[T] {
	q := Normalize(query)
	if q == "" {
		return nil
	}
	ranked := make([]Ranked[T], 0, len(items))
	for _, item := range items {
		best := 0
		for _, text := range texts(item) {
			best = max(best, score(q, Normalize(text)))
		}
		if best > 0 && best >= cutoff {
			ranked = append(ranked, Ranked[T]{Item: item, Score: best})
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}

func Score(query, text string) int {
	return score(Normalize(query), Normalize(text))
}

// Normalize lowercases s and turns every run of non letter/digit runes into one space.
func Normalize(s string) string {
	mapped := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToLower(r)
		}
		return ' '
	}, s)
	return strings.Join(strings.Fields(mapped), " ")
}

func score(q, t string) int {
	if q == "" || t == "" {
		return 0
	}
	if q == t {
		return 100
	}
	return max(ratio(q, t), partialRatio(q, t), tokenRatio(q, t), subsequenceRatio(q, t))
}

func ratio(a, b string) int {
	longest := max(len([]rune(a)), len([]rune(b)))
	if longest == 0 {
		return 100
	}
	d := fuzzy.LevenshteinDistance(a, b)
	return int(math.Round(100 * float64(longest-d) / float64(longest)))
}

// Queries shorter than this only count as partial matches at half weight.
const minPartialLen = 3

// partialRatio compares the shorter string with every same-length window of the longer one.
// Short queries and large length differences are damped so that a single letter
// found somewhere in a release name stays below any useful cutoff.
func partialRatio(a, b string) int {
	short, long := []rune(a), []rune(b)
	if len(short) > len(long) {
		short, long = long, short
	}
	if len(short) == 0 {
		return 0
	}
	best := 0
	for i := 0; i+len(short) <= len(long); i++ {
		best = max(best, ratio(string(short), string(long[i:i+len(short)])))
		if best == 100 {
			break
		}
	}
	switch lenRatio := float64(len(long)) / float64(len(short)); {
	case len(short) < minPartialLen, lenRatio >= 8:
		return int(math.Round(float64(best) * 0.5))
	case lenRatio >= 1.5:
		return int(math.Round(float64(best) * 0.9))
	}
	return best
}

// tokenRatio averages, over the query tokens, the best ratio against any text token.
func tokenRatio(q, t string) int {
	qTokens, tTokens := strings.Fields(q), strings.Fields(t)
	if len(qTokens) == 0 || len(tTokens) == 0 {
		return 0
	}
	total := 0
	for _, qt := range qTokens {
		best := 0
		for _, tt := range tTokens {
			best = max(best, ratio(qt, tt))
			if best == 100 {
				break
			}
		}
		total += best
	}
	return int(math.Round(float64(total) / float64(len(qTokens))))
}

func subsequenceRatio(q, t string) int {
	if !fuzzy.MatchNormalizedFold(q, t) {
		return 0
	}
	d := fuzzy.RankMatchNormalizedFold(q, t)
	if d < 0 {
		return 0
	}
	n := len([]rune(q))
	return int(math.Round(100 * float64(n) / float64(n+d)))
}
