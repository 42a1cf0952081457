package branch

import (
	"math"
	"sort"
	"strings"
	"unicode"

	"github.com/agext/levenshtein"
)

// indelParams prices a substitution as a deletion plus an insertion, which turns the edit
// distance into the indel distance used by the classic sequence-matcher ratio.
var indelParams = levenshtein.NewParams().SubCost(2)

// processToken lower-cases s and replaces every run of non-alphanumeric characters with a
// single space.
func processToken(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}
	return strings.TrimSpace(b.String())
}

// sortTokens processes s and returns its tokens sorted and joined by one space.
func sortTokens(s string) string {
	tokens := strings.Fields(processToken(s))
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}

// ratio returns the 0..100 similarity of two already-processed strings.
func ratio(a, b string) int {
	total := len([]rune(a)) + len([]rune(b))
	if total == 0 {
		return 0
	}
	dist := levenshtein.Distance(a, b, indelParams)
	return int(math.RoundToEven(100 * float64(total-dist) / float64(total)))
}

// TokenSortRatio scores two strings 0..100 ignoring case, punctuation and token order.
// Either side processing to nothing scores 0.
func TokenSortRatio(a, b string) int {
	sa, sb := sortTokens(a), sortTokens(b)
	if sa == "" || sb == "" {
		return 0
	}
	return ratio(sa, sb)
}
