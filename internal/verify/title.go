package verify

import (
	"regexp"
	"strings"
)

// titleSimilarityFloor is the Levenshtein similarity above which two
// normalized titles count as the same work.
const titleSimilarityFloor = 0.75

var titlePunct = regexp.MustCompile(`[:\-–—,;]`)

// TitleMatch reports whether two titles refer to the same work. The
// predicates are independent and combined by OR; each works on
// punctuation-stripped, lowercased text.
func TitleMatch(a, b string) bool {
	na := normalizeTitle(a)
	nb := normalizeTitle(b)
	if na == "" || nb == "" {
		return false
	}

	return na == nb ||
		titleContainment(na, nb) ||
		Similarity(na, nb) > titleSimilarityFloor ||
		titleKeywordMatch(na, nb)
}

func normalizeTitle(s string) string {
	s = titlePunct.ReplaceAllString(s, " ")
	s = strings.Join(strings.Fields(s), " ")
	return strings.ToLower(s)
}

func titleContainment(a, b string) bool {
	return strings.Contains(a, b) || strings.Contains(b, a)
}

// titleKeywordMatch requires every word longer than 3 characters on each
// side to have a substring-overlapping counterpart on the other side.
func titleKeywordMatch(a, b string) bool {
	aWords := significantWords(a)
	bWords := significantWords(b)
	if len(aWords) == 0 || len(bWords) == 0 {
		return false
	}

	return allWordsCovered(aWords, bWords) && allWordsCovered(bWords, aWords)
}

func significantWords(s string) []string {
	var words []string
	for _, w := range strings.Fields(s) {
		if len(w) > 3 {
			words = append(words, w)
		}
	}
	return words
}

// allWordsCovered reports whether every word in from overlaps, as a
// substring in either direction, with some word in to.
func allWordsCovered(from, to []string) bool {
	for _, w := range from {
		covered := false
		for _, v := range to {
			if strings.Contains(v, w) || strings.Contains(w, v) {
				covered = true
				break
			}
		}
		if !covered {
			return false
		}
	}
	return true
}
