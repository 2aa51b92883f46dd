package verify

import (
	"context"
	"log/slog"
	"strings"

	"github.com/scholarly-tools/paperverify/internal/translit"
)

// authorSimilarityFloor is the Levenshtein similarity above which two
// author strings count as the same person.
const authorSimilarityFloor = 0.7

// authorMatch compares a web-sourced author against a PDF-sourced author.
// A CJK web author is transliterated first. Four independent predicates
// are combined by OR.
func (e *Engine) authorMatch(ctx context.Context, webAuthor, pdfAuthor string) bool {
	if webAuthor == "" || pdfAuthor == "" {
		return false
	}
	if strings.EqualFold(strings.TrimSpace(webAuthor), strings.TrimSpace(pdfAuthor)) {
		return true
	}

	if translit.ContainsCJK(webAuthor) {
		romanized, err := e.translit.Transliterate(ctx, webAuthor)
		if err != nil {
			slog.Warn("Transliteration failed, comparing raw author", "error", err)
		} else if romanized != "" {
			webAuthor = romanized
		}
	}

	web := strings.ToLower(strings.TrimSpace(webAuthor))
	pdf := strings.ToLower(strings.TrimSpace(pdfAuthor))
	if web == "" || pdf == "" {
		return false
	}

	return basicAuthorMatch(web, pdf) ||
		authorWordMatch(web, pdf) ||
		Similarity(web, pdf) > authorSimilarityFloor ||
		namePartsMatch(web, pdf)
}

// basicAuthorMatch: exact, or one name contains the other.
func basicAuthorMatch(a, b string) bool {
	return a == b || strings.Contains(a, b) || strings.Contains(b, a)
}

// authorWordMatch compares the names word by word, ignoring order. Equal
// word counts try exact set equality first and degrade to
// substring-overlap containment; differing counts require every word on
// each side to substring-match some word on the other.
func authorWordMatch(a, b string) bool {
	aWords := strings.Fields(a)
	bWords := strings.Fields(b)
	if len(aWords) == 0 || len(bWords) == 0 {
		return false
	}

	if len(aWords) == len(bWords) {
		if wordSetEqual(aWords, bWords) {
			return true
		}
		return allWordsCovered(aWords, bWords) && allWordsCovered(bWords, aWords)
	}

	return allWordsCovered(aWords, bWords) && allWordsCovered(bWords, aWords)
}

func wordSetEqual(a, b []string) bool {
	set := make(map[string]bool, len(b))
	for _, w := range b {
		set[w] = true
	}
	for _, w := range a {
		if !set[w] {
			return false
		}
	}
	rev := make(map[string]bool, len(a))
	for _, w := range a {
		rev[w] = true
	}
	for _, w := range b {
		if !rev[w] {
			return false
		}
	}
	return true
}

// namePartsMatch treats the first and last tokens as the two name parts
// and accepts either same-order or reversed-order correspondence, with
// exact-or-substring tolerance per token. When neither ordering holds it
// falls back to the per-word containment rule.
func namePartsMatch(a, b string) bool {
	aWords := strings.Fields(a)
	bWords := strings.Fields(b)
	if len(aWords) == 0 || len(bWords) == 0 {
		return false
	}

	aFirst, aLast := aWords[0], aWords[len(aWords)-1]
	bFirst, bLast := bWords[0], bWords[len(bWords)-1]

	sameOrder := tokenMatch(aFirst, bFirst) && tokenMatch(aLast, bLast)
	reversed := tokenMatch(aFirst, bLast) && tokenMatch(aLast, bFirst)
	if sameOrder || reversed {
		return true
	}

	return allWordsCovered(aWords, bWords) && allWordsCovered(bWords, aWords)
}

func tokenMatch(a, b string) bool {
	return a == b || strings.Contains(a, b) || strings.Contains(b, a)
}
