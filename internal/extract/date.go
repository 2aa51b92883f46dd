package extract

import (
	"regexp"
	"unicode"
	"unicode/utf8"
)

// dateKeywords are tried in this order; the first keyword whose trailing
// window contains a date wins.
var dateKeywords = []string{
	"Communicated by",
	"Received",
	"Published in",
	"Accepted",
	"Submitted",
	"Available online",
	"Published",
	"Date of publication",
	"Received date",
	"Accepted date",
	"Publication date",
}

// datePatterns are tried in this order within a window (and over the whole
// text in the fallback phase).
var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\d{4}[-/]\d{1,2}[-/]\d{1,2}`),
	regexp.MustCompile(`\d{1,2}[-/]\d{1,2}[-/]\d{4}`),
	regexp.MustCompile(`(?i)(?:january|february|march|april|may|june|july|august|september|october|november|december)\s+\d{1,2},?\s+\d{4}`),
	regexp.MustCompile(`\b(?:19|20)\d{2}\b`),
}

// dateWindow is how far past a keyword occurrence a date may appear,
// counted in runes.
const dateWindow = 100

// Date recovers the most trustworthy date from text. Phase 1 anchors the
// search on known keywords and inspects a short window after each; phase 2
// falls back to scanning the entire text. Returns "" when nothing matches.
func Date(text string) string {
	for _, keyword := range dateKeywords {
		idx := indexFold(text, keyword)
		if idx < 0 {
			continue
		}
		if d := firstDateIn(window(text, idx, dateWindow)); d != "" {
			return d
		}
	}

	return firstDateIn(text)
}

// DateNear searches the windows after each of the given keywords, in
// order, and returns the first date found. Used with the per-role keyword
// sets a strategy carries.
func DateNear(text string, keywords []string) string {
	for _, keyword := range keywords {
		idx := indexFold(text, keyword)
		if idx < 0 {
			continue
		}
		if d := firstDateIn(window(text, idx, dateWindow)); d != "" {
			return d
		}
	}
	return ""
}

// AllDates returns every distinct date-pattern match in the text, in
// pattern-priority order.
func AllDates(text string) []string {
	seen := make(map[string]bool)
	var dates []string

	for _, re := range datePatterns {
		for _, m := range re.FindAllString(text, -1) {
			if seen[m] {
				continue
			}
			seen[m] = true
			dates = append(dates, m)
		}
	}
	return dates
}

func firstDateIn(s string) string {
	for _, re := range datePatterns {
		if m := re.FindString(s); m != "" {
			return m
		}
	}
	return ""
}

// indexFold returns the byte offset of the first case-insensitive
// occurrence of substr in s, or -1. The offset always indexes s itself,
// so slicing s with it is safe for any input.
func indexFold(s, substr string) int {
	if substr == "" {
		return 0
	}
	for i := range s {
		if hasPrefixFold(s[i:], substr) {
			return i
		}
	}
	return -1
}

func hasPrefixFold(s, prefix string) bool {
	for _, pr := range prefix {
		if s == "" {
			return false
		}
		sr, size := utf8.DecodeRuneInString(s)
		if unicode.ToLower(sr) != unicode.ToLower(pr) {
			return false
		}
		s = s[size:]
	}
	return true
}

// window returns at most size runes of text starting at byte offset start.
func window(text string, start, size int) string {
	rest := text[start:]
	count := 0
	for i := range rest {
		if count == size {
			return rest[:i]
		}
		count++
	}
	return rest
}
