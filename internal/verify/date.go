package verify

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/araddon/dateparse"

	"github.com/scholarly-tools/paperverify/internal/models"
)

var ymdRe = regexp.MustCompile(`(\d{4})[-/](\d{1,2})[-/](\d{1,2})`)

// NormalizeDate renders a date string as YYYY-MM-DD. Calendar parsing is
// tried first, then a year-month-day regex; anything else comes back
// unchanged. Ambiguous numeric orderings (MM/DD vs DD/MM) inherit the
// parser's month-first reading.
func NormalizeDate(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	if t, err := dateparse.ParseAny(s); err == nil {
		return t.Format("2006-01-02")
	}

	if m := ymdRe.FindStringSubmatch(s); m != nil {
		return fmt.Sprintf("%s-%s-%s", m[1], pad2(m[2]), pad2(m[3]))
	}

	return s
}

func pad2(s string) string {
	if len(s) == 1 {
		return "0" + s
	}
	return s
}

// dateMatch compares the web date against the PDF's best date, then
// against every other candidate date the extractor recovered.
func dateMatch(webDate string, pdf models.ExtractedMetadata) bool {
	if webDate == "" {
		return false
	}

	web := NormalizeDate(webDate)
	if pdf.Date != "" && NormalizeDate(pdf.Date) == web {
		return true
	}

	for _, candidate := range candidateDates(pdf) {
		if NormalizeDate(candidate) == web {
			return true
		}
	}
	return false
}

// candidateDates builds the deduplicated fallback list from the
// role-tagged dates and the remaining extracted dates.
func candidateDates(pdf models.ExtractedMetadata) []string {
	seen := make(map[string]bool)
	var out []string

	add := func(d string) {
		if d == "" || seen[d] {
			return
		}
		seen[d] = true
		out = append(out, d)
	}

	add(pdf.Dates.Published)
	add(pdf.Dates.Accepted)
	add(pdf.Dates.Received)
	for _, d := range pdf.Dates.Other {
		add(d)
	}
	return out
}
