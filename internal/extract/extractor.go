// Package extract recovers bibliographic fields from noisy document text
// using keyword-anchored regex search. It produces best-effort candidates,
// never errors: a miss is an empty field.
package extract

import (
	"strings"

	"github.com/scholarly-tools/paperverify/internal/models"
	"github.com/scholarly-tools/paperverify/internal/strategy"
)

const first500 = 500

// Metadata runs the full field extraction for one document under the
// given strategy, combining PDF metadata, document text, and OCR text
// according to the strategy's source priorities.
func Metadata(info models.PDFInfo, ocrText string, strat strategy.ExtractionStrategy) models.ExtractedMetadata {
	text := info.Text
	if ocrText != "" {
		text = text + "\n" + ocrText
	}

	meta := models.ExtractedMetadata{
		Title:       fieldBySource(strat.TitlePriority, info.Title, titleFromText(info.Text), titleFromText(ocrText)),
		FirstAuthor: fieldBySource(strat.AuthorPriority, firstSegment(info.Author), FirstAuthor(info.Text, ""), FirstAuthor(ocrText, "")),
		AllAuthors:  Authors(info.Author),
		FullText:    text,
	}

	meta.Dates = datesByRole(text, strat)
	meta.Date = primaryDate(meta.Dates, strat)
	if meta.Date == "" {
		meta.Date = Date(text)
	}

	meta.First500Chars = head(text, first500)

	return meta
}

// datesByRole fills the role-tagged date slots using the strategy's
// keyword sets, and collects the remaining pattern matches as extras.
func datesByRole(text string, strat strategy.ExtractionStrategy) models.DateSet {
	var set models.DateSet

	for _, role := range strat.DatePriority {
		d := DateNear(text, strat.DateKeywords[role])
		if d == "" {
			continue
		}
		switch role {
		case strategy.DateReceived:
			set.Received = d
		case strategy.DateAccepted:
			set.Accepted = d
		case strategy.DatePublished:
			set.Published = d
		}
	}

	for _, d := range AllDates(text) {
		if d == set.Received || d == set.Accepted || d == set.Published {
			continue
		}
		set.Other = append(set.Other, d)
	}

	return set
}

func primaryDate(set models.DateSet, strat strategy.ExtractionStrategy) string {
	for _, role := range strat.DatePriority {
		switch role {
		case strategy.DateReceived:
			if set.Received != "" {
				return set.Received
			}
		case strategy.DateAccepted:
			if set.Accepted != "" {
				return set.Accepted
			}
		case strategy.DatePublished:
			if set.Published != "" {
				return set.Published
			}
		}
	}
	return ""
}

// fieldBySource returns the first non-empty candidate in the strategy's
// source order.
func fieldBySource(priority []string, metadata, text, ocr string) string {
	for _, source := range priority {
		var v string
		switch source {
		case strategy.SourceMetadata:
			v = metadata
		case strategy.SourceText:
			v = text
		case strategy.SourceOCR:
			v = ocr
		}
		if v != "" {
			return v
		}
	}
	return ""
}

// titleFromText takes the first plausible title line: non-empty, not a
// header keyword, and of reasonable length.
func titleFromText(text string) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if len(line) < 10 || len(line) > 300 {
			continue
		}
		lower := strings.ToLower(line)
		if strings.HasPrefix(lower, "subject:") || strings.HasPrefix(lower, "from:") || strings.HasPrefix(lower, "to:") {
			continue
		}
		return line
	}
	return ""
}

func head(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
