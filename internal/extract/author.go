package extract

import (
	"regexp"
	"strings"
)

// authorPatterns are tried in order against the document text when PDF
// metadata carries no author. Each captures the author name in group 1.
var authorPatterns = []*regexp.Regexp{
	// Western form: First M. Last or First Last. Stays within one line so
	// unrelated capitalized words on adjacent lines never join up.
	regexp.MustCompile(`\b([A-Z][a-z]+(?:[ \t]+[A-Z]\.)?[ \t]+[A-Z][a-z]+)\b`),
	// Surname-first initials form: Last, F. or Last, F. M.
	regexp.MustCompile(`\b([A-Z][a-z]+,\s*[A-Z]\.(?:\s*[A-Z]\.)?)`),
	// Labelled lists.
	regexp.MustCompile(`(?i)\bauthors?\s*[:：]\s*([^,;\n]+)`),
	regexp.MustCompile(`(?i)\bby\s*[:：]\s*([^,;\n]+)`),
}

// FirstAuthor recovers the first author of a document. The PDF metadata
// author field wins when present; otherwise ordered text patterns are
// tried. Returns "" when nothing matches.
func FirstAuthor(text, metadataAuthor string) string {
	if metadataAuthor != "" {
		return firstSegment(metadataAuthor)
	}

	for _, re := range authorPatterns {
		if m := re.FindStringSubmatch(text); len(m) > 1 {
			return strings.TrimSpace(m[1])
		}
	}
	return ""
}

// Authors splits a metadata author field into individual names.
func Authors(metadataAuthor string) []string {
	if metadataAuthor == "" {
		return nil
	}

	var names []string
	for _, part := range splitAuthors(metadataAuthor) {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			names = append(names, trimmed)
		}
	}
	return names
}

func firstSegment(s string) string {
	parts := splitAuthors(s)
	if len(parts) == 0 {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(parts[0])
}

func splitAuthors(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ';'
	})
}
