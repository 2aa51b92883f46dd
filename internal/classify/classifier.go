// Package classify scores document text against per-type keyword sets and
// picks a document type with a confidence value.
package classify

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/scholarly-tools/paperverify/internal/models"
)

var academicKeywords = []string{
	"doi:", "doi.org", "issn", "abstract", "introduction", "methodology",
	"conclusion", "references", "acknowledgment", "keywords",
	"corresponding author", "affiliation", "university", "institute",
}

var emailKeywords = []string{
	"subject:", "dear author", "dear dr.", "dear professor",
	"congratulations", "we are pleased", "we are delighted",
	"acceptance", "accepted", "decision", "editorial decision",
	"your manuscript", "your paper", "your submission",
	"has been accepted", "has been published", "will be published",
	"editorial manager", "editorial office", "editorial system",
	"best regards", "sincerely", "yours sincerely",
}

var proofKeywords = []string{
	"证明", "特此", "兹证明", "证明书", "证明文件", "公章", "印章",
	"签字", "签名", "日期", "单位", "机构", "学校", "大学", "学院",
	"certificate", "certification", "proof", "attestation",
	"official seal", "stamp", "signature",
}

var (
	doiRe          = regexp.MustCompile(`doi\s*[:=]\s*10\.\d+`)
	doiOrgRe       = regexp.MustCompile(`doi\.org`)
	issnRe         = regexp.MustCompile(`issn\s*[:=]\s*\d{4}[- ]?\d{3}[\dxX]`)
	abstractWordRe = regexp.MustCompile(`\babstract\b`)

	// Matched against the original-case text in multiline mode.
	emailHeaderRe = regexp.MustCompile(`(?im)^(subject|from|to)\s*:`)
)

// Metadata is the PDF-provided title/author pair folded into the scored text.
type Metadata struct {
	Title  string
	Author string
}

// Classify scores text plus PDF metadata against the three document-type
// feature sets and returns the winning type. It is deterministic and has
// no side effects.
func Classify(text string, meta Metadata) models.ClassificationResult {
	combined := strings.ToLower(text + " " + meta.Title + " " + meta.Author)

	features := models.DocumentFeatures{}

	for _, kw := range academicKeywords {
		if strings.Contains(combined, kw) {
			features.AcademicScore++
			features.HasAcademicKeywords = true
		}
	}
	if doiRe.MatchString(combined) || doiOrgRe.MatchString(combined) {
		features.AcademicScore += 3
		features.HasDOI = true
	}
	if issnRe.MatchString(combined) {
		features.AcademicScore += 2
		features.HasISSN = true
	}
	if abstractWordRe.MatchString(combined) {
		features.AcademicScore += 2
		features.HasAbstract = true
	}

	for _, kw := range emailKeywords {
		if strings.Contains(combined, kw) {
			features.EmailScore++
			features.HasEmailKeywords = true
		}
	}
	// Header lines only count when they start a line in the original text.
	if emailHeaderRe.MatchString(text) {
		features.EmailScore += 2
	}

	for _, kw := range proofKeywords {
		if strings.Contains(combined, kw) {
			features.ProofScore++
			features.HasProofKeywords = true
		}
	}

	return decide(text, features)
}

// decide applies the fixed-priority decision rule. Scores are checked
// against their own thresholds in order, never compared to each other:
// a document scoring high on both academic and proof keywords is always
// classified as a paper.
func decide(text string, features models.DocumentFeatures) models.ClassificationResult {
	result := models.ClassificationResult{
		Type:     models.UnknownDocument,
		Features: features,
	}

	switch {
	case features.AcademicScore >= 3:
		result.Type = models.AcademicPaper
		result.Confidence = confidence(features.AcademicScore)
	case features.EmailScore >= 3:
		result.Type = models.AcceptanceEmail
		result.Confidence = confidence(features.EmailScore)
	case features.ProofScore >= 2:
		result.Type = models.ProofDocument
		result.Confidence = confidence(features.ProofScore)
	case utf8.RuneCountInString(text) > 500:
		// Long text that matched nothing is still most likely a paper.
		result.Type = models.AcademicPaper
		result.Confidence = 0.3
	}

	return result
}

// confidence maps a winning score onto [0.5, 0.9].
func confidence(score int) float64 {
	c := 0.5 + float64(score)*0.1
	if c > 0.9 {
		return 0.9
	}
	return c
}
