package classify

import (
	"strings"
	"testing"

	"github.com/scholarly-tools/paperverify/internal/models"
)

func TestClassifyAcademicPaper(t *testing.T) {
	text := `Abstract
This paper presents a survey. DOI: 10.1234/example.5678
References
[1] Some citation.`

	result := Classify(text, Metadata{})

	if result.Type != models.AcademicPaper {
		t.Fatalf("expected academic paper, got %s", result.Type)
	}
	// "abstract" keyword (+1), word-boundary abstract (+2), "doi:" keyword (+1),
	// DOI regex (+3), "references" (+1) = 8
	if result.Features.AcademicScore < 3 {
		t.Errorf("academic score = %d, want >= 3", result.Features.AcademicScore)
	}
	if !result.Features.HasDOI {
		t.Error("expected HasDOI to be set")
	}
	if !result.Features.HasAbstract {
		t.Error("expected HasAbstract to be set")
	}

	want := 0.5 + float64(result.Features.AcademicScore)*0.1
	if want > 0.9 {
		want = 0.9
	}
	if result.Confidence != want {
		t.Errorf("confidence = %.2f, want %.2f", result.Confidence, want)
	}
}

func TestClassifyAcceptanceEmail(t *testing.T) {
	text := `Subject: Decision on your manuscript
Dear Dr. Smith,

Congratulations! We are pleased to inform you that your paper has been accepted.

Best regards,
Editorial Office`

	result := Classify(text, Metadata{})

	if result.Type != models.AcceptanceEmail {
		t.Fatalf("expected acceptance email, got %s", result.Type)
	}
	if !result.Features.HasEmailKeywords {
		t.Error("expected HasEmailKeywords to be set")
	}
	if result.Confidence <= 0.5 || result.Confidence > 0.9 {
		t.Errorf("confidence = %.2f, want in (0.5, 0.9]", result.Confidence)
	}
}

func TestClassifyProofDocument(t *testing.T) {
	text := "兹证明某同志的论文已被录用，特此证明。 单位（公章） 日期：2023年6月1日"

	result := Classify(text, Metadata{})

	if result.Type != models.ProofDocument {
		t.Fatalf("expected proof document, got %s", result.Type)
	}
	if result.Features.ProofScore < 2 {
		t.Errorf("proof score = %d, want >= 2", result.Features.ProofScore)
	}
}

// The decision rule is first-match-wins over an ordered list of thresholds,
// not a comparison of scores: a text passing both the academic and email
// thresholds classifies as a paper even when the email score is higher.
func TestClassifyPriorityOrder(t *testing.T) {
	text := `abstract introduction references
Subject: acceptance decision
Dear author, congratulations, we are pleased, your manuscript has been accepted.
Best regards, sincerely`

	result := Classify(text, Metadata{})

	if result.Features.AcademicScore < 3 {
		t.Fatalf("academic score = %d, want >= 3", result.Features.AcademicScore)
	}
	if result.Features.EmailScore <= result.Features.AcademicScore {
		t.Fatalf("test needs email score (%d) above academic score (%d)",
			result.Features.EmailScore, result.Features.AcademicScore)
	}
	if result.Type != models.AcademicPaper {
		t.Errorf("expected academic paper under priority order, got %s", result.Type)
	}
}

func TestClassifyLongTextFallback(t *testing.T) {
	// No keywords at all, but more than 500 characters.
	text := strings.Repeat("lorem ipsum dolor sit amet ", 25)
	if len(text) <= 500 {
		t.Fatalf("test text too short: %d", len(text))
	}

	result := Classify(text, Metadata{})

	if result.Type != models.AcademicPaper {
		t.Fatalf("expected fallback to academic paper, got %s", result.Type)
	}
	if result.Confidence != 0.3 {
		t.Errorf("confidence = %.2f, want 0.3", result.Confidence)
	}
}

func TestClassifyLongTextThresholdCountsRunes(t *testing.T) {
	// 201 CJK characters span 603 bytes but stay under the 500-character
	// fallback threshold, so the document remains unclassified.
	text := strings.Repeat("云雨风", 67)

	result := Classify(text, Metadata{})

	if result.Type != models.UnknownDocument {
		t.Fatalf("expected unknown, got %s", result.Type)
	}
	if result.Confidence != 0 {
		t.Errorf("confidence = %.2f, want 0", result.Confidence)
	}
}

func TestClassifyUnknown(t *testing.T) {
	result := Classify("short note", Metadata{})

	if result.Type != models.UnknownDocument {
		t.Fatalf("expected unknown, got %s", result.Type)
	}
	if result.Confidence != 0 {
		t.Errorf("confidence = %.2f, want 0", result.Confidence)
	}
}

func TestClassifyUsesMetadata(t *testing.T) {
	// Keywords arriving only via PDF metadata still count.
	meta := Metadata{
		Title:  "Abstract algebra methodology",
		Author: "University Institute Press",
	}

	result := Classify("", meta)

	if result.Features.AcademicScore < 3 {
		t.Errorf("academic score = %d, want >= 3", result.Features.AcademicScore)
	}
	if result.Type != models.AcademicPaper {
		t.Errorf("expected academic paper, got %s", result.Type)
	}
}

func TestEmailHeaderBonusRequiresLineStart(t *testing.T) {
	inline := Classify("we said subject: foo inline", Metadata{})
	lineStart := Classify("Subject: foo\nsomething else", Metadata{})

	// Both contain the "subject:" keyword (+1); only the second gets the
	// header-line bonus (+2).
	if diff := lineStart.Features.EmailScore - inline.Features.EmailScore; diff != 2 {
		t.Errorf("header bonus diff = %d, want 2", diff)
	}
}

func TestISSNRegex(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{name: "hyphenated", text: "ISSN: 1234-5678", want: true},
		{name: "x check digit", text: "issn=2049-363X", want: true},
		{name: "spaced", text: "ISSN: 1234 5678", want: true},
		{name: "too short", text: "ISSN: 1234-56", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Classify(tt.text, Metadata{})
			if result.Features.HasISSN != tt.want {
				t.Errorf("HasISSN = %v, want %v", result.Features.HasISSN, tt.want)
			}
		})
	}
}
