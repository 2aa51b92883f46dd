// Package strategy maps a document type onto the fixed extraction tuning
// used downstream: which sources to trust for each field, which date roles
// to look for, and how much of the document is worth OCRing.
package strategy

import "github.com/scholarly-tools/paperverify/internal/models"

// Field sources, in the order extraction should try them.
const (
	SourceMetadata = "metadata"
	SourceText     = "text"
	SourceOCR      = "ocr"
)

// Page focus areas for OCR and text scanning.
const (
	FocusTop    = "top"
	FocusMiddle = "middle"
	FocusAll    = "all"
)

// Date roles.
const (
	DateReceived  = "received"
	DateAccepted  = "accepted"
	DatePublished = "published"
)

// ExtractionStrategy is a fixed configuration for one document type.
// Instances are looked up by value and never mutated.
type ExtractionStrategy struct {
	Type           models.DocumentType
	TitlePriority  []string
	AuthorPriority []string
	DatePriority   []string
	DateKeywords   map[string][]string
	FocusAreas     []string
	OCRPages       int
}

var strategies = map[models.DocumentType]ExtractionStrategy{
	models.AcademicPaper: {
		Type:           models.AcademicPaper,
		TitlePriority:  []string{SourceMetadata, SourceText, SourceOCR},
		AuthorPriority: []string{SourceMetadata, SourceText, SourceOCR},
		DatePriority:   []string{DateReceived, DateAccepted, DatePublished},
		DateKeywords: map[string][]string{
			DateReceived:  {"Received", "Received date", "Submitted", "Communicated by"},
			DateAccepted:  {"Accepted", "Accepted date"},
			DatePublished: {"Published", "Published in", "Available online", "Date of publication", "Publication date"},
		},
		FocusAreas: []string{FocusTop},
		OCRPages:   2,
	},
	models.AcceptanceEmail: {
		Type:           models.AcceptanceEmail,
		TitlePriority:  []string{SourceText, SourceOCR},
		AuthorPriority: []string{SourceText, SourceOCR},
		DatePriority:   []string{DateAccepted, DatePublished},
		DateKeywords: map[string][]string{
			DateAccepted:  {"Accepted", "acceptance", "Date"},
			DatePublished: {"will be published", "Published"},
		},
		FocusAreas: []string{FocusTop, FocusMiddle},
		OCRPages:   1,
	},
	models.ProofDocument: {
		Type:           models.ProofDocument,
		TitlePriority:  []string{SourceOCR, SourceText},
		AuthorPriority: []string{SourceOCR, SourceText},
		DatePriority:   []string{DateAccepted, DatePublished},
		DateKeywords: map[string][]string{
			DateAccepted:  {"录用", "接收", "Accepted"},
			DatePublished: {"日期", "Date", "Published"},
		},
		FocusAreas: []string{FocusAll},
		OCRPages:   3,
	},
	models.UnknownDocument: {
		Type:           models.UnknownDocument,
		TitlePriority:  []string{SourceMetadata, SourceText, SourceOCR},
		AuthorPriority: []string{SourceMetadata, SourceText, SourceOCR},
		DatePriority:   []string{DateReceived, DateAccepted, DatePublished},
		DateKeywords: map[string][]string{
			DateReceived:  {"Received"},
			DateAccepted:  {"Accepted"},
			DatePublished: {"Published"},
		},
		FocusAreas: []string{FocusAll},
		OCRPages:   1,
	},
}

// For returns the extraction strategy for the given document type.
// Unrecognized types get the Unknown strategy.
func For(docType models.DocumentType) ExtractionStrategy {
	if s, ok := strategies[docType]; ok {
		return s
	}
	return strategies[models.UnknownDocument]
}
