package strategy

import (
	"testing"

	"github.com/scholarly-tools/paperverify/internal/models"
)

func TestForKnownTypes(t *testing.T) {
	tests := []struct {
		docType      models.DocumentType
		firstSource  string
		maxOCRPages  int
		wantFocusAll bool
	}{
		{models.AcademicPaper, SourceMetadata, 2, false},
		{models.AcceptanceEmail, SourceText, 1, false},
		{models.ProofDocument, SourceOCR, 3, true},
		{models.UnknownDocument, SourceMetadata, 1, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.docType), func(t *testing.T) {
			s := For(tt.docType)
			if s.Type != tt.docType {
				t.Errorf("Type = %s, want %s", s.Type, tt.docType)
			}
			if len(s.TitlePriority) == 0 || s.TitlePriority[0] != tt.firstSource {
				t.Errorf("TitlePriority = %v, want first %s", s.TitlePriority, tt.firstSource)
			}
			if s.OCRPages != tt.maxOCRPages {
				t.Errorf("OCRPages = %d, want %d", s.OCRPages, tt.maxOCRPages)
			}
			hasAll := false
			for _, f := range s.FocusAreas {
				if f == FocusAll {
					hasAll = true
				}
			}
			if hasAll != tt.wantFocusAll {
				t.Errorf("FocusAreas = %v, focus-all = %v, want %v", s.FocusAreas, hasAll, tt.wantFocusAll)
			}
			if len(s.DateKeywords) == 0 {
				t.Error("expected date keywords")
			}
		})
	}
}

func TestForUnrecognizedTypeFallsBack(t *testing.T) {
	s := For(models.DocumentType("something_else"))
	if s.Type != models.UnknownDocument {
		t.Errorf("Type = %s, want %s", s.Type, models.UnknownDocument)
	}
}
