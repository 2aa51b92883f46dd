package pipeline

import (
	"context"
	"strings"
	"testing"

	"github.com/scholarly-tools/paperverify/internal/models"
	"github.com/scholarly-tools/paperverify/internal/strategy"
)

const paperText = `Deep Learning for Bibliographic Verification

Jane Doe, John Smith
Abstract
We study the verification of downloaded documents against their sources.
DOI: 10.1234/jbv.2023.001
Received 2023-01-15. Accepted 2023-03-02. Published 2023-05-01.
`

func fakeReader(info models.PDFInfo, err error) PDFReader {
	return PDFReaderFunc(func(string) (models.PDFInfo, error) { return info, err })
}

type fakeFetcher struct {
	web models.WebMetadata
	err error
}

func (f fakeFetcher) Fetch(context.Context, string) (models.WebMetadata, error) {
	return f.web, f.err
}

type fakeRecognizer struct {
	text  string
	calls int
	pages int
}

func (f *fakeRecognizer) RecognizePages(_ context.Context, paths []string, maxPages int, _, _ string) string {
	f.calls++
	f.pages = maxPages
	return f.text
}

type memRecorder struct {
	records []models.VerificationRecord
}

func (m *memRecorder) Save(_ context.Context, rec models.VerificationRecord) (int64, error) {
	m.records = append(m.records, rec)
	return int64(len(m.records)), nil
}

func (m *memRecorder) FindByTitle(_ context.Context, title string) ([]models.VerificationRecord, error) {
	var out []models.VerificationRecord
	for _, rec := range m.records {
		if strings.EqualFold(rec.Title, title) {
			out = append(out, rec)
		}
	}
	return out, nil
}

func TestAnalyzeAcademicPaper(t *testing.T) {
	info := models.PDFInfo{
		Title:  "Deep Learning for Bibliographic Verification",
		Author: "Jane Doe",
		Text:   paperText,
	}
	p := New(WithPDFReader(fakeReader(info, nil)))

	analysis, err := p.Analyze(context.Background(), "paper.pdf", nil)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if analysis.Classification.Type != models.AcademicPaper {
		t.Errorf("DocType = %v, want %v", analysis.Classification.Type, models.AcademicPaper)
	}
	if analysis.Metadata.Title != info.Title {
		t.Errorf("Title = %q, want metadata title", analysis.Metadata.Title)
	}
	if analysis.Metadata.Date != "2023-01-15" {
		t.Errorf("Date = %q, want received date 2023-01-15", analysis.Metadata.Date)
	}
}

func TestAnalyzeSkipsOCRForMetadataDocuments(t *testing.T) {
	rec := &fakeRecognizer{text: "should not be used"}
	info := models.PDFInfo{Title: "Some Paper", Author: "Jane Doe", Text: paperText}
	p := New(
		WithPDFReader(fakeReader(info, nil)),
		WithRecognizer(rec, "ollama", ""),
	)

	// No page images rendered, so even OCR-capable strategies stay idle.
	if _, err := p.Analyze(context.Background(), "paper.pdf", nil); err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if rec.calls != 0 {
		t.Errorf("recognizer called %d times, want 0", rec.calls)
	}
}

func TestAnalyzeRunsOCRWithPageCap(t *testing.T) {
	rec := &fakeRecognizer{text: "扫描稿\n录用 2023-03-02"}
	// Proof-like scan: no usable metadata or text layer.
	p := New(
		WithPDFReader(fakeReader(models.PDFInfo{Text: "兹证明 公章 签字"}, nil)),
		WithRecognizer(rec, "ollama", ""),
	)

	analysis, err := p.Analyze(context.Background(), "proof.pdf", []string{"p1.png", "p2.png"})
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if analysis.Classification.Type != models.ProofDocument {
		t.Fatalf("DocType = %v, want %v", analysis.Classification.Type, models.ProofDocument)
	}
	if rec.calls != 1 {
		t.Errorf("recognizer called %d times, want 1", rec.calls)
	}
	if rec.pages != strategy.For(models.ProofDocument).OCRPages {
		t.Errorf("page cap = %d, want strategy OCRPages", rec.pages)
	}
	if analysis.Metadata.Dates.Accepted != "2023-03-02" {
		t.Errorf("accepted date = %q, want OCR-sourced 2023-03-02", analysis.Metadata.Dates.Accepted)
	}
}

func TestVerifyAgainstURLRecordsAndFlagsDuplicates(t *testing.T) {
	info := models.PDFInfo{
		Title:  "Deep Learning for Bibliographic Verification",
		Author: "Jane Doe",
		Text:   paperText,
	}
	web := models.WebMetadata{
		Title:  "Deep Learning for Bibliographic Verification",
		Author: "Jane Doe",
		Date:   "2023-01-15",
	}
	recorder := &memRecorder{}
	p := New(
		WithPDFReader(fakeReader(info, nil)),
		WithFetcher(fakeFetcher{web: web}),
		WithRecorder(recorder),
	)
	ctx := context.Background()

	first, err := p.VerifyAgainstURL(ctx, "paper.pdf", "https://example.org/p/1", nil)
	if err != nil {
		t.Fatalf("VerifyAgainstURL() error = %v", err)
	}
	if !first.Result.Pass() {
		t.Errorf("first run result = %+v, want all matches", first.Result)
	}
	if len(first.Duplicates) != 0 {
		t.Errorf("first run duplicates = %d, want 0", len(first.Duplicates))
	}
	if first.RecordID == 0 {
		t.Error("first run RecordID = 0, want persisted ID")
	}

	second, err := p.VerifyAgainstURL(ctx, "paper-copy.pdf", "https://example.org/p/1", nil)
	if err != nil {
		t.Fatalf("VerifyAgainstURL() second run error = %v", err)
	}
	if len(second.Duplicates) != 1 {
		t.Fatalf("second run duplicates = %d, want 1", len(second.Duplicates))
	}
	if second.Duplicates[0].PDFPath != "paper.pdf" {
		t.Errorf("duplicate path = %q, want original download", second.Duplicates[0].PDFPath)
	}
	if second.Web.SourceURL != "https://example.org/p/1" {
		t.Errorf("SourceURL = %q not propagated", second.Web.SourceURL)
	}
}

func TestVerifyAgainstURLFetchFailure(t *testing.T) {
	p := New(
		WithPDFReader(fakeReader(models.PDFInfo{Text: paperText}, nil)),
		WithFetcher(fakeFetcher{err: context.DeadlineExceeded}),
	)

	if _, err := p.VerifyAgainstURL(context.Background(), "paper.pdf", "https://example.org", nil); err == nil {
		t.Fatal("VerifyAgainstURL() error = nil, want fetch error")
	}
}
