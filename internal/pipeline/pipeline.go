// Package pipeline wires PDF reading, classification, extraction,
// optional OCR, and verification into one flow.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/scholarly-tools/paperverify/internal/classify"
	"github.com/scholarly-tools/paperverify/internal/extract"
	"github.com/scholarly-tools/paperverify/internal/models"
	"github.com/scholarly-tools/paperverify/internal/pdfinfo"
	"github.com/scholarly-tools/paperverify/internal/strategy"
	"github.com/scholarly-tools/paperverify/internal/verify"
)

// PDFReader reads metadata and leading text from a PDF file.
type PDFReader interface {
	Read(path string) (models.PDFInfo, error)
}

// MetadataFetcher retrieves bibliographic metadata for a web page.
type MetadataFetcher interface {
	Fetch(ctx context.Context, url string) (models.WebMetadata, error)
}

// Recognizer turns page images into text.
type Recognizer interface {
	RecognizePages(ctx context.Context, imagePaths []string, maxPages int, provider, model string) string
}

// Recorder persists verification runs and answers duplicate lookups.
type Recorder interface {
	Save(ctx context.Context, rec models.VerificationRecord) (int64, error)
	FindByTitle(ctx context.Context, title string) ([]models.VerificationRecord, error)
}

// PDFReaderFunc adapts a plain function to the PDFReader interface.
type PDFReaderFunc func(path string) (models.PDFInfo, error)

func (f PDFReaderFunc) Read(path string) (models.PDFInfo, error) { return f(path) }

// Pipeline runs documents through classification, extraction, and
// verification.
type Pipeline struct {
	pdf         PDFReader
	web         MetadataFetcher
	recognizer  Recognizer
	engine      *verify.Engine
	recorder    Recorder
	ocrProvider string
	ocrModel    string
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithPDFReader replaces the default file-based PDF reader.
func WithPDFReader(r PDFReader) Option {
	return func(p *Pipeline) { p.pdf = r }
}

// WithFetcher replaces the default web metadata fetcher.
func WithFetcher(f MetadataFetcher) Option {
	return func(p *Pipeline) { p.web = f }
}

// WithRecognizer enables OCR for strategies that ask for it.
func WithRecognizer(r Recognizer, provider, model string) Option {
	return func(p *Pipeline) {
		p.recognizer = r
		p.ocrProvider = provider
		p.ocrModel = model
	}
}

// WithRecorder enables history persistence and duplicate detection.
func WithRecorder(r Recorder) Option {
	return func(p *Pipeline) { p.recorder = r }
}

// WithEngine replaces the default verification engine.
func WithEngine(e *verify.Engine) Option {
	return func(p *Pipeline) { p.engine = e }
}

// New builds a pipeline. Without options it reads PDFs from disk,
// verifies with the default transliteration chain, and skips OCR and
// persistence.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		pdf:    PDFReaderFunc(pdfinfo.Read),
		engine: verify.New(nil),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Analysis holds everything learned about one document.
type Analysis struct {
	Classification models.ClassificationResult `json:"classification"`
	Strategy       strategy.ExtractionStrategy `json:"strategy"`
	Metadata       models.ExtractedMetadata    `json:"metadata"`
}

// Analyze reads a PDF, classifies it, and extracts metadata with the
// strategy chosen for its type. pageImages are pre-rendered page images
// used only when the strategy includes OCR and a recognizer is
// configured.
func (p *Pipeline) Analyze(ctx context.Context, pdfPath string, pageImages []string) (Analysis, error) {
	info, err := p.pdf.Read(pdfPath)
	if err != nil {
		return Analysis{}, fmt.Errorf("reading PDF %s: %w", pdfPath, err)
	}

	cls := classify.Classify(info.Text, classify.Metadata{Title: info.Title, Author: info.Author})
	strat := strategy.For(cls.Type)
	slog.Info("Classified document", "path", pdfPath, "type", cls.Type, "confidence", cls.Confidence)

	ocrText := ""
	if p.recognizer != nil && len(pageImages) > 0 && wantsOCR(strat) {
		ocrText = p.recognizer.RecognizePages(ctx, pageImages, strat.OCRPages, p.ocrProvider, p.ocrModel)
	}

	meta := extract.Metadata(info, ocrText, strat)
	return Analysis{Classification: cls, Strategy: strat, Metadata: meta}, nil
}

// Report is the outcome of verifying a downloaded PDF against its
// source page.
type Report struct {
	Analysis   Analysis                    `json:"analysis"`
	Web        models.WebMetadata          `json:"web"`
	Result     models.VerificationResult   `json:"result"`
	Duplicates []models.VerificationRecord `json:"duplicates,omitempty"`
	RecordID   int64                       `json:"record_id,omitempty"`
}

// VerifyAgainstURL fetches metadata for sourceURL, analyzes the PDF, and
// compares the two. When a recorder is configured the run is persisted
// and earlier runs with the same title are reported as duplicates.
func (p *Pipeline) VerifyAgainstURL(ctx context.Context, pdfPath, sourceURL string, pageImages []string) (Report, error) {
	if p.web == nil {
		return Report{}, fmt.Errorf("no metadata fetcher configured")
	}

	web, err := p.web.Fetch(ctx, sourceURL)
	if err != nil {
		return Report{}, fmt.Errorf("fetching metadata for %s: %w", sourceURL, err)
	}
	web.SourceURL = sourceURL

	analysis, err := p.Analyze(ctx, pdfPath, pageImages)
	if err != nil {
		return Report{}, err
	}

	return p.verifyAnalysis(ctx, pdfPath, web, analysis)
}

// VerifyAgainstMetadata compares a PDF against already-known web
// metadata, for callers that scraped the page themselves.
func (p *Pipeline) VerifyAgainstMetadata(ctx context.Context, pdfPath string, web models.WebMetadata, pageImages []string) (Report, error) {
	analysis, err := p.Analyze(ctx, pdfPath, pageImages)
	if err != nil {
		return Report{}, err
	}
	return p.verifyAnalysis(ctx, pdfPath, web, analysis)
}

func (p *Pipeline) verifyAnalysis(ctx context.Context, pdfPath string, web models.WebMetadata, analysis Analysis) (Report, error) {
	result := p.engine.Verify(ctx, web, analysis.Metadata)
	report := Report{Analysis: analysis, Web: web, Result: result}

	if p.recorder == nil {
		return report, nil
	}

	dups, err := p.recorder.FindByTitle(ctx, analysis.Metadata.Title)
	if err != nil {
		slog.Warn("Duplicate lookup failed", "error", err)
	} else {
		report.Duplicates = dups
	}

	id, err := p.recorder.Save(ctx, models.VerificationRecord{
		SourceURL:   web.SourceURL,
		PDFPath:     pdfPath,
		Title:       analysis.Metadata.Title,
		FirstAuthor: analysis.Metadata.FirstAuthor,
		Date:        analysis.Metadata.Date,
		DocType:     analysis.Classification.Type,
		Confidence:  analysis.Classification.Confidence,
		Result:      result,
		VerifiedAt:  time.Now().UTC(),
	})
	if err != nil {
		slog.Warn("Saving verification record failed", "error", err)
		return report, nil
	}
	report.RecordID = id
	return report, nil
}

func wantsOCR(strat strategy.ExtractionStrategy) bool {
	for _, priority := range [][]string{strat.TitlePriority, strat.AuthorPriority} {
		for _, source := range priority {
			if source == strategy.SourceOCR {
				return true
			}
		}
	}
	return false
}
