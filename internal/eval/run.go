package eval

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/scholarly-tools/paperverify/internal/classify"
	"github.com/scholarly-tools/paperverify/internal/extract"
	"github.com/scholarly-tools/paperverify/internal/models"
	"github.com/scholarly-tools/paperverify/internal/strategy"
	"github.com/scholarly-tools/paperverify/internal/verify"
)

// RecordResult is the evaluation outcome for one labeled document.
type RecordResult struct {
	ID             string
	WantType       models.DocumentType
	GotType        models.DocumentType
	TypeCorrect    bool
	TitleCorrect   bool
	AuthorCorrect  bool
	DateCorrect    bool
	GotTitle       string
	GotAuthor      string
	GotDate        string
	ProcessingTime time.Duration
}

// FieldStats counts correct extractions for one field.
type FieldStats struct {
	Correct int
	Total   int
}

// Accuracy returns the fraction of correct extractions, 0 when empty.
func (f FieldStats) Accuracy() float64 {
	if f.Total == 0 {
		return 0
	}
	return float64(f.Correct) / float64(f.Total)
}

// Summary aggregates an evaluation run.
type Summary struct {
	TotalRecords   int
	TypeAccuracy   FieldStats
	TitleAccuracy  FieldStats
	AuthorAccuracy FieldStats
	DateAccuracy   FieldStats
	Results        []RecordResult
	EvaluationDate time.Time
	DatasetPath    string
	TotalTime      time.Duration
}

// Runner scores the classification and extraction pipeline against
// labeled documents. Field comparisons reuse the fuzzy verification
// rules so the score reflects what the verifier would accept.
type Runner struct {
	engine *verify.Engine
}

// NewRunner creates a Runner using the default verification engine.
func NewRunner() *Runner {
	return &Runner{engine: verify.New(nil)}
}

// Run evaluates every record and returns the aggregated summary.
func (r *Runner) Run(ctx context.Context, records []LabeledDocument, datasetPath string) (Summary, error) {
	summary := Summary{
		TotalRecords:   len(records),
		EvaluationDate: time.Now(),
		DatasetPath:    datasetPath,
	}

	start := time.Now()
	for _, record := range records {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		summary.Results = append(summary.Results, r.evaluate(ctx, record))
	}
	summary.TotalTime = time.Since(start)

	for _, res := range summary.Results {
		countField(&summary.TypeAccuracy, res.WantType != "", res.TypeCorrect)
		countField(&summary.TitleAccuracy, res.GotTitle != "" || res.TitleCorrect, res.TitleCorrect)
		countField(&summary.AuthorAccuracy, res.GotAuthor != "" || res.AuthorCorrect, res.AuthorCorrect)
		countField(&summary.DateAccuracy, res.GotDate != "" || res.DateCorrect, res.DateCorrect)
	}
	return summary, nil
}

func (r *Runner) evaluate(ctx context.Context, record LabeledDocument) RecordResult {
	start := time.Now()

	cls := classify.Classify(record.Text, classify.Metadata{
		Title:  record.MetaTitle,
		Author: record.MetaAuthor,
	})
	strat := strategy.For(cls.Type)
	info := models.PDFInfo{
		Title:  record.MetaTitle,
		Author: record.MetaAuthor,
		Text:   record.Text,
	}
	meta := extract.Metadata(info, "", strat)

	wantType := models.DocumentType(record.WantType)

	// Judge extracted fields with the verifier's own matching rules.
	want := models.WebMetadata{
		Title:  record.WantTitle,
		Author: record.WantAuthor,
		Date:   record.WantDate,
	}
	match := r.engine.Verify(ctx, want, meta)

	return RecordResult{
		ID:             record.ID,
		WantType:       wantType,
		GotType:        cls.Type,
		TypeCorrect:    wantType == "" || cls.Type == wantType,
		TitleCorrect:   match.TitleMatch,
		AuthorCorrect:  match.AuthorMatch,
		DateCorrect:    match.DateMatch,
		GotTitle:       meta.Title,
		GotAuthor:      meta.FirstAuthor,
		GotDate:        meta.Date,
		ProcessingTime: time.Since(start),
	}
}

// countField adds one observation when the field was labeled or produced.
func countField(stats *FieldStats, observed, correct bool) {
	if !observed {
		return
	}
	stats.Total++
	if correct {
		stats.Correct++
	}
}

// PrintSummary writes a human-readable report to w.
func (s Summary) PrintSummary(w io.Writer) {
	line := strings.Repeat("=", 60)
	fmt.Fprintln(w, line)
	fmt.Fprintln(w, "PAPERVERIFY EVALUATION SUMMARY")
	fmt.Fprintln(w, line)
	fmt.Fprintf(w, "Evaluation Date: %s\n", s.EvaluationDate.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "Dataset: %s\n", s.DatasetPath)
	fmt.Fprintf(w, "Records: %d\n", s.TotalRecords)
	fmt.Fprintf(w, "Total Time: %s\n", s.TotalTime)
	fmt.Fprintln(w)
	printField(w, "Type", s.TypeAccuracy)
	printField(w, "Title", s.TitleAccuracy)
	printField(w, "Author", s.AuthorAccuracy)
	printField(w, "Date", s.DateAccuracy)
	fmt.Fprintln(w, line)
}

func printField(w io.Writer, name string, stats FieldStats) {
	fmt.Fprintf(w, "%-8s %3d/%3d (%.1f%%)\n", name+":", stats.Correct, stats.Total, stats.Accuracy()*100)
}
