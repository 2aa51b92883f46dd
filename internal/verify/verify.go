// Package verify decides whether PDF-extracted metadata and web-captured
// metadata describe the same document. Each field is scored by several
// independent predicates combined by OR, so one noisy heuristic never
// vetoes a legitimate match.
package verify

import (
	"context"

	"github.com/scholarly-tools/paperverify/internal/models"
	"github.com/scholarly-tools/paperverify/internal/translit"
)

// Transliterator is the slice of the translit chain the engine needs.
type Transliterator interface {
	Transliterate(ctx context.Context, s string) (string, error)
}

// Engine compares extracted metadata pairs.
type Engine struct {
	translit Transliterator
}

// New builds an engine. A nil transliterator gets the default pinyin
// chain.
func New(t Transliterator) *Engine {
	if t == nil {
		t = translit.Default()
	}
	return &Engine{translit: t}
}

// Verify compares the PDF metadata against the web metadata field by
// field. Fields are evaluated independently; a failed title never
// short-circuits the author or date checks.
func (e *Engine) Verify(ctx context.Context, web models.WebMetadata, pdf models.ExtractedMetadata) models.VerificationResult {
	return models.VerificationResult{
		TitleMatch:  TitleMatch(web.Title, pdf.Title),
		AuthorMatch: e.authorMatch(ctx, web.Author, pdf.FirstAuthor),
		DateMatch:   dateMatch(web.Date, pdf),
	}
}
