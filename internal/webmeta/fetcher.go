// Package webmeta captures bibliographic metadata from an article's
// landing page. Publisher pages expose Highwire citation_* meta tags;
// OpenGraph and the page title serve as fallbacks.
package webmeta

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/scholarly-tools/paperverify/internal/models"
)

// Fetcher retrieves and parses landing pages.
type Fetcher struct {
	client *http.Client
}

// New builds a fetcher with a bounded request timeout.
func New() *Fetcher {
	return NewWithTimeout(30 * time.Second)
}

// NewWithTimeout builds a fetcher with an explicit request timeout.
func NewWithTimeout(timeout time.Duration) *Fetcher {
	return &Fetcher{client: &http.Client{Timeout: timeout}}
}

// Fetch downloads the page at url and extracts its citation metadata.
func (f *Fetcher) Fetch(ctx context.Context, url string) (models.WebMetadata, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return models.WebMetadata{}, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", "paperverify/1.0")

	resp, err := f.client.Do(req)
	if err != nil {
		return models.WebMetadata{}, fmt.Errorf("failed to fetch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.WebMetadata{}, fmt.Errorf("failed to fetch page: HTTP %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return models.WebMetadata{}, fmt.Errorf("failed to parse page: %w", err)
	}

	meta := Parse(doc)
	meta.SourceURL = url

	slog.Info("Captured web metadata", "url", url, "title", meta.Title, "author", meta.Author)
	return meta, nil
}

// Parse extracts citation metadata from a parsed document.
func Parse(doc *goquery.Document) models.WebMetadata {
	meta := models.WebMetadata{
		Title:  metaContent(doc, "citation_title"),
		Author: metaContent(doc, "citation_author"),
		DOI:    metaContent(doc, "citation_doi"),
	}

	meta.Date = firstNonEmpty(
		metaContent(doc, "citation_publication_date"),
		metaContent(doc, "citation_date"),
		metaContent(doc, "citation_online_date"),
	)

	if meta.Title == "" {
		meta.Title = propertyContent(doc, "og:title")
	}
	if meta.Title == "" {
		meta.Title = strings.TrimSpace(doc.Find("title").First().Text())
	}

	return meta
}

func metaContent(doc *goquery.Document, name string) string {
	sel := fmt.Sprintf(`meta[name=%q]`, name)
	return strings.TrimSpace(doc.Find(sel).First().AttrOr("content", ""))
}

func propertyContent(doc *goquery.Document, property string) string {
	sel := fmt.Sprintf(`meta[property=%q]`, property)
	return strings.TrimSpace(doc.Find(sel).First().AttrOr("content", ""))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
