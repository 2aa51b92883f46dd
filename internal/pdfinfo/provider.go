// Package pdfinfo reads the Info dictionary and leading page text of a PDF
// file. It is the PDF side of the verification pipeline.
package pdfinfo

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/scholarly-tools/paperverify/internal/models"
)

// maxTextPages bounds how many leading pages contribute text.
const maxTextPages = 3

// Read opens a PDF and returns its Info-dictionary metadata plus the text
// of the first pages. A file that cannot be opened or parsed is an error;
// a page that fails to yield text is skipped.
func Read(path string) (models.PDFInfo, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return models.PDFInfo{}, fmt.Errorf("failed to open pdf: %w", err)
	}
	defer f.Close()

	info := readInfoDict(r)
	info.Text = readLeadingText(r)

	return info, nil
}

func readInfoDict(r *pdf.Reader) models.PDFInfo {
	dict := r.Trailer().Key("Info")
	if dict.IsNull() {
		return models.PDFInfo{}
	}

	return models.PDFInfo{
		Title:        infoString(dict, "Title"),
		Author:       infoString(dict, "Author"),
		Subject:      infoString(dict, "Subject"),
		Keywords:     infoString(dict, "Keywords"),
		Creator:      infoString(dict, "Creator"),
		Producer:     infoString(dict, "Producer"),
		CreationDate: infoString(dict, "CreationDate"),
		ModDate:      infoString(dict, "ModDate"),
	}
}

func infoString(dict pdf.Value, key string) string {
	v := dict.Key(key)
	if v.Kind() != pdf.String {
		return ""
	}
	return strings.TrimSpace(v.Text())
}

func readLeadingText(r *pdf.Reader) string {
	var sb strings.Builder

	pages := r.NumPage()
	if pages > maxTextPages {
		pages = maxTextPages
	}

	for i := 1; i <= pages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			slog.Warn("Failed to read pdf page text", "page", i, "error", err)
			continue
		}

		content = strings.ReplaceAll(content, " ", " ")
		if sb.Len() > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(strings.TrimSpace(content))
	}

	return sb.String()
}

// Head returns the first n runes of the document text.
func Head(info models.PDFInfo, n int) string {
	runes := []rune(info.Text)
	if len(runes) <= n {
		return info.Text
	}
	return string(runes[:n])
}
