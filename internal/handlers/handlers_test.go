package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/scholarly-tools/paperverify/internal/models"
	"github.com/scholarly-tools/paperverify/internal/pipeline"
)

const paperText = `Deep Learning for Bibliographic Verification

Jane Doe, John Smith
Abstract
We study verification of downloaded documents.
DOI: 10.1234/jbv.2023.001
Received 2023-01-15.
`

func newTestMux(t *testing.T) *http.ServeMux {
	t.Helper()
	info := models.PDFInfo{
		Title:  "Deep Learning for Bibliographic Verification",
		Author: "Jane Doe",
		Text:   paperText,
	}
	p := pipeline.New(pipeline.WithPDFReader(
		pipeline.PDFReaderFunc(func(string) (models.PDFInfo, error) { return info, nil }),
	))
	mux := http.NewServeMux()
	New(p, nil).Register(mux)
	return mux
}

func TestHealthcheck(t *testing.T) {
	mux := newTestMux(t)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthcheck", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"status":"ok"`) {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestClassifyEndpoint(t *testing.T) {
	mux := newTestMux(t)
	body := strings.NewReader(`{"text":"Subject: your manuscript\nDear Author, congratulations, your paper has been accepted."}`)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/classify", body))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var result models.ClassificationResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if result.Type != models.AcceptanceEmail {
		t.Errorf("Type = %v, want %v", result.Type, models.AcceptanceEmail)
	}
}

func TestClassifyRejectsEmptyBody(t *testing.T) {
	mux := newTestMux(t)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/classify", strings.NewReader(`{}`)))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestClassifyRejectsGet(t *testing.T) {
	mux := newTestMux(t)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/classify", nil))

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
}

func TestVerifyEndpointWithInlineMetadata(t *testing.T) {
	mux := newTestMux(t)
	body := strings.NewReader(`{
		"pdf_path": "paper.pdf",
		"web": {
			"title": "Deep Learning for Bibliographic Verification",
			"author": "Jane Doe",
			"date": "2023-01-15"
		}
	}`)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/verify", body))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var report pipeline.Report
	if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if !report.Result.Pass() {
		t.Errorf("result = %+v, want all matches", report.Result)
	}
}

func TestVerifyRequiresSource(t *testing.T) {
	mux := newTestMux(t)
	body := strings.NewReader(`{"pdf_path": "paper.pdf"}`)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/verify", body))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestHistoryDisabled(t *testing.T) {
	mux := newTestMux(t)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/history", nil))

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}
