package models

import "time"

// DocumentType identifies what kind of document a PDF appears to be.
type DocumentType string

const (
	AcademicPaper   DocumentType = "academic_paper"
	AcceptanceEmail DocumentType = "acceptance_email"
	ProofDocument   DocumentType = "proof_document"
	UnknownDocument DocumentType = "unknown"
)

// DocumentFeatures holds the raw signals collected while scoring a document.
type DocumentFeatures struct {
	HasDOI              bool `json:"has_doi"`
	HasISSN             bool `json:"has_issn"`
	HasAbstract         bool `json:"has_abstract"`
	HasEmailKeywords    bool `json:"has_email_keywords"`
	HasProofKeywords    bool `json:"has_proof_keywords"`
	HasAcademicKeywords bool `json:"has_academic_keywords"`

	AcademicScore int `json:"academic_score"`
	EmailScore    int `json:"email_score"`
	ProofScore    int `json:"proof_score"`
}

// ClassificationResult is the outcome of scoring a document's text.
type ClassificationResult struct {
	Type       DocumentType     `json:"type"`
	Confidence float64          `json:"confidence"`
	Features   DocumentFeatures `json:"features"`
}

// PDFInfo is the metadata a PDF file carries in its Info dictionary,
// plus the text of the first few pages.
type PDFInfo struct {
	Title        string `json:"title"`
	Author       string `json:"author"`
	Subject      string `json:"subject"`
	Keywords     string `json:"keywords"`
	Creator      string `json:"creator"`
	Producer     string `json:"producer"`
	CreationDate string `json:"creation_date"`
	ModDate      string `json:"mod_date"`

	Text string `json:"text"` // first pages, concatenated
}

// DateSet groups the candidate dates recovered from a document by role.
type DateSet struct {
	Received  string   `json:"received,omitempty"`
	Accepted  string   `json:"accepted,omitempty"`
	Published string   `json:"published,omitempty"`
	Other     []string `json:"other,omitempty"`
}

// ExtractedMetadata is the structured result of running extraction over
// one document. Fields default to empty rather than absent.
type ExtractedMetadata struct {
	Title         string   `json:"title"`
	FirstAuthor   string   `json:"first_author"`
	AllAuthors    []string `json:"all_authors,omitempty"`
	Date          string   `json:"date"`
	Dates         DateSet  `json:"dates"`
	FullText      string   `json:"-"`
	First500Chars string   `json:"first_500_chars,omitempty"`
}

// WebMetadata is what was captured from the article's landing page.
type WebMetadata struct {
	Title     string `json:"title"`
	Author    string `json:"author"`
	Date      string `json:"date"`
	DOI       string `json:"doi,omitempty"`
	SourceURL string `json:"source_url,omitempty"`
}

// VerificationResult reports, per field, whether the PDF metadata matches
// the web metadata. Callers treat the logical AND of all three as the
// overall pass.
type VerificationResult struct {
	TitleMatch  bool `json:"title_match"`
	AuthorMatch bool `json:"author_match"`
	DateMatch   bool `json:"date_match"`
}

// Pass reports whether every field matched.
func (r VerificationResult) Pass() bool {
	return r.TitleMatch && r.AuthorMatch && r.DateMatch
}

// VerificationRecord is one persisted verification run.
type VerificationRecord struct {
	ID          int64              `json:"id"`
	SourceURL   string             `json:"source_url"`
	PDFPath     string             `json:"pdf_path"`
	Title       string             `json:"title"`
	FirstAuthor string             `json:"first_author"`
	Date        string             `json:"date"`
	DocType     DocumentType       `json:"doc_type"`
	Confidence  float64            `json:"confidence"`
	Result      VerificationResult `json:"result"`
	VerifiedAt  time.Time          `json:"verified_at"`
}
