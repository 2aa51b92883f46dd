// Package store persists verification runs in a SQLite database so that
// repeated downloads of the same paper can be flagged as duplicates.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/scholarly-tools/paperverify/internal/models"
)

// Store manages the verification history database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database at dbPath, creating the
// parent directory and schema as needed.
func Open(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS verifications (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			source_url TEXT,
			pdf_path TEXT,
			title TEXT,
			title_key TEXT,
			first_author TEXT,
			date TEXT,
			doc_type TEXT,
			confidence REAL,
			title_match INTEGER,
			author_match INTEGER,
			date_match INTEGER,
			verified_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_verifications_title_key ON verifications(title_key)`,
		`CREATE INDEX IF NOT EXISTS idx_verifications_source_url ON verifications(source_url)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Save inserts a verification record and returns its row ID.
func (s *Store) Save(ctx context.Context, rec models.VerificationRecord) (int64, error) {
	verifiedAt := rec.VerifiedAt
	if verifiedAt.IsZero() {
		verifiedAt = time.Now().UTC()
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO verifications
			(source_url, pdf_path, title, title_key, first_author, date,
			 doc_type, confidence, title_match, author_match, date_match, verified_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.SourceURL, rec.PDFPath, rec.Title, TitleKey(rec.Title),
		rec.FirstAuthor, rec.Date, string(rec.DocType), rec.Confidence,
		boolInt(rec.Result.TitleMatch), boolInt(rec.Result.AuthorMatch), boolInt(rec.Result.DateMatch),
		verifiedAt.Format(time.RFC3339),
	)
	if err != nil {
		return 0, fmt.Errorf("inserting verification: %w", err)
	}
	return res.LastInsertId()
}

// FindByTitle returns earlier records whose normalized title matches the
// given title. An empty title matches nothing.
func (s *Store) FindByTitle(ctx context.Context, title string) ([]models.VerificationRecord, error) {
	key := TitleKey(title)
	if key == "" {
		return nil, nil
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, source_url, pdf_path, title, first_author, date,
		        doc_type, confidence, title_match, author_match, date_match, verified_at
		 FROM verifications WHERE title_key = ? ORDER BY id`,
		key,
	)
	if err != nil {
		return nil, fmt.Errorf("querying by title: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

// Recent returns the most recent records, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]models.VerificationRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, source_url, pdf_path, title, first_author, date,
		        doc_type, confidence, title_match, author_match, date_match, verified_at
		 FROM verifications ORDER BY id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("querying recent verifications: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

func scanRecords(rows *sql.Rows) ([]models.VerificationRecord, error) {
	var records []models.VerificationRecord
	for rows.Next() {
		var (
			rec        models.VerificationRecord
			docType    string
			tm, am, dm int
			verifiedAt string
		)
		if err := rows.Scan(
			&rec.ID, &rec.SourceURL, &rec.PDFPath, &rec.Title, &rec.FirstAuthor, &rec.Date,
			&docType, &rec.Confidence, &tm, &am, &dm, &verifiedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning verification row: %w", err)
		}
		rec.DocType = models.DocumentType(docType)
		rec.Result = models.VerificationResult{
			TitleMatch:  tm != 0,
			AuthorMatch: am != 0,
			DateMatch:   dm != 0,
		}
		if t, err := time.Parse(time.RFC3339, verifiedAt); err == nil {
			rec.VerifiedAt = t
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

var titleKeyRe = regexp.MustCompile(`[^a-z0-9\p{Han}]+`)

// TitleKey normalizes a title for duplicate lookups. Case, punctuation
// and whitespace differences collapse to the same key.
func TitleKey(title string) string {
	key := strings.ToLower(title)
	return strings.TrimSpace(titleKeyRe.ReplaceAllString(key, " "))
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
