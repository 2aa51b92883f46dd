// Package eval measures classification and extraction accuracy against a
// labeled document dataset.
package eval

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/parquet-go/parquet-go"
)

// LabeledDocument is one ground-truth record: the document text plus the
// fields a correct run should produce.
type LabeledDocument struct {
	ID         string `json:"id" parquet:"id"`
	Text       string `json:"text" parquet:"text"`
	MetaTitle  string `json:"meta_title" parquet:"meta_title"`
	MetaAuthor string `json:"meta_author" parquet:"meta_author"`
	WantType   string `json:"want_type" parquet:"want_type"`
	WantTitle  string `json:"want_title" parquet:"want_title"`
	WantAuthor string `json:"want_author" parquet:"want_author"`
	WantDate   string `json:"want_date" parquet:"want_date"`
}

// Loader reads labeled documents from a parquet or JSONL file.
type Loader struct {
	datasetPath string
}

// NewLoader creates a loader for the given dataset file.
func NewLoader(datasetPath string) *Loader {
	return &Loader{datasetPath: datasetPath}
}

// Load reads every record. The format is chosen by file extension.
func (l *Loader) Load() ([]LabeledDocument, error) {
	return l.LoadSample(0)
}

// LoadSample reads up to limit records; limit <= 0 means all.
func (l *Loader) LoadSample(limit int) ([]LabeledDocument, error) {
	ext := strings.ToLower(filepath.Ext(l.datasetPath))
	switch ext {
	case ".parquet":
		return l.loadParquet(limit)
	case ".jsonl", ".json":
		return l.loadJSONL(limit)
	default:
		return nil, fmt.Errorf("unsupported dataset format: %s (supported: .parquet, .jsonl)", ext)
	}
}

func (l *Loader) loadJSONL(limit int) ([]LabeledDocument, error) {
	file, err := os.Open(l.datasetPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset file: %w", err)
	}
	defer file.Close()

	var records []LabeledDocument
	scanner := bufio.NewScanner(file)

	// Large documents can push a single line past the default limit.
	const maxCapacity = 10 * 1024 * 1024
	buf := make([]byte, maxCapacity)
	scanner.Buffer(buf, maxCapacity)

	lineNum := 0
	for scanner.Scan() {
		if limit > 0 && len(records) >= limit {
			break
		}
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var record LabeledDocument
		if err := json.Unmarshal(line, &record); err != nil {
			return nil, fmt.Errorf("failed to parse JSON at line %d: %w", lineNum, err)
		}
		records = append(records, record)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading dataset: %w", err)
	}

	slog.Debug("Finished reading JSONL dataset", "total_records", len(records))
	return records, nil
}

func (l *Loader) loadParquet(limit int) ([]LabeledDocument, error) {
	file, err := os.Open(l.datasetPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	pf, err := parquet.OpenFile(file, info.Size())
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet: %w", err)
	}

	reader := parquet.NewGenericReader[LabeledDocument](pf)
	defer reader.Close()

	var records []LabeledDocument
	rows := make([]LabeledDocument, 128)

	for limit <= 0 || len(records) < limit {
		n, err := reader.Read(rows)
		if n > 0 {
			if limit > 0 && len(records)+n > limit {
				n = limit - len(records)
			}
			records = append(records, rows[:n]...)
		}
		if err != nil {
			break
		}
	}

	slog.Debug("Finished reading parquet dataset", "total_records", len(records))
	return records, nil
}
