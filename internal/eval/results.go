package eval

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// resultConfig is the configuration section of the results YAML.
type resultConfig struct {
	DatasetPath string `yaml:"datasetpath"`
	SampleSize  int    `yaml:"samplesize"`
	Timestamp   string `yaml:"timestamp"`
}

// resultRecord is one per-document entry in the results YAML.
type resultRecord struct {
	Identifier    string `yaml:"identifier"`
	WantType      string `yaml:"wanttype,omitempty"`
	GotType       string `yaml:"gottype"`
	TypeCorrect   bool   `yaml:"typecorrect"`
	TitleCorrect  bool   `yaml:"titlecorrect"`
	AuthorCorrect bool   `yaml:"authorcorrect"`
	DateCorrect   bool   `yaml:"datecorrect"`
	GotTitle      string `yaml:"gottitle,omitempty"`
	GotAuthor     string `yaml:"gotauthor,omitempty"`
	GotDate       string `yaml:"gotdate,omitempty"`
}

// resultSpec is the complete results document.
type resultSpec struct {
	Config   resultConfig   `yaml:"config"`
	Accuracy map[string]any `yaml:"accuracy"`
	Results  []resultRecord `yaml:"results"`
}

// SaveToYAML writes the summary to a timestamped YAML file under
// resultsDir and returns the file path.
func SaveToYAML(summary Summary, resultsDir string) (string, error) {
	if resultsDir == "" {
		resultsDir = "evals"
	}
	if err := os.MkdirAll(resultsDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create results directory: %w", err)
	}

	timestamp := time.Now().Format("2006-01-02_15-04-05")
	spec := resultSpec{
		Config: resultConfig{
			DatasetPath: summary.DatasetPath,
			SampleSize:  summary.TotalRecords,
			Timestamp:   timestamp,
		},
		Accuracy: map[string]any{
			"type":   summary.TypeAccuracy.Accuracy(),
			"title":  summary.TitleAccuracy.Accuracy(),
			"author": summary.AuthorAccuracy.Accuracy(),
			"date":   summary.DateAccuracy.Accuracy(),
		},
		Results: make([]resultRecord, 0, len(summary.Results)),
	}

	for _, r := range summary.Results {
		spec.Results = append(spec.Results, resultRecord{
			Identifier:    r.ID,
			WantType:      string(r.WantType),
			GotType:       string(r.GotType),
			TypeCorrect:   r.TypeCorrect,
			TitleCorrect:  r.TitleCorrect,
			AuthorCorrect: r.AuthorCorrect,
			DateCorrect:   r.DateCorrect,
			GotTitle:      r.GotTitle,
			GotAuthor:     r.GotAuthor,
			GotDate:       r.GotDate,
		})
	}

	data, err := yaml.Marshal(&spec)
	if err != nil {
		return "", fmt.Errorf("failed to marshal YAML: %w", err)
	}

	filename := filepath.Join(resultsDir, fmt.Sprintf("paperverify-%s.yaml", timestamp))
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write YAML file: %w", err)
	}
	return filename, nil
}
