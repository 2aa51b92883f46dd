// Package config loads application settings from a YAML file and
// PAPERVERIFY_* environment variables, with working defaults for every
// field.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all runtime settings.
type Config struct {
	// DBPath is the SQLite database storing verification history.
	DBPath string `yaml:"db_path" mapstructure:"db_path"`

	// HTTPAddr is the listen address for the API server.
	HTTPAddr string `yaml:"http_addr" mapstructure:"http_addr"`

	// FetchTimeout bounds web metadata requests.
	FetchTimeout time.Duration `yaml:"fetch_timeout" mapstructure:"fetch_timeout"`

	OCR OCRConfig `yaml:"ocr" mapstructure:"ocr"`

	Eval EvalConfig `yaml:"eval" mapstructure:"eval"`
}

// OCRConfig selects the vision model used for scanned pages.
type OCRConfig struct {
	// Provider is one of ollama, openai, or gemini.
	Provider string `yaml:"provider" mapstructure:"provider"`

	// Model overrides the provider's default model name.
	Model string `yaml:"model" mapstructure:"model"`
}

// EvalConfig holds settings for accuracy evaluation runs.
type EvalConfig struct {
	// DatasetPath is the parquet or jsonl file with labeled documents.
	DatasetPath string `yaml:"dataset_path" mapstructure:"dataset_path"`

	// ResultsDir is where evaluation reports are written.
	ResultsDir string `yaml:"results_dir" mapstructure:"results_dir"`
}

// Load reads configuration from cfgFile if given, otherwise from
// paperverify.yaml in the working directory or ~/.config/paperverify/.
// A missing config file is not an error.
func Load(cfgFile string) (Config, error) {
	v := viper.New()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("paperverify")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "paperverify"))
		}
	}

	v.SetEnvPrefix("PAPERVERIFY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("db_path", "paperverify.db")
	v.SetDefault("http_addr", ":8080")
	v.SetDefault("fetch_timeout", 30*time.Second)
	v.SetDefault("ocr.provider", "ollama")
	v.SetDefault("ocr.model", "")
	v.SetDefault("eval.dataset_path", "")
	v.SetDefault("eval.results_dir", "evals")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("reading config: %w", err)
		}
		if cfgFile != "" {
			return Config{}, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.OCR.Provider {
	case "ollama", "openai", "gemini":
	default:
		return fmt.Errorf("unsupported OCR provider: %s", c.OCR.Provider)
	}
	if c.FetchTimeout <= 0 {
		return fmt.Errorf("fetch_timeout must be positive, got %s", c.FetchTimeout)
	}
	if c.HTTPAddr == "" {
		return fmt.Errorf("http_addr must not be empty")
	}
	return nil
}
