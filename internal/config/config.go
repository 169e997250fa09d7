package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"docqa/internal/answer"
	"docqa/internal/chunker"
	"docqa/internal/domain"
	"docqa/internal/tfidf"
)

// Environment variables read by LoadDefault and ApplyEnv.
const (
	EnvConfigPath = "DOCQA_CONFIG"
	EnvLogLevel   = "DOCQA_LOG_LEVEL"
)

// ChunkerConfig configures how documents are split into chunks.
type ChunkerConfig struct {
	ChunkSize int `yaml:"chunk_size"`
	Overlap   int `yaml:"overlap"`
}

// IndexConfig configures the TF-IDF index build.
type IndexConfig struct {
	VocabularyCap int `yaml:"vocabulary_cap"`
	// Workers is the build parallelism; 0 means GOMAXPROCS.
	Workers                 int      `yaml:"workers"`
	Stopwords               []string `yaml:"stopwords,omitempty"`
	DisableDefaultStopwords bool     `yaml:"disable_default_stopwords"`
}

// RetrievalConfig configures ranking.
type RetrievalConfig struct {
	TopK int `yaml:"top_k"`
}

// AnswerConfig holds the two independent answer budgets, in characters.
type AnswerConfig struct {
	ConcatLimit  int `yaml:"concat_limit"`
	SnippetLimit int `yaml:"snippet_limit"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Chunker   ChunkerConfig   `yaml:"chunker"`
	Index     IndexConfig     `yaml:"index"`
	Retrieval RetrievalConfig `yaml:"retrieval"`
	Answer    AnswerConfig    `yaml:"answer"`
	Log       LogConfig       `yaml:"log"`
}

// Default returns the built-in configuration.
func Default() *AppConfig {
	return &AppConfig{
		Chunker:   ChunkerConfig{ChunkSize: chunker.DefaultChunkSize, Overlap: chunker.DefaultOverlap},
		Index:     IndexConfig{VocabularyCap: tfidf.DefaultVocabularyCap},
		Retrieval: RetrievalConfig{TopK: 6},
		Answer:    AnswerConfig{ConcatLimit: answer.DefaultConcatLimit, SnippetLimit: answer.DefaultSnippetLimit},
		Log:       LogConfig{Level: "info", Format: "text"},
	}
}

// Validate reports every invalid setting. Values are never adjusted.
func (c *AppConfig) Validate() error {
	errs := []error{
		domain.ValidateWindow(c.Chunker.ChunkSize, c.Chunker.Overlap),
		domain.RequirePositive("vocabulary_cap", c.Index.VocabularyCap),
		domain.RequirePositive("top_k", c.Retrieval.TopK),
		domain.RequirePositive("concat_limit", c.Answer.ConcatLimit),
		domain.RequirePositive("snippet_limit", c.Answer.SnippetLimit),
	}
	if c.Index.Workers < 0 {
		errs = append(errs, &domain.ConfigError{Field: "workers", Value: c.Index.Workers, Reason: "must not be negative"})
	}
	switch c.Log.Format {
	case "", "text", "json":
	default:
		errs = append(errs, fmt.Errorf("%w: unknown log format %q", domain.ErrInvalidConfig, c.Log.Format))
	}
	return errors.Join(errs...)
}

// StopwordList returns the effective stopwords.
func (c *AppConfig) StopwordList() []string {
	var words []string
	if !c.Index.DisableDefaultStopwords {
		words = tfidf.DefaultStopwords()
	}
	return append(words, c.Index.Stopwords...)
}

// Load reads a config from path on top of the defaults. Keys missing from the
// file keep their default; explicit values, including zero, are kept as is.
// If the file does not exist, the defaults are returned.
func Load(path string) (*AppConfig, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}
	if err := decode(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func decode(data []byte, cfg *AppConfig) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	return dec.Decode(cfg)
}

// LoadDefault tries $DOCQA_CONFIG, then ./config.yaml, then ~/.config/docqa/config.yaml.
// If none exists, it writes defaults to ~/.config/docqa/config.yaml and returns them.
func LoadDefault() (*AppConfig, string, error) {
	if p := os.Getenv(EnvConfigPath); p != "" {
		cfg, err := Load(p)
		return cfg, p, err
	}
	cwdPath := "config.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := defaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	cfg := Default()
	if err := Save(userPath, cfg); err != nil {
		return nil, "", err
	}
	return cfg, userPath, nil
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// ApplyEnv overrides settings from the environment.
func ApplyEnv(cfg *AppConfig) {
	if lvl := os.Getenv(EnvLogLevel); lvl != "" {
		cfg.Log.Level = lvl
	}
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "docqa", "config.yaml"), nil
}
