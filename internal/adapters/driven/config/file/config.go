// Package file loads pipeline configuration from TOML files.
// CLI flags override file values; the merged result parameterises the
// stage chain. No flag or config key is read inside the core.
package file

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Missing-cutoff policies accepted in configuration.
const (
	PolicyDrop = "drop"
	PolicyFail = "fail"
)

// Config parameterises one pipeline run.
type Config struct {
	// Input and Output address the corpus files. A ".gz" suffix
	// selects compression.
	Input  string `toml:"input"`
	Output string `toml:"output"`

	// Hashes is the fingerprint store path. Empty derives it from the
	// input path by convention.
	Hashes string `toml:"hashes"`

	// MinLength is the minimum raw_content length in runes.
	MinLength int `toml:"min_length"`

	// Language is the target language code to keep.
	Language string `toml:"language"`

	// LangIDModel is the language identification model path.
	LangIDModel string `toml:"lang_id_model"`

	// LMDir holds per-language tokenizer vocabularies and ARPA models,
	// named <lang>.sp.vocab and <lang>.arpa.
	LMDir string `toml:"lm_dir"`

	// CutoffCSV is the perplexity cutoff table path.
	CutoffCSV string `toml:"cutoff_csv"`

	// NormalizeTokens normalises text before tokenization.
	NormalizeTokens bool `toml:"normalize_tokens"`

	// NormalizeScores divides perplexity by token count.
	NormalizeScores bool `toml:"normalize_scores"`

	// OnMissingCutoff is the policy for documents whose language has
	// no cutoff row: "drop" or "fail".
	OnMissingCutoff string `toml:"on_missing_cutoff"`

	// Fields overrides the output field allow-list when non-empty.
	Fields []string `toml:"fields"`
}

// Default returns the configuration defaults applied before the file
// and flags are merged in.
func Default() *Config {
	return &Config{
		MinLength:       300,
		NormalizeTokens: true,
		OnMissingCutoff: PolicyDrop,
	}
}

// Load reads a TOML config file over the defaults.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := toml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Validate checks that every required setting is present and coherent.
func (c *Config) Validate() error {
	switch {
	case c.Input == "":
		return fmt.Errorf("config: input path is required")
	case c.Output == "":
		return fmt.Errorf("config: output path is required")
	case c.Language == "":
		return fmt.Errorf("config: target language is required")
	case c.LangIDModel == "":
		return fmt.Errorf("config: lang_id_model path is required")
	case c.LMDir == "":
		return fmt.Errorf("config: lm_dir path is required")
	case c.CutoffCSV == "":
		return fmt.Errorf("config: cutoff_csv path is required")
	case c.MinLength < 0:
		return fmt.Errorf("config: min_length must not be negative")
	}
	if c.OnMissingCutoff != PolicyDrop && c.OnMissingCutoff != PolicyFail {
		return fmt.Errorf("config: on_missing_cutoff must be %q or %q", PolicyDrop, PolicyFail)
	}
	return nil
}

// VocabPath returns the tokenizer vocabulary path for the target language.
func (c *Config) VocabPath() string {
	return filepath.Join(c.LMDir, c.Language+".sp.vocab")
}

// ModelPath returns the ARPA language model path for the target language.
func (c *Config) ModelPath() string {
	return filepath.Join(c.LMDir, c.Language+".arpa")
}
