package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	cfg := Default()
	cfg.Input = "in.jsonl"
	cfg.Output = "out.jsonl"
	cfg.Language = "tr"
	cfg.LangIDModel = "lid.json"
	cfg.LMDir = "/models"
	cfg.CutoffCSV = "cutoffs.csv"
	return cfg
}

// TestLoad_MergesOverDefaults tests file values override defaults
func TestLoad_MergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "winnow.toml")
	content := `
input = "corpus.jsonl.gz"
output = "clean.jsonl.gz"
language = "tr"
min_length = 500
on_missing_cutoff = "fail"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "corpus.jsonl.gz", cfg.Input)
	assert.Equal(t, 500, cfg.MinLength)
	assert.Equal(t, PolicyFail, cfg.OnMissingCutoff)
	assert.True(t, cfg.NormalizeTokens, "default survives partial file")
}

// TestLoad_Missing tests a bad path errors
func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))

	assert.Error(t, err)
}

// TestLoad_Malformed tests invalid TOML errors
func TestLoad_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("input = [unclosed"), 0600))

	_, err := Load(path)

	assert.Error(t, err)
}

// TestValidate tests each required field is enforced
func TestValidate(t *testing.T) {
	assert.NoError(t, validConfig().Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing input", func(c *Config) { c.Input = "" }},
		{"missing output", func(c *Config) { c.Output = "" }},
		{"missing language", func(c *Config) { c.Language = "" }},
		{"missing lang id model", func(c *Config) { c.LangIDModel = "" }},
		{"missing lm dir", func(c *Config) { c.LMDir = "" }},
		{"missing cutoff csv", func(c *Config) { c.CutoffCSV = "" }},
		{"negative min length", func(c *Config) { c.MinLength = -1 }},
		{"bad cutoff policy", func(c *Config) { c.OnMissingCutoff = "maybe" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

// TestModelPaths tests per-language path conventions
func TestModelPaths(t *testing.T) {
	cfg := validConfig()

	assert.Equal(t, filepath.Join("/models", "tr.sp.vocab"), cfg.VocabPath())
	assert.Equal(t, filepath.Join("/models", "tr.arpa"), cfg.ModelPath())
}
