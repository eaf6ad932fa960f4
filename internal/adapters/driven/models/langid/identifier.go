// Package langid identifies the language of a text using character
// n-gram frequency profiles loaded from a JSON model file.
package langid

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"sort"
	"strings"

	"github.com/veldt-labs/winnow-cli/internal/core/ports/driven"
)

// Ensure Identifier implements the interface.
var _ driven.LanguageIdentifier = (*Identifier)(nil)

// modelFile is the on-disk model format: an n-gram size and one
// frequency profile per language code.
type modelFile struct {
	NgramSize int                           `json:"ngram_size"`
	Profiles  map[string]map[string]float64 `json:"profiles"`
}

// Identifier scores text against per-language n-gram profiles by
// cosine similarity. The model file is read on Load, not construction,
// so a missing file surfaces as a stage setup failure.
type Identifier struct {
	path      string
	ngramSize int
	profiles  map[string]map[string]float64
	norms     map[string]float64
}

// New creates an identifier for the model at path.
func New(path string) *Identifier {
	return &Identifier{path: path}
}

// Load reads and validates the model file.
func (id *Identifier) Load() error {
	raw, err := os.ReadFile(id.path)
	if err != nil {
		return fmt.Errorf("read language model: %w", err)
	}

	var m modelFile
	if err := json.Unmarshal(raw, &m); err != nil {
		return fmt.Errorf("parse language model: %w", err)
	}
	if m.NgramSize < 1 {
		return fmt.Errorf("language model: invalid ngram_size %d", m.NgramSize)
	}
	if len(m.Profiles) == 0 {
		return fmt.Errorf("language model: no language profiles")
	}

	id.ngramSize = m.NgramSize
	id.profiles = m.Profiles
	id.norms = make(map[string]float64, len(m.Profiles))
	for lang, profile := range m.Profiles {
		id.norms[lang] = vectorNorm(profile)
	}
	return nil
}

// Classify returns all languages ranked by similarity, best first.
// Ties break on language code so results are deterministic.
func (id *Identifier) Classify(text string) ([]driven.Prediction, error) {
	if id.profiles == nil {
		return nil, fmt.Errorf("language model not loaded")
	}

	counts := ngramCounts(text, id.ngramSize)
	if len(counts) == 0 {
		return nil, nil
	}
	textNorm := vectorNorm(counts)

	preds := make([]driven.Prediction, 0, len(id.profiles))
	for lang, profile := range id.profiles {
		var dot float64
		for ng, w := range counts {
			dot += w * profile[ng]
		}
		score := 0.0
		if id.norms[lang] > 0 {
			score = dot / (textNorm * id.norms[lang])
		}
		preds = append(preds, driven.Prediction{Label: lang, Score: score})
	}

	sort.Slice(preds, func(i, j int) bool {
		if preds[i].Score != preds[j].Score {
			return preds[i].Score > preds[j].Score
		}
		return preds[i].Label < preds[j].Label
	})
	return preds, nil
}

// ngramCounts extracts character n-gram frequencies from lowercased
// text with word boundaries marked by single spaces.
func ngramCounts(text string, n int) map[string]float64 {
	runes := []rune(" " + strings.Join(strings.Fields(strings.ToLower(text)), " ") + " ")
	if len(runes) < n {
		return nil
	}
	counts := make(map[string]float64)
	for i := 0; i+n <= len(runes); i++ {
		counts[string(runes[i:i+n])]++
	}
	return counts
}

func vectorNorm(v map[string]float64) float64 {
	var sum float64
	for _, w := range v {
		sum += w * w
	}
	return math.Sqrt(sum)
}
