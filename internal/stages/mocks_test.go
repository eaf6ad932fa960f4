package stages

import (
	"errors"

	"github.com/veldt-labs/winnow-cli/internal/core/domain"
	"github.com/veldt-labs/winnow-cli/internal/core/ports/driven"
)

// mockFingerprintStore implements driven.FingerprintStore in memory.
type mockFingerprintStore struct {
	fps       []domain.Fingerprint
	flushed   bool
	appendErr error
	loadErr   error
}

func (m *mockFingerprintStore) Append(fp domain.Fingerprint) error {
	if m.appendErr != nil {
		return m.appendErr
	}
	m.fps = append(m.fps, fp)
	return nil
}

func (m *mockFingerprintStore) Flush() error {
	m.flushed = true
	return nil
}

func (m *mockFingerprintStore) Load() ([]domain.Fingerprint, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return m.fps, nil
}

// mockIdentifier implements driven.LanguageIdentifier with fixed output.
type mockIdentifier struct {
	preds []driven.Prediction
	err   error
}

func (m *mockIdentifier) Classify(_ string) ([]driven.Prediction, error) {
	return m.preds, m.err
}

// mockTokenizer implements driven.Tokenizer by splitting on spaces.
type mockTokenizer struct {
	err error
}

func (m *mockTokenizer) Tokenize(text string, _ bool) ([]string, error) {
	if m.err != nil {
		return nil, m.err
	}
	var tokens []string
	start := -1
	for i, r := range text {
		if r == ' ' {
			if start >= 0 {
				tokens = append(tokens, text[start:i])
				start = -1
			}
		} else if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		tokens = append(tokens, text[start:])
	}
	return tokens, nil
}

// mockScorer implements driven.Scorer with a fixed per-token log score.
type mockScorer struct {
	perToken float64
	err      error
}

func (m *mockScorer) Score(tokens []string) (float64, int, error) {
	if m.err != nil {
		return 0, 0, m.err
	}
	return m.perToken * float64(len(tokens)), len(tokens), nil
}

// mockCutoffTable implements driven.CutoffTable for a single language.
type mockCutoffTable struct {
	lang string
	head float64
	tail float64
	err  error
}

func (m *mockCutoffTable) Bucket(language string, perplexity float64) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	if language != m.lang {
		return "", domain.ErrNoCutoffEntry
	}
	switch {
	case perplexity <= m.head:
		return "head", nil
	case perplexity <= m.tail:
		return "middle", nil
	default:
		return "tail", nil
	}
}

var errBoom = errors.New("boom")
