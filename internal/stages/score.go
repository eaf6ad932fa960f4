package stages

import (
	"context"
	"math"
	"strings"

	"github.com/veldt-labs/winnow-cli/internal/core/domain"
	"github.com/veldt-labs/winnow-cli/internal/core/ports/driven"
)

// Ensure Score implements the interface.
var _ driven.Stage = (*Score)(nil)

// Score computes a perplexity value for the tokenized field and writes
// it to an output field. Perplexity is per-token: 10^(-ll/n) for a
// total log10 likelihood ll over n tokens. When normalize is set the
// value is further divided by the token count, trading comparability
// across document lengths for absolute interpretability.
type Score struct {
	field     string
	outField  string
	normalize bool
	model     driven.Scorer
}

// NewScore creates a perplexity scorer stage.
func NewScore(field, outField string, normalize bool, model driven.Scorer) *Score {
	return &Score{field: field, outField: outField, normalize: normalize, model: model}
}

// Name returns the stage name.
func (s *Score) Name() string {
	return "score"
}

// Setup loads the language model.
func (s *Score) Setup(_ context.Context) error {
	return setupModel(s.Name(), s.model)
}

// Process scores the tokenized field. A document without it, or with
// no scoreable tokens, is dropped; the run continues.
func (s *Score) Process(_ context.Context, doc domain.Document) (domain.Document, error) {
	text, ok := doc.String(s.field)
	if !ok {
		return nil, domain.ErrMissingField
	}

	tokens := strings.Fields(text)
	if len(tokens) == 0 {
		return nil, domain.ErrMissingField
	}

	ll, n, err := s.model.Score(tokens)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, domain.ErrMissingField
	}

	pp := math.Pow(10, -ll/float64(n))
	if s.normalize {
		pp /= float64(n)
	}

	// one decimal place, matching the precision cutoff tables carry
	doc.Set(s.outField, math.Round(pp*10)/10)
	return doc, nil
}
