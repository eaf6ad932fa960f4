package stages

import (
	"context"
	"strings"

	"github.com/veldt-labs/winnow-cli/internal/core/domain"
	"github.com/veldt-labs/winnow-cli/internal/core/ports/driven"
)

// Ensure Tokenize implements the interface.
var _ driven.Stage = (*Tokenize)(nil)

// Tokenize segments a text field into subword pieces and writes the
// space-joined result to a separate output field. The source field is
// left untouched.
type Tokenize struct {
	field     string
	outField  string
	normalize bool
	model     driven.Tokenizer
}

// NewTokenize creates a tokenizer stage.
func NewTokenize(field, outField string, normalize bool, model driven.Tokenizer) *Tokenize {
	return &Tokenize{field: field, outField: outField, normalize: normalize, model: model}
}

// Name returns the stage name.
func (s *Tokenize) Name() string {
	return "tokenize"
}

// Setup loads the tokenizer model.
func (s *Tokenize) Setup(_ context.Context) error {
	return setupModel(s.Name(), s.model)
}

// Process tokenizes the source field. A document without the source
// field is dropped; the run continues.
func (s *Tokenize) Process(_ context.Context, doc domain.Document) (domain.Document, error) {
	text, ok := doc.String(s.field)
	if !ok {
		return nil, domain.ErrMissingField
	}

	tokens, err := s.model.Tokenize(text, s.normalize)
	if err != nil {
		return nil, err
	}

	doc.Set(s.outField, strings.Join(tokens, " "))
	return doc, nil
}
