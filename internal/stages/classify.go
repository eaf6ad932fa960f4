package stages

import (
	"context"

	"github.com/veldt-labs/winnow-cli/internal/core/domain"
	"github.com/veldt-labs/winnow-cli/internal/core/ports/driven"
)

// Ensure ClassifyLanguage implements the interface.
var _ driven.Stage = (*ClassifyLanguage)(nil)

// ClassifyLanguage adds the top-1 language prediction to each document.
// It never drops a document by policy; filtering on the predicted
// language is a separate Where stage, so this stage stays reusable
// whatever language is targeted.
type ClassifyLanguage struct {
	field    string
	outField string
	model    driven.LanguageIdentifier
}

// NewClassifyLanguage creates a classifier reading field and writing
// the language code to outField and the confidence to language_score.
func NewClassifyLanguage(field, outField string, model driven.LanguageIdentifier) *ClassifyLanguage {
	return &ClassifyLanguage{field: field, outField: outField, model: model}
}

// Name returns the stage name.
func (s *ClassifyLanguage) Name() string {
	return "classify_language"
}

// Setup loads the language identification model.
func (s *ClassifyLanguage) Setup(_ context.Context) error {
	return setupModel(s.Name(), s.model)
}

// Process writes the top prediction's label and score.
// A document without the text field, or for which the model has no
// prediction, is dropped as a per-document failure.
func (s *ClassifyLanguage) Process(_ context.Context, doc domain.Document) (domain.Document, error) {
	text, ok := doc.String(s.field)
	if !ok {
		return nil, domain.ErrMissingField
	}

	preds, err := s.model.Classify(text)
	if err != nil {
		return nil, err
	}
	if len(preds) == 0 {
		return nil, domain.ErrNoPrediction
	}

	doc.Set(s.outField, preds[0].Label)
	doc.Set(domain.FieldLangScore, preds[0].Score)
	return doc, nil
}
