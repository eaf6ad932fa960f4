package stages

import (
	"context"

	"github.com/veldt-labs/winnow-cli/internal/core/domain"
	"github.com/veldt-labs/winnow-cli/internal/core/ports/driven"
)

// Ensure Where implements the interface.
var _ driven.Stage = (*Where)(nil)

// Where drops every document for which the predicate is false.
// Pure and stateless.
type Where struct {
	name string
	pred func(domain.Document) bool
}

// NewWhere creates a predicate filter with a name for statistics.
func NewWhere(name string, pred func(domain.Document) bool) *Where {
	return &Where{name: name, pred: pred}
}

// NewKeepLanguage creates the filter that keeps only documents whose
// language field equals the target code.
func NewKeepLanguage(target string) *Where {
	return NewWhere("keep_language", func(doc domain.Document) bool {
		lang, ok := doc.String(domain.FieldLanguage)
		return ok && lang == target
	})
}

// Name returns the stage name.
func (s *Where) Name() string {
	return s.name
}

// Setup is a no-op.
func (s *Where) Setup(_ context.Context) error {
	return nil
}

// Process keeps the document only when the predicate holds.
func (s *Where) Process(_ context.Context, doc domain.Document) (domain.Document, error) {
	if !s.pred(doc) {
		return nil, nil
	}
	return doc, nil
}
