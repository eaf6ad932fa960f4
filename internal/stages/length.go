package stages

import (
	"context"
	"unicode/utf8"

	"github.com/veldt-labs/winnow-cli/internal/core/domain"
	"github.com/veldt-labs/winnow-cli/internal/core/ports/driven"
)

// Ensure RemoveSmall implements the interface.
var _ driven.Stage = (*RemoveSmall)(nil)

// RemoveSmall drops documents whose text field is shorter than a
// minimum length. Length is counted in runes.
type RemoveSmall struct {
	field  string
	minLen int
}

// NewRemoveSmall creates a length filter over the given field.
func NewRemoveSmall(field string, minLen int) *RemoveSmall {
	return &RemoveSmall{field: field, minLen: minLen}
}

// Name returns the stage name.
func (s *RemoveSmall) Name() string {
	return "remove_small"
}

// Setup is a no-op; the filter needs no external resources.
func (s *RemoveSmall) Setup(_ context.Context) error {
	return nil
}

// Process keeps the document when the field length is at least the
// minimum. A document exactly at the minimum is kept.
func (s *RemoveSmall) Process(_ context.Context, doc domain.Document) (domain.Document, error) {
	text, ok := doc.String(s.field)
	if !ok {
		return nil, domain.ErrMissingField
	}
	if utf8.RuneCountInString(text) < s.minLen {
		return nil, nil
	}
	return doc, nil
}
