package stages

import (
	"context"
	"fmt"

	"github.com/veldt-labs/winnow-cli/internal/core/domain"
	"github.com/veldt-labs/winnow-cli/internal/core/ports/driven"
)

// Ensure RemoveDuplicates implements the interface.
var _ driven.Stage = (*RemoveDuplicates)(nil)

// RemoveDuplicates drops every document whose fingerprint has already
// been emitted during this run. First occurrence in stream order wins.
//
// The emitted set is owned exclusively by this stage instance for the
// duration of one run; a fresh stage must be built for each run.
type RemoveDuplicates struct {
	field string
	store driven.FingerprintStore

	// emitted maps each corpus fingerprint to whether a document
	// carrying it has already been kept.
	emitted map[domain.Fingerprint]bool
}

// NewRemoveDuplicates creates a duplicate remover backed by the pass-1
// fingerprint store.
func NewRemoveDuplicates(field string, store driven.FingerprintStore) *RemoveDuplicates {
	return &RemoveDuplicates{field: field, store: store}
}

// Name returns the stage name.
func (s *RemoveDuplicates) Name() string {
	return "remove_duplicates"
}

// Setup loads the full fingerprint store into memory. Memory cost is
// proportional to the number of distinct fingerprints in the corpus.
func (s *RemoveDuplicates) Setup(_ context.Context) error {
	fps, err := s.store.Load()
	if err != nil {
		return fmt.Errorf("%w: load fingerprints: %w", domain.ErrSetup, err)
	}
	s.emitted = make(map[domain.Fingerprint]bool, len(fps))
	for _, fp := range fps {
		s.emitted[fp] = false
	}
	return nil
}

// Process drops the document if its fingerprint was already emitted,
// otherwise marks it emitted, records the digest field and keeps it.
func (s *RemoveDuplicates) Process(_ context.Context, doc domain.Document) (domain.Document, error) {
	content, ok := doc.String(s.field)
	if !ok {
		return nil, domain.ErrMissingField
	}

	fp := domain.ComputeFingerprint(content)
	if s.emitted[fp] {
		return nil, nil
	}
	s.emitted[fp] = true

	doc.Set(domain.FieldDigest, fp.Hex())
	return doc, nil
}
