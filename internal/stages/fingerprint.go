package stages

import (
	"context"
	"fmt"

	"github.com/veldt-labs/winnow-cli/internal/core/domain"
	"github.com/veldt-labs/winnow-cli/internal/core/ports/driven"
)

// Ensure CollectFingerprints implements the interface.
var _ driven.Stage = (*CollectFingerprints)(nil)

// CollectFingerprints is the only stage of pass 1. It fingerprints
// every document's content field and appends the fingerprint to the
// store. Documents lacking the field are passed through untouched
// and occupy no slot in the store; the duplicate remover matches by
// fingerprint value, not position, so no bookkeeping is needed.
type CollectFingerprints struct {
	field string
	store driven.FingerprintStore
}

// NewCollectFingerprints creates the pass-1 fingerprint collector.
func NewCollectFingerprints(field string, store driven.FingerprintStore) *CollectFingerprints {
	return &CollectFingerprints{field: field, store: store}
}

// Name returns the stage name.
func (s *CollectFingerprints) Name() string {
	return "collect_fingerprints"
}

// Setup is a no-op; the store is opened by its adapter.
func (s *CollectFingerprints) Setup(_ context.Context) error {
	return nil
}

// Process appends the document's fingerprint to the store.
// An append failure is a storage failure; the runner treats any error
// from this stage as fatal to the run.
func (s *CollectFingerprints) Process(_ context.Context, doc domain.Document) (domain.Document, error) {
	content, ok := doc.String(s.field)
	if !ok {
		return doc, nil
	}
	if err := s.store.Append(domain.ComputeFingerprint(content)); err != nil {
		return nil, fmt.Errorf("append fingerprint: %w", err)
	}
	return doc, nil
}
