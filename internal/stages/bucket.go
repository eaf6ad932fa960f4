package stages

import (
	"context"
	"errors"
	"fmt"

	"github.com/veldt-labs/winnow-cli/internal/core/domain"
	"github.com/veldt-labs/winnow-cli/internal/core/ports/driven"
	"github.com/veldt-labs/winnow-cli/internal/logger"
)

// MissingCutoffPolicy decides what happens to a document whose
// language has no row in the cutoff table.
type MissingCutoffPolicy int

const (
	// DropOnMissingCutoff drops the document with a warning and
	// continues the run.
	DropOnMissingCutoff MissingCutoffPolicy = iota

	// FailOnMissingCutoff aborts the run.
	FailOnMissingCutoff
)

// Ensure BucketByPerplexity implements the interface.
var _ driven.Stage = (*BucketByPerplexity)(nil)

// BucketByPerplexity labels each document with a quality bucket by
// looking its perplexity up in the per-language cutoff table.
// It never drops a document that has a cutoff entry.
type BucketByPerplexity struct {
	table  driven.CutoffTable
	policy MissingCutoffPolicy
}

// NewBucketByPerplexity creates a bucketing stage.
func NewBucketByPerplexity(table driven.CutoffTable, policy MissingCutoffPolicy) *BucketByPerplexity {
	return &BucketByPerplexity{table: table, policy: policy}
}

// Name returns the stage name.
func (s *BucketByPerplexity) Name() string {
	return "bucket"
}

// Setup loads the cutoff table.
func (s *BucketByPerplexity) Setup(_ context.Context) error {
	return setupModel(s.Name(), s.table)
}

// Process writes the bucket field. A document without language or
// perplexity fields is dropped. A missing cutoff entry follows the
// configured policy.
func (s *BucketByPerplexity) Process(_ context.Context, doc domain.Document) (domain.Document, error) {
	lang, ok := doc.String(domain.FieldLanguage)
	if !ok {
		return nil, domain.ErrMissingField
	}
	pp, ok := doc.Float(domain.FieldPerplexity)
	if !ok {
		return nil, domain.ErrMissingField
	}

	bucket, err := s.table.Bucket(lang, pp)
	if err != nil {
		if errors.Is(err, domain.ErrNoCutoffEntry) && s.policy == DropOnMissingCutoff {
			logger.Warn("dropping document: no cutoff entry for language %q", lang)
			return nil, domain.ErrNoCutoffEntry
		}
		return nil, driven.Fatal(fmt.Errorf("bucket lookup: %w", err))
	}

	doc.Set(domain.FieldBucket, bucket)
	return doc, nil
}
