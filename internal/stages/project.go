package stages

import (
	"context"

	"github.com/veldt-labs/winnow-cli/internal/core/domain"
	"github.com/veldt-labs/winnow-cli/internal/core/ports/driven"
)

// DefaultMinifyFields is the field allow-list for the minified output
// record: everything downstream training jobs consume, nothing else.
var DefaultMinifyFields = []string{
	"url",
	"raw_content",
	"digest",
	"source_domain",
	"title",
	"date_download",
	"bucket",
	"language_score",
	"length",
	"nlines",
	"original_length",
	"original_nlines",
	"perplexity",
	"language",
}

// Ensure Minify implements the interface.
var _ driven.Stage = (*Minify)(nil)

// Minify projects each document onto a fixed allow-list of fields.
// Values pass through unchanged; absent fields stay absent. Applying
// it twice gives the same result as applying it once.
type Minify struct {
	keep map[string]struct{}
}

// NewMinify creates a projector for the given allow-list.
func NewMinify(fields []string) *Minify {
	keep := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		keep[f] = struct{}{}
	}
	return &Minify{keep: keep}
}

// Name returns the stage name.
func (s *Minify) Name() string {
	return "minify"
}

// Setup is a no-op.
func (s *Minify) Setup(_ context.Context) error {
	return nil
}

// Process returns a new document holding only allow-listed fields.
// An empty document produces no output.
func (s *Minify) Process(_ context.Context, doc domain.Document) (domain.Document, error) {
	if len(doc) == 0 {
		return nil, nil
	}

	out := make(domain.Document, len(s.keep))
	for k, v := range doc {
		if _, ok := s.keep[k]; ok {
			out[k] = v
		}
	}
	return out, nil
}
