package driving

import (
	"context"

	"github.com/veldt-labs/winnow-cli/internal/core/domain"
)

// Pipeline is the driving port the CLI uses to run the two-pass
// cleaning pipeline.
type Pipeline interface {
	// Run executes pass 1 (fingerprint collection) followed by pass 2
	// (the full stage chain) and returns the run report.
	Run(ctx context.Context) (*domain.RunReport, error)

	// CollectFingerprints executes pass 1 only, building the
	// fingerprint store without producing output documents.
	CollectFingerprints(ctx context.Context) (int, error)
}
