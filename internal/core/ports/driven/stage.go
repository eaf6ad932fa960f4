package driven

import (
	"context"

	"github.com/veldt-labs/winnow-cli/internal/core/domain"
)

// Stage is the uniform contract every pipeline step implements.
// A stage consumes one document and either returns it (possibly with
// fields added or changed) or drops it by returning (nil, nil).
//
// Contract:
//   - Drop is terminal. A dropped document must not be mutated in a way
//     visible elsewhere.
//   - Fields a stage does not touch pass through unchanged.
//   - A recoverable per-document failure is reported as an error; the
//     runner counts it as a drop and continues the stream.
type Stage interface {
	// Name returns the stage name for logging and drop statistics.
	Name() string

	// Setup performs one-time preparation (loading a model file).
	// The runner calls it exactly once before the first Process call.
	// Setup failures are fatal to the run.
	Setup(ctx context.Context) error

	// Process transforms one document. Returning (nil, nil) drops it.
	Process(ctx context.Context, doc domain.Document) (domain.Document, error)
}
