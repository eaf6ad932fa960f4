package driven

import (
	"context"

	"github.com/veldt-labs/winnow-cli/internal/core/domain"
)

// FingerprintStore persists one fingerprint per fingerprinted document.
// It is append-only during pass 1, then read-only for pass 2.
type FingerprintStore interface {
	// Append records one fingerprint. Only valid before Flush.
	Append(fp domain.Fingerprint) error

	// Flush atomically persists everything appended so far. A store
	// that was never flushed must not be readable as complete.
	Flush() error

	// Load returns all persisted fingerprints in append order.
	// Returns domain.ErrStoreIncomplete if the store was not flushed.
	Load() ([]domain.Fingerprint, error)
}

// ReportStore persists run reports for later inspection.
type ReportStore interface {
	// Save records a completed run's report.
	Save(ctx context.Context, report *domain.RunReport) error

	// List returns saved reports, most recent first.
	List(ctx context.Context, limit int) ([]domain.RunReport, error)

	// Close releases the underlying storage.
	Close() error
}
