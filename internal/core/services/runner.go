package services

import (
	"context"
	"fmt"
	"time"

	"github.com/veldt-labs/winnow-cli/internal/core/domain"
	"github.com/veldt-labs/winnow-cli/internal/core/ports/driven"
	"github.com/veldt-labs/winnow-cli/internal/core/ports/driving"
	"github.com/veldt-labs/winnow-cli/internal/logger"
)

// Ensure Runner implements the interface.
var _ driving.Pipeline = (*Runner)(nil)

// Runner drives the two-pass cleaning pipeline. It is the only
// component that knows the full stage order: pass 1 runs the
// fingerprint collector alone over the stream, pass 2 re-reads the
// stream through the ordered stage chain and writes survivors.
//
// A Runner is built for exactly one run. The duplicate remover in the
// chain holds per-run state, so reusing a Runner would leak the
// emitted set across runs.
type Runner struct {
	reader    driven.CorpusReader
	writer    driven.CorpusWriter
	store     driven.FingerprintStore
	collector driven.Stage
	chain     []driven.Stage
	reports   driven.ReportStore

	runID      string
	inputPath  string
	outputPath string
}

// NewRunner creates a pipeline runner.
// The reports store is optional; when nil, reports are only returned.
func NewRunner(
	reader driven.CorpusReader,
	writer driven.CorpusWriter,
	store driven.FingerprintStore,
	collector driven.Stage,
	chain []driven.Stage,
	reports driven.ReportStore,
	runID, inputPath, outputPath string,
) *Runner {
	return &Runner{
		reader:     reader,
		writer:     writer,
		store:      store,
		collector:  collector,
		chain:      chain,
		reports:    reports,
		runID:      runID,
		inputPath:  inputPath,
		outputPath: outputPath,
	}
}

// Run executes pass 1 then pass 2 and returns the run report.
// Pass 1 failure prevents pass 2 from starting.
func (r *Runner) Run(ctx context.Context) (*domain.RunReport, error) {
	report := &domain.RunReport{
		ID:           r.runID,
		InputPath:    r.inputPath,
		OutputPath:   r.outputPath,
		StartedAt:    time.Now(),
		DropsByStage: make(map[string]int),
	}

	logger.Section("pass 1: collect fingerprints")
	if _, err := r.CollectFingerprints(ctx); err != nil {
		return nil, err
	}

	logger.Section("pass 2: clean")
	if err := r.setupChain(ctx); err != nil {
		return nil, err
	}
	if err := r.runChain(ctx, report); err != nil {
		return nil, err
	}

	report.FinishedAt = time.Now()
	logger.Info("run complete: %d read, %d dropped, %d malformed, %d written",
		report.Read, report.Dropped(), report.Malformed, report.Written)

	if r.reports != nil {
		// Report persistence is best effort; losing history must not
		// fail a run whose output is already on disk.
		if err := r.reports.Save(ctx, report); err != nil {
			logger.Warn("could not save run report: %v", err)
		}
	}
	return report, nil
}

// CollectFingerprints runs pass 1 only: fingerprint every document and
// flush the store atomically. Any failure here is fatal, and the store
// is never left half-written and readable.
func (r *Runner) CollectFingerprints(ctx context.Context) (int, error) {
	if err := r.collector.Setup(ctx); err != nil {
		return 0, err
	}

	count := 0
	records, errs := r.reader.Stream(ctx)

	// Exit only once both channels are drained, so a late read error
	// is never mistaken for a clean end of stream.
	for records != nil || errs != nil {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		select {
		case <-ctx.Done():
			return 0, ctx.Err()

		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			return 0, fmt.Errorf("read corpus: %w", err)

		case rec, ok := <-records:
			if !ok {
				records = nil
				continue
			}
			if rec.Err != nil {
				logger.Debug("skipping malformed record: %v", rec.Err)
				continue
			}
			if _, err := r.collector.Process(ctx, rec.Doc); err != nil {
				return 0, fmt.Errorf("collect fingerprint: %w", err)
			}
			count++
		}
	}

	if err := r.store.Flush(); err != nil {
		return 0, fmt.Errorf("flush fingerprint store: %w", err)
	}
	logger.Info("collected fingerprints for %d documents", count)
	return count, nil
}

// setupChain prepares every stage in order before the first document.
func (r *Runner) setupChain(ctx context.Context) error {
	for _, stage := range r.chain {
		if err := stage.Setup(ctx); err != nil {
			return fmt.Errorf("setup %s: %w", stage.Name(), err)
		}
	}
	return nil
}

// runChain streams the corpus through the stage chain, writing
// survivors in input order.
func (r *Runner) runChain(ctx context.Context, report *domain.RunReport) error {
	records, errs := r.reader.Stream(ctx)

	for records != nil || errs != nil {
		if err := ctx.Err(); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()

		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			return fmt.Errorf("read corpus: %w", err)

		case rec, ok := <-records:
			if !ok {
				records = nil
				continue
			}

			report.Read++
			if rec.Err != nil {
				report.Malformed++
				logger.Debug("malformed record: %v", rec.Err)
				continue
			}

			doc, err := r.processOne(ctx, rec.Doc, report)
			if err != nil {
				return err
			}
			if doc == nil {
				continue
			}

			if err := r.writer.Write(doc); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			report.Written++
		}
	}

	if err := r.writer.Close(); err != nil {
		return fmt.Errorf("close output: %w", err)
	}
	return nil
}

// processOne applies the stage chain to one document, stopping at the
// first drop. A per-document stage error counts as a drop for that
// stage; only fatal errors propagate.
func (r *Runner) processOne(
	ctx context.Context,
	doc domain.Document,
	report *domain.RunReport,
) (domain.Document, error) {
	for _, stage := range r.chain {
		out, err := stage.Process(ctx, doc)
		if err != nil {
			if driven.IsFatal(err) {
				return nil, fmt.Errorf("%s: %w", stage.Name(), err)
			}
			report.DropsByStage[stage.Name()]++
			logger.Debug("%s dropped document: %v", stage.Name(), err)
			return nil, nil
		}
		if out == nil {
			report.DropsByStage[stage.Name()]++
			return nil, nil
		}
		doc = out
	}
	return doc, nil
}
