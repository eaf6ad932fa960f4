package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veldt-labs/winnow-cli/internal/core/domain"
	"github.com/veldt-labs/winnow-cli/internal/core/ports/driven"
)

// memReader implements driven.CorpusReader over a fixed record slice.
// Each Stream call replays the records from the start, like a file.
type memReader struct {
	records  []driven.Record
	fatalErr error
}

func (m *memReader) Stream(ctx context.Context) (<-chan driven.Record, <-chan error) {
	recCh := make(chan driven.Record)
	errCh := make(chan error, 1)
	go func() {
		defer close(recCh)
		defer close(errCh)
		for _, rec := range m.records {
			select {
			case recCh <- rec:
			case <-ctx.Done():
				return
			}
		}
		if m.fatalErr != nil {
			errCh <- m.fatalErr
		}
	}()
	return recCh, errCh
}

// memWriter implements driven.CorpusWriter in memory.
type memWriter struct {
	docs     []domain.Document
	closed   bool
	writeErr error
}

func (m *memWriter) Write(doc domain.Document) error {
	if m.writeErr != nil {
		return m.writeErr
	}
	m.docs = append(m.docs, doc)
	return nil
}

func (m *memWriter) Close() error {
	m.closed = true
	return nil
}

// memStore implements driven.FingerprintStore in memory.
type memStore struct {
	fps      []domain.Fingerprint
	flushed  bool
	flushErr error
}

func (m *memStore) Append(fp domain.Fingerprint) error {
	m.fps = append(m.fps, fp)
	return nil
}

func (m *memStore) Flush() error {
	if m.flushErr != nil {
		return m.flushErr
	}
	m.flushed = true
	return nil
}

func (m *memStore) Load() ([]domain.Fingerprint, error) {
	if !m.flushed {
		return nil, domain.ErrStoreIncomplete
	}
	return m.fps, nil
}

// recordingStage implements driven.Stage and records every call.
type recordingStage struct {
	name     string
	calls    int
	setups   int
	setupErr error
	process  func(domain.Document) (domain.Document, error)
}

func (s *recordingStage) Name() string { return s.name }

func (s *recordingStage) Setup(_ context.Context) error {
	s.setups++
	return s.setupErr
}

func (s *recordingStage) Process(_ context.Context, doc domain.Document) (domain.Document, error) {
	s.calls++
	if s.process != nil {
		return s.process(doc)
	}
	return doc, nil
}

func doc(fields map[string]any) driven.Record {
	return driven.Record{Doc: domain.Document(fields)}
}

func newTestRunner(reader *memReader, writer *memWriter, chain []driven.Stage) (*Runner, *memStore) {
	store := &memStore{}
	collector := &recordingStage{name: "collect_fingerprints", process: func(d domain.Document) (domain.Document, error) {
		if content, ok := d.String(domain.FieldRawContent); ok {
			if err := store.Append(domain.ComputeFingerprint(content)); err != nil {
				return nil, err
			}
		}
		return d, nil
	}}
	return NewRunner(reader, writer, store, collector, chain, nil, "run-1", "in.jsonl", "out.jsonl"), store
}

// TestRunner_OrderPreserved tests survivors appear in input order
func TestRunner_OrderPreserved(t *testing.T) {
	reader := &memReader{records: []driven.Record{
		doc(map[string]any{"url": "1", domain.FieldRawContent: "a"}),
		doc(map[string]any{"url": "2", domain.FieldRawContent: "b"}),
		doc(map[string]any{"url": "3", domain.FieldRawContent: "c"}),
	}}
	writer := &memWriter{}
	runner, _ := newTestRunner(reader, writer, []driven.Stage{&recordingStage{name: "pass"}})

	report, err := runner.Run(context.Background())

	require.NoError(t, err)
	require.Len(t, writer.docs, 3)
	for i, want := range []string{"1", "2", "3"} {
		url, _ := writer.docs[i].String("url")
		assert.Equal(t, want, url)
	}
	assert.Equal(t, 3, report.Read)
	assert.Equal(t, 3, report.Written)
	assert.True(t, writer.closed)
}

// TestRunner_ShortCircuit tests a dropped document never reaches
// later stages
func TestRunner_ShortCircuit(t *testing.T) {
	dropAll := &recordingStage{name: "drop_all", process: func(_ domain.Document) (domain.Document, error) {
		return nil, nil
	}}
	after := &recordingStage{name: "after"}

	reader := &memReader{records: []driven.Record{
		doc(map[string]any{domain.FieldRawContent: "a"}),
		doc(map[string]any{domain.FieldRawContent: "b"}),
	}}
	writer := &memWriter{}
	runner, _ := newTestRunner(reader, writer, []driven.Stage{dropAll, after})

	report, err := runner.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, dropAll.calls)
	assert.Equal(t, 0, after.calls, "stage after a drop must not run")
	assert.Equal(t, 2, report.DropsByStage["drop_all"])
	assert.Equal(t, 0, report.Written)
	assert.Empty(t, writer.docs)
}

// TestRunner_PerDocumentErrorIsDrop tests recoverable errors count as
// drops and do not stop the run
func TestRunner_PerDocumentErrorIsDrop(t *testing.T) {
	flaky := &recordingStage{name: "flaky", process: func(d domain.Document) (domain.Document, error) {
		if _, ok := d.String("bad"); ok {
			return nil, domain.ErrMissingField
		}
		return d, nil
	}}

	reader := &memReader{records: []driven.Record{
		doc(map[string]any{domain.FieldRawContent: "a", "bad": "yes"}),
		doc(map[string]any{domain.FieldRawContent: "b"}),
	}}
	writer := &memWriter{}
	runner, _ := newTestRunner(reader, writer, []driven.Stage{flaky})

	report, err := runner.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, report.DropsByStage["flaky"])
	assert.Equal(t, 1, report.Written)
}

// TestRunner_FatalStageError tests fatal errors abort the run
func TestRunner_FatalStageError(t *testing.T) {
	fatal := &recordingStage{name: "fatal", process: func(_ domain.Document) (domain.Document, error) {
		return nil, driven.Fatal(errors.New("cutoff table has no row"))
	}}

	reader := &memReader{records: []driven.Record{
		doc(map[string]any{domain.FieldRawContent: "a"}),
	}}
	runner, _ := newTestRunner(reader, &memWriter{}, []driven.Stage{fatal})

	_, err := runner.Run(context.Background())

	require.Error(t, err)
	assert.True(t, driven.IsFatal(err))
}

// TestRunner_MalformedCounted tests unparseable records are counted
// and skipped
func TestRunner_MalformedCounted(t *testing.T) {
	reader := &memReader{records: []driven.Record{
		doc(map[string]any{domain.FieldRawContent: "a"}),
		{Err: domain.ErrMalformedRecord},
		doc(map[string]any{domain.FieldRawContent: "b"}),
	}}
	writer := &memWriter{}
	runner, _ := newTestRunner(reader, writer, []driven.Stage{&recordingStage{name: "pass"}})

	report, err := runner.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 3, report.Read)
	assert.Equal(t, 1, report.Malformed)
	assert.Equal(t, 2, report.Written)
}

// TestRunner_SetupFailureIsFatal tests no document is processed when
// a stage fails setup
func TestRunner_SetupFailureIsFatal(t *testing.T) {
	broken := &recordingStage{name: "broken", setupErr: domain.ErrSetup}

	reader := &memReader{records: []driven.Record{
		doc(map[string]any{domain.FieldRawContent: "a"}),
	}}
	runner, _ := newTestRunner(reader, &memWriter{}, []driven.Stage{broken})

	_, err := runner.Run(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSetup)
	assert.Equal(t, 0, broken.calls)
}

// TestRunner_SetupBeforeFirstDocument tests every stage is set up
// exactly once before processing
func TestRunner_SetupBeforeFirstDocument(t *testing.T) {
	a := &recordingStage{name: "a"}
	b := &recordingStage{name: "b"}

	reader := &memReader{records: []driven.Record{
		doc(map[string]any{domain.FieldRawContent: "x"}),
	}}
	runner, _ := newTestRunner(reader, &memWriter{}, []driven.Stage{a, b})

	_, err := runner.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, a.setups)
	assert.Equal(t, 1, b.setups)
}

// TestRunner_PassOneFlushesStore tests the store is flushed before
// pass 2 can read it
func TestRunner_PassOneFlushesStore(t *testing.T) {
	reader := &memReader{records: []driven.Record{
		doc(map[string]any{domain.FieldRawContent: "a"}),
		doc(map[string]any{domain.FieldRawContent: "b"}),
	}}
	runner, store := newTestRunner(reader, &memWriter{}, []driven.Stage{&recordingStage{name: "pass"}})

	count, err := runner.CollectFingerprints(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.True(t, store.flushed)
	assert.Len(t, store.fps, 2)
}

// TestRunner_PassOneFailurePreventsPassTwo tests a flush failure
// aborts before any document is cleaned
func TestRunner_PassOneFailurePreventsPassTwo(t *testing.T) {
	chainStage := &recordingStage{name: "pass"}
	reader := &memReader{records: []driven.Record{
		doc(map[string]any{domain.FieldRawContent: "a"}),
	}}
	runner, store := newTestRunner(reader, &memWriter{}, []driven.Stage{chainStage})
	store.flushErr = errors.New("disk full")

	_, err := runner.Run(context.Background())

	require.Error(t, err)
	assert.Equal(t, 0, chainStage.calls)
	assert.Equal(t, 0, chainStage.setups)
}

// TestRunner_ReaderFailureIsFatal tests storage read errors terminate
func TestRunner_ReaderFailureIsFatal(t *testing.T) {
	reader := &memReader{
		records:  []driven.Record{doc(map[string]any{domain.FieldRawContent: "a"})},
		fatalErr: errors.New("read: input/output error"),
	}
	runner, _ := newTestRunner(reader, &memWriter{}, []driven.Stage{&recordingStage{name: "pass"}})

	_, err := runner.Run(context.Background())

	assert.Error(t, err)
}

// TestRunner_Cancellation tests a cancelled context stops the run
func TestRunner_Cancellation(t *testing.T) {
	reader := &memReader{records: []driven.Record{
		doc(map[string]any{domain.FieldRawContent: "a"}),
	}}
	runner, _ := newTestRunner(reader, &memWriter{}, []driven.Stage{&recordingStage{name: "pass"}})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runner.Run(ctx)

	assert.ErrorIs(t, err, context.Canceled)
}
