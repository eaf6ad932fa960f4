package domain

import "errors"

// Domain errors represent pipeline-level conditions.
// Per-document conditions are recoverable: the runner counts them as
// drops and continues. Setup and storage conditions are fatal.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrMissingField indicates a document lacks a field a stage requires.
	// Recoverable: the document is dropped.
	ErrMissingField = errors.New("missing field")

	// ErrMalformedRecord indicates a corpus line could not be parsed.
	// Recoverable: the record is dropped and counted.
	ErrMalformedRecord = errors.New("malformed record")

	// ErrNoPrediction indicates the language identifier returned no result.
	// Recoverable: the document is dropped.
	ErrNoPrediction = errors.New("no language prediction")

	// ErrNoCutoffEntry indicates the cutoff table has no row for a
	// document's language. Recoverable or fatal depending on the
	// configured bucket policy.
	ErrNoCutoffEntry = errors.New("no cutoff entry for language")

	// ErrStoreIncomplete indicates the fingerprint store was not fully
	// written. Pass 2 must not run against a partial store.
	ErrStoreIncomplete = errors.New("fingerprint store incomplete")

	// ErrSetup indicates a stage failed its one-time setup
	// (model file missing or corrupt, cutoff table malformed). Fatal.
	ErrSetup = errors.New("stage setup failed")
)
