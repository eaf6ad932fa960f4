package driven

import (
	"context"

	"github.com/veldt-labs/winnow-cli/internal/core/domain"
)

// Record is one item from a corpus stream. Either Doc is set, or Err
// explains why the line could not be decoded. A malformed record is
// recoverable: the runner counts it and reads on.
type Record struct {
	Doc domain.Document
	Err error
}

// CorpusReader streams documents from persistent storage one at a time,
// preserving file order. A reader can be streamed multiple times; each
// Stream call starts again from the beginning, which is what lets the
// runner make two passes over the same corpus.
type CorpusReader interface {
	// Stream sends records in file order on the returned channel.
	// The channel is closed when the stream ends. Fatal read errors are
	// delivered on the error channel, which is closed alongside.
	Stream(ctx context.Context) (<-chan Record, <-chan error)
}

// CorpusWriter streams documents to persistent storage in call order.
type CorpusWriter interface {
	// Write appends one document to the sink.
	Write(doc domain.Document) error

	// Close flushes and releases the sink. The output is not complete
	// until Close returns nil.
	Close() error
}
