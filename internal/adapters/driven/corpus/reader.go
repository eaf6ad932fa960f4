// Package corpus streams newline-delimited JSON documents from and to
// disk, transparently handling gzip-compressed files by path suffix.
package corpus

import (
	"bufio"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/veldt-labs/winnow-cli/internal/core/domain"
	"github.com/veldt-labs/winnow-cli/internal/core/ports/driven"
)

// maxLineSize bounds a single corpus record. Web documents run long;
// 16 MB handles anything a crawl realistically produces.
const maxLineSize = 16 * 1024 * 1024

// Ensure Reader implements the interface.
var _ driven.CorpusReader = (*Reader)(nil)

// Reader streams documents from a JSONL file, one line per document,
// preserving file order. Each Stream call reopens the file, which is
// what lets the runner make two passes over the same corpus.
type Reader struct {
	path string
}

// NewReader creates a corpus reader for the given path.
// A ".gz" suffix selects gzip decompression.
func NewReader(path string) *Reader {
	return &Reader{path: path}
}

// Stream sends one record per line on the returned channel. Malformed
// lines are delivered as records with Err set; open and scan failures
// are delivered on the error channel.
func (r *Reader) Stream(ctx context.Context) (<-chan driven.Record, <-chan error) {
	recCh := make(chan driven.Record)
	errCh := make(chan error, 1)

	go func() {
		defer close(recCh)
		defer close(errCh)

		f, err := os.Open(r.path)
		if err != nil {
			errCh <- fmt.Errorf("open corpus: %w", err)
			return
		}
		defer f.Close()

		var in io.Reader = f
		if strings.HasSuffix(r.path, ".gz") {
			gz, err := gzip.NewReader(f)
			if err != nil {
				errCh <- fmt.Errorf("open gzip corpus: %w", err)
				return
			}
			defer gz.Close()
			in = gz
		}

		scanner := bufio.NewScanner(in)
		scanner.Buffer(make([]byte, 64*1024), maxLineSize)

		lineNo := 0
		for scanner.Scan() {
			lineNo++
			line := scanner.Bytes()
			if len(line) == 0 {
				continue
			}

			var doc domain.Document
			rec := driven.Record{}
			if err := json.Unmarshal(line, &doc); err != nil {
				rec.Err = fmt.Errorf("%w: line %d: %w", domain.ErrMalformedRecord, lineNo, err)
			} else {
				rec.Doc = doc
			}

			select {
			case recCh <- rec:
			case <-ctx.Done():
				return
			}
		}
		if err := scanner.Err(); err != nil {
			errCh <- fmt.Errorf("scan corpus: %w", err)
		}
	}()

	return recCh, errCh
}
