package corpus

import (
	"bufio"
	"compress/gzip"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/veldt-labs/winnow-cli/internal/core/domain"
	"github.com/veldt-labs/winnow-cli/internal/core/ports/driven"
)

// Ensure Writer implements the interface.
var _ driven.CorpusWriter = (*Writer)(nil)

// Writer streams documents to a JSONL file in call order.
// Field keys are marshalled sorted, so runs over identical input
// produce byte-identical output.
type Writer struct {
	f   *os.File
	gz  *gzip.Writer
	buf *bufio.Writer
}

// NewWriter creates the output file, truncating any existing one.
// A ".gz" suffix selects gzip compression.
func NewWriter(path string) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create output: %w", err)
	}

	w := &Writer{f: f}
	if strings.HasSuffix(path, ".gz") {
		w.gz = gzip.NewWriter(f)
		w.buf = bufio.NewWriter(w.gz)
	} else {
		w.buf = bufio.NewWriter(f)
	}
	return w, nil
}

// Write appends one document as a single JSON line.
func (w *Writer) Write(doc domain.Document) error {
	line, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}
	if _, err := w.buf.Write(line); err != nil {
		return err
	}
	return w.buf.WriteByte('\n')
}

// Close flushes all buffers and closes the file.
func (w *Writer) Close() error {
	if err := w.buf.Flush(); err != nil {
		w.f.Close()
		return err
	}
	if w.gz != nil {
		if err := w.gz.Close(); err != nil {
			w.f.Close()
			return err
		}
	}
	return w.f.Close()
}
