// Package cutoffs loads per-language perplexity cutoff tables from
// CSV files. Each row maps a language to the ordered thresholds that
// separate the head, middle and tail quality buckets.
package cutoffs

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/veldt-labs/winnow-cli/internal/core/domain"
	"github.com/veldt-labs/winnow-cli/internal/core/ports/driven"
)

// Bucket labels, best quality first.
const (
	BucketHead   = "head"
	BucketMiddle = "middle"
	BucketTail   = "tail"
)

type row struct {
	head float64
	tail float64
}

// Ensure Table implements the interface.
var _ driven.CutoffTable = (*Table)(nil)

// Table maps (language, perplexity) to a bucket label. The CSV file
// is read on Load, not construction.
//
// Expected format, with header:
//
//	language,head,tail
//	tr,100,500
type Table struct {
	path string
	rows map[string]row
}

// New creates a table for the CSV file at path.
func New(path string) *Table {
	return &Table{path: path}
}

// Load reads and validates the cutoff CSV.
func (t *Table) Load() error {
	f, err := os.Open(t.path)
	if err != nil {
		return fmt.Errorf("open cutoff table: %w", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return fmt.Errorf("parse cutoff table: %w", err)
	}
	if len(records) < 2 {
		return fmt.Errorf("cutoff table %s has no rows", t.path)
	}

	t.rows = make(map[string]row, len(records)-1)
	for i, rec := range records[1:] {
		if len(rec) != 3 {
			return fmt.Errorf("cutoff table row %d: want 3 columns, got %d", i+2, len(rec))
		}
		head, err := strconv.ParseFloat(rec[1], 64)
		if err != nil {
			return fmt.Errorf("cutoff table row %d: bad head threshold %q", i+2, rec[1])
		}
		tail, err := strconv.ParseFloat(rec[2], 64)
		if err != nil {
			return fmt.Errorf("cutoff table row %d: bad tail threshold %q", i+2, rec[2])
		}
		if head > tail {
			return fmt.Errorf("cutoff table row %d: head %v above tail %v", i+2, head, tail)
		}
		t.rows[rec[0]] = row{head: head, tail: tail}
	}
	return nil
}

// Bucket returns the label for a perplexity value. Values at a
// threshold fall into the better bucket.
func (t *Table) Bucket(language string, perplexity float64) (string, error) {
	if t.rows == nil {
		return "", fmt.Errorf("cutoff table not loaded")
	}
	r, ok := t.rows[language]
	if !ok {
		return "", fmt.Errorf("%w: %s", domain.ErrNoCutoffEntry, language)
	}
	switch {
	case perplexity <= r.head:
		return BucketHead, nil
	case perplexity <= r.tail:
		return BucketMiddle, nil
	default:
		return BucketTail, nil
	}
}
