// Package hashes persists document fingerprints as a flat file of
// fixed-width binary values, one per fingerprinted document in pass-1
// stream order.
package hashes

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/veldt-labs/winnow-cli/internal/core/domain"
	"github.com/veldt-labs/winnow-cli/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.FingerprintStore = (*Store)(nil)

// Store is a file-backed fingerprint store. Appends accumulate in
// memory and Flush persists them in one atomic step: the file is
// written to a temporary path and renamed into place, so a crashed
// pass 1 never leaves a partial store that looks complete.
type Store struct {
	path    string
	pending []domain.Fingerprint
}

// NewStore creates a store addressed by path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// DefaultPath derives the conventional store path from a corpus path.
func DefaultPath(corpusPath string) string {
	ext := filepath.Ext(corpusPath)
	if ext == ".gz" {
		corpusPath = corpusPath[:len(corpusPath)-len(ext)]
		ext = filepath.Ext(corpusPath)
	}
	return corpusPath[:len(corpusPath)-len(ext)] + ".hashes"
}

// Append records one fingerprint for the next Flush.
func (s *Store) Append(fp domain.Fingerprint) error {
	s.pending = append(s.pending, fp)
	return nil
}

// Flush atomically writes all appended fingerprints to the store path.
func (s *Store) Flush() error {
	buf := make([]byte, 0, len(s.pending)*domain.FingerprintSize)
	for _, fp := range s.pending {
		buf = append(buf, fp[:]...)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, buf, 0600); err != nil {
		return fmt.Errorf("write fingerprint store: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("commit fingerprint store: %w", err)
	}
	return nil
}

// Load reads all fingerprints in append order.
func (s *Store) Load() ([]domain.Fingerprint, error) {
	buf, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrStoreIncomplete, s.path)
		}
		return nil, fmt.Errorf("read fingerprint store: %w", err)
	}
	if len(buf)%domain.FingerprintSize != 0 {
		return nil, fmt.Errorf("%w: size %d not a multiple of %d",
			domain.ErrStoreIncomplete, len(buf), domain.FingerprintSize)
	}

	fps := make([]domain.Fingerprint, len(buf)/domain.FingerprintSize)
	for i := range fps {
		copy(fps[i][:], buf[i*domain.FingerprintSize:])
	}
	return fps, nil
}
