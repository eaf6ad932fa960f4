package hashes

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veldt-labs/winnow-cli/internal/core/domain"
)

// TestStore_RoundTrip tests fingerprints load back in append order
func TestStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corpus.hashes")
	store := NewStore(path)

	fps := []domain.Fingerprint{
		domain.ComputeFingerprint("first"),
		domain.ComputeFingerprint("second"),
		domain.ComputeFingerprint("third"),
	}
	for _, fp := range fps {
		require.NoError(t, store.Append(fp))
	}
	require.NoError(t, store.Flush())

	loaded, err := NewStore(path).Load()

	require.NoError(t, err)
	assert.Equal(t, fps, loaded)
}

// TestStore_Deterministic tests re-running pass 1 produces a
// byte-identical store
func TestStore_Deterministic(t *testing.T) {
	dir := t.TempDir()

	write := func(name string) []byte {
		path := filepath.Join(dir, name)
		store := NewStore(path)
		require.NoError(t, store.Append(domain.ComputeFingerprint("doc one")))
		require.NoError(t, store.Append(domain.ComputeFingerprint("doc two")))
		require.NoError(t, store.Flush())
		raw, err := os.ReadFile(path)
		require.NoError(t, err)
		return raw
	}

	assert.Equal(t, write("a.hashes"), write("b.hashes"))
}

// TestStore_LoadMissing tests an unflushed store is not readable
func TestStore_LoadMissing(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "never.hashes"))

	_, err := store.Load()

	assert.ErrorIs(t, err, domain.ErrStoreIncomplete)
}

// TestStore_LoadTruncated tests a torn file is rejected
func TestStore_LoadTruncated(t *testing.T) {
	path := filepath.Join(t.TempDir(), "torn.hashes")
	require.NoError(t, os.WriteFile(path, []byte{1, 2, 3}, 0600))

	_, err := NewStore(path).Load()

	assert.ErrorIs(t, err, domain.ErrStoreIncomplete)
}

// TestStore_FlushLeavesNoTempFile tests the temporary file is renamed away
func TestStore_FlushLeavesNoTempFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "corpus.hashes")
	store := NewStore(path)
	require.NoError(t, store.Append(domain.ComputeFingerprint("x")))
	require.NoError(t, store.Flush())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "corpus.hashes", entries[0].Name())
}

// TestStore_EmptyFlush tests a corpus with no fingerprints still
// commits an empty, complete store
func TestStore_EmptyFlush(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.hashes")
	store := NewStore(path)
	require.NoError(t, store.Flush())

	fps, err := NewStore(path).Load()

	require.NoError(t, err)
	assert.Empty(t, fps)
}

func TestDefaultPath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"/data/corpus.jsonl", "/data/corpus.hashes"},
		{"/data/corpus.jsonl.gz", "/data/corpus.hashes"},
		{"corpus.json", "corpus.hashes"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, DefaultPath(tt.in))
	}
}
