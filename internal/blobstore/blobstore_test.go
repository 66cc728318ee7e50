package blobstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiskStoreRoundTrip(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	require.NoError(t, err)

	key, err := store.Put("w2-2025.pdf", []byte("%PDF-1.4 test"))
	require.NoError(t, err)
	assert.Contains(t, key, "w2-2025.pdf")

	data, err := store.Get(key)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4 test"), data)

	require.NoError(t, store.Delete(key))
	_, err = store.Get(key)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDiskStoreUniqueKeys(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	require.NoError(t, err)

	k1, err := store.Put("receipt.png", []byte("one"))
	require.NoError(t, err)
	k2, err := store.Put("receipt.png", []byte("two"))
	require.NoError(t, err)
	assert.NotEqual(t, k1, k2, "same filename must not collide")

	d1, err := store.Get(k1)
	require.NoError(t, err)
	assert.Equal(t, []byte("one"), d1)
}

func TestDiskStoreDeleteMissing(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	require.NoError(t, err)
	assert.ErrorIs(t, store.Delete("nope"), ErrNotFound)
}

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"w2 2025.pdf", "w2_2025.pdf"},
		{"../../etc/passwd", "passwd"},
		{"résumé.pdf", "r_sum_.pdf"},
		{"", "file"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, sanitizeFileName(tt.in), "input %q", tt.in)
	}
}
