package datastore

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, path string) *DataStore {
	t.Helper()
	cfg := DefaultConfig(path)
	cfg.AutoSaveInterval = 0 // no background loop in tests
	ds, err := New(cfg)
	require.NoError(t, err)
	return ds
}

func TestSetGetDelete(t *testing.T) {
	ds := newTestStore(t, filepath.Join(t.TempDir(), "store.json"))
	defer ds.Close()

	_, ok := ds.Get("missing")
	assert.False(t, ok)

	ds.Set("k", "v")
	v, ok := ds.Get("k")
	require.True(t, ok)
	assert.Equal(t, "v", v)

	ds.Delete("k")
	_, ok = ds.Get("k")
	assert.False(t, ok)
}

func TestPersistenceRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")

	ds := newTestStore(t, path)
	ds.Set("greeting", "hello")
	ds.Set("count", 3.0)
	require.NoError(t, ds.Close())

	reopened := newTestStore(t, path)
	defer reopened.Close()

	v, ok := reopened.Get("greeting")
	require.True(t, ok)
	assert.Equal(t, "hello", v)

	n, ok := reopened.Get("count")
	require.True(t, ok)
	assert.Equal(t, 3.0, n)
}

func TestOpenMissingFile(t *testing.T) {
	ds := newTestStore(t, filepath.Join(t.TempDir(), "does-not-exist.json"))
	defer ds.Close()
	assert.Empty(t, ds.Keys())
}

func TestCloseTwice(t *testing.T) {
	ds := newTestStore(t, filepath.Join(t.TempDir(), "store.json"))
	require.NoError(t, ds.Close())
	require.NoError(t, ds.Close())
}
