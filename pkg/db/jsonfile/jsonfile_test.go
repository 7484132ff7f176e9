package jsonfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type doc struct {
	Name  string   `json:"name"`
	Items []string `json:"items"`
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "data", "queue.json"))
	require.NoError(t, err)
	return store
}

func TestNewStoreCreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deeper", "queue.json")
	_, err := NewStore(path)
	require.NoError(t, err)

	info, err := os.Stat(filepath.Dir(path))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestLoadMissingFileLeavesZeroValue(t *testing.T) {
	store := newTestStore(t)

	var got doc
	require.NoError(t, store.Load(&got))
	assert.Equal(t, doc{}, got)
}

func TestInitWritesZeroDocumentOnce(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Init(doc{Name: "zero"}))
	require.NoError(t, store.Save(doc{Name: "changed"}))

	// A second Init must not clobber existing contents.
	require.NoError(t, store.Init(doc{Name: "zero"}))

	var got doc
	require.NoError(t, store.Load(&got))
	assert.Equal(t, "changed", got.Name)
}

func TestSaveThenLoadRoundTrip(t *testing.T) {
	store := newTestStore(t)

	want := doc{Name: "queue", Items: []string{"a", "b"}}
	require.NoError(t, store.Save(want))

	var got doc
	require.NoError(t, store.Load(&got))
	assert.Equal(t, want, got)
}

func TestSaveWritesIndentedJSON(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Save(doc{Name: "queue"}))

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Contains(t, string(data), "{\n  \"name\": \"queue\"")
}

func TestLoadCorruptFileFails(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, os.WriteFile(store.Path(), []byte("{not json"), 0o644))

	var got doc
	assert.Error(t, store.Load(&got))
}

func TestLoadEmptyFileIsNotAnError(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, os.WriteFile(store.Path(), nil, 0o644))

	var got doc
	require.NoError(t, store.Load(&got))
	assert.Equal(t, doc{}, got)
}
