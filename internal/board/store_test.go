package board

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreDefaultsToFalse(t *testing.T) {
	store := NewMemoryStore()
	id := uuid.New()

	assert.False(t, store.Get(id))
	require.NoError(t, store.Set(id, true))
	assert.True(t, store.Get(id))
	require.NoError(t, store.Set(id, false))
	assert.False(t, store.Get(id))
}

func TestFileStorePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "completed-orders.json")
	done, pending := uuid.New(), uuid.New()

	store, err := OpenFileStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Set(done, true))
	require.NoError(t, store.Set(pending, false))

	reopened, err := OpenFileStore(path)
	require.NoError(t, err)
	assert.True(t, reopened.Get(done))
	assert.False(t, reopened.Get(pending))
	assert.False(t, reopened.Get(uuid.New()), "absent key reads as not completed")
}

func TestFileStoreMissingFileIsEmpty(t *testing.T) {
	store, err := OpenFileStore(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)
	assert.False(t, store.Get(uuid.New()))
}

func TestFileStoreRejectsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o600))

	_, err := OpenFileStore(path)
	assert.Error(t, err)
}
