package file

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore(t *testing.T) {
	dir := t.TempDir()

	store, err := NewConfigStore(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "config.toml"), store.Path())
}

func TestConfigStore_SetAndGet(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set(KeyVerbose, true))
	require.NoError(t, store.Set(KeyMediaDir, "/tmp/media"))
	require.NoError(t, store.Set(KeyDefaultLimit, 25))

	assert.True(t, store.GetBool(KeyVerbose))
	assert.Equal(t, "/tmp/media", store.GetString(KeyMediaDir))
	assert.Equal(t, 25, store.GetInt(KeyDefaultLimit))

	_, ok := store.Get("missing")
	assert.False(t, ok)
	assert.Equal(t, "", store.GetString("missing"))
	assert.Equal(t, 0, store.GetInt("missing"))
	assert.False(t, store.GetBool("missing"))
}

func TestConfigStore_PersistsAcrossLoads(t *testing.T) {
	dir := t.TempDir()

	store, err := NewConfigStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Set(KeyDefaultLimit, 50))

	reopened, err := NewConfigStore(dir)
	require.NoError(t, err)
	// TOML integers come back as int64.
	assert.Equal(t, 50, reopened.GetInt(KeyDefaultLimit))
}

func TestConfigStore_WrongTypes(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set(KeyVerbose, "not a bool"))
	assert.False(t, store.GetBool(KeyVerbose))
	assert.Equal(t, 0, store.GetInt(KeyVerbose))
	assert.Equal(t, "not a bool", store.GetString(KeyVerbose))
}
