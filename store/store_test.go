package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	m := NewMemoryStore()
	_, ok := m.Get("level")
	assert.False(t, ok)

	require.NoError(t, m.Set("level", "4"))
	v, ok := m.Get("level")
	assert.True(t, ok)
	assert.Equal(t, "4", v)
}

func TestFileStorePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "settings.json")

	fs, err := OpenFileStore(path)
	require.NoError(t, err)
	assert.Empty(t, fs.Keys())

	require.NoError(t, fs.Set("wallMode", "teleport"))
	require.NoError(t, fs.Set("highScore", "12"))

	reopened, err := OpenFileStore(path)
	require.NoError(t, err)
	v, ok := reopened.Get("wallMode")
	assert.True(t, ok)
	assert.Equal(t, "teleport", v)
	assert.Equal(t, []string{"highScore", "wallMode"}, reopened.Keys())

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestFileStoreRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := OpenFileStore(path)
	assert.Error(t, err)
}
