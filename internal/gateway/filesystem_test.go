package gateway

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalFS_WriteFile(t *testing.T) {
	fsys := NewLocalFS()
	dir := t.TempDir()

	t.Run("creates missing parent directories", func(t *testing.T) {
		path := filepath.Join(dir, "assets", "nested", "stats.svg")
		require.NoError(t, fsys.WriteFile(path, []byte("<svg/>")))

		data, err := fsys.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "<svg/>", string(data))
	})

	t.Run("keeps the mode of an existing file", func(t *testing.T) {
		path := filepath.Join(dir, "README.md")
		require.NoError(t, os.WriteFile(path, []byte("old"), 0o600))
		require.NoError(t, fsys.WriteFile(path, []byte("new")))

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	})
}

func TestLocalFS_ReadFile_Missing(t *testing.T) {
	_, err := NewLocalFS().ReadFile(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
