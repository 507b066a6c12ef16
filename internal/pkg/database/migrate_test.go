package database

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationFiles_SortedAndFiltered(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"0002_leave.sql", "0001_init.sql", "README.md"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("SELECT 1;"), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "0003_dir.sql"), 0o755))

	files, err := migrationFiles(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"0001_init.sql", "0002_leave.sql"}, files)
}

func TestMigrationFiles_MissingDir(t *testing.T) {
	_, err := migrationFiles(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}
