package migrations

import (
	"os"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListMigrationsSortsAndFilters(t *testing.T) {
	fsys := fstest.MapFS{
		"002_feedback_index.sql": {Data: []byte("SELECT 1;")},
		"001_init.sql":           {Data: []byte("SELECT 1;")},
		"README.md":              {Data: []byte("docs")},
		"archive/000_old.sql":    {Data: []byte("SELECT 1;")},
	}

	files, err := listMigrations(fsys)
	require.NoError(t, err)

	assert.Equal(t, []migrationFile{
		{Name: "001_init.sql", Version: "001"},
		{Name: "002_feedback_index.sql", Version: "002"},
	}, files)
}

func TestListMigrationsRejectsDuplicateVersions(t *testing.T) {
	fsys := fstest.MapFS{
		"001_init.sql":  {Data: []byte("SELECT 1;")},
		"001_again.sql": {Data: []byte("SELECT 1;")},
	}

	_, err := listMigrations(fsys)
	assert.ErrorContains(t, err, "duplicate migration version 001")
}

func TestRepositoryMigrationsAreListable(t *testing.T) {
	files, err := listMigrations(os.DirFS("../../../migrations"))
	require.NoError(t, err)
	require.NotEmpty(t, files)
	assert.Equal(t, "001", files[0].Version)
}
