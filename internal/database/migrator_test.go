package database

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListMigrations_SortedUpFilesOnly(t *testing.T) {
	dir := fstest.MapFS{
		"migrations/0002_add_index.up.sql":            {Data: []byte("CREATE INDEX x ON t (c);")},
		"migrations/0001_create_submissions.up.sql":   {Data: []byte("CREATE TABLE t ();")},
		"migrations/0001_create_submissions.down.sql": {Data: []byte("DROP TABLE t;")},
		"migrations/README.md":                        {Data: []byte("notes")},
	}

	names, err := ListMigrations(dir, "migrations")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"0001_create_submissions.up.sql",
		"0002_add_index.up.sql",
	}, names)
}

func TestListMigrations_MissingDir(t *testing.T) {
	_, err := ListMigrations(fstest.MapFS{}, "migrations")
	assert.Error(t, err)
}

func TestIsUpMigration(t *testing.T) {
	assert.True(t, isUpMigration("0001_create_submissions.up.sql"))
	assert.False(t, isUpMigration("0001_create_submissions.down.sql"))
	assert.False(t, isUpMigration("schema.sql"))
}
