package db

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureSchemaSeedsDefaultLocations(t *testing.T) {
	database := NewTestDB(t)
	ctx := context.Background()

	var names []string
	err := database.NewRaw(`SELECT name FROM locations ORDER BY id`).Scan(ctx, &names)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"West Campus Basement Storage",
		"East Campus Basement Storage",
		"East Campus Theatre Closet",
	}, names)
}

func TestEnsureSchemaIsIdempotent(t *testing.T) {
	database := NewTestDB(t)
	ctx := context.Background()

	_, err := database.ExecContext(ctx, `INSERT INTO locations (name) VALUES ('Fly Loft')`)
	require.NoError(t, err)

	require.NoError(t, EnsureSchema(ctx, database))

	var count int
	require.NoError(t, database.NewRaw(`SELECT COUNT(*) FROM locations`).Scan(ctx, &count))
	assert.Equal(t, 4, count, "re-running the schema must not reseed or drop locations")
}

func TestEnsureSchemaAddsCategoryToLegacyItems(t *testing.T) {
	path := filepath.Join(t.TempDir(), "legacy.sqlite3")
	database, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	ctx := context.Background()

	_, err = database.ExecContext(ctx, `
CREATE TABLE items (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    crew_tag TEXT NOT NULL,
    location TEXT NOT NULL,
    in_use INTEGER NOT NULL DEFAULT 0,
    created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
INSERT INTO items (name, crew_tag, location) VALUES ('Old Trunk', 'Props', 'East Campus Theatre Closet');`)
	require.NoError(t, err)

	require.NoError(t, EnsureSchema(ctx, database))

	var category string
	err = database.NewRaw(`SELECT category FROM items WHERE name = 'Old Trunk'`).Scan(ctx, &category)
	require.NoError(t, err)
	assert.Equal(t, "General", category)
}
