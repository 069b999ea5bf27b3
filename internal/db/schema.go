package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/uptrace/bun"

	"github.com/stagecrew/stageinv/internal/model"
)

// schema is the full database schema.
const schema = `
CREATE TABLE IF NOT EXISTS items (
    id         INTEGER PRIMARY KEY AUTOINCREMENT,
    name       TEXT NOT NULL,
    category   TEXT NOT NULL DEFAULT 'General',
    crew_tag   TEXT NOT NULL,
    location   TEXT NOT NULL,
    in_use     INTEGER NOT NULL DEFAULT 0,
    created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS locations (
    id   INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS settings (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS revoked_tokens (
    jti        TEXT PRIMARY KEY,
    expires_at DATETIME NOT NULL
);
`

// updatedAtTrigger keeps items.updated_at fresh on every update.
const updatedAtTrigger = `
CREATE TRIGGER IF NOT EXISTS trg_items_updated
AFTER UPDATE ON items
FOR EACH ROW WHEN NEW.updated_at = OLD.updated_at
BEGIN
    UPDATE items SET updated_at = CURRENT_TIMESTAMP WHERE id = OLD.id;
END;
`

// EnsureSchema creates all tables if they don't already exist, adds the
// category column to older item tables, installs the updated_at trigger,
// and seeds the default locations into an empty locations table.
func EnsureSchema(ctx context.Context, db *bun.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}

	if err := ensureCategoryColumn(ctx, db); err != nil {
		return err
	}

	if _, err := db.ExecContext(ctx, updatedAtTrigger); err != nil {
		return fmt.Errorf("creating updated_at trigger: %w", err)
	}

	if err := seedLocations(ctx, db); err != nil {
		return err
	}

	return nil
}

// ensureCategoryColumn is the only migration: databases created before
// categories existed get the column with its default. It never drops or
// rewrites anything.
func ensureCategoryColumn(ctx context.Context, db *bun.DB) error {
	var count int
	err := db.NewRaw(
		`SELECT COUNT(*) FROM pragma_table_info('items') WHERE name = 'category'`,
	).Scan(ctx, &count)
	if err != nil {
		return fmt.Errorf("inspecting items columns: %w", err)
	}
	if count > 0 {
		return nil
	}

	_, err = db.ExecContext(ctx,
		`ALTER TABLE items ADD COLUMN category TEXT NOT NULL DEFAULT 'General'`,
	)
	if err != nil {
		return fmt.Errorf("adding category column: %w", err)
	}
	return nil
}

func seedLocations(ctx context.Context, db *bun.DB) error {
	return db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		count, err := tx.NewSelect().Model((*model.Location)(nil)).Count(ctx)
		if err != nil {
			return fmt.Errorf("counting locations: %w", err)
		}
		if count > 0 {
			return nil
		}

		for _, name := range model.DefaultLocations {
			if _, err := tx.ExecContext(ctx,
				`INSERT OR IGNORE INTO locations (name) VALUES (?)`, name,
			); err != nil {
				return fmt.Errorf("seeding location %q: %w", name, err)
			}
		}
		return nil
	})
}
