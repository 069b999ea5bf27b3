package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/uptrace/bun"

	"github.com/stagecrew/stageinv/internal/model"
)

// ListLocations returns the managed location names sorted
// case-insensitively. Until any location is managed, it falls back to the
// distinct locations recorded on items.
func ListLocations(ctx context.Context, db *bun.DB) ([]string, error) {
	names := make([]string, 0)
	err := db.NewSelect().
		Model((*model.Location)(nil)).
		Column("name").
		OrderExpr("name COLLATE NOCASE").
		Scan(ctx, &names)
	if err != nil {
		return nil, fmt.Errorf("listing locations: %w", err)
	}
	if len(names) > 0 {
		return names, nil
	}
	return distinctItemColumn(ctx, db, "location")
}

// AddLocation adds a managed location. Blank names are ignored, and names
// already present (compared case-insensitively) are left alone.
func AddLocation(ctx context.Context, db *bun.DB, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}

	return db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		exists, err := tx.NewSelect().
			Model((*model.Location)(nil)).
			Where("name = ? COLLATE NOCASE", name).
			Exists(ctx)
		if err != nil {
			return fmt.Errorf("checking location: %w", err)
		}
		if exists {
			return nil
		}

		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO locations (name) VALUES (?)`, name,
		); err != nil {
			return fmt.Errorf("adding location: %w", err)
		}
		return nil
	})
}
