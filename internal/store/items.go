package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/uptrace/bun"

	"github.com/stagecrew/stageinv/internal/model"
)

// CreateItem stores a new item and returns it as persisted. An empty
// category is stored as model.DefaultCategory. Input is expected to have
// been validated by the caller.
func CreateItem(ctx context.Context, db *bun.DB, in model.ItemInput) (*model.Item, error) {
	item := &model.Item{
		Name:     in.Name,
		Category: categoryOrDefault(in.Category),
		CrewTag:  in.CrewTag,
		Location: in.Location,
		InUse:    in.InUse,
	}

	_, err := db.NewInsert().
		Model(item).
		Column("name", "category", "crew_tag", "location", "in_use").
		Returning("id").
		Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("creating item: %w", err)
	}

	return GetItem(ctx, db, item.ID)
}

// GetItem returns an item by ID, or nil if it does not exist.
func GetItem(ctx context.Context, db *bun.DB, id int64) (*model.Item, error) {
	item := new(model.Item)
	err := db.NewSelect().Model(item).Where("id = ?", id).Limit(1).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting item: %w", err)
	}
	return item, nil
}

// ListItems returns items matching every set field of the filter, ordered
// by name case-insensitively.
func ListItems(ctx context.Context, db *bun.DB, f model.ItemFilter) ([]model.Item, error) {
	items := make([]model.Item, 0)
	q := db.NewSelect().Model(&items)

	if f.NameQuery != "" {
		q = q.Where("LOWER(name) LIKE ? ESCAPE '!'", "%"+escapeLike(strings.ToLower(f.NameQuery))+"%")
	}
	if len(f.Categories) > 0 {
		q = q.Where("category IN (?)", bun.In(f.Categories))
	}
	if len(f.Tags) > 0 {
		q = q.Where("crew_tag IN (?)", bun.In(f.Tags))
	}
	if len(f.Locations) > 0 {
		q = q.Where("location IN (?)", bun.In(f.Locations))
	}
	if f.InUse != nil {
		q = q.Where("in_use = ?", *f.InUse)
	}

	if err := q.OrderExpr("name COLLATE NOCASE ASC, id ASC").Scan(ctx); err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	return items, nil
}

// UpdateItem overwrites all editable fields of an item. Missing IDs are a
// no-op.
func UpdateItem(ctx context.Context, db *bun.DB, id int64, in model.ItemInput) error {
	_, err := db.NewUpdate().
		Model((*model.Item)(nil)).
		Set("name = ?", in.Name).
		Set("category = ?", categoryOrDefault(in.Category)).
		Set("crew_tag = ?", in.CrewTag).
		Set("location = ?", in.Location).
		Set("in_use = ?", in.InUse).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("updating item: %w", err)
	}
	return nil
}

// SetItemInUse updates only the in-use flag. Missing IDs are a no-op.
func SetItemInUse(ctx context.Context, db *bun.DB, id int64, inUse bool) error {
	_, err := db.NewUpdate().
		Model((*model.Item)(nil)).
		Set("in_use = ?", inUse).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("setting item in use: %w", err)
	}
	return nil
}

// DeleteItem removes an item. Missing IDs are a no-op. Any attached image
// must be removed by the caller.
func DeleteItem(ctx context.Context, db *bun.DB, id int64) error {
	_, err := db.NewDelete().
		Model((*model.Item)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("deleting item: %w", err)
	}
	return nil
}

// ListTags returns the distinct crew tags in use, sorted case-insensitively.
func ListTags(ctx context.Context, db *bun.DB) ([]string, error) {
	return distinctItemColumn(ctx, db, "crew_tag")
}

// ListCategories returns the distinct categories in use, sorted
// case-insensitively.
func ListCategories(ctx context.Context, db *bun.DB) ([]string, error) {
	return distinctItemColumn(ctx, db, "category")
}

func distinctItemColumn(ctx context.Context, db *bun.DB, column string) ([]string, error) {
	values := make([]string, 0)
	err := db.NewSelect().
		Model((*model.Item)(nil)).
		Distinct().
		ColumnExpr("?", bun.Ident(column)).
		OrderExpr("? COLLATE NOCASE", bun.Ident(column)).
		Scan(ctx, &values)
	if err != nil {
		return nil, fmt.Errorf("listing distinct %s: %w", column, err)
	}
	return values, nil
}

func categoryOrDefault(category string) string {
	if strings.TrimSpace(category) == "" {
		return model.DefaultCategory
	}
	return category
}

var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// escapeLike makes s match literally inside a LIKE pattern.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
