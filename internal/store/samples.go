package store

import (
	"context"

	"github.com/uptrace/bun"

	"github.com/stagecrew/stageinv/internal/model"
)

// SampleItems is a small demo inventory.
var SampleItems = []model.ItemInput{
	{Name: "Mason jar", Category: "Props", CrewTag: "Props", Location: "West Campus Basement Storage"},
	{Name: "Top Hat", Category: "Costumes", CrewTag: "Costumes", Location: "East Campus Theatre Closet"},
	{Name: "XLR Cable 25ft", Category: "Equipment", CrewTag: "Sound", Location: "East Campus Basement Storage", InUse: true},
	{Name: "LED Par Can", Category: "Lighting", CrewTag: "Lights", Location: "West Campus Basement Storage"},
	{Name: "Sawhorse", Category: "Set Pieces", CrewTag: "Set", Location: "East Campus Basement Storage"},
}

// SeedSampleItems adds every sample item and returns the created records.
// Running it twice adds the samples twice.
func SeedSampleItems(ctx context.Context, db *bun.DB) ([]model.Item, error) {
	created := make([]model.Item, 0, len(SampleItems))
	for _, in := range SampleItems {
		item, err := CreateItem(ctx, db, in)
		if err != nil {
			return created, err
		}
		created = append(created, *item)
	}
	return created, nil
}
