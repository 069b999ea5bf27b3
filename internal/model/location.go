package model

import "github.com/uptrace/bun"

// Location is a managed storage location name.
type Location struct {
	bun.BaseModel `bun:"table:locations,alias:l"`

	ID   int64  `bun:"id,pk,autoincrement" json:"id"`
	Name string `bun:"name,notnull,unique" json:"name"`
}

// DefaultLocations are seeded into an empty locations table.
var DefaultLocations = []string{
	"West Campus Basement Storage",
	"East Campus Basement Storage",
	"East Campus Theatre Closet",
}

// PresetTags are the crew tags offered when adding or editing items.
var PresetTags = []string{
	"Lights",
	"Sound",
	"Set",
	"Props",
	"Costumes",
	"General Tech",
	"Theatre Class Usage",
}

// PresetCategories are the categories offered when adding or editing items.
var PresetCategories = []string{
	"Props",
	"Costumes",
	"Set Pieces",
	"Lighting",
	"Sound",
	"Equipment",
	"General",
}
