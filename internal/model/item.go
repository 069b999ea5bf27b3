package model

import (
	"sort"
	"strings"
	"time"

	"github.com/uptrace/bun"
)

// DefaultCategory is used for items stored without a category.
const DefaultCategory = "General"

// Item is a physical inventory item (prop, costume, piece of equipment).
type Item struct {
	bun.BaseModel `bun:"table:items,alias:i"`

	ID        int64     `bun:"id,pk,autoincrement" json:"id"`
	Name      string    `bun:"name,notnull" json:"name"`
	Category  string    `bun:"category,notnull" json:"category"`
	CrewTag   string    `bun:"crew_tag,notnull" json:"crew_tag"`
	Location  string    `bun:"location,notnull" json:"location"`
	InUse     bool      `bun:"in_use,notnull" json:"in_use"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,notnull,default:current_timestamp" json:"updated_at"`
}

// ItemInput holds the user-editable fields of an item.
type ItemInput struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	CrewTag  string `json:"crew_tag"`
	Location string `json:"location"`
	InUse    bool   `json:"in_use"`
}

// ItemFilter narrows an item listing. Zero-valued fields do not filter;
// the rest are combined with AND.
type ItemFilter struct {
	NameQuery  string
	Categories []string
	Tags       []string
	Locations  []string
	InUse      *bool
}

// Sort keys accepted by SortItems.
const (
	SortByName     = "name"
	SortByCategory = "category"
	SortByCrewTag  = "crew_tag"
	SortByLocation = "location"
	SortByInUse    = "in_use"
)

// SortItems re-orders items in place by the given key. Text keys compare
// case-insensitively; SortByInUse puts in-use items first. Unknown keys
// fall back to name.
func SortItems(items []Item, key string) {
	var text func(Item) string
	switch key {
	case SortByCategory:
		text = func(it Item) string { return it.Category }
	case SortByCrewTag:
		text = func(it Item) string { return it.CrewTag }
	case SortByLocation:
		text = func(it Item) string { return it.Location }
	case SortByInUse:
		sort.SliceStable(items, func(a, b int) bool {
			return items[a].InUse && !items[b].InUse
		})
		return
	default:
		text = func(it Item) string { return it.Name }
	}
	sort.SliceStable(items, func(a, b int) bool {
		return strings.ToLower(text(items[a])) < strings.ToLower(text(items[b]))
	})
}
