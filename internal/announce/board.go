// Package announce implements the announcements board: a short list of
// messages kept in a single JSON document.
package announce

import (
	"fmt"
	"sort"

	"github.com/samber/lo"

	"github.com/stagecrew/stageinv/internal/jsonfile"
	"github.com/stagecrew/stageinv/internal/model"
)

// DefaultLimit is the number of announcements shown by default.
const DefaultLimit = 5

// SeedText is the message a new board starts with.
const SeedText = "Welcome to STAGE Inventory! Use this board for quick updates."

// File is the persisted board document.
type File struct {
	Announcements []model.Announcement `json:"announcements"`
}

// Board reads and writes announcements. Each call loads the whole
// document, changes it in memory, and saves it back; concurrent writers
// are not coordinated and the last save wins.
type Board struct {
	doc   jsonfile.Document[File]
	clock Clock
	ids   IDGenerator
}

// New returns a Board backed by doc.
func New(doc jsonfile.Document[File], clock Clock, ids IDGenerator) *Board {
	return &Board{doc: doc, clock: clock, ids: ids}
}

// SeedFunc returns the initializer for a missing board document: a single
// welcome message authored by "System".
func SeedFunc(clock Clock) func() File {
	return func() File {
		return File{Announcements: []model.Announcement{{
			ID:     "seed",
			Text:   SeedText,
			Author: "System",
			TS:     clock.Now().UTC(),
		}}}
	}
}

// List returns announcements newest first. A limit of zero or less
// returns all of them.
func (b *Board) List(limit int) ([]model.Announcement, error) {
	f, err := b.doc.Load()
	if err != nil {
		return nil, fmt.Errorf("loading announcements: %w", err)
	}

	anns := f.Announcements
	if anns == nil {
		anns = []model.Announcement{}
	}
	sort.SliceStable(anns, func(i, j int) bool {
		return anns[i].TS.After(anns[j].TS)
	})

	if limit > 0 && len(anns) > limit {
		anns = anns[:limit]
	}
	return anns, nil
}

// Add posts a new announcement stamped with the current UTC time. Text is
// expected to have been validated by the caller.
func (b *Board) Add(text, author string) (model.Announcement, error) {
	f, err := b.doc.Load()
	if err != nil {
		return model.Announcement{}, fmt.Errorf("loading announcements: %w", err)
	}

	ann := model.Announcement{
		ID:     b.ids.New(),
		Text:   text,
		Author: author,
		TS:     b.clock.Now().UTC(),
	}
	f.Announcements = append(f.Announcements, ann)

	if err := b.doc.Save(f); err != nil {
		return model.Announcement{}, fmt.Errorf("saving announcements: %w", err)
	}
	return ann, nil
}

// Delete removes the announcement with the given ID. Unknown IDs are a
// no-op.
func (b *Board) Delete(id string) error {
	f, err := b.doc.Load()
	if err != nil {
		return fmt.Errorf("loading announcements: %w", err)
	}

	f.Announcements = lo.Reject(f.Announcements, func(a model.Announcement, _ int) bool {
		return a.ID == id
	})

	if err := b.doc.Save(f); err != nil {
		return fmt.Errorf("saving announcements: %w", err)
	}
	return nil
}
