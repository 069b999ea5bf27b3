package model

import "time"

// Announcement is a short message on the announcements board.
type Announcement struct {
	ID     string    `json:"id"`
	Text   string    `json:"text"`
	Author string    `json:"author"`
	TS     time.Time `json:"ts"`
}
