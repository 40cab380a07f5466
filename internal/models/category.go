package models

import "encoding/json"

// Category is one of the fixed listing groups, each with its own channel and tracking message.
type Category struct {
	Key       string // Key is the category key in the landing page data: games, books, software.
	Name      string
	ChannelID string
	MessageID string
}

// Catalog holds the raw listing entries of every category found on the landing page, keyed by category key.
type Catalog map[string][]json.RawMessage

// SyncReport - result of one synchronization pass over a category.
type SyncReport struct {
	Category  string
	Announced []string
	Skipped   []string
	Pruned    []string
}
