package sqlite

import (
	"database/sql"
	"log/slog"
)

// NewForTest wraps an existing connection without touching its schema.
func NewForTest(dtb *sql.DB) *Repository {
	return &Repository{db: dtb, log: slog.New(slog.DiscardHandler)}
}
