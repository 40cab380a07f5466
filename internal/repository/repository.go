// Package repository holds what the ledger store backends share.
package repository

import "errors"

// ErrUnknownBackend is returned for a ledger backend name that is not supported.
var ErrUnknownBackend = errors.New("unknown ledger backend")

const (
	// BackendMessage keeps each ledger in the body of its tracking chat message.
	BackendMessage = "message"
	// BackendSQLite keeps every ledger in a local SQLite database.
	BackendSQLite = "sqlite"
)
