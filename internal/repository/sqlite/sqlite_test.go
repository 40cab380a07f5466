package sqlite_test

import (
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/Houeta/bundlewatch/internal/models"
	"github.com/Houeta/bundlewatch/internal/repository/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRepository(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	testCases := []struct {
		name        string
		path        func(t *testing.T) string
		expectError bool
	}{
		{
			name:        "Success: new database file",
			path:        func(t *testing.T) string { return filepath.Join(t.TempDir(), "ledger.db") },
			expectError: false,
		},
		{
			name:        "Error: directory does not exist",
			path:        func(t *testing.T) string { return filepath.Join(t.TempDir(), "missing", "ledger.db") },
			expectError: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			repo, err := sqlite.NewRepository(t.Context(), logger, tc.path(t))

			if tc.expectError {
				require.Error(t, err)
				assert.Nil(t, repo)
				return
			}
			require.NoError(t, err)
			require.NoError(t, repo.Close())
		})
	}
}

func TestSchema_LedgerEntriesPrimaryKey(t *testing.T) {
	repo := newTestDB(t)
	ctx := t.Context()
	const insert = `INSERT INTO ledger_entries (channel_id, message_id, machine_name, end_time) VALUES (?, ?, ?, ?)`

	_, err := repo.DB().ExecContext(ctx, insert, "games", "tracking", "a", 100)
	require.NoError(t, err)

	testCases := []struct {
		name        string
		channelID   string
		messageID   string
		machineName string
		expectError bool
	}{
		{name: "same channel, message and listing", channelID: "games", messageID: "tracking", machineName: "a", expectError: true},
		{name: "same listing in another channel", channelID: "books", messageID: "tracking", machineName: "a"},
		{name: "same listing under another message", channelID: "games", messageID: "old-tracking", machineName: "a"},
		{name: "another listing", channelID: "games", messageID: "tracking", machineName: "b"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := repo.DB().ExecContext(ctx, insert, tc.channelID, tc.messageID, tc.machineName, 200)

			if tc.expectError {
				require.ErrorContains(t, err, "UNIQUE constraint failed")
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestRepository_ReopenKeepsLedger(t *testing.T) {
	ctx := t.Context()
	dbPath := filepath.Join(t.TempDir(), "ledger.db")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	saved := models.Ledger{"space_bundle": 1792692000, "tools_bundle": 1792778400}

	repo, err := sqlite.NewRepository(ctx, logger, dbPath)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, saved, "games", "tracking"))
	require.NoError(t, repo.Close())

	reopened, err := sqlite.NewRepository(ctx, logger, dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = reopened.Close() })

	records, err := reopened.Load(ctx, "games", "tracking")

	require.NoError(t, err)
	assert.Equal(t, saved, records)
}
