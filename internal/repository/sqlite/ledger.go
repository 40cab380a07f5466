package sqlite

import (
	"context"
	"fmt"

	"github.com/Houeta/bundlewatch/internal/models"
)

// Load returns the ledger kept for the channel and tracking message. A pair that was never
// saved yields an empty ledger.
func (r *Repository) Load(ctx context.Context, channelID, messageID string) (models.Ledger, error) {
	const opn = "repository.sqlite.Load"

	rows, err := r.db.QueryContext(
		ctx,
		"SELECT machine_name, end_time FROM ledger_entries WHERE channel_id = ? AND message_id = ?",
		channelID, messageID,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get ledger entries: %w", opn, err)
	}
	defer rows.Close()

	records := models.Ledger{}
	for rows.Next() {
		var (
			name string
			end  int64
		)
		if err = rows.Scan(&name, &end); err != nil {
			return nil, fmt.Errorf("%s: failed to scan ledger entry: %w", opn, err)
		}
		records[name] = end
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows iteration error: %w", opn, err)
	}

	r.log.DebugContext(ctx, "Loaded ledger", "op", opn, "channel_id", channelID, "entries", len(records))

	return records, nil
}

// Save atomically replaces the ledger of the channel and tracking message using a transaction.
func (r *Repository) Save(ctx context.Context, records models.Ledger, channelID, messageID string) error {
	const opn = "repository.sqlite.Save"

	// 1. begin transaction
	tx, err := r.db.BeginTx(ctx, nil) //nolint:varnamelen // tx its a default naming for transaction
	if err != nil {
		return fmt.Errorf("%s: failed to begin transaction: %w", opn, err)
	}
	defer tx.Rollback() //nolint:errcheck // returns sql.ErrTxDone after a successful commit

	// 2. Completely clear the ledger of this pair, the new one replaces it.
	_, err = tx.ExecContext(
		ctx,
		"DELETE FROM ledger_entries WHERE channel_id = ? AND message_id = ?",
		channelID, messageID,
	)
	if err != nil {
		return fmt.Errorf("%s: failed to delete old ledger entries: %w", opn, err)
	}

	// 3. Preparing a request for the effective insertion of the entries.
	stmt, err := tx.PrepareContext(
		ctx,
		"INSERT INTO ledger_entries (channel_id, message_id, machine_name, end_time) VALUES (?, ?, ?, ?)",
	)
	if err != nil {
		return fmt.Errorf("%s: failed to prepare insert statement: %w", opn, err)
	}
	defer stmt.Close()

	// 4. Insert entries in key order.
	for _, name := range records.Keys() {
		if _, err = stmt.ExecContext(ctx, channelID, messageID, name, records[name]); err != nil {
			return fmt.Errorf("%s: failed to insert ledger entry %s: %w", opn, name, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%s: failed to commit transaction: %w", opn, err)
	}

	r.log.DebugContext(ctx, "Saved ledger", "op", opn, "channel_id", channelID, "entries", len(records))

	return nil
}
