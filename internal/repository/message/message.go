// Package message stores a category ledger in the body of its tracking chat message.
package message

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Houeta/bundlewatch/internal/discord"
	"github.com/Houeta/bundlewatch/internal/ledger"
	"github.com/Houeta/bundlewatch/internal/models"
)

// Client reads and edits chat messages.
type Client interface {
	GetMessage(ctx context.Context, channelID, messageID string) (*discord.Message, error)
	EditMessage(ctx context.Context, channelID, messageID, content string) error
}

type Repository struct {
	log    *slog.Logger
	client Client
}

func NewRepository(log *slog.Logger, client Client) *Repository {
	return &Repository{log: log, client: client}
}

// Load reads and decodes the ledger kept in the tracking message.
func (r *Repository) Load(ctx context.Context, channelID, messageID string) (models.Ledger, error) {
	const opn = "repository.message.Load"

	r.log.InfoContext(ctx, "Fetching ledger", "op", opn, "channel_id", channelID, "message_id", messageID)

	msg, err := r.client.GetMessage(ctx, channelID, messageID)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get tracking message: %w", opn, err)
	}

	records, err := ledger.Decode(msg.Content)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse tracking message %s: %w", opn, messageID, err)
	}

	r.log.DebugContext(ctx, "Parsed ledger", "op", opn, "entries", len(records))

	return records, nil
}

// Save overwrites the tracking message with the encoded ledger.
func (r *Repository) Save(ctx context.Context, records models.Ledger, channelID, messageID string) error {
	const opn = "repository.message.Save"

	r.log.InfoContext(ctx, "Patching ledger", "op", opn, "channel_id", channelID, "message_id", messageID, "entries", len(records))

	if err := r.client.EditMessage(ctx, channelID, messageID, ledger.Encode(records)); err != nil {
		return fmt.Errorf("%s: failed to update tracking message: %w", opn, err)
	}

	return nil
}
