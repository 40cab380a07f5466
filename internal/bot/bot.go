// Package bot mirrors announcements to a Telegram chat.
package bot

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/Houeta/bundlewatch/internal/models"
	"github.com/Houeta/bundlewatch/internal/notifier"
	"gopkg.in/telebot.v4"
)

// Mirror forwards announced products to one Telegram chat.
type Mirror struct {
	bot  API
	log  *slog.Logger
	chat telebot.ChatID
}

func NewMirror(log *slog.Logger, token string, chatID int64, timeout time.Duration) (*Mirror, error) {
	bot, err := telebot.NewBot(telebot.Settings{
		Token:  token,
		Client: &http.Client{Timeout: timeout},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Telegram bot: %w", err)
	}
	log.Info("Authorized on account", "account", bot.Me.Username)

	return &Mirror{bot: bot, log: log, chat: telebot.ChatID(chatID)}, nil
}

// Forward sends the product thumbnail with a short HTML caption, or the caption alone
// when the product has no thumbnail.
func (m *Mirror) Forward(ctx context.Context, product models.Product) error {
	const opn = "bot.Forward"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", opn, err)
	}

	var what interface{} = Caption(product)
	if product.ThumbnailURL != "" {
		what = &telebot.Photo{File: telebot.FromURL(product.ThumbnailURL), Caption: Caption(product)}
	}

	if _, err := m.bot.Send(m.chat, what, telebot.ModeHTML); err != nil {
		return fmt.Errorf("%s: failed to forward %s: %w", opn, product.MachineName, err)
	}
	m.log.DebugContext(ctx, "Forwarded announcement", "op", opn, "machine_name", product.MachineName)

	return nil
}

// Caption renders the product name, its pricing and a link to the listing.
func Caption(product models.Product) string {
	var sb strings.Builder
	sb.WriteString("<b>" + html.EscapeString(product.Name) + "</b>\n")
	sb.WriteString(html.EscapeString(notifier.PricingText(product)) + "\n")
	fmt.Fprintf(&sb, "Ends %s\n", product.EndTime.UTC().Format("2006-01-02 15:04 MST"))
	fmt.Fprintf(&sb, `<a href="%s">Open listing</a>`, html.EscapeString(product.ProductURL))

	return sb.String()
}
