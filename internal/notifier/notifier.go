package notifier

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode"

	"github.com/Houeta/bundlewatch/internal/discord"
	"github.com/Houeta/bundlewatch/internal/models"
)

const (
	// AccentColor is the embed color of every announcement.
	AccentColor = 13313833

	fieldValueLimit = 1024
	truncatedLine   = "- ..."
)

// Publisher sends and crossposts channel messages.
type Publisher interface {
	SendEmbeds(ctx context.Context, channelID string, embeds ...discord.Embed) (*discord.Message, error)
	Crosspost(ctx context.Context, channelID, messageID string) error
}

// Mirror forwards an announcement to a secondary destination.
type Mirror interface {
	Forward(ctx context.Context, product models.Product) error
}

type Notifier struct {
	log       *slog.Logger
	publisher Publisher
	mirror    Mirror
}

// NewNotifier creates a Notifier. mirror may be nil.
func NewNotifier(log *slog.Logger, publisher Publisher, mirror Mirror) *Notifier {
	return &Notifier{log: log, publisher: publisher, mirror: mirror}
}

// Announce publishes the product to the channel and crossposts it.
// Only a failed send is an error; crosspost and mirror failures are logged.
func (n *Notifier) Announce(ctx context.Context, channelID string, product models.Product) error {
	const opn = "notifier.Announce"
	log := n.log.With("op", opn, "channel_id", channelID, "machine_name", product.MachineName)

	log.InfoContext(ctx, "Sending announcement")
	msg, err := n.publisher.SendEmbeds(ctx, channelID, BuildEmbed(product))
	if err != nil {
		return fmt.Errorf("%s: failed to send announcement for %s: %w", opn, product.MachineName, err)
	}

	log.InfoContext(ctx, "Crossposting announcement", "message_id", msg.ID)
	if err = n.publisher.Crosspost(ctx, channelID, msg.ID); err != nil {
		log.WarnContext(ctx, "Crosspost failed", "message_id", msg.ID, "error", err)
	}

	if n.mirror != nil {
		if err = n.mirror.Forward(ctx, product); err != nil {
			log.WarnContext(ctx, "Mirror forward failed", "error", err)
		}
	}

	return nil
}

// BuildEmbed renders the announcement of a product.
func BuildEmbed(product models.Product) discord.Embed {
	fields := []discord.EmbedField{
		{Name: "Pricing", Value: PricingText(product), Inline: true},
		{Name: "Offer ends", Value: fmt.Sprintf("<t:%d:R>", product.EndTime.Unix()), Inline: true},
	}

	if len(product.ItemNames) > 0 {
		fields = append(fields, discord.EmbedField{Name: "Items", Value: BulletList(product.ItemNames)})
	}

	if len(product.CharityNames) > 0 {
		fields = append(fields, discord.EmbedField{Name: "Charities", Value: BulletList(product.CharityNames)})
	}

	return discord.Embed{
		Title:       product.Name,
		URL:         product.ProductURL,
		Description: product.DetailText,
		Timestamp:   product.StartTime.UTC().Format(time.RFC3339),
		Color:       AccentColor,
		Image:       &discord.EmbedImage{URL: product.ThumbnailURL},
		Footer:      &discord.EmbedFooter{Text: product.Author},
		Fields:      fields,
	}
}

// PricingText formats the price range and MSRP of a product.
func PricingText(product models.Product) string {
	if product.LowPrice == product.HighPrice {
		return fmt.Sprintf("%d$ (MSRP %d$)", product.LowPrice, product.MSRP)
	}

	return fmt.Sprintf("%d$ ~ %d$ (MSRP %d$)", product.LowPrice, product.HighPrice, product.MSRP)
}

// BulletList renders one "- name" line per name. Once the next line would bring the text to
// the embed field limit, the list ends with a "- ..." line instead.
func BulletList(names []string) string {
	var sb strings.Builder
	for _, name := range names {
		line := "- " + name + "\n"
		if sb.Len()+len(line) >= fieldValueLimit {
			sb.WriteString(truncatedLine)
			break
		}
		sb.WriteString(line)
	}

	return strings.TrimRightFunc(sb.String(), unicode.IsSpace)
}
