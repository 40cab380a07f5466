// Package discord is a minimal Discord REST client: it reads, edits and sends channel
// messages and crossposts them from announcement channels.
package discord

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// DefaultAPIURL is the versioned Discord REST root.
const DefaultAPIURL = "https://discord.com/api/v10"

// APIError is returned for any non-2xx response.
type APIError struct {
	Method string
	Path   string
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("discord %s %s: status %d: %s", e.Method, e.Path, e.Status, e.Body)
}

// Message is the subset of a Discord message the bot needs.
type Message struct {
	ID        string `json:"id"`
	ChannelID string `json:"channel_id"`
	Content   string `json:"content"`
}

type Client struct {
	log  *slog.Logger
	http *resty.Client
}

func NewClient(log *slog.Logger, apiURL, token string, timeout time.Duration) *Client {
	httpClient := resty.New()
	httpClient.SetBaseURL(strings.TrimRight(apiURL, "/"))
	httpClient.SetHeader("Authorization", "Bot "+token)
	httpClient.SetHeader("User-Agent", "DiscordBot (https://github.com/Houeta/bundlewatch, 1.0)")
	httpClient.SetTimeout(timeout)

	return &Client{log: log, http: httpClient}
}

// GetMessage fetches a single message.
func (c *Client) GetMessage(ctx context.Context, channelID, messageID string) (*Message, error) {
	const opn = "discord.GetMessage"

	path := fmt.Sprintf("/channels/%s/messages/%s", channelID, messageID)
	res, err := c.http.R().SetContext(ctx).Get(path)
	if err = checkResponse(http.MethodGet, path, res, err); err != nil {
		return nil, fmt.Errorf("%s: %w", opn, err)
	}

	var msg Message
	if err = json.Unmarshal(res.Body(), &msg); err != nil {
		return nil, fmt.Errorf("%s: failed to decode message: %w", opn, err)
	}

	return &msg, nil
}

// EditMessage replaces the text content of a message the bot authored.
func (c *Client) EditMessage(ctx context.Context, channelID, messageID, content string) error {
	const opn = "discord.EditMessage"

	path := fmt.Sprintf("/channels/%s/messages/%s", channelID, messageID)
	res, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{"content": content}).
		Patch(path)
	if err = checkResponse(http.MethodPatch, path, res, err); err != nil {
		return fmt.Errorf("%s: %w", opn, err)
	}

	c.log.DebugContext(ctx, "Edited message", "channel_id", channelID, "message_id", messageID)

	return nil
}

// SendEmbeds posts a message carrying the given embeds and returns the created message.
func (c *Client) SendEmbeds(ctx context.Context, channelID string, embeds ...Embed) (*Message, error) {
	const opn = "discord.SendEmbeds"

	path := fmt.Sprintf("/channels/%s/messages", channelID)
	res, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(messagePayload{Embeds: embeds}).
		Post(path)
	if err = checkResponse(http.MethodPost, path, res, err); err != nil {
		return nil, fmt.Errorf("%s: %w", opn, err)
	}

	var msg Message
	if err = json.Unmarshal(res.Body(), &msg); err != nil {
		return nil, fmt.Errorf("%s: failed to decode created message: %w", opn, err)
	}
	if msg.ID == "" {
		return nil, fmt.Errorf("%s: created message has no id", opn)
	}

	return &msg, nil
}

// Crosspost publishes a message posted in an announcement channel to following channels.
func (c *Client) Crosspost(ctx context.Context, channelID, messageID string) error {
	const opn = "discord.Crosspost"

	path := fmt.Sprintf("/channels/%s/messages/%s/crosspost", channelID, messageID)
	res, err := c.http.R().SetContext(ctx).Post(path)
	if err = checkResponse(http.MethodPost, path, res, err); err != nil {
		return fmt.Errorf("%s: %w", opn, err)
	}

	return nil
}

func checkResponse(method, path string, res *resty.Response, err error) error {
	if err != nil {
		return fmt.Errorf("failed to request %s %s: %w", method, path, err)
	}

	if res.IsError() || res.StatusCode() < http.StatusOK || res.StatusCode() >= http.StatusMultipleChoices {
		return &APIError{Method: method, Path: path, Status: res.StatusCode(), Body: strings.TrimSpace(res.String())}
	}

	return nil
}
