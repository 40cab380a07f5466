package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/Houeta/bundlewatch/internal/models"
	"github.com/Houeta/bundlewatch/internal/repository"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envPrefix = "BW"

var ErrMissingVariable = errors.New("required variable not specified or contains an empty string")

type Config struct {
	Env           string // Env is the current environment: local, development, production.
	BaseURL       string // BaseURL is the storefront root the catalog and detail pages are read from.
	HTTPTimeout   time.Duration
	Cooldown      time.Duration // Cooldown is the pause after every new announcement.
	LedgerBackend string
	StoragePath   string
	Discord       Discord
	Tg            Telegram
}

type Discord struct {
	Token    string
	APIURL   string
	Games    Channel
	EBooks   Channel
	Software Channel
}

// Channel is the announcement channel of a category and the message holding its ledger.
type Channel struct {
	ChannelID string
	MessageID string
}

type Telegram struct {
	Token   string        // Token is an unique telegram bot token. The mirror is off when empty.
	ChatID  int64         // ChatID is the chat announcements are mirrored to.
	Timeout time.Duration // Timeout is the Bot API request timeout.
}

// MirrorEnabled reports whether announcements are forwarded to Telegram.
func (t Telegram) MirrorEnabled() bool {
	return t.Token != "" && t.ChatID != 0
}

var required = []string{
	"BOT_TOKEN",
	"GAME_CHANNEL_ID",
	"GAME_MESSAGE_ID",
	"EBOOK_CHANNEL_ID",
	"EBOOK_MESSAGE_ID",
	"SOFTWARE_CHANNEL_ID",
	"SOFTWARE_MESSAGE_ID",
}

// MustLoad loads the configuration and panics on error.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}

	return cfg
}

// Load reads the configuration from BW_ prefixed environment variables, with a .env file in
// the working directory filling in variables that are not already set.
func Load() (*Config, error) {
	return LoadFrom(".env")
}

// LoadFrom is Load with an explicit dotenv file. A missing file is not an error.
func LoadFrom(envFile string) (*Config, error) {
	const opn = "config.Load"

	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s: failed to read %s: %w", opn, envFile, err)
	}

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	// optional args
	v.SetDefault("ENV", "production")
	v.SetDefault("BASE_URL", "https://www.humblebundle.com")
	v.SetDefault("DISCORD_API_URL", "https://discord.com/api/v10")
	v.SetDefault("HTTP_TIMEOUT", "30s")
	v.SetDefault("COOLDOWN", "1s")
	v.SetDefault("LEDGER_BACKEND", repository.BackendMessage)
	v.SetDefault("STORAGE_PATH", "bundlewatch.db")
	v.SetDefault("TELEGRAM_TIMEOUT", "15s")

	var missing []string
	for _, key := range required {
		if strings.TrimSpace(v.GetString(key)) == "" {
			missing = append(missing, envPrefix+"_"+key)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%s: %w: %s", opn, ErrMissingVariable, strings.Join(missing, ", "))
	}

	backend := v.GetString("LEDGER_BACKEND")
	if backend != repository.BackendMessage && backend != repository.BackendSQLite {
		return nil, fmt.Errorf("%s: %w: %q", opn, repository.ErrUnknownBackend, backend)
	}

	return &Config{
		Env:           v.GetString("ENV"),
		BaseURL:       v.GetString("BASE_URL"),
		HTTPTimeout:   v.GetDuration("HTTP_TIMEOUT"),
		Cooldown:      v.GetDuration("COOLDOWN"),
		LedgerBackend: backend,
		StoragePath:   v.GetString("STORAGE_PATH"),
		Discord: Discord{
			Token:    v.GetString("BOT_TOKEN"),
			APIURL:   v.GetString("DISCORD_API_URL"),
			Games:    Channel{ChannelID: v.GetString("GAME_CHANNEL_ID"), MessageID: v.GetString("GAME_MESSAGE_ID")},
			EBooks:   Channel{ChannelID: v.GetString("EBOOK_CHANNEL_ID"), MessageID: v.GetString("EBOOK_MESSAGE_ID")},
			Software: Channel{ChannelID: v.GetString("SOFTWARE_CHANNEL_ID"), MessageID: v.GetString("SOFTWARE_MESSAGE_ID")},
		},
		Tg: Telegram{
			Token:   v.GetString("TELEGRAM_TOKEN"),
			ChatID:  v.GetInt64("TELEGRAM_CHAT_ID"),
			Timeout: v.GetDuration("TELEGRAM_TIMEOUT"),
		},
	}, nil
}

// Categories returns the three announced categories in processing order.
func (c *Config) Categories() []models.Category {
	return []models.Category{
		{Key: "games", Name: "Games", ChannelID: c.Discord.Games.ChannelID, MessageID: c.Discord.Games.MessageID},
		{Key: "books", Name: "E-books", ChannelID: c.Discord.EBooks.ChannelID, MessageID: c.Discord.EBooks.MessageID},
		{Key: "software", Name: "Software", ChannelID: c.Discord.Software.ChannelID, MessageID: c.Discord.Software.MessageID},
	}
}

// Category returns the category with the given key.
func (c *Config) Category(key string) (models.Category, bool) {
	for _, category := range c.Categories() {
		if category.Key == key {
			return category, true
		}
	}

	return models.Category{}, false
}
