package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/Houeta/bundlewatch/internal/bot"
	"github.com/Houeta/bundlewatch/internal/config"
	"github.com/Houeta/bundlewatch/internal/discord"
	"github.com/Houeta/bundlewatch/internal/extractor"
	"github.com/Houeta/bundlewatch/internal/markdown"
	"github.com/Houeta/bundlewatch/internal/models"
	"github.com/Houeta/bundlewatch/internal/notifier"
	"github.com/Houeta/bundlewatch/internal/parser"
	"github.com/Houeta/bundlewatch/internal/repository"
	"github.com/Houeta/bundlewatch/internal/repository/message"
	"github.com/Houeta/bundlewatch/internal/repository/sqlite"
	"github.com/Houeta/bundlewatch/internal/services/synchronizer"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

// app holds what every command needs once the configuration is loaded.
type app struct {
	cfg     *config.Config
	log     *slog.Logger
	discord *discord.Client
	store   synchronizer.LedgerStore
	closers []io.Closer
}

func newRootCmd() *cobra.Command {
	var a app

	root := &cobra.Command{
		Use:           "bundlewatch",
		Short:         "Announce new Humble Bundle listings to Discord",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return a.close()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.sync(cmd)
		},
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "sync",
			Short: "Run one synchronization pass over every category",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return a.sync(cmd)
			},
		},
		&cobra.Command{
			Use:       "ledger <games|books|software>",
			Short:     "Print the ledger of a category",
			Args:      cobra.ExactArgs(1),
			ValidArgs: []string{"games", "books", "software"},
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.showLedger(cmd, args[0])
			},
		},
	)

	return root
}

func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	a.cfg = cfg

	// Set up the logger based on the environment.
	a.log = setupLogger(cfg.Env, cmd.ErrOrStderr())
	a.discord = discord.NewClient(a.log, cfg.Discord.APIURL, cfg.Discord.Token, cfg.HTTPTimeout)

	switch cfg.LedgerBackend {
	case repository.BackendSQLite:
		repo, openErr := sqlite.NewRepository(cmd.Context(), a.log, cfg.StoragePath)
		if openErr != nil {
			return fmt.Errorf("failed to open ledger database: %w", openErr)
		}
		a.store = repo
		a.closers = append(a.closers, repo)
	case repository.BackendMessage:
		a.store = message.NewRepository(a.log, a.discord)
	default:
		return fmt.Errorf("%w: %q", repository.ErrUnknownBackend, cfg.LedgerBackend)
	}

	return nil
}

func (a *app) close() error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c.Close())
	}

	return errors.Join(errs...)
}

func (a *app) sync(cmd *cobra.Command) error {
	ctx := cmd.Context()

	var mirror notifier.Mirror
	if a.cfg.Tg.MirrorEnabled() {
		tg, err := bot.NewMirror(a.log, a.cfg.Tg.Token, a.cfg.Tg.ChatID, a.cfg.Tg.Timeout)
		if err != nil {
			return err
		}
		mirror = tg
	}

	pageParser := parser.NewParser(a.log, a.cfg.BaseURL, a.cfg.HTTPTimeout)
	sync := synchronizer.NewSynchronizer(
		a.log,
		pageParser,
		extractor.NewExtractor(a.log, pageParser, markdown.NewConverter(), pageParser.BaseURL()),
		a.store,
		notifier.NewNotifier(a.log, a.discord, mirror),
		a.cfg.Cooldown,
	)

	a.log.InfoContext(ctx, "Synchronization started")
	reports, err := sync.Run(ctx, a.cfg.Categories())
	for _, report := range reports {
		a.log.InfoContext(
			ctx,
			"Category report",
			"category", report.Category,
			"announced", report.Announced,
			"pruned", report.Pruned,
		)
	}
	if err != nil {
		return fmt.Errorf("synchronization failed: %w", err)
	}
	a.log.InfoContext(ctx, "Synchronization finished")

	return nil
}

func (a *app) showLedger(cmd *cobra.Command, key string) error {
	category, ok := a.cfg.Category(key)
	if !ok {
		return fmt.Errorf("%w: %s", synchronizer.ErrCategoryNotFound, key)
	}

	records, err := a.store.Load(cmd.Context(), category.ChannelID, category.MessageID)
	if err != nil {
		return err
	}

	renderLedger(cmd.OutOrStdout(), category, records, time.Now())

	return nil
}

// renderLedger prints one row per entry, sorted by machine name.
func renderLedger(out io.Writer, category models.Category, records models.Ledger, now time.Time) {
	tw := table.NewWriter()
	tw.SetOutputMirror(out)
	tw.SetTitle(strings.ToUpper(category.Name))
	tw.AppendHeader(table.Row{"Machine name", "Ends", "Status"})
	for _, name := range records.Keys() {
		end := time.Unix(records[name], 0).UTC()
		status := "active"
		if records[name] <= now.Unix() {
			status = "expired"
		}
		tw.AppendRow(table.Row{name, end.Format(time.RFC3339), status})
	}
	tw.AppendFooter(table.Row{"", "Total", len(records)})
	tw.SetStyle(table.StyleRounded)
	tw.Render()
}
