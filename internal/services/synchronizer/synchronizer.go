package synchronizer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Houeta/bundlewatch/internal/models"
)

// DefaultCooldown is the pause after every new announcement.
const DefaultCooldown = time.Second

// ErrCategoryNotFound is returned when the catalog has no listings for a category.
var ErrCategoryNotFound = errors.New("category not found in catalog")

// Extractor turns a catalog entry into a Product.
type Extractor interface {
	Extract(ctx context.Context, entry json.RawMessage) (models.Product, error)
}

// LedgerStore loads and replaces the ledger of a category.
type LedgerStore interface {
	Load(ctx context.Context, channelID, messageID string) (models.Ledger, error)
	Save(ctx context.Context, records models.Ledger, channelID, messageID string) error
}

// Announcer publishes a product to a channel.
type Announcer interface {
	Announce(ctx context.Context, channelID string, product models.Product) error
}

// CatalogSource reads the current listings of every category.
type CatalogSource interface {
	FetchCatalog(ctx context.Context) (models.Catalog, error)
}

// Synchronizer brings each category channel in line with the catalog.
type Synchronizer struct {
	log       *slog.Logger
	catalog   CatalogSource
	extractor Extractor
	store     LedgerStore
	announcer Announcer
	cooldown  time.Duration
	now       func() time.Time
}

type Option func(*Synchronizer)

// WithClock replaces the clock used to prune expired entries.
func WithClock(now func() time.Time) Option {
	return func(s *Synchronizer) {
		s.now = now
	}
}

// NewSynchronizer creates a new Synchronizer instance.
func NewSynchronizer(
	log *slog.Logger,
	catalog CatalogSource,
	extractor Extractor,
	store LedgerStore,
	announcer Announcer,
	cooldown time.Duration,
	opts ...Option,
) *Synchronizer {
	s := &Synchronizer{
		log:       log,
		catalog:   catalog,
		extractor: extractor,
		store:     store,
		announcer: announcer,
		cooldown:  cooldown,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Run fetches the catalog once and synchronizes every category in order.
// A failed category does not stop the remaining ones; all failures are returned joined.
func (s *Synchronizer) Run(ctx context.Context, categories []models.Category) ([]*models.SyncReport, error) {
	const opn = "synchronizer.Run"
	log := s.log.With("op", opn)

	log.InfoContext(ctx, "Fetching catalog")
	catalog, err := s.catalog.FetchCatalog(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to fetch catalog: %w", opn, err)
	}

	var (
		reports []*models.SyncReport
		errs    []error
	)
	for _, category := range categories {
		if err = ctx.Err(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", opn, err))
			break
		}

		entries, ok := catalog[category.Key]
		if !ok {
			log.ErrorContext(ctx, "Category is missing from catalog", "category", category.Key)
			errs = append(errs, fmt.Errorf("%s: %s: %w", opn, category.Key, ErrCategoryNotFound))
			continue
		}

		report, syncErr := s.SyncCategory(ctx, category, entries)
		if syncErr != nil {
			log.ErrorContext(ctx, "Category synchronization failed", "category", category.Key, "error", syncErr)
			errs = append(errs, syncErr)
			continue
		}
		reports = append(reports, report)
	}

	return reports, errors.Join(errs...)
}

// SyncCategory announces every listing of the category that is not in its ledger yet,
// prunes expired ledger entries and saves the ledger.
//
// Every entry is extracted before anything else happens: one bad entry fails the category
// and leaves the stored ledger untouched. A listing is marked in the ledger before it is
// announced, so a failed announcement is never retried.
//
// When an announcement fails or the pass is cancelled during the cooldown, the ledger marked
// so far is still saved before the error is returned. This departs on purpose from a strict
// save-only-on-success pass: listings announced earlier in the same pass, and the one that
// failed, stay marked and are not announced again on the next run.
func (s *Synchronizer) SyncCategory(
	ctx context.Context,
	category models.Category,
	entries []json.RawMessage,
) (*models.SyncReport, error) {
	const opn = "synchronizer.SyncCategory"
	log := s.log.With("op", opn, "category", category.Key)

	log.InfoContext(ctx, "Extracting listings", "count", len(entries))
	products := make([]models.Product, 0, len(entries))
	for idx, entry := range entries {
		product, err := s.extractor.Extract(ctx, entry)
		if err != nil {
			return nil, fmt.Errorf("%s: %s: listing %d: %w", opn, category.Key, idx, err)
		}
		products = append(products, product)
	}

	records, err := s.store.Load(ctx, category.ChannelID, category.MessageID)
	if err != nil {
		return nil, fmt.Errorf("%s: %s: failed to load ledger: %w", opn, category.Key, err)
	}
	log.DebugContext(ctx, "Loaded ledger", "entries", len(records))

	report := &models.SyncReport{Category: category.Key}
	for _, product := range products {
		if records.Has(product.MachineName) {
			report.Skipped = append(report.Skipped, product.MachineName)
			continue
		}

		records.Mark(product.MachineName, product.EndTime.Unix())

		if err = s.announcer.Announce(ctx, category.ChannelID, product); err != nil {
			s.persistMarked(ctx, log, category, records)
			return nil, fmt.Errorf("%s: %s: %w", opn, category.Key, err)
		}
		report.Announced = append(report.Announced, product.MachineName)
		log.InfoContext(ctx, "Announced listing", "machine_name", product.MachineName)

		if err = s.wait(ctx); err != nil {
			s.persistMarked(ctx, log, category, records)
			return nil, fmt.Errorf("%s: %s: %w", opn, category.Key, err)
		}
	}

	report.Pruned = records.Prune(s.now().Unix())
	if len(report.Pruned) > 0 {
		log.InfoContext(ctx, "Pruned expired listings", "machine_names", report.Pruned)
	}

	if err = s.store.Save(ctx, records, category.ChannelID, category.MessageID); err != nil {
		return nil, fmt.Errorf("%s: %s: failed to save ledger: %w", opn, category.Key, err)
	}

	log.InfoContext(
		ctx,
		"Category synchronized",
		"announced",
		len(report.Announced),
		"skipped",
		len(report.Skipped),
		"pruned",
		len(report.Pruned),
	)

	return report, nil
}

// persistMarked saves the ledger after an aborted pass so listings already marked stay marked.
func (s *Synchronizer) persistMarked(ctx context.Context, log *slog.Logger, category models.Category, records models.Ledger) {
	ctx = context.WithoutCancel(ctx)
	records.Prune(s.now().Unix())
	if err := s.store.Save(ctx, records, category.ChannelID, category.MessageID); err != nil {
		log.ErrorContext(ctx, "Failed to save ledger of aborted pass", "error", err)
	}
}

func (s *Synchronizer) wait(ctx context.Context) error {
	if s.cooldown <= 0 {
		return nil
	}

	timer := time.NewTimer(s.cooldown)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
