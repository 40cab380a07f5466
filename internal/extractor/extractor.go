// Package extractor turns a catalog entry and its bundle detail page into a models.Product.
//
// Both JSON layers are decoded into typed structs and checked with a validator before any
// value is used. Every missing key, wrong shape or unresolvable cross reference fails the
// whole listing with an *ExtractionError naming the JSON path.
package extractor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"reflect"
	"strings"
	"time"

	"github.com/Houeta/bundlewatch/internal/models"
	"github.com/Houeta/bundlewatch/internal/parser"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-playground/validator/v10"
)

var (
	ErrExtraction   = errors.New("extraction failed")
	ErrMissingField = errors.New("missing field")
	ErrEmptyList    = errors.New("list is empty")
)

// ExtractionError reports the JSON path that could not be extracted.
type ExtractionError struct {
	Path string
	Err  error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract %s: %v", e.Path, e.Err)
}

func (e *ExtractionError) Unwrap() []error {
	return []error{ErrExtraction, e.Err}
}

// PageFetcher downloads and parses a web page.
type PageFetcher interface {
	FetchDocument(ctx context.Context, url string) (*goquery.Document, error)
}

// MarkdownConverter converts catalog markup to chat markdown.
type MarkdownConverter interface {
	Convert(html string) (string, error)
}

type Extractor struct {
	log      *slog.Logger
	fetcher  PageFetcher
	markdown MarkdownConverter
	validate *validator.Validate
	baseURL  string
}

func NewExtractor(log *slog.Logger, fetcher PageFetcher, markdown MarkdownConverter, baseURL string) *Extractor {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	return &Extractor{
		log:      log,
		fetcher:  fetcher,
		markdown: markdown,
		validate: validate,
		baseURL:  strings.TrimRight(baseURL, "/"),
	}
}

// Extract builds the Product for one catalog entry. The entry's detail page is fetched to
// resolve tiers, bundled items and charities.
func (x *Extractor) Extract(ctx context.Context, entry json.RawMessage) (models.Product, error) {
	const opn = "extractor.Extract"

	var listing catalogEntry
	if err := x.decode(entry, "", &listing); err != nil {
		return models.Product{}, err
	}

	log := x.log.With("op", opn, "machine_name", *listing.MachineName)

	productURL := x.baseURL + *listing.ProductURL
	log.InfoContext(ctx, "Fetching product page", "URL", productURL)

	doc, err := x.fetcher.FetchDocument(ctx, productURL)
	if err != nil {
		return models.Product{}, fmt.Errorf("%s: failed to get product page %s: %w", opn, productURL, err)
	}

	text, ok := parser.LocateText(doc, parser.BundlePageSelector)
	if !ok {
		return models.Product{}, &ExtractionError{Path: parser.BundlePageSelector, Err: parser.ErrElementNotFound}
	}

	var page pageData
	if err = x.decode([]byte(text), "", &page); err != nil {
		return models.Product{}, err
	}
	bundle := page.BundleData

	highestTier := bundle.TierOrder[0]
	lowestTier := bundle.TierOrder[len(bundle.TierOrder)-1]

	highPrice, err := x.tierPrice(bundle, highestTier)
	if err != nil {
		return models.Product{}, err
	}

	lowPrice, err := x.tierPrice(bundle, lowestTier)
	if err != nil {
		return models.Product{}, err
	}

	itemNames, err := x.tierItemNames(bundle, highestTier)
	if err != nil {
		return models.Product{}, err
	}

	charityNames, err := x.charityNames(bundle.CharityData)
	if err != nil {
		return models.Product{}, err
	}

	startTime, err := parseTimestamp("start_date|datetime", *listing.StartDate)
	if err != nil {
		return models.Product{}, err
	}

	endTime, err := parseTimestamp("end_date|datetime", *listing.EndDate)
	if err != nil {
		return models.Product{}, err
	}

	detailText, err := x.convert("detailed_marketing_blurb", *listing.DetailedMarketingBlurb)
	if err != nil {
		return models.Product{}, err
	}

	blurb, err := x.convert("marketing_blurb", *listing.MarketingBlurb)
	if err != nil {
		return models.Product{}, err
	}

	shortBlurb, err := x.convert("short_marketing_blurb", *listing.ShortMarketingBlurb)
	if err != nil {
		return models.Product{}, err
	}

	product := models.Product{
		Author:       *listing.Author,
		Name:         *listing.TileName,
		MachineName:  *listing.MachineName,
		ProductURL:   productURL,
		ThumbnailURL: *listing.HighResTileImage,
		LogoURL:      *listing.TileLogo,
		MediaKind:    models.ParseMediaKind(*bundle.BasicData.MediaType),
		StartTime:    startTime,
		EndTime:      endTime,
		Description:  *bundle.BasicData.Description,
		DetailText:   detailText,
		Blurb:        blurb,
		ShortBlurb:   shortBlurb,
		MSRP:         roundAmount(*bundle.BasicData.MSRP.Amount),
		LowPrice:     lowPrice,
		HighPrice:    highPrice,
		ItemNames:    itemNames,
		CharityNames: charityNames,
	}

	log.DebugContext(
		ctx,
		"Extracted product",
		"name", product.Name,
		"tiers", len(bundle.TierOrder),
		"items", len(product.ItemNames),
		"charities", len(product.CharityNames),
	)

	return product, nil
}

func (x *Extractor) tierPrice(bundle *bundleData, tier string) (int, error) {
	var pricing tierPricing
	if err := x.lookup(bundle.TierPricingData, "bundleData.tier_pricing_data", tier, &pricing); err != nil {
		return 0, err
	}

	return roundAmount(*pricing.Price.Amount), nil
}

func (x *Extractor) tierItemNames(bundle *bundleData, tier string) ([]string, error) {
	var display tierDisplay
	if err := x.lookup(bundle.TierDisplayData, "bundleData.tier_display_data", tier, &display); err != nil {
		return nil, err
	}

	return x.humanNames(bundle.TierItemData, "bundleData.tier_item_data", display.ItemMachineNames)
}

func (x *Extractor) charityNames(charities *charityData) ([]string, error) {
	return x.humanNames(charities.CharityItems, "bundleData.charity_data.charity_items", charities.CharityItemMachineNames)
}

// humanNames resolves machine names through table, preserving order.
func (x *Extractor) humanNames(table map[string]json.RawMessage, path string, machineNames []string) ([]string, error) {
	names := make([]string, 0, len(machineNames))
	for _, machineName := range machineNames {
		var item namedItem
		if err := x.lookup(table, path, machineName, &item); err != nil {
			return nil, err
		}
		names = append(names, *item.HumanName)
	}

	return names, nil
}

func (x *Extractor) lookup(table map[string]json.RawMessage, path, key string, out any) error {
	raw, ok := table[key]
	if !ok {
		return &ExtractionError{Path: joinPath(path, key), Err: ErrMissingField}
	}

	return x.decode(raw, joinPath(path, key), out)
}

// decode unmarshals data into out and validates the result. root prefixes every reported path.
func (x *Extractor) decode(data []byte, root string, out any) error {
	if err := json.Unmarshal(data, out); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return &ExtractionError{Path: rootOrDocument(joinPath(root, typeErr.Field)), Err: err}
		}
		return &ExtractionError{Path: rootOrDocument(root), Err: err}
	}

	err := x.validate.Struct(out)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return &ExtractionError{Path: rootOrDocument(root), Err: err}
	}

	fieldErr := fieldErrs[0]
	// The namespace starts with the Go type name of out.
	_, path, _ := strings.Cut(fieldErr.Namespace(), ".")

	cause := ErrMissingField
	if fieldErr.Tag() == "min" {
		cause = ErrEmptyList
	}

	return &ExtractionError{Path: rootOrDocument(joinPath(root, path)), Err: cause}
}

func (x *Extractor) convert(field, html string) (string, error) {
	out, err := x.markdown.Convert(html)
	if err != nil {
		return "", &ExtractionError{Path: field, Err: err}
	}

	return out, nil
}

// parseTimestamp reads a catalog timestamp, which carries no zone designator and is in UTC.
func parseTimestamp(field, value string) (time.Time, error) {
	parsed, err := time.Parse(time.RFC3339, value+"Z")
	if err != nil {
		return time.Time{}, &ExtractionError{Path: field, Err: err}
	}

	return parsed.UTC(), nil
}

// roundAmount rounds half away from zero.
func roundAmount(amount float64) int {
	return int(math.Round(amount))
}

func joinPath(root, path string) string {
	switch {
	case root == "":
		return path
	case path == "":
		return root
	default:
		return root + "." + path
	}
}

func rootOrDocument(path string) string {
	if path == "" {
		return "$"
	}
	return path
}
