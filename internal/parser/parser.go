package parser

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/Houeta/bundlewatch/internal/models"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
)

const (
	// LandingPageSelector selects the page data element of the bundles landing page.
	LandingPageSelector = "script#landingPage-json-data"
	// BundlePageSelector selects the page data element of a bundle detail page.
	BundlePageSelector = "script#webpack-bundle-page-data"

	landingPagePath = "/bundles"
	userAgent       = "Mozilla/5.0 (compatible; GoHttpClient/1.0)"
)

var ErrElementNotFound = errors.New("page data element not found")

type Parser struct {
	log     *slog.Logger
	client  *resty.Client
	baseURL string
}

func NewParser(log *slog.Logger, baseURL string, timeout time.Duration) *Parser {
	client := resty.New()
	client.SetHeader("User-Agent", userAgent)
	client.SetTimeout(timeout)

	return &Parser{log: log, client: client, baseURL: strings.TrimRight(baseURL, "/")}
}

// BaseURL returns the site root every relative listing URL is resolved against.
func (p *Parser) BaseURL() string {
	return p.baseURL
}

// FetchDocument downloads the page at url and parses it as HTML.
func (p *Parser) FetchDocument(ctx context.Context, url string) (*goquery.Document, error) {
	p.log.DebugContext(ctx, "Send request", "method", http.MethodGet, "URL", url)

	res, err := p.client.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to request %s: %w", url, err)
	}

	if res.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("status code error: [%d] %s", res.StatusCode(), res.Status())
	}

	p.log.DebugContext(ctx, "Successfully received http response", "URL", url, "status code", res.StatusCode())

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(res.Body()))
	if err != nil {
		return nil, fmt.Errorf("data cannot be parsed as HTML: %w", err)
	}

	return doc, nil
}

// LocateText returns the text of the first element matching selector.
func LocateText(doc *goquery.Document, selector string) (string, bool) {
	sel := doc.Find(selector).First()
	if sel.Length() == 0 {
		return "", false
	}

	return sel.Text(), true
}

type landingPage struct {
	Data map[string]json.RawMessage `json:"data"`
}

type landingSection struct {
	Mosaic []struct {
		Products []json.RawMessage `json:"products"`
	} `json:"mosaic"`
}

// FetchCatalog reads the listing entries of every category from the bundles landing page.
// A category without listings is absent from the result.
func (p *Parser) FetchCatalog(ctx context.Context) (models.Catalog, error) {
	const opn = "parser.FetchCatalog"

	doc, err := p.FetchDocument(ctx, p.baseURL+landingPagePath)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get landing page: %w", opn, err)
	}

	return parseCatalog(ctx, p.log, doc)
}

func parseCatalog(ctx context.Context, log *slog.Logger, doc *goquery.Document) (models.Catalog, error) {
	const opn = "parser.parseCatalog"

	text, ok := LocateText(doc, LandingPageSelector)
	if !ok {
		return nil, fmt.Errorf("%s: %w: %s", opn, ErrElementNotFound, LandingPageSelector)
	}

	var page landingPage
	if err := json.Unmarshal([]byte(text), &page); err != nil {
		return nil, fmt.Errorf("%s: landing page data cannot be parsed as JSON: %w", opn, err)
	}

	catalog := make(models.Catalog, len(page.Data))
	for key, raw := range page.Data {
		var section landingSection
		if err := json.Unmarshal(raw, &section); err != nil {
			log.DebugContext(ctx, "Skip landing page entry without listing mosaic", "key", key)
			continue
		}
		if len(section.Mosaic) == 0 || section.Mosaic[0].Products == nil {
			log.DebugContext(ctx, "Skip landing page entry without product list", "key", key)
			continue
		}

		catalog[key] = section.Mosaic[0].Products
		log.DebugContext(ctx, "Parsed catalog section", "category", key, "count", len(catalog[key]))
	}

	return catalog, nil
}
