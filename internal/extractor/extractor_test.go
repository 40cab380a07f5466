package extractor_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/Houeta/bundlewatch/internal/extractor"
	"github.com/Houeta/bundlewatch/internal/models"
	"github.com/Houeta/bundlewatch/internal/parser"
	"github.com/PuerkitoBio/goquery"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const baseURL = "https://bundles.test"

// fakeFetcher serves canned HTML per URL.
type fakeFetcher struct {
	pages map[string]string
	err   error
	calls []string
}

func (f *fakeFetcher) FetchDocument(_ context.Context, url string) (*goquery.Document, error) {
	f.calls = append(f.calls, url)
	if f.err != nil {
		return nil, f.err
	}

	html, ok := f.pages[url]
	if !ok {
		return nil, errors.New("status code error: [404] 404 Not Found")
	}

	return goquery.NewDocumentFromReader(strings.NewReader(html))
}

// tagConverter marks converted text so tests can tell which fields went through it.
type tagConverter struct {
	err error
}

func (c tagConverter) Convert(html string) (string, error) {
	if c.err != nil {
		return "", c.err
	}
	return "md:" + html, nil
}

func baseEntry() map[string]any {
	return map[string]any{
		"product_url":              "/games/space-bundle",
		"author":                   "Humble Games",
		"tile_name":                "Space Bundle",
		"machine_name":             "space_bundle",
		"start_date|datetime":      "2026-10-01T18:00:00",
		"end_date|datetime":        "2026-10-22T18:00:00",
		"detailed_marketing_blurb": "<p>Detailed</p>",
		"marketing_blurb":          "Blurb",
		"short_marketing_blurb":    "Short",
		"tile_logo":                "https://img.test/logo.png",
		"high_res_tile_image":      "https://img.test/tile.png",
	}
}

func basePage() map[string]any {
	return map[string]any{
		"bundleData": map[string]any{
			"tier_order": []any{"top", "middle", "base"},
			"tier_pricing_data": map[string]any{
				"top":    map[string]any{"price|money": map[string]any{"amount": 15.5}},
				"middle": map[string]any{"price|money": map[string]any{"amount": 10.0}},
				"base":   map[string]any{"price|money": map[string]any{"amount": 2.5}},
			},
			"tier_display_data": map[string]any{
				"top":  map[string]any{"tier_item_machine_names": []any{"item_b", "item_a"}},
				"base": map[string]any{"tier_item_machine_names": []any{"item_a"}},
			},
			"tier_item_data": map[string]any{
				"item_a":  map[string]any{"human_name": "Alpha"},
				"item_b":  map[string]any{"human_name": "Beta"},
				"unused":  map[string]any{"human_name": 42},
				"skipped": "not an object",
			},
			"charity_data": map[string]any{
				"charity_item_machine_names": []any{"c1"},
				"charity_items": map[string]any{
					"c1": map[string]any{"human_name": "Charity One"},
				},
			},
			"basic_data": map[string]any{
				"media_type":  "game",
				"description": "Plain description",
				"msrp|money":  map[string]any{"amount": 120.49},
			},
		},
	}
}

func bundle(page map[string]any) map[string]any {
	return page["bundleData"].(map[string]any) //nolint:forcetypeassert // fixture shape is fixed
}

func pageHTML(t *testing.T, page any) string {
	t.Helper()

	data, err := json.Marshal(page)
	require.NoError(t, err)

	return `<html><body><script id="webpack-bundle-page-data" type="application/json">` +
		string(data) + `</script></body></html>`
}

func rawEntry(t *testing.T, entry any) json.RawMessage {
	t.Helper()

	data, err := json.Marshal(entry)
	require.NoError(t, err)

	return data
}

func newExtractor(fetcher extractor.PageFetcher, conv extractor.MarkdownConverter) *extractor.Extractor {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return extractor.NewExtractor(logger, fetcher, conv, baseURL+"/")
}

func TestExtract_Success(t *testing.T) {
	fetcher := &fakeFetcher{pages: map[string]string{
		baseURL + "/games/space-bundle": pageHTML(t, basePage()),
	}}

	product, err := newExtractor(fetcher, tagConverter{}).Extract(t.Context(), rawEntry(t, baseEntry()))

	require.NoError(t, err)

	expected := models.Product{
		Author:       "Humble Games",
		Name:         "Space Bundle",
		MachineName:  "space_bundle",
		ProductURL:   baseURL + "/games/space-bundle",
		ThumbnailURL: "https://img.test/tile.png",
		LogoURL:      "https://img.test/logo.png",
		MediaKind:    models.MediaGame,
		StartTime:    time.Date(2026, time.October, 1, 18, 0, 0, 0, time.UTC),
		EndTime:      time.Date(2026, time.October, 22, 18, 0, 0, 0, time.UTC),
		Description:  "Plain description",
		DetailText:   "md:<p>Detailed</p>",
		Blurb:        "md:Blurb",
		ShortBlurb:   "md:Short",
		MSRP:         120,
		LowPrice:     3, // 2.5 rounds half away from zero
		HighPrice:    16,
		ItemNames:    []string{"Beta", "Alpha"},
		CharityNames: []string{"Charity One"},
	}

	if diff := cmp.Diff(expected, product); diff != "" {
		t.Fatalf("unexpected product (-want +got):\n%s", diff)
	}
	assert.Equal(t, []string{baseURL + "/games/space-bundle"}, fetcher.calls)
}

func TestExtract_SingleTier(t *testing.T) {
	page := basePage()
	bundle(page)["tier_order"] = []any{"base"}

	fetcher := &fakeFetcher{pages: map[string]string{baseURL + "/games/space-bundle": pageHTML(t, page)}}

	product, err := newExtractor(fetcher, tagConverter{}).Extract(t.Context(), rawEntry(t, baseEntry()))

	require.NoError(t, err)
	assert.Equal(t, product.LowPrice, product.HighPrice)
	assert.Equal(t, 3, product.HighPrice)
	assert.Equal(t, []string{"Alpha"}, product.ItemNames)
}

func TestExtract_EmptyListsAndUnknownMedia(t *testing.T) {
	page := basePage()
	bundle(page)["tier_display_data"] = map[string]any{
		"top": map[string]any{"tier_item_machine_names": []any{}},
	}
	bundle(page)["charity_data"] = map[string]any{"charity_item_machine_names": []any{}}
	bundle(page)["basic_data"].(map[string]any)["media_type"] = "audiobook" //nolint:forcetypeassert // fixture

	fetcher := &fakeFetcher{pages: map[string]string{baseURL + "/games/space-bundle": pageHTML(t, page)}}

	product, err := newExtractor(fetcher, tagConverter{}).Extract(t.Context(), rawEntry(t, baseEntry()))

	require.NoError(t, err)
	assert.Empty(t, product.ItemNames)
	assert.Empty(t, product.CharityNames)
	assert.Equal(t, models.MediaUnknown, product.MediaKind)
}

func TestExtract_Failures(t *testing.T) {
	testCases := []struct {
		name         string
		mutateEntry  func(entry map[string]any)
		mutatePage   func(page map[string]any)
		html         string
		expectedPath string
		expectedErr  error
		expectFetch  bool
	}{
		{
			name:         "missing product url",
			mutateEntry:  func(e map[string]any) { delete(e, "product_url") },
			expectedPath: "product_url",
			expectedErr:  extractor.ErrMissingField,
		},
		{
			name:         "null author",
			mutateEntry:  func(e map[string]any) { e["author"] = nil },
			expectedPath: "author",
			expectedErr:  extractor.ErrMissingField,
		},
		{
			name:         "wrong type for tile name",
			mutateEntry:  func(e map[string]any) { e["tile_name"] = 7 },
			expectedPath: "tile_name",
		},
		{
			name:         "page data element missing",
			html:         `<html><body><script id="other">{}</script></body></html>`,
			expectedPath: parser.BundlePageSelector,
			expectedErr:  parser.ErrElementNotFound,
			expectFetch:  true,
		},
		{
			name:         "page data is not JSON",
			html:         `<script id="webpack-bundle-page-data">{"bundleData": </script>`,
			expectedPath: "$",
			expectFetch:  true,
		},
		{
			name:         "bundle data missing",
			mutatePage:   func(p map[string]any) { delete(p, "bundleData") },
			expectedPath: "bundleData",
			expectedErr:  extractor.ErrMissingField,
			expectFetch:  true,
		},
		{
			name:         "empty tier order",
			mutatePage:   func(p map[string]any) { bundle(p)["tier_order"] = []any{} },
			expectedPath: "bundleData.tier_order",
			expectedErr:  extractor.ErrEmptyList,
			expectFetch:  true,
		},
		{
			name:         "null tier order entry",
			mutatePage:   func(p map[string]any) { bundle(p)["tier_order"] = []any{nil} },
			expectedPath: "bundleData.tier_order[0]",
			expectedErr:  extractor.ErrMissingField,
			expectFetch:  true,
		},
		{
			name:         "empty tier key after the first",
			mutatePage:   func(p map[string]any) { bundle(p)["tier_order"] = []any{"top", ""} },
			expectedPath: "bundleData.tier_order[1]",
			expectedErr:  extractor.ErrMissingField,
			expectFetch:  true,
		},
		{
			name:         "tier order entry is not a string",
			mutatePage:   func(p map[string]any) { bundle(p)["tier_order"] = []any{"top", 3} },
			expectedPath: "bundleData.tier_order",
			expectFetch:  true,
		},
		{
			name: "lowest tier pricing missing",
			mutatePage: func(p map[string]any) {
				delete(bundle(p)["tier_pricing_data"].(map[string]any), "base") //nolint:forcetypeassert // fixture
			},
			expectedPath: "bundleData.tier_pricing_data.base",
			expectedErr:  extractor.ErrMissingField,
			expectFetch:  true,
		},
		{
			name: "tier amount missing",
			mutatePage: func(p map[string]any) {
				bundle(p)["tier_pricing_data"].(map[string]any)["top"] = map[string]any{ //nolint:forcetypeassert // fixture
					"price|money": map[string]any{"currency": "USD"},
				}
			},
			expectedPath: "bundleData.tier_pricing_data.top.price|money.amount",
			expectedErr:  extractor.ErrMissingField,
			expectFetch:  true,
		},
		{
			name: "highest tier display data missing",
			mutatePage: func(p map[string]any) {
				delete(bundle(p)["tier_display_data"].(map[string]any), "top") //nolint:forcetypeassert // fixture
			},
			expectedPath: "bundleData.tier_display_data.top",
			expectedErr:  extractor.ErrMissingField,
			expectFetch:  true,
		},
		{
			name: "item cross reference missing",
			mutatePage: func(p map[string]any) {
				delete(bundle(p)["tier_item_data"].(map[string]any), "item_a") //nolint:forcetypeassert // fixture
			},
			expectedPath: "bundleData.tier_item_data.item_a",
			expectedErr:  extractor.ErrMissingField,
			expectFetch:  true,
		},
		{
			name: "charity cross reference missing",
			mutatePage: func(p map[string]any) {
				bundle(p)["charity_data"].(map[string]any)["charity_items"] = map[string]any{} //nolint:forcetypeassert // fixture
			},
			expectedPath: "bundleData.charity_data.charity_items.c1",
			expectedErr:  extractor.ErrMissingField,
			expectFetch:  true,
		},
		{
			name: "charity name list missing",
			mutatePage: func(p map[string]any) {
				bundle(p)["charity_data"] = map[string]any{}
			},
			expectedPath: "bundleData.charity_data.charity_item_machine_names",
			expectedErr:  extractor.ErrMissingField,
			expectFetch:  true,
		},
		{
			name: "msrp missing",
			mutatePage: func(p map[string]any) {
				delete(bundle(p)["basic_data"].(map[string]any), "msrp|money") //nolint:forcetypeassert // fixture
			},
			expectedPath: "bundleData.basic_data.msrp|money",
			expectedErr:  extractor.ErrMissingField,
			expectFetch:  true,
		},
		{
			name:         "end date not a timestamp",
			mutateEntry:  func(e map[string]any) { e["end_date|datetime"] = "next tuesday" },
			expectedPath: "end_date|datetime",
			expectFetch:  true,
		},
		{
			name:         "start date already zoned",
			mutateEntry:  func(e map[string]any) { e["start_date|datetime"] = "2026-10-01T18:00:00Z" },
			expectedPath: "start_date|datetime",
			expectFetch:  true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			entry := baseEntry()
			if tc.mutateEntry != nil {
				tc.mutateEntry(entry)
			}

			page := basePage()
			if tc.mutatePage != nil {
				tc.mutatePage(page)
			}

			html := tc.html
			if html == "" {
				html = pageHTML(t, page)
			}
			fetcher := &fakeFetcher{pages: map[string]string{baseURL + "/games/space-bundle": html}}

			product, err := newExtractor(fetcher, tagConverter{}).Extract(t.Context(), rawEntry(t, entry))

			require.Error(t, err)
			require.ErrorIs(t, err, extractor.ErrExtraction)
			if tc.expectedErr != nil {
				require.ErrorIs(t, err, tc.expectedErr)
			}

			var extractionErr *extractor.ExtractionError
			require.ErrorAs(t, err, &extractionErr)
			assert.Equal(t, tc.expectedPath, extractionErr.Path)
			assert.Empty(t, product.MachineName)

			if tc.expectFetch {
				assert.Len(t, fetcher.calls, 1)
			} else {
				assert.Empty(t, fetcher.calls)
			}
		})
	}
}

func TestExtract_FetchError(t *testing.T) {
	fetcher := &fakeFetcher{err: assert.AnError}

	_, err := newExtractor(fetcher, tagConverter{}).Extract(t.Context(), rawEntry(t, baseEntry()))

	require.Error(t, err)
	require.ErrorIs(t, err, assert.AnError)
	require.NotErrorIs(t, err, extractor.ErrExtraction)
	assert.Contains(t, err.Error(), "failed to get product page "+baseURL+"/games/space-bundle")
}

func TestExtract_ConverterError(t *testing.T) {
	fetcher := &fakeFetcher{pages: map[string]string{baseURL + "/games/space-bundle": pageHTML(t, basePage())}}

	_, err := newExtractor(fetcher, tagConverter{err: assert.AnError}).Extract(t.Context(), rawEntry(t, baseEntry()))

	var extractionErr *extractor.ExtractionError
	require.ErrorAs(t, err, &extractionErr)
	assert.Equal(t, "detailed_marketing_blurb", extractionErr.Path)
	require.ErrorIs(t, err, assert.AnError)
}
