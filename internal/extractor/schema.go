package extractor

import "encoding/json"

// Pointer fields distinguish an absent (or null) key from a zero value; `required` rejects only the former.

// catalogEntry is one element of a category's product list on the landing page.
type catalogEntry struct {
	ProductURL             *string `json:"product_url"              validate:"required"`
	Author                 *string `json:"author"                   validate:"required"`
	TileName               *string `json:"tile_name"                validate:"required"`
	MachineName            *string `json:"machine_name"             validate:"required"`
	StartDate              *string `json:"start_date|datetime"      validate:"required"`
	EndDate                *string `json:"end_date|datetime"        validate:"required"`
	DetailedMarketingBlurb *string `json:"detailed_marketing_blurb" validate:"required"`
	MarketingBlurb         *string `json:"marketing_blurb"          validate:"required"`
	ShortMarketingBlurb    *string `json:"short_marketing_blurb"    validate:"required"`
	TileLogo               *string `json:"tile_logo"                validate:"required"`
	HighResTileImage       *string `json:"high_res_tile_image"      validate:"required"`
}

// pageData is the page data blob embedded in a bundle detail page.
type pageData struct {
	BundleData *bundleData `json:"bundleData" validate:"required"`
}

// bundleData keeps the keyed tables raw; only referenced entries are decoded.
type bundleData struct {
	TierOrder       []string                   `json:"tier_order"        validate:"required,min=1,dive,required"`
	TierPricingData map[string]json.RawMessage `json:"tier_pricing_data"`
	TierDisplayData map[string]json.RawMessage `json:"tier_display_data"`
	TierItemData    map[string]json.RawMessage `json:"tier_item_data"`
	CharityData     *charityData               `json:"charity_data"      validate:"required"`
	BasicData       *basicData                 `json:"basic_data"        validate:"required"`
}

type charityData struct {
	CharityItemMachineNames []string                   `json:"charity_item_machine_names" validate:"required"`
	CharityItems            map[string]json.RawMessage `json:"charity_items"`
}

type basicData struct {
	MediaType   *string `json:"media_type"  validate:"required"`
	Description *string `json:"description" validate:"required"`
	MSRP        *money  `json:"msrp|money"  validate:"required"`
}

type money struct {
	Amount *float64 `json:"amount" validate:"required"`
}

type tierPricing struct {
	Price *money `json:"price|money" validate:"required"`
}

type tierDisplay struct {
	ItemMachineNames []string `json:"tier_item_machine_names" validate:"required"`
}

type namedItem struct {
	HumanName *string `json:"human_name" validate:"required"`
}
