package models

import "time"

// MediaKind classifies a listing. It is informational only.
type MediaKind int

const (
	MediaUnknown MediaKind = iota
	MediaGame
	MediaEBook
	MediaSoftware
)

// ParseMediaKind maps the catalog media type to a MediaKind. Unrecognized values map to MediaUnknown.
func ParseMediaKind(value string) MediaKind {
	switch value {
	case "game":
		return MediaGame
	case "ebook":
		return MediaEBook
	case "software":
		return MediaSoftware
	default:
		return MediaUnknown
	}
}

func (k MediaKind) String() string {
	switch k {
	case MediaGame:
		return "game"
	case MediaEBook:
		return "ebook"
	case MediaSoftware:
		return "software"
	default:
		return "unknown"
	}
}

// Product is the set of facts extracted for one listing of a bundle category.
type Product struct {
	Author       string
	Name         string
	MachineName  string // MachineName is unique within a category.
	ProductURL   string
	ThumbnailURL string
	LogoURL      string
	MediaKind    MediaKind
	StartTime    time.Time
	EndTime      time.Time
	Description  string
	DetailText   string // DetailText is already converted to chat markdown.
	Blurb        string
	ShortBlurb   string
	MSRP         int
	LowPrice     int
	HighPrice    int
	ItemNames    []string // ItemNames are the sub-items of the highest tier, in catalog order.
	CharityNames []string
}
