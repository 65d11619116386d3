package scraper

import (
	"context"
	"time"

	"ybelaid/dzadscraper/internal/browser"
	"ybelaid/dzadscraper/internal/vertical"
)

// Item is one raw scraped ad: the field map observed on the listing
// page plus the field map observed on its detail page. Values are the
// untouched selector texts; normalization happens downstream.
type Item struct {
	Site         string
	Vertical     vertical.Vertical
	URL          string
	Listing      map[string]string
	Detail       map[string]string
	Images       []string
	DiscoveredAt time.Time
}

// Field returns the raw value for a field, detail page winning over
// the listing page on conflicting keys.
func (it Item) Field(key string) string {
	if v, ok := it.Detail[key]; ok && v != "" {
		return v
	}
	return it.Listing[key]
}

// Scraper is the contract every site scraper implements.
type Scraper interface {
	// Scrape walks the site's listing pages and returns raw items.
	Scrape(ctx context.Context) ([]Item, error)

	// Name returns the scraper's name for logging and identification.
	Name() string

	// Vertical returns the classifieds vertical the site belongs to.
	Vertical() vertical.Vertical
}

// FieldSelector binds a raw field key to a CSS selector, optionally
// reading an attribute instead of the element text.
type FieldSelector struct {
	Selector string
	Attr     string
	Remove   string // child selector stripped before reading text
}

// Selectors describes where a site's data lives on its pages.
type Selectors struct {
	// Listing page
	AdList    string
	Link      string
	LinkAttr  string
	NextPage  string
	ListQuery map[string]FieldSelector

	// Detail page
	DetailQuery map[string]FieldSelector
	Images      FieldSelector
}

// SiteConfig contains everything needed to scrape one site.
type SiteConfig struct {
	Name      string
	Vertical  vertical.Vertical
	URL       string // listing URL template, %d = page number
	FirstPage int
	MaxPages  int
	BaseURL   string
	CacheKey  string
	BlockTime int // seconds a rate-limited site stays blocked

	UseBrowser        bool
	Fetch             browser.FetchOptions
	DetailConcurrency int

	Selectors Selectors
}
