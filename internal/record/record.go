package record

import (
	"time"

	"ybelaid/dzadscraper/internal/vertical"
)

// Lifecycle status codes. A record leaves the pipeline as Persisted,
// Dropped or Failed; nothing mutates it after that.
const (
	StatusDiscovered = iota
	StatusEnriched
	StatusNormalized
	StatusPersisted
	StatusDropped
	StatusFailed
)

// Record is the canonical, schema-complete output object for one ad.
// Every attribute key declared by the vertical's schema is present in
// Attributes even when its value is an empty placeholder.
type Record struct {
	Source     string            `json:"source"`
	URL        string            `json:"url"`
	Vertical   vertical.Vertical `json:"vertical"`
	CrawledAt  time.Time         `json:"crawled_at"`
	VerifiedAt time.Time         `json:"verified_at"`
	Status     int               `json:"status"`

	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Transaction string `json:"transaction"`

	PriceRaw  string   `json:"price_raw"`
	Price     *float64 `json:"price"`
	PriceUnit string   `json:"price_unit"`
	Available bool     `json:"available"`

	Wilaya  string `json:"wilaya"`
	Commune string `json:"commune"`

	Images   []string `json:"images"`
	HasPhoto bool     `json:"has_photo"`
	HasPrice bool     `json:"has_price"`

	Attributes map[string]string `json:"attributes"`
}

// DedupKey returns the identity the deduper keys this record on.
// Emploi keys on title (job reposts reuse titles across URLs), every
// other vertical keys on the source URL. A record whose preferred key
// is empty falls back to its URL.
func (r *Record) DedupKey() string {
	if r.Vertical.DedupField() == "title" && r.Title != "" {
		return "title:" + r.Title
	}
	return "url:" + r.URL
}
