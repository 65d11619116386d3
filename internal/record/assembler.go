package record

import (
	"errors"
	"strings"
	"time"

	"ybelaid/dzadscraper/internal/normalize"
	"ybelaid/dzadscraper/internal/scraper"
)

// ErrMissingIdentity signals that an item has no usable source URL and
// must be discarded, not persisted.
var ErrMissingIdentity = errors.New("item has no identity URL")

// Assembler builds canonical records out of raw scraped items.
type Assembler struct {
	now func() time.Time
}

// NewAssembler returns an Assembler using the wall clock.
func NewAssembler() *Assembler {
	return &Assembler{now: time.Now}
}

// Assemble merges an item's listing and detail fields (detail wins),
// runs every field through its domain normalizer, fills the vertical's
// full attribute schema, and computes the derived flags from the
// already-normalized values. The returned record is immutable from the
// caller's point of view: it is either persisted or dropped as-is.
func (a *Assembler) Assemble(item scraper.Item) (*Record, error) {
	url := strings.TrimSpace(item.URL)
	if url == "" {
		url = strings.TrimSpace(item.Field("url"))
	}
	if url == "" {
		return nil, ErrMissingIdentity
	}

	v := item.Vertical
	now := a.now()
	crawledAt := item.DiscoveredAt
	if crawledAt.IsZero() {
		crawledAt = now
	}

	rec := &Record{
		Source:      item.Site,
		URL:         url,
		Vertical:    v,
		CrawledAt:   crawledAt,
		VerifiedAt:  now,
		Status:      StatusNormalized,
		Title:       normalize.CleanText(item.Field("title")),
		Description: normalize.CleanText(item.Field("description")),
		Category:    normalize.CleanText(item.Field("category")),
		Attributes:  make(map[string]string, len(v.AttributeSchema())),
	}

	rec.Transaction = normalize.TransactionType(item.Field("transaction"))
	if rec.Transaction == "" {
		// Fall back to markers buried in the title or category.
		rec.Transaction = normalize.TransactionType(rec.Title + " " + rec.Category)
	}

	a.assemblePrice(rec, item)
	a.assembleLocation(rec, item)

	for _, img := range item.Images {
		if u := strings.TrimSpace(img); u != "" {
			rec.Images = append(rec.Images, u)
		}
	}
	if rec.Images == nil {
		rec.Images = []string{}
	}

	// Many sites only expose specs as free text, so attributes with no
	// direct source value fall back to mining the title and description.
	freeText := rec.Title + " " + rec.Description
	for _, key := range v.AttributeSchema() {
		raw := item.Field(key)
		val := normalize.CleanText(raw)
		if fn := normalize.ForAttribute(v, key); fn != nil {
			val = fn(raw)
		}
		if val == "" {
			if fn := normalize.FromFreeText(v, key); fn != nil {
				val = fn(freeText)
			}
		}
		rec.Attributes[key] = val
	}

	rec.Available = !isUnavailable(item.Field("disponibilite"))

	// Flags derive strictly from the normalized values above; they are
	// never carried over from the raw input.
	rec.HasPhoto = len(rec.Images) > 0
	rec.HasPrice = rec.Price != nil && *rec.Price > 0 && rec.PriceUnit != ""

	return rec, nil
}

func (a *Assembler) assemblePrice(rec *Record, item scraper.Item) {
	rec.PriceRaw = normalize.CleanText(item.Field("price"))
	unitRaw := strings.TrimSpace(item.Field("price_unit"))

	if unitRaw != "" {
		// Split "value + unit" pair: expand via the multiplier table.
		if v, ok := normalize.ExpandPrice(rec.PriceRaw, unitRaw); ok && v >= 0 {
			rec.Price = &v
			rec.PriceUnit = "DA"
		}
		return
	}

	if v, unit, ok := normalize.SplitPriceUnit(rec.PriceRaw); ok && v >= 0 {
		rec.Price = &v
		rec.PriceUnit = unit
	}
}

func (a *Assembler) assembleLocation(rec *Record, item scraper.Item) {
	wilaya := normalize.CleanText(item.Field("wilaya"))
	commune := normalize.CleanText(item.Field("commune"))
	if wilaya == "" && commune == "" {
		wilaya, commune = normalize.SplitLocation(item.Field("location"))
	}
	rec.Wilaya = wilaya
	rec.Commune = commune
}

func isUnavailable(raw string) bool {
	s := strings.ToLower(normalize.CleanText(raw))
	switch s {
	case "non", "non disponible", "vendu", "expiré", "expire", "indisponible":
		return true
	}
	return false
}
