package scraper

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"

	"ybelaid/dzadscraper/internal/browser"
	"ybelaid/dzadscraper/internal/vertical"
	"ybelaid/dzadscraper/logger"
	"ybelaid/dzadscraper/services/cache"
)

// SiteScraper walks one site's paginated listing and enriches every
// discovered ad from its detail page. Pagination is strictly
// sequential (page N+1 is only requested once page N is parsed);
// detail fetches run through a small admission gate.
type SiteScraper struct {
	BaseScraper
}

// NewSiteScraper creates a scraper for one configured site.
func NewSiteScraper(cfg SiteConfig, cacheSvc cache.CacheService, b *browser.Browser) *SiteScraper {
	if cfg.FirstPage <= 0 {
		cfg.FirstPage = 1
	}
	if cfg.MaxPages <= 0 {
		cfg.MaxPages = 5
	}
	if cfg.DetailConcurrency <= 0 {
		cfg.DetailConcurrency = 3
	}
	return &SiteScraper{
		BaseScraper: BaseScraper{
			Config:   cfg,
			CacheSvc: cacheSvc,
			Browser:  b,
			log:      logger.ForScraper(cfg.Name),
		},
	}
}

// Name returns the scraper's name.
func (s *SiteScraper) Name() string {
	return s.Config.Name
}

// Vertical returns the site's classifieds vertical.
func (s *SiteScraper) Vertical() vertical.Vertical {
	return s.Config.Vertical
}

// pageURL renders the listing URL for one page number.
func (s *SiteScraper) pageURL(page int) string {
	if strings.Contains(s.Config.URL, "%d") {
		return fmt.Sprintf(s.Config.URL, page)
	}
	return s.Config.URL
}

// Scrape drives the whole site: sequential pagination, then gated
// detail fetches. A failed first listing page aborts the site; a
// failure on any later page keeps the partial results. Output order is
// the order detail extraction completed in; identity-based dedup
// happens downstream.
func (s *SiteScraper) Scrape(ctx context.Context) ([]Item, error) {
	var (
		mu    sync.Mutex
		items []Item
	)
	gate := NewGate(s.Config.DetailConcurrency)

	for page := s.Config.FirstPage; page < s.Config.FirstPage+s.Config.MaxPages; page++ {
		if ctx.Err() != nil {
			break
		}

		url := s.pageURL(page)
		var doc *goquery.Document
		err := withRetry(s.log, "listing page", listingAttempts, func() error {
			var ferr error
			doc, ferr = s.fetchDocument(ctx, url)
			return ferr
		})
		if err != nil {
			if page == s.Config.FirstPage {
				return nil, err
			}
			s.log.Warn().Int("page", page).Err(err).Msg("Listing page failed, keeping partial results")
			break
		}

		ads := doc.Find(s.Config.Selectors.AdList)
		if ads.Length() == 0 {
			// First extraction empty on a later page means the
			// pagination ran out.
			s.log.Debug().Int("page", page).Msg("No ads found, stopping pagination")
			break
		}

		discovered := time.Now()
		ads.Each(func(_ int, ad *goquery.Selection) {
			listing := extractFields(ad, s.Config.Selectors.ListQuery)
			link := s.listingLink(ad)
			if link == "" {
				return
			}

			item := Item{
				Site:         s.Config.Name,
				Vertical:     s.Config.Vertical,
				URL:          link,
				Listing:      listing,
				DiscoveredAt: discovered,
			}

			gate.Go(func() {
				enriched, err := s.enrich(ctx, item)
				if err != nil {
					s.log.Warn().Str("url", item.URL).Err(err).Msg("Detail page failed, skipping ad")
					return
				}
				mu.Lock()
				items = append(items, enriched)
				mu.Unlock()
			})
		})

		if !s.hasNextPage(doc) {
			break
		}
	}

	gate.Wait()
	s.log.Info().Int("items", len(items)).Msg("Scrape finished")
	return items, nil
}

// listingLink extracts and resolves the detail-page link of one ad.
func (s *SiteScraper) listingLink(ad *goquery.Selection) string {
	sel := s.Config.Selectors
	attr := sel.LinkAttr
	if attr == "" {
		attr = "href"
	}
	target := ad
	if sel.Link != "" {
		target = ad.Find(sel.Link)
	}
	href, _ := target.First().Attr(attr)
	return s.ResolveURL(href)
}

// hasNextPage checks the next-page marker when one is configured.
// Sites without a marker paginate until MaxPages or an empty page.
func (s *SiteScraper) hasNextPage(doc *goquery.Document) bool {
	if s.Config.Selectors.NextPage == "" {
		return true
	}
	return doc.Find(s.Config.Selectors.NextPage).Length() > 0
}

// enrich fetches the ad's detail page and merges its fields in.
// Detail fetches are single-attempt: a failed URL is abandoned without
// touching sibling fetches or the pagination loop.
func (s *SiteScraper) enrich(ctx context.Context, item Item) (Item, error) {
	doc, err := s.fetchDocument(ctx, item.URL)
	if err != nil {
		return Item{}, err
	}
	item.Detail = extractFields(doc.Selection, s.Config.Selectors.DetailQuery)
	item.Images = s.extractImages(doc)
	return item, nil
}
