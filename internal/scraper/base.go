package scraper

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"ybelaid/dzadscraper/helpers"
	"ybelaid/dzadscraper/internal/browser"
	"ybelaid/dzadscraper/logger"
	apperr "ybelaid/dzadscraper/pkg/errors"
	"ybelaid/dzadscraper/services/cache"
)

// BaseScraper provides fetching and extraction shared by all site
// scrapers: cache-backed rate limiting, the plain-HTTP and headless
// browser fetch paths, and selector-driven field extraction.
type BaseScraper struct {
	Config   SiteConfig
	CacheSvc cache.CacheService
	Browser  *browser.Browser

	log *logger.Logger
}

// blockDuration returns how long a rate-limited site stays blocked.
func (s *BaseScraper) blockDuration() time.Duration {
	if s.Config.BlockTime <= 0 {
		return 5 * time.Minute
	}
	return time.Duration(s.Config.BlockTime) * time.Second
}

// fetchDocument fetches url through the configured path and parses it.
func (s *BaseScraper) fetchDocument(ctx context.Context, url string) (*goquery.Document, error) {
	if s.CacheSvc != nil && s.Config.CacheKey != "" {
		if _, err := s.CacheSvc.Get(s.Config.CacheKey); err == nil {
			return nil, apperr.NewRateLimit(s.Config.Name, s.blockDuration())
		}
	}

	var body io.Reader
	if s.Config.UseBrowser && s.Browser != nil {
		html, err := s.Browser.Fetch(ctx, url, s.Config.Fetch)
		if err != nil {
			return nil, apperr.NewFetch(s.Config.Name, "browser fetch failed", err)
		}
		body = strings.NewReader(html)
	} else {
		var err error
		body, err = helpers.FetchWithRandomHeaders(url)
		if err != nil {
			if strings.HasPrefix(err.Error(), "rate limited") {
				s.markRateLimited()
			}
			return nil, apperr.NewFetch(s.Config.Name, "fetch failed", err)
		}
	}

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, apperr.NewParse(s.Config.Name, "html parse failed", err)
	}
	return doc, nil
}

// markRateLimited records a block in the cache so sibling runs back off.
func (s *BaseScraper) markRateLimited() {
	if s.CacheSvc == nil || s.Config.CacheKey == "" {
		return
	}
	block := s.blockDuration()
	value := []byte(fmt.Sprintf("%d", int(block.Seconds())))
	if err := s.CacheSvc.Set(s.Config.CacheKey, value, block); err != nil {
		s.log.Warn().Err(err).Msg("Failed to record rate-limit block")
	}
}

// ResolveURL makes a scraped href absolute against the site base URL.
func (s *BaseScraper) ResolveURL(href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	if strings.HasPrefix(href, "//") {
		return "https:" + href
	}
	if strings.HasPrefix(href, "/") {
		return s.Config.BaseURL + href
	}
	return href
}

// extractField reads one field from a selection per its FieldSelector.
func extractField(sel *goquery.Selection, fs FieldSelector) string {
	target := sel
	if fs.Selector != "" {
		target = sel.Find(fs.Selector)
	}
	if target.Length() == 0 {
		return ""
	}
	if fs.Attr != "" {
		value, _ := target.First().Attr(fs.Attr)
		return strings.TrimSpace(value)
	}
	if fs.Remove != "" {
		// Clone so sibling extractions see the original tree.
		target = target.Clone()
		target.Find(fs.Remove).Remove()
	}
	return strings.TrimSpace(target.First().Text())
}

// extractFields runs a whole selector map against one selection.
// A missing selector yields an empty value, never an error: absent
// fields degrade to placeholders downstream.
func extractFields(sel *goquery.Selection, queries map[string]FieldSelector) map[string]string {
	fields := make(map[string]string, len(queries))
	for key, fs := range queries {
		fields[key] = extractField(sel, fs)
	}
	return fields
}

// extractImages collects the ordered image URL list from a document.
func (s *BaseScraper) extractImages(doc *goquery.Document) []string {
	fs := s.Config.Selectors.Images
	if fs.Selector == "" {
		return nil
	}
	attr := fs.Attr
	if attr == "" {
		attr = "src"
	}
	var images []string
	doc.Find(fs.Selector).Each(func(_ int, img *goquery.Selection) {
		if src, ok := img.Attr(attr); ok {
			if u := s.ResolveURL(src); u != "" {
				images = append(images, u)
			}
		}
	})
	return images
}
