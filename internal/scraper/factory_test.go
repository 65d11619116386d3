package scraper

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ybelaid/dzadscraper/config"
	"ybelaid/dzadscraper/internal/vertical"
)

func TestCreateScrapers(t *testing.T) {
	cfg := &config.Config{Sites: map[string]config.SiteOverride{}}

	scrapers := CreateScrapers(cfg, nil, nil)
	require.NotEmpty(t, scrapers)

	covered := map[vertical.Vertical]bool{}
	names := map[string]bool{}
	for _, s := range scrapers {
		assert.True(t, s.Vertical().Valid(), "scraper %s", s.Name())
		assert.False(t, names[s.Name()], "duplicate scraper name %s", s.Name())
		names[s.Name()] = true
		covered[s.Vertical()] = true
	}

	// Every supported vertical has at least one site.
	for _, v := range vertical.All() {
		assert.True(t, covered[v], "no scraper for vertical %s", v)
	}
}

func TestCreateScrapersDisabledOverride(t *testing.T) {
	cfg := &config.Config{Sites: map[string]config.SiteOverride{}}
	all := CreateScrapers(cfg, nil, nil)

	cfg.Sites["lkeria"] = config.SiteOverride{Disabled: true}
	filtered := CreateScrapers(cfg, nil, nil)

	assert.Len(t, filtered, len(all)-1)
	for _, s := range filtered {
		assert.NotEqual(t, "lkeria", s.Name())
	}
}

func TestCreateScrapersApplyOverride(t *testing.T) {
	cfg := &config.Config{Sites: map[string]config.SiteOverride{
		"lkeria": {
			URL:               "https://staging.lkeria.com/annonces/page/%d",
			MaxPages:          2,
			DetailConcurrency: 1,
			SettleDelayMs:     1500,
		},
	}}

	var lkeria *SiteScraper
	for _, s := range CreateScrapers(cfg, nil, nil) {
		if s.Name() == "lkeria" {
			lkeria = s.(*SiteScraper)
		}
	}
	require.NotNil(t, lkeria)

	assert.Equal(t, "https://staging.lkeria.com/annonces/page/%d", lkeria.Config.URL)
	assert.Equal(t, 2, lkeria.Config.MaxPages)
	assert.Equal(t, 1, lkeria.Config.DetailConcurrency)
	assert.Equal(t, 1500*time.Millisecond, lkeria.Config.Fetch.SettleDelay)
}

// Selector maps must only name fields the vertical's schema or the
// assembler's common fields know about, or the scraped value would be
// silently dropped downstream.
func TestSiteConfigFieldKeys(t *testing.T) {
	common := map[string]bool{
		"title": true, "description": true, "category": true,
		"transaction": true, "price": true, "price_unit": true,
		"location": true, "wilaya": true, "commune": true,
		"disponibilite": true, "url": true,
	}

	for _, sc := range siteConfigs() {
		allowed := map[string]bool{}
		for k, v := range common {
			allowed[k] = v
		}
		for _, key := range sc.Vertical.AttributeSchema() {
			allowed[key] = true
		}

		for key := range sc.Selectors.ListQuery {
			assert.True(t, allowed[key], "site %s: unknown listing field %q", sc.Name, key)
		}
		for key := range sc.Selectors.DetailQuery {
			assert.True(t, allowed[key], "site %s: unknown detail field %q", sc.Name, key)
		}
	}
}
