package scraper

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ybelaid/dzadscraper/internal/vertical"
)

const listingHTML = `
<html><body>
<div class="ad-list">
	<div class="ad">
		<h2 class="ad-title"><a href="/annonce/1">Vente appartement F3</a></h2>
		<span class="ad-price">1 250 000 <small>DA</small></span>
		<span class="ad-city">Alger - El Achour</span>
	</div>
	<div class="ad">
		<h2 class="ad-title"><a href="https://www.example.dz/annonce/2">Villa à louer</a></h2>
		<span class="ad-price">Sans prix</span>
		<span class="ad-city">Oran</span>
	</div>
</div>
<ul class="pagination"><li class="next"><a href="?page=2">suivant</a></li></ul>
</body></html>`

func testDoc(t *testing.T, html string) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func testSiteScraper() *SiteScraper {
	return NewSiteScraper(SiteConfig{
		Name:     "example",
		Vertical: vertical.Immobilier,
		URL:      "https://www.example.dz/annonces/%d",
		BaseURL:  "https://www.example.dz",
		Selectors: Selectors{
			AdList: "div.ad",
			Link:   "h2.ad-title a",
			ListQuery: map[string]FieldSelector{
				"title":    {Selector: "h2.ad-title a"},
				"price":    {Selector: "span.ad-price", Remove: "small"},
				"location": {Selector: "span.ad-city"},
			},
			NextPage: "ul.pagination li.next a",
		},
	}, nil, nil)
}

func TestExtractFields(t *testing.T) {
	doc := testDoc(t, listingHTML)
	s := testSiteScraper()

	ads := doc.Find(s.Config.Selectors.AdList)
	require.Equal(t, 2, ads.Length())

	fields := extractFields(ads.First(), s.Config.Selectors.ListQuery)
	assert.Equal(t, "Vente appartement F3", fields["title"])
	assert.Equal(t, "1 250 000", fields["price"])
	assert.Equal(t, "Alger - El Achour", fields["location"])
}

// A Remove selector strips the child from a clone only: the original
// document is untouched for later extractions.
func TestExtractFieldRemoveDoesNotMutate(t *testing.T) {
	doc := testDoc(t, listingHTML)
	ad := doc.Find("div.ad").First()

	fs := FieldSelector{Selector: "span.ad-price", Remove: "small"}
	assert.Equal(t, "1 250 000", extractField(ad, fs))
	assert.Equal(t, 1, ad.Find("span.ad-price small").Length())
}

func TestExtractFieldMissingSelector(t *testing.T) {
	doc := testDoc(t, listingHTML)
	ad := doc.Find("div.ad").First()

	assert.Equal(t, "", extractField(ad, FieldSelector{Selector: "span.nope"}))
}

func TestExtractFieldAttr(t *testing.T) {
	doc := testDoc(t, listingHTML)
	ad := doc.Find("div.ad").First()

	fs := FieldSelector{Selector: "h2.ad-title a", Attr: "href"}
	assert.Equal(t, "/annonce/1", extractField(ad, fs))
}

func TestListingLink(t *testing.T) {
	doc := testDoc(t, listingHTML)
	s := testSiteScraper()

	ads := doc.Find(s.Config.Selectors.AdList)
	assert.Equal(t, "https://www.example.dz/annonce/1", s.listingLink(ads.First()))
	assert.Equal(t, "https://www.example.dz/annonce/2", s.listingLink(ads.Last()))
}

func TestResolveURL(t *testing.T) {
	s := testSiteScraper()

	assert.Equal(t, "https://www.example.dz/a/1", s.ResolveURL("/a/1"))
	assert.Equal(t, "https://cdn.example.dz/img.jpg", s.ResolveURL("//cdn.example.dz/img.jpg"))
	assert.Equal(t, "https://other.dz/x", s.ResolveURL("https://other.dz/x"))
	assert.Equal(t, "", s.ResolveURL("  "))
}

func TestHasNextPage(t *testing.T) {
	s := testSiteScraper()

	assert.True(t, s.hasNextPage(testDoc(t, listingHTML)))
	assert.False(t, s.hasNextPage(testDoc(t, "<html><body></body></html>")))

	s.Config.Selectors.NextPage = ""
	assert.True(t, s.hasNextPage(testDoc(t, "<html><body></body></html>")))
}

func TestPageURL(t *testing.T) {
	s := testSiteScraper()
	assert.Equal(t, "https://www.example.dz/annonces/3", s.pageURL(3))

	s.Config.URL = "https://www.example.dz/annonces"
	assert.Equal(t, "https://www.example.dz/annonces", s.pageURL(3))
}

func TestExtractImages(t *testing.T) {
	html := `<html><body>
	<div class="gallery">
		<img src="/img/1.jpg"><img src="//cdn.example.dz/2.jpg"><img alt="no src">
	</div></body></html>`

	s := testSiteScraper()
	s.Config.Selectors.Images = FieldSelector{Selector: "div.gallery img", Attr: "src"}

	images := s.extractImages(testDoc(t, html))
	assert.Equal(t, []string{
		"https://www.example.dz/img/1.jpg",
		"https://cdn.example.dz/2.jpg",
	}, images)
}

func TestItemFieldPrecedence(t *testing.T) {
	item := Item{
		Listing: map[string]string{"title": "short", "price": "100"},
		Detail:  map[string]string{"title": "long title", "price": ""},
	}
	assert.Equal(t, "long title", item.Field("title"))
	assert.Equal(t, "100", item.Field("price"))
	assert.Equal(t, "", item.Field("missing"))
}
