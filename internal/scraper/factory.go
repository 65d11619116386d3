package scraper

import (
	"time"

	"ybelaid/dzadscraper/config"
	"ybelaid/dzadscraper/internal/browser"
	"ybelaid/dzadscraper/internal/vertical"
	"ybelaid/dzadscraper/logger"
	"ybelaid/dzadscraper/services/cache"
)

// CreateScrapers builds every enabled site scraper, applying the
// overrides from the sites file on top of the compiled-in defaults.
func CreateScrapers(cfg *config.Config, cacheSvc cache.CacheService, b *browser.Browser) []Scraper {
	var scrapers []Scraper
	for _, sc := range siteConfigs() {
		if override, ok := cfg.Sites[sc.Name]; ok {
			if override.Disabled {
				logger.Info("Site %s disabled by overrides", sc.Name)
				continue
			}
			applyOverride(&sc, override)
		}
		scrapers = append(scrapers, NewSiteScraper(sc, cacheSvc, b))
	}

	logger.Info("Created %d site scrapers", len(scrapers))
	return scrapers
}

func applyOverride(sc *SiteConfig, o config.SiteOverride) {
	if o.URL != "" {
		sc.URL = o.URL
	}
	if o.MaxPages > 0 {
		sc.MaxPages = o.MaxPages
	}
	if o.DetailConcurrency > 0 {
		sc.DetailConcurrency = o.DetailConcurrency
	}
	if o.SettleDelayMs > 0 {
		sc.Fetch.SettleDelay = time.Duration(o.SettleDelayMs) * time.Millisecond
	}
}

// siteConfigs holds the selector configuration of every supported
// site. The raw field keys feed the per-vertical attribute schemas, so
// they must match the keys the record assembler expects.
func siteConfigs() []SiteConfig {
	return []SiteConfig{
		{
			// Ouedkniss real estate (Vue SPA, needs the browser)
			Name:       "ouedkniss_immobilier",
			Vertical:   vertical.Immobilier,
			URL:        "https://www.ouedkniss.com/immobilier/%d",
			MaxPages:   5,
			BaseURL:    "https://www.ouedkniss.com",
			CacheKey:   cache.RateLimitKey("ouedkniss_immobilier"),
			BlockTime:  600,
			UseBrowser: true,
			Fetch: browser.FetchOptions{
				SettleDelay:    4 * time.Second,
				ScrollToBottom: true,
				DismissConsent: true,
			},
			DetailConcurrency: 3,
			Selectors: Selectors{
				AdList: "div.o-announ-card",
				Link:   "a.o-announ-card-title",
				ListQuery: map[string]FieldSelector{
					"title":    {Selector: "a.o-announ-card-title"},
					"price":    {Selector: "div.o-announ-card-price span.price"},
					"location": {Selector: "span.o-announ-card-city"},
					"category": {Selector: "span.o-announ-card-category"},
				},
				DetailQuery: map[string]FieldSelector{
					"title":       {Selector: "h1.announ-details-title"},
					"description": {Selector: "div.announ-description"},
					"price":       {Selector: "div.announ-details-price span.price"},
					"price_unit":  {Selector: "div.announ-details-price span.unit"},
					"location":    {Selector: "div.announ-details-location"},
					"type_bien":   {Selector: "li[data-spec='type'] span.value"},
					"pieces":      {Selector: "li[data-spec='pieces'] span.value"},
					"surface":     {Selector: "li[data-spec='surface'] span.value"},
					"etage":       {Selector: "li[data-spec='etage'] span.value"},
					"papiers":     {Selector: "li[data-spec='papiers'] span.value"},
				},
				Images: FieldSelector{Selector: "div.announ-gallery img", Attr: "src"},
			},
		},
		{
			Name:      "lkeria",
			Vertical:  vertical.Immobilier,
			URL:       "https://www.lkeria.com/annonces/page/%d",
			MaxPages:  8,
			BaseURL:   "https://www.lkeria.com",
			CacheKey:  cache.RateLimitKey("lkeria"),
			BlockTime: 300,
			Selectors: Selectors{
				AdList: "div.annonce-item",
				Link:   "h2.annonce-title a",
				ListQuery: map[string]FieldSelector{
					"title":       {Selector: "h2.annonce-title a"},
					"price":       {Selector: "span.annonce-prix"},
					"location":    {Selector: "span.annonce-lieu"},
					"transaction": {Selector: "span.annonce-type"},
				},
				DetailQuery: map[string]FieldSelector{
					"description": {Selector: "div#description"},
					"price":       {Selector: "div.fiche-prix span.montant"},
					"price_unit":  {Selector: "div.fiche-prix span.unite"},
					"type_bien":   {Selector: "table.caracteristiques tr.type td.valeur"},
					"pieces":      {Selector: "table.caracteristiques tr.pieces td.valeur"},
					"surface":     {Selector: "table.caracteristiques tr.surface td.valeur"},
					"papiers":     {Selector: "table.caracteristiques tr.papiers td.valeur"},
					"wilaya":      {Selector: "span[itemprop='addressRegion']"},
					"commune":     {Selector: "span[itemprop='addressLocality']"},
				},
				Images:   FieldSelector{Selector: "div.fiche-photos img", Attr: "data-src"},
				NextPage: "ul.pagination li.next a",
			},
		},
		{
			Name:      "beytic",
			Vertical:  vertical.Immobilier,
			URL:       "https://www.beytic.com/annonces-immobilier?page=%d",
			MaxPages:  8,
			BaseURL:   "https://www.beytic.com",
			CacheKey:  cache.RateLimitKey("beytic"),
			BlockTime: 300,
			Selectors: Selectors{
				AdList: "div.property-listing div.property-box",
				Link:   "a.property-link",
				ListQuery: map[string]FieldSelector{
					"title":    {Selector: "h3.property-title"},
					"price":    {Selector: "div.property-price", Remove: "small"},
					"location": {Selector: "address.property-address"},
					"pieces":   {Selector: "ul.property-meta li.rooms"},
					"surface":  {Selector: "ul.property-meta li.area"},
				},
				DetailQuery: map[string]FieldSelector{
					"description":    {Selector: "div.property-description"},
					"transaction":    {Selector: "span.property-status"},
					"type_bien":      {Selector: "ul.property-details li.type span.value"},
					"etage":          {Selector: "ul.property-details li.floor span.value"},
					"papiers":        {Selector: "ul.property-details li.papers span.value"},
					"promesse_vente": {Selector: "ul.property-details li.promise span.value"},
				},
				Images:   FieldSelector{Selector: "div.property-gallery a", Attr: "href"},
				NextPage: "nav.pagination a[rel='next']",
			},
		},
		{
			Name:       "emploitic",
			Vertical:   vertical.Emploi,
			URL:        "https://www.emploitic.com/offres-d-emploi?page=%d",
			MaxPages:   10,
			BaseURL:    "https://www.emploitic.com",
			CacheKey:   cache.RateLimitKey("emploitic"),
			BlockTime:  300,
			UseBrowser: true,
			Fetch: browser.FetchOptions{
				SettleDelay:  3 * time.Second,
				WaitSelector: "div.job-list",
			},
			DetailConcurrency: 4,
			Selectors: Selectors{
				AdList: "div.job-list article.job-card",
				Link:   "a.job-card-link",
				ListQuery: map[string]FieldSelector{
					"title":      {Selector: "h2.job-title"},
					"entreprise": {Selector: "span.company-name"},
					"location":   {Selector: "span.job-location"},
					"contrat":    {Selector: "span.job-contract"},
				},
				DetailQuery: map[string]FieldSelector{
					"description": {Selector: "section.job-description"},
					"diplome":     {Selector: "ul.job-criteria li.education span.value"},
					"experience":  {Selector: "ul.job-criteria li.experience span.value"},
					"secteur":     {Selector: "ul.job-criteria li.sector span.value"},
				},
			},
		},
		{
			Name:      "emploipartner",
			Vertical:  vertical.Emploi,
			URL:       "https://www.emploipartner.com/fr/offres-emploi?page=%d",
			MaxPages:  10,
			BaseURL:   "https://www.emploipartner.com",
			CacheKey:  cache.RateLimitKey("emploipartner"),
			BlockTime: 300,
			Selectors: Selectors{
				AdList: "div.offers-list div.offer-row",
				Link:   "a.offer-title-link",
				ListQuery: map[string]FieldSelector{
					"title":      {Selector: "a.offer-title-link"},
					"entreprise": {Selector: "div.offer-company"},
					"location":   {Selector: "div.offer-wilaya"},
				},
				DetailQuery: map[string]FieldSelector{
					"description": {Selector: "div.offer-description"},
					"diplome":     {Selector: "div.offer-criterias span.education"},
					"experience":  {Selector: "div.offer-criterias span.experience"},
					"contrat":     {Selector: "div.offer-criterias span.contract"},
					"secteur":     {Selector: "div.offer-criterias span.sector"},
				},
				NextPage: "ul.pager li.pager-next a",
			},
		},
		{
			Name:      "autobip",
			Vertical:  vertical.Vehicules,
			URL:       "https://www.autobip.com/fr/voitures_doccasion?page=%d",
			MaxPages:  10,
			BaseURL:   "https://www.autobip.com",
			CacheKey:  cache.RateLimitKey("autobip"),
			BlockTime: 300,
			Selectors: Selectors{
				AdList: "div.vehicle-list div.vehicle-card",
				Link:   "a.vehicle-link",
				ListQuery: map[string]FieldSelector{
					"title":    {Selector: "h3.vehicle-title"},
					"price":    {Selector: "div.vehicle-price"},
					"location": {Selector: "span.vehicle-wilaya"},
					"annee":    {Selector: "span.vehicle-year"},
				},
				DetailQuery: map[string]FieldSelector{
					"description": {Selector: "div.vehicle-description"},
					"marque":      {Selector: "table.specs tr.marque td.value"},
					"modele":      {Selector: "table.specs tr.modele td.value"},
					"carburant":   {Selector: "table.specs tr.carburant td.value"},
					"boite":       {Selector: "table.specs tr.boite td.value"},
					"kilometrage": {Selector: "table.specs tr.kilometrage td.value"},
					"couleur":     {Selector: "table.specs tr.couleur td.value"},
				},
				Images:   FieldSelector{Selector: "div.vehicle-gallery img", Attr: "src"},
				NextPage: "div.pagination a.next",
			},
		},
		{
			Name:       "ouedkniss_automobiles",
			Vertical:   vertical.Vehicules,
			URL:        "https://www.ouedkniss.com/automobiles/%d",
			MaxPages:   5,
			BaseURL:    "https://www.ouedkniss.com",
			CacheKey:   cache.RateLimitKey("ouedkniss_automobiles"),
			BlockTime:  600,
			UseBrowser: true,
			Fetch: browser.FetchOptions{
				SettleDelay:    4 * time.Second,
				ScrollToBottom: true,
				DismissConsent: true,
			},
			DetailConcurrency: 3,
			Selectors: Selectors{
				AdList: "div.o-announ-card",
				Link:   "a.o-announ-card-title",
				ListQuery: map[string]FieldSelector{
					"title":    {Selector: "a.o-announ-card-title"},
					"price":    {Selector: "div.o-announ-card-price span.price"},
					"location": {Selector: "span.o-announ-card-city"},
				},
				DetailQuery: map[string]FieldSelector{
					"description": {Selector: "div.announ-description"},
					"price":       {Selector: "div.announ-details-price span.price"},
					"price_unit":  {Selector: "div.announ-details-price span.unit"},
					"marque":      {Selector: "li[data-spec='marque'] span.value"},
					"modele":      {Selector: "li[data-spec='modele'] span.value"},
					"annee":       {Selector: "li[data-spec='annee'] span.value"},
					"carburant":   {Selector: "li[data-spec='energie'] span.value"},
					"boite":       {Selector: "li[data-spec='boite'] span.value"},
					"kilometrage": {Selector: "li[data-spec='kilometrage'] span.value"},
					"couleur":     {Selector: "li[data-spec='couleur'] span.value"},
				},
				Images: FieldSelector{Selector: "div.announ-gallery img", Attr: "src"},
			},
		},
		{
			Name:       "ouedkniss_electromenager",
			Vertical:   vertical.Electromenager,
			URL:        "https://www.ouedkniss.com/electromenager/%d",
			MaxPages:   5,
			BaseURL:    "https://www.ouedkniss.com",
			CacheKey:   cache.RateLimitKey("ouedkniss_electromenager"),
			BlockTime:  600,
			UseBrowser: true,
			Fetch: browser.FetchOptions{
				SettleDelay:    4 * time.Second,
				ScrollToBottom: true,
				DismissConsent: true,
			},
			DetailConcurrency: 3,
			Selectors: Selectors{
				AdList: "div.o-announ-card",
				Link:   "a.o-announ-card-title",
				ListQuery: map[string]FieldSelector{
					"title":    {Selector: "a.o-announ-card-title"},
					"price":    {Selector: "div.o-announ-card-price span.price"},
					"location": {Selector: "span.o-announ-card-city"},
				},
				DetailQuery: map[string]FieldSelector{
					"description":    {Selector: "div.announ-description"},
					"price":          {Selector: "div.announ-details-price span.price"},
					"price_unit":     {Selector: "div.announ-details-price span.unit"},
					"type_appareil":  {Selector: "li[data-spec='type'] span.value"},
					"marque":         {Selector: "li[data-spec='marque'] span.value"},
					"classe_energie": {Selector: "li[data-spec='classe-energetique'] span.value"},
					"capacite":       {Selector: "li[data-spec='capacite'] span.value"},
					"dimensions":     {Selector: "li[data-spec='dimensions'] span.value"},
					"etat":           {Selector: "li[data-spec='etat'] span.value"},
				},
				Images: FieldSelector{Selector: "div.announ-gallery img", Attr: "src"},
			},
		},
		{
			Name:       "ouedkniss_telephones",
			Vertical:   vertical.Telephonie,
			URL:        "https://www.ouedkniss.com/telephones/%d",
			MaxPages:   5,
			BaseURL:    "https://www.ouedkniss.com",
			CacheKey:   cache.RateLimitKey("ouedkniss_telephones"),
			BlockTime:  600,
			UseBrowser: true,
			Fetch: browser.FetchOptions{
				SettleDelay:    4 * time.Second,
				ScrollToBottom: true,
				DismissConsent: true,
			},
			DetailConcurrency: 3,
			Selectors: Selectors{
				AdList: "div.o-announ-card",
				Link:   "a.o-announ-card-title",
				ListQuery: map[string]FieldSelector{
					"title":    {Selector: "a.o-announ-card-title"},
					"price":    {Selector: "div.o-announ-card-price span.price"},
					"location": {Selector: "span.o-announ-card-city"},
				},
				DetailQuery: map[string]FieldSelector{
					"description": {Selector: "div.announ-description"},
					"price":       {Selector: "div.announ-details-price span.price"},
					"price_unit":  {Selector: "div.announ-details-price span.unit"},
					"marque":      {Selector: "li[data-spec='marque'] span.value"},
					"modele":      {Selector: "li[data-spec='modele'] span.value"},
					"ram":         {Selector: "li[data-spec='ram'] span.value"},
					"stockage":    {Selector: "li[data-spec='stockage'] span.value"},
					"camera":      {Selector: "li[data-spec='camera'] span.value"},
					"ecran":       {Selector: "li[data-spec='ecran'] span.value"},
					"etat":        {Selector: "li[data-spec='etat'] span.value"},
				},
				Images: FieldSelector{Selector: "div.announ-gallery img", Attr: "src"},
			},
		},
	}
}
