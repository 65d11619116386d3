package record

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"ybelaid/dzadscraper/internal/scraper"
	"ybelaid/dzadscraper/internal/vertical"
)

func testAssembler() *Assembler {
	return &Assembler{now: func() time.Time {
		return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	}}
}

func TestAssembleProperty(t *testing.T) {
	a := testAssembler()

	rec, err := a.Assemble(scraper.Item{
		Site:     "lkeria",
		Vertical: vertical.Immobilier,
		URL:      "https://www.lkeria.com/annonce/123",
		Listing: map[string]string{
			"title":    "Vente appartement F3  Alger",
			"price":    "1 250 000 DA",
			"location": "Alger - El Achour",
		},
		Detail: map[string]string{
			"description": "<p>Bel appartement</p> refait à neuf",
			"type_bien":   "appartement",
			"pieces":      "F3",
			"surface":     "120 m²",
		},
		Images:       []string{"https://www.lkeria.com/img/1.jpg"},
		DiscoveredAt: time.Date(2025, 6, 1, 11, 0, 0, 0, time.UTC),
	})

	assert.NoError(t, err)
	assert.Equal(t, "lkeria", rec.Source)
	assert.Equal(t, vertical.Immobilier, rec.Vertical)
	assert.Equal(t, StatusNormalized, rec.Status)
	assert.Equal(t, "Vente appartement F3 Alger", rec.Title)
	assert.Equal(t, "Bel appartement refait à neuf", rec.Description)
	assert.Equal(t, "Vente", rec.Transaction)

	if assert.NotNil(t, rec.Price) {
		assert.Equal(t, float64(1250000), *rec.Price)
	}
	assert.Equal(t, "DA", rec.PriceUnit)
	assert.Equal(t, "1 250 000 DA", rec.PriceRaw)

	assert.Equal(t, "Alger", rec.Wilaya)
	assert.Equal(t, "El Achour", rec.Commune)

	assert.Equal(t, "Appartement", rec.Attributes["type_bien"])
	assert.Equal(t, "F3", rec.Attributes["pieces"])
	assert.Equal(t, "120", rec.Attributes["surface"])

	assert.True(t, rec.HasPhoto)
	assert.True(t, rec.HasPrice)
	assert.True(t, rec.Available)
	assert.Equal(t, time.Date(2025, 6, 1, 11, 0, 0, 0, time.UTC), rec.CrawledAt)
	assert.Equal(t, time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC), rec.VerifiedAt)
}

// Detail-page values win over listing values for the same key.
func TestAssembleDetailPrecedence(t *testing.T) {
	a := testAssembler()

	rec, err := a.Assemble(scraper.Item{
		Site:     "autobip",
		Vertical: vertical.Vehicules,
		URL:      "https://www.autobip.com/annonce/9",
		Listing:  map[string]string{"title": "Golf"},
		Detail:   map[string]string{"title": "Golf 7 2018 TDI"},
	})

	assert.NoError(t, err)
	assert.Equal(t, "Golf 7 2018 TDI", rec.Title)
}

// A split value/unit pair expands through the centime multipliers and
// comes out as an absolute DA amount.
func TestAssemblePriceExpansion(t *testing.T) {
	a := testAssembler()

	rec, err := a.Assemble(scraper.Item{
		Site:     "lkeria",
		Vertical: vertical.Immobilier,
		URL:      "https://www.lkeria.com/annonce/7",
		Detail: map[string]string{
			"price":      "1200",
			"price_unit": "Millions",
		},
	})

	assert.NoError(t, err)
	if assert.NotNil(t, rec.Price) {
		assert.Equal(t, float64(12_000_000), *rec.Price)
	}
	assert.Equal(t, "DA", rec.PriceUnit)
	assert.True(t, rec.HasPrice)
}

// "Sans prix" style listings keep a nil price and a false flag; the
// record is still assembled.
func TestAssembleWithoutPriceOrPhoto(t *testing.T) {
	a := testAssembler()

	rec, err := a.Assemble(scraper.Item{
		Site:     "beytic",
		Vertical: vertical.Immobilier,
		URL:      "https://www.beytic.com/annonce/55",
		Listing: map[string]string{
			"title": "Appartement F2 Oran",
			"price": "Sans prix",
		},
	})

	assert.NoError(t, err)
	assert.Nil(t, rec.Price)
	assert.Equal(t, "", rec.PriceUnit)
	assert.False(t, rec.HasPrice)
	assert.False(t, rec.HasPhoto)
	assert.NotNil(t, rec.Images)
	assert.Empty(t, rec.Images)
}

// Every key of the vertical's schema is present, even when the site
// never produced the field.
func TestAssembleSchemaComplete(t *testing.T) {
	a := testAssembler()

	rec, err := a.Assemble(scraper.Item{
		Site:     "emploitic",
		Vertical: vertical.Emploi,
		URL:      "https://www.emploitic.com/offre/42",
		Listing:  map[string]string{"title": "Développeur Java"},
		Detail:   map[string]string{"diplome": "Bac +2", "contrat": "cdi"},
	})

	assert.NoError(t, err)
	assert.Len(t, rec.Attributes, len(vertical.Emploi.AttributeSchema()))
	for _, key := range vertical.Emploi.AttributeSchema() {
		_, ok := rec.Attributes[key]
		assert.True(t, ok, "missing attribute %q", key)
	}
	assert.Equal(t, "Diplôme universitaire", rec.Attributes["diplome"])
	assert.Equal(t, "CDI", rec.Attributes["contrat"])
	assert.Equal(t, "", rec.Attributes["secteur"])
}

// Specs that only exist in the title and description are still mined
// into the schema attributes; a dedicated field always wins over the
// free text.
func TestAssembleSpecsFromFreeText(t *testing.T) {
	a := testAssembler()

	rec, err := a.Assemble(scraper.Item{
		Site:     "ouedkniss_telephones",
		Vertical: vertical.Telephonie,
		URL:      "https://www.ouedkniss.com/annonce/77",
		Listing:  map[string]string{"title": "Samsung Galaxy S23 8 Go RAM 256 Go"},
		Detail: map[string]string{
			"description": "Caméra 108 Mpx, écran 6.7 pouces, état neuf",
			"stockage":    "128 Go",
		},
	})

	assert.NoError(t, err)
	assert.Equal(t, "8", rec.Attributes["ram"])
	assert.Equal(t, "128", rec.Attributes["stockage"])
	assert.Equal(t, "108", rec.Attributes["camera"])
	assert.Equal(t, "6.7", rec.Attributes["ecran"])
}

func TestAssembleApplianceSpecsFromFreeText(t *testing.T) {
	a := testAssembler()

	rec, err := a.Assemble(scraper.Item{
		Site:     "ouedkniss_electromenager",
		Vertical: vertical.Electromenager,
		URL:      "https://www.ouedkniss.com/annonce/78",
		Listing:  map[string]string{"title": "Machine à laver LG 7 kg classe A++"},
	})

	assert.NoError(t, err)
	assert.Equal(t, "A++", rec.Attributes["classe_energie"])
	assert.Equal(t, "7 kg", rec.Attributes["capacite"])
}

func TestAssembleMissingIdentity(t *testing.T) {
	a := testAssembler()

	_, err := a.Assemble(scraper.Item{
		Site:     "lkeria",
		Vertical: vertical.Immobilier,
		Listing:  map[string]string{"title": "Appartement"},
	})
	assert.ErrorIs(t, err, ErrMissingIdentity)
}

func TestAssembleTransactionFallback(t *testing.T) {
	a := testAssembler()

	rec, err := a.Assemble(scraper.Item{
		Site:     "beytic",
		Vertical: vertical.Immobilier,
		URL:      "https://www.beytic.com/annonce/8",
		Listing:  map[string]string{"title": "Villa à louer Hydra"},
	})

	assert.NoError(t, err)
	assert.Equal(t, "Location", rec.Transaction)
}

func TestAssembleUnavailable(t *testing.T) {
	a := testAssembler()

	rec, err := a.Assemble(scraper.Item{
		Site:     "lkeria",
		Vertical: vertical.Immobilier,
		URL:      "https://www.lkeria.com/annonce/1",
		Detail:   map[string]string{"disponibilite": "Vendu"},
	})

	assert.NoError(t, err)
	assert.False(t, rec.Available)
}
