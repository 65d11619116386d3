package normalize

import (
	"regexp"
)

// Real-estate normalization rules.

var propertyTypes = map[string]string{
	"appartement":      "Appartement",
	"appart":           "Appartement",
	"villa":            "Villa",
	"niveau de villa":  "Niveau de villa",
	"studio":           "Studio",
	"duplex":           "Duplex",
	"terrain":          "Terrain",
	"terrain agricole": "Terrain agricole",
	"local":            "Local",
	"hangar":           "Hangar",
	"carcasse":         "Carcasse",
	"bungalow":         "Bungalow",
	"immeuble":         "Immeuble",
}

// Ordered most-specific first: "location vacances" must win over the
// generic "location".
var transactionRules = []keywordRule{
	{"location vacances", "Location vacances"},
	{"location par jour", "Location vacances"},
	{"demande de location", "Demande de location"},
	{"demande d'achat", "Demande d'achat"},
	{"demande d’achat", "Demande d'achat"},
	{"cherche location", "Demande de location"},
	{"cherche achat", "Demande d'achat"},
	{"location", "Location"},
	{"louer", "Location"},
	{"vente", "Vente"},
	{"vendre", "Vente"},
	{"vend", "Vente"},
	{"echange", "Échange"},
	{"échange", "Échange"},
}

var (
	roomsPattern   = regexp.MustCompile(`(?i)\bF\s?(\d{1,2})\b`)
	surfacePattern = regexp.MustCompile(`(?i)(\d[\d.,]*)\s*m\s?[²2]`)
)

// PropertyType maps a raw property label to its canonical form.
func PropertyType(raw string) string {
	return mapLabel(raw, propertyTypes)
}

// TransactionType extracts the transaction kind from a title or
// category string. No recognized keyword yields "".
func TransactionType(raw string) string {
	return matchKeyword(raw, transactionRules)
}

// Rooms extracts an "F3"-style room count from free text, returning
// the normalized "F<n>" label or "".
func Rooms(raw string) string {
	m := roomsPattern.FindStringSubmatch(raw)
	if m == nil {
		return ""
	}
	return "F" + m[1]
}

// Surface extracts a surface in m² from free text ("surface 120 m²" →
// "120"), returning the bare numeric string or "".
func Surface(raw string) string {
	m := surfacePattern.FindStringSubmatch(raw)
	if m == nil {
		return ""
	}
	if v, ok := ParseDecimal(m[1]); ok {
		return FormatDecimal(v)
	}
	return ""
}
