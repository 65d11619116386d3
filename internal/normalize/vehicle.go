package normalize

import "regexp"

// Vehicle normalization rules.

var fuelTypes = map[string]string{
	"essence":     "Essence",
	"diesel":      "Diesel",
	"gasoil":      "Diesel",
	"gaz":         "GPL",
	"gpl":         "GPL",
	"essence-gpl": "GPL",
	"hybride":     "Hybride",
	"electrique":  "Électrique",
	"électrique":  "Électrique",
}

var gearboxTypes = map[string]string{
	"manuelle":         "Manuelle",
	"manuel":           "Manuelle",
	"automatique":      "Automatique",
	"auto":             "Automatique",
	"semi automatique": "Semi-automatique",
	"semi-automatique": "Semi-automatique",
}

var mileagePattern = regexp.MustCompile(`(?i)(\d[\d\s.,\x{00a0}\x{202f}]*)\s*km`)

// FuelType maps a raw fuel label to its canonical form.
func FuelType(raw string) string {
	return mapLabel(raw, fuelTypes)
}

// Gearbox maps a raw transmission label to its canonical form.
func Gearbox(raw string) string {
	return mapLabel(raw, gearboxTypes)
}

// Mileage extracts a kilometrage figure from free text ("145 000 km"
// → "145000"), or "" when absent.
func Mileage(raw string) string {
	m := mileagePattern.FindStringSubmatch(raw)
	if m == nil {
		return ""
	}
	if v, ok := ParseInt(m[1]); ok {
		return FormatDecimal(float64(v))
	}
	return ""
}

// ModelYear extracts a vehicle model year from free text.
func ModelYear(raw string) string {
	return FirstYear(raw)
}
