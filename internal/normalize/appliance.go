package normalize

import (
	"regexp"
	"strings"
)

// Household-appliance normalization rules.

var applianceTypes = map[string]string{
	"réfrigérateur":   "Réfrigérateur",
	"refrigerateur":   "Réfrigérateur",
	"frigo":           "Réfrigérateur",
	"congélateur":     "Congélateur",
	"congelateur":     "Congélateur",
	"machine à laver": "Machine à laver",
	"machine a laver": "Machine à laver",
	"lave-linge":      "Machine à laver",
	"lave linge":      "Machine à laver",
	"lave-vaisselle":  "Lave-vaisselle",
	"lave vaisselle":  "Lave-vaisselle",
	"climatiseur":     "Climatiseur",
	"clim":            "Climatiseur",
	"cuisinière":      "Cuisinière",
	"cuisiniere":      "Cuisinière",
	"four":            "Four",
	"micro-ondes":     "Micro-ondes",
	"micro ondes":     "Micro-ondes",
	"chauffe-eau":     "Chauffe-eau",
	"chauffe eau":     "Chauffe-eau",
}

var (
	energyPattern   = regexp.MustCompile(`(?i)\bclasse\s*([A-G]\+{0,3})|\b([A-G]\+{1,3})|(?-i:\b([A-G])\b)`)
	capacityPattern = regexp.MustCompile(`(?i)(\d{1,4}(?:[.,]\d)?)\s*(kg|l|litres?)\b`)
)

// ApplianceType maps a raw appliance label to its canonical form.
func ApplianceType(raw string) string {
	return mapLabel(raw, applianceTypes)
}

// EnergyClass extracts an energy-efficiency class (A+++ .. G) from
// free text, or "".
func EnergyClass(raw string) string {
	m := energyPattern.FindStringSubmatch(raw)
	if m == nil {
		return ""
	}
	for _, g := range m[1:] {
		if g != "" {
			return strings.ToUpper(g)
		}
	}
	return ""
}

// Capacity extracts a capacity with its unit ("7 kg" → "7 kg",
// "500 litres" → "500 L"), or "".
func Capacity(raw string) string {
	m := capacityPattern.FindStringSubmatch(raw)
	if m == nil {
		return ""
	}
	v, ok := ParseDecimal(m[1])
	if !ok {
		return ""
	}
	unit := "kg"
	if strings.HasPrefix(strings.ToLower(m[2]), "l") {
		unit = "L"
	}
	return FormatDecimal(v) + " " + unit
}
