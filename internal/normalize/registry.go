package normalize

import (
	"strings"

	"ybelaid/dzadscraper/internal/vertical"
)

// FieldFunc normalizes one raw field value. Every FieldFunc is total:
// arbitrary input in, canonical label (or "") out, never an error.
type FieldFunc func(string) string

func roomsField(raw string) string {
	if r := Rooms(raw); r != "" {
		return r
	}
	if n, ok := ParseInt(raw); ok && n > 0 && n < 30 {
		return "F" + FormatDecimal(float64(n))
	}
	return ""
}

func numericField(raw string) string {
	if v, ok := ParseDecimal(raw); ok {
		return FormatDecimal(v)
	}
	return ""
}

// extracted makes a unit-anchored extractor idempotent: its output is a
// bare number, which the extractor itself no longer recognizes, so a
// value that is already exactly a bare number passes straight through.
func extracted(fn FieldFunc) FieldFunc {
	return func(raw string) string {
		if v := fn(raw); v != "" {
			return v
		}
		s := strings.TrimSpace(raw)
		if v, ok := ParseDecimal(s); ok && FormatDecimal(v) == s {
			return s
		}
		return ""
	}
}

var attributeFuncs = map[vertical.Vertical]map[string]FieldFunc{
	vertical.Immobilier: {
		"type_bien": PropertyType,
		"pieces":    roomsField,
		"surface":   extracted(Surface),
		"etage":     numericField,
	},
	vertical.Emploi: {
		"diplome":    Diploma,
		"experience": extracted(ExperienceYears),
		"contrat":    ContractType,
	},
	vertical.Vehicules: {
		"annee":       ModelYear,
		"carburant":   FuelType,
		"boite":       Gearbox,
		"kilometrage": extracted(Mileage),
	},
	vertical.Electromenager: {
		"type_appareil":  ApplianceType,
		"classe_energie": EnergyClass,
		"capacite":       Capacity,
		"dimensions": func(raw string) string {
			return joinDims(SplitDimensions(raw))
		},
		"etat": DeviceCondition,
	},
	vertical.Telephonie: {
		"ram":      extracted(RAM),
		"stockage": extracted(Storage),
		"camera":   extracted(Camera),
		"ecran":    extracted(ScreenSize),
		"etat":     DeviceCondition,
	},
}

// freeTextFuncs lists the extractors that are safe to run against the
// ad's title and description when the schema field has no direct
// source value. Only match-or-empty extractors qualify: vocabulary
// maps pass unknown text through and would swallow the whole title.
var freeTextFuncs = map[vertical.Vertical]map[string]FieldFunc{
	vertical.Immobilier: {
		"surface": Surface,
		"pieces":  Rooms,
	},
	vertical.Emploi: {
		"experience": ExperienceYears,
	},
	vertical.Vehicules: {
		"annee":       ModelYear,
		"kilometrage": Mileage,
	},
	vertical.Electromenager: {
		"classe_energie": EnergyClass,
		"capacite":       Capacity,
	},
	vertical.Telephonie: {
		"ram":      RAM,
		"stockage": Storage,
		"camera":   Camera,
		"ecran":    ScreenSize,
	},
}

// FromFreeText returns the free-text extractor for a schema attribute,
// or nil when the attribute cannot be mined from title/description.
func FromFreeText(v vertical.Vertical, field string) FieldFunc {
	if funcs, ok := freeTextFuncs[v]; ok {
		return funcs[field]
	}
	return nil
}

func joinDims(parts []string) string {
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += " x "
		}
		out += p
	}
	return out
}

// ForAttribute returns the registered normalizer for one of a
// vertical's schema attributes. Fields with no registered rule are
// copied through as cleaned text by the assembler.
func ForAttribute(v vertical.Vertical, field string) FieldFunc {
	if funcs, ok := attributeFuncs[v]; ok {
		return funcs[field]
	}
	return nil
}
