package normalize

import "regexp"

// Job-offer normalization rules.

// Diploma labels, ordered most-specific first. "Bac +5" must be
// checked before the bare "bac".
var diplomaRules = []keywordRule{
	{"doctorat", "Doctorat"},
	{"magister", "Magister"},
	{"master", "Master"},
	{"ingénieur", "Ingénieur d'état"},
	{"ingenieur", "Ingénieur d'état"},
	{"licence", "Licence"},
	{"bac +5", "Diplôme universitaire"},
	{"bac +4", "Diplôme universitaire"},
	{"bac +3", "Diplôme universitaire"},
	{"bac +2", "Diplôme universitaire"},
	{"bac+5", "Diplôme universitaire"},
	{"bac+4", "Diplôme universitaire"},
	{"bac+3", "Diplôme universitaire"},
	{"bac+2", "Diplôme universitaire"},
	{"ts ", "Technicien supérieur"},
	{"technicien supérieur", "Technicien supérieur"},
	{"technicien superieur", "Technicien supérieur"},
	{"technicien", "Technicien"},
	{"cap", "CAP"},
	{"cmp", "CMP"},
	{"bac", "Baccalauréat"},
	{"sans diplôme", "Sans diplôme"},
	{"sans diplome", "Sans diplôme"},
	{"aucun", "Sans diplôme"},
}

var contractTypes = map[string]string{
	"cdi":           "CDI",
	"cdd":           "CDD",
	"anem":          "Contrat ANEM",
	"pré-emploi":    "Pré-emploi",
	"pre-emploi":    "Pré-emploi",
	"stage":         "Stage",
	"temps partiel": "Temps partiel",
	"temps plein":   "Temps plein",
	"freelance":     "Freelance",
	"intérim":       "Intérim",
	"interim":       "Intérim",
	"apprentissage": "Apprentissage",
	"contrat anem":  "Contrat ANEM",
	"contrat daip":  "Contrat DAIP",
	"daip":          "Contrat DAIP",
}

var experiencePattern = regexp.MustCompile(`(\d{1,2})\s*(?:ans?|années?|annees?)`)

// Diploma maps a raw study-level string to its canonical label.
// "Bac +2" and friends collapse to "Diplôme universitaire"; an
// already-canonical label comes back unchanged.
func Diploma(raw string) string {
	if label := matchKeyword(raw, diplomaRules); label != "" {
		return label
	}
	return CleanText(raw)
}

// ContractType maps a raw contract string to its canonical label.
func ContractType(raw string) string {
	return mapLabel(raw, contractTypes)
}

// ExperienceYears extracts a required-experience figure ("3 ans
// minimum" → "3") from free text, or "" when absent.
func ExperienceYears(raw string) string {
	m := experiencePattern.FindStringSubmatch(CleanText(raw))
	if m == nil {
		return ""
	}
	return m[1]
}
