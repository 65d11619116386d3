package normalize

import (
	"regexp"
	"strconv"
	"strings"
)

// Price unit multipliers. Classified prices in Algeria are commonly
// quoted in centimes: 1 million centimes = 10 000 DA and 1 milliard
// centimes = 10 000 000 DA. Any other unit is taken at face value.
const (
	millionMultiplier  = 10_000
	milliardMultiplier = 10_000_000
)

var (
	numberPattern = regexp.MustCompile(`[0-9][0-9.,]*`)

	// currencyTokens are stripped before numeric parsing, longest first
	// so "dzd" is not left half-eaten by "da".
	currencyTokens = []string{
		"milliards", "milliard", "millions", "million",
		"centimes", "dinars", "dinar", "dzd", "دج", "da",
		"eur", "€", "$", "usd",
	}

	unitPattern = regexp.MustCompile(`(?i)(milliards?|millions?|centimes|dinars?|dzd|دج|da|eur|€|\$|usd)\.?\s*$`)
)

// stripNoise removes currency tokens and every whitespace variant
// (including NBSP and narrow NBSP) from a raw numeric string.
func stripNoise(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	for _, tok := range currencyTokens {
		s = strings.ReplaceAll(s, tok, "")
	}
	return strings.Map(func(r rune) rune {
		if r == '\u00a0' || r == '\u202f' || r == '\u2009' || r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			return -1
		}
		return r
	}, s)
}

// ParseDecimal coerces a raw scraped string into a float. It tolerates
// currency suffixes, whitespace thousand separators, and thousand
// separators written as either "," or ".". It never fails loudly: an
// unparsable input yields (0, false).
func ParseDecimal(raw string) (float64, bool) {
	s := numberPattern.FindString(stripNoise(raw))
	if s == "" {
		return 0, false
	}

	comma := strings.LastIndex(s, ",")
	dot := strings.LastIndex(s, ".")
	switch {
	case comma >= 0 && dot >= 0:
		if comma > dot {
			// "1.250.000,50": comma is the decimal separator
			s = strings.ReplaceAll(s, ".", "")
			i := strings.LastIndex(s, ",")
			s = strings.ReplaceAll(s[:i], ",", "") + "." + s[i+1:]
		} else {
			// "1,250,000.50": dot is the decimal separator
			s = strings.ReplaceAll(s, ",", "")
		}
	case comma >= 0:
		if strings.Count(s, ",") == 1 && len(s)-comma-1 != 3 {
			// "12,5" reads as a decimal comma
			s = strings.Replace(s, ",", ".", 1)
		} else {
			// "1,250,000" uses thousand separators
			s = strings.ReplaceAll(s, ",", "")
		}
	case dot >= 0:
		if strings.Count(s, ".") > 1 || len(s)-dot-1 == 3 {
			// "1.250.000" or "1.250" use thousand separators
			s = strings.ReplaceAll(s, ".", "")
		}
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// FormatDecimal renders a coerced decimal back to its shortest string
// form ("120", "12.5").
func FormatDecimal(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ParseInt is ParseDecimal with an integer result.
func ParseInt(raw string) (int, bool) {
	v, ok := ParseDecimal(raw)
	if !ok {
		return 0, false
	}
	return int(v), true
}

// SplitPriceUnit separates a raw price string into its numeric value
// and its trailing unit token ("1 250 000 DA" → 1250000, "DA").
// A string without a parsable number yields (0, "", false); a number
// without a unit is still returned, with an empty unit.
func SplitPriceUnit(raw string) (float64, string, bool) {
	unit := ""
	if m := unitPattern.FindStringSubmatch(strings.TrimSpace(raw)); m != nil {
		unit = canonicalUnit(m[1])
	}
	v, ok := ParseDecimal(raw)
	if !ok {
		return 0, "", false
	}
	return v, unit, true
}

// ExpandPrice expands a split (value, unit) pair into an absolute DA
// amount. Millions and Milliards use the centime multiplier table; any
// other non-empty unit is taken as-is. A missing value or a missing
// unit is undefined, not zero: callers must be able to tell "no price"
// from "free".
func ExpandPrice(value string, unit string) (float64, bool) {
	if strings.TrimSpace(value) == "" || strings.TrimSpace(unit) == "" {
		return 0, false
	}
	v, ok := ParseDecimal(value)
	if !ok {
		return 0, false
	}
	switch {
	case strings.Contains(strings.ToLower(unit), "milliard"):
		return v * milliardMultiplier, true
	case strings.Contains(strings.ToLower(unit), "million"):
		return v * millionMultiplier, true
	default:
		return v, true
	}
}

func canonicalUnit(tok string) string {
	switch strings.ToLower(strings.TrimSuffix(strings.TrimSpace(tok), ".")) {
	case "da", "dinar", "dinars", "dzd", "دج":
		return "DA"
	case "million", "millions":
		return "Millions"
	case "milliard", "milliards":
		return "Milliards"
	case "centimes":
		return "Centimes"
	case "eur", "€":
		return "EUR"
	case "$", "usd":
		return "USD"
	default:
		return tok
	}
}
