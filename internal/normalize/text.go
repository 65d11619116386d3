package normalize

import (
	"regexp"
	"strings"
)

var (
	tagPattern  = regexp.MustCompile(`<[^>]*>`)
	yearPattern = regexp.MustCompile(`\b(19|20)\d{2}\b`)
	dimsPattern = regexp.MustCompile(`(?i)[x×*]`)
)

// CleanText trims a raw scraped string, strips embedded markup and
// collapses every run of whitespace (including NBSP variants) to a
// single space.
func CleanText(raw string) string {
	s := tagPattern.ReplaceAllString(raw, " ")
	return strings.Join(strings.Fields(s), " ")
}

// SplitLocation splits a raw "Wilaya - Commune" (or "Wilaya, Commune")
// string into its two administrative parts. A string without a
// recognized delimiter is treated as a bare wilaya; the split is
// best-effort and never fails.
func SplitLocation(raw string) (wilaya, commune string) {
	s := CleanText(raw)
	if s == "" {
		return "", ""
	}
	for _, sep := range []string{" - ", " – ", ",", "/"} {
		if i := strings.Index(s, sep); i >= 0 {
			return strings.TrimSpace(s[:i]), strings.TrimSpace(s[i+len(sep):])
		}
	}
	// A tight dash only splits a multi-word string: hyphenated names
	// like "Bab-Ezzouar" stay whole.
	if i := strings.Index(s, "-"); i >= 0 && strings.ContainsRune(s, ' ') {
		return strings.TrimSpace(s[:i]), strings.TrimSpace(s[i+1:])
	}
	return s, ""
}

// SplitList turns a pipe- or comma-delimited string into an ordered
// list of cleaned tokens. Empty input yields an empty list, never a
// list holding one empty string.
func SplitList(raw string) []string {
	s := CleanText(raw)
	if s == "" {
		return nil
	}
	sep := ","
	if strings.Contains(s, "|") {
		sep = "|"
	}
	var out []string
	for _, part := range strings.Split(s, sep) {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// FirstYear extracts the first plausible 4-digit year from free text,
// or "" when none is present.
func FirstYear(raw string) string {
	return yearPattern.FindString(raw)
}

// SplitDimensions breaks a "60 x 60 x 85" style string into its
// component measurements. Malformed segments are dropped rather than
// failing the whole split.
func SplitDimensions(raw string) []string {
	s := CleanText(raw)
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range dimsPattern.Split(s, -1) {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// mapLabel looks raw up in a fixed-vocabulary table after cleaning and
// lowercasing. Unknown labels pass through cleaned but otherwise
// unchanged, so the mapping is idempotent: a canonical label fed back
// in comes out identical.
func mapLabel(raw string, table map[string]string) string {
	s := CleanText(raw)
	if s == "" {
		return ""
	}
	if canon, ok := table[strings.ToLower(s)]; ok {
		return canon
	}
	return s
}

// matchKeyword scans free text for the first rule whose keyword it
// contains. Rules are expected ordered most-specific first, so a
// longer qualified match always beats a generic fallback.
type keywordRule struct {
	keyword string
	label   string
}

func matchKeyword(raw string, rules []keywordRule) string {
	s := strings.ToLower(CleanText(raw))
	if s == "" {
		return ""
	}
	for _, r := range rules {
		if strings.Contains(s, r.keyword) {
			return r.label
		}
	}
	return ""
}
