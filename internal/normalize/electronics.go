package normalize

import (
	"regexp"
	"strings"
)

// Phone/electronics spec extraction. Specs arrive as free text in
// titles and description bullets ("8 Go RAM", "256 Go", "108 Mpx",
// "écran 6.7 pouces") and are reduced to bare numeric strings.

var (
	ramPattern     = regexp.MustCompile(`(?i)(\d{1,3})\s*Go\s*(?:de\s*)?RAM`)
	storagePattern = regexp.MustCompile(`(?i)(\d{1,4})\s*(Go|To)\b`)
	cameraPattern  = regexp.MustCompile(`(?i)(\d{1,3})\s*(?:Mpx|Mpix|MP)\b`)
	screenPattern  = regexp.MustCompile(`(?i)(\d{1,2}(?:[.,]\d{1,2})?)\s*(?:pouces|")`)
)

var deviceConditions = map[string]string{
	"neuf":                "Neuf",
	"neuf sous emballage": "Neuf",
	"jamais utilisé":      "Neuf",
	"jamais utilise":      "Neuf",
	"occasion":            "Occasion",
	"utilisé":             "Occasion",
	"utilise":             "Occasion",
	"bon état":            "Occasion",
	"bon etat":            "Occasion",
	"reconditionné":       "Reconditionné",
	"reconditionne":       "Reconditionné",
}

// RAM extracts the RAM size in Go from free text, or "".
func RAM(raw string) string {
	m := ramPattern.FindStringSubmatch(raw)
	if m == nil {
		return ""
	}
	return m[1]
}

// Storage extracts the storage size from free text, normalized to Go
// ("1 To" → "1024"), or "". A "Go" figure immediately followed by
// "RAM" belongs to RAM, not storage, and is skipped.
func Storage(raw string) string {
	for _, m := range storagePattern.FindAllStringSubmatchIndex(raw, -1) {
		rest := strings.TrimSpace(strings.ToLower(raw[m[1]:]))
		rest = strings.TrimPrefix(rest, "de ")
		if strings.HasPrefix(rest, "ram") {
			continue
		}
		v, ok := ParseInt(raw[m[2]:m[3]])
		if !ok {
			continue
		}
		if strings.EqualFold(raw[m[4]:m[5]], "To") {
			v *= 1024
		}
		return FormatDecimal(float64(v))
	}
	return ""
}

// Camera extracts the main camera resolution in Mpx, or "".
func Camera(raw string) string {
	m := cameraPattern.FindStringSubmatch(raw)
	if m == nil {
		return ""
	}
	return m[1]
}

// ScreenSize extracts a screen diagonal in inches, or "".
func ScreenSize(raw string) string {
	m := screenPattern.FindStringSubmatch(raw)
	if m == nil {
		return ""
	}
	if v, ok := ParseDecimal(m[1]); ok {
		return FormatDecimal(v)
	}
	return ""
}

// DeviceCondition maps a raw condition label to its canonical form.
func DeviceCondition(raw string) string {
	return mapLabel(raw, deviceConditions)
}
