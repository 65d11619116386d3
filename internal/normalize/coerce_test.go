package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDecimal(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		want  float64
		valid bool
	}{
		{"plain integer", "95000", 95000, true},
		{"space separators", "1 250 000", 1250000, true},
		{"nbsp separators", "1\u00a0250\u00a0000", 1250000, true},
		{"currency suffix", "1 250 000 DA", 1250000, true},
		{"arabic currency suffix", "95000 دج", 95000, true},
		{"decimal comma", "12,5", 12.5, true},
		{"decimal dot", "3.5", 3.5, true},
		{"dot thousand separators", "1.250.000", 1250000, true},
		{"comma thousand separators", "1,250,000", 1250000, true},
		{"mixed comma decimal", "1.250.000,50", 1250000.50, true},
		{"mixed dot decimal", "1,250,000.50", 1250000.50, true},
		{"single dot thousand", "1.250", 1250, true},
		{"empty", "", 0, false},
		{"no digits", "Sans prix", 0, false},
		{"whitespace only", "   ", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseDecimal(tt.raw)
			assert.Equal(t, tt.valid, ok)
			if tt.valid {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestSplitPriceUnit(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		value float64
		unit  string
		valid bool
	}{
		{"dinars", "1 250 000 DA", 1250000, "DA", true},
		{"dinars with dot", "95000 DA.", 95000, "DA", true},
		{"millions", "1200 Millions", 1200, "Millions", true},
		{"milliards", "2 Milliards", 2, "Milliards", true},
		{"euro", "500 €", 500, "EUR", true},
		{"bare number keeps empty unit", "145000", 145000, "", true},
		{"no number", "Sans prix", 0, "", false},
		{"empty", "", 0, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, unit, ok := SplitPriceUnit(tt.raw)
			assert.Equal(t, tt.valid, ok)
			if tt.valid {
				assert.Equal(t, tt.value, value)
				assert.Equal(t, tt.unit, unit)
			}
		})
	}
}

func TestExpandPrice(t *testing.T) {
	tests := []struct {
		name  string
		value string
		unit  string
		want  float64
		valid bool
	}{
		{"millions expand to dinars", "1200", "Millions", 12_000_000, true},
		{"milliards expand to dinars", "3", "Milliards", 30_000_000, true},
		{"fractional millions", "2,5", "Millions", 25_000, true},
		{"dinars pass through", "95000", "DA", 95000, true},
		{"missing value is undefined", "", "Millions", 0, false},
		{"missing unit is undefined", "95000", "", 0, false},
		{"unparsable value", "prix", "DA", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExpandPrice(tt.value, tt.unit)
			assert.Equal(t, tt.valid, ok)
			if tt.valid {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

// A price that has already been expanded must survive a second pass
// unchanged when fed back through the splitter.
func TestPriceCoercionIdempotent(t *testing.T) {
	v, ok := ExpandPrice("1200", "Millions")
	assert.True(t, ok)

	again, unit, ok := SplitPriceUnit(FormatDecimal(v) + " DA")
	assert.True(t, ok)
	assert.Equal(t, v, again)
	assert.Equal(t, "DA", unit)
}

func TestParseInt(t *testing.T) {
	v, ok := ParseInt("145 000 km")
	assert.True(t, ok)
	assert.Equal(t, 145000, v)

	_, ok = ParseInt("aucun")
	assert.False(t, ok)
}

func TestFormatDecimal(t *testing.T) {
	assert.Equal(t, "120", FormatDecimal(120))
	assert.Equal(t, "12.5", FormatDecimal(12.5))
}
