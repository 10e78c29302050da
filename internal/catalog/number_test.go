package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseNumber(t *testing.T) {
	tests := []struct {
		name  string
		input interface{}
		want  float64
		ok    bool
	}{
		{"plain float", 1234.56, 1234.56, true},
		{"plain int", 5, 5, true},
		{"numeric string", "1234.56", 1234.56, true},
		{"thousands comma", "1,234.56", 1234.56, true},
		{"european separators", "1.234,56", 1234.56, true},
		{"decimal comma", "99,90", 99.90, true},
		{"thousands only comma", "1,234", 1234, true},
		{"currency prefix", "Q1,234.50", 1234.50, true},
		{"integer string", "5", 5, true},
		{"negative", "-12.5", -12.5, true},
		{"nil", nil, 0, false},
		{"empty string", "", 0, false},
		{"garbage", "no disponible", 0, false},
		{"bool", true, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseNumber(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.InDelta(t, tt.want, got, 1e-9)
			}
		})
	}
}

func TestParseNumberIdempotent(t *testing.T) {
	first, ok := ParseNumber("1,234.56")
	assert.True(t, ok)

	second, ok := ParseNumber(first)
	assert.True(t, ok)
	assert.Equal(t, first, second)
}

func TestNumberPtr(t *testing.T) {
	assert.Nil(t, NumberPtr("not a number"))

	p := NumberPtr("99.90")
	if assert.NotNil(t, p) {
		assert.InDelta(t, 99.90, *p, 1e-9)
	}
}
