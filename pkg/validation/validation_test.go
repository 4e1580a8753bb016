package validation

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrimAndValidate(t *testing.T) {
	tests := []struct {
		input    string
		expected string
		valid    bool
	}{
		{"London", "London", true},
		{"  Paris \t", "Paris", true},
		{"   ", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := TrimAndValidate(tt.input)
		assert.Equal(t, tt.expected, got)
		assert.Equal(t, tt.valid, ok)
		assert.Equal(t, tt.valid, IsNotEmpty(tt.input))
	}
}

func TestCoordinateRanges(t *testing.T) {
	assert.True(t, IsValidLatitude(-90))
	assert.True(t, IsValidLatitude(90))
	assert.True(t, IsValidLatitude(51.5074))
	assert.False(t, IsValidLatitude(90.0001))
	assert.False(t, IsValidLatitude(360))
	assert.False(t, IsValidLatitude(math.NaN()))

	assert.True(t, IsValidLongitude(-180))
	assert.True(t, IsValidLongitude(180))
	assert.False(t, IsValidLongitude(-180.5))
	assert.False(t, IsValidLongitude(math.Inf(1)))
}

func TestNormalizePlaceName(t *testing.T) {
	assert.Equal(t, "new york", NormalizePlaceName("  New   York "))
	assert.Equal(t, "tokyo", NormalizePlaceName("TOKYO"))
	assert.Equal(t, "", NormalizePlaceName(" \t "))
}
