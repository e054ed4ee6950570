package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGridSize(t *testing.T) {
	tests := []struct {
		name      string
		size      int
		wantError bool
		sanitized int
	}{
		{"minimum", 8, false, 8},
		{"maximum", 20, false, 20},
		{"default", 12, false, 12},
		{"too small", 7, true, 12},
		{"too large", 21, true, 12},
		{"negative", -3, true, 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateGridSize(tt.size)
			if tt.wantError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.sanitized, SanitizeGridSize(tt.size))
		})
	}
}

func TestParseGridSize(t *testing.T) {
	assert.Equal(t, 15, ParseGridSize(" 15 "))
	assert.Equal(t, DefaultGridSize, ParseGridSize("abc"))
	assert.Equal(t, DefaultGridSize, ParseGridSize("100"))
	assert.Equal(t, DefaultGridSize, ParseGridSize(""))
}

func TestParseSeed(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		want      int32
		wantError bool
	}{
		{"empty defaults", "", DefaultSeed, false},
		{"positive", "42", 42, false},
		{"negative", "-7", -7, false},
		{"plus sign", "+5", 5, false},
		{"wraps", "4294967295", -1, false},
		{"words", "banana", 0, true},
		{"float", "1.5", 0, true},
		{"too large", "99999999999999999999", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSeed(tt.input)
			if tt.wantError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSeedFromPhrase(t *testing.T) {
	assert.Equal(t, int32(42), SeedFromPhrase("42"))
	assert.Equal(t, SeedFromPhrase("class 4b"), SeedFromPhrase("  class 4b "))
	assert.NotEqual(t, SeedFromPhrase("class 4a"), SeedFromPhrase("class 4b"))
}

func TestSanitizeInput(t *testing.T) {
	assert.Equal(t, "hello\nworld", SanitizeInput("  hello \r\n world\r"))
	assert.Equal(t, "", SanitizeInput(" \n "))
}

func TestValidatePassphrase(t *testing.T) {
	assert.NoError(t, ValidatePassphrase("correct horse", 8))
	assert.Error(t, ValidatePassphrase("short", 8))
	assert.Error(t, ValidatePassphrase(strings.Repeat("a", 300), 8))
	assert.Error(t, ValidatePassphrase("abc\x00defgh", 8))
}
