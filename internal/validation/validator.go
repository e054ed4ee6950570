package validation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/Davincible/timescipher/pkg/crypto/prng"
)

const (
	MinGridSize     = 8
	MaxGridSize     = 20
	DefaultGridSize = 12
	DefaultSeed     = 1
)

var seedPattern = regexp.MustCompile(`^[+-]?\d+$`)

// ValidateGridSize rejects grid sizes outside the supported range.
func ValidateGridSize(size int) error {
	if size < MinGridSize || size > MaxGridSize {
		return fmt.Errorf("grid size must be between %d and %d (got %d)", MinGridSize, MaxGridSize, size)
	}
	return nil
}

// SanitizeGridSize returns size, or DefaultGridSize when size is unsupported.
func SanitizeGridSize(size int) int {
	if ValidateGridSize(size) != nil {
		return DefaultGridSize
	}
	return size
}

// ParseGridSize parses a stored grid size, falling back to the default.
func ParseGridSize(input string) int {
	size, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return DefaultGridSize
	}
	return SanitizeGridSize(size)
}

// ParseSeed parses an integer seed. Values outside the 32-bit range wrap
// around. An empty input yields DefaultSeed.
func ParseSeed(input string) (int32, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return DefaultSeed, nil
	}

	if !seedPattern.MatchString(input) {
		return 0, fmt.Errorf("seed must be an integer (got %q)", input)
	}

	n, err := strconv.ParseInt(input, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("seed out of range: %w", err)
	}
	return int32(n), nil
}

// SeedFromPhrase parses input as an integer seed, or hashes it when it is
// a free-form phrase.
func SeedFromPhrase(input string) int32 {
	if seed, err := ParseSeed(input); err == nil {
		return seed
	}
	return int32(prng.Hash(strings.TrimSpace(input)))
}

func SanitizeInput(input string) string {
	input = strings.ReplaceAll(input, "\r\n", "\n")
	input = strings.ReplaceAll(input, "\r", "\n")

	lines := strings.Split(input, "\n")
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}

	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// ValidatePassphrase checks an answer-key passphrase.
func ValidatePassphrase(passphrase string, minLength int) error {
	if len(passphrase) < minLength {
		return fmt.Errorf("passphrase must be at least %d characters", minLength)
	}

	if len(passphrase) > 256 {
		return fmt.Errorf("passphrase too long (max 256 characters)")
	}

	for i, ch := range passphrase {
		if ch == 0 {
			return fmt.Errorf("passphrase contains null character at position %d", i)
		}
	}

	return nil
}
