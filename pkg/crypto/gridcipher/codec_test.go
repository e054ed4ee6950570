package gridcipher

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeMessage(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"uppercases", "hello", "HELLO"},
		{"trims", "  hi there \n", "HI THERE"},
		{"replaces punctuation", "Hello, World!", "HELLO  WORLD "},
		{"replaces digits", "r2d2", "R D "},
		{"replaces non-ascii", "café", "CAF "},
		{"empty", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeMessage(tt.input))
		})
	}
}

func TestEncodeGolden(t *testing.T) {
	tests := []struct {
		name     string
		gridSize int
		seed     int32
		want     string
	}{
		{
			name:     "grid 8",
			gridSize: 8,
			seed:     1,
			want:     "1x8 7x8 1x3 1x3 3x6 5x6 5x6 6x8 3x6 2x6 1x3 1x7 5x6",
		},
		{
			name:     "grid 12",
			gridSize: 12,
			seed:     1,
			want:     "4x12 4x11 3x10 7x12 1x12 7x11 5x9 7x10 9x10 1x9 1x3 6x11 5x10",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCipher(tt.gridSize, tt.seed)
			assert.Equal(t, tt.want, c.Encode("Hello, World!"))
			assert.Equal(t, tt.want, Encode("Hello, World!", c.Table))
		})
	}
}

func TestEncodeStable(t *testing.T) {
	c := NewCipher(14, 77)
	msg := "the quick brown fox jumps over the lazy dog"
	assert.Equal(t, c.Encode(msg), c.Encode(msg))
	assert.Equal(t, c.Encode(msg), c.Encode(strings.ToUpper(msg)))
}

func TestEncodeUsesGridFacts(t *testing.T) {
	c := NewCipher(10, 3)
	for _, f := range c.EncodeDetailed("multiplication is fun") {
		require.NotZero(t, f.Product)
		assert.Equal(t, f.Letter, c.Table[f.Product])
		assert.Equal(t, f.Product, f.Pair.Product())
		assert.LessOrEqual(t, f.Pair.I, 10)
		assert.LessOrEqual(t, f.Pair.J, 10)
	}
}

func TestEncodeEmpty(t *testing.T) {
	c := NewCipher(12, 1)
	assert.Equal(t, "", c.Encode(""))
	assert.Equal(t, "", c.Encode("   "))
	assert.Nil(t, c.EncodeDetailed(""))
}

func TestEncodeUnreachableLetter(t *testing.T) {
	table := DecodingTable{1: 'A', 2: 'B', 3: 'A', 4: ' '}

	got := Encode("ab c", table)
	tokens := strings.Fields(got)
	require.Len(t, tokens, 4)
	assert.Equal(t, UnreachableToken, tokens[3])
	assert.NotEqual(t, UnreachableToken, tokens[0])
	assert.Equal(t, "1x2", tokens[1])
}

func TestDecode(t *testing.T) {
	table := GenerateDecodingTable(8, 1)

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"products", "8 56 3 3 18", "HELLO"},
		{"extra whitespace", "  8\t56\n3  3 18 ", "HELLO"},
		{"zero dropped", "0 8 00", "H"},
		{"unknown product skipped", "8 11 56", "HE"},
		{"noise stripped", "8, 56; 3!", "HEL"},
		{"fact syntax is not parsed", "4x16 9", "P"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Decode(tt.input, table))
		})
	}
}

func TestSolve(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"facts", "7x8 1x3", "56 3"},
		{"uppercase separator", "7X8", "56"},
		{"numbers pass through", "56 3x4", "56 12"},
		{"placeholders dropped", "?x? 2x2", "4"},
		{"garbage dropped", "abc 1x", "" + ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Solve(tt.input))
		})
	}
}

func TestRoundTrip(t *testing.T) {
	messages := []string{
		"hello world",
		"THE QUICK BROWN FOX JUMPS OVER THE LAZY DOG",
		"Meet me at 3pm!",
		"  zzz  ",
		"a",
	}

	for n := 8; n <= 20; n += 4 {
		c := NewCipher(n, int32(n))
		for _, msg := range messages {
			encoded := c.Encode(msg)
			assert.Equal(t, NormalizeMessage(msg), c.Decode(Solve(encoded)), "grid %d: %q", n, msg)
		}
	}
}

func TestDecodingTableGridSize(t *testing.T) {
	for n := 1; n <= 20; n++ {
		assert.Equal(t, n, GenerateDecodingTable(n, 1).GridSize())
	}
	assert.Equal(t, 0, DecodingTable{}.GridSize())
}
