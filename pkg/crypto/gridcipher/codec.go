package gridcipher

import (
	"encoding/json"
	"log/slog"
	"strconv"
	"strings"
	"unicode"

	"github.com/Davincible/timescipher/pkg/crypto/prng"
)

// UnreachableToken is emitted in place of a letter that owns no product.
const UnreachableToken = "?x?"

// Fact is one encoded letter: the chosen product and the factor pair
// printed for it. Product is 0 when the letter is unreachable.
type Fact struct {
	Letter  Letter
	Product int
	Pair    Multiplication
}

// String returns the fact as printed in encoded text.
func (f Fact) String() string {
	if f.Product == 0 {
		return UnreachableToken
	}
	return f.Pair.String()
}

// MarshalJSON writes the letter as a string alongside the printed fact.
func (f Fact) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Letter  string `json:"letter"`
		Product int    `json:"product"`
		Fact    string `json:"fact"`
	}{
		Letter:  string(f.Letter),
		Product: f.Product,
		Fact:    f.String(),
	})
}

// Cipher bundles the reverse and decoding tables of one grid size and seed.
type Cipher struct {
	GridSize int
	Seed     int32
	Reverse  ReverseTable
	Table    DecodingTable
}

// NewCipher builds both tables for gridSize and seed.
func NewCipher(gridSize int, seed int32) *Cipher {
	reverse := BuildReverseTable(gridSize)
	return &Cipher{
		GridSize: gridSize,
		Seed:     seed,
		Reverse:  reverse,
		Table:    generate(reverse, gridSize, prng.New(seed)),
	}
}

// Encode encodes message with the cipher's tables.
func (c *Cipher) Encode(message string) string {
	return joinFacts(encodeFacts(message, c.Table, c.Reverse))
}

// EncodeDetailed returns one Fact per normalised letter of message.
func (c *Cipher) EncodeDetailed(message string) []Fact {
	return encodeFacts(message, c.Table, c.Reverse)
}

// Decode decodes a sequence of products with the cipher's table.
func (c *Cipher) Decode(message string) string {
	return Decode(message, c.Table)
}

// NormalizeMessage trims and uppercases message and replaces every rune
// outside A-Z and space with a space.
func NormalizeMessage(message string) string {
	message = strings.ToUpper(strings.TrimSpace(message))
	return strings.Map(func(r rune) rune {
		if IsLetter(r) {
			return r
		}
		return Space
	}, message)
}

// Encode turns message into space separated multiplication facts.
//
// The homograph chosen for each letter is driven by a generator seeded
// with the hash of the normalised message, so the same message always
// encodes the same way under the same table. A letter that owns no
// product is logged and emitted as UnreachableToken.
func Encode(message string, table DecodingTable) string {
	return joinFacts(encodeFacts(message, table, nil))
}

// EncodeDetailed is Encode returning the individual facts.
func EncodeDetailed(message string, table DecodingTable) []Fact {
	return encodeFacts(message, table, nil)
}

func encodeFacts(message string, table DecodingTable, reverse ReverseTable) []Fact {
	normalized := NormalizeMessage(message)
	if normalized == "" {
		return nil
	}

	if reverse == nil {
		reverse = BuildReverseTable(table.GridSize())
	}

	rnd := prng.NewFromUint32(prng.Hash(normalized))
	byLetter := table.Letters()

	facts := make([]Fact, 0, len(normalized))
	for _, l := range normalized {
		candidates := byLetter[l]
		if len(candidates) == 0 {
			slog.Warn("Letter has no product in decoding table",
				"letter", string(l),
				"table_size", len(table),
			)
			facts = append(facts, Fact{Letter: l})
			continue
		}

		product := candidates[rnd.Intn(len(candidates))]
		facts = append(facts, Fact{
			Letter:  l,
			Product: product,
			Pair:    firstPair(product, reverse),
		})
	}
	return facts
}

// firstPair returns the pair with the smallest left factor for product,
// or 1xproduct when the reverse table does not know it.
func firstPair(product int, reverse ReverseTable) Multiplication {
	if m, ok := reverse.First(product); ok {
		return m
	}
	return Multiplication{I: 1, J: product}
}

func joinFacts(facts []Fact) string {
	tokens := make([]string, len(facts))
	for i, f := range facts {
		tokens[i] = f.String()
	}
	return strings.Join(tokens, " ")
}

// Decode maps each product in message back to its letter.
//
// Everything but digits and whitespace is dropped first, so "4x16 9"
// reads as the products 416 and 9. Tokens that do not parse, parse to
// zero or have no table entry contribute nothing.
func Decode(message string, table DecodingTable) string {
	var b strings.Builder
	for _, product := range parseProducts(message) {
		if l, ok := table[product]; ok {
			b.WriteRune(l)
		}
	}
	return b.String()
}

func parseProducts(message string) []int {
	message = strings.ToLower(strings.TrimSpace(message))
	message = strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || unicode.IsSpace(r) {
			return r
		}
		return -1
	}, message)

	var products []int
	for _, token := range strings.Fields(message) {
		n, err := strconv.Atoi(token)
		if err != nil || n == 0 {
			continue
		}
		products = append(products, n)
	}
	return products
}

// Solve evaluates every "AxB" fact in facts and returns the products
// separated by spaces, as a player would write them down. Tokens that
// are not facts are passed through when numeric and dropped otherwise.
func Solve(facts string) string {
	var out []string
	for _, token := range strings.Fields(strings.ToLower(facts)) {
		left, right, ok := strings.Cut(token, "x")
		if !ok {
			if _, err := strconv.Atoi(token); err == nil {
				out = append(out, token)
			}
			continue
		}

		i, err := strconv.Atoi(left)
		if err != nil {
			continue
		}
		j, err := strconv.Atoi(right)
		if err != nil {
			continue
		}
		out = append(out, strconv.Itoa(i*j))
	}
	return strings.Join(out, " ")
}
