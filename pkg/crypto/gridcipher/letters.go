// Package gridcipher turns a multiplication grid into a substitution
// alphabet and encodes text as multiplication facts.
//
// A DecodingTable maps every product reachable on an N×N grid to a
// letter. Frequent letters own several products (homographs), so the
// table approximates the letter frequency of English text. Tables are
// fully determined by the grid size and seed.
package gridcipher

// Letter is one symbol of the cipher alphabet: 'A' to 'Z' or a space.
type Letter = rune

// Space is the word separator and the fallback letter of the generator.
const Space Letter = ' '

// LetterWeight pairs a letter with its relative frequency weight.
type LetterWeight struct {
	Letter Letter
	Weight int
}

// distribution is ordered; generation depends on the order.
var distribution = [...]LetterWeight{
	{'A', 7}, {'B', 2}, {'C', 3}, {'D', 4}, {'E', 9}, {'F', 2}, {'G', 2},
	{'H', 5}, {'I', 6}, {'J', 1}, {'K', 1}, {'L', 4}, {'M', 3}, {'N', 6},
	{'O', 7}, {'P', 2}, {'Q', 1}, {'R', 6}, {'S', 6}, {'T', 8}, {'U', 3},
	{'V', 1}, {'W', 2}, {'X', 1}, {'Y', 2}, {'Z', 1}, {Space, 9},
}

var totalWeight = func() int {
	total := 0
	for _, lw := range distribution {
		total += lw.Weight
	}
	return total
}()

// Distribution returns a copy of the letter distribution in generation order.
func Distribution() []LetterWeight {
	out := make([]LetterWeight, len(distribution))
	copy(out, distribution[:])
	return out
}

// TotalWeight returns the sum of all distribution weights.
func TotalWeight() int {
	return totalWeight
}

// Weight returns the weight of l, or 0 when l is not in the alphabet.
func Weight(l Letter) int {
	for _, lw := range distribution {
		if lw.Letter == l {
			return lw.Weight
		}
	}
	return 0
}

// IsLetter reports whether r belongs to the cipher alphabet.
func IsLetter(r rune) bool {
	return (r >= 'A' && r <= 'Z') || r == Space
}
