package gridcipher

import (
	"fmt"
	"sort"
)

// Multiplication is an ordered factor pair. (3,4) and (4,3) are distinct.
type Multiplication struct {
	I int `json:"i"`
	J int `json:"j"`
}

// Product returns I*J.
func (m Multiplication) Product() int {
	return m.I * m.J
}

// String formats the pair as a multiplication fact, e.g. "7x8".
func (m Multiplication) String() string {
	return fmt.Sprintf("%dx%d", m.I, m.J)
}

// Occurrence is a product together with how many pairs produce it.
type Occurrence struct {
	Result int `json:"result"`
	Times  int `json:"times"`
}

// ReverseTable groups every factor pair of a grid by its product.
type ReverseTable map[int][]Multiplication

// BuildReverseTable enumerates i in [1, gridSize] (outer) and j in
// [1, gridSize] (inner). A gridSize below 1 yields an empty table.
func BuildReverseTable(gridSize int) ReverseTable {
	table := make(ReverseTable)
	for i := 1; i <= gridSize; i++ {
		for j := 1; j <= gridSize; j++ {
			p := i * j
			table[p] = append(table[p], Multiplication{I: i, J: j})
		}
	}
	return table
}

// Products returns the table keys in ascending order.
func (rt ReverseTable) Products() []int {
	products := make([]int, 0, len(rt))
	for p := range rt {
		products = append(products, p)
	}
	sort.Ints(products)
	return products
}

// Occurrences returns one Occurrence per product, ascending by product.
func (rt ReverseTable) Occurrences() []Occurrence {
	products := rt.Products()
	occurrences := make([]Occurrence, len(products))
	for i, p := range products {
		occurrences[i] = Occurrence{Result: p, Times: len(rt[p])}
	}
	return occurrences
}

// First returns the first pair recorded for product, which is the one
// with the smallest left factor.
func (rt ReverseTable) First(product int) (Multiplication, bool) {
	pairs := rt[product]
	if len(pairs) == 0 {
		return Multiplication{}, false
	}
	return pairs[0], true
}

// Cells returns the number of factor pairs in the table.
func (rt ReverseTable) Cells() int {
	n := 0
	for _, pairs := range rt {
		n += len(pairs)
	}
	return n
}
