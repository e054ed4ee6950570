package gridcipher

import (
	"log/slog"
	"math"
	"sort"

	"github.com/Davincible/timescipher/pkg/crypto/prng"
)

// Balancing thresholds, expressed in multiples of the point value.
const (
	// spentThreshold retires a letter during the coverage pass once its
	// remaining budget falls below this many points.
	spentThreshold = 1.0
	// overdrawSlack retires a letter during the fill pass once its
	// remaining budget falls below minus this many points.
	overdrawSlack = 1.0
	// fillRetries bounds the draws looking for a letter that can absorb
	// an occurrence without going negative.
	fillRetries = 3
)

// DecodingTable maps every product of a grid to a letter.
type DecodingTable map[int]Letter

// Len returns the number of mapped products.
func (dt DecodingTable) Len() int {
	return len(dt)
}

// GridSize recovers the grid size from the largest product, which is
// always N*N.
func (dt DecodingTable) GridSize() int {
	largest := 0
	for p := range dt {
		if p > largest {
			largest = p
		}
	}
	n := int(math.Sqrt(float64(largest)))
	for n*n > largest {
		n--
	}
	for (n+1)*(n+1) <= largest {
		n++
	}
	return n
}

// Letters returns, for each letter present in the table, its products in
// ascending order.
func (dt DecodingTable) Letters() map[Letter][]int {
	out := make(map[Letter][]int)
	for p, l := range dt {
		out[l] = append(out[l], p)
	}
	for _, products := range out {
		sort.Ints(products)
	}
	return out
}

// ProductsFor returns the products mapped to l in ascending order.
func (dt DecodingTable) ProductsFor(l Letter) []int {
	var products []int
	for p, got := range dt {
		if got == l {
			products = append(products, p)
		}
	}
	sort.Ints(products)
	return products
}

// Missing returns the distribution letters, space excluded, that own no
// product. A table produced for a supported grid size has none.
func (dt DecodingTable) Missing() []Letter {
	present := make(map[Letter]bool, len(distribution))
	for _, l := range dt {
		present[l] = true
	}

	var missing []Letter
	for _, lw := range distribution {
		if lw.Letter != Space && !present[lw.Letter] {
			missing = append(missing, lw.Letter)
		}
	}
	return missing
}

// budget tracks the points each letter may still spend and which letters
// remain eligible for budgeted assignment.
type budget struct {
	pointValue float64
	remaining  map[Letter]float64
	active     []Letter
}

func newBudget(gridSize int) *budget {
	b := &budget{
		pointValue: float64(gridSize*gridSize) / float64(totalWeight),
		remaining:  make(map[Letter]float64, len(distribution)),
		active:     make([]Letter, 0, len(distribution)),
	}
	for _, lw := range distribution {
		b.remaining[lw.Letter] = b.pointValue * float64(lw.Weight)
		b.active = append(b.active, lw.Letter)
	}
	return b
}

func (b *budget) retire(l Letter) {
	for i, a := range b.active {
		if a == l {
			b.active = append(b.active[:i], b.active[i+1:]...)
			return
		}
	}
}

// GenerateDecodingTable builds the decoding table for a grid size and
// seed. Identical arguments always produce an identical table.
//
// Every letter receives one product before any receives a second, so
// rare letters are not starved when there are at least as many distinct
// products as letters. Remaining products are spread according to the
// letter weights, with a space as the fallback once every budget is spent.
func GenerateDecodingTable(gridSize int, seed int32) DecodingTable {
	return generate(BuildReverseTable(gridSize), gridSize, prng.New(seed))
}

func generate(reverse ReverseTable, gridSize int, rnd *prng.Random) DecodingTable {
	table := make(DecodingTable, len(reverse))
	unassigned := reverse.Occurrences()
	b := newBudget(gridSize)

	take := func(idx int) Occurrence {
		occ := unassigned[idx]
		unassigned = append(unassigned[:idx], unassigned[idx+1:]...)
		return occ
	}

	// Coverage pass.
	letters := make([]Letter, len(distribution))
	for i, lw := range distribution {
		letters[i] = lw.Letter
	}
	rnd.Shuffle(len(letters), func(i, j int) {
		letters[i], letters[j] = letters[j], letters[i]
	})

	for _, l := range letters {
		if len(unassigned) == 0 {
			break
		}

		idx := -1
		for i, occ := range unassigned {
			if occ.Times == 1 || float64(occ.Times)*b.pointValue < b.remaining[l] {
				idx = i
				break
			}
		}
		if idx < 0 {
			idx = rnd.Intn(len(unassigned))
		}

		occ := take(idx)
		table[occ.Result] = l
		b.remaining[l] -= float64(occ.Times)
		if b.remaining[l] < spentThreshold*b.pointValue {
			b.retire(l)
		}
	}

	// Fill pass.
	fallbacks := 0
	for _, occ := range unassigned {
		if len(b.active) == 0 {
			table[occ.Result] = Space
			fallbacks++
			continue
		}

		var l Letter
		for try := 0; try < fillRetries; try++ {
			l = b.active[rnd.Intn(len(b.active))]
			if b.remaining[l]-float64(occ.Times) >= 0 {
				break
			}
		}

		table[occ.Result] = l
		b.remaining[l] -= float64(occ.Times)
		if b.remaining[l] < -overdrawSlack*b.pointValue {
			b.retire(l)
		}
	}

	slog.Debug("Generated decoding table",
		"grid_size", gridSize,
		"seed", int32(rnd.Seed()),
		"products", len(table),
		"space_fallbacks", fallbacks,
	)

	return table
}
