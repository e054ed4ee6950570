package gridcipher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildReverseTable(t *testing.T) {
	rt := BuildReverseTable(12)

	assert.Equal(t, []Multiplication{
		{1, 12}, {2, 6}, {3, 4}, {4, 3}, {6, 2}, {12, 1},
	}, rt[12])
	assert.Equal(t, 144, rt.Cells())
	assert.Len(t, rt, 59)

	first, ok := rt.First(12)
	require.True(t, ok)
	assert.Equal(t, "1x12", first.String())

	_, ok = rt.First(13)
	assert.False(t, ok)
}

func TestBuildReverseTableEveryPairOnce(t *testing.T) {
	const n = 9
	rt := BuildReverseTable(n)

	seen := make(map[Multiplication]int)
	for product, pairs := range rt {
		for _, m := range pairs {
			assert.Equal(t, product, m.Product())
			seen[m]++
		}
	}

	for i := 1; i <= n; i++ {
		for j := 1; j <= n; j++ {
			assert.Equal(t, 1, seen[Multiplication{i, j}], "pair %dx%d", i, j)
		}
	}
}

func TestBuildReverseTableDegenerate(t *testing.T) {
	tests := []struct {
		name     string
		gridSize int
		want     int
	}{
		{"zero", 0, 0},
		{"negative", -4, 0},
		{"one", 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, BuildReverseTable(tt.gridSize), tt.want)
		})
	}
}

func TestOccurrences(t *testing.T) {
	occ := BuildReverseTable(8).Occurrences()
	require.Len(t, occ, 30)

	for i := 1; i < len(occ); i++ {
		assert.Less(t, occ[i-1].Result, occ[i].Result)
	}

	assert.Equal(t, Occurrence{Result: 1, Times: 1}, occ[0])
	assert.Equal(t, Occurrence{Result: 64, Times: 1}, occ[len(occ)-1])

	total := 0
	for _, o := range occ {
		total += o.Times
	}
	assert.Equal(t, 64, total)
}

func TestDistribution(t *testing.T) {
	dist := Distribution()
	require.Len(t, dist, 27)
	assert.Equal(t, 104, TotalWeight())
	assert.Equal(t, Space, dist[26].Letter)

	for _, lw := range dist {
		assert.True(t, IsLetter(lw.Letter))
		assert.GreaterOrEqual(t, lw.Weight, 1)
		assert.LessOrEqual(t, lw.Weight, 9)
	}

	dist[0].Weight = 100
	assert.Equal(t, 7, Weight('A'), "Distribution must return a copy")
	assert.Equal(t, 0, Weight('!'))
}
