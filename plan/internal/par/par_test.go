package par

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name    string
		n       int
		workers int
		want    []Range
	}{
		{name: "empty", n: 0, workers: 4, want: nil},
		{name: "negative", n: -1, workers: 4, want: nil},
		{name: "single worker", n: 5, workers: 1, want: []Range{{0, 5}}},
		{name: "even split", n: 6, workers: 3, want: []Range{{0, 2}, {2, 4}, {4, 6}}},
		{name: "remainder goes to first workers", n: 7, workers: 3, want: []Range{{0, 3}, {3, 5}, {5, 7}}},
		{name: "more workers than items", n: 2, workers: 8, want: []Range{{0, 1}, {1, 2}}},
		{name: "zero workers clamps to one", n: 3, workers: 0, want: []Range{{0, 3}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Split(tt.n, tt.workers)
			assert.Equal(t, tt.want, got)
		})
	}
}

// Split must cover [0, n) exactly once, in order, for any worker count.
func TestSplit_CoversAllIndices(t *testing.T) {
	for n := 1; n <= 20; n++ {
		for workers := 1; workers <= 8; workers++ {
			ranges := Split(n, workers)
			next := 0
			for _, r := range ranges {
				require.Equal(t, next, r.Lo)
				require.Greater(t, r.Hi, r.Lo)
				next = r.Hi
			}
			require.Equal(t, n, next, "n=%d workers=%d", n, workers)
		}
	}
}

func TestWorkers(t *testing.T) {
	assert.Equal(t, 3, Workers(3))
	assert.GreaterOrEqual(t, Workers(0), 1)
	assert.GreaterOrEqual(t, Workers(-5), 1)
}

func TestEach_VisitsEveryIndexOnce(t *testing.T) {
	const n = 17
	ranges := Shards(n, 4)
	visited := make([]int, n)
	Each(ranges, func(_ int, r Range) {
		for i := r.Lo; i < r.Hi; i++ {
			visited[i]++ // disjoint ranges, no race
		}
	})
	for i, v := range visited {
		assert.Equal(t, 1, v, "index %d", i)
	}
}

func TestBest_FindsMax(t *testing.T) {
	vals := []int{3, 1, 4, 1, 5, 9, 2, 6}
	for _, workers := range []int{1, 2, 3, 8} {
		best, ok := Best(len(vals), workers,
			func(i int) (int, bool) { return vals[i], true },
			func(a, b int) bool { return a > b },
		)
		require.True(t, ok, "workers=%d", workers)
		assert.Equal(t, 9, best, "workers=%d", workers)
	}
}

// With a strict comparison, ties must resolve to the lowest index for any
// worker count.
func TestBest_TieKeepsLowestIndex(t *testing.T) {
	type cand struct {
		idx int
		val int
	}
	vals := []int{7, 2, 7, 7, 1}
	for _, workers := range []int{1, 2, 3, 5} {
		best, ok := Best(len(vals), workers,
			func(i int) (cand, bool) { return cand{idx: i, val: vals[i]}, true },
			func(a, b cand) bool { return a.val > b.val },
		)
		require.True(t, ok)
		assert.Equal(t, 0, best.idx, "workers=%d", workers)
	}
}

func TestBest_AllIneligible(t *testing.T) {
	_, ok := Best(10, 4,
		func(int) (int, bool) { return 0, false },
		func(a, b int) bool { return a > b },
	)
	assert.False(t, ok)
}

func TestBest_Empty(t *testing.T) {
	_, ok := Best(0, 4,
		func(int) (int, bool) { return 0, true },
		func(a, b int) bool { return a > b },
	)
	assert.False(t, ok)
}

func TestFirstIndex(t *testing.T) {
	vals := []bool{false, false, true, false, true}
	for _, workers := range []int{1, 2, 3, 5} {
		i, ok := FirstIndex(len(vals), workers, func(i int) bool { return vals[i] })
		require.True(t, ok, "workers=%d", workers)
		assert.Equal(t, 2, i, "workers=%d", workers)
	}
}

func TestFirstIndex_NoMatch(t *testing.T) {
	_, ok := FirstIndex(5, 2, func(int) bool { return false })
	assert.False(t, ok)
}

func TestFirstIndex_Empty(t *testing.T) {
	_, ok := FirstIndex(0, 2, func(int) bool { return true })
	assert.False(t, ok)
}
