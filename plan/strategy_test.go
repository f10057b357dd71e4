package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValidStrategy(t *testing.T) {
	assert.True(t, IsValidStrategy(StrategyBestFirst))
	assert.True(t, IsValidStrategy(StrategyRankOnce))
	assert.True(t, IsValidStrategy("")) // default
	assert.False(t, IsValidStrategy("simulated-annealing"))
}

func TestNewStrategy_UnknownName_Panics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("Expected panic on unknown strategy name, got none")
		}
	}()
	NewStrategy("invalid-strategy", 1)
}

func TestNewStrategy_DefaultName(t *testing.T) {
	s := NewStrategy("", 1)
	require.NotNil(t, s)
	assert.Equal(t, StrategyRankOnce, s.Name())
}

// Both strategies must satisfy the scenario contracts; run each scenario
// against each registered strategy.
func TestStrategies_Scenarios(t *testing.T) {
	for _, name := range []string{StrategyBestFirst, StrategyRankOnce} {
		t.Run(name, func(t *testing.T) {
			t.Run("no caching possible", func(t *testing.T) {
				p := noCachingProblem()
				st := NewOptimizer(p, NewStrategy(name, 2), nil).Run()

				assert.Equal(t, 0, st.TotalStored())
				assert.Equal(t, int64(0), Evaluate(p, st).Score)
			})

			t.Run("trivial fit", func(t *testing.T) {
				p := trivialProblem()
				st := NewOptimizer(p, NewStrategy(name, 2), nil).Run()

				assert.True(t, st.Stores(0, 0))
				res := Evaluate(p, st)
				assert.Equal(t, int64(9000), res.SavedLatency)
				assert.Equal(t, int64(900000), res.Score)
			})

			t.Run("capacity contention", func(t *testing.T) {
				p := contentionProblem()
				st := NewOptimizer(p, NewStrategy(name, 2), nil).Run()

				// Only video 0 fits; the capacity invariant holds.
				assert.True(t, st.Stores(0, 0))
				assert.False(t, st.Stores(0, 1))
				assert.Equal(t, int64(60), st.Usage(0))
				assert.LessOrEqual(t, st.Usage(0), p.CacheCapacity)
			})
		})
	}
}

// TestRankOnce_StaleScores pins the documented rank-once limitation: totals
// are computed once, so a placement that already serves an endpoint does not
// reduce the rank of later candidates that counted the same demand.
func TestRankOnce_StaleScores(t *testing.T) {
	// One endpoint reaching two caches; a single demand entry. Both caches
	// get a ranked candidate up front. After video 0 lands on cache 0 the
	// endpoint is served, yet the (cache 1, video 0) candidate is still in
	// the list and still admissible, so rank-once places it redundantly.
	p := &Problem{
		Videos:        []Video{{Size: 50}},
		NumCaches:     2,
		CacheCapacity: 100,
		Endpoints: []Endpoint{
			{DatacenterLatency: 1000, Links: []CacheLink{
				{Cache: 0, Latency: 100},
				{Cache: 1, Latency: 200},
			}},
		},
		Demands: []DemandEntry{{Video: 0, Endpoint: 0, Amount: 10}},
	}

	stale := NewOptimizer(p, NewStrategy(StrategyRankOnce, 1), nil).Run()
	assert.True(t, stale.Stores(0, 0))
	assert.True(t, stale.Stores(1, 0), "rank-once keeps the stale second candidate")

	// best-first rescans after each insertion and skips the served entry.
	fresh := NewOptimizer(p, NewStrategy(StrategyBestFirst, 1), nil).Run()
	assert.True(t, fresh.Stores(0, 0))
	assert.False(t, fresh.Stores(1, 0))

	// The redundant copy does not change the score.
	assert.Equal(t, Evaluate(p, fresh), Evaluate(p, stale))
}

func TestBestFirst_PicksHighestRawBenefit(t *testing.T) {
	// Two independent endpoints/caches; the larger saving must land first.
	p := &Problem{
		Videos:        []Video{{Size: 90}, {Size: 10}},
		NumCaches:     1,
		CacheCapacity: 95,
		Endpoints: []Endpoint{
			{DatacenterLatency: 1000, Links: []CacheLink{{Cache: 0, Latency: 100}}},
		},
		Demands: []DemandEntry{
			{Video: 0, Endpoint: 0, Amount: 10}, // raw 9000
			{Video: 1, Endpoint: 0, Amount: 5},  // raw 4500
		},
	}
	s := NewStrategy(StrategyBestFirst, 1)
	st := NewAllocationState(p)
	s.Prepare(p, st)

	cand, ok := s.Next(p, st)
	require.True(t, ok)
	assert.Equal(t, VideoID(0), cand.Video)
	assert.Equal(t, 9000.0, cand.Benefit)

	st.Insert(cand.Cache, cand.Video)

	// Video 1 (size 10) no longer fits next to video 0 (size 90).
	_, ok = s.Next(p, st)
	assert.False(t, ok)
}

func TestRankOnce_PrefersBenefitPerUnit(t *testing.T) {
	// Raw benefit would favor the big video; per-unit scoring must not.
	// Video 0: size 90, saving 900*10 = 9000 raw, 100/unit.
	// Video 1: size 10, saving 900*2 = 1800 raw, 180/unit.
	p := &Problem{
		Videos:        []Video{{Size: 90}, {Size: 10}},
		NumCaches:     1,
		CacheCapacity: 95,
		Endpoints: []Endpoint{
			{DatacenterLatency: 1000, Links: []CacheLink{{Cache: 0, Latency: 100}}},
		},
		Demands: []DemandEntry{
			{Video: 0, Endpoint: 0, Amount: 10},
			{Video: 1, Endpoint: 0, Amount: 2},
		},
	}
	st := NewOptimizer(p, NewStrategy(StrategyRankOnce, 1), nil).Run()

	assert.True(t, st.Stores(0, 1), "small high-density video placed first")
	assert.False(t, st.Stores(0, 0), "big video no longer fits")
}
