package plan

import (
	"fmt"

	"github.com/edgeplan/edgeplan/plan/internal/par"
)

// Strategy selects the next admissible placement for the optimizer. Both
// implementations share the admissibility rules (video not stored, capacity
// available) and the termination condition (Next returns false); they differ
// in when benefits are computed.
type Strategy interface {
	// Name returns the registry name of the strategy.
	Name() string
	// Prepare is invoked once, before the first Next call, against the
	// empty allocation state.
	Prepare(p *Problem, st *AllocationState)
	// Next returns the placement to perform against the current state, or
	// false when no admissible candidate remains.
	Next(p *Problem, st *AllocationState) (Candidate, bool)
}

// Strategy registry names.
const (
	StrategyBestFirst = "best-first"
	StrategyRankOnce  = "rank-once"
)

var validStrategies = map[string]bool{
	StrategyBestFirst: true,
	StrategyRankOnce:  true,
}

// IsValidStrategy reports whether name is a known strategy. Empty string is
// valid and maps to the default (rank-once).
func IsValidStrategy(name string) bool {
	return name == "" || validStrategies[name]
}

// NewStrategy creates a strategy by name. workers <= 0 means one worker per
// CPU. Panics on unrecognized names; CLI callers validate with
// IsValidStrategy first.
func NewStrategy(name string, workers int) Strategy {
	if !IsValidStrategy(name) {
		panic(fmt.Sprintf("unknown strategy %q", name))
	}
	switch name {
	case StrategyBestFirst:
		return &bestFirst{workers: workers}
	case "", StrategyRankOnce:
		return &rankOnce{workers: workers}
	default:
		panic(fmt.Sprintf("unhandled strategy %q", name))
	}
}

// bestFirst recomputes the single best candidate over the entire demand set
// on every iteration (parallel max-reduction against the current state).
// Accurate but O(iterations × demand entries): every insertion is reflected
// in the very next scan, so no stale benefit is ever selected.
type bestFirst struct {
	workers int
}

func (s *bestFirst) Name() string { return StrategyBestFirst }

func (s *bestFirst) Prepare(*Problem, *AllocationState) {}

func (s *bestFirst) Next(p *Problem, st *AllocationState) (Candidate, bool) {
	return par.Best(len(p.Demands), s.workers,
		func(i int) (Candidate, bool) {
			return bestEntryCandidate(p, st, p.Demands[i], RawBenefit)
		},
		func(a, b Candidate) bool { return a.Benefit > b.Benefit },
	)
}

// rankOnce scores the whole demand set exactly once, up front, summing
// benefits per (cache, video) pair, then walks the ranked list taking the
// best-ranked admissible pair each iteration (parallel lowest-index search).
//
// Known limitation, kept deliberately: benefits are never recomputed after
// an insertion, so a placement's effect on already-served endpoints is not
// subtracted from later candidates that counted the same demand. One-time
// scoring cost is traded against placement quality; best-first is the
// accurate alternative.
type rankOnce struct {
	workers int
	ranked  []Candidate
}

func (s *rankOnce) Name() string { return StrategyRankOnce }

func (s *rankOnce) Prepare(p *Problem, st *AllocationState) {
	s.ranked = RankCandidates(p, st, PerUnitBenefit, s.workers)
}

func (s *rankOnce) Next(p *Problem, st *AllocationState) (Candidate, bool) {
	i, ok := par.FirstIndex(len(s.ranked), s.workers, func(i int) bool {
		c := s.ranked[i]
		return st.Fits(c.Cache, c.Video)
	})
	if !ok {
		return Candidate{}, false
	}
	return s.ranked[i], true
}
