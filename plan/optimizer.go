package plan

import (
	"github.com/sirupsen/logrus"
	"go.uber.org/atomic"
)

// PlacementObserver is notified after every successful insertion with the
// placed candidate and the video's size. Observers are strictly
// observational: they run on the optimizer goroutine between iterations and
// cannot influence the placement.
type PlacementObserver func(c Candidate, size int64)

// Optimizer runs the greedy placement loop: ask the strategy for the next
// admissible candidate, insert it, repeat until the strategy is exhausted.
// No backtracking, no eviction; every iteration grows some cache's usage,
// and usage is bounded by capacity, so the loop always terminates.
type Optimizer struct {
	problem  *Problem
	strategy Strategy
	metrics  *Metrics
	placed   atomic.Int64
	observer PlacementObserver
}

// NewOptimizer creates an optimizer for the problem. A nil metrics falls
// back to no-op instruments.
func NewOptimizer(p *Problem, strategy Strategy, m *Metrics) *Optimizer {
	if m == nil {
		m = NewNoopMetrics()
	}
	return &Optimizer{problem: p, strategy: strategy, metrics: m}
}

// SetObserver installs a per-placement callback. Must be called before Run.
func (o *Optimizer) SetObserver(fn PlacementObserver) {
	o.observer = fn
}

// PlacedUnits returns the storage units placed so far. Safe to read from
// other goroutines while Run is in progress.
func (o *Optimizer) PlacedUnits() int64 {
	return o.placed.Load()
}

// Run executes the loop to termination and returns the final state. The
// returned state is valid at every intermediate point too: the capacity
// invariant holds after each single insertion, not just at the end.
func (o *Optimizer) Run() *AllocationState {
	st := NewAllocationState(o.problem)
	sw := o.metrics.RunDuration.Start()
	defer sw.Stop()

	o.strategy.Prepare(o.problem, st)
	for {
		o.metrics.Iterations.Inc(1)
		cand, ok := o.strategy.Next(o.problem, st)
		if !ok {
			break
		}
		size := o.problem.Videos[cand.Video].Size
		st.Insert(cand.Cache, cand.Video)
		o.placed.Add(size)
		o.metrics.Placements.Inc(1)
		o.metrics.PlacedUnits.Inc(size)
		if o.observer != nil {
			o.observer(cand, size)
		}
		logrus.Debugf("placed video %d on cache %d (benefit=%.3f, usage=%d/%d)",
			cand.Video, cand.Cache, cand.Benefit, st.Usage(cand.Cache), o.problem.CacheCapacity)
	}

	logrus.Infof("optimization terminated: %d placements, %d/%d storage units used (strategy=%s)",
		st.TotalStored(), st.TotalUsage(), o.problem.TotalCapacity(), o.strategy.Name())
	return st
}
