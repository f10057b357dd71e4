package plan

import (
	"fmt"
	"sort"
)

// AllocationState tracks, for every cache, the set of stored videos and the
// capacity consumed by them. Stored sets only grow; there is no eviction.
//
// The state has exactly one writer for the lifetime of an optimization run:
// the optimizer loop, which mutates it only between scans. Scoring workers
// read it concurrently during a scan and always observe the snapshot taken
// at the last iteration boundary.
type AllocationState struct {
	problem     *Problem
	stored      []map[VideoID]struct{}
	usage       []int64
	totalUsage  int64
	totalStored int
}

// NewAllocationState creates an empty state for the problem's cache fleet.
func NewAllocationState(p *Problem) *AllocationState {
	stored := make([]map[VideoID]struct{}, p.NumCaches)
	for i := range stored {
		stored[i] = make(map[VideoID]struct{})
	}
	return &AllocationState{
		problem: p,
		stored:  stored,
		usage:   make([]int64, p.NumCaches),
	}
}

// NumCaches returns the size of the cache fleet.
func (s *AllocationState) NumCaches() int {
	return len(s.stored)
}

// Stores reports whether cache c currently stores video v.
func (s *AllocationState) Stores(c CacheID, v VideoID) bool {
	_, ok := s.stored[c][v]
	return ok
}

// Usage returns the storage units consumed on cache c.
func (s *AllocationState) Usage(c CacheID) int64 {
	return s.usage[c]
}

// Remaining returns the free storage units on cache c.
func (s *AllocationState) Remaining(c CacheID) int64 {
	return s.problem.CacheCapacity - s.usage[c]
}

// Fits reports whether v can be inserted into c: not already stored and
// small enough for the remaining capacity.
func (s *AllocationState) Fits(c CacheID, v VideoID) bool {
	return !s.Stores(c, v) && s.problem.Videos[v].Size <= s.Remaining(c)
}

// Insert stores v on c and grows the usage counter. The caller must have
// established admissibility first; a duplicate insertion or one that would
// exceed capacity is a programming error, not a recoverable condition.
func (s *AllocationState) Insert(c CacheID, v VideoID) {
	if s.Stores(c, v) {
		panic(fmt.Sprintf("Insert: video %d already stored on cache %d", v, c))
	}
	size := s.problem.Videos[v].Size
	if size > s.Remaining(c) {
		panic(fmt.Sprintf("Insert: video %d (size %d) exceeds remaining capacity %d on cache %d",
			v, size, s.Remaining(c), c))
	}
	s.stored[c][v] = struct{}{}
	s.usage[c] += size
	s.totalUsage += size
	s.totalStored++
}

// Served reports whether any cache reachable from endpoint e already stores
// v, i.e. whether demand for (v, e) is already satisfied.
func (s *AllocationState) Served(e EndpointID, v VideoID) bool {
	for _, l := range s.problem.Endpoints[e].Links {
		if s.Stores(l.Cache, v) {
			return true
		}
	}
	return false
}

// Videos returns the ids stored on cache c in ascending order.
func (s *AllocationState) Videos(c CacheID) []VideoID {
	out := make([]VideoID, 0, len(s.stored[c]))
	for v := range s.stored[c] {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// TotalUsage returns the storage units consumed across the whole fleet.
func (s *AllocationState) TotalUsage() int64 {
	return s.totalUsage
}

// TotalStored returns the number of (cache, video) placements performed.
func (s *AllocationState) TotalStored() int {
	return s.totalStored
}
