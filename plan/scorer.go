// Candidate scoring: maps a demand entry to prospective (cache, video)
// placements with a benefit value, against a snapshot of the allocation
// state. Scoring never mutates anything.

package plan

// Candidate is a prospective placement of a video on a cache together with
// its benefit. Higher benefit is better; negative or zero benefits are legal
// and simply lose in ranking.
type Candidate struct {
	Cache   CacheID
	Video   VideoID
	Benefit float64
}

// BenefitFunc converts the latency mass saved by a placement (saved latency
// per request times request amount) and the video's size into a comparable
// benefit value.
type BenefitFunc func(saved, size int64) float64

// RawBenefit values a placement by its saved latency mass alone. Capacity
// blind: a large video with a big saving outranks a small video with a
// slightly smaller one, even when the small video is the better use of
// storage.
func RawBenefit(saved, _ int64) float64 {
	return float64(saved)
}

// PerUnitBenefit normalizes the saved latency mass by the storage cost of
// achieving it, preferring candidates that save more latency per storage
// unit consumed.
func PerUnitBenefit(saved, size int64) float64 {
	return float64(saved) / float64(size)
}

// entryEligible reports whether a demand entry is still worth scoring: the
// video must be cacheable at all and the endpoint must not already reach a
// cache that stores it.
func entryEligible(p *Problem, st *AllocationState, d DemandEntry) bool {
	return p.Cacheable(d.Video) && !st.Served(d.Endpoint, d.Video)
}

// ScoreEntry produces one candidate per cache reachable from the entry's
// endpoint, or nil when the entry is ineligible. Used by the rank-once
// aggregation, which wants every (cache, video) pair's contribution.
func ScoreEntry(p *Problem, st *AllocationState, d DemandEntry, benefit BenefitFunc) []Candidate {
	if !entryEligible(p, st, d) {
		return nil
	}
	ep := &p.Endpoints[d.Endpoint]
	size := p.Videos[d.Video].Size
	out := make([]Candidate, 0, len(ep.Links))
	for _, l := range ep.Links {
		saved := (ep.DatacenterLatency - l.Latency) * d.Amount
		out = append(out, Candidate{
			Cache:   l.Cache,
			Video:   d.Video,
			Benefit: benefit(saved, size),
		})
	}
	return out
}

// bestEntryCandidate returns the entry's single best admissible candidate:
// the lowest-latency reachable cache with room for the video (links are
// sorted ascending by latency). Used by the best-first strategy, which only
// cares about the global argmax per iteration.
func bestEntryCandidate(p *Problem, st *AllocationState, d DemandEntry, benefit BenefitFunc) (Candidate, bool) {
	if !entryEligible(p, st, d) {
		return Candidate{}, false
	}
	ep := &p.Endpoints[d.Endpoint]
	size := p.Videos[d.Video].Size
	for _, l := range ep.Links {
		if size > st.Remaining(l.Cache) {
			continue
		}
		saved := (ep.DatacenterLatency - l.Latency) * d.Amount
		return Candidate{
			Cache:   l.Cache,
			Video:   d.Video,
			Benefit: benefit(saved, size),
		}, true
	}
	return Candidate{}, false
}
