package plan

import "math"

// Result reports the latency saved by a finished placement.
type Result struct {
	// SavedLatency is Σ amount * (datacenterLatency - chosenLinkLatency)
	// over demand entries served by some cache.
	SavedLatency int64 `json:"saved_latency"`
	// TotalRequests is Σ amount over all demand entries, served or not.
	TotalRequests int64 `json:"total_requests"`
	// Score is floor(SavedLatency / TotalRequests * 1000), or 0 when there
	// are no requests at all.
	Score int64 `json:"score"`
}

// Evaluate computes the plan score against the demand model. For each entry
// the chosen cache is the endpoint's lowest-latency reachable cache that
// stores the video (links are sorted ascending), falling back to the
// datacenter when none does. Pure read; st is not modified.
func Evaluate(p *Problem, st *AllocationState) Result {
	var saved, total int64
	for _, d := range p.Demands {
		total += d.Amount
		ep := &p.Endpoints[d.Endpoint]
		for _, l := range ep.Links {
			if st.Stores(l.Cache, d.Video) {
				saved += (ep.DatacenterLatency - l.Latency) * d.Amount
				break
			}
		}
	}
	res := Result{SavedLatency: saved, TotalRequests: total}
	if total > 0 {
		res.Score = int64(math.Floor(float64(saved) / float64(total) * 1000))
	}
	return res
}
