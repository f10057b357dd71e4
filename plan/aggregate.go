package plan

import (
	"sort"

	"github.com/edgeplan/edgeplan/plan/internal/par"
)

// pairKey identifies a prospective placement during benefit accumulation.
type pairKey struct {
	cache CacheID
	video VideoID
}

// shardAcc is one worker's private accumulation over its demand-entry range.
// Keeping the totals and the first-seen key order per shard avoids any
// shared mutation during the parallel phase; shards are merged sequentially
// afterwards, so no increment can be lost.
type shardAcc struct {
	totals map[pairKey]float64
	order  []pairKey
}

// RankCandidates scores every demand entry against st, sums the benefits of
// candidates sharing a (cache, video) key, and returns the unique candidates
// sorted descending by total benefit. Multiple endpoints can contribute
// independent savings to the same placement, which is why the sums matter.
//
// Equal totals keep first-seen key order (stable sort over demand-entry
// order): deterministic, but not semantically meaningful.
func RankCandidates(p *Problem, st *AllocationState, benefit BenefitFunc, workers int) []Candidate {
	shards := par.Shards(len(p.Demands), workers)
	accs := make([]shardAcc, len(shards))
	par.Each(shards, func(w int, r par.Range) {
		acc := shardAcc{totals: make(map[pairKey]float64)}
		for i := r.Lo; i < r.Hi; i++ {
			for _, c := range ScoreEntry(p, st, p.Demands[i], benefit) {
				k := pairKey{cache: c.Cache, video: c.Video}
				if _, seen := acc.totals[k]; !seen {
					acc.order = append(acc.order, k)
				}
				acc.totals[k] += c.Benefit
			}
		}
		accs[w] = acc
	})

	totals := make(map[pairKey]float64)
	var order []pairKey
	for _, acc := range accs {
		for _, k := range acc.order {
			if _, seen := totals[k]; !seen {
				order = append(order, k)
			}
			totals[k] += acc.totals[k]
		}
	}

	ranked := make([]Candidate, 0, len(order))
	for _, k := range order {
		ranked = append(ranked, Candidate{Cache: k.cache, Video: k.video, Benefit: totals[k]})
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Benefit > ranked[j].Benefit })
	return ranked
}
