// Defines the immutable demand model: videos, caches, endpoints and the
// aggregated demand entries the planner optimizes against.

package plan

import (
	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// VideoID identifies a video by its index in Problem.Videos.
type VideoID int

// CacheID identifies a cache by index. Caches carry no attributes of their
// own; every cache shares Problem.CacheCapacity and its usage lives in
// AllocationState.
type CacheID int

// EndpointID identifies an endpoint by its index in Problem.Endpoints.
type EndpointID int

// Video is a piece of content with a fixed storage footprint.
type Video struct {
	Size int64 // storage units (MB)
}

// CacheLink connects an endpoint to a cache at a fixed link latency.
type CacheLink struct {
	Cache   CacheID
	Latency int64 // ms
}

// Endpoint is a client access point. Links is sorted ascending by latency,
// so Links[0] is always the fastest reachable cache.
type Endpoint struct {
	DatacenterLatency int64 // fallback latency when no cache serves a request
	Links             []CacheLink
}

// DemandEntry is the aggregate request volume for one (video, endpoint) pair.
// Problem.Demands holds at most one entry per pair.
type DemandEntry struct {
	Video    VideoID
	Endpoint EndpointID
	Amount   int64
}

// Problem is the full demand model. It is built once by the loader (or by
// hand in tests) and never mutated afterwards; the optimizer's workers read
// it concurrently without synchronization.
type Problem struct {
	Videos        []Video
	NumCaches     int
	CacheCapacity int64
	Endpoints     []Endpoint
	Demands       []DemandEntry
}

// Cacheable reports whether v fits into an empty cache at all. A video
// larger than the cache capacity can never be placed anywhere.
func (p *Problem) Cacheable(v VideoID) bool {
	return p.Videos[v].Size <= p.CacheCapacity
}

// TotalCapacity is the combined storage of the whole cache fleet.
func (p *Problem) TotalCapacity() int64 {
	return int64(p.NumCaches) * p.CacheCapacity
}

// AggregateDemand merges raw demand entries that share a (video, endpoint)
// key by summing their amounts. The first occurrence of a key determines its
// position in the output, so the key set and the summed amounts are
// independent of the input permutation.
func AggregateDemand(raw []DemandEntry) []DemandEntry {
	type key struct {
		video    VideoID
		endpoint EndpointID
	}
	index := make(map[key]int, len(raw))
	out := make([]DemandEntry, 0, len(raw))
	for _, d := range raw {
		k := key{d.Video, d.Endpoint}
		if i, seen := index[k]; seen {
			out[i].Amount += d.Amount
			continue
		}
		index[k] = len(out)
		out = append(out, d)
	}
	return out
}

// Validate checks the structural invariants of a problem. All violations are
// collected rather than stopping at the first one.
func (p *Problem) Validate() error {
	var err error
	if p.NumCaches < 0 {
		err = multierr.Append(err, errors.Errorf("cache count must be >= 0, got %d", p.NumCaches))
	}
	if p.CacheCapacity <= 0 {
		err = multierr.Append(err, errors.Errorf("cache capacity must be positive, got %d", p.CacheCapacity))
	}
	for i, v := range p.Videos {
		if v.Size <= 0 {
			err = multierr.Append(err, errors.Errorf("video %d: size must be positive, got %d", i, v.Size))
		}
	}
	for i, ep := range p.Endpoints {
		if ep.DatacenterLatency < 0 {
			err = multierr.Append(err, errors.Errorf("endpoint %d: datacenter latency must be >= 0, got %d", i, ep.DatacenterLatency))
		}
		seen := make(map[CacheID]struct{}, len(ep.Links))
		for _, l := range ep.Links {
			if int(l.Cache) < 0 || int(l.Cache) >= p.NumCaches {
				err = multierr.Append(err, errors.Errorf("endpoint %d: cache id %d out of range [0, %d)", i, l.Cache, p.NumCaches))
				continue
			}
			if _, dup := seen[l.Cache]; dup {
				err = multierr.Append(err, errors.Errorf("endpoint %d: duplicate link to cache %d", i, l.Cache))
			}
			seen[l.Cache] = struct{}{}
			if l.Latency < 0 {
				err = multierr.Append(err, errors.Errorf("endpoint %d: link latency to cache %d must be >= 0, got %d", i, l.Cache, l.Latency))
			}
		}
	}
	for i, d := range p.Demands {
		if int(d.Video) < 0 || int(d.Video) >= len(p.Videos) {
			err = multierr.Append(err, errors.Errorf("demand %d: video id %d out of range [0, %d)", i, d.Video, len(p.Videos)))
		}
		if int(d.Endpoint) < 0 || int(d.Endpoint) >= len(p.Endpoints) {
			err = multierr.Append(err, errors.Errorf("demand %d: endpoint id %d out of range [0, %d)", i, d.Endpoint, len(p.Endpoints)))
		}
		if d.Amount < 0 {
			err = multierr.Append(err, errors.Errorf("demand %d: amount must be >= 0, got %d", i, d.Amount))
		}
	}
	return err
}
