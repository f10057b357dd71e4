package plan

import "strings"

// Shared fixtures for the plan package tests.

// exampleInput is the worked example from the problem statement: 5 videos,
// 2 endpoints, 4 demand entries, 3 caches of 100 units.
const exampleInput = `5 2 4 3 100
50 50 80 30 110
1000 3
0 100
2 200
1 300
500 0
3 0 1500
0 1 1000
4 0 500
1 0 1000
`

// newExampleReader returns a fresh reader over exampleInput.
func newExampleReader() *strings.Reader {
	return strings.NewReader(exampleInput)
}

// trivialProblem has exactly one placement worth making: video 0 (size 50)
// on cache 0 (capacity 100), saving (1000-100) per request over 10 requests.
func trivialProblem() *Problem {
	return &Problem{
		Videos:        []Video{{Size: 50}},
		NumCaches:     1,
		CacheCapacity: 100,
		Endpoints: []Endpoint{
			{DatacenterLatency: 1000, Links: []CacheLink{{Cache: 0, Latency: 100}}},
		},
		Demands: []DemandEntry{{Video: 0, Endpoint: 0, Amount: 10}},
	}
}

// noCachingProblem has a single video too large for the only cache.
func noCachingProblem() *Problem {
	return &Problem{
		Videos:        []Video{{Size: 1000}},
		NumCaches:     1,
		CacheCapacity: 10,
		Endpoints: []Endpoint{
			{DatacenterLatency: 1000, Links: []CacheLink{{Cache: 0, Latency: 100}}},
		},
		Demands: []DemandEntry{{Video: 0, Endpoint: 0, Amount: 5}},
	}
}

// contentionProblem has two videos with equal per-request benefit but only
// capacity for one: both are 60 units against a 100-unit cache, and video 0
// carries the larger aggregate demand.
func contentionProblem() *Problem {
	return &Problem{
		Videos:        []Video{{Size: 60}, {Size: 60}},
		NumCaches:     1,
		CacheCapacity: 100,
		Endpoints: []Endpoint{
			{DatacenterLatency: 1000, Links: []CacheLink{{Cache: 0, Latency: 100}}},
		},
		Demands: []DemandEntry{
			{Video: 0, Endpoint: 0, Amount: 10},
			{Video: 1, Endpoint: 0, Amount: 5},
		},
	}
}
