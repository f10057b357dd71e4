// Parses the line-oriented problem format into a Problem:
//
//	numVideos numEndpoints numRequests numCaches cacheCapacity
//	<numVideos video sizes>
//	per endpoint: "datacenterLatency numLinks" then numLinks "cacheId latency" lines
//	numRequests lines of "videoId endpointId amount"
//
// Any malformed line, missing field or out-of-range id is a fatal load
// error; the planner is never run against a partially loaded model.

package plan

import (
	"bufio"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// maxLineBytes bounds a single input line. The video-size line holds one
// token per video, so it can get long on large problems.
const maxLineBytes = 64 * 1024 * 1024

// LoadProblem reads and parses a problem file.
func LoadProblem(path string) (*Problem, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open problem file")
	}
	defer f.Close()

	p, err := ParseProblem(f)
	if err != nil {
		return nil, errors.Wrapf(err, "parse %s", path)
	}
	return p, nil
}

// ParseProblem parses the problem format from r. Endpoint links are sorted
// ascending by latency and duplicate (video, endpoint) demand keys are
// merged before the problem is returned.
func ParseProblem(r io.Reader) (*Problem, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	lr := &lineReader{sc: sc}

	header, err := lr.ints(5)
	if err != nil {
		return nil, errors.Wrap(err, "header")
	}
	numVideos, numEndpoints, numRequests, numCaches := int(header[0]), int(header[1]), int(header[2]), int(header[3])
	capacity := header[4]
	if numVideos < 0 || numEndpoints < 0 || numRequests < 0 || numCaches < 0 {
		return nil, errors.Errorf("header: counts must be >= 0, got %v", header)
	}

	sizes, err := lr.ints(numVideos)
	if err != nil {
		return nil, errors.Wrap(err, "video sizes")
	}
	videos := make([]Video, numVideos)
	for i, s := range sizes {
		videos[i] = Video{Size: s}
	}

	endpoints := make([]Endpoint, 0, numEndpoints)
	for e := 0; e < numEndpoints; e++ {
		head, err := lr.ints(2)
		if err != nil {
			return nil, errors.Wrapf(err, "endpoint %d", e)
		}
		numLinks := int(head[1])
		if numLinks < 0 {
			return nil, errors.Errorf("endpoint %d: link count must be >= 0, got %d", e, numLinks)
		}
		links := make([]CacheLink, 0, numLinks)
		for l := 0; l < numLinks; l++ {
			pair, err := lr.ints(2)
			if err != nil {
				return nil, errors.Wrapf(err, "endpoint %d link %d", e, l)
			}
			links = append(links, CacheLink{Cache: CacheID(pair[0]), Latency: pair[1]})
		}
		sort.SliceStable(links, func(i, j int) bool { return links[i].Latency < links[j].Latency })
		endpoints = append(endpoints, Endpoint{DatacenterLatency: head[0], Links: links})
	}

	raw := make([]DemandEntry, 0, numRequests)
	for d := 0; d < numRequests; d++ {
		triple, err := lr.ints(3)
		if err != nil {
			return nil, errors.Wrapf(err, "demand %d", d)
		}
		raw = append(raw, DemandEntry{
			Video:    VideoID(triple[0]),
			Endpoint: EndpointID(triple[1]),
			Amount:   triple[2],
		})
	}

	p := &Problem{
		Videos:        videos,
		NumCaches:     numCaches,
		CacheCapacity: capacity,
		Endpoints:     endpoints,
		Demands:       AggregateDemand(raw),
	}
	if err := p.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid problem")
	}
	return p, nil
}

// lineReader yields whitespace-separated int64 fields line by line, skipping
// blank lines and tracking line numbers for error messages.
type lineReader struct {
	sc   *bufio.Scanner
	line int
}

func (lr *lineReader) ints(want int) ([]int64, error) {
	if want == 0 {
		// Zero-field records (e.g. the size line of a zero-video problem)
		// produce a blank line, which the scan below would skip past.
		return nil, nil
	}
	for lr.sc.Scan() {
		lr.line++
		fields := strings.Fields(lr.sc.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) != want {
			return nil, errors.Errorf("line %d: expected %d fields, got %d", lr.line, want, len(fields))
		}
		out := make([]int64, len(fields))
		for i, f := range fields {
			v, err := strconv.ParseInt(f, 10, 64)
			if err != nil {
				return nil, errors.Wrapf(err, "line %d: field %d", lr.line, i+1)
			}
			out[i] = v
		}
		return out, nil
	}
	if err := lr.sc.Err(); err != nil {
		return nil, errors.Wrap(err, "read input")
	}
	return nil, errors.Errorf("unexpected end of input after line %d", lr.line)
}
