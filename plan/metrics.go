// Planner instrumentation: tally counters/timers for embedding, plus the
// JSON results report the CLI prints and optionally saves after a run.

package plan

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/pkg/errors"
	tally "github.com/uber-go/tally/v4"
)

// Metrics contains the optimizer's tally instruments, rooted below the
// given scope. All instruments are observational; disabling them cannot
// change the placement.
type Metrics struct {
	// Iterations counts strategy selection scans, including the final one
	// that finds no candidate.
	Iterations tally.Counter
	// Placements counts successful insertions.
	Placements tally.Counter
	// PlacedUnits accumulates the storage units consumed by insertions.
	PlacedUnits tally.Counter
	// RunDuration times a whole optimization run.
	RunDuration tally.Timer
}

// NewMetrics returns a Metrics with all instruments rooted below scope.
func NewMetrics(scope tally.Scope) *Metrics {
	optScope := scope.SubScope("optimizer")
	return &Metrics{
		Iterations:  optScope.Counter("iterations"),
		Placements:  optScope.Counter("placements"),
		PlacedUnits: optScope.Counter("placed_units"),
		RunDuration: optScope.Timer("run_duration"),
	}
}

// NewNoopMetrics returns a Metrics that records nothing.
func NewNoopMetrics() *Metrics {
	return NewMetrics(tally.NoopScope)
}

// ResultsOutput is the end-of-run report.
type ResultsOutput struct {
	Strategy       string  `json:"strategy"`
	StartTimestamp string  `json:"start_timestamp"`
	EndTimestamp   string  `json:"end_timestamp"`
	DurationSec    float64 `json:"duration_sec"`
	Placements     int     `json:"placements"`
	PlacedUnits    int64   `json:"placed_units"`
	TotalCapacity  int64   `json:"total_capacity"`
	SavedLatency   int64   `json:"saved_latency"`
	TotalRequests  int64   `json:"total_requests"`
	Score          int64   `json:"score"`
}

// NewResultsOutput assembles the report from the run's artifacts.
func NewResultsOutput(strategy string, p *Problem, st *AllocationState, res Result, startTime time.Time) ResultsOutput {
	return ResultsOutput{
		Strategy:       strategy,
		StartTimestamp: startTime.Format("2006-01-02 15:04:05"),
		EndTimestamp:   time.Now().Format("2006-01-02 15:04:05"),
		DurationSec:    time.Since(startTime).Seconds(),
		Placements:     st.TotalStored(),
		PlacedUnits:    st.TotalUsage(),
		TotalCapacity:  p.TotalCapacity(),
		SavedLatency:   res.SavedLatency,
		TotalRequests:  res.TotalRequests,
		Score:          res.Score,
	}
}

// Save prints the report to stdout and, when path is non-empty, writes it
// to the file as indented JSON.
func (o ResultsOutput) Save(path string) error {
	data, err := json.MarshalIndent(o, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshal results")
	}
	fmt.Println("=== Placement Results ===")
	fmt.Println(string(data))
	if path == "" {
		return nil
	}
	return errors.Wrapf(os.WriteFile(path, data, 0o644), "write results to %s", path)
}
