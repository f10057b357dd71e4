// Serializes a finished allocation state to the submission format and
// parses it back for grading. The format: first line is the cache count,
// then one line per cache with its id followed by the stored video ids.
// Within-line video order is implementation-defined; consumers only need
// set membership.

package plan

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// WritePlacement serializes st to w. Video ids are emitted in ascending
// order per cache so output is reproducible across runs.
func WritePlacement(w io.Writer, st *AllocationState) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d\n", st.NumCaches())
	for c := 0; c < st.NumCaches(); c++ {
		fmt.Fprintf(bw, "%d", c)
		for _, v := range st.Videos(CacheID(c)) {
			fmt.Fprintf(bw, " %d", v)
		}
		fmt.Fprintln(bw)
	}
	return errors.Wrap(bw.Flush(), "write placement")
}

// SavePlacement writes the serialized placement to a file.
func SavePlacement(path string, st *AllocationState) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create placement file")
	}
	if err := WritePlacement(f, st); err != nil {
		f.Close()
		return err
	}
	return errors.Wrap(f.Close(), "close placement file")
}

// ParsePlacement reads a serialized placement back into an AllocationState
// against p. Duplicate video ids on a line collapse to set membership;
// out-of-range ids and capacity violations are errors, since a submission
// that breaks the capacity invariant is not a valid plan.
func ParsePlacement(r io.Reader, p *Problem) (*AllocationState, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	st := NewAllocationState(p)

	if !sc.Scan() {
		return nil, errors.New("empty placement")
	}
	declared, err := strconv.Atoi(strings.TrimSpace(sc.Text()))
	if err != nil {
		return nil, errors.Wrap(err, "cache count")
	}
	if declared < 0 || declared > p.NumCaches {
		return nil, errors.Errorf("cache count %d out of range [0, %d]", declared, p.NumCaches)
	}

	line := 1
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		cache, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, errors.Wrapf(err, "line %d: cache id", line)
		}
		if cache < 0 || cache >= p.NumCaches {
			return nil, errors.Errorf("line %d: cache id %d out of range [0, %d)", line, cache, p.NumCaches)
		}
		c := CacheID(cache)
		for _, f := range fields[1:] {
			video, err := strconv.Atoi(f)
			if err != nil {
				return nil, errors.Wrapf(err, "line %d: video id", line)
			}
			if video < 0 || video >= len(p.Videos) {
				return nil, errors.Errorf("line %d: video id %d out of range [0, %d)", line, video, len(p.Videos))
			}
			v := VideoID(video)
			if st.Stores(c, v) {
				continue
			}
			if p.Videos[v].Size > st.Remaining(c) {
				return nil, errors.Errorf("line %d: video %d overflows cache %d (size %d > remaining %d)",
					line, v, c, p.Videos[v].Size, st.Remaining(c))
			}
			st.Insert(c, v)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "read placement")
	}
	return st, nil
}

// LoadPlacement reads and parses a placement file against p.
func LoadPlacement(path string, p *Problem) (*AllocationState, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open placement file")
	}
	defer f.Close()

	st, err := ParsePlacement(f, p)
	if err != nil {
		return nil, errors.Wrapf(err, "parse %s", path)
	}
	return st, nil
}
