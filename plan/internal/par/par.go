// Package par provides the bounded worker-pool reductions used by the
// placement strategies: a parallel argmax, a parallel lowest-index search
// and plain sharded iteration. Workers operate on disjoint index ranges and
// never share mutable state; results are merged after all workers finish.
package par

import (
	"runtime"
	"sync"
)

// Range is a half-open index interval [Lo, Hi) assigned to one worker.
type Range struct {
	Lo, Hi int
}

// Workers resolves a requested worker count: values <= 0 mean one worker
// per available CPU.
func Workers(requested int) int {
	if requested > 0 {
		return requested
	}
	return runtime.GOMAXPROCS(0)
}

// Split partitions [0, n) into at most workers contiguous ranges of nearly
// equal size. Returns nil when n <= 0.
func Split(n, workers int) []Range {
	if n <= 0 {
		return nil
	}
	if workers < 1 {
		workers = 1
	}
	if workers > n {
		workers = n
	}
	out := make([]Range, 0, workers)
	chunk := n / workers
	rem := n % workers
	lo := 0
	for w := 0; w < workers; w++ {
		hi := lo + chunk
		if w < rem {
			hi++
		}
		out = append(out, Range{Lo: lo, Hi: hi})
		lo = hi
	}
	return out
}

// Shards is Split with the worker count resolved via Workers.
func Shards(n, workers int) []Range {
	return Split(n, Workers(workers))
}

// Each runs fn once per range on its own goroutine and waits for all of
// them. The shard index lets callers keep per-worker private state.
func Each(ranges []Range, fn func(shard int, r Range)) {
	var wg sync.WaitGroup
	for w, r := range ranges {
		wg.Add(1)
		go func(w int, r Range) {
			defer wg.Done()
			fn(w, r)
		}(w, r)
	}
	wg.Wait()
}

// Best evaluates eval for every index in [0, n) and returns the preferred
// value. better reports whether a should replace b; when better is a strict
// comparison, ties resolve to the lowest index, making the reduction
// deterministic for any worker count.
func Best[T any](n, workers int, eval func(i int) (T, bool), better func(a, b T) bool) (T, bool) {
	type result struct {
		val T
		ok  bool
	}
	ranges := Shards(n, workers)
	results := make([]result, len(ranges))
	Each(ranges, func(w int, r Range) {
		var best T
		found := false
		for i := r.Lo; i < r.Hi; i++ {
			v, ok := eval(i)
			if !ok {
				continue
			}
			if !found || better(v, best) {
				best = v
				found = true
			}
		}
		results[w] = result{val: best, ok: found}
	})

	var best T
	found := false
	for _, res := range results {
		if !res.ok {
			continue
		}
		if !found || better(res.val, best) {
			best = res.val
			found = true
		}
	}
	return best, found
}

// FirstIndex returns the lowest index in [0, n) satisfying pred. Each worker
// stops at the first match inside its own range; the merge keeps the lowest
// matching range.
func FirstIndex(n, workers int, pred func(i int) bool) (int, bool) {
	ranges := Shards(n, workers)
	results := make([]int, len(ranges))
	Each(ranges, func(w int, r Range) {
		results[w] = -1
		for i := r.Lo; i < r.Hi; i++ {
			if pred(i) {
				results[w] = i
				return
			}
		}
	})
	for _, i := range results {
		if i >= 0 {
			return i, true
		}
	}
	return 0, false
}
