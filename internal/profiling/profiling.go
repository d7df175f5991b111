package profiling

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

// Lightweight per-tick CPU profiler. Workers and the host loop record into
// the same table; the host resets it at the start of every tick.

type entry struct {
	total time.Duration
	calls int
}

var (
	mu         sync.Mutex
	tickTotals = make(map[string]entry)
)

// Track returns a stop function that records the elapsed time under the given name.
// Usage: defer profiling.Track("dispatch.DrainMapResults")()
func Track(name string) func() {
	start := time.Now()
	return func() {
		d := time.Since(start)
		mu.Lock()
		e := tickTotals[name]
		e.total += d
		e.calls++
		tickTotals[name] = e
		mu.Unlock()
	}
}

// ResetTick clears the current totals. Call at the start of each tick.
func ResetTick() {
	mu.Lock()
	clear(tickTotals)
	mu.Unlock()
}

// Snapshot returns a copy of current per-tick totals.
func Snapshot() map[string]time.Duration {
	mu.Lock()
	defer mu.Unlock()
	out := make(map[string]time.Duration, len(tickTotals))
	for k, e := range tickTotals {
		out[k] = e.total
	}
	return out
}

// Calls returns how many times name was tracked since the last reset.
func Calls(name string) int {
	mu.Lock()
	defer mu.Unlock()
	return tickTotals[name].calls
}

// TopN formats the n most expensive entries of the current tick.
// Example: "noise.Sample:4.2ms(3), dispatch.DrainMapResults:0.1ms(1)"
func TopN(n int) string {
	mu.Lock()
	type pair struct {
		name string
		e    entry
	}
	list := make([]pair, 0, len(tickTotals))
	for k, e := range tickTotals {
		list = append(list, pair{name: k, e: e})
	}
	mu.Unlock()

	sort.Slice(list, func(i, j int) bool { return list[i].e.total > list[j].e.total })
	n = min(n, len(list))
	parts := make([]string, 0, n)
	for _, p := range list[:n] {
		ms := float64(p.e.total.Microseconds()) / 1000.0
		parts = append(parts, fmt.Sprintf("%s:%.1fms(%d)", p.name, ms, p.e.calls))
	}
	return strings.Join(parts, ", ")
}
