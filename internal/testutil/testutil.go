// Package testutil provides common testing utilities to reduce code
// duplication across test files in the timeframe library.
//
// This package consolidates the container construction patterns the
// windowing tests share: memory allocator setup, regular integer- and
// datetime-indexed frames, and the panel encodings built from them.
package testutil

import (
	"strconv"
	"testing"
	"time"

	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/d-vasek/timeframe/internal/container"
	"github.com/d-vasek/timeframe/internal/index"
	"github.com/d-vasek/timeframe/internal/series"
)

// TestMemoryContext provides memory allocator with automatic cleanup.
type TestMemoryContext struct {
	Allocator memory.Allocator
	cleanup   func()
}

// Release performs cleanup of the memory context.
func (tmc *TestMemoryContext) Release() {
	if tmc.cleanup != nil {
		tmc.cleanup()
	}
}

// SetupMemoryTest creates a memory allocator with automatic cleanup for
// tests. Returns a TestMemoryContext that should be released with defer.
func SetupMemoryTest(tb testing.TB) *TestMemoryContext {
	tb.Helper()
	allocator := memory.NewGoAllocator()

	return &TestMemoryContext{
		Allocator: allocator,
		cleanup: func() {
			// Arrow Go allocator memory is reclaimed by the GC; the
			// context exists to keep test setup uniform.
		},
	}
}

// Ramp returns the float64 sequence start, start+1, ... of length n.
func Ramp(start float64, n int) []float64 {
	vals := make([]float64, n)
	for i := range vals {
		vals[i] = start + float64(i)
	}
	return vals
}

// IntFrame creates a frame with integer index 0..n-1 and one value column
// "v" holding Ramp(0, n).
func IntFrame(tb testing.TB, n int, mem memory.Allocator) *container.Frame {
	tb.Helper()
	return container.NewFrame(
		index.NewRange(0, int64(n)),
		series.New("v", Ramp(0, n), mem),
	)
}

// DayStart is the origin used by datetime-indexed test containers.
var DayStart = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// TimeFrame creates a frame with a daily datetime index of length n
// starting at DayStart and one value column "v".
func TimeFrame(tb testing.TB, n int, mem memory.Allocator) *container.Frame {
	tb.Helper()
	times := make([]time.Time, n)
	for i := range times {
		times[i] = DayStart.AddDate(0, 0, i)
	}
	return container.NewFrame(
		index.FromTimes(times).WithFreq(24*time.Hour),
		series.New("v", Ramp(0, n), mem),
	)
}

// IntPanel creates a long-format panel with the given per-instance
// lengths, each instance indexed 0..len-1 and holding one value column "v".
func IntPanel(tb testing.TB, lengths []int, mem memory.Allocator) *container.MultiFrame {
	tb.Helper()
	var keys []string
	var times []int64
	var vals []float64
	for i, n := range lengths {
		for t := 0; t < n; t++ {
			keys = append(keys, strconv.Itoa(i))
			times = append(times, int64(t))
			vals = append(vals, float64(i*100+t))
		}
	}
	return container.NewMultiFrame(
		[][]string{keys},
		index.FromInts(times).WithStep(1),
		series.New("v", vals, mem),
	)
}

// Hierarchy creates a two-level hierarchical frame: outer nodes each
// holding the given instances, every instance sharing integer index
// 0..length-1.
func Hierarchy(tb testing.TB, nodes, instances, length int, mem memory.Allocator) *container.MultiFrame {
	tb.Helper()
	var outer, inner []string
	var times []int64
	var vals []float64
	for n := 0; n < nodes; n++ {
		for i := 0; i < instances; i++ {
			for t := 0; t < length; t++ {
				outer = append(outer, strconv.Itoa(n))
				inner = append(inner, strconv.Itoa(i))
				times = append(times, int64(t))
				vals = append(vals, float64(t))
			}
		}
	}
	return container.NewMultiFrame(
		[][]string{outer, inner},
		index.FromInts(times).WithStep(1),
		series.New("v", vals, mem),
	)
}

// NestedPanel creates a nested-cell panel with one column "v" and the
// given per-instance lengths, each cell indexed 0..len-1.
func NestedPanel(tb testing.TB, lengths []int, mem memory.Allocator) *container.NestedFrame {
	tb.Helper()
	cells := make([]*container.Cell, len(lengths))
	for i, n := range lengths {
		cells[i] = &container.Cell{
			Index:  index.NewRange(0, int64(n)),
			Values: series.New("v", Ramp(float64(i*100), n), mem),
		}
	}
	return container.NewNestedFrame(
		index.NewRange(0, int64(len(lengths))),
		container.NestedColumn{Name: "v", Cells: cells},
	)
}

// Frames creates a frame-list panel with the given per-instance lengths,
// each member indexed 0..len-1 with one value column "v".
func Frames(tb testing.TB, lengths []int, mem memory.Allocator) container.FrameList {
	tb.Helper()
	fl := make(container.FrameList, len(lengths))
	for i, n := range lengths {
		fl[i] = container.NewFrame(
			index.NewRange(0, int64(n)),
			series.New("v", Ramp(float64(i*100), n), mem),
		)
	}
	return fl
}

