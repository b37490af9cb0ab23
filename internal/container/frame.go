package container

import (
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/d-vasek/timeframe/internal/index"
	"github.com/d-vasek/timeframe/internal/series"
)

// Frame is a single time series as a table: one time index, one or more
// named value columns of equal length.
type Frame struct {
	idx  *index.TimeIndex
	cols []*series.Column[float64]
}

// NewFrame creates a frame over idx and cols. Column lengths are assumed
// to equal the index length; shape validation is the registry's concern.
// A nil idx is normalized to an empty integer index, the uninitialized
// state.
func NewFrame(idx *index.TimeIndex, cols ...*series.Column[float64]) *Frame {
	if idx == nil {
		idx = index.FromInts(nil)
	}
	return &Frame{idx: idx, cols: cols}
}

// Mtype returns MtypeFrame.
func (f *Frame) Mtype() Mtype { return MtypeFrame }

// Scitype returns ScitypeSeries.
func (f *Frame) Scitype() Scitype { return ScitypeSeries }

// Len returns the number of timepoints.
func (f *Frame) Len() int {
	if f.idx == nil {
		return 0
	}
	return f.idx.Len()
}

// Index returns the time index.
func (f *Frame) Index() *index.TimeIndex { return f.idx }

// Columns returns the value columns in order.
func (f *Frame) Columns() []*series.Column[float64] { return f.cols }

// Width returns the number of value columns.
func (f *Frame) Width() int { return len(f.cols) }

// SelectRows returns a new frame holding the rows where mask is true.
func (f *Frame) SelectRows(mask []bool, mem memory.Allocator) *Frame {
	cols := make([]*series.Column[float64], len(f.cols))
	for i, c := range f.cols {
		cols[i] = c.Select(mask, mem)
	}
	return &Frame{idx: f.idx.Select(mask), cols: cols}
}

// Release releases the Arrow memory held by the value columns.
func (f *Frame) Release() {
	for _, c := range f.cols {
		c.Release()
	}
}
