package container

import (
	"strings"
	"time"

	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/d-vasek/timeframe/internal/index"
	"github.com/d-vasek/timeframe/internal/series"
)

const keySep = "\x1f"

// MultiFrame is a panel or hierarchy in long format: one or more instance
// key levels, a time column shared across rows, and value columns. Every
// slice has the same length (the total row count across instances).
type MultiFrame struct {
	keys  [][]string // one slice per instance level
	times *index.TimeIndex
	cols  []*series.Column[float64]
}

// NewMultiFrame creates a long-format frame. keys must hold at least one
// level; all key levels, the time index and the value columns are assumed
// to share one length. A nil times index is normalized to an empty
// integer index, the uninitialized state.
func NewMultiFrame(keys [][]string, times *index.TimeIndex, cols ...*series.Column[float64]) *MultiFrame {
	if times == nil {
		times = index.FromInts(nil)
	}
	return &MultiFrame{keys: keys, times: times, cols: cols}
}

// Mtype returns MtypeHier when the frame has two or more instance levels,
// MtypeMulti otherwise.
func (mf *MultiFrame) Mtype() Mtype {
	if len(mf.keys) > 1 {
		return MtypeHier
	}
	return MtypeMulti
}

// Scitype returns the scitype the frame realizes.
func (mf *MultiFrame) Scitype() Scitype {
	return ScitypeOf(mf.Mtype())
}

// Len returns the total number of rows.
func (mf *MultiFrame) Len() int {
	if mf.times == nil {
		return 0
	}
	return mf.times.Len()
}

// Levels returns the number of instance key levels.
func (mf *MultiFrame) Levels() int { return len(mf.keys) }

// Keys returns the instance key levels.
func (mf *MultiFrame) Keys() [][]string { return mf.keys }

// Times returns the time column as an index over all rows.
func (mf *MultiFrame) Times() *index.TimeIndex { return mf.times }

// TimesAt projects the time column down to the given row positions,
// preserving index metadata.
func (mf *MultiFrame) TimesAt(rows []int) *index.TimeIndex {
	if mf.times.Kind() == index.KindTime {
		src := mf.times.Times()
		vals := make([]time.Time, len(rows))
		for i, r := range rows {
			vals[i] = src[r]
		}
		return index.FromTimes(vals).WithFreq(mf.times.Freq())
	}
	src := mf.times.Ints()
	vals := make([]int64, len(rows))
	for i, r := range rows {
		vals[i] = src[r]
	}
	return index.FromInts(vals).WithStep(mf.times.Step())
}

// Columns returns the value columns in order.
func (mf *MultiFrame) Columns() []*series.Column[float64] { return mf.cols }

// InstanceRows maps one instance (full key tuple) to the row positions it
// occupies.
type InstanceRows struct {
	Key  []string
	Rows []int
}

// Instances groups rows by the full instance key tuple, in order of first
// appearance. Row order within an instance is preserved.
func (mf *MultiFrame) Instances() []InstanceRows {
	byKey := make(map[string]int)
	var groups []InstanceRows
	for row := 0; row < mf.Len(); row++ {
		key := mf.rowKey(row)
		composite := strings.Join(key, keySep)
		gi, ok := byKey[composite]
		if !ok {
			gi = len(groups)
			byKey[composite] = gi
			groups = append(groups, InstanceRows{Key: key})
		}
		groups[gi].Rows = append(groups[gi].Rows, row)
	}
	return groups
}

func (mf *MultiFrame) rowKey(row int) []string {
	key := make([]string, len(mf.keys))
	for level, vals := range mf.keys {
		key[level] = vals[row]
	}
	return key
}

// SelectRows returns a new frame holding the rows where mask is true.
func (mf *MultiFrame) SelectRows(mask []bool, mem memory.Allocator) *MultiFrame {
	keys := make([][]string, len(mf.keys))
	for level, vals := range mf.keys {
		kept := make([]string, 0, len(vals))
		for i, keep := range mask {
			if keep {
				kept = append(kept, vals[i])
			}
		}
		keys[level] = kept
	}
	cols := make([]*series.Column[float64], len(mf.cols))
	for i, c := range mf.cols {
		cols[i] = c.Select(mask, mem)
	}
	return &MultiFrame{keys: keys, times: mf.times.Select(mask), cols: cols}
}

// Release releases the Arrow memory held by the value columns.
func (mf *MultiFrame) Release() {
	for _, c := range mf.cols {
		c.Release()
	}
}
