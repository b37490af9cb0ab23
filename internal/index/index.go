// Package index provides the time-index model shared by all container
// encodings: an ordered index of int64 or time.Time values, scalar index
// elements, and spans (step counts or durations) for window arithmetic.
package index

import (
	"fmt"
	"time"

	"golang.org/x/exp/slices"
)

// Kind identifies the value domain of an index, scalar or span.
type Kind int

const (
	// KindInt is an integer-valued time index.
	KindInt Kind = iota
	// KindTime is a datetime-valued time index.
	KindTime
)

// String returns the kind name.
func (k Kind) String() string {
	if k == KindTime {
		return "time"
	}
	return "int"
}

// TimeValue is a single index element, either an int64 position or a
// time.Time instant. The zero value is the integer 0.
type TimeValue struct {
	kind Kind
	i    int64
	t    time.Time
}

// Int creates an integer-kind TimeValue.
func Int(v int64) TimeValue {
	return TimeValue{kind: KindInt, i: v}
}

// Time creates a datetime-kind TimeValue.
func Time(t time.Time) TimeValue {
	return TimeValue{kind: KindTime, t: t}
}

// Kind returns the value domain of v.
func (v TimeValue) Kind() Kind { return v.kind }

// Int returns the integer value; meaningful only for KindInt.
func (v TimeValue) Int() int64 { return v.i }

// Time returns the datetime value; meaningful only for KindTime.
func (v TimeValue) Time() time.Time { return v.t }

// Compare orders two values of the same kind: -1, 0 or 1.
// Values of different kinds order by kind (int before time); callers are
// expected to have validated kind homogeneity upstream.
func (v TimeValue) Compare(o TimeValue) int {
	if v.kind != o.kind {
		if v.kind < o.kind {
			return -1
		}
		return 1
	}
	if v.kind == KindTime {
		return v.t.Compare(o.t)
	}
	switch {
	case v.i < o.i:
		return -1
	case v.i > o.i:
		return 1
	default:
		return 0
	}
}

// Equal reports value equality.
func (v TimeValue) Equal(o TimeValue) bool {
	return v.Compare(o) == 0
}

// Sub shifts v back by s. A zero span is a no-op for either kind;
// otherwise the span kind must match the value kind.
func (v TimeValue) Sub(s Span) (TimeValue, error) {
	if s.IsZero() {
		return v, nil
	}
	if s.kind != v.kind {
		return TimeValue{}, fmt.Errorf("cannot subtract %s span from %s index value", s.kind, v.kind)
	}
	if v.kind == KindTime {
		return Time(v.t.Add(-s.dur)), nil
	}
	return Int(v.i - s.steps), nil
}

// String renders the value for error messages.
func (v TimeValue) String() string {
	if v.kind == KindTime {
		return v.t.Format(time.RFC3339Nano)
	}
	return fmt.Sprintf("%d", v.i)
}

// Max returns the largest of vals. Empty input returns the zero value.
func Max(vals []TimeValue) TimeValue {
	var best TimeValue
	for i, v := range vals {
		if i == 0 || v.Compare(best) > 0 {
			best = v
		}
	}
	return best
}

// Span is a window length or lag: a step count for integer indexes, a
// duration for datetime indexes. The zero Span means "no offset" and is
// valid against either index kind.
type Span struct {
	kind  Kind
	steps int64
	dur   time.Duration
}

// Steps creates an integer-step span.
func Steps(n int64) Span {
	return Span{kind: KindInt, steps: n}
}

// Duration creates a duration span.
func Duration(d time.Duration) Span {
	return Span{kind: KindTime, dur: d}
}

// Kind returns the span's value domain.
func (s Span) Kind() Kind { return s.kind }

// Steps returns the step count; meaningful only for KindInt.
func (s Span) Steps() int64 { return s.steps }

// Duration returns the duration; meaningful only for KindTime.
func (s Span) Duration() time.Duration { return s.dur }

// IsZero reports whether the span is a no-op offset.
func (s Span) IsZero() bool {
	return s.steps == 0 && s.dur == 0
}

// TimeIndex is an ordered sequence of same-kind time values with optional
// step (integer indexes) or frequency (datetime indexes) metadata. The
// metadata survives slicing and cutoff wrapping, so a length-1 index
// carved out of a regular index still reports its source resolution.
type TimeIndex struct {
	kind  Kind
	ints  []int64
	times []time.Time
	step  int64         // 0 = unknown
	freq  time.Duration // 0 = unknown
}

// NewRange creates the integer index [start, start+n) with step 1.
func NewRange(start, n int64) *TimeIndex {
	vals := make([]int64, n)
	for i := range vals {
		vals[i] = start + int64(i)
	}
	return &TimeIndex{kind: KindInt, ints: vals, step: 1}
}

// FromInts creates an integer index over vals. The slice is not copied.
func FromInts(vals []int64) *TimeIndex {
	return &TimeIndex{kind: KindInt, ints: vals}
}

// FromTimes creates a datetime index over vals. The slice is not copied.
func FromTimes(vals []time.Time) *TimeIndex {
	return &TimeIndex{kind: KindTime, times: vals}
}

// WithStep records the step of a regular integer index and returns ix.
func (ix *TimeIndex) WithStep(step int64) *TimeIndex {
	ix.step = step
	return ix
}

// WithFreq records the frequency of a regular datetime index and returns ix.
func (ix *TimeIndex) WithFreq(freq time.Duration) *TimeIndex {
	ix.freq = freq
	return ix
}

// Kind returns the index value domain.
func (ix *TimeIndex) Kind() Kind { return ix.kind }

// Len returns the number of index values.
func (ix *TimeIndex) Len() int {
	if ix.kind == KindTime {
		return len(ix.times)
	}
	return len(ix.ints)
}

// Step returns the recorded step, 0 if unknown.
func (ix *TimeIndex) Step() int64 { return ix.step }

// Freq returns the recorded frequency, 0 if unknown.
func (ix *TimeIndex) Freq() time.Duration { return ix.freq }

// At returns the value at position i.
func (ix *TimeIndex) At(i int) TimeValue {
	if ix.kind == KindTime {
		return Time(ix.times[i])
	}
	return Int(ix.ints[i])
}

// Last returns the final (latest) index value.
func (ix *TimeIndex) Last() TimeValue {
	return ix.At(ix.Len() - 1)
}

// Ints returns the backing int64 values; nil for datetime indexes.
func (ix *TimeIndex) Ints() []int64 { return ix.ints }

// Times returns the backing time.Time values; nil for integer indexes.
func (ix *TimeIndex) Times() []time.Time { return ix.times }

// Wrap creates a length-1 index holding v, carrying over ix's kind and
// step/frequency metadata.
func (ix *TimeIndex) Wrap(v TimeValue) *TimeIndex {
	if ix.kind == KindTime {
		return &TimeIndex{kind: KindTime, times: []time.Time{v.Time()}, freq: ix.freq}
	}
	return &TimeIndex{kind: KindInt, ints: []int64{v.Int()}, step: ix.step}
}

// Slice returns a copy of positions [lo, hi), preserving metadata.
func (ix *TimeIndex) Slice(lo, hi int) *TimeIndex {
	out := &TimeIndex{kind: ix.kind, step: ix.step, freq: ix.freq}
	if ix.kind == KindTime {
		out.times = append([]time.Time(nil), ix.times[lo:hi]...)
	} else {
		out.ints = append([]int64(nil), ix.ints[lo:hi]...)
	}
	return out
}

// Select returns a copy of the positions where mask is true, preserving
// metadata. The mask length must equal the index length.
func (ix *TimeIndex) Select(mask []bool) *TimeIndex {
	out := &TimeIndex{kind: ix.kind, step: ix.step, freq: ix.freq}
	if ix.kind == KindTime {
		for i, keep := range mask {
			if keep {
				out.times = append(out.times, ix.times[i])
			}
		}
		return out
	}
	for i, keep := range mask {
		if keep {
			out.ints = append(out.ints, ix.ints[i])
		}
	}
	return out
}

// Equal reports element-wise equality of kind and values. Metadata is not
// compared.
func (ix *TimeIndex) Equal(o *TimeIndex) bool {
	if ix.kind != o.kind || ix.Len() != o.Len() {
		return false
	}
	if ix.kind == KindTime {
		for i, t := range ix.times {
			if !t.Equal(o.times[i]) {
				return false
			}
		}
		return true
	}
	return slices.Equal(ix.ints, o.ints)
}

// IsMonotonic reports whether values are in non-decreasing order.
func (ix *TimeIndex) IsMonotonic() bool {
	if ix.kind == KindInt {
		return slices.IsSorted(ix.ints)
	}
	for i := 1; i < len(ix.times); i++ {
		if ix.times[i].Before(ix.times[i-1]) {
			return false
		}
	}
	return true
}

// String renders a short description for error messages.
func (ix *TimeIndex) String() string {
	return fmt.Sprintf("TimeIndex[%s](len=%d)", ix.kind, ix.Len())
}
