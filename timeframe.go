// Package timeframe provides a representation-polymorphic time-series
// container layer: a closed set of container encodings for series, panels
// and hierarchies, uniform time-index resolution and cutoff computation
// over them, and extraction of trailing windows relative to the cutoff.
// This package is the sole public API for the library.
package timeframe

import (
	"time"

	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/d-vasek/timeframe/internal/config"
	"github.com/d-vasek/timeframe/internal/container"
	"github.com/d-vasek/timeframe/internal/errors"
	"github.com/d-vasek/timeframe/internal/index"
	"github.com/d-vasek/timeframe/internal/registry"
	"github.com/d-vasek/timeframe/internal/series"
	"github.com/d-vasek/timeframe/internal/temporal"
)

// Container is the capability surface shared by all container encodings.
type Container = container.Container

// Mtype tags the concrete physical encoding of a container.
type Mtype = container.Mtype

// Scitype tags the abstract semantic category a container realizes.
type Scitype = container.Scitype

// Encoding and scitype tags.
const (
	MtypeBuffer    = container.MtypeBuffer
	MtypeBuffer3D  = container.MtypeBuffer3D
	MtypeFrame     = container.MtypeFrame
	MtypeMulti     = container.MtypeMulti
	MtypeHier      = container.MtypeHier
	MtypeNested    = container.MtypeNested
	MtypeFrameList = container.MtypeFrameList

	ScitypeSeries       = container.ScitypeSeries
	ScitypePanel        = container.ScitypePanel
	ScitypeHierarchical = container.ScitypeHierarchical
)

// Container encoding types.
type (
	// Buffer is a flat numeric buffer of 1 to 3 dimensions.
	Buffer = container.Buffer
	// Frame is a single series as a time-indexed table.
	Frame = container.Frame
	// MultiFrame is a panel or hierarchy in long format.
	MultiFrame = container.MultiFrame
	// NestedFrame is a panel whose table cells hold full sub-series.
	NestedFrame = container.NestedFrame
	// FrameList is a panel as an ordered collection of frames.
	FrameList = container.FrameList
	// NestedColumn is a named column of nested cells.
	NestedColumn = container.NestedColumn
	// Cell is one nested sub-series.
	Cell = container.Cell
)

// Index model types.
type (
	// TimeIndex is an ordered index of int64 or time.Time values with
	// optional step/frequency metadata.
	TimeIndex = index.TimeIndex
	// TimeValue is one index element.
	TimeValue = index.TimeValue
	// Span is a window length or lag: steps or a duration.
	Span = index.Span
	// Column is an Arrow-backed value column.
	Column[T any] = series.Column[T]
)

// NewBuffer creates a flat buffer over data with the given shape.
func NewBuffer(data []float64, shape ...int) (*Buffer, error) {
	return container.NewBuffer(data, shape...)
}

// NewFrame creates a single-index frame.
func NewFrame(idx *TimeIndex, cols ...*Column[float64]) *Frame {
	return container.NewFrame(idx, cols...)
}

// NewMultiFrame creates a long-format panel or hierarchy.
func NewMultiFrame(keys [][]string, times *TimeIndex, cols ...*Column[float64]) *MultiFrame {
	return container.NewMultiFrame(keys, times, cols...)
}

// NewNestedFrame creates a nested-cell panel.
func NewNestedFrame(idx *TimeIndex, cols ...NestedColumn) *NestedFrame {
	return container.NewNestedFrame(idx, cols...)
}

// NewColumn creates an Arrow-backed value column. A nil allocator selects
// the default Go allocator.
func NewColumn[T any](name string, values []T, mem memory.Allocator) *Column[T] {
	return series.New(name, values, mem)
}

// Index constructors.

// NewRangeIndex creates the integer index [start, start+n) with step 1.
func NewRangeIndex(start, n int64) *TimeIndex { return index.NewRange(start, n) }

// IndexFromInts creates an integer index over vals.
func IndexFromInts(vals []int64) *TimeIndex { return index.FromInts(vals) }

// IndexFromTimes creates a datetime index over vals.
func IndexFromTimes(vals []time.Time) *TimeIndex { return index.FromTimes(vals) }

// Int creates an integer-kind index value.
func Int(v int64) TimeValue { return index.Int(v) }

// Time creates a datetime-kind index value.
func Time(t time.Time) TimeValue { return index.Time(t) }

// Steps creates an integer-step span.
func Steps(n int64) Span { return index.Steps(n) }

// Duration creates a duration span.
func Duration(d time.Duration) Span { return index.Duration(d) }

// CutoffOptions configures cutoff computation.
type CutoffOptions = temporal.CutoffOptions

// CutoffResult holds the scalar cutoff and, when requested, a length-1
// index wrapping it.
type CutoffResult = temporal.CutoffResult

// Metadata describes the classification of a container.
type Metadata = registry.Metadata

// ResolveTimeIndex returns the time index associated with a container,
// assuming all instances share the same index values.
func ResolveTimeIndex(c Container) (*TimeIndex, error) {
	return temporal.ResolveTimeIndex(c)
}

// ResolveSeriesIndex returns the index of a single-series container,
// synthesizing an origin-anchored integer range for buffers.
func ResolveSeriesIndex(c Container, origin TimeValue) (*TimeIndex, error) {
	return temporal.ResolveSeriesIndex(c, origin)
}

// Cutoff computes the latest time point of a container.
func Cutoff(c Container, opts CutoffOptions) (CutoffResult, error) {
	return temporal.Cutoff(c, opts)
}

// GetWindow slices a container to the trailing window with the given
// length and lag, returning a container of the same encoding. A nil
// length means an unbounded window.
func GetWindow(c Container, length *Span, lag Span) (Container, error) {
	return temporal.GetWindow(c, length, lag, memory.NewGoAllocator())
}

// Detect classifies a container into its mtype and scitype.
func Detect(c Container) (Metadata, error) {
	return registry.Detect(c)
}

// Convert re-encodes a container into the first feasible target encoding.
func Convert(c Container, targets ...Mtype) (Container, error) {
	return registry.Convert(c, memory.NewGoAllocator(), targets...)
}

// Error classification helpers.

// IsUnsupportedTypeError reports whether err marks a container outside the
// known encoding set.
func IsUnsupportedTypeError(err error) bool { return errors.IsUnsupportedType(err) }

// IsInputTypeError reports whether err marks input rejected by detection
// or parameter validation.
func IsInputTypeError(err error) bool { return errors.IsInputType(err) }

// IsInternalError reports whether err marks an exhaustiveness defect in
// the encoding dispatch.
func IsInternalError(err error) bool { return errors.IsInternal(err) }

// Configuration surface.

// Config represents the global configuration for timeframe operations.
type Config = config.Config

// SetConfig sets the global configuration.
func SetConfig(c Config) { config.SetGlobalConfig(c) }

// GetConfig returns the current global configuration.
func GetConfig() Config { return config.GetGlobalConfig() }

// LoadConfigFromFile loads configuration from a JSON or YAML file.
func LoadConfigFromFile(filename string) (Config, error) {
	return config.LoadFromFile(filename)
}
