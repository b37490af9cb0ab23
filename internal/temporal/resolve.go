// Package temporal implements the windowing engine: time-index resolution,
// cutoff computation and trailing-window extraction over the container
// encodings. All functions are pure; containers are never mutated and
// shape invariants are assumed validated upstream (see package registry).
package temporal

import (
	"github.com/d-vasek/timeframe/internal/container"
	"github.com/d-vasek/timeframe/internal/errors"
	"github.com/d-vasek/timeframe/internal/index"
)

// ResolveTimeIndex returns the time index associated with a container,
// assuming every instance shares the same index values. Only the first
// instance is inspected; homogeneity across instances is not validated.
//
// Buffers have no inherent index and synthesize a zero-based range over
// their last dimension. Collection-of-frames encodings are not resolvable.
func ResolveTimeIndex(c container.Container) (*index.TimeIndex, error) {
	const op = "ResolveTimeIndex"

	switch v := c.(type) {
	case *container.Buffer:
		shape := v.Shape()
		return index.NewRange(0, int64(shape[len(shape)-1])), nil

	case *container.Frame:
		return v.Index(), nil

	case *container.NestedFrame:
		cell := v.FirstCell()
		if cell == nil {
			return nil, errors.NewInputType(op, "nested frame has no cells to resolve an index from")
		}
		return cell.Index, nil

	case *container.MultiFrame:
		insts := v.Instances()
		if len(insts) == 0 {
			return v.Times(), nil
		}
		return v.TimesAt(insts[0].Rows), nil

	default:
		return nil, errors.NewUnsupportedType(op, c)
	}
}

// ResolveSeriesIndex returns the index of a single-series container.
// Containers with an inherent index return it; buffers synthesize the
// integer range of their row count anchored at origin, so a buffer handed
// over mid-stream reports positions relative to the current cutoff. The
// origin must be integer-kind and is ignored for indexed containers.
func ResolveSeriesIndex(c container.Container, origin index.TimeValue) (*index.TimeIndex, error) {
	const op = "ResolveSeriesIndex"

	switch v := c.(type) {
	case *container.Buffer:
		if origin.Kind() != index.KindInt {
			return nil, errors.NewInputType(op, "buffer index origin must be integer-kind")
		}
		if v.Dims() == 3 {
			return nil, errors.NewInputType(op, "container must be of Series scitype")
		}
		return index.NewRange(origin.Int(), int64(v.Shape()[0])), nil

	case *container.Frame:
		return v.Index(), nil

	default:
		return nil, errors.NewInputType(op, "container must be of Series scitype")
	}
}
