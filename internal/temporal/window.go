package temporal

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/d-vasek/timeframe/internal/config"
	"github.com/d-vasek/timeframe/internal/container"
	"github.com/d-vasek/timeframe/internal/errors"
	"github.com/d-vasek/timeframe/internal/index"
	"github.com/d-vasek/timeframe/internal/registry"
)

// windowMtypes is the directly-sliceable encoding set GetWindow normalizes
// into before slicing.
var windowMtypes = []container.Mtype{
	container.MtypeFrame,
	container.MtypeMulti,
	container.MtypeHier,
	container.MtypeBuffer,
	container.MtypeBuffer3D,
}

// GetWindow slices a container to the trailing time window of the given
// length and lag: the entries whose time index lies in the half-open
// interval (cutoff - length - lag, cutoff - lag]. A nil length means a
// window of unbounded size and returns the container unchanged. The result
// is re-encoded to the input's mtype, so callers observe no representation
// change.
//
// Length and lag must be step spans for integer-indexed containers and
// duration spans for datetime-indexed ones; buffers are always
// integer-indexed.
func GetWindow(c container.Container, length *index.Span, lag index.Span, mem memory.Allocator) (container.Container, error) {
	const op = "GetWindow"

	if length == nil {
		return c, nil
	}

	md, err := registry.Detect(c)
	if err != nil {
		return nil, errors.NewInputTypeWrap(op,
			"container must be of Series, Panel, or Hierarchical scitype", err)
	}

	norm, err := registry.Convert(c, mem, windowMtypes...)
	if err != nil {
		return nil, errors.NewInputTypeWrap(op, "cannot normalize container for windowing", err)
	}

	var sliced container.Container
	switch v := norm.(type) {
	case *container.Buffer:
		sliced, err = sliceBuffer(v, *length, lag)
	case *container.Frame:
		sliced, err = sliceByIndex(v, v.Index(), *length, lag, mem)
	case *container.MultiFrame:
		sliced, err = sliceByIndex(v, v.Times(), *length, lag, mem)
	default:
		// The convert step only emits windowMtypes; reaching this branch
		// is an exhaustiveness defect, never an input problem.
		return nil, errors.NewInternal(op,
			fmt.Sprintf("normalization produced unhandled encoding %s", norm.Mtype()))
	}
	if err != nil {
		return nil, err
	}

	out, err := registry.Convert(sliced, mem, md.Mtype)
	if err != nil {
		return nil, errors.NewInputTypeWrap(op, "cannot convert window back to the input encoding", err)
	}

	if config.GetGlobalConfig().VerifyRoundTrip {
		if out.Mtype() != md.Mtype {
			return nil, errors.NewInputType(op,
				fmt.Sprintf("round trip produced %s, expected %s", out.Mtype(), md.Mtype))
		}
		if registry.Fingerprint(out) != registry.Fingerprint(sliced) {
			return nil, errors.NewInputType(op, "conversion round trip altered the window contents")
		}
	}

	return out, nil
}

// sliceBuffer windows a flat buffer in position-count terms along its time
// axis. A zero lag means the window reaches the end of the buffer; the
// upper bound never wraps to an empty slice.
func sliceBuffer(b *container.Buffer, length index.Span, lag index.Span) (container.Container, error) {
	const op = "GetWindow"

	if length.Kind() != index.KindInt {
		return nil, errors.NewInputType(op, "window length must be a step span for buffer encodings")
	}
	if !lag.IsZero() && lag.Kind() != index.KindInt {
		return nil, errors.NewInputType(op, "lag must be a step span for buffer encodings")
	}

	n := int64(b.TimeLen())
	start := n - length.Steps() - lag.Steps()
	if start < 0 {
		start = 0
	}
	end := n - lag.Steps()
	if end > n {
		end = n
	}
	if end < start {
		end = start
	}
	return b.SliceTime(int(start), int(end)), nil
}

// sliceByIndex windows a table encoding in index-value terms: direct
// comparison of every time value against the computed cutoff bounds.
// Integer and datetime indexes are handled uniformly since both support
// span subtraction and ordering.
func sliceByIndex(c container.Container, times *index.TimeIndex, length index.Span, lag index.Span, mem memory.Allocator) (container.Container, error) {
	const op = "GetWindow"

	mask := make([]bool, times.Len())
	if times.Len() > 0 {
		res, err := Cutoff(c, CutoffOptions{})
		if err != nil {
			return nil, err
		}

		winEnd, err := res.Value.Sub(lag)
		if err != nil {
			return nil, errors.NewInputTypeWrap(op, "lag span does not match the index kind", err)
		}
		winStart, err := winEnd.Sub(length)
		if err != nil {
			return nil, errors.NewInputTypeWrap(op, "window length span does not match the index kind", err)
		}

		for i := range mask {
			t := times.At(i)
			mask[i] = t.Compare(winStart) > 0 && t.Compare(winEnd) <= 0
		}
	}

	switch v := c.(type) {
	case *container.Frame:
		return v.SelectRows(mask, mem), nil
	case *container.MultiFrame:
		return v.SelectRows(mask, mem), nil
	default:
		return nil, errors.NewInternal(op,
			fmt.Sprintf("index slicing over unhandled encoding %s", c.Mtype()))
	}
}
