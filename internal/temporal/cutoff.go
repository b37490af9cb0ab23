package temporal

import (
	"github.com/d-vasek/timeframe/internal/config"
	"github.com/d-vasek/timeframe/internal/container"
	"github.com/d-vasek/timeframe/internal/errors"
	"github.com/d-vasek/timeframe/internal/index"
	"github.com/d-vasek/timeframe/internal/parallel"
)

// CutoffOptions configures cutoff computation.
type CutoffOptions struct {
	// Offset shifts the synthesized index of buffer encodings; it is the
	// cutoff origin of an untrained state. Ignored for encodings with an
	// inherent index. The zero value is the integer 0.
	Offset index.TimeValue
	// ReturnIndex requests a length-1 index wrapping the cutoff alongside
	// the scalar result.
	ReturnIndex bool
}

// CutoffResult holds the cutoff of a container. Value is always the scalar
// cutoff. Index is populated only when requested, and stays nil for empty
// containers: the uninitialized state returns the bare offset, never a
// wrapped index. The wrapped index carries the step/frequency metadata of
// the index it was carved from.
//
// For buffer encodings the scalar follows size semantics (offset plus time
// length) while the wrapped index holds the last valid position, one below
// the scalar.
type CutoffResult struct {
	Value index.TimeValue
	Index *index.TimeIndex
}

// Cutoff computes the latest time point of a container. Instances with
// ragged lengths contribute their own last time value and the furthest-
// advanced instance wins. Containers matching no known encoding surface
// UnsupportedTypeError.
func Cutoff(c container.Container, opts CutoffOptions) (CutoffResult, error) {
	const op = "Cutoff"

	if c == nil {
		return CutoffResult{}, errors.NewUnsupportedType(op, c)
	}

	if c.Len() == 0 {
		return CutoffResult{Value: opts.Offset}, nil
	}

	switch v := c.(type) {
	case *container.Buffer:
		if opts.Offset.Kind() != index.KindInt {
			return CutoffResult{}, errors.NewInputType(op, "buffer cutoff offset must be integer-kind")
		}
		var n int64
		if v.Dims() == 3 {
			n = int64(v.Shape()[2])
		} else {
			n = int64(v.Shape()[0])
		}
		res := CutoffResult{Value: index.Int(opts.Offset.Int() + n)}
		if opts.ReturnIndex {
			res.Index = index.NewRange(res.Value.Int()-1, 1)
		}
		return res, nil

	case *container.Frame:
		return wrap(v.Index(), v.Index().Last(), opts), nil

	case *container.NestedFrame:
		return nestedCutoff(v, opts), nil

	case *container.MultiFrame:
		return longCutoff(v, opts), nil

	case container.FrameList:
		var lasts []instanceLast
		for _, f := range v {
			if f == nil || f.Index().Len() == 0 {
				continue
			}
			lasts = append(lasts, instanceLast{val: f.Index().Last(), idx: f.Index()})
		}
		if len(lasts) == 0 {
			return CutoffResult{Value: opts.Offset}, nil
		}
		best := maxLast(lasts)
		return wrap(best.idx, best.val, opts), nil

	default:
		return CutoffResult{}, errors.NewUnsupportedType(op, c)
	}
}

// instanceLast is one instance's contribution to a panel cutoff: its last
// time value and the index it came from, kept so the winner's metadata
// survives wrapping.
type instanceLast struct {
	val index.TimeValue
	idx *index.TimeIndex
}

func maxLast(lasts []instanceLast) instanceLast {
	best := lasts[0]
	for _, l := range lasts[1:] {
		if l.val.Compare(best.val) > 0 {
			best = l
		}
	}
	return best
}

func wrap(ix *index.TimeIndex, val index.TimeValue, opts CutoffOptions) CutoffResult {
	res := CutoffResult{Value: val}
	if opts.ReturnIndex {
		res.Index = ix.Wrap(val)
	}
	return res
}

// nestedCutoff reduces over every cell of every nested column; instances
// may be ragged and any column may hold the furthest-advanced sub-series.
// Cells with empty indexes contribute nothing.
func nestedCutoff(nf *container.NestedFrame, opts CutoffOptions) CutoffResult {
	var lasts []instanceLast
	for _, col := range nf.Columns() {
		for _, cell := range col.Cells {
			if cell.Index.Len() == 0 {
				continue
			}
			lasts = append(lasts, instanceLast{val: cell.Index.Last(), idx: cell.Index})
		}
	}
	if len(lasts) == 0 {
		return CutoffResult{Value: opts.Offset}
	}
	best := maxLast(lasts)
	return wrap(best.idx, best.val, opts)
}

// longCutoff groups a long-format frame by its instance key levels and
// reduces the per-group last time values. Groups are scanned in parallel
// above the configured instance threshold.
func longCutoff(mf *container.MultiFrame, opts CutoffOptions) CutoffResult {
	insts := mf.Instances()
	times := mf.Times()

	last := func(_ int, inst container.InstanceRows) instanceLast {
		row := inst.Rows[len(inst.Rows)-1]
		return instanceLast{val: times.At(row), idx: times}
	}

	var lasts []instanceLast
	cfg := config.GetGlobalConfig()
	if len(insts) >= cfg.ParallelThreshold {
		wp := parallel.NewWorkerPool(cfg.WorkerPoolSize)
		defer wp.Close()
		lasts = parallel.ProcessIndexed(wp, insts, last)
	} else {
		lasts = make([]instanceLast, len(insts))
		for i, inst := range insts {
			lasts[i] = last(i, inst)
		}
	}

	best := maxLast(lasts)
	return wrap(best.idx, best.val, opts)
}
