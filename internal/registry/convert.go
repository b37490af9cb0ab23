package registry

import (
	"fmt"
	"strconv"
	"time"

	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/d-vasek/timeframe/internal/container"
	"github.com/d-vasek/timeframe/internal/errors"
	"github.com/d-vasek/timeframe/internal/index"
	"github.com/d-vasek/timeframe/internal/series"
)

// Convert re-encodes a container into the first feasible target mtype.
// A container already in one of the target encodings is returned unchanged.
// Table encodings convert through the long format; buffers convert only to
// themselves. Infeasible requests surface an input-type error.
func Convert(c container.Container, mem memory.Allocator, targets ...container.Mtype) (container.Container, error) {
	const op = "Convert"

	if c == nil {
		return nil, errors.NewInputType(op, "container is nil")
	}
	if len(targets) == 0 {
		return nil, errors.NewInputType(op, "no target encodings given")
	}

	cur := c.Mtype()
	for _, t := range targets {
		if t == cur {
			return c, nil
		}
	}

	for _, t := range targets {
		out, ok, err := convertTo(c, t, mem)
		if err != nil {
			return nil, err
		}
		if ok {
			return out, nil
		}
	}

	return nil, errors.NewInputType(op,
		fmt.Sprintf("cannot convert %s to any of %v", cur, targets))
}

func convertTo(c container.Container, target container.Mtype, mem memory.Allocator) (container.Container, bool, error) {
	// Buffers have no intrinsic index to carry across encodings, so they
	// only convert to themselves (handled by the identity fast path).
	switch c.(type) {
	case *container.Buffer:
		return nil, false, nil
	}
	if target == container.MtypeBuffer || target == container.MtypeBuffer3D {
		return nil, false, nil
	}

	mf, err := toLong(c, mem)
	if err != nil {
		return nil, false, err
	}
	out, ok, err := fromLong(mf, target, mem)
	if err != nil || !ok {
		return nil, ok, err
	}
	return out, true, nil
}

// toLong re-encodes any table container as a long-format MultiFrame.
func toLong(c container.Container, mem memory.Allocator) (*container.MultiFrame, error) {
	const op = "Convert"

	switch v := c.(type) {
	case *container.MultiFrame:
		return v, nil

	case *container.Frame:
		keys := make([]string, v.Len())
		for i := range keys {
			keys[i] = "0"
		}
		return container.NewMultiFrame([][]string{keys}, v.Index(), v.Columns()...), nil

	case container.FrameList:
		return framesToLong(frameListMembers(v), v, mem)

	case *container.NestedFrame:
		frames, err := nestedToFrames(v, mem)
		if err != nil {
			return nil, err
		}
		return framesToLong(frames, v, mem)

	default:
		return nil, errors.NewInputType(op,
			fmt.Sprintf("value of type %T is not a recognized container encoding", c))
	}
}

type instanceFrame struct {
	key   string
	frame *container.Frame
}

func frameListMembers(fl container.FrameList) []instanceFrame {
	out := make([]instanceFrame, len(fl))
	for i, f := range fl {
		out[i] = instanceFrame{key: strconv.Itoa(i), frame: f}
	}
	return out
}

// nestedToFrames unpacks one frame per instance out of the nested cells.
// Cell indexes of the same instance are assumed aligned across columns;
// the first column's cell provides the instance time index.
func nestedToFrames(nf *container.NestedFrame, mem memory.Allocator) ([]instanceFrame, error) {
	const op = "Convert"

	cols := nf.Columns()
	if len(cols) == 0 {
		return nil, errors.NewInputType(op, "nested frame has no columns")
	}
	out := make([]instanceFrame, nf.Len())
	for i := 0; i < nf.Len(); i++ {
		vcols := make([]*series.Column[float64], len(cols))
		var idx *index.TimeIndex
		for ci, col := range cols {
			cell := col.Cells[i]
			if cell == nil || cell.Index == nil {
				return nil, errors.NewInputType(op,
					fmt.Sprintf("nested column %q cell %d has no sub-series", col.Name, i))
			}
			if ci == 0 {
				idx = cell.Index
			}
			vcols[ci] = series.New(col.Name, cell.Values.Values(), mem)
		}
		out[i] = instanceFrame{key: strconv.Itoa(i), frame: container.NewFrame(idx, vcols...)}
	}
	return out, nil
}

// framesToLong concatenates per-instance frames into one long-format frame.
// src is only used for error context.
func framesToLong(frames []instanceFrame, src container.Container, mem memory.Allocator) (*container.MultiFrame, error) {
	const op = "Convert"

	if len(frames) == 0 {
		return container.NewMultiFrame([][]string{nil}, index.FromInts(nil)), nil
	}

	first := frames[0].frame
	if first == nil {
		return nil, errors.NewInputType(op, fmt.Sprintf("%s member frame 0 is nil", src.Mtype()))
	}
	width := first.Width()
	kind := first.Index().Kind()

	var keys []string
	var ints []int64
	var times []time.Time
	colVals := make([][]float64, width)

	for fi, inst := range frames {
		f := inst.frame
		if f == nil {
			return nil, errors.NewInputType(op, fmt.Sprintf("%s member frame %d is nil", src.Mtype(), fi))
		}
		if f.Width() != width {
			return nil, errors.NewInputType(op,
				fmt.Sprintf("member frame %d has %d columns, expected %d", fi, f.Width(), width))
		}
		if f.Index().Kind() != kind {
			return nil, errors.NewInputType(op,
				fmt.Sprintf("mixed index kinds: %s and %s", kind, f.Index().Kind()))
		}
		for r := 0; r < f.Len(); r++ {
			keys = append(keys, inst.key)
		}
		if kind == index.KindTime {
			times = append(times, f.Index().Times()...)
		} else {
			ints = append(ints, f.Index().Ints()...)
		}
		for ci, col := range f.Columns() {
			colVals[ci] = append(colVals[ci], col.Values()...)
		}
	}

	var idx *index.TimeIndex
	if kind == index.KindTime {
		idx = index.FromTimes(times).WithFreq(first.Index().Freq())
	} else {
		idx = index.FromInts(ints).WithStep(first.Index().Step())
	}

	cols := make([]*series.Column[float64], width)
	for ci := range cols {
		cols[ci] = series.New(first.Columns()[ci].Name(), colVals[ci], mem)
	}

	return container.NewMultiFrame([][]string{keys}, idx, cols...), nil
}

// fromLong re-encodes a long-format frame as the target encoding. The
// second return reports feasibility; hierarchies only unpack to themselves.
func fromLong(mf *container.MultiFrame, target container.Mtype, mem memory.Allocator) (container.Container, bool, error) {
	switch target {
	case container.MtypeMulti:
		return mf, mf.Levels() == 1, nil

	case container.MtypeHier:
		return mf, mf.Levels() > 1, nil

	case container.MtypeFrame:
		insts := mf.Instances()
		if len(insts) > 1 {
			return nil, false, nil
		}
		rows := allRows(mf.Len())
		return rowsToFrame(mf, rows, mem), true, nil

	case container.MtypeFrameList:
		if mf.Levels() != 1 {
			return nil, false, nil
		}
		insts := mf.Instances()
		fl := make(container.FrameList, len(insts))
		for i, inst := range insts {
			fl[i] = rowsToFrame(mf, inst.Rows, mem)
		}
		return fl, true, nil

	case container.MtypeNested:
		if mf.Levels() != 1 {
			return nil, false, nil
		}
		insts := mf.Instances()
		cols := make([]container.NestedColumn, len(mf.Columns()))
		for ci, col := range mf.Columns() {
			cols[ci] = container.NestedColumn{
				Name:  col.Name(),
				Cells: make([]*container.Cell, len(insts)),
			}
		}
		for i, inst := range insts {
			f := rowsToFrame(mf, inst.Rows, mem)
			for ci, col := range f.Columns() {
				cols[ci].Cells[i] = &container.Cell{Index: f.Index(), Values: col}
			}
		}
		return container.NewNestedFrame(index.NewRange(0, int64(len(insts))), cols...), true, nil

	default:
		return nil, false, nil
	}
}

func allRows(n int) []int {
	rows := make([]int, n)
	for i := range rows {
		rows[i] = i
	}
	return rows
}

// rowsToFrame extracts the given row positions of a long-format frame as a
// single-index frame, preserving index metadata.
func rowsToFrame(mf *container.MultiFrame, rows []int, mem memory.Allocator) *container.Frame {
	times := mf.Times()

	var idx *index.TimeIndex
	if times.Kind() == index.KindTime {
		vals := make([]time.Time, len(rows))
		for i, r := range rows {
			vals[i] = times.At(r).Time()
		}
		idx = index.FromTimes(vals).WithFreq(times.Freq())
	} else {
		vals := make([]int64, len(rows))
		for i, r := range rows {
			vals[i] = times.At(r).Int()
		}
		idx = index.FromInts(vals).WithStep(times.Step())
	}

	cols := make([]*series.Column[float64], len(mf.Columns()))
	for ci, col := range mf.Columns() {
		vals := make([]float64, len(rows))
		for i, r := range rows {
			vals[i] = col.Value(r)
		}
		cols[ci] = series.New(col.Name(), vals, mem)
	}

	return container.NewFrame(idx, cols...)
}
