package container

import (
	"github.com/d-vasek/timeframe/internal/index"
	"github.com/d-vasek/timeframe/internal/series"
)

// Cell is one nested sub-series: its own time index plus values.
type Cell struct {
	Index  *index.TimeIndex
	Values *series.Column[float64]
}

// NestedColumn is a named column whose cells each hold a complete
// sub-series.
type NestedColumn struct {
	Name  string
	Cells []*Cell
}

// NestedFrame is a panel encoded as an instance-indexed table with nested
// cells: the outer index enumerates instances, and every cell of every
// column is a full sub-series. Instances may have ragged lengths.
type NestedFrame struct {
	idx  *index.TimeIndex
	cols []NestedColumn
}

// NewNestedFrame creates a nested frame over the instance index idx.
// Every column is assumed to hold one cell per instance.
func NewNestedFrame(idx *index.TimeIndex, cols ...NestedColumn) *NestedFrame {
	return &NestedFrame{idx: idx, cols: cols}
}

// Mtype returns MtypeNested.
func (nf *NestedFrame) Mtype() Mtype { return MtypeNested }

// Scitype returns ScitypePanel.
func (nf *NestedFrame) Scitype() Scitype { return ScitypePanel }

// Len returns the number of instances.
func (nf *NestedFrame) Len() int {
	if nf.idx == nil {
		return 0
	}
	return nf.idx.Len()
}

// InstanceIndex returns the outer (instance) index.
func (nf *NestedFrame) InstanceIndex() *index.TimeIndex { return nf.idx }

// Columns returns the nested columns in order.
func (nf *NestedFrame) Columns() []NestedColumn { return nf.cols }

// FirstCell returns the first cell of the first column, or nil when the
// frame has no columns or no instances.
func (nf *NestedFrame) FirstCell() *Cell {
	if len(nf.cols) == 0 || len(nf.cols[0].Cells) == 0 {
		return nil
	}
	return nf.cols[0].Cells[0]
}

// Release releases the Arrow memory held by all cells.
func (nf *NestedFrame) Release() {
	for _, col := range nf.cols {
		for _, cell := range col.Cells {
			if cell != nil && cell.Values != nil {
				cell.Values.Release()
			}
		}
	}
}
