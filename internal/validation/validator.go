// Package validation provides shape validators for container encodings.
// This package implements a small validation framework with reusable
// validators for the invariants the windowing engine assumes: monotonic
// time indexes, consistent column lengths, and consistent key levels.
// It is consumed by scitype detection; the engine itself never validates.
package validation

import (
	"fmt"

	"github.com/d-vasek/timeframe/internal/container"
	"github.com/d-vasek/timeframe/internal/errors"
	"github.com/d-vasek/timeframe/internal/index"
)

// Validator interface for container validation
type Validator interface {
	Validate() error
}

// All runs every validator in order and returns the first failure.
func All(validators ...Validator) error {
	for _, v := range validators {
		if err := v.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// MonotonicIndexValidator checks that a time index is in non-decreasing
// order.
type MonotonicIndexValidator struct {
	idx *index.TimeIndex
	op  string
}

// NewMonotonicIndexValidator creates a validator for index ordering.
func NewMonotonicIndexValidator(op string, idx *index.TimeIndex) *MonotonicIndexValidator {
	return &MonotonicIndexValidator{idx: idx, op: op}
}

// Validate checks index ordering.
func (v *MonotonicIndexValidator) Validate() error {
	if v.idx == nil {
		return nil
	}
	if !v.idx.IsMonotonic() {
		return errors.NewInputType(v.op, "time index is not monotonically ordered")
	}
	return nil
}

// ColumnLengthValidator checks that every value column of a frame matches
// its index length.
type ColumnLengthValidator struct {
	frame *container.Frame
	op    string
}

// NewColumnLengthValidator creates a validator for frame column lengths.
func NewColumnLengthValidator(op string, frame *container.Frame) *ColumnLengthValidator {
	return &ColumnLengthValidator{frame: frame, op: op}
}

// Validate checks column lengths against the index.
func (v *ColumnLengthValidator) Validate() error {
	n := v.frame.Len()
	for _, col := range v.frame.Columns() {
		if col.Len() != n {
			return errors.NewInputType(v.op,
				fmt.Sprintf("column %q has %d rows, index has %d", col.Name(), col.Len(), n))
		}
	}
	return nil
}

// LongFormatValidator checks that every key level and value column of a
// long-format frame matches the time column length.
type LongFormatValidator struct {
	mf *container.MultiFrame
	op string
}

// NewLongFormatValidator creates a validator for long-format shape.
func NewLongFormatValidator(op string, mf *container.MultiFrame) *LongFormatValidator {
	return &LongFormatValidator{mf: mf, op: op}
}

// Validate checks key level and column lengths against the time column.
func (v *LongFormatValidator) Validate() error {
	n := v.mf.Len()
	for level, keys := range v.mf.Keys() {
		if len(keys) != n {
			return errors.NewInputType(v.op,
				fmt.Sprintf("key level %d has %d rows, time column has %d", level, len(keys), n))
		}
	}
	for _, col := range v.mf.Columns() {
		if col.Len() != n {
			return errors.NewInputType(v.op,
				fmt.Sprintf("column %q has %d rows, time column has %d", col.Name(), col.Len(), n))
		}
	}
	return nil
}

// NestedShapeValidator checks that every nested column holds one cell per
// instance and that no cell is missing its index.
type NestedShapeValidator struct {
	nf *container.NestedFrame
	op string
}

// NewNestedShapeValidator creates a validator for nested-cell shape.
func NewNestedShapeValidator(op string, nf *container.NestedFrame) *NestedShapeValidator {
	return &NestedShapeValidator{nf: nf, op: op}
}

// Validate checks cell counts and cell indexes.
func (v *NestedShapeValidator) Validate() error {
	n := v.nf.Len()
	for _, col := range v.nf.Columns() {
		if len(col.Cells) != n {
			return errors.NewInputType(v.op,
				fmt.Sprintf("nested column %q has %d cells, index has %d instances", col.Name, len(col.Cells), n))
		}
		for i, cell := range col.Cells {
			if cell == nil || cell.Index == nil {
				return errors.NewInputType(v.op,
					fmt.Sprintf("nested column %q cell %d has no sub-series index", col.Name, i))
			}
		}
	}
	return nil
}

// KindHomogeneityValidator checks that a set of indexes share one value
// kind (all-integer or all-datetime, never mixed).
type KindHomogeneityValidator struct {
	idxs []*index.TimeIndex
	op   string
}

// NewKindHomogeneityValidator creates a validator for index kind
// consistency across instances.
func NewKindHomogeneityValidator(op string, idxs ...*index.TimeIndex) *KindHomogeneityValidator {
	return &KindHomogeneityValidator{idxs: idxs, op: op}
}

// Validate checks kind consistency.
func (v *KindHomogeneityValidator) Validate() error {
	var kind index.Kind
	first := true
	for _, ix := range v.idxs {
		if ix == nil {
			continue
		}
		if first {
			kind = ix.Kind()
			first = false
			continue
		}
		if ix.Kind() != kind {
			return errors.NewInputType(v.op,
				fmt.Sprintf("mixed index kinds: %s and %s", kind, ix.Kind()))
		}
	}
	return nil
}
