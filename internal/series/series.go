// Package series provides the Arrow-backed value column used by all table
// encodings. Columns are immutable; slicing and selection produce new
// columns over new or shared Arrow buffers.
package series

import (
	"fmt"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
)

// Column represents a typed value column with an Apache Arrow backend
type Column[T any] struct {
	name  string
	array arrow.Array
}

// New creates a new Column from a slice of values
func New[T any](name string, values []T, mem memory.Allocator) *Column[T] {
	if mem == nil {
		mem = memory.NewGoAllocator()
	}

	var arr arrow.Array

	switch v := any(values).(type) {
	case []float64:
		builder := array.NewFloat64Builder(mem)
		defer builder.Release()
		for _, val := range v {
			builder.Append(val)
		}
		arr = builder.NewArray()
	case []int64:
		builder := array.NewInt64Builder(mem)
		defer builder.Release()
		for _, val := range v {
			builder.Append(val)
		}
		arr = builder.NewArray()
	case []string:
		builder := array.NewStringBuilder(mem)
		defer builder.Release()
		for _, val := range v {
			builder.Append(val)
		}
		arr = builder.NewArray()
	case []bool:
		builder := array.NewBooleanBuilder(mem)
		defer builder.Release()
		for _, val := range v {
			builder.Append(val)
		}
		arr = builder.NewArray()
	case []time.Time:
		builder := array.NewTimestampBuilder(mem, &arrow.TimestampType{Unit: arrow.Nanosecond})
		defer builder.Release()
		for _, val := range v {
			builder.Append(arrow.Timestamp(val.UnixNano()))
		}
		arr = builder.NewArray()
	default:
		panic(fmt.Sprintf("unsupported type: %T", values))
	}

	return &Column[T]{
		name:  name,
		array: arr,
	}
}

// Name returns the column name
func (c *Column[T]) Name() string {
	return c.name
}

// Len returns the length of the column
func (c *Column[T]) Len() int {
	return c.array.Len()
}

// Values returns the data as a Go slice
func (c *Column[T]) Values() []T {
	result := make([]T, c.array.Len())

	switch arr := c.array.(type) {
	case *array.Float64:
		if values, ok := any(result).([]float64); ok {
			for i := 0; i < arr.Len(); i++ {
				values[i] = arr.Value(i)
			}
		}
	case *array.Int64:
		if values, ok := any(result).([]int64); ok {
			for i := 0; i < arr.Len(); i++ {
				values[i] = arr.Value(i)
			}
		}
	case *array.String:
		if values, ok := any(result).([]string); ok {
			for i := 0; i < arr.Len(); i++ {
				values[i] = arr.Value(i)
			}
		}
	case *array.Boolean:
		if values, ok := any(result).([]bool); ok {
			for i := 0; i < arr.Len(); i++ {
				values[i] = arr.Value(i)
			}
		}
	case *array.Timestamp:
		if values, ok := any(result).([]time.Time); ok {
			for i := 0; i < arr.Len(); i++ {
				values[i] = time.Unix(0, int64(arr.Value(i))).UTC()
			}
		}
	default:
		panic(fmt.Sprintf("unsupported array type: %T", arr))
	}

	return result
}

// Value returns the value at the given position
func (c *Column[T]) Value(i int) T {
	var result T
	if i < 0 || i >= c.array.Len() {
		return result
	}

	switch arr := c.array.(type) {
	case *array.Float64:
		if v, ok := any(&result).(*float64); ok {
			*v = arr.Value(i)
		}
	case *array.Int64:
		if v, ok := any(&result).(*int64); ok {
			*v = arr.Value(i)
		}
	case *array.String:
		if v, ok := any(&result).(*string); ok {
			*v = arr.Value(i)
		}
	case *array.Boolean:
		if v, ok := any(&result).(*bool); ok {
			*v = arr.Value(i)
		}
	case *array.Timestamp:
		if v, ok := any(&result).(*time.Time); ok {
			*v = time.Unix(0, int64(arr.Value(i))).UTC()
		}
	}

	return result
}

// DataType returns the Arrow data type
func (c *Column[T]) DataType() arrow.DataType {
	return c.array.DataType()
}

// IsNull checks if the value at position i is null
func (c *Column[T]) IsNull(i int) bool {
	return c.array.IsNull(i)
}

// Slice returns a new column over positions [lo, hi), sharing the
// underlying Arrow buffers.
func (c *Column[T]) Slice(lo, hi int) *Column[T] {
	return &Column[T]{
		name:  c.name,
		array: array.NewSlice(c.array, int64(lo), int64(hi)),
	}
}

// Select returns a new column holding the positions where mask is true.
// The mask length must equal the column length.
func (c *Column[T]) Select(mask []bool, mem memory.Allocator) *Column[T] {
	vals := c.Values()
	kept := make([]T, 0, len(vals))
	for i, keep := range mask {
		if keep {
			kept = append(kept, vals[i])
		}
	}
	return New(c.name, kept, mem)
}

// String returns a string representation of the column
func (c *Column[T]) String() string {
	return fmt.Sprintf("Column[%s]: %s (len=%d)", c.array.DataType(), c.name, c.Len())
}

// Array returns the underlying Arrow array (retains a reference)
func (c *Column[T]) Array() arrow.Array {
	if c.array != nil {
		c.array.Retain()
		return c.array
	}
	return nil
}

// Release releases the underlying Arrow memory
func (c *Column[T]) Release() {
	if c.array != nil {
		c.array.Release()
	}
}
