package container

import (
	"fmt"
)

// Buffer is a flat numeric buffer in row-major order. One dimension is a
// bare series of timepoints, two dimensions is timepoints x variables,
// three dimensions is instances x variables x timepoints. It carries no
// intrinsic timestamps; its time index is a synthesized integer range.
type Buffer struct {
	data  []float64
	shape []int
}

// NewBuffer creates a buffer over data with the given shape. The product
// of the shape dimensions must equal len(data).
func NewBuffer(data []float64, shape ...int) (*Buffer, error) {
	if len(shape) == 0 || len(shape) > 3 {
		return nil, fmt.Errorf("buffer must have 1 to 3 dimensions, got %d", len(shape))
	}
	n := 1
	for _, d := range shape {
		if d < 0 {
			return nil, fmt.Errorf("negative dimension %d in shape %v", d, shape)
		}
		n *= d
	}
	if n != len(data) {
		return nil, fmt.Errorf("shape %v implies %d values, data has %d", shape, n, len(data))
	}
	return &Buffer{data: data, shape: append([]int(nil), shape...)}, nil
}

// Mtype returns MtypeBuffer3D for three-dimensional buffers, MtypeBuffer
// otherwise.
func (b *Buffer) Mtype() Mtype {
	if len(b.shape) == 3 {
		return MtypeBuffer3D
	}
	return MtypeBuffer
}

// Scitype returns the scitype the buffer realizes.
func (b *Buffer) Scitype() Scitype {
	return ScitypeOf(b.Mtype())
}

// Len returns the outer dimension size.
func (b *Buffer) Len() int {
	if len(b.data) == 0 {
		return 0
	}
	return b.shape[0]
}

// Dims returns the number of dimensions.
func (b *Buffer) Dims() int {
	return len(b.shape)
}

// Shape returns a copy of the buffer shape.
func (b *Buffer) Shape() []int {
	return append([]int(nil), b.shape...)
}

// Data returns the backing values.
func (b *Buffer) Data() []float64 {
	return b.data
}

// TimeLen returns the size of the time dimension: the last dimension for
// three-dimensional buffers, the first otherwise.
func (b *Buffer) TimeLen() int {
	if len(b.data) == 0 {
		return 0
	}
	if len(b.shape) == 3 {
		return b.shape[len(b.shape)-1]
	}
	return b.shape[0]
}

// SliceTime returns a new buffer restricted to time positions [lo, hi),
// preserving the non-time dimensions.
func (b *Buffer) SliceTime(lo, hi int) *Buffer {
	if len(b.shape) == 3 {
		ni, nv, nt := b.shape[0], b.shape[1], b.shape[2]
		out := make([]float64, 0, ni*nv*(hi-lo))
		for i := 0; i < ni; i++ {
			for v := 0; v < nv; v++ {
				base := (i*nv + v) * nt
				out = append(out, b.data[base+lo:base+hi]...)
			}
		}
		return &Buffer{data: out, shape: []int{ni, nv, hi - lo}}
	}
	if len(b.shape) == 2 {
		nv := b.shape[1]
		out := append([]float64(nil), b.data[lo*nv:hi*nv]...)
		return &Buffer{data: out, shape: []int{hi - lo, nv}}
	}
	out := append([]float64(nil), b.data[lo:hi]...)
	return &Buffer{data: out, shape: []int{hi - lo}}
}

// At returns the value at the row-major coordinates given, one per
// dimension.
func (b *Buffer) At(coords ...int) float64 {
	pos := 0
	for i, c := range coords {
		pos = pos*b.shape[i] + c
	}
	return b.data[pos]
}
