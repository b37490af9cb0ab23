package registry

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"

	"github.com/d-vasek/timeframe/internal/container"
	"github.com/d-vasek/timeframe/internal/index"
	"github.com/d-vasek/timeframe/internal/series"
)

// Fingerprint computes an encoding-independent digest of a container's
// content: per-instance time values, column names and column values, in
// instance order. Two containers holding the same series under different
// encodings digest to the same value, which is what lets the window
// extractor confirm that its convert-back round trip lost nothing.
// Instance labels are excluded since conversions may relabel instances.
func Fingerprint(c container.Container) uint64 {
	h := xxhash.New()

	switch v := c.(type) {
	case *container.Buffer:
		for _, d := range v.Shape() {
			writeUint64(h, uint64(d))
		}
		for _, f := range v.Data() {
			writeUint64(h, math.Float64bits(f))
		}

	case *container.Frame:
		writeFrame(h, v)

	case *container.MultiFrame:
		for _, inst := range v.Instances() {
			writeUint64(h, uint64(len(inst.Rows)))
			for _, r := range inst.Rows {
				writeTimeValue(h, v.Times().At(r))
			}
			for _, col := range v.Columns() {
				h.WriteString(col.Name())
				for _, r := range inst.Rows {
					writeUint64(h, math.Float64bits(col.Value(r)))
				}
			}
		}

	case *container.NestedFrame:
		cols := v.Columns()
		for i := 0; i < v.Len(); i++ {
			if len(cols) == 0 {
				continue
			}
			first := cols[0].Cells[i]
			if first.Index.Len() == 0 {
				continue
			}
			writeUint64(h, uint64(first.Index.Len()))
			writeIndex(h, first.Index)
			for _, col := range cols {
				h.WriteString(col.Name)
				writeColumn(h, col.Cells[i].Values)
			}
		}

	case container.FrameList:
		for _, f := range v {
			writeFrame(h, f)
		}
	}

	return h.Sum64()
}

func writeFrame(h *xxhash.Digest, f *container.Frame) {
	// An empty frame digests to nothing, matching the long format where an
	// instance with no rows simply never appears.
	if f.Len() == 0 {
		return
	}
	writeUint64(h, uint64(f.Len()))
	writeIndex(h, f.Index())
	for _, col := range f.Columns() {
		h.WriteString(col.Name())
		writeColumn(h, col)
	}
}

func writeIndex(h *xxhash.Digest, ix *index.TimeIndex) {
	for i := 0; i < ix.Len(); i++ {
		writeTimeValue(h, ix.At(i))
	}
}

func writeColumn(h *xxhash.Digest, col *series.Column[float64]) {
	for _, f := range col.Values() {
		writeUint64(h, math.Float64bits(f))
	}
}

func writeTimeValue(h *xxhash.Digest, v index.TimeValue) {
	if v.Kind() == index.KindTime {
		writeUint64(h, uint64(v.Time().UnixNano()))
		return
	}
	writeUint64(h, uint64(v.Int()))
}

func writeUint64(h *xxhash.Digest, v uint64) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	h.Write(buf[:])
}
