// Package container defines the supported time-series container encodings
// and their common capability surface. Each encoding is a concrete variant
// carrying its own accessors for index, rows and slicing; dispatch over
// containers is a single type switch on the closed variant set.
package container

// Mtype tags the concrete physical encoding of a container.
type Mtype int

const (
	// MtypeBuffer is a flat numeric buffer with 1 or 2 dimensions
	// (time, or time x variables); the time index is an implicit range.
	MtypeBuffer Mtype = iota
	// MtypeBuffer3D is a flat numeric buffer with 3 dimensions
	// (instances x variables x timepoints).
	MtypeBuffer3D
	// MtypeFrame is a table with a single time index and value columns.
	MtypeFrame
	// MtypeMulti is a long-format table with one instance key level plus
	// a time column.
	MtypeMulti
	// MtypeHier is a long-format table with two or more instance key
	// levels (hierarchy nodes) plus a time column.
	MtypeHier
	// MtypeNested is an instance-indexed table whose cells hold complete
	// sub-series.
	MtypeNested
	// MtypeFrameList is an ordered collection of single-index frames, one
	// per instance.
	MtypeFrameList
)

// String returns the mtype tag name.
func (m Mtype) String() string {
	switch m {
	case MtypeBuffer:
		return "buffer"
	case MtypeBuffer3D:
		return "buffer3d"
	case MtypeFrame:
		return "frame"
	case MtypeMulti:
		return "multi"
	case MtypeHier:
		return "hier"
	case MtypeNested:
		return "nested"
	case MtypeFrameList:
		return "framelist"
	default:
		return "unknown"
	}
}

// Scitype tags the abstract semantic category a container realizes.
type Scitype int

const (
	// ScitypeSeries is a single time series.
	ScitypeSeries Scitype = iota
	// ScitypePanel is a flat collection of instance series.
	ScitypePanel
	// ScitypeHierarchical is a panel with a multi-level instance hierarchy.
	ScitypeHierarchical
)

// String returns the scitype name.
func (s Scitype) String() string {
	switch s {
	case ScitypeSeries:
		return "Series"
	case ScitypePanel:
		return "Panel"
	case ScitypeHierarchical:
		return "Hierarchical"
	default:
		return "unknown"
	}
}

// ScitypeOf maps an encoding to the scitype it realizes.
func ScitypeOf(m Mtype) Scitype {
	switch m {
	case MtypeBuffer, MtypeFrame:
		return ScitypeSeries
	case MtypeHier:
		return ScitypeHierarchical
	default:
		return ScitypePanel
	}
}

// Container is the capability surface shared by all encodings. Len is the
// outer length of the container (timepoints for series-shaped encodings,
// instances for collection-shaped ones); a Len of 0 is the uninitialized
// state every operation must tolerate.
type Container interface {
	Mtype() Mtype
	Scitype() Scitype
	Len() int
}
