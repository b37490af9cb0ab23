package container

// FrameList is a panel encoded as an ordered collection of single-index
// frames, one per instance. Instances may have ragged lengths.
type FrameList []*Frame

// Mtype returns MtypeFrameList.
func (fl FrameList) Mtype() Mtype { return MtypeFrameList }

// Scitype returns ScitypePanel.
func (fl FrameList) Scitype() Scitype { return ScitypePanel }

// Len returns the number of instances.
func (fl FrameList) Len() int { return len(fl) }

// Release releases the Arrow memory held by all member frames.
func (fl FrameList) Release() {
	for _, f := range fl {
		if f != nil {
			f.Release()
		}
	}
}
