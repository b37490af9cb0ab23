// Package registry implements the type-detection and conversion collaborator
// consumed by the windowing engine: scitype/mtype classification of a
// container, re-encoding between container encodings, and a content
// fingerprint used to confirm that conversion round trips are lossless.
package registry

import (
	"fmt"

	"github.com/d-vasek/timeframe/internal/config"
	"github.com/d-vasek/timeframe/internal/container"
	"github.com/d-vasek/timeframe/internal/errors"
	"github.com/d-vasek/timeframe/internal/index"
	"github.com/d-vasek/timeframe/internal/validation"
)

// Metadata describes the classification of a container.
type Metadata struct {
	Mtype     container.Mtype
	Scitype   container.Scitype
	Rows      int // outer length of the container
	Instances int // member series count; 1 for Series scitype
}

// Detect classifies a container into its mtype and scitype, returning an
// error of the input-type kind when the value is not a recognized encoding.
// With strict detection enabled in the global config, container shape and
// index ordering are validated as well.
func Detect(c container.Container) (Metadata, error) {
	const op = "Detect"

	if c == nil {
		return Metadata{}, errors.NewInputType(op, "container is nil")
	}

	strict := config.GetGlobalConfig().StrictDetection

	switch v := c.(type) {
	case *container.Buffer:
		md := Metadata{Mtype: v.Mtype(), Scitype: v.Scitype(), Rows: v.Len(), Instances: 1}
		if v.Dims() == 3 {
			md.Instances = v.Shape()[0]
		}
		return md, nil

	case *container.Frame:
		if strict {
			err := validation.All(
				validation.NewColumnLengthValidator(op, v),
				validation.NewMonotonicIndexValidator(op, v.Index()),
			)
			if err != nil {
				return Metadata{}, err
			}
		}
		return Metadata{Mtype: container.MtypeFrame, Scitype: container.ScitypeSeries, Rows: v.Len(), Instances: 1}, nil

	case *container.MultiFrame:
		insts := v.Instances()
		if strict {
			if err := validation.NewLongFormatValidator(op, v).Validate(); err != nil {
				return Metadata{}, err
			}
			for _, inst := range insts {
				for i := 1; i < len(inst.Rows); i++ {
					if v.Times().At(inst.Rows[i]).Compare(v.Times().At(inst.Rows[i-1])) < 0 {
						return Metadata{}, errors.NewInputType(op,
							fmt.Sprintf("instance %v time column is not monotonically ordered", inst.Key))
					}
				}
			}
		}
		return Metadata{Mtype: v.Mtype(), Scitype: v.Scitype(), Rows: v.Len(), Instances: len(insts)}, nil

	case *container.NestedFrame:
		if strict {
			if err := validation.NewNestedShapeValidator(op, v).Validate(); err != nil {
				return Metadata{}, err
			}
			var idxs []*index.TimeIndex
			for _, col := range v.Columns() {
				for _, cell := range col.Cells {
					idxs = append(idxs, cell.Index)
				}
			}
			err := validation.NewKindHomogeneityValidator(op, idxs...).Validate()
			if err != nil {
				return Metadata{}, err
			}
		}
		return Metadata{Mtype: container.MtypeNested, Scitype: container.ScitypePanel, Rows: v.Len(), Instances: v.Len()}, nil

	case container.FrameList:
		if strict {
			for i, f := range v {
				if f == nil {
					return Metadata{}, errors.NewInputType(op, fmt.Sprintf("member frame %d is nil", i))
				}
				if err := validation.NewMonotonicIndexValidator(op, f.Index()).Validate(); err != nil {
					return Metadata{}, err
				}
			}
		}
		return Metadata{Mtype: container.MtypeFrameList, Scitype: container.ScitypePanel, Rows: v.Len(), Instances: v.Len()}, nil

	default:
		return Metadata{}, errors.NewInputType(op,
			fmt.Sprintf("value of type %T is not a recognized container encoding", c))
	}
}
