package model

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// GridBasedArrayDesign is an array design whose element locations are
// integer multiples of a common base spacing d0 along the x-axis. The grid
// indices fully describe the geometry, which sparse-array processing
// (difference co-arrays, spatial smoothing) relies on.
type GridBasedArrayDesign struct {
	ArrayDesign
	indices []int
	d0      float64
}

// NewGridBasedArrayDesign creates an array whose i-th element sits at
// indices[i]*d0 on the x-axis.
func NewGridBasedArrayDesign(indices []int, d0 float64, name string, perturb *Perturbations) (*GridBasedArrayDesign, error) {
	if len(indices) == 0 {
		return nil, fmt.Errorf("%w: array needs at least one element", ErrInvalidGeometry)
	}

	locations := mat.NewDense(len(indices), 1, nil)
	for i, idx := range indices {
		locations.Set(i, 0, float64(idx)*d0)
	}
	base, err := NewArrayDesign(locations, name, perturb)
	if err != nil {
		return nil, err
	}

	return &GridBasedArrayDesign{
		ArrayDesign: *base,
		indices:     append([]int(nil), indices...),
		d0:          d0,
	}, nil
}

// ElementIndices returns a copy of the grid indices of the elements.
func (g *GridBasedArrayDesign) ElementIndices() []int {
	return append([]int(nil), g.indices...)
}

// BaseSpacing returns the base inter-element spacing d0.
func (g *GridBasedArrayDesign) BaseSpacing() float64 { return g.d0 }
