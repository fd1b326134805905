// Package model defines physical sensor-array geometries and their forward
// measurement model for direction-of-arrival processing: nominal element
// locations, optional physical perturbations (location, gain, phase, mutual
// coupling) and the steering-matrix computation that composes them.
//
// Array designs are immutable values. Every accessor that exposes array
// data returns an independent copy and no method mutates its receiver, so
// a single design can be shared freely across goroutines.
package model

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/signalsfoundry/arraymodel/logging"
)

// logger emits advisory warnings (e.g. the co-prime pair swap). It defaults
// to a no-op; embedding applications opt in via SetLogger.
var logger = logging.Noop()

// SetLogger installs the logger used for advisory warnings. Passing nil
// restores the silent default.
func SetLogger(l logging.Logger) {
	if l == nil {
		l = logging.Noop()
	}
	logger = l
}

// ArrayDesign describes a physical sensor array: nominal element locations,
// a display name, and an optional set of perturbations. The zero value is
// not usable; construct designs with NewArrayDesign or one of the geometry
// constructors.
type ArrayDesign struct {
	locations *mat.Dense // M×d, d ∈ {1,2,3}
	name      string
	perturb   Perturbations
}

// NewArrayDesign creates a custom array design from an M×d location matrix,
// d ∈ {1, 2, 3}. The locations and any perturbation parameters are copied;
// the caller keeps ownership of its inputs.
//
// Perturbations are validated eagerly: a nil set means no perturbation.
func NewArrayDesign(locations mat.Matrix, name string, perturb *Perturbations) (*ArrayDesign, error) {
	if locations == nil {
		return nil, fmt.Errorf("%w: nil location matrix", ErrInvalidGeometry)
	}
	m, d := locations.Dims()
	if m < 1 {
		return nil, fmt.Errorf("%w: array needs at least one element", ErrInvalidGeometry)
	}
	if d < 1 || d > 3 {
		return nil, fmt.Errorf("%w: array can only be 1D, 2D or 3D, got %d columns", ErrInvalidGeometry, d)
	}

	var p Perturbations
	if perturb != nil {
		if err := perturb.validate(m); err != nil {
			return nil, err
		}
		p = perturb.Clone()
	}

	return &ArrayDesign{
		locations: mat.DenseCopyOf(locations),
		name:      name,
		perturb:   p,
	}, nil
}

// NewArrayDesign1D creates an array design from a bare vector of positions
// along the x-axis; the vector becomes an M×1 column.
func NewArrayDesign1D(locations []float64, name string, perturb *Perturbations) (*ArrayDesign, error) {
	if len(locations) == 0 {
		return nil, fmt.Errorf("%w: array needs at least one element", ErrInvalidGeometry)
	}
	col := mat.NewDense(len(locations), 1, append([]float64(nil), locations...))
	return NewArrayDesign(col, name, perturb)
}

// Name returns the display name of this array.
func (a *ArrayDesign) Name() string { return a.name }

// Size returns the number of elements M.
func (a *ArrayDesign) Size() int {
	m, _ := a.locations.Dims()
	return m
}

// NDim returns the number of spatial dimensions of the nominal array.
// Perturbations do not affect this value.
func (a *ArrayDesign) NDim() int {
	_, d := a.locations.Dims()
	return d
}

// ActualNDim returns the number of spatial dimensions considering location
// errors: the wider of the nominal dimensionality and the offset
// dimensionality wins.
func (a *ArrayDesign) ActualNDim() int {
	d := a.NDim()
	if a.perturb.LocationErrors != nil {
		if _, c := a.perturb.LocationErrors.Offsets.Dims(); c > d {
			return c
		}
	}
	return d
}

// IsPerturbed reports whether any perturbation is attached.
func (a *ArrayDesign) IsPerturbed() bool { return !a.perturb.IsEmpty() }

// HasPerturbation reports whether the given perturbation kind is attached.
func (a *ArrayDesign) HasPerturbation(kind PerturbationKind) bool { return a.perturb.Has(kind) }

// PerturbationKnown reports whether the given perturbation kind is attached
// and its parameters are known in prior.
func (a *ArrayDesign) PerturbationKnown(kind PerturbationKind) bool { return a.perturb.Known(kind) }

// Perturbations returns a deep copy of the attached perturbation set.
func (a *ArrayDesign) Perturbations() Perturbations { return a.perturb.Clone() }

// ElementLocations returns a copy of the nominal M×d element locations.
func (a *ArrayDesign) ElementLocations() *mat.Dense {
	return mat.DenseCopyOf(a.locations)
}

// ActualElementLocations returns a copy of the element locations with any
// location-error perturbation applied. Without location errors it equals
// ElementLocations.
func (a *ArrayDesign) ActualElementLocations() *mat.Dense {
	if a.perturb.LocationErrors == nil {
		return a.ElementLocations()
	}
	return perturbedLocations(a.locations, a.perturb.LocationErrors.Offsets)
}

// perturbedLocations applies an M×d' offset matrix to M×d nominal
// locations. When d' <= d the offsets land in the first d' columns of the
// nominal locations; when d' > d the offsets raise the dimensionality of
// the array and the nominal locations land in the first d columns instead.
func perturbedLocations(nominal, offsets *mat.Dense) *mat.Dense {
	m, d := nominal.Dims()
	_, dp := offsets.Dims()

	if dp <= d {
		out := mat.DenseCopyOf(nominal)
		for i := 0; i < m; i++ {
			for j := 0; j < dp; j++ {
				out.Set(i, j, out.At(i, j)+offsets.At(i, j))
			}
		}
		return out
	}

	out := mat.DenseCopyOf(offsets)
	for i := 0; i < m; i++ {
		for j := 0; j < d; j++ {
			out.Set(i, j, out.At(i, j)+nominal.At(i, j))
		}
	}
	return out
}

// PerturbedCopy returns a new design sharing this design's nominal
// locations, with every non-nil slot of overrides replacing the stored
// perturbation of the same kind. The merged set is revalidated. An empty
// newName keeps the receiver's name. The receiver is never modified.
func (a *ArrayDesign) PerturbedCopy(overrides Perturbations, newName string) (*ArrayDesign, error) {
	merged := a.perturb.merged(overrides)
	if err := merged.validate(a.Size()); err != nil {
		return nil, err
	}
	if newName == "" {
		newName = a.name
	}
	return &ArrayDesign{
		locations: a.locations,
		name:      newName,
		perturb:   merged,
	}, nil
}

// PerturbationFreeCopy returns a copy of this design with an empty
// perturbation set. An empty newName keeps the receiver's name.
func (a *ArrayDesign) PerturbationFreeCopy(newName string) *ArrayDesign {
	if newName == "" {
		newName = a.name
	}
	return &ArrayDesign{
		locations: a.locations,
		name:      newName,
	}
}
