package model

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// PerturbationKind identifies one of the four recognised physical
// perturbation models.
type PerturbationKind int

const (
	PerturbationLocationErrors PerturbationKind = iota
	PerturbationGainErrors
	PerturbationPhaseErrors
	PerturbationMutualCoupling
)

func (k PerturbationKind) String() string {
	switch k {
	case PerturbationLocationErrors:
		return "location_errors"
	case PerturbationGainErrors:
		return "gain_errors"
	case PerturbationPhaseErrors:
		return "phase_errors"
	case PerturbationMutualCoupling:
		return "mutual_coupling"
	default:
		return "unknown"
	}
}

// LocationErrors is an additive offset to the nominal element locations.
// Offsets is M×d'; d' may differ from the nominal dimensionality, in which
// case the wider of the two wins (a linear array can pick up offsets along
// both x and y).
type LocationErrors struct {
	Offsets *mat.Dense
	Known   bool
}

// GainErrors holds relative per-element gain deltas: the actual gain of
// element i is 1 + Deltas[i]. A single-element slice broadcasts to every
// element.
type GainErrors struct {
	Deltas []float64
	Known  bool
}

// PhaseErrors holds additive per-element phases in radians, applied as unit
// phasors. A single-element slice broadcasts to every element.
type PhaseErrors struct {
	Radians []float64
	Known   bool
}

// MutualCoupling is an M×M coupling matrix applied by left-multiplying the
// steering matrix.
type MutualCoupling struct {
	Matrix *mat.CDense
	Known  bool
}

// Perturbations collects the perturbation models attached to an array
// design. Each slot is optional; a nil field means "no such perturbation".
// The Known flag on each entry records whether the parameters are known in
// prior, which estimators use to decide what they may compensate for.
type Perturbations struct {
	LocationErrors *LocationErrors
	GainErrors     *GainErrors
	PhaseErrors    *PhaseErrors
	MutualCoupling *MutualCoupling
}

// PerturbationFilter selects which stored perturbations a steering-matrix
// computation takes into account.
type PerturbationFilter string

const (
	// PerturbationsAll applies every stored perturbation.
	PerturbationsAll PerturbationFilter = "all"
	// PerturbationsKnown applies only perturbations flagged as known in
	// prior.
	PerturbationsKnown PerturbationFilter = "known"
	// PerturbationsNone ignores all stored perturbations.
	PerturbationsNone PerturbationFilter = "none"
)

// IsEmpty reports whether no perturbation is set.
func (p Perturbations) IsEmpty() bool {
	return p.LocationErrors == nil && p.GainErrors == nil &&
		p.PhaseErrors == nil && p.MutualCoupling == nil
}

// Has reports whether the given perturbation kind is set.
func (p Perturbations) Has(kind PerturbationKind) bool {
	switch kind {
	case PerturbationLocationErrors:
		return p.LocationErrors != nil
	case PerturbationGainErrors:
		return p.GainErrors != nil
	case PerturbationPhaseErrors:
		return p.PhaseErrors != nil
	case PerturbationMutualCoupling:
		return p.MutualCoupling != nil
	default:
		return false
	}
}

// Known reports whether the given perturbation kind is set and flagged as
// known in prior.
func (p Perturbations) Known(kind PerturbationKind) bool {
	switch kind {
	case PerturbationLocationErrors:
		return p.LocationErrors != nil && p.LocationErrors.Known
	case PerturbationGainErrors:
		return p.GainErrors != nil && p.GainErrors.Known
	case PerturbationPhaseErrors:
		return p.PhaseErrors != nil && p.PhaseErrors.Known
	case PerturbationMutualCoupling:
		return p.MutualCoupling != nil && p.MutualCoupling.Known
	default:
		return false
	}
}

// Clone returns a deep copy: the returned set shares no parameter storage
// with the receiver.
func (p Perturbations) Clone() Perturbations {
	var out Perturbations
	if p.LocationErrors != nil {
		le := &LocationErrors{Known: p.LocationErrors.Known}
		if p.LocationErrors.Offsets != nil {
			le.Offsets = mat.DenseCopyOf(p.LocationErrors.Offsets)
		}
		out.LocationErrors = le
	}
	if p.GainErrors != nil {
		out.GainErrors = &GainErrors{
			Deltas: append([]float64(nil), p.GainErrors.Deltas...),
			Known:  p.GainErrors.Known,
		}
	}
	if p.PhaseErrors != nil {
		out.PhaseErrors = &PhaseErrors{
			Radians: append([]float64(nil), p.PhaseErrors.Radians...),
			Known:   p.PhaseErrors.Known,
		}
	}
	if p.MutualCoupling != nil {
		out.MutualCoupling = &MutualCoupling{
			Matrix: cloneCDense(p.MutualCoupling.Matrix),
			Known:  p.MutualCoupling.Known,
		}
	}
	return out
}

// merged returns a copy of p with every non-nil slot of overrides replacing
// the corresponding slot of p.
func (p Perturbations) merged(overrides Perturbations) Perturbations {
	out := p.Clone()
	o := overrides.Clone()
	if o.LocationErrors != nil {
		out.LocationErrors = o.LocationErrors
	}
	if o.GainErrors != nil {
		out.GainErrors = o.GainErrors
	}
	if o.PhaseErrors != nil {
		out.PhaseErrors = o.PhaseErrors
	}
	if o.MutualCoupling != nil {
		out.MutualCoupling = o.MutualCoupling
	}
	return out
}

// filtered returns the view of p selected by the filter keyword. The
// returned set shares parameter storage with p; callers must treat it as
// read-only.
func (p Perturbations) filtered(filter PerturbationFilter) (Perturbations, error) {
	switch filter {
	case PerturbationsAll:
		return p, nil
	case PerturbationsNone:
		return Perturbations{}, nil
	case PerturbationsKnown:
		var out Perturbations
		if p.LocationErrors != nil && p.LocationErrors.Known {
			out.LocationErrors = p.LocationErrors
		}
		if p.GainErrors != nil && p.GainErrors.Known {
			out.GainErrors = p.GainErrors
		}
		if p.PhaseErrors != nil && p.PhaseErrors.Known {
			out.PhaseErrors = p.PhaseErrors
		}
		if p.MutualCoupling != nil && p.MutualCoupling.Known {
			out.MutualCoupling = p.MutualCoupling
		}
		return out, nil
	default:
		return Perturbations{}, fmt.Errorf("%w: perturbation filter must be %q, %q or %q, got %q",
			ErrInvalidArgument, PerturbationsAll, PerturbationsKnown, PerturbationsNone, filter)
	}
}

// validate checks every set slot against an array of m elements. Validation
// is eager: it runs at design construction and at every perturbed-copy
// derivation, never at computation time.
func (p Perturbations) validate(m int) error {
	if p.LocationErrors != nil {
		le := p.LocationErrors
		if le.Offsets == nil {
			return fmt.Errorf("%w: location errors require an offset matrix", ErrInvalidPerturbation)
		}
		r, c := le.Offsets.Dims()
		if r != m {
			return fmt.Errorf("%w: location error offsets have %d rows for a %d-element array",
				ErrInvalidPerturbation, r, m)
		}
		if c < 1 || c > 3 {
			return fmt.Errorf("%w: location error offsets must have 1 to 3 columns, got %d",
				ErrInvalidPerturbation, c)
		}
	}
	if p.GainErrors != nil {
		if n := len(p.GainErrors.Deltas); n != m && n != 1 {
			return fmt.Errorf("%w: gain errors have %d entries for a %d-element array",
				ErrInvalidPerturbation, n, m)
		}
	}
	if p.PhaseErrors != nil {
		if n := len(p.PhaseErrors.Radians); n != m && n != 1 {
			return fmt.Errorf("%w: phase errors have %d entries for a %d-element array",
				ErrInvalidPerturbation, n, m)
		}
	}
	if p.MutualCoupling != nil {
		if p.MutualCoupling.Matrix == nil {
			return fmt.Errorf("%w: mutual coupling requires a matrix", ErrInvalidPerturbation)
		}
		r, c := p.MutualCoupling.Matrix.Dims()
		if r != m || c != m {
			return fmt.Errorf("%w: mutual coupling matrix is %dx%d for a %d-element array",
				ErrInvalidPerturbation, r, c, m)
		}
	}
	return nil
}

func cloneCDense(a *mat.CDense) *mat.CDense {
	if a == nil {
		return nil
	}
	r, c := a.Dims()
	out := mat.NewCDense(r, c, nil)
	out.Copy(a)
	return out
}
