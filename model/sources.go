package model

import "gonum.org/v1/gonum/mat"

// SourcePlacement produces phase-delay terms for a set of source directions
// observed by sensors at given locations. Implementations define the DOA
// parameterization (far-field 1D, azimuth/elevation, near-field, ...); this
// package only consumes the resulting matrices.
type SourcePlacement interface {
	// Size returns the number of source directions K.
	Size() int

	// PhaseDelayMatrix returns the M×K phase-delay matrix for sensors at
	// the given M×d locations and the given carrier wavelength. The
	// steering matrix is the elementwise complex exponential of this
	// matrix.
	PhaseDelayMatrix(locations *mat.Dense, wavelength float64) (*mat.Dense, error)

	// PhaseDelayMatrixDeriv additionally returns one M×K derivative matrix
	// per DOA component, aligned by position with the DOA parameter list.
	// Implementations must reject the request for DOA parameterizations
	// that are not one-dimensional.
	PhaseDelayMatrixDeriv(locations *mat.Dense, wavelength float64) (*mat.Dense, []*mat.Dense, error)
}

// SignalSource produces signal snapshots. Emit returns a matrix with a
// fixed row dimension (the signal dimension) and n columns, one per
// snapshot.
type SignalSource interface {
	Emit(nSnapshots int) *mat.CDense
}
