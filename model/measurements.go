package model

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Measurements synthesizes snapshot data under the narrowband model
//
//	Y = A*S + N,
//
// where A is the steering matrix with all stored perturbations applied, S
// are source-signal snapshots and N are noise snapshots, both drawn from
// the supplied signal sources.
func (a *ArrayDesign) Measurements(sources SourcePlacement, wavelength float64, nSnapshots int, sourceSignal, noiseSignal SignalSource) (*mat.CDense, error) {
	y, _, err := a.measurements(sources, wavelength, nSnapshots, sourceSignal, noiseSignal, false)
	return y, err
}

// MeasurementsWithCovariance additionally returns the sample covariance
//
//	R = Y*Yᴴ / nSnapshots.
//
// No further normalization is applied.
func (a *ArrayDesign) MeasurementsWithCovariance(sources SourcePlacement, wavelength float64, nSnapshots int, sourceSignal, noiseSignal SignalSource) (*mat.CDense, *mat.CDense, error) {
	return a.measurements(sources, wavelength, nSnapshots, sourceSignal, noiseSignal, true)
}

func (a *ArrayDesign) measurements(sources SourcePlacement, wavelength float64, nSnapshots int, sourceSignal, noiseSignal SignalSource, withCov bool) (*mat.CDense, *mat.CDense, error) {
	if nSnapshots < 1 {
		return nil, nil, fmt.Errorf("%w: snapshot count must be positive, got %d", ErrInvalidArgument, nSnapshots)
	}

	A, err := a.SteeringMatrix(sources, wavelength, PerturbationsAll)
	if err != nil {
		return nil, nil, err
	}

	S := sourceSignal.Emit(nSnapshots)
	N := noiseSignal.Emit(nSnapshots)

	m, _ := A.Dims()
	Y := mat.NewCDense(m, nSnapshots, nil)
	Y.Mul(A, S)
	for i := 0; i < m; i++ {
		for j := 0; j < nSnapshots; j++ {
			Y.Set(i, j, Y.At(i, j)+N.At(i, j))
		}
	}

	if !withCov {
		return Y, nil, nil
	}

	R := mat.NewCDense(m, m, nil)
	R.Mul(Y, Y.H())
	inv := complex(1/float64(nSnapshots), 0)
	for i := 0; i < m; i++ {
		for j := 0; j < m; j++ {
			R.Set(i, j, inv*R.At(i, j))
		}
	}
	return Y, R, nil
}
