package model

import (
	"math/cmplx"

	"gonum.org/v1/gonum/mat"
)

// SteeringMatrix computes the M×K complex steering matrix for the given
// source directions and carrier wavelength. The filter keyword selects
// which of the stored perturbations are applied; estimators that assume an
// ideal array pass PerturbationsNone, estimators that compensate for known
// calibration errors pass PerturbationsKnown.
//
// Perturbations compose in a fixed physical order: location errors move the
// elements before the phase delays are evaluated; gain and phase errors
// scale the element responses; mutual coupling left-multiplies the result
// last.
func (a *ArrayDesign) SteeringMatrix(sources SourcePlacement, wavelength float64, filter PerturbationFilter) (*mat.CDense, error) {
	A, _, err := a.steering(sources, wavelength, filter, false)
	return A, err
}

// SteeringMatrixDeriv computes the steering matrix together with its
// derivatives with respect to the DOA parameters, one M×K matrix per DOA
// component, aligned by position with the source list. The derivatives feed
// Cramér-Rao bound analysis. Derivative computation is only defined for
// one-dimensional DOA parameterizations; the source placement rejects
// anything else.
func (a *ArrayDesign) SteeringMatrixDeriv(sources SourcePlacement, wavelength float64, filter PerturbationFilter) (*mat.CDense, []*mat.CDense, error) {
	return a.steering(sources, wavelength, filter, true)
}

func (a *ArrayDesign) steering(sources SourcePlacement, wavelength float64, filter PerturbationFilter, withDeriv bool) (*mat.CDense, []*mat.CDense, error) {
	p, err := a.perturb.filtered(filter)
	if err != nil {
		return nil, nil, err
	}

	locations := a.locations
	if p.LocationErrors != nil {
		locations = perturbedLocations(a.locations, p.LocationErrors.Offsets)
	}

	var (
		delays *mat.Dense
		dterms []*mat.Dense
	)
	if withDeriv {
		delays, dterms, err = sources.PhaseDelayMatrixDeriv(locations, wavelength)
	} else {
		delays, err = sources.PhaseDelayMatrix(locations, wavelength)
	}
	if err != nil {
		return nil, nil, err
	}

	// A = exp(i*T); the derivative follows by the chain rule through the
	// complex exponential: DA_k = A .* (i*DT_k).
	m, k := delays.Dims()
	A := mat.NewCDense(m, k, nil)
	for i := 0; i < m; i++ {
		for j := 0; j < k; j++ {
			A.Set(i, j, cmplx.Exp(complex(0, delays.At(i, j))))
		}
	}
	DA := make([]*mat.CDense, len(dterms))
	for x, dt := range dterms {
		d := mat.NewCDense(m, k, nil)
		for i := 0; i < m; i++ {
			for j := 0; j < k; j++ {
				d.Set(i, j, A.At(i, j)*complex(0, dt.At(i, j)))
			}
		}
		DA[x] = d
	}

	all := append([]*mat.CDense{A}, DA...)
	if p.GainErrors != nil {
		scaleRows(all, p.GainErrors.Deltas, func(delta float64) complex128 {
			return complex(1+delta, 0)
		})
	}
	if p.PhaseErrors != nil {
		scaleRows(all, p.PhaseErrors.Radians, func(phi float64) complex128 {
			return cmplx.Exp(complex(0, phi))
		})
	}
	if p.MutualCoupling != nil {
		A = leftMul(p.MutualCoupling.Matrix, A)
		for x := range DA {
			DA[x] = leftMul(p.MutualCoupling.Matrix, DA[x])
		}
	}

	return A, DA, nil
}

// scaleRows multiplies row i of every matrix by coeff(params[i]); a single
// parameter broadcasts over all rows.
func scaleRows(mats []*mat.CDense, params []float64, coeff func(float64) complex128) {
	for _, a := range mats {
		m, k := a.Dims()
		for i := 0; i < m; i++ {
			c := coeff(params[0])
			if len(params) > 1 {
				c = coeff(params[i])
			}
			for j := 0; j < k; j++ {
				a.Set(i, j, c*a.At(i, j))
			}
		}
	}
}

func leftMul(c *mat.CDense, a *mat.CDense) *mat.CDense {
	m, _ := c.Dims()
	_, k := a.Dims()
	out := mat.NewCDense(m, k, nil)
	out.Mul(c, a)
	return out
}
