package model_test

import (
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/signalsfoundry/arraymodel/model"
)

// fixedSignal emits a deterministic matrix so measurement synthesis can be
// checked exactly: entry (i,j) is base + i + j*gap.
type fixedSignal struct {
	rows int
	base complex128
	gap  complex128
}

func (s *fixedSignal) Emit(nSnapshots int) *mat.CDense {
	out := mat.NewCDense(s.rows, nSnapshots, nil)
	for i := 0; i < s.rows; i++ {
		for j := 0; j < nSnapshots; j++ {
			out.Set(i, j, s.base+complex(float64(i), 0)+complex(float64(j), 0)*s.gap)
		}
	}
	return out
}

// zeroSignal emits all-zero snapshots.
type zeroSignal struct {
	rows int
}

func (z *zeroSignal) Emit(nSnapshots int) *mat.CDense {
	return mat.NewCDense(z.rows, nSnapshots, nil)
}

func TestMeasurements_MatchesModelEquation(t *testing.T) {
	a, err := model.NewArrayDesign1D([]float64{0, 0.5, 1.0}, "line", nil)
	require.NoError(t, err)

	sources := testSources()
	const nSnapshots = 5
	sourceSignal := &fixedSignal{rows: sources.Size(), base: 1 + 1i, gap: 0.5}
	noiseSignal := &fixedSignal{rows: a.Size(), base: 0.01i, gap: 0.001}

	Y, err := a.Measurements(sources, 1.0, nSnapshots, sourceSignal, noiseSignal)
	require.NoError(t, err)

	A, err := a.SteeringMatrix(sources, 1.0, model.PerturbationsAll)
	require.NoError(t, err)
	S := sourceSignal.Emit(nSnapshots)
	N := noiseSignal.Emit(nSnapshots)

	m, _ := A.Dims()
	want := mat.NewCDense(m, nSnapshots, nil)
	want.Mul(A, S)
	for i := 0; i < m; i++ {
		for j := 0; j < nSnapshots; j++ {
			want.Set(i, j, want.At(i, j)+N.At(i, j))
		}
	}
	requireCEqual(t, want, Y, 1e-12)
}

func TestMeasurementsWithCovariance_SampleCovariance(t *testing.T) {
	a, err := model.NewArrayDesign1D([]float64{0, 0.5}, "pair", nil)
	require.NoError(t, err)

	sources := testSources()
	const nSnapshots = 4
	sourceSignal := &fixedSignal{rows: sources.Size(), base: 1, gap: 1i}
	noiseSignal := &fixedSignal{rows: a.Size(), base: 0.1, gap: 0.05}

	Y, R, err := a.MeasurementsWithCovariance(sources, 1.0, nSnapshots, sourceSignal, noiseSignal)
	require.NoError(t, err)

	m, _ := Y.Dims()
	require.Equal(t, 2, m)
	rr, rc := R.Dims()
	require.Equal(t, m, rr)
	require.Equal(t, m, rc)

	// R = Y*Yᴴ / n, entry by entry.
	for i := 0; i < m; i++ {
		for j := 0; j < m; j++ {
			var want complex128
			for s := 0; s < nSnapshots; s++ {
				want += Y.At(i, s) * cmplx.Conj(Y.At(j, s))
			}
			want /= complex(nSnapshots, 0)
			require.InDelta(t, 0, cmplx.Abs(R.At(i, j)-want), 1e-12)
		}
	}

	// Sample covariance is Hermitian.
	for i := 0; i < m; i++ {
		for j := 0; j < m; j++ {
			require.InDelta(t, 0, cmplx.Abs(R.At(i, j)-cmplx.Conj(R.At(j, i))), 1e-12)
		}
	}
}

func TestMeasurements_UsesAllStoredPerturbations(t *testing.T) {
	clean, err := model.NewArrayDesign1D([]float64{0, 0.5}, "pair", nil)
	require.NoError(t, err)
	perturbed, err := clean.PerturbedCopy(model.Perturbations{
		GainErrors: &model.GainErrors{Deltas: []float64{1.0, 1.0}},
	}, "")
	require.NoError(t, err)

	sources := testSources()
	sourceSignal := &fixedSignal{rows: sources.Size(), base: 1, gap: 0}
	// Zero noise isolates the steering-matrix difference.
	noiseSignal := &zeroSignal{rows: 2}

	yClean, err := clean.Measurements(sources, 1.0, 3, sourceSignal, noiseSignal)
	require.NoError(t, err)
	yPerturbed, err := perturbed.Measurements(sources, 1.0, 3, sourceSignal, noiseSignal)
	require.NoError(t, err)

	// Doubled gain on every element doubles every measurement.
	m, n := yClean.Dims()
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			require.InDelta(t, 0, cmplx.Abs(yPerturbed.At(i, j)-2*yClean.At(i, j)), 1e-12)
		}
	}
}

func TestMeasurements_RejectsBadSnapshotCount(t *testing.T) {
	a, err := model.NewArrayDesign1D([]float64{0, 0.5}, "pair", nil)
	require.NoError(t, err)

	_, err = a.Measurements(testSources(), 1.0, 0, &fixedSignal{rows: 3}, &fixedSignal{rows: 2})
	require.ErrorIs(t, err, model.ErrInvalidArgument)
}
