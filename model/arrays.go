package model

import (
	"context"
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/signalsfoundry/arraymodel/logging"
)

// UniformLinearArray is an n-element uniform linear array (ULA) along the
// x-axis with its first element at the origin.
type UniformLinearArray struct {
	GridBasedArrayDesign
}

// NewUniformLinearArray creates an n-element ULA with inter-element spacing
// d0. An empty name defaults to "ULA n".
func NewUniformLinearArray(n int, d0 float64, name string) (*UniformLinearArray, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: element count must be positive, got %d", ErrInvalidArgument, n)
	}
	if name == "" {
		name = fmt.Sprintf("ULA %d", n)
	}
	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}
	grid, err := NewGridBasedArrayDesign(indices, d0, name, nil)
	if err != nil {
		return nil, err
	}
	return &UniformLinearArray{GridBasedArrayDesign: *grid}, nil
}

// NestedArray is a two-level nested array: a dense inner ULA of n1 elements
// followed by a sparse outer ULA of n2 elements with spacing (n1+1)*d0.
// The difference co-array of a nested array is a filled ULA, which is what
// makes the geometry attractive for underdetermined DOA estimation.
type NestedArray struct {
	GridBasedArrayDesign
	n1, n2 int
}

// NewNestedArray creates a nested array from level sizes n1 and n2. An
// empty name defaults to "Nested (n1,n2)".
func NewNestedArray(n1, n2 int, d0 float64, name string) (*NestedArray, error) {
	if n1 < 1 || n2 < 1 {
		return nil, fmt.Errorf("%w: nested array levels must be positive, got (%d,%d)", ErrInvalidArgument, n1, n2)
	}
	if name == "" {
		name = fmt.Sprintf("Nested (%d,%d)", n1, n2)
	}
	indices := make([]int, 0, n1+n2)
	for i := 0; i < n1; i++ {
		indices = append(indices, i)
	}
	for k := 1; k <= n2; k++ {
		indices = append(indices, k*(n1+1)-1)
	}
	grid, err := NewGridBasedArrayDesign(indices, d0, name, nil)
	if err != nil {
		return nil, err
	}
	return &NestedArray{GridBasedArrayDesign: *grid, n1: n1, n2: n2}, nil
}

// N1 returns the inner level size used when creating this nested array.
func (a *NestedArray) N1() int { return a.n1 }

// N2 returns the outer level size used when creating this nested array.
func (a *NestedArray) N2() int { return a.n2 }

// CoPrimeMode selects which co-prime geometry variant to build.
type CoPrimeMode string

const (
	// CoPrimeMode2M is the extended variant: n elements at multiples of m
	// plus 2m-1 elements at multiples of n.
	CoPrimeMode2M CoPrimeMode = "2m"
	// CoPrimeModeM is the basic variant: n elements at multiples of m plus
	// m-1 elements at multiples of n.
	CoPrimeModeM CoPrimeMode = "m"
)

// CoPrimeArray is a co-prime array built from the pair (m, n), gcd(m,n)=1.
type CoPrimeArray struct {
	GridBasedArrayDesign
	m, n    int
	mode    CoPrimeMode
	swapped bool
}

// NewCoPrimeArray creates a co-prime array from the pair (m, n) with base
// spacing d0. m and n must be co-prime; when m > n the pair is swapped and
// an advisory warning is logged (see Swapped). An empty name defaults to
// "Co-prime (m,n)" with the pair as given.
func NewCoPrimeArray(m, n int, d0 float64, mode CoPrimeMode, name string) (*CoPrimeArray, error) {
	if m < 1 || n < 1 {
		return nil, fmt.Errorf("%w: co-prime pair must be positive, got (%d,%d)", ErrInvalidArgument, m, n)
	}
	if name == "" {
		name = fmt.Sprintf("Co-prime (%d,%d)", m, n)
	}

	swapped := false
	if m > n {
		logger.Warn(context.Background(), "co-prime pair swapped: m > n",
			logging.Int("m", m), logging.Int("n", n))
		m, n = n, m
		swapped = true
	}
	if gcd(m, n) != 1 {
		return nil, fmt.Errorf("%w: %d and %d are not co-prime", ErrInvalidArgument, m, n)
	}

	mode = CoPrimeMode(strings.ToLower(string(mode)))
	var indices []int
	switch mode {
	case CoPrimeMode2M:
		indices = make([]int, 0, n+2*m-1)
		for i := 0; i < n; i++ {
			indices = append(indices, i*m)
		}
		for i := 1; i < 2*m; i++ {
			indices = append(indices, i*n)
		}
	case CoPrimeModeM:
		indices = make([]int, 0, n+m-1)
		for i := 0; i < n; i++ {
			indices = append(indices, i*m)
		}
		for i := 1; i < m; i++ {
			indices = append(indices, i*n)
		}
	default:
		return nil, fmt.Errorf("%w: unknown co-prime mode %q", ErrInvalidArgument, mode)
	}

	grid, err := NewGridBasedArrayDesign(indices, d0, name, nil)
	if err != nil {
		return nil, err
	}
	return &CoPrimeArray{
		GridBasedArrayDesign: *grid,
		m:                    m,
		n:                    n,
		mode:                 mode,
		swapped:              swapped,
	}, nil
}

// CoPrimePair returns the co-prime pair used to build the array, after any
// swap, so m <= n always holds.
func (a *CoPrimeArray) CoPrimePair() (m, n int) { return a.m, a.n }

// Mode returns the mode used when creating this co-prime array.
func (a *CoPrimeArray) Mode() CoPrimeMode { return a.mode }

// Swapped reports whether the constructor swapped the pair because m > n.
func (a *CoPrimeArray) Swapped() bool { return a.swapped }

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// mrlaPresets holds the known minimum-redundancy configurations for 1 to 20
// elements. Row n-1 lists the grid indices of the n-element MRLA.
//
// Ishiguro, "Minimum redundancy linear arrays for a large number of
// antennas", Radio Sci. 15(6), 1980; Moffet, "Minimum-redundancy linear
// arrays", IEEE Trans. Antennas Propag. 16(2), 1968.
var mrlaPresets = [][]int{
	{0},
	{0, 1},
	{0, 1, 3},
	{0, 1, 4, 6},
	{0, 1, 4, 7, 9},
	{0, 1, 6, 9, 11, 13},
	{0, 1, 8, 11, 13, 15, 17},
	{0, 1, 4, 10, 16, 18, 21, 23},
	{0, 1, 4, 10, 16, 22, 24, 27, 29},
	{0, 1, 4, 10, 16, 22, 28, 30, 33, 35},
	{0, 1, 6, 14, 22, 30, 32, 34, 37, 39, 41},
	{0, 1, 6, 14, 22, 30, 38, 40, 42, 45, 47, 49},
	{0, 1, 6, 14, 22, 30, 38, 46, 48, 50, 53, 55, 57},
	{0, 1, 6, 14, 22, 30, 38, 46, 54, 56, 58, 61, 63, 65},
	{0, 1, 6, 14, 22, 30, 38, 46, 54, 62, 64, 66, 69, 71, 73},
	{0, 1, 8, 18, 28, 38, 48, 58, 68, 70, 72, 74, 77, 79, 81, 83},
	{0, 1, 8, 18, 28, 38, 48, 58, 68, 78, 80, 82, 84, 87, 89, 91, 93},
	{0, 1, 8, 18, 28, 38, 48, 58, 68, 78, 88, 90, 92, 94, 97, 99, 101, 103},
	{0, 1, 8, 18, 28, 38, 48, 58, 68, 78, 88, 98, 100, 102, 104, 107, 109, 111, 113},
	{0, 1, 10, 22, 34, 46, 58, 70, 82, 94, 106, 108, 110, 112, 114, 117, 119, 121, 123, 125},
}

// MinimumRedundancyLinearArray is an n-element minimum redundancy linear
// array (MRLA) from the preset table, n up to 20.
type MinimumRedundancyLinearArray struct {
	GridBasedArrayDesign
}

// NewMinimumRedundancyLinearArray creates an n-element MRLA with base
// spacing d0, 1 <= n <= 20. An empty name defaults to "MRLA n".
func NewMinimumRedundancyLinearArray(n int, d0 float64, name string) (*MinimumRedundancyLinearArray, error) {
	if n < 1 || n > len(mrlaPresets) {
		return nil, fmt.Errorf("%w: the MRLA presets only support 1 to %d elements, got %d",
			ErrInvalidArgument, len(mrlaPresets), n)
	}
	if name == "" {
		name = fmt.Sprintf("MRLA %d", n)
	}
	grid, err := NewGridBasedArrayDesign(mrlaPresets[n-1], d0, name, nil)
	if err != nil {
		return nil, err
	}
	return &MinimumRedundancyLinearArray{GridBasedArrayDesign: *grid}, nil
}

// UniformCircularArray is an n-element uniform circular array (UCA)
// centered at the origin in the xy-plane.
type UniformCircularArray struct {
	ArrayDesign
	radius float64
}

// NewUniformCircularArray creates an n-element UCA of radius r, with
// elements at angles 2*pi*k/n for k = 0..n-1. An empty name defaults to
// "UCA n".
func NewUniformCircularArray(n int, r float64, name string) (*UniformCircularArray, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: element count must be positive, got %d", ErrInvalidArgument, n)
	}
	if name == "" {
		name = fmt.Sprintf("UCA %d", n)
	}

	theta := []float64{0}
	if n > 1 {
		theta = floats.Span(make([]float64, n), 0, math.Pi*(2-2/float64(n)))
	}
	locations := mat.NewDense(n, 2, nil)
	for i, t := range theta {
		locations.Set(i, 0, r*math.Cos(t))
		locations.Set(i, 1, r*math.Sin(t))
	}

	base, err := NewArrayDesign(locations, name, nil)
	if err != nil {
		return nil, err
	}
	return &UniformCircularArray{ArrayDesign: *base, radius: r}, nil
}

// Radius returns the radius of the uniform circular array.
func (a *UniformCircularArray) Radius() float64 { return a.radius }
