package mises

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	DefaultZRange     = 100.0
	DefaultResolution = 100
	MaxResolution     = 400
)

var ErrInvalidInput = errors.New("invalid input")

var (
	sqrt2 = math.Sqrt(2)
	sqrt3 = math.Sqrt(3)
	sqrt6 = math.Sqrt(6)
)

// principal maps deviatoric-plane coordinates (X, Y) and the hydrostatic
// coordinate Z onto (σ1, σ2, σ3). Rows are orthonormal.
var principal = mat.NewDense(3, 3, []float64{
	1 / sqrt2, -1 / sqrt6, 1 / sqrt3,
	-1 / sqrt2, -1 / sqrt6, 1 / sqrt3,
	0, 2 / sqrt6, 1 / sqrt3,
})

type Input struct {
	SigmaY     float64 `json:"sigma_y"`
	ZRange     float64 `json:"z_range"`
	Resolution int     `json:"resolution"`
}

// Mesh rows follow Z, columns follow Theta.
type Mesh struct {
	Radius float64     `json:"radius"`
	Theta  []float64   `json:"theta"`
	Z      []float64   `json:"z"`
	Sigma1 [][]float64 `json:"sigma1"`
	Sigma2 [][]float64 `json:"sigma2"`
	Sigma3 [][]float64 `json:"sigma3"`
}

type Result struct {
	SigmaY              float64 `json:"sigma_y"`
	RadiusMPa           float64 `json:"radius_mpa"`
	ZRange              float64 `json:"z_range"`
	Resolution          int     `json:"resolution"`
	Points              int     `json:"points"`
	MaxHydrostaticError float64 `json:"max_hydrostatic_error"`
	MaxEquivalentError  float64 `json:"max_equivalent_error"`
	OK                  bool    `json:"ok"`
	Notes               string  `json:"notes"`
}

// Radius of the von Mises cylinder in the deviatoric plane.
func Radius(sigmaY float64) float64 {
	return math.Sqrt(2.0/3.0) * sigmaY
}

func Linspace(start, stop float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	out := make([]float64, n)
	if n == 1 {
		out[0] = start
		return out
	}
	step := (stop - start) / float64(n-1)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	out[n-1] = stop
	return out
}

// Normalize fills defaults and validates the input.
func Normalize(in Input) (Input, error) {
	if math.IsNaN(in.SigmaY) || math.IsInf(in.SigmaY, 0) || in.SigmaY <= 0 {
		return in, fmt.Errorf("%w: yield stress must be positive, got %v", ErrInvalidInput, in.SigmaY)
	}
	if in.ZRange == 0 {
		in.ZRange = DefaultZRange
	}
	if math.IsNaN(in.ZRange) || math.IsInf(in.ZRange, 0) || in.ZRange < 0 {
		return in, fmt.Errorf("%w: z range must be positive, got %v", ErrInvalidInput, in.ZRange)
	}
	if in.Resolution == 0 {
		in.Resolution = DefaultResolution
	}
	if in.Resolution < 2 || in.Resolution > MaxResolution {
		return in, fmt.Errorf("%w: resolution must be in [2, %d], got %d", ErrInvalidInput, MaxResolution, in.Resolution)
	}
	return in, nil
}

// ToPrincipal rotates a single point given in (X, Y, Z) cylinder coordinates.
func ToPrincipal(local r3.Vec) r3.Vec {
	v := mat.NewVecDense(3, []float64{local.X, local.Y, local.Z})
	var out mat.VecDense
	out.MulVec(principal, v)
	return r3.Vec{X: out.AtVec(0), Y: out.AtVec(1), Z: out.AtVec(2)}
}

func Generate(in Input) (Mesh, error) {
	in, err := Normalize(in)
	if err != nil {
		return Mesh{}, err
	}
	n := in.Resolution
	r := Radius(in.SigmaY)
	theta := Linspace(0, 2*math.Pi, n)
	z := Linspace(0, in.ZRange, n)

	// One column per grid point, column k = i*n + j.
	local := mat.NewDense(3, n*n, nil)
	for i, zi := range z {
		for j, tj := range theta {
			k := i*n + j
			local.Set(0, k, r*math.Cos(tj))
			local.Set(1, k, r*math.Sin(tj))
			local.Set(2, k, zi)
		}
	}
	var sigma mat.Dense
	sigma.Mul(principal, local)

	m := Mesh{
		Radius: r,
		Theta:  theta,
		Z:      z,
		Sigma1: grid(n),
		Sigma2: grid(n),
		Sigma3: grid(n),
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			k := i*n + j
			m.Sigma1[i][j] = sigma.At(0, k)
			m.Sigma2[i][j] = sigma.At(1, k)
			m.Sigma3[i][j] = sigma.At(2, k)
		}
	}
	return m, nil
}

func grid(n int) [][]float64 {
	g := make([][]float64, n)
	for i := range g {
		g[i] = make([]float64, n)
	}
	return g
}

// Hydrostatic returns the coordinate along the σ1 = σ2 = σ3 axis.
func Hydrostatic(s1, s2, s3 float64) float64 {
	return (s1 + s2 + s3) / sqrt3
}

func DeviatoricSum(s1, s2, s3 float64) float64 {
	return (s1-s2)*(s1-s2) + (s2-s3)*(s2-s3) + (s3-s1)*(s3-s1)
}

// EquivalentStress is the von Mises equivalent stress of a principal state.
func EquivalentStress(s1, s2, s3 float64) float64 {
	return math.Sqrt(0.5 * DeviatoricSum(s1, s2, s3))
}

// Check returns the largest deviation of the mesh from the hydrostatic
// identity and from the yield condition.
func Check(m Mesh, sigmaY float64) (hydro, equiv float64) {
	for i, zi := range m.Z {
		for j := range m.Theta {
			s1, s2, s3 := m.Sigma1[i][j], m.Sigma2[i][j], m.Sigma3[i][j]
			hydro = math.Max(hydro, math.Abs(Hydrostatic(s1, s2, s3)-zi))
			equiv = math.Max(equiv, math.Abs(EquivalentStress(s1, s2, s3)-sigmaY))
		}
	}
	return hydro, equiv
}

func Calculate(in Input) (Result, error) {
	in, err := Normalize(in)
	if err != nil {
		return Result{}, err
	}
	m, err := Generate(in)
	if err != nil {
		return Result{}, err
	}
	return Summarize(m, in), nil
}

// Summarize reports a generated mesh. in must already be normalized.
func Summarize(m Mesh, in Input) Result {
	hydro, equiv := Check(m, in.SigmaY)
	tol := 1e-9 * math.Max(1, math.Max(in.SigmaY, in.ZRange))
	return Result{
		SigmaY:              in.SigmaY,
		RadiusMPa:           m.Radius,
		ZRange:              in.ZRange,
		Resolution:          in.Resolution,
		Points:              len(m.Z) * len(m.Theta),
		MaxHydrostaticError: hydro,
		MaxEquivalentError:  equiv,
		OK:                  hydro <= tol && equiv <= tol,
		Notes:               "Von Mises cylinder r = sqrt(2/3)*sigma_y about the hydrostatic axis.",
	}
}
