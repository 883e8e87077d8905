package section

import (
	"fmt"
	"io"
	"math"

	mises "Mises/internal/calc/mises"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	Width  = 640
	Height = 640

	circleSamples = 181
	axisOverhang  = 1.3
)

// Circle samples the yield locus in the deviatoric (π) plane.
func Circle(sigmaY float64, n int) (xs, ys []float64) {
	r := mises.Radius(sigmaY)
	for _, th := range mises.Linspace(0, 2*math.Pi, n) {
		xs = append(xs, r*math.Cos(th))
		ys = append(ys, r*math.Sin(th))
	}
	return xs, ys
}

// AxisProjection returns the unit direction of a principal axis projected
// onto the deviatoric plane. k is 0, 1 or 2 for σ1, σ2, σ3.
func AxisProjection(k int) (x, y float64) {
	var e r3.Vec
	switch k {
	case 0:
		e = r3.Vec{X: 1}
	case 1:
		e = r3.Vec{Y: 1}
	default:
		e = r3.Vec{Z: 1}
	}
	// Orthonormal rotation: local coordinates of e_k are its projections on
	// the rotated local basis.
	ex := mises.ToPrincipal(r3.Vec{X: 1})
	ey := mises.ToPrincipal(r3.Vec{Y: 1})
	p := r3.Vec{X: r3.Dot(e, ex), Y: r3.Dot(e, ey)}
	u := r3.Unit(p)
	return u.X, u.Y
}

var axisColors = []drawing.Color{drawing.ColorRed, drawing.ColorBlue, drawing.ColorGreen}

// Render draws the π-plane section as a PNG.
func Render(w io.Writer, sigmaY float64) error {
	if sigmaY <= 0 {
		return fmt.Errorf("%w: yield stress must be positive, got %v", mises.ErrInvalidInput, sigmaY)
	}
	xs, ys := Circle(sigmaY, circleSamples)
	series := []chart.Series{
		chart.ContinuousSeries{
			Name:    "yield locus",
			XValues: xs,
			YValues: ys,
			Style: chart.Style{
				StrokeColor: drawing.ColorFromHex("1f77b4"),
				StrokeWidth: 2,
			},
		},
	}
	reach := mises.Radius(sigmaY) * axisOverhang
	for k, name := range []string{"σ1", "σ2", "σ3"} {
		ux, uy := AxisProjection(k)
		series = append(series, chart.ContinuousSeries{
			Name:    name,
			XValues: []float64{0, ux * reach},
			YValues: []float64{0, uy * reach},
			Style: chart.Style{
				StrokeColor:     axisColors[k],
				StrokeWidth:     1.5,
				StrokeDashArray: []float64{5, 3},
			},
		})
	}

	bound := &chart.ContinuousRange{Min: -reach, Max: reach}
	ch := chart.Chart{
		Title:  fmt.Sprintf("Deviatoric plane, σy = %.1f", sigmaY),
		Width:  Width,
		Height: Height,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis:  chart.XAxis{Name: "X", Range: bound},
		YAxis:  chart.YAxis{Name: "Y", Range: bound},
		Series: series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	return ch.Render(chart.PNG, w)
}
