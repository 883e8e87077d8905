package figure

import (
	"strconv"
	"strings"

	mises "Mises/internal/calc/mises"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	Title           = "Геометрическое представление критерия Мизеса"
	SurfaceName     = "Поверхность Мизеса"
	HydrostaticName = "Гидростатическая ось"

	hydrostaticSamples = 20
	arrowFraction      = 0.1
	arrowHeadFraction  = 0.05
)

// Figure is serialised as a Plotly figure ({data, layout}).
type Figure struct {
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
}

type Trace struct {
	Type       string    `json:"type"`
	Name       string    `json:"name,omitempty"`
	X          any       `json:"x"`
	Y          any       `json:"y"`
	Z          any       `json:"z"`
	U          []float64 `json:"u,omitempty"`
	V          []float64 `json:"v,omitempty"`
	W          []float64 `json:"w,omitempty"`
	Mode       string    `json:"mode,omitempty"`
	Line       *Line     `json:"line,omitempty"`
	Colorscale any       `json:"colorscale,omitempty"`
	Opacity    float64   `json:"opacity,omitempty"`
	ShowScale  *bool     `json:"showscale,omitempty"`
	SizeMode   string    `json:"sizemode,omitempty"`
	SizeRef    float64   `json:"sizeref,omitempty"`
}

type Line struct {
	Color string `json:"color"`
	Width int    `json:"width"`
	Dash  string `json:"dash,omitempty"`
}

type Layout struct {
	Title      Text   `json:"title"`
	Scene      Scene  `json:"scene"`
	Margin     Margin `json:"margin"`
	ShowLegend bool   `json:"showlegend"`
}

type Text struct {
	Text string `json:"text"`
}

type Scene struct {
	XAxis      Axis   `json:"xaxis"`
	YAxis      Axis   `json:"yaxis"`
	ZAxis      Axis   `json:"zaxis"`
	AspectMode string `json:"aspectmode"`
}

type Axis struct {
	Title Text `json:"title"`
}

type Margin struct {
	L int `json:"l"`
	R int `json:"r"`
	B int `json:"b"`
	T int `json:"t"`
}

// PrincipalAxis is one of the drawn coordinate axes. Dir is expressed in
// plot coordinates (x, y, z) = (σ2, σ3, σ1).
type PrincipalAxis struct {
	Name  string
	Color string
	Dir   r3.Vec
}

var Axes = []PrincipalAxis{
	{Name: "σ₂", Color: "blue", Dir: r3.Vec{X: 1}},
	{Name: "σ₃", Color: "green", Dir: r3.Vec{Y: 1}},
	{Name: "σ₁", Color: "red", Dir: r3.Vec{Z: 1}},
}

// Build assembles the surface, the hydrostatic axis and the three principal
// axes with cone arrow heads.
func Build(m mises.Mesh, in mises.Input) Figure {
	zRange := in.ZRange
	if zRange == 0 {
		zRange = mises.DefaultZRange
	}
	hidden := false

	fig := Figure{}
	fig.Data = append(fig.Data, Trace{
		Type:       "surface",
		Name:       SurfaceName,
		X:          m.Sigma2,
		Y:          m.Sigma3,
		Z:          m.Sigma1,
		Colorscale: "Blues",
		Opacity:    0.9,
		ShowScale:  &hidden,
	})

	hydro := mises.Linspace(0, zRange, hydrostaticSamples)
	fig.Data = append(fig.Data, Trace{
		Type: "scatter3d",
		Name: HydrostaticName,
		X:    hydro,
		Y:    hydro,
		Z:    hydro,
		Mode: "lines",
		Line: &Line{Color: "gray", Width: 2, Dash: "dash"},
	})

	arrow := zRange * arrowFraction
	head := zRange * arrowHeadFraction
	for _, ax := range Axes {
		pts := []r3.Vec{{}, r3.Scale(zRange, ax.Dir), r3.Scale(zRange+arrow, ax.Dir)}
		xs, ys, zs := split(pts)
		fig.Data = append(fig.Data, Trace{
			Type: "scatter3d",
			Name: ax.Name,
			X:    xs,
			Y:    ys,
			Z:    zs,
			Mode: "lines",
			Line: &Line{Color: ax.Color, Width: 2},
		})

		tip := r3.Scale(zRange+arrow-head, ax.Dir)
		vec := r3.Scale(head, ax.Dir)
		fig.Data = append(fig.Data, Trace{
			Type:       "cone",
			X:          []float64{tip.X},
			Y:          []float64{tip.Y},
			Z:          []float64{tip.Z},
			U:          []float64{vec.X},
			V:          []float64{vec.Y},
			W:          []float64{vec.Z},
			Colorscale: [][]any{{0, ax.Color}, {1, ax.Color}},
			ShowScale:  &hidden,
			SizeMode:   "absolute",
			SizeRef:    head * 2,
		})
	}

	fig.Layout = Layout{
		Title: Text{Text: Title + " (σᵧ = " + formatFloat(in.SigmaY) + ")"},
		Scene: Scene{
			XAxis:      Axis{Title: Text{Text: "σ₂"}},
			YAxis:      Axis{Title: Text{Text: "σ₃"}},
			ZAxis:      Axis{Title: Text{Text: "σ₁"}},
			AspectMode: "cube",
		},
		Margin:     Margin{L: 0, R: 0, B: 0, T: 40},
		ShowLegend: true,
	}
	return fig
}

func split(pts []r3.Vec) (xs, ys, zs []float64) {
	xs = make([]float64, len(pts))
	ys = make([]float64, len(pts))
	zs = make([]float64, len(pts))
	for i, p := range pts {
		xs[i], ys[i], zs[i] = p.X, p.Y, p.Z
	}
	return xs, ys, zs
}

// formatFloat always keeps a fractional part: 20 -> "20.0", 12.5 -> "12.5".
func formatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
