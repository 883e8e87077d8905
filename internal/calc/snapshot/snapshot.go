package snapshot

import (
	"io"
	"math"

	figure "Mises/internal/calc/figure"
	mises "Mises/internal/calc/mises"
	svg "github.com/ajstarks/svgo"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	Width  = 800
	Height = 800

	// every n-th ring and meridian of the mesh is drawn
	stride = 10
	margin = 40
)

var (
	cos30 = math.Cos(math.Pi / 6)
	sin30 = math.Sin(math.Pi / 6)
)

type projector struct {
	scale  float64
	cx, cy float64
}

// isometric view; plot z points up
func (p projector) project(v r3.Vec) (int, int) {
	sx := (v.X - v.Y) * cos30
	sy := v.Z - (v.X+v.Y)*sin30
	return int(math.Round(p.cx + p.scale*sx)), int(math.Round(p.cy - p.scale*sy))
}

func newProjector(extent float64) projector {
	// The isometric image of the cube [0, extent]^3 spans 2*cos30*extent
	// horizontally and 2*extent vertically.
	span := 2 * extent
	scale := float64(Height-2*margin) / span
	return projector{
		scale: scale,
		cx:    Width / 2,
		cy:    float64(Height)/2 + scale*extent*0.5,
	}
}

func (p projector) polyline(pts []r3.Vec) ([]int, []int) {
	xs := make([]int, len(pts))
	ys := make([]int, len(pts))
	for i, v := range pts {
		xs[i], ys[i] = p.project(v)
	}
	return xs, ys
}

// Write renders an isometric wireframe of the figure built for in.
func Write(w io.Writer, m mises.Mesh, in mises.Input) error {
	fig := figure.Build(m, in)
	zRange := in.ZRange
	if zRange == 0 {
		zRange = mises.DefaultZRange
	}
	p := newProjector(zRange * 1.1)

	ew := &errWriter{w: w}
	canvas := svg.New(ew)
	canvas.Start(Width, Height)
	canvas.Title(fig.Layout.Title.Text)
	canvas.Rect(0, 0, Width, Height, "fill:white")
	canvas.Text(Width/2, 24, fig.Layout.Title.Text, "text-anchor:middle;font-size:16px;font-family:sans-serif")

	n := len(m.Z)
	canvas.Gid("surface")
	canvas.Gstyle("fill:none;stroke:#3b75af;stroke-width:1;stroke-opacity:0.8")
	for i := 0; i < n; i += stride {
		xs, ys := p.polyline(ring(m, i))
		canvas.Polyline(xs, ys)
	}
	if (n-1)%stride != 0 {
		xs, ys := p.polyline(ring(m, n-1))
		canvas.Polyline(xs, ys)
	}
	for j := 0; j < len(m.Theta); j += stride {
		xs, ys := p.polyline(meridian(m, j))
		canvas.Polyline(xs, ys)
	}
	canvas.Gend()
	canvas.Gend()

	hydro := fig.Data[1].X.([]float64)
	top := hydro[len(hydro)-1]
	hx1, hy1 := p.project(r3.Vec{})
	hx2, hy2 := p.project(r3.Vec{X: top, Y: top, Z: top})
	canvas.Line(hx1, hy1, hx2, hy2, "stroke:gray;stroke-width:2;stroke-dasharray:6,4")

	for _, ax := range figure.Axes {
		end := r3.Scale(zRange*1.1, ax.Dir)
		x1, y1 := p.project(r3.Vec{})
		x2, y2 := p.project(end)
		canvas.Line(x1, y1, x2, y2, "stroke:"+ax.Color+";stroke-width:2")
		lx, ly := p.project(r3.Scale(zRange*1.15, ax.Dir))
		canvas.Text(lx, ly, ax.Name, "fill:"+ax.Color+";font-size:18px;font-family:sans-serif;text-anchor:middle")
	}
	canvas.End()
	return ew.err
}

// errWriter keeps the first write error; svgo drops them.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(b []byte) (int, error) {
	if e.err != nil {
		return len(b), nil
	}
	n, err := e.w.Write(b)
	if err != nil {
		e.err = err
	}
	return n, err
}

func ring(m mises.Mesh, i int) []r3.Vec {
	pts := make([]r3.Vec, len(m.Theta))
	for j := range m.Theta {
		pts[j] = r3.Vec{X: m.Sigma2[i][j], Y: m.Sigma3[i][j], Z: m.Sigma1[i][j]}
	}
	return pts
}

func meridian(m mises.Mesh, j int) []r3.Vec {
	pts := make([]r3.Vec, len(m.Z))
	for i := range m.Z {
		pts[i] = r3.Vec{X: m.Sigma2[i][j], Y: m.Sigma3[i][j], Z: m.Sigma1[i][j]}
	}
	return pts
}
