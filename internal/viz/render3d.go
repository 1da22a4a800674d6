package viz

import (
	"math"

	"github.com/san-kum/helixviz/internal/scene"
)

type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }

// Box maps data coordinates into the scene's aspect box: each axis range
// is centred on the origin and stretched to its aspect ratio, so the
// default scene spans [-1,1]x[-1,1]x[-2,2].
type Box struct {
	Mid, Half, Aspect Vec3
}

func NewBox(l scene.SceneLayout) Box {
	axis := func(a scene.Axis) (mid, half float64) {
		mid = (a.Range[0] + a.Range[1]) / 2
		half = (a.Range[1] - a.Range[0]) / 2
		if half == 0 {
			half = 1
		}
		return mid, half
	}
	mx, hx := axis(l.XAxis)
	my, hy := axis(l.YAxis)
	mz, hz := axis(l.ZAxis)
	ar := l.AspectRatio
	if ar.X == 0 && ar.Y == 0 && ar.Z == 0 {
		ar = scene.AspectRatio{X: 1, Y: 1, Z: 1}
	}
	return Box{
		Mid:    Vec3{mx, my, mz},
		Half:   Vec3{hx, hy, hz},
		Aspect: Vec3{ar.X, ar.Y, ar.Z},
	}
}

func (b Box) Map(x, y, z float64) Vec3 {
	return Vec3{
		(x - b.Mid.X) / b.Half.X * b.Aspect.X,
		(y - b.Mid.Y) / b.Half.Y * b.Aspect.Y,
		(z - b.Mid.Z) / b.Half.Z * b.Aspect.Z,
	}
}

// Camera orbits the box origin. Yaw turns around the vertical (z) axis,
// Pitch tilts the view down from the horizon.
type Camera struct {
	Yaw, Pitch float64
	Distance   float64
	Zoom       float64
}

func NewCamera() *Camera {
	return &Camera{Yaw: math.Pi / 5, Pitch: math.Pi / 9, Distance: 8, Zoom: 1}
}

func (c *Camera) Rotate(dYaw, dPitch float64) {
	c.Yaw += dYaw
	c.Pitch = math.Max(-math.Pi/2, math.Min(math.Pi/2, c.Pitch+dPitch))
}

func (c *Camera) ZoomIn()  { c.Zoom = math.Min(10, c.Zoom*1.2) }
func (c *Camera) ZoomOut() { c.Zoom = math.Max(0.1, c.Zoom/1.2) }

// Project maps a box point onto a sw x sh screen. Screen y grows downward.
// The last result reports whether the point lies in front of the camera.
func (c *Camera) Project(p Vec3, sw, sh int) (int, int, bool) {
	cy, sy := math.Cos(c.Yaw), math.Sin(c.Yaw)
	x := p.X*cy - p.Y*sy
	y := p.X*sy + p.Y*cy

	cp, sp := math.Cos(c.Pitch), math.Sin(c.Pitch)
	up := p.Z*cp + y*sp
	depth := y*cp - p.Z*sp

	if depth <= -c.Distance+0.1 {
		return 0, 0, false
	}
	persp := c.Distance / (c.Distance + depth)

	scale := math.Min(float64(sw)/3, float64(sh)/5) * c.Zoom
	px := int(math.Round(x*persp*scale)) + sw/2
	py := int(math.Round(-up*persp*scale)) + sh/2
	return px, py, true
}

// Projector draws scene traces onto a canvas.
type Projector struct {
	Box    Box
	Camera *Camera
	Canvas *Canvas
}

func (p Projector) point(x, y, z float64) (int, int, bool) {
	return p.Camera.Project(p.Box.Map(x, y, z), p.Canvas.SubWidth(), p.Canvas.SubHeight())
}

func (p Projector) Polyline(t scene.Trace) {
	px, py, pv := 0, 0, false
	for i := 0; i < t.Len(); i++ {
		x, y, v := p.point(t.X[i], t.Y[i], t.Z[i])
		switch {
		case v && pv:
			p.Canvas.DrawLine(px, py, x, y)
		case v:
			p.Canvas.Set(x, y)
		}
		px, py, pv = x, y, v
	}
}

func (p Projector) Markers(t scene.Trace, r int) {
	for i := 0; i < t.Len(); i++ {
		if x, y, v := p.point(t.X[i], t.Y[i], t.Z[i]); v {
			p.Canvas.Dot(x, y, r)
		}
	}
}

// Axis draws the vertical axis through the centre of the box.
func (p Projector) Axis(l scene.SceneLayout) {
	x0, y0, v0 := p.point(0, 0, l.ZAxis.Range[0])
	x1, y1, v1 := p.point(0, 0, l.ZAxis.Range[1])
	if v0 && v1 {
		p.Canvas.DrawLine(x0, y0, x1, y1)
	}
}

// Traces returns what is on screen at frame k. Frame 0 is the scene's
// initial state: the full path with the marker on the first point.
func Traces(sc *scene.Scene, k int) (path, marker scene.Trace) {
	if f, ok := sc.Frame(k); ok {
		return f.Path(), f.Marker()
	}
	return sc.FullPath(), sc.CurrentPoint()
}

// DrawFrame clears the canvas and draws frame k of the scene.
func DrawFrame(c *Canvas, sc *scene.Scene, k int, cam *Camera) {
	c.Clear()
	p := Projector{Box: NewBox(sc.Layout.Scene), Camera: cam, Canvas: c}
	path, marker := Traces(sc, k)
	p.Polyline(path)
	p.Markers(marker, 1)
}
