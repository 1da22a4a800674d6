package gui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/helixviz/internal/scene"
	"github.com/san-kum/helixviz/internal/viz"
)

// toWorld maps scene coordinates into raylib's y-up world. The scene's z
// axis (θ) becomes the vertical.
func (a *App) toWorld(x, y, z float64) rl.Vector3 {
	v := a.Box.Map(x, y, z)
	return rl.NewVector3(float32(v.X*worldScale), float32(v.Z*worldScale), float32(v.Y*worldScale))
}

func (a *App) drawScene() {
	a.drawGrid()
	a.drawAxis()

	path, marker := viz.Traces(a.Scene, a.Timeline.Frame())
	if a.Timeline.Frame() > 0 {
		a.drawPolyline(a.Scene.FullPath(), ColGhost)
	}
	a.drawPolyline(path, a.pathColor)
	a.drawMarkers(marker)
}

// drawGrid draws the floor of the axis box at the lowest θ.
func (a *App) drawGrid() {
	l := a.Scene.Layout.Scene
	z := l.ZAxis.Range[0]
	const lines = 6
	for i := 0; i <= lines; i++ {
		f := float64(i) / lines
		x := l.XAxis.Range[0] + f*(l.XAxis.Range[1]-l.XAxis.Range[0])
		y := l.YAxis.Range[0] + f*(l.YAxis.Range[1]-l.YAxis.Range[0])
		rl.DrawLine3D(a.toWorld(x, l.YAxis.Range[0], z), a.toWorld(x, l.YAxis.Range[1], z), a.gridColor)
		rl.DrawLine3D(a.toWorld(l.XAxis.Range[0], y, z), a.toWorld(l.XAxis.Range[1], y, z), a.gridColor)
	}
}

func (a *App) drawAxis() {
	zr := a.Scene.Layout.Scene.ZAxis.Range
	rl.DrawLine3D(a.toWorld(0, 0, zr[0]), a.toWorld(0, 0, zr[1]), a.axisColor)
}

func (a *App) drawPolyline(t scene.Trace, col rl.Color) {
	for i := 1; i < t.Len(); i++ {
		rl.DrawLine3D(a.toWorld(t.X[i-1], t.Y[i-1], t.Z[i-1]), a.toWorld(t.X[i], t.Y[i], t.Z[i]), col)
	}
}

func (a *App) drawMarkers(t scene.Trace) {
	radius := float32(0.15)
	col := a.markerColor
	if t.Marker != nil && t.Marker.Opacity != nil {
		col = rl.ColorAlpha(col, float32(*t.Marker.Opacity))
	}
	for i := 0; i < t.Len(); i++ {
		rl.DrawSphere(a.toWorld(t.X[i], t.Y[i], t.Z[i]), radius, col)
	}
}
