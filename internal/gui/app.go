package gui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/helixviz/internal/scene"
	"github.com/san-kum/helixviz/internal/viz"
)

var (
	ColBg      = rl.NewColor(250, 250, 250, 255)
	ColText    = rl.NewColor(60, 60, 60, 255)
	ColTextDim = rl.NewColor(150, 150, 150, 255)
	ColGhost   = rl.NewColor(200, 200, 230, 255)
)

const (
	windowWidth  = 1280
	windowHeight = 720
	worldScale   = 5
)

type Options struct {
	Title    string
	Autoplay bool
	Orbit    bool
}

func DefaultOptions() Options {
	return Options{Title: "helixviz", Autoplay: true, Orbit: true}
}

type App struct {
	Scene    *scene.Scene
	Timeline *viz.Timeline
	Camera   rl.Camera3D
	Box      viz.Box
	Orbit    bool
	Title    string

	pathColor   rl.Color
	markerColor rl.Color
	gridColor   rl.Color
	axisColor   rl.Color
}

func initWindow(title string) {
	rl.SetConfigFlags(rl.FlagMsaa4xHint)
	rl.InitWindow(windowWidth, windowHeight, title)
	rl.SetTargetFPS(60)
	rl.SetExitKey(0)
}

func newCamera() rl.Camera3D {
	return rl.NewCamera3D(
		rl.NewVector3(14, 8, 14),
		rl.NewVector3(0, 0, 0),
		rl.NewVector3(0, 1, 0),
		45.0,
		rl.CameraPerspective,
	)
}

func NewApp(sc *scene.Scene, opts Options) *App {
	a := &App{
		Scene:    sc,
		Timeline: viz.NewTimeline(sc),
		Camera:   newCamera(),
		Box:      viz.NewBox(sc.Layout.Scene),
		Orbit:    opts.Orbit,
		Title:    opts.Title,
	}

	full, marker := sc.FullPath(), sc.CurrentPoint()
	a.pathColor = rl.Blue
	if full.Line != nil {
		a.pathColor = viz.NamedColor(full.Line.Color)
	}
	a.markerColor = rl.Red
	if marker.Marker != nil {
		a.markerColor = viz.NamedColor(marker.Marker.Color)
	}
	a.gridColor = viz.NamedColor(sc.Layout.Scene.XAxis.GridColor)
	a.axisColor = viz.NamedColor(sc.Layout.Scene.ZAxis.ZeroLineColor)

	if opts.Autoplay {
		a.Timeline.Play()
	}
	return a
}

// Run opens a window and replays the scene until the window is closed.
func Run(sc *scene.Scene, opts Options) error {
	if len(sc.Data) < 2 {
		return fmt.Errorf("gui: scene has %d traces, need 2", len(sc.Data))
	}
	initWindow(opts.Title)
	defer rl.CloseWindow()

	app := NewApp(sc, opts)
	app.RunLoop()
	return nil
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() {
		if !a.Update() {
			return
		}
		a.Draw()
	}
}

// Update handles input and advances playback. It returns false once the
// user asks to quit.
func (a *App) Update() bool {
	if rl.IsKeyPressed(rl.KeyQ) || rl.IsKeyPressed(rl.KeyEscape) {
		return false
	}

	switch {
	case rl.IsKeyPressed(rl.KeySpace):
		a.Timeline.Toggle()
	case rl.IsKeyPressed(rl.KeyRight), rl.IsKeyPressedRepeat(rl.KeyRight):
		a.Timeline.Step(1)
	case rl.IsKeyPressed(rl.KeyLeft), rl.IsKeyPressedRepeat(rl.KeyLeft):
		a.Timeline.Step(-1)
	case rl.IsKeyPressed(rl.KeyHome):
		a.Timeline.Reset()
		a.Camera = newCamera()
	case rl.IsKeyPressed(rl.KeyO):
		a.Orbit = !a.Orbit
	}

	if a.Orbit {
		rl.UpdateCamera(&a.Camera, rl.CameraOrbital)
	}

	elapsed := time.Duration(float64(rl.GetFrameTime()) * float64(time.Second))
	a.Timeline.Advance(elapsed)
	return true
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	rl.BeginMode3D(a.Camera)
	a.drawScene()
	rl.EndMode3D()

	a.DrawHUD()
	rl.EndDrawing()
}

func (a *App) DrawHUD() {
	rl.DrawText(a.Title, 30, 30, 24, ColText)

	status := "PLAYING"
	col := ColText
	if !a.Timeline.Playing() {
		status = "PAUSED"
		col = ColTextDim
	}
	rl.DrawText(status, windowWidth-150, 30, 16, col)

	prefix := "Frame: "
	if len(a.Scene.Layout.Sliders) > 0 {
		prefix = a.Scene.Layout.Sliders[0].CurrentValue.Prefix
	}
	rl.DrawText(fmt.Sprintf("%s%d / %d", prefix, a.Timeline.Frame(), a.Timeline.Len()), 30, 64, 16, ColText)

	path, _ := viz.Traces(a.Scene, a.Timeline.Frame())
	if n := path.Len(); n > 0 {
		rl.DrawText(fmt.Sprintf("theta = %.3f", path.Z[n-1]), 30, 88, 16, ColTextDim)
	}

	rl.DrawText("[SPACE] PLAY/PAUSE  [LEFT/RIGHT] STEP  [HOME] RESET  [O] ORBIT  [Q] QUIT", 30, windowHeight-40, 14, ColTextDim)
	rl.DrawFPS(windowWidth-100, windowHeight-40)
}
