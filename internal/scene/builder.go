package scene

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/san-kum/helixviz/internal/helix"
)

const (
	DefaultFrameDuration = 20 * time.Millisecond
	DefaultSliderStride  = 50
)

type Style struct {
	PathColor     string
	PathWidth     float64
	MarkerColor   string
	MarkerSize    float64
	MarkerOpacity float64
	GridColor     string
	GridWidth     float64
	ZeroLineColor string
	ZeroLineWidth float64
}

func DefaultStyle() Style {
	return Style{
		PathColor:     "blue",
		PathWidth:     4,
		MarkerColor:   "red",
		MarkerSize:    8,
		MarkerOpacity: 0.9,
		GridColor:     "LightGray",
		GridWidth:     1,
		ZeroLineColor: "Gray",
		ZeroLineWidth: 2,
	}
}

// Options controls everything in the scene that is not derived from the
// curve itself.
type Options struct {
	Title              string
	PathName           string
	MarkerName         string
	AxisTitles         [3]string
	AxisHalfWidth      float64
	AspectRatio        AspectRatio
	FrameDuration      time.Duration
	TransitionDuration time.Duration
	SliderStride       int
	SliderPrefix       string
	Style              Style
}

func DefaultOptions() Options {
	return Options{
		Title:              `3D Visualization of $y = e^{i\theta}$`,
		PathName:           `Path of $y = e^{i\theta}$`,
		MarkerName:         "Current Point",
		AxisTitles:         [3]string{`$\cos(\theta)$`, `$\sin(\theta)$`, `$\theta$`},
		AxisHalfWidth:      1.5,
		AspectRatio:        AspectRatio{X: 1, Y: 1, Z: 2},
		FrameDuration:      DefaultFrameDuration,
		TransitionDuration: 0,
		SliderStride:       DefaultSliderStride,
		SliderPrefix:       "Frame: ",
		Style:              DefaultStyle(),
	}
}

func (o Options) Validate() error {
	switch {
	case o.SliderStride < 1:
		return fmt.Errorf("%w: slider stride must be at least 1 (got %d)", ErrInvalidOptions, o.SliderStride)
	case o.FrameDuration < 0:
		return fmt.Errorf("%w: negative frame duration %v", ErrInvalidOptions, o.FrameDuration)
	case o.TransitionDuration < 0:
		return fmt.Errorf("%w: negative transition duration %v", ErrInvalidOptions, o.TransitionDuration)
	case o.Style.PathColor == "" || o.Style.MarkerColor == "":
		return fmt.Errorf("%w: path and marker colors are required", ErrInvalidOptions)
	case o.Style.MarkerOpacity < 0 || o.Style.MarkerOpacity > 1 || math.IsNaN(o.Style.MarkerOpacity):
		return fmt.Errorf("%w: marker opacity must be within [0, 1] (got %v)", ErrInvalidOptions, o.Style.MarkerOpacity)
	case o.AxisHalfWidth <= 0:
		return fmt.Errorf("%w: axis half width must be positive", ErrInvalidOptions)
	}
	return nil
}

// SliderSteps enumerates the frame indices 1, 1+stride, 1+2*stride, ...
// strictly below numFrames. The stride need not divide numFrames-1.
func SliderSteps(numFrames, stride int) []int {
	if stride < 1 {
		return nil
	}
	steps := make([]int, 0, numFrames/stride+1)
	for k := 1; k < numFrames; k += stride {
		steps = append(steps, k)
	}
	return steps
}

// Build assembles the scene for c. The curve is used as given; only the
// options are checked.
func Build(c *helix.Curve, opts Options) (*Scene, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	b := builder{opts: opts}
	x, y, z := c.Components()
	n := len(x)

	path := b.pathTrace(x, y, z)
	path.Name = opts.PathName

	var current Trace
	if n > 0 {
		current = b.markerTrace(x[0], y[0], z[0])
	} else {
		current = b.markerTrace()
	}
	current.Name = opts.MarkerName
	opacity := opts.Style.MarkerOpacity
	current.Marker.Opacity = &opacity

	return &Scene{
		Data:   []Trace{path, current},
		Frames: b.frames(x, y, z),
		Layout: b.layout(c.Params.ThetaMax, n),
	}, nil
}

type builder struct {
	opts Options
}

func (b builder) pathTrace(x, y, z []float64) Trace {
	return Trace{
		Type: TraceScatter3D,
		Mode: ModeLines,
		X:    x,
		Y:    y,
		Z:    z,
		Line: &Line{Color: b.opts.Style.PathColor, Width: b.opts.Style.PathWidth},
	}
}

func (b builder) markerTrace(p ...float64) Trace {
	t := Trace{
		Type:   TraceScatter3D,
		Mode:   ModeMarkers,
		Marker: &Marker{Color: b.opts.Style.MarkerColor, Size: b.opts.Style.MarkerSize},
	}
	if len(p) == 3 {
		t.X, t.Y, t.Z = []float64{p[0]}, []float64{p[1]}, []float64{p[2]}
	}
	return t
}

// frames reveals one more point per frame. Prefixes share the backing
// arrays of the full columns.
func (b builder) frames(x, y, z []float64) []Frame {
	n := len(x)
	if n < 2 {
		return []Frame{}
	}
	frames := make([]Frame, 0, n-1)
	for k := 1; k < n; k++ {
		frames = append(frames, Frame{
			Name:  strconv.Itoa(k),
			Index: k,
			Data: []Trace{
				b.pathTrace(x[:k:k], y[:k:k], z[:k:k]),
				b.markerTrace(x[k-1], y[k-1], z[k-1]),
			},
		})
	}
	return frames
}

func (b builder) axis(title string, lo, hi float64) Axis {
	return Axis{
		Title:         Title{Text: title},
		Range:         [2]float64{lo, hi},
		ShowGrid:      true,
		GridColor:     b.opts.Style.GridColor,
		GridWidth:     b.opts.Style.GridWidth,
		ZeroLine:      true,
		ZeroLineColor: b.opts.Style.ZeroLineColor,
		ZeroLineWidth: b.opts.Style.ZeroLineWidth,
	}
}

func (b builder) playback() AnimationOptions {
	return AnimationOptions{
		Frame:      FrameTiming{Duration: b.opts.FrameDuration, Redraw: true},
		Transition: Transition{Duration: b.opts.TransitionDuration},
		Mode:       ModeImmediate,
	}
}

func (b builder) layout(thetaMax float64, numFrames int) Layout {
	h := b.opts.AxisHalfWidth

	play := b.playback()
	play.FromCurrent = true

	pause := AnimationOptions{
		Frame:      FrameTiming{Duration: 0, Redraw: false},
		Transition: Transition{Duration: b.opts.TransitionDuration},
		Mode:       ModeImmediate,
	}

	indices := SliderSteps(numFrames, b.opts.SliderStride)
	steps := make([]SliderStep, len(indices))
	for i, k := range indices {
		name := strconv.Itoa(k)
		steps[i] = SliderStep{
			Method: MethodAnimate,
			Args:   AnimateArgs{Frames: []string{name}, Options: b.playback()},
			Label:  name,
			Frame:  k,
		}
	}

	return Layout{
		Title: Title{Text: b.opts.Title},
		Scene: SceneLayout{
			XAxis:       b.axis(b.opts.AxisTitles[0], -h, h),
			YAxis:       b.axis(b.opts.AxisTitles[1], -h, h),
			ZAxis:       b.axis(b.opts.AxisTitles[2], 0, thetaMax),
			AspectMode:  "manual",
			AspectRatio: b.opts.AspectRatio,
		},
		UpdateMenus: []UpdateMenu{{
			Type:       MenuButtons,
			ShowActive: false,
			Buttons: []Button{
				{Label: "Play", Method: MethodAnimate, Args: AnimateArgs{Options: play}},
				{Label: "Pause", Method: MethodAnimate, Args: AnimateArgs{Stop: true, Options: pause}},
			},
			X: 0.1,
			Y: 0,
		}},
		Sliders: []Slider{{
			Steps:      steps,
			Transition: Transition{Duration: b.opts.TransitionDuration},
			X:          0.1,
			Y:          0,
			CurrentValue: CurrentValue{
				Font:    Font{Size: 12},
				Prefix:  b.opts.SliderPrefix,
				Visible: true,
				XAnchor: "center",
			},
			Len: 0.9,
		}},
		Legend: Legend{X: 0, Y: 1},
	}
}
