package scene

import (
	"encoding/json"
	"fmt"
	"time"
)

type Mode string

const (
	ModeLines   Mode = "lines"
	ModeMarkers Mode = "markers"

	TraceScatter3D = "scatter3d"
	MethodAnimate  = "animate"
	MenuButtons    = "buttons"
	ModeImmediate  = "immediate"
)

type Line struct {
	Color string  `json:"color"`
	Width float64 `json:"width"`
}

// Marker styles a markers trace. A nil Opacity leaves plotly's default;
// an explicit 0 is encoded.
type Marker struct {
	Color   string   `json:"color"`
	Size    float64  `json:"size"`
	Opacity *float64 `json:"opacity,omitempty"`
}

// Trace is one renderable series of points.
type Trace struct {
	Type   string    `json:"type"`
	Name   string    `json:"name,omitempty"`
	Mode   Mode      `json:"mode"`
	X      []float64 `json:"x"`
	Y      []float64 `json:"y"`
	Z      []float64 `json:"z"`
	Line   *Line     `json:"line,omitempty"`
	Marker *Marker   `json:"marker,omitempty"`
}

func (t Trace) Len() int { return len(t.X) }

// Frame is the k-th animation snapshot. Data[0] is the revealed path,
// Data[1] the current point.
type Frame struct {
	Name  string  `json:"name"`
	Index int     `json:"-"`
	Data  []Trace `json:"data"`
}

func (f Frame) Path() Trace   { return f.Data[0] }
func (f Frame) Marker() Trace { return f.Data[1] }

type Title struct {
	Text string `json:"text"`
}

type Axis struct {
	Title         Title      `json:"title"`
	Range         [2]float64 `json:"range"`
	ShowGrid      bool       `json:"showgrid"`
	GridColor     string     `json:"gridcolor"`
	GridWidth     float64    `json:"gridwidth"`
	ZeroLine      bool       `json:"zeroline"`
	ZeroLineColor string     `json:"zerolinecolor"`
	ZeroLineWidth float64    `json:"zerolinewidth"`
}

type AspectRatio struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

type SceneLayout struct {
	XAxis       Axis        `json:"xaxis"`
	YAxis       Axis        `json:"yaxis"`
	ZAxis       Axis        `json:"zaxis"`
	AspectMode  string      `json:"aspectmode"`
	AspectRatio AspectRatio `json:"aspectratio"`
}

// FrameTiming mirrors plotly's animation "frame" object. Duration is
// encoded in milliseconds.
type FrameTiming struct {
	Duration time.Duration `json:"-"`
	Redraw   bool          `json:"redraw"`
}

func (f FrameTiming) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Duration int64 `json:"duration"`
		Redraw   bool  `json:"redraw"`
	}{f.Duration.Milliseconds(), f.Redraw})
}

func (f *FrameTiming) UnmarshalJSON(data []byte) error {
	var raw struct {
		Duration int64 `json:"duration"`
		Redraw   bool  `json:"redraw"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	f.Duration = time.Duration(raw.Duration) * time.Millisecond
	f.Redraw = raw.Redraw
	return nil
}

type Transition struct {
	Duration time.Duration `json:"-"`
}

func (t Transition) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Duration int64 `json:"duration"`
	}{t.Duration.Milliseconds()})
}

func (t *Transition) UnmarshalJSON(data []byte) error {
	var raw struct {
		Duration int64 `json:"duration"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	t.Duration = time.Duration(raw.Duration) * time.Millisecond
	return nil
}

type AnimationOptions struct {
	Frame       FrameTiming `json:"frame"`
	Transition  Transition  `json:"transition"`
	FromCurrent bool        `json:"fromcurrent,omitempty"`
	Mode        string      `json:"mode"`
}

// AnimateArgs is the two-element argument list of plotly's animate
// method. Stop encodes as [null], which halts playback; otherwise a nil
// Frames slice animates every frame.
type AnimateArgs struct {
	Frames  []string
	Stop    bool
	Options AnimationOptions
}

func (a AnimateArgs) MarshalJSON() ([]byte, error) {
	var target any
	switch {
	case a.Stop:
		target = []any{nil}
	case a.Frames != nil:
		target = a.Frames
	}
	return json.Marshal([]any{target, a.Options})
}

func (a *AnimateArgs) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) != 2 {
		return fmt.Errorf("animate args: expected 2 elements, got %d", len(raw))
	}

	var target []*string
	if err := json.Unmarshal(raw[0], &target); err != nil {
		return fmt.Errorf("animate target: %w", err)
	}
	*a = AnimateArgs{}
	switch {
	case target == nil:
	case len(target) == 1 && target[0] == nil:
		a.Stop = true
	default:
		a.Frames = make([]string, 0, len(target))
		for _, name := range target {
			if name == nil {
				return fmt.Errorf("animate target: null frame name")
			}
			a.Frames = append(a.Frames, *name)
		}
	}
	return json.Unmarshal(raw[1], &a.Options)
}

type Button struct {
	Label  string      `json:"label"`
	Method string      `json:"method"`
	Args   AnimateArgs `json:"args"`
}

type UpdateMenu struct {
	Type       string   `json:"type"`
	ShowActive bool     `json:"showactive"`
	Buttons    []Button `json:"buttons"`
	X          float64  `json:"x"`
	Y          float64  `json:"y"`
}

type SliderStep struct {
	Method string      `json:"method"`
	Args   AnimateArgs `json:"args"`
	Label  string      `json:"label"`
	Frame  int         `json:"-"`
}

type Font struct {
	Size float64 `json:"size"`
}

type CurrentValue struct {
	Font    Font   `json:"font"`
	Prefix  string `json:"prefix"`
	Visible bool   `json:"visible"`
	XAnchor string `json:"xanchor"`
}

type Slider struct {
	Steps        []SliderStep `json:"steps"`
	Transition   Transition   `json:"transition"`
	X            float64      `json:"x"`
	Y            float64      `json:"y"`
	CurrentValue CurrentValue `json:"currentvalue"`
	Len          float64      `json:"len"`
}

type Legend struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type Layout struct {
	Title       Title        `json:"title"`
	Scene       SceneLayout  `json:"scene"`
	UpdateMenus []UpdateMenu `json:"updatemenus"`
	Sliders     []Slider     `json:"sliders"`
	Legend      Legend       `json:"legend"`
}

// Scene is the complete bundle handed to a renderer.
type Scene struct {
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
	Frames []Frame `json:"frames"`
}

func (s *Scene) FullPath() Trace     { return s.Data[0] }
func (s *Scene) CurrentPoint() Trace { return s.Data[1] }

// Frame returns the frame with index k, or false when k is out of range.
func (s *Scene) Frame(k int) (Frame, bool) {
	if k < 1 || k > len(s.Frames) {
		return Frame{}, false
	}
	return s.Frames[k-1], true
}

// PlayButton returns the first button that starts playback.
func (s *Scene) PlayButton() (Button, bool) {
	for _, m := range s.Layout.UpdateMenus {
		for _, b := range m.Buttons {
			if !b.Args.Stop {
				return b, true
			}
		}
	}
	return Button{}, false
}

// PauseButton returns the first button that halts playback.
func (s *Scene) PauseButton() (Button, bool) {
	for _, m := range s.Layout.UpdateMenus {
		for _, b := range m.Buttons {
			if b.Args.Stop {
				return b, true
			}
		}
	}
	return Button{}, false
}

// FrameDuration is the per-frame playback delay of the play button.
func (s *Scene) FrameDuration() time.Duration {
	if b, ok := s.PlayButton(); ok {
		return b.Args.Options.Frame.Duration
	}
	return 0
}

func (s *Scene) SliderSteps() []SliderStep {
	if len(s.Layout.Sliders) == 0 {
		return nil
	}
	return s.Layout.Sliders[0].Steps
}
