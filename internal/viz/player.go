package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/helixviz/internal/scene"
)

const (
	defaultCols  = 60
	defaultRows  = 24
	graphSamples = 40
)

type PlayerOptions struct {
	Title    string
	Cols     int
	Rows     int
	Autoplay bool
	Theme    string
}

func DefaultPlayerOptions() PlayerOptions {
	return PlayerOptions{Title: "e^(iθ)", Cols: defaultCols, Rows: defaultRows}
}

type tickMsg struct{ gen int }

// Player replays a scene's frames. Frame 0 is the initial view; frames
// 1..len(Frames) are the animation snapshots.
type Player struct {
	scene   *scene.Scene
	title   string
	canvas  *Canvas
	camera  *Camera
	frame   int
	playing bool
	gen     int
	theme   int
	styles  styles
	steps   []scene.SliderStep
}

func NewPlayer(sc *scene.Scene, opts PlayerOptions) Player {
	if opts.Cols <= 0 {
		opts.Cols = defaultCols
	}
	if opts.Rows <= 0 {
		opts.Rows = defaultRows
	}
	theme := 0
	for i, t := range Themes {
		if t.Name == opts.Theme {
			theme = i
		}
	}
	return Player{
		scene:   sc,
		title:   opts.Title,
		canvas:  NewCanvas(opts.Cols, opts.Rows),
		camera:  NewCamera(),
		playing: opts.Autoplay,
		theme:   theme,
		styles:  newStyles(Themes[theme]),
		steps:   sc.SliderSteps(),
	}
}

func (m Player) Frame() int     { return m.frame }
func (m Player) Playing() bool  { return m.playing }
func (m Player) Theme() Theme   { return Themes[m.theme] }
func (m Player) lastFrame() int { return len(m.scene.Frames) }

func (m Player) Init() tea.Cmd {
	if m.playing {
		return m.tick()
	}
	return nil
}

func (m Player) tick() tea.Cmd {
	gen := m.gen
	d := m.scene.FrameDuration()
	if d <= 0 {
		d = time.Millisecond
	}
	return tea.Tick(d, func(time.Time) tea.Msg { return tickMsg{gen: gen} })
}

// Update handles input and advances playback.
func (m Player) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ", "p":
			if m.playing {
				m.pause()
				return m, nil
			}
			return m, m.play()
		case "[":
			m.pause()
			m.frame = m.prevStep()
		case "]":
			m.pause()
			m.frame = m.nextStep()
		case "left", "h":
			m.pause()
			m.seek(m.frame - 1)
		case "right", "l":
			m.pause()
			m.seek(m.frame + 1)
		case "home", "g":
			m.pause()
			m.frame = 0
		case "x":
			m.camera.Rotate(0.1, 0)
		case "X":
			m.camera.Rotate(-0.1, 0)
		case "y":
			m.camera.Rotate(0, 0.1)
		case "Y":
			m.camera.Rotate(0, -0.1)
		case "+", "=":
			m.camera.ZoomIn()
		case "-", "_":
			m.camera.ZoomOut()
		case "t":
			m.theme = (m.theme + 1) % len(Themes)
			m.styles = newStyles(Themes[m.theme])
		}
	case tickMsg:
		if !m.playing || msg.gen != m.gen {
			return m, nil
		}
		if m.frame >= m.lastFrame() {
			m.pause()
			return m, nil
		}
		m.frame++
		return m, m.tick()
	}
	return m, nil
}

// play resumes from the current frame; at the end it starts over.
func (m *Player) play() tea.Cmd {
	if m.frame >= m.lastFrame() {
		m.frame = 0
	}
	m.playing = true
	m.gen++
	return m.tick()
}

func (m *Player) pause() {
	m.playing = false
	m.gen++
}

func (m *Player) seek(k int) {
	m.frame = max(0, min(k, m.lastFrame()))
}

func (m Player) nextStep() int {
	for _, s := range m.steps {
		if s.Frame > m.frame {
			return s.Frame
		}
	}
	return m.frame
}

func (m Player) prevStep() int {
	prev := 0
	for _, s := range m.steps {
		if s.Frame >= m.frame {
			break
		}
		prev = s.Frame
	}
	return prev
}

func (m Player) frameLabel() string {
	if f, ok := m.scene.Frame(m.frame); ok {
		return f.Name
	}
	return "-"
}

// sliderBar draws one tick per slider step and the play head.
func (m Player) sliderBar(width int) string {
	n := m.lastFrame()
	if n == 0 {
		return ""
	}
	bar := []rune(strings.Repeat("─", width))
	pos := func(k int) int {
		return min(width-1, (k-1)*width/max(1, n))
	}
	for _, s := range m.steps {
		bar[pos(s.Frame)] = '┼'
	}
	if m.frame > 0 {
		bar[pos(m.frame)] = '●'
	}
	return string(bar)
}

func (m Player) revealedX() []float64 {
	path, _ := Traces(m.scene, m.frame)
	xs := path.X
	if len(xs) <= graphSamples {
		return xs
	}
	out := make([]float64, graphSamples)
	for i := range out {
		out[i] = xs[i*(len(xs)-1)/(graphSamples-1)]
	}
	return out
}

// View renders the canvas next to the status panel.
func (m Player) View() string {
	DrawFrame(m.canvas, m.scene, m.frame, m.camera)
	canvasView := m.styles.canvas.Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(m.styles.header.Render(m.title) + "\n")

	play, pause := "Play", "Pause"
	if b, ok := m.scene.PlayButton(); ok {
		play = b.Label
	}
	if b, ok := m.scene.PauseButton(); ok {
		pause = b.Label
	}
	if m.playing {
		s.WriteString(m.styles.muted.Render("["+play+"]") + " " + m.styles.active.Render("["+pause+"]") + "\n\n")
	} else {
		s.WriteString(m.styles.active.Render("["+play+"]") + " " + m.styles.muted.Render("["+pause+"]") + "\n\n")
	}

	prefix := "Frame: "
	if len(m.scene.Layout.Sliders) > 0 {
		prefix = m.scene.Layout.Sliders[0].CurrentValue.Prefix
	}
	s.WriteString(m.styles.value.Render(prefix+m.frameLabel()) + "\n")
	s.WriteString(m.styles.value.Render(m.sliderBar(36)) + "\n\n")

	_, marker := Traces(m.scene, m.frame)
	if marker.Len() > 0 {
		s.WriteString(m.styles.label.Render("θ") + m.styles.value.Render(fmt.Sprintf("%.3f", marker.Z[0])) + "\n")
		s.WriteString(m.styles.label.Render("cos θ") + m.styles.value.Render(fmt.Sprintf("%+.3f", marker.X[0])) + "\n")
		s.WriteString(m.styles.label.Render("sin θ") + m.styles.value.Render(fmt.Sprintf("%+.3f", marker.Y[0])) + "\n")
		s.WriteString(m.styles.label.Render("turns") + m.styles.value.Render(fmt.Sprintf("%.2f", marker.Z[0]/(2*math.Pi))) + "\n")
	}

	if xs := m.revealedX(); len(xs) > 1 {
		chart := asciigraph.Plot(xs, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Re e^(iθ)"))
		s.WriteString(m.styles.graph.Render(chart) + "\n")
	}

	s.WriteString(m.styles.muted.Render("SP:Play/Pause [ ]:Step ←→:Frame\nx/y:Rotate +/-:Zoom T:" + m.Theme().Name + " Q:Quit"))

	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, m.styles.panel.Render(s.String()))
}

// Run plays the scene in the terminal until the user quits.
func Run(sc *scene.Scene, opts PlayerOptions) error {
	p := tea.NewProgram(NewPlayer(sc, opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
