// Package plotly hands a scene to plotly.js: as figure JSON, as a
// standalone HTML page, or by opening that page in the system browser.
package plotly

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"os"
	"strconv"

	"github.com/pkg/browser"

	"github.com/san-kum/helixviz/internal/scene"
)

const (
	DefaultPlotlyURL  = "https://cdn.plot.ly/plotly-2.35.2.min.js"
	DefaultMathJaxURL = "https://cdn.jsdelivr.net/npm/mathjax@2.7.9/MathJax.js?config=TeX-AMS-MML_SVG"
)

type PageOptions struct {
	Title      string
	PlotlyURL  string
	MathJaxURL string
	Width      string
	Height     string
}

func DefaultPageOptions() PageOptions {
	return PageOptions{
		Title:      "e^(iθ) helix",
		PlotlyURL:  DefaultPlotlyURL,
		MathJaxURL: DefaultMathJaxURL,
		Width:      "100%",
		Height:     "95vh",
	}
}

// MarshalFigure encodes the scene as a plotly figure document.
func MarshalFigure(sc *scene.Scene) ([]byte, error) {
	return json.Marshal(sc)
}

// UnmarshalFigure decodes a figure written by MarshalFigure. Frame and
// slider step indices are recovered from their names.
func UnmarshalFigure(data []byte) (*scene.Scene, error) {
	var sc scene.Scene
	if err := json.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("decode figure: %w", err)
	}
	if len(sc.Data) < 2 {
		return nil, fmt.Errorf("decode figure: expected 2 traces, got %d", len(sc.Data))
	}

	for i := range sc.Frames {
		k, err := strconv.Atoi(sc.Frames[i].Name)
		if err != nil {
			return nil, fmt.Errorf("decode figure: frame name %q: %w", sc.Frames[i].Name, err)
		}
		sc.Frames[i].Index = k
	}
	for i := range sc.Layout.Sliders {
		steps := sc.Layout.Sliders[i].Steps
		for j := range steps {
			if len(steps[j].Args.Frames) != 1 {
				continue
			}
			if k, err := strconv.Atoi(steps[j].Args.Frames[0]); err == nil {
				steps[j].Frame = k
			}
		}
	}
	return &sc, nil
}

func WriteJSON(w io.Writer, sc *scene.Scene, indent bool) error {
	enc := json.NewEncoder(w)
	if indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(sc)
}

var page = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Options.Title}}</title>
{{- if .Options.MathJaxURL}}
<script src="{{.Options.MathJaxURL}}"></script>
{{- end}}
<script src="{{.Options.PlotlyURL}}"></script>
</head>
<body>
<div id="helix" style="width:{{.Options.Width}};height:{{.Options.Height}};"></div>
<script>
const figure = {{.Figure}};
const el = document.getElementById("helix");
Plotly.newPlot(el, figure.data, figure.layout).then(function () {
  return Plotly.addFrames(el, figure.frames);
});
</script>
</body>
</html>
`))

// WriteHTML renders a page that draws the scene with plotly.js.
func WriteHTML(w io.Writer, sc *scene.Scene, opts PageOptions) error {
	raw, err := MarshalFigure(sc)
	if err != nil {
		return fmt.Errorf("encode figure: %w", err)
	}

	var buf bytes.Buffer
	err = page.Execute(&buf, struct {
		Options PageOptions
		Figure  template.JS
	}{opts, template.JS(raw)})
	if err != nil {
		return fmt.Errorf("render page: %w", err)
	}

	_, err = buf.WriteTo(w)
	return err
}

func WriteHTMLFile(path string, sc *scene.Scene, opts PageOptions) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := WriteHTML(f, sc, opts); err != nil {
		return err
	}
	return f.Close()
}

// Opener launches a viewer for a rendered page.
type Opener func(path string) error

// BrowserOpener opens files with the platform's default browser.
var BrowserOpener Opener = browser.OpenFile

// Show opens the page at path. It is the last step of a run; the viewer
// owns the animation from here on.
func Show(path string, open Opener) error {
	if open == nil {
		open = BrowserOpener
	}
	if err := open(path); err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	return nil
}
