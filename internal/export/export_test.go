package export

import (
	"bytes"
	"encoding/xml"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/helixviz/internal/helix"
	"github.com/san-kum/helixviz/internal/scene"
	"github.com/san-kum/helixviz/internal/viz"
)

func testCurve(t *testing.T, p helix.Params) *helix.Curve {
	t.Helper()
	c, err := helix.Sample(p)
	if err != nil {
		t.Fatalf("sample failed: %v", err)
	}
	return c
}

func testScene(t *testing.T, p helix.Params) *scene.Scene {
	t.Helper()
	sc, err := scene.Build(testCurve(t, p), scene.DefaultOptions())
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	return sc
}

func TestPointsCSVRoundTrip(t *testing.T) {
	c := testCurve(t, helix.Params{ThetaMax: 4 * math.Pi, NumFrames: 33})

	var buf bytes.Buffer
	if err := WritePointsCSV(&buf, c); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != c.Len()+1 {
		t.Fatalf("expected %d lines, got %d", c.Len()+1, len(lines))
	}
	if lines[0] != "index,theta,x,y,z" {
		t.Errorf("unexpected header %q", lines[0])
	}

	theta, points, err := ReadPointsCSV(&buf)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if len(points) != c.Len() {
		t.Fatalf("expected %d points, got %d", c.Len(), len(points))
	}
	for i := range points {
		if theta[i] != c.Theta[i] || points[i] != c.Points[i] {
			t.Fatalf("row %d differs: %v %v vs %v %v", i, theta[i], points[i], c.Theta[i], c.Points[i])
		}
	}
}

func TestPointsCSVFile(t *testing.T) {
	c := testCurve(t, helix.DefaultParams())
	path := filepath.Join(t.TempDir(), "points.csv")

	if err := WritePointsCSVFile(path, c); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	theta, _, err := ReadPointsCSV(f)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if theta[len(theta)-1] != helix.DefaultThetaMax {
		t.Errorf("expected last theta %v, got %v", helix.DefaultThetaMax, theta[len(theta)-1])
	}
}

func TestHelixSVG(t *testing.T) {
	sc := testScene(t, helix.Params{ThetaMax: 2 * math.Pi, NumFrames: 50})

	tests := []struct {
		name      string
		frame     int
		polylines int
	}{
		{"initial", 0, 1},
		{"first frame", 1, 1},
		{"middle", 25, 2},
		{"last", 49, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svg := HelixSVG(sc, tt.frame, viz.NewCamera(), 400, 600)
			if !strings.HasPrefix(svg, "<?xml") || !strings.HasSuffix(svg, "</svg>") {
				t.Fatal("output is not a complete svg document")
			}
			if got := strings.Count(svg, "<polyline"); got != tt.polylines {
				t.Errorf("expected %d polylines, got %d", tt.polylines, got)
			}
			if got := strings.Count(svg, "<circle"); got != 1 {
				t.Errorf("expected one marker, got %d", got)
			}
			if !strings.Contains(svg, `fill="red"`) {
				t.Error("marker should use the scene's marker colour")
			}
		})
	}
}

func TestHelixSVGEscapesColors(t *testing.T) {
	c := testCurve(t, helix.Params{ThetaMax: 2 * math.Pi, NumFrames: 20})
	opts := scene.DefaultOptions()
	opts.Style.PathColor = `blue" onload="x`
	opts.Style.MarkerColor = "<red>"
	opts.Style.ZeroLineColor = `a&"b`
	sc, err := scene.Build(c, opts)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	svg := HelixSVG(sc, 10, viz.NewCamera(), 300, 300)
	if strings.Contains(svg, `onload="x"`) || strings.Contains(svg, "<red>") {
		t.Fatalf("color leaked into markup: %s", svg)
	}
	for _, want := range []string{`stroke="blue&quot; onload=&quot;x"`, `fill="&lt;red&gt;"`, `stroke="a&amp;&quot;b"`} {
		if !strings.Contains(svg, want) {
			t.Errorf("expected %s in output", want)
		}
	}
	if err := xml.Unmarshal([]byte(svg), new(struct{})); err != nil {
		t.Errorf("output is not well-formed xml: %v", err)
	}
}

func TestHelixSVGNilScene(t *testing.T) {
	if got := HelixSVG(nil, 0, nil, 100, 100); got != "" {
		t.Errorf("expected empty output, got %q", got)
	}
}

func TestCanvasToSVG(t *testing.T) {
	c := viz.NewCanvas(4, 2)
	c.Set(0, 0)
	c.Set(7, 7)

	svg := CanvasToSVG(c, 2, "#000")
	if got := strings.Count(svg, "<circle"); got != 2 {
		t.Errorf("expected 2 dots, got %d", got)
	}
	if CanvasToSVG(nil, 1, "#000") != "" {
		t.Error("nil canvas should produce no output")
	}
}

func TestComponentsPNG(t *testing.T) {
	c := testCurve(t, helix.Params{ThetaMax: 4 * math.Pi, NumFrames: 100})

	var buf bytes.Buffer
	if err := EncodeComponentsPNG(&buf, c, DefaultChartWidth, DefaultChartHeight); err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("output is not a png: %v", err)
	}
	if img.Bounds().Dx() <= img.Bounds().Dy() {
		t.Errorf("expected a landscape chart, got %v", img.Bounds())
	}

	path := filepath.Join(t.TempDir(), "components.png")
	if err := WriteComponentsPNG(c, path, DefaultChartWidth, DefaultChartHeight); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if fi, err := os.Stat(path); err != nil || fi.Size() == 0 {
		t.Errorf("expected a non-empty file, stat err %v", err)
	}
}

func TestComponentsPlotRejectsEmptyCurve(t *testing.T) {
	if _, err := ComponentsPlot(&helix.Curve{}); err == nil {
		t.Error("expected an error for an empty curve")
	}
}
