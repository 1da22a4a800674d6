package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/helixviz/internal/scene"
	"github.com/san-kum/helixviz/internal/viz"
)

const svgBackground = "#ffffff"

// CanvasToSVG converts a braille canvas to SVG, one circle per lit dot.
func CanvasToSVG(canvas *viz.Canvas, scale float64, fill string) string {
	if canvas == nil {
		return ""
	}

	width := float64(canvas.SubWidth()) * scale
	height := float64(canvas.SubHeight()) * scale

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
<g fill="%s">
`, width, height, width, height, svgBackground, escape(fill)))

	dotRadius := scale * 0.4
	for y := 0; y < canvas.SubHeight(); y++ {
		for x := 0; x < canvas.SubWidth(); x++ {
			if !canvas.Lit(x, y) {
				continue
			}
			cx := float64(x)*scale + scale/2
			cy := float64(y)*scale + scale/2
			sb.WriteString(fmt.Sprintf("<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\"/>\n", cx, cy, dotRadius))
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// HelixSVG projects frame k of the scene through cam onto a width x height
// drawing. The full path is drawn faintly behind the revealed prefix.
// Frame 0 is the initial state.
func HelixSVG(sc *scene.Scene, k int, cam *viz.Camera, width, height int) string {
	if sc == nil || len(sc.Data) < 2 {
		return ""
	}
	if cam == nil {
		cam = viz.NewCamera()
	}
	box := viz.NewBox(sc.Layout.Scene)
	project := func(x, y, z float64) (int, int, bool) {
		return cam.Project(box.Map(x, y, z), width, height)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, svgBackground))

	if title := sc.Layout.Title.Text; title != "" {
		sb.WriteString(fmt.Sprintf("<title>%s</title>\n", escape(title)))
	}

	zr := sc.Layout.Scene.ZAxis.Range
	if x0, y0, ok0 := project(0, 0, zr[0]); ok0 {
		if x1, y1, ok1 := project(0, 0, zr[1]); ok1 {
			sb.WriteString(fmt.Sprintf("<line x1=\"%d\" y1=\"%d\" x2=\"%d\" y2=\"%d\" stroke=\"%s\" stroke-width=\"1\"/>\n",
				x0, y0, x1, y1, escape(sc.Layout.Scene.ZAxis.ZeroLineColor)))
		}
	}

	full := sc.FullPath()
	path, marker := viz.Traces(sc, k)

	if _, ok := sc.Frame(k); ok {
		sb.WriteString(polyline(full, project, lineColor(full), 1, 0.25))
	}
	sb.WriteString(polyline(path, project, lineColor(path), lineWidth(path), 1))

	if marker.Marker != nil {
		for i := 0; i < marker.Len(); i++ {
			x, y, ok := project(marker.X[i], marker.Y[i], marker.Z[i])
			if !ok {
				continue
			}
			alpha := 1.0
			if marker.Marker.Opacity != nil {
				alpha = *marker.Marker.Opacity
			}
			sb.WriteString(fmt.Sprintf("<circle cx=\"%d\" cy=\"%d\" r=\"%.1f\" fill=\"%s\" fill-opacity=\"%.2f\"/>\n",
				x, y, marker.Marker.Size/2, escape(marker.Marker.Color), alpha))
		}
	}

	sb.WriteString("</svg>")
	return sb.String()
}

func polyline(t scene.Trace, project func(x, y, z float64) (int, int, bool), stroke string, width, opacity float64) string {
	var pts []string
	for i := 0; i < t.Len(); i++ {
		x, y, ok := project(t.X[i], t.Y[i], t.Z[i])
		if !ok {
			continue
		}
		pts = append(pts, fmt.Sprintf("%d,%d", x, y))
	}
	if len(pts) < 2 {
		return ""
	}
	return fmt.Sprintf("<polyline fill=\"none\" stroke=\"%s\" stroke-width=\"%.1f\" stroke-opacity=\"%.2f\" points=\"%s\"/>\n",
		escape(stroke), width, opacity, strings.Join(pts, " "))
}

func lineColor(t scene.Trace) string {
	if t.Line == nil || t.Line.Color == "" {
		return "blue"
	}
	return t.Line.Color
}

func lineWidth(t scene.Trace) float64 {
	if t.Line == nil || t.Line.Width == 0 {
		return 2
	}
	return t.Line.Width
}

var svgEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")

func escape(s string) string { return svgEscaper.Replace(s) }
