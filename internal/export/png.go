package export

import (
	"fmt"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/san-kum/helixviz/internal/helix"
)

const (
	DefaultChartWidth  = 8 * vg.Inch
	DefaultChartHeight = 4 * vg.Inch
)

// ComponentsPlot charts the real and imaginary parts of e^(iθ) against θ.
func ComponentsPlot(c *helix.Curve) (*plot.Plot, error) {
	if c == nil || c.Len() < helix.MinSamples {
		return nil, helix.ErrTooFewSamples
	}

	re := make(plotter.XYs, c.Len())
	im := make(plotter.XYs, c.Len())
	for i, pt := range c.Points {
		re[i] = plotter.XY{X: c.Theta[i], Y: pt.X}
		im[i] = plotter.XY{X: c.Theta[i], Y: pt.Y}
	}

	p := plot.New()
	p.Title.Text = "Components of e^(iθ)"
	p.X.Label.Text = "θ"
	p.Y.Label.Text = "value"
	p.X.Min, p.X.Max = 0, c.Params.ThetaMax
	p.Y.Min, p.Y.Max = -1.5, 1.5
	p.Add(plotter.NewGrid())

	cos, err := plotter.NewLine(re)
	if err != nil {
		return nil, fmt.Errorf("cos line: %w", err)
	}
	cos.Color = plotutil.Color(0)
	sin, err := plotter.NewLine(im)
	if err != nil {
		return nil, fmt.Errorf("sin line: %w", err)
	}
	sin.Color = plotutil.Color(1)

	p.Add(cos, sin)
	p.Legend.Add("cos θ", cos)
	p.Legend.Add("sin θ", sin)
	p.Legend.Top = true
	return p, nil
}

// WriteComponentsPNG saves the components chart to path. The image format
// follows the file extension, so .svg and .pdf work as well.
func WriteComponentsPNG(c *helix.Curve, path string, width, height vg.Length) error {
	p, err := ComponentsPlot(c)
	if err != nil {
		return err
	}
	return p.Save(width, height, path)
}

// EncodeComponentsPNG writes the components chart as PNG to w.
func EncodeComponentsPNG(w io.Writer, c *helix.Curve, width, height vg.Length) error {
	p, err := ComponentsPlot(c)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(width, height, "png")
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}
