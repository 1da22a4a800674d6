package analysis

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/helixviz/internal/helix"
)

// Spectrum returns the magnitudes of bins 0..n/2 of the DFT of samples.
func Spectrum(samples []float64) []float64 {
	if len(samples) == 0 {
		return nil
	}
	coeffs := fft.FFTReal(samples)
	mags := make([]float64, len(samples)/2+1)
	for i := range mags {
		mags[i] = cmplx.Abs(coeffs[i])
	}
	return mags
}

// DominantBin returns the index of the largest magnitude, ignoring the DC
// bin. It returns 0 when there is nothing but DC.
func DominantBin(mags []float64) int {
	if len(mags) < 2 {
		return 0
	}
	return floats.MaxIdx(mags[1:]) + 1
}

// Turns estimates the number of revolutions of the curve from the
// spectrum of its real component.
func Turns(c *helix.Curve) int {
	x, _, _ := c.Components()
	return DominantBin(Spectrum(x))
}

// UnitCircleError is the largest |x²+y²-1| over the sampled points.
func UnitCircleError(c *helix.Curve) float64 {
	worst := 0.0
	for _, p := range c.Points {
		worst = math.Max(worst, math.Abs(p.X*p.X+p.Y*p.Y-1))
	}
	return worst
}

type Report struct {
	Samples         int     `json:"samples"`
	ThetaMax        float64 `json:"theta_max"`
	Step            float64 `json:"step"`
	Turns           float64 `json:"turns"`
	SpectralTurns   int     `json:"spectral_turns"`
	UnitCircleError float64 `json:"unit_circle_error"`
	MinStep         float64 `json:"min_step"`
	MaxStep         float64 `json:"max_step"`
}

func Analyze(c *helix.Curve) Report {
	rep := Report{
		Samples:         c.Len(),
		ThetaMax:        c.Params.ThetaMax,
		Step:            c.Params.Step(),
		Turns:           c.Turns(),
		SpectralTurns:   Turns(c),
		UnitCircleError: UnitCircleError(c),
	}
	if len(c.Theta) > 1 {
		steps := make([]float64, len(c.Theta)-1)
		floats.SubTo(steps, c.Theta[1:], c.Theta[:len(c.Theta)-1])
		rep.MinStep = floats.Min(steps)
		rep.MaxStep = floats.Max(steps)
	}
	return rep
}
