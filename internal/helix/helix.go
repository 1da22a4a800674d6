package helix

import (
	"fmt"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/floats"
)

const (
	DefaultThetaMax  = 10 * math.Pi
	DefaultNumFrames = 500
	MinSamples       = 2
)

type Params struct {
	ThetaMax  float64
	NumFrames int
}

func DefaultParams() Params {
	return Params{ThetaMax: DefaultThetaMax, NumFrames: DefaultNumFrames}
}

func (p Params) Validate() error {
	if p.NumFrames < MinSamples {
		return fmt.Errorf("%w (got %d)", ErrTooFewSamples, p.NumFrames)
	}
	if p.ThetaMax <= 0 || math.IsInf(p.ThetaMax, 0) || math.IsNaN(p.ThetaMax) {
		return fmt.Errorf("%w (got %v)", ErrInvalidExtent, p.ThetaMax)
	}
	return nil
}

// Step is the constant angular distance between neighbouring samples.
func (p Params) Step() float64 {
	return p.ThetaMax / float64(p.NumFrames-1)
}

type PathPoint struct {
	X, Y, Z float64
}

// At maps an angle onto the helix. The xy-plane is the complex plane.
func At(theta float64) PathPoint {
	w := cmplx.Exp(complex(0, theta))
	return PathPoint{X: real(w), Y: imag(w), Z: theta}
}

type Curve struct {
	Params Params
	Theta  []float64
	Points []PathPoint
}

// Sample evaluates the helix at Params.NumFrames evenly spaced angles over
// [0, Params.ThetaMax], both endpoints included.
func Sample(p Params) (*Curve, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	theta := floats.Span(make([]float64, p.NumFrames), 0, p.ThetaMax)
	theta[len(theta)-1] = p.ThetaMax

	points := make([]PathPoint, len(theta))
	for i, th := range theta {
		points[i] = At(th)
	}

	return &Curve{Params: p, Theta: theta, Points: points}, nil
}

func (c *Curve) Len() int { return len(c.Points) }

// Components returns the x, y and z columns of the curve.
func (c *Curve) Components() (x, y, z []float64) {
	x = make([]float64, len(c.Points))
	y = make([]float64, len(c.Points))
	z = make([]float64, len(c.Points))
	for i, p := range c.Points {
		x[i], y[i], z[i] = p.X, p.Y, p.Z
	}
	return x, y, z
}

// Turns is the number of full revolutions around the z axis.
func (c *Curve) Turns() float64 {
	return c.Params.ThetaMax / (2 * math.Pi)
}
