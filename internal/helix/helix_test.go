package helix

import (
	"errors"
	"math"
	"testing"
)

const tol = 1e-12

func TestSampleDefault(t *testing.T) {
	c, err := Sample(DefaultParams())
	if err != nil {
		t.Fatalf("sample failed: %v", err)
	}

	if c.Len() != 500 {
		t.Fatalf("expected 500 points, got %d", c.Len())
	}

	first := c.Points[0]
	if first.X != 1.0 || first.Y != 0.0 || first.Z != 0.0 {
		t.Errorf("expected first point (1, 0, 0), got %+v", first)
	}

	last := c.Points[499]
	if math.Abs(last.X-1.0) > 1e-9 || math.Abs(last.Y) > 1e-9 {
		t.Errorf("expected last point near (1, 0), got (%f, %f)", last.X, last.Y)
	}
	if last.Z != 10*math.Pi {
		t.Errorf("expected last z %v, got %v", 10*math.Pi, last.Z)
	}
}

func TestSampleEndpoints(t *testing.T) {
	tests := []struct {
		name string
		p    Params
	}{
		{"default", DefaultParams()},
		{"two samples", Params{ThetaMax: 1.0, NumFrames: 2}},
		{"single turn", Params{ThetaMax: 2 * math.Pi, NumFrames: 100}},
		{"odd extent", Params{ThetaMax: 7.3, NumFrames: 333}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Sample(tt.p)
			if err != nil {
				t.Fatalf("sample failed: %v", err)
			}
			if c.Theta[0] != 0 {
				t.Errorf("theta[0] = %v, want 0", c.Theta[0])
			}
			if got := c.Theta[len(c.Theta)-1]; got != tt.p.ThetaMax {
				t.Errorf("theta[last] = %v, want %v", got, tt.p.ThetaMax)
			}
		})
	}
}

func TestSampleUnitCircle(t *testing.T) {
	c, err := Sample(DefaultParams())
	if err != nil {
		t.Fatalf("sample failed: %v", err)
	}

	for i, p := range c.Points {
		if r := p.X*p.X + p.Y*p.Y; math.Abs(r-1) > tol {
			t.Fatalf("point %d off the unit circle: x²+y² = %v", i, r)
		}
		if p.Z != c.Theta[i] {
			t.Fatalf("point %d: z = %v, theta = %v", i, p.Z, c.Theta[i])
		}
	}
}

func TestSampleEvenSpacing(t *testing.T) {
	p := DefaultParams()
	c, err := Sample(p)
	if err != nil {
		t.Fatalf("sample failed: %v", err)
	}

	step := p.Step()
	if math.Abs(step-10*math.Pi/499) > tol {
		t.Errorf("step = %v, want %v", step, 10*math.Pi/499)
	}

	for i := 1; i < len(c.Theta); i++ {
		d := c.Theta[i] - c.Theta[i-1]
		if d <= 0 {
			t.Fatalf("theta not strictly increasing at %d", i)
		}
		if math.Abs(d-step) > 1e-9 {
			t.Fatalf("uneven spacing at %d: %v vs %v", i, d, step)
		}
	}
}

func TestSampleIdempotent(t *testing.T) {
	a, err := Sample(DefaultParams())
	if err != nil {
		t.Fatalf("sample failed: %v", err)
	}
	b, err := Sample(DefaultParams())
	if err != nil {
		t.Fatalf("sample failed: %v", err)
	}

	for i := range a.Points {
		if math.Float64bits(a.Points[i].X) != math.Float64bits(b.Points[i].X) ||
			math.Float64bits(a.Points[i].Y) != math.Float64bits(b.Points[i].Y) ||
			math.Float64bits(a.Points[i].Z) != math.Float64bits(b.Points[i].Z) {
			t.Fatalf("point %d differs between runs: %+v vs %+v", i, a.Points[i], b.Points[i])
		}
	}
}

func TestSampleInvalidParams(t *testing.T) {
	tests := []struct {
		name string
		p    Params
		want error
	}{
		{"zero samples", Params{ThetaMax: 1, NumFrames: 0}, ErrTooFewSamples},
		{"one sample", Params{ThetaMax: 1, NumFrames: 1}, ErrTooFewSamples},
		{"zero extent", Params{ThetaMax: 0, NumFrames: 10}, ErrInvalidExtent},
		{"negative extent", Params{ThetaMax: -1, NumFrames: 10}, ErrInvalidExtent},
		{"infinite extent", Params{ThetaMax: math.Inf(1), NumFrames: 10}, ErrInvalidExtent},
		{"nan extent", Params{ThetaMax: math.NaN(), NumFrames: 10}, ErrInvalidExtent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Sample(tt.p)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestComponents(t *testing.T) {
	c, err := Sample(Params{ThetaMax: math.Pi, NumFrames: 3})
	if err != nil {
		t.Fatalf("sample failed: %v", err)
	}

	x, y, z := c.Components()
	if len(x) != 3 || len(y) != 3 || len(z) != 3 {
		t.Fatalf("unexpected column lengths %d %d %d", len(x), len(y), len(z))
	}
	if math.Abs(x[1]) > tol || math.Abs(y[1]-1) > tol {
		t.Errorf("expected (0, 1) at θ=π/2, got (%v, %v)", x[1], y[1])
	}
	if math.Abs(x[2]+1) > tol || z[2] != math.Pi {
		t.Errorf("expected x=-1, z=π at the end, got x=%v z=%v", x[2], z[2])
	}
}

func TestTurns(t *testing.T) {
	c, _ := Sample(DefaultParams())
	if math.Abs(c.Turns()-5) > tol {
		t.Errorf("expected 5 turns, got %v", c.Turns())
	}
}
