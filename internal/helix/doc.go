// Package helix samples the curve traced by e^(iθ) when the angle itself is
// used as the height coordinate.
//
// The package is the numeric core of helixviz:
//
//   - [Params]: angular extent and sample count
//   - [PathPoint]: one (cos θ, sin θ, θ) triple
//   - [Curve]: the ordered samples produced by [Sample]
//
// # Example
//
//	c, err := helix.Sample(helix.DefaultParams())
//	if err != nil {
//	    return err
//	}
//	x, y, z := c.Components()
//
// Sampling is pure: identical parameters always yield bit-identical curves.
package helix
