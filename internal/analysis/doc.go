// Package analysis checks a sampled helix numerically.
//
//   - [Spectrum]: magnitude spectrum of a real sample column
//   - [DominantBin]: strongest non-DC frequency bin
//   - [Turns]: revolutions read off the spectrum of the cos θ column
//   - [UnitCircleError]: worst deviation of |e^(iθ)| from 1
//
// For the default curve (θ up to 10π) the cos θ column completes five
// periods, so the dominant bin is 5:
//
//	c, _ := helix.Sample(helix.DefaultParams())
//	rep := analysis.Analyze(c)
//	fmt.Println(rep.SpectralTurns) // 5
package analysis
