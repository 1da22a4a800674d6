package helix

import "errors"

var (
	// ErrTooFewSamples indicates fewer than two samples were requested.
	ErrTooFewSamples = errors.New("helix: at least two samples are required to define a path")

	// ErrInvalidExtent indicates a non-positive or non-finite angular extent.
	ErrInvalidExtent = errors.New("helix: theta_max must be a positive finite number")
)
