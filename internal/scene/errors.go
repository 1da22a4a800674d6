package scene

import "errors"

// ErrInvalidOptions is returned by Options.Validate and Build.
var ErrInvalidOptions = errors.New("scene: invalid options")
