package epicycle

import "errors"

// ErrInvalidInput is wrapped by every error returned while constructing a
// boundary, spectrum or engine. Use errors.Is to test for it.
var ErrInvalidInput = errors.New("invalid input")
