package outline

import "errors"

// Sentinel errors for the outline package.
var (
	// ErrGridSize is returned when grid dimensions and weights disagree.
	ErrGridSize = errors.New("outline: invalid grid size")

	// ErrMalformedBoundary is returned by a strict Tracer when a boundary
	// walk cannot be closed. Well-formed boundaries always close.
	ErrMalformedBoundary = errors.New("outline: boundary walk did not close")
)
