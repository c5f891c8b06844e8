package lattice

import "errors"

// Domain errors for grid construction and parameter validation.
var (
	// ErrDimensions indicates non-positive grid dimensions.
	ErrDimensions = errors.New("lattice: grid dimensions must be positive")

	// ErrIterations indicates a non-positive iteration count.
	ErrIterations = errors.New("lattice: maxIters must be positive")

	// ErrDensity indicates a non-positive reference density.
	ErrDensity = errors.New("lattice: density must be positive")

	// ErrRelaxation indicates omega outside the physical range (0, 2].
	ErrRelaxation = errors.New("lattice: omega must be in (0, 2]")

	// ErrSizeMismatch indicates grid and mask dimensions disagree.
	ErrSizeMismatch = errors.New("lattice: grid and mask dimensions differ")
)
