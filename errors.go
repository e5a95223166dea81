package warpsearch

import "errors"

var (
	// ErrInvalidK is returned when k is not positive.
	ErrInvalidK = errors.New("k must be positive")

	// ErrInvalidRadius is returned when a search radius is negative.
	ErrInvalidRadius = errors.New("radius must be non-negative")
)
