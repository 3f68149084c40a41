package journal

import "errors"

// Sentinel kinds for journal errors.
var (
	ErrInvalidCapacity = errors.New("invalid journal capacity")
)
