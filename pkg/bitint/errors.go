package bitint

import "errors"

var (
	// ErrWidth is returned when a width outside [1, MaxWidth] is requested.
	ErrWidth = errors.New("bitint: width out of range")

	// ErrBase is the panic value of FloorLog and CeilLog for bases below 2.
	ErrBase = errors.New("bitint: logarithm base must be at least 2")

	// ErrTruncated is returned by the strict dilution variants when the
	// input has set bits that do not fit the diluted result.
	ErrTruncated = errors.New("bitint: input exceeds allowed bits")
)
