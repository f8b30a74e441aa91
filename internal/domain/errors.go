package domain

import "errors"

// Shared data errors, matched with errors.Is across packages.
var (
	// ErrInsufficientData marks an empty or missing input series.
	// Batch callers skip the series; single-series callers fail.
	ErrInsufficientData = errors.New("insufficient data")

	// ErrMisalignedInput marks an adapter output whose length does not
	// match the input index. This is a programming error in the adapter
	// boundary and is propagated, never repaired.
	ErrMisalignedInput = errors.New("misaligned input")
)
