package core

import "errors"

// ---------------------------------------------------------------------------
// Sentinel errors – exported so callers can compare with errors.Is()
// ---------------------------------------------------------------------------
var (
	// ErrConfiguration reports a parameter the caller-side defaults could not
	// repair, e.g. an unrecognised moving-average mode.
	ErrConfiguration = errors.New("configuration error")

	// ErrPrecondition reports a computation kernel invoked with parameters
	// its caller was required to validate first.
	ErrPrecondition = errors.New("precondition violated")

	// ErrMisaligned reports input series of different lengths.
	ErrMisaligned = errors.New("series are not aligned")
)
