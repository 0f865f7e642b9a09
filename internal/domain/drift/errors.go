package drift

import "errors"

// Sentinel kinds for drift detection errors.
var (
	// ErrBadInput means a batch input was empty, malformed, or its schema
	// did not match; the run aborts instead of reporting a false negative.
	ErrBadInput = errors.New("invalid drift input")
)
