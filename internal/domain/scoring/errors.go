package scoring

import "errors"

// Sentinel kinds for scoring errors.
var (
	// ErrModelUnavailable means no usable artifact is loaded. This is a
	// startup/config fault surfaced as service-unavailable, never retried
	// inline.
	ErrModelUnavailable = errors.New("model artifact not loaded")

	// ErrBadArtifact means the artifact file exists but its shape is unusable.
	ErrBadArtifact = errors.New("invalid model artifact")
)
