package recorder

import "errors"

// Sentinel kinds for recorder errors. Store faults degrade recording to
// no-op; they are logged and counted, never propagated to the decision path.
// Reads on a closed recorder fail with ErrClosed.
var (
	ErrStoreUnavailable = errors.New("decision store unavailable")
	ErrClosed           = errors.New("recorder closed")
)
