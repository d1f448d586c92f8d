package classifier

import "errors"

// Sentinel errors for persisted classifier state. Both mean the caller has
// to retrain or abort.
var (
	// ErrNotFound indicates the classifier file does not exist.
	ErrNotFound = errors.New("classifier: state not found")

	// ErrCorrupt indicates the classifier state exists but cannot be decoded.
	ErrCorrupt = errors.New("classifier: corrupt state")
)
