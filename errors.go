package sbd

import "errors"

// Sentinel errors for conditions callers may need to handle differently.
var (
	// ErrClassifierRequired indicates a trained classifier is needed but none
	// was supplied and self-training was not allowed.
	ErrClassifierRequired = errors.New("sbd: trained classifier required")
)
