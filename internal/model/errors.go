package model

import (
	"errors"
	"fmt"
)

// Resolution errors: a referenced row does not exist. Surfaced to callers as
// client errors and never retried.
var (
	ErrModelNotFound        = errors.New("model not found")
	ErrPersonaNotFound      = errors.New("persona not found")
	ErrOutputFormatNotFound = errors.New("output format not found")
	ErrHistoryNotFound      = errors.New("conversation history not found")
)

var (
	// ErrUnknownVendor means a model's vendor is outside the closed vendor
	// set. This is a configuration error, not a recoverable condition.
	ErrUnknownVendor = errors.New("unknown vendor")

	// ErrNotVisionCapable means the request carried image data for a model
	// whose is_vision flag is false. The dispatcher trusts the flag and
	// fails instead of silently dropping the image.
	ErrNotVisionCapable = errors.New("model is not vision capable")

	// ErrNotOwner means the caller tried to delete a conversation saved by
	// a different user.
	ErrNotOwner = errors.New("conversation does not belong to user")
)

// VendorError wraps a failure raised by a vendor client. A single vendor
// failure fails the whole dispatch; there is no retry or fallback vendor.
type VendorError struct {
	Vendor string
	Err    error
}

func (e *VendorError) Error() string {
	return fmt.Sprintf("%s: %v", e.Vendor, e.Err)
}

func (e *VendorError) Unwrap() error {
	return e.Err
}

// IsResolutionError reports whether err is a missing-row lookup failure.
func IsResolutionError(err error) bool {
	return errors.Is(err, ErrModelNotFound) ||
		errors.Is(err, ErrPersonaNotFound) ||
		errors.Is(err, ErrOutputFormatNotFound) ||
		errors.Is(err, ErrHistoryNotFound)
}
