// Package sdkerr defines the error taxonomy shared by every layer of the
// SDK: transport, catalog, device, and image pipeline all return errors
// that wrap one of the sentinels below so callers can classify a failure
// with errors.Is instead of string-matching.
package sdkerr

import "errors"

var (
	// ErrParamInvalid means a caller passed an out-of-range or nonsensical
	// argument (bad key index, negative brightness, ...). Local to the
	// call; the device session is unaffected.
	ErrParamInvalid = errors.New("streamdock: invalid parameter")

	// ErrDeviceLost means the underlying HID session is gone — unplugged,
	// write timed out, or the OS closed the handle out from under us.
	// Every in-flight and future operation on the device fails with this
	// until it is rebound.
	ErrDeviceLost = errors.New("streamdock: device lost")

	// ErrTimeout means a read produced nothing within the deadline. This
	// is not itself failure: an empty read is the expected idle case for
	// the input reader loop. It only becomes ErrDeviceLost when a write
	// times out.
	ErrTimeout = errors.New("streamdock: read timeout")

	// ErrProtocolFrameMismatch means a response frame failed the ACK/OK
	// signature check or arrived short. The frame is dropped; the
	// session is not considered lost.
	ErrProtocolFrameMismatch = errors.New("streamdock: malformed response frame")

	// ErrEncoderFailure means the image pipeline could not produce bytes
	// for a render operation (decode error, unsupported container, ...).
	// The render is abandoned; the device session is unaffected.
	ErrEncoderFailure = errors.New("streamdock: image encode failure")

	// ErrStateInvalid means an operation was attempted against a
	// capability the bound model doesn't have (LED color on a model with
	// no RGB, background GIF on a model that doesn't support it, ...).
	// Callers see this returned; it is never raised as a panic.
	ErrStateInvalid = errors.New("streamdock: unsupported on this model")
)

// Is reports whether err ultimately wraps target, matching the stdlib
// errors.Is contract. Exported purely so call sites that already import
// sdkerr don't need a second import of "errors" just for this.
func Is(err, target error) bool { return errors.Is(err, target) }
