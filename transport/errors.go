package transport

import (
	"fmt"

	"github.com/streamdock-hub/go-streamdock/sdkerr"
)

func errFrameMismatch(msg string) error {
	return fmt.Errorf("%s: %w", msg, sdkerr.ErrProtocolFrameMismatch)
}

func errDeviceLost(msg string, cause error) error {
	if cause != nil {
		return fmt.Errorf("%s: %v: %w", msg, cause, sdkerr.ErrDeviceLost)
	}
	return fmt.Errorf("%s: %w", msg, sdkerr.ErrDeviceLost)
}
