package device

import (
	"fmt"

	"github.com/streamdock-hub/go-streamdock/sdkerr"
	"github.com/streamdock-hub/go-streamdock/transport"
)

// SetLedBrightness sets RGB LED brightness, 0-100. Returns
// sdkerr.ErrStateInvalid on a model with no RGB LEDs, per the
// capability-gated-operation rule: nothing is sent to the device, and the
// caller gets the error back rather than a panic or protocol error.
func (d *Device) SetLedBrightness(brightness uint8) error {
	if !d.capabilities.HasRGBLed {
		return fmt.Errorf("%s has no RGB LEDs: %w", d.descriptor.Model, sdkerr.ErrStateInvalid)
	}
	if brightness > 100 {
		return fmt.Errorf("brightness %d: %w", brightness, sdkerr.ErrParamInvalid)
	}
	return d.send(transport.OpLedBrightness, 0, 0, []byte{brightness})
}

// SetLedColor sets the first count LEDs to (r, g, b).
func (d *Device) SetLedColor(count int, r, g, b uint8) error {
	if !d.capabilities.HasRGBLed {
		return fmt.Errorf("%s has no RGB LEDs: %w", d.descriptor.Model, sdkerr.ErrStateInvalid)
	}
	if count < 0 || count > d.capabilities.LedCount {
		return fmt.Errorf("led count %d: %w", count, sdkerr.ErrParamInvalid)
	}
	payload := []byte{uint8(count), r, g, b}
	return d.send(transport.OpLedColor, 0, 0, payload)
}

// ResetLedColor turns every LED off.
func (d *Device) ResetLedColor() error {
	if !d.capabilities.HasRGBLed {
		return fmt.Errorf("%s has no RGB LEDs: %w", d.descriptor.Model, sdkerr.ErrStateInvalid)
	}
	return d.send(transport.OpLedReset, 0, 0, nil)
}

// SetBackgroundGifConfig toggles whether a running background animation
// should play, matching the vendor SDK's tri-state config vector:
// Default/On, Off, or Follow (track key-display power state).
func (d *Device) SetBackgroundGifConfig(state transport.ConfigState) error {
	if !d.capabilities.SupportsConfig {
		return fmt.Errorf("%s has no config surface: %w", d.descriptor.Model, sdkerr.ErrStateInvalid)
	}
	return d.send(transport.OpConfig, 0, 0, []byte{byte(state)})
}

// SetKeyboardBacklightBrightness is a K1Pro-only operation; other models
// return ErrStateInvalid.
func (d *Device) SetKeyboardBacklightBrightness(brightness uint8) error {
	if !d.isK1ProClass() {
		return fmt.Errorf("%s has no keyboard backlight: %w", d.descriptor.Model, sdkerr.ErrStateInvalid)
	}
	return d.send(transport.OpKeyboardBacklightBrightness, 0, 0, []byte{brightness})
}

// SetKeyboardRGBBacklight is a K1Pro-only operation.
func (d *Device) SetKeyboardRGBBacklight(r, g, b uint8) error {
	if !d.isK1ProClass() {
		return fmt.Errorf("%s has no keyboard backlight: %w", d.descriptor.Model, sdkerr.ErrStateInvalid)
	}
	return d.send(transport.OpKeyboardRGBBacklight, 0, 0, []byte{r, g, b})
}

// isK1ProClass identifies the report-id-shifted keyboard-backlight
// family by its distinguishing wire trait rather than a name string
// comparison, so a future K1Pro hardware revision with the same
// HeaderOffset still gets the right surface.
func (d *Device) isK1ProClass() bool {
	return d.descriptor.HeaderOffset == 1
}
