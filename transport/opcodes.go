package transport

// Opcode identifies a command sent to the device, or (in a response
// frame) the command it acknowledges. Byte values are this
// implementation's own assignment: the original vendor SDK's wire
// constants live in a closed transport library never exposed to its own
// C ABI header, so there is no existing numbering to match.
type Opcode uint16

const (
	OpWakeupScreen Opcode = 0x0001 + iota
	OpKeyBrightness
	OpClearKey
	OpClearAllKeys
	OpRefresh
	OpSleep
	OpDisconnect
	OpHeartbeat
	OpKeyImage
	OpBackgroundBitmap
	OpBackgroundImage
	OpBackgroundFrame
	OpBackgroundFrameClear
	OpLedBrightness
	OpLedColor
	OpLedReset
	OpConfig
	OpModeChange

	// K1Pro-only keyboard-backlight opcodes.
	OpKeyboardBacklightBrightness
	OpKeyboardLightingEffect
	OpKeyboardLightingSpeed
	OpKeyboardRGBBacklight
	OpKeyboardOSMode
)

// String names an opcode for log lines; unrecognized values print their
// numeric form.
func (o Opcode) String() string {
	switch o {
	case OpWakeupScreen:
		return "wakeup_screen"
	case OpKeyBrightness:
		return "key_brightness"
	case OpClearKey:
		return "clear_key"
	case OpClearAllKeys:
		return "clear_all_keys"
	case OpRefresh:
		return "refresh"
	case OpSleep:
		return "sleep"
	case OpDisconnect:
		return "disconnect"
	case OpHeartbeat:
		return "heartbeat"
	case OpKeyImage:
		return "key_image"
	case OpBackgroundBitmap:
		return "background_bitmap"
	case OpBackgroundImage:
		return "background_image"
	case OpBackgroundFrame:
		return "background_frame"
	case OpBackgroundFrameClear:
		return "background_frame_clear"
	case OpLedBrightness:
		return "led_brightness"
	case OpLedColor:
		return "led_color"
	case OpLedReset:
		return "led_reset"
	case OpConfig:
		return "config"
	case OpModeChange:
		return "mode_change"
	case OpKeyboardBacklightBrightness:
		return "keyboard_backlight_brightness"
	case OpKeyboardLightingEffect:
		return "keyboard_lighting_effect"
	case OpKeyboardLightingSpeed:
		return "keyboard_lighting_speed"
	case OpKeyboardRGBBacklight:
		return "keyboard_rgb_backlight"
	case OpKeyboardOSMode:
		return "keyboard_os_mode"
	default:
		return "unknown_opcode"
	}
}

// ConfigState is the device-side on/off/follow tri-state used by the
// background-GIF and RGB "config" vector, matching the original vendor
// SDK's ConfigState enum byte-for-byte.
type ConfigState uint8

const (
	ConfigDefault ConfigState = 0x11
	ConfigOn      ConfigState = 0x11
	ConfigOff     ConfigState = 0xFF
	ConfigFollow  ConfigState = 0x1F
)
