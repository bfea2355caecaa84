package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/streamdock-hub/go-streamdock/hidio"
)

func TestLookupKnownModel(t *testing.T) {
	d, ok := Lookup(0x6602, 0x1001)
	require.True(t, ok)
	assert.Equal(t, "StreamDock N4", d.Model)
	assert.Equal(t, 15, d.Geometry.KeyCount)
}

func TestLookupUnknownModel(t *testing.T) {
	_, ok := Lookup(0xFFFF, 0xFFFF)
	assert.False(t, ok)
}

func TestMatchesRejectsNonDataInterface(t *testing.T) {
	info := hidio.DeviceInfo{VendorID: 0x6602, ProductID: 0x1001, UsagePage: 0x0001, Usage: 0x0006, Interface: 1}
	_, ok := Matches(info)
	assert.False(t, ok)
}

func TestN3V25FirmwareGating(t *testing.T) {
	d, ok := Lookup(0x6602, 0x1005)
	require.True(t, ok)

	v25 := d.ResolveCapabilities("V25.N3-1.0.3")
	assert.False(t, v25.IsDualDevice)
	assert.False(t, v25.SupportsBackgroundGif)

	v3 := d.ResolveCapabilities("V3.N3-1.0.1")
	assert.False(t, v3.SupportsBackgroundGif)
	assert.False(t, v3.HasRGBLed)
	assert.True(t, v3.IsDualDevice, "V3.N3 marker must not disable dual-device mode")

	unmarked := d.ResolveCapabilities("1.2.0")
	assert.Equal(t, d.Capabilities, unmarked)
}

func TestK1ProUsesReportIDShift(t *testing.T) {
	d, ok := Lookup(0x6603, 0x1015)
	require.True(t, ok)
	assert.Equal(t, 1, d.HeaderOffset)
	assert.Equal(t, byte(0x04), d.ReportID)
}
