package manager

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/streamdock-hub/go-streamdock/device"
	"github.com/streamdock-hub/go-streamdock/hidio"
)

type fakeHIDDevice struct{ closed bool }

func (f *fakeHIDDevice) Write(data []byte) (int, error)              { return len(data), nil }
func (f *fakeHIDDevice) ReadTimeout(buf []byte, timeoutMs int) (int, error) { return 0, nil }
func (f *fakeHIDDevice) Close() error                                { f.closed = true; return nil }

// fakeBinding simulates one N4-class device that can be "unplugged" by
// the test clearing its present flag between enumerate calls.
type fakeBinding struct {
	present bool
	info    hidio.DeviceInfo
}

func (b *fakeBinding) Enumerate(vendorID, productID uint16) ([]hidio.DeviceInfo, error) {
	if !b.present || vendorID != b.info.VendorID || productID != b.info.ProductID {
		return nil, nil
	}
	return []hidio.DeviceInfo{b.info}, nil
}

func (b *fakeBinding) Open(info hidio.DeviceInfo) (hidio.Device, error) {
	return &fakeHIDDevice{}, nil
}

func TestTryBindAndUnbindHotPlugRemoval(t *testing.T) {
	binding := &fakeBinding{
		present: true,
		info: hidio.DeviceInfo{
			Path: "/dev/fake-n4", VendorID: 0x6602, ProductID: 0x1001,
			UsagePage: 0, Usage: 0, Interface: 0,
		},
	}

	var connected *device.Device
	var disconnectedPath string
	m := New(Options{Binding: binding}, func(d *device.Device) {
		connected = d
	}, func(path string) {
		disconnectedPath = path
	})

	events := make(chan hotplugEvent, 4)
	m.enumerateOnce(events)
	ev := <-events
	m.handle(ev)

	require.NotNil(t, connected)
	assert.Equal(t, "/dev/fake-n4", connected.Path)
	_, ok := m.Get("/dev/fake-n4")
	assert.True(t, ok)

	// Simulate unplug: binding no longer reports the device present.
	binding.present = false
	m.poll(events)
	ev = <-events
	m.handle(ev)

	assert.Equal(t, "/dev/fake-n4", disconnectedPath)
	_, ok = m.Get("/dev/fake-n4")
	assert.False(t, ok)
}
