// Package device implements the running driver for one attached
// StreamDock unit: the Transport it owns, its resolved capability set,
// and the three cooperating worker loops (input reader, heartbeat,
// animation scheduler) a bound Device starts.
package device

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/streamdock-hub/go-streamdock/catalog"
	"github.com/streamdock-hub/go-streamdock/sdkerr"
	"github.com/streamdock-hub/go-streamdock/transport"
)

// Policy configures the three worker loops. Zero-value fields fall back
// to each loop's own package default (DefaultHeartbeatIntervalSeconds,
// DefaultSchedulerTickMillis).
type Policy struct {
	HeartbeatInterval   int // seconds; 0 = DefaultHeartbeatIntervalSeconds
	SchedulerTickMillis int // 0 = DefaultSchedulerTickMillis
}

// Device is the live driver for one bound StreamDock unit. Everything
// that touches the wire goes through d.transport; everything that
// decides what to send lives in the feature-controller files in this
// package.
type Device struct {
	Path   string
	Serial string

	descriptor   catalog.Descriptor
	capabilities catalog.Capabilities // resolved, immutable after Bind
	transport    *transport.Transport

	Listeners *ListenerRegistry
	scheduler *AnimationScheduler
	heartbeat *heartbeater
	reader    *inputReader

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// Bind constructs a Device from a catalog descriptor and an already-open
// Transport, resolves firmware-gated capabilities, and starts the input
// reader, heartbeat, and animation scheduler loops. Callers own the
// returned Device's lifetime and must call Close to tear it down.
func Bind(path, serial string, d catalog.Descriptor, firmwareVersion string, tr *transport.Transport, policy Policy) *Device {
	ctx, cancel := context.WithCancel(context.Background())
	dev := &Device{
		Path:         path,
		Serial:       serial,
		descriptor:   d,
		capabilities: d.ResolveCapabilities(firmwareVersion),
		transport:    tr,
		Listeners:    NewListenerRegistry(),
		ctx:          ctx,
		cancel:       cancel,
	}
	dev.scheduler = newAnimationScheduler(dev, policy.SchedulerTickMillis)
	dev.heartbeat = newHeartbeater(dev, policy.HeartbeatInterval)
	dev.reader = newInputReader(dev)

	dev.wg.Add(3)
	go func() { defer dev.wg.Done(); dev.reader.run(ctx) }()
	go func() { defer dev.wg.Done(); dev.heartbeat.run(ctx) }()
	go func() { defer dev.wg.Done(); dev.scheduler.run(ctx) }()

	log.Printf("[device] bound %s at %s", d.Model, path)
	return dev
}

// Descriptor returns the catalog descriptor this device was bound from.
func (d *Device) Descriptor() catalog.Descriptor { return d.descriptor }

// Capabilities returns the resolved, firmware-adjusted capability set.
// Safe to read from any goroutine without locking: it never changes
// after Bind.
func (d *Device) Capabilities() catalog.Capabilities { return d.capabilities }

// CanWrite reports whether the underlying transport still believes the
// device is attached.
func (d *Device) CanWrite() bool { return d.transport.CanWrite() }

// LastError returns the transport's last recorded fault, if any.
func (d *Device) LastError() error { return d.transport.LastError() }

// outOfRange reports whether keyIndex falls outside the union of
// [1, KeyCount] and [SecondScreenMinKey, SecondScreenMaxKey]. Index 0 is
// reserved for the background/whole-screen target and is never out of
// range here.
func (d *Device) outOfRange(keyIndex int) bool {
	if keyIndex == 0 {
		return false
	}
	inPrimary := keyIndex >= 1 && keyIndex <= d.descriptor.Geometry.KeyCount
	inSecondScreen := d.capabilities.HasSecondScreen &&
		keyIndex >= d.capabilities.SecondScreenMinKey &&
		keyIndex <= d.capabilities.SecondScreenMaxKey
	return !inPrimary && !inSecondScreen
}

// Close cancels the context shared by all three worker loops (input
// reader, heartbeat, scheduler) at once, waits for every loop to return,
// and then closes the transport. The loops are not stopped one after
// another in a fixed order.
func (d *Device) Close() error {
	d.cancel()
	d.wg.Wait()
	return d.transport.Close()
}

// --- one-shot transport operations -----------------------------------

func (d *Device) send(op transport.Opcode, sub uint8, target uint8, payload []byte) error {
	if !d.CanWrite() {
		return fmt.Errorf("%s: %w", d.descriptor.Model, sdkerr.ErrDeviceLost)
	}
	h := transport.Header{Opcode: uint16(op), SubOpcode: sub, Target: target}
	return d.transport.Send(h, payload)
}

// WakeupScreen wakes the device's display(s) from sleep.
func (d *Device) WakeupScreen() error { return d.send(transport.OpWakeupScreen, 0, 0, nil) }

// Sleep puts the device's display(s) to sleep.
func (d *Device) Sleep() error { return d.send(transport.OpSleep, 0, 0, nil) }

// Refresh commits any pending framebuffer writes to the physical
// display.
func (d *Device) Refresh() error { return d.send(transport.OpRefresh, 0, 0, nil) }

// SetKeyBrightness sets overall key-display brightness, 0-100.
func (d *Device) SetKeyBrightness(brightness uint8) error {
	if brightness > 100 {
		return fmt.Errorf("brightness %d: %w", brightness, sdkerr.ErrParamInvalid)
	}
	return d.send(transport.OpKeyBrightness, 0, 0, []byte{brightness})
}

// ClearKey clears the image on one key.
func (d *Device) ClearKey(keyIndex int) error {
	if d.outOfRange(keyIndex) {
		return fmt.Errorf("key %d: %w", keyIndex, sdkerr.ErrParamInvalid)
	}
	d.scheduler.stop(keyIndex)
	return d.send(transport.OpClearKey, 0, uint8(keyIndex), nil)
}

// ClearAllKeys clears every key's image and stops every running
// animation track.
func (d *Device) ClearAllKeys() error {
	d.scheduler.stopAll()
	return d.send(transport.OpClearAllKeys, 0, 0, nil)
}

// Disconnect tells the device the host session is ending; it does not
// itself close the local transport (callers should still call Close).
func (d *Device) Disconnect() error { return d.send(transport.OpDisconnect, 0, 0, nil) }
