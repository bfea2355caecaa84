package device

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/streamdock-hub/go-streamdock/catalog"
	"github.com/streamdock-hub/go-streamdock/transport"
)

// scriptedReadDevice feeds a fixed sequence of raw HID input reports to
// ReadTimeout, one per call, then reports timeouts (0, nil) forever —
// enough to drive inputReader.run through exactly one real frame.
type scriptedReadDevice struct {
	frames [][]byte
	next   int
}

func (s *scriptedReadDevice) Write(data []byte) (int, error) { return len(data), nil }

func (s *scriptedReadDevice) ReadTimeout(buf []byte, timeoutMs int) (int, error) {
	if s.next >= len(s.frames) {
		return 0, nil
	}
	frame := s.frames[s.next]
	s.next++
	n := copy(buf, frame)
	return n, nil
}

func (s *scriptedReadDevice) Close() error { return nil }

// TestRunDecodesEventScenario1NonK1Pro reproduces the literal non-K1Pro
// input report "ACK" <op> "OK" 00 00 0B 01 ... and expects the exact
// listener for (11, KeyPress) to fire.
func TestRunDecodesEventScenario1NonK1Pro(t *testing.T) {
	d, ok := catalog.Lookup(0x6602, 0x1001) // N4: identity hw->logical table
	require.True(t, ok)

	frame := make([]byte, d.InputReport)
	copy(frame, []byte{'A', 'C', 'K', 0x00, 0x01, 'O', 'K', 0x00, 0x00, 0x0B, 0x01})

	dev := buildTestDevice(t, d, &scriptedReadDevice{frames: [][]byte{frame}})
	defer dev.transport.Close()

	var got Event
	done := make(chan struct{})
	dev.Listeners.On(11, EventKeyPress, Listener{Func: func(e Event) { got = e; close(done) }})

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	r := newInputReader(dev)
	go r.run(ctx)

	select {
	case <-done:
	case <-time.After(200 * time.Millisecond):
		t.Fatal("listener never fired")
	}
	assert.Equal(t, 11, got.Index)
	assert.Equal(t, EventKeyPress, got.Kind)
}

// TestRunDecodesEventScenario2K1Pro reproduces the literal K1Pro input
// report 04 "ACK" <op> "OK" 00 00 00 00 05 01 ... and expects the
// listener for (1, KeyPress) to fire.
func TestRunDecodesEventScenario2K1Pro(t *testing.T) {
	d, ok := catalog.Lookup(0x6603, 0x1015) // K1Pro: 0x05 -> logical key 1
	require.True(t, ok)

	frame := make([]byte, d.InputReport)
	copy(frame, []byte{0x04, 'A', 'C', 'K', 0x00, 0x01, 'O', 'K', 0x00, 0x00, 0x00, 0x00, 0x05, 0x01})

	dev := buildTestDevice(t, d, &scriptedReadDevice{frames: [][]byte{frame}})
	defer dev.transport.Close()

	var got Event
	done := make(chan struct{})
	dev.Listeners.On(1, EventKeyPress, Listener{Func: func(e Event) { got = e; close(done) }})

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	r := newInputReader(dev)
	go r.run(ctx)

	select {
	case <-done:
	case <-time.After(200 * time.Millisecond):
		t.Fatal("listener never fired")
	}
	assert.Equal(t, 1, got.Index)
	assert.Equal(t, EventKeyPress, got.Kind)
}

func buildTestDevice(t *testing.T, d catalog.Descriptor, hid *scriptedReadDevice) *Device {
	t.Helper()
	tr := transport.New(hid, transport.Options{
		ReportID:     d.ReportID,
		Sizes:        transport.ReportSizes{Input: d.InputReport, Output: d.OutputReport},
		HeaderOffset: d.HeaderOffset,
		ReadTimeout:  5 * time.Millisecond,
	})
	return &Device{descriptor: d, transport: tr, Listeners: NewListenerRegistry()}
}

// Event-decode scenario, N4-like model: key 3 (hardware code 0x03)
// pressed reports logical index 3, key press.
func TestDispatchN4LikeKeyPress(t *testing.T) {
	d, ok := catalog.Lookup(0x6602, 0x1001)
	require.True(t, ok)

	dev := &Device{descriptor: d}
	r := &inputReader{dev: dev}

	ev, matched := r.dispatch(0x03, byte(EventKeyPress))
	require.True(t, matched)
	assert.Equal(t, 3, ev.Index)
	assert.Equal(t, EventKeyPress, ev.Kind)
}

// Event-decode scenario, K1Pro-like model: hardware codes are not
// sequential (knob/key layout), so the reverse lookup must use the
// model's own table rather than assume raw-code == logical index.
func TestDispatchK1ProLikeKnobPress(t *testing.T) {
	d, ok := catalog.Lookup(0x6603, 0x1015)
	require.True(t, ok)

	dev := &Device{descriptor: d}
	r := &inputReader{dev: dev}

	// Hardware code 0x04 maps to logical key 5 on K1Pro's table.
	ev, matched := r.dispatch(0x04, byte(EventKnobPress))
	require.True(t, matched)
	assert.Equal(t, 5, ev.Index)
	assert.Equal(t, EventKnobPress, ev.Kind)
}

func TestDispatchUnknownHardwareCodeIsIgnored(t *testing.T) {
	d, ok := catalog.Lookup(0x6602, 0x1001)
	require.True(t, ok)
	dev := &Device{descriptor: d}
	r := &inputReader{dev: dev}

	_, matched := r.dispatch(0xEE, byte(EventKeyPress))
	assert.False(t, matched)
}

func TestListenerRegistryDispatchesExactAndAny(t *testing.T) {
	reg := NewListenerRegistry()
	var exactSeen, anySeen Event

	reg.On(3, EventKeyPress, Listener{Func: func(e Event) { exactSeen = e }})
	reg.OnAny(EventKeyPress, Listener{Func: func(e Event) { anySeen = e }})

	reg.Dispatch(Event{Index: 3, Kind: EventKeyPress})

	assert.Equal(t, 3, exactSeen.Index)
	assert.Equal(t, 3, anySeen.Index)
}
