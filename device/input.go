package device

import (
	"context"
	"log"

	"github.com/streamdock-hub/go-streamdock/sdkerr"
)

// inputReader is the bounded-timeout HID read loop: it repeatedly reads
// one response frame from the transport, validates it, translates the
// hardware key code through the model's input table, and dispatches the
// resulting Event to the device's listener registry.
type inputReader struct {
	dev *Device
}

func newInputReader(dev *Device) *inputReader { return &inputReader{dev: dev} }

func (r *inputReader) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		resp, ok, err := r.dev.transport.Read()
		if err != nil {
			if sdkerr.Is(err, sdkerr.ErrDeviceLost) {
				log.Printf("[device] %s: input reader stopping, device lost: %v", r.dev.descriptor.Model, err)
				return
			}
			// Malformed frame: drop it, keep reading.
			log.Printf("[device] %s: dropped malformed response: %v", r.dev.descriptor.Model, err)
			continue
		}
		if !ok {
			continue // timeout, nothing read this tick
		}

		// Payload is everything after "OK" in the response frame. The
		// first two bytes are reserved (always zero); the hw/event pair
		// follows them, but K1Pro-class models (HeaderOffset==1) carry
		// one extra reserved word in front of it: "ACK" <op> "OK" 00 00
		// 0B 01 … decodes key 11 at payload[2]/[3] on a standard model,
		// while "04 ACK" <op> "OK" 00 00 00 00 05 01 … decodes key 1 at
		// payload[4]/[5] on K1Pro.
		eventOffset := 2 + 2*r.dev.descriptor.HeaderOffset
		if len(resp.Payload) < eventOffset+2 {
			continue
		}

		readValue := resp.Payload[eventOffset]
		eventValue := resp.Payload[eventOffset+1]
		ev, matched := r.dispatch(readValue, eventValue)
		if !matched {
			continue
		}
		r.dev.Listeners.Dispatch(ev)
	}
}

// dispatch reverse-looks-up the raw hardware code through the model's
// input table and classifies eventValue into a RegisterEvent. It returns
// matched=false for hardware codes the model's table doesn't recognize,
// so unrecognized frames are silently ignored rather than misreported.
func (r *inputReader) dispatch(readValue, eventValue byte) (Event, bool) {
	logicalIndex, known := r.dev.descriptor.InputTable[readValue]
	if !known {
		return Event{}, false
	}
	kind := RegisterEvent(eventValue)
	switch kind {
	case EventKeyPress, EventKeyRelease, EventKnobLeft, EventKnobRight,
		EventKnobPress, EventKnobRelease, EventSwipeLeft, EventSwipeRight,
		EventToggleUp, EventToggleDown:
		return Event{Index: int(logicalIndex), Kind: kind}, true
	default:
		return Event{}, false
	}
}
