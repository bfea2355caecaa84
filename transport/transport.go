package transport

import (
	"sync"
	"time"

	"github.com/streamdock-hub/go-streamdock/hidio"
)

// ReportSizes configures the three HID report lengths a bound model
// uses. FeatureSize is rarely exercised by this SDK but is kept for
// parity with the vendor transport's setReportSize(input, output,
// feature) call.
type ReportSizes struct {
	Input   int
	Output  int
	Feature int
}

// Options configures a Transport at construction time.
type Options struct {
	ReportID byte
	Sizes    ReportSizes
	// HeaderOffset is the number of leading bytes in every input report
	// ahead of the "ACK" response signature — 0 normally, 1 for
	// K1Pro-class devices whose input reports carry their report-id
	// byte. Outbound reports are unaffected: they always start with the
	// report-id byte followed directly by "CMD".
	HeaderOffset int
	WriteTimeout time.Duration
	ReadTimeout  time.Duration
}

// DefaultWriteTimeout is used when Options.WriteTimeout is zero. A write
// that doesn't complete within this window is treated as device loss,
// matching §7's "write-timeout == DeviceLost" rule.
const DefaultWriteTimeout = 3 * time.Second

// DefaultReadTimeout bounds a single blocking HID read. It is short
// enough that the input reader loop can still notice context
// cancellation promptly.
const DefaultReadTimeout = 100 * time.Millisecond

type writeJob struct {
	frames [][]byte
	done   chan error
}

// Transport owns one open HID device session and serializes every write
// issued against it through a single internal goroutine, so that no two
// callers can interleave partial report chunks on the wire.
type Transport struct {
	opt Options
	dev hidio.Device

	queue  chan writeJob
	stopCh chan struct{}
	wg     sync.WaitGroup

	mu      sync.Mutex
	lost    bool
	lastErr error
}

// New starts a Transport bound to an already-open HID device. Close must
// be called to release the writer goroutine.
func New(dev hidio.Device, opt Options) *Transport {
	if opt.WriteTimeout <= 0 {
		opt.WriteTimeout = DefaultWriteTimeout
	}
	if opt.ReadTimeout <= 0 {
		opt.ReadTimeout = DefaultReadTimeout
	}
	t := &Transport{
		opt:    opt,
		dev:    dev,
		queue:  make(chan writeJob, 64),
		stopCh: make(chan struct{}),
	}
	t.wg.Add(1)
	go t.writeLoop()
	return t
}

func (t *Transport) writeLoop() {
	defer t.wg.Done()
	for {
		select {
		case job := <-t.queue:
			job.done <- t.writeFrames(job.frames)
		case <-t.stopCh:
			// Drain and fail anything still queued so senders don't
			// block forever on a closed transport.
			for {
				select {
				case job := <-t.queue:
					job.done <- errDeviceLost("transport closed", nil)
				default:
					return
				}
			}
		}
	}
}

func (t *Transport) writeFrames(frames [][]byte) error {
	for _, frame := range frames {
		deadline := time.Now().Add(t.opt.WriteTimeout)
		_, err := t.dev.Write(frame)
		if err != nil {
			t.markLost(err)
			return errDeviceLost("write", err)
		}
		if time.Now().After(deadline) {
			t.markLost(nil)
			return errDeviceLost("write exceeded timeout", nil)
		}
	}
	return nil
}

func (t *Transport) markLost(cause error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.lost = true
	t.lastErr = cause
}

// CanWrite reports whether the session is still believed live. Every
// public Send call is a no-op once this goes false.
func (t *Transport) CanWrite() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return !t.lost
}

// LastError returns the error that caused device loss, or nil if the
// session is still live or was never marked lost.
func (t *Transport) LastError() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lastErr
}

// ClearTaskQueue drops every write that hasn't started yet, without
// marking the device lost. Queued callers receive sdkerr.ErrDeviceLost-
// free cancellation by way of a plain nil (their write simply never
// happened) — callers that care must check CanWrite separately.
func (t *Transport) ClearTaskQueue() {
	for {
		select {
		case job := <-t.queue:
			job.done <- nil
		default:
			return
		}
	}
}

// Send frames header+payload into report-sized chunks and submits them
// to the single writer goroutine, blocking until they are written or the
// session is found to be lost.
func (t *Transport) Send(h Header, payload []byte) error {
	if !t.CanWrite() {
		return errDeviceLost("send after device lost", nil)
	}
	frames := t.chunk(h, payload)
	done := make(chan error, 1)
	select {
	case t.queue <- writeJob{frames: frames, done: done}:
	case <-t.stopCh:
		return errDeviceLost("send after close", nil)
	}
	return <-done
}

// chunk splits h+payload into report.Output-sized frames. Only the first
// frame carries the header (with the full payload length, not the
// per-chunk length); every frame after the first is pure payload
// continuation padded to the report size.
func (t *Transport) chunk(h Header, payload []byte) [][]byte {
	reportSize := t.opt.Sizes.Output
	// dataOffset: byte 0 is always the HID report-id byte (0x04 on
	// K1Pro-class devices, 0x00 otherwise) and "CMD" starts right after
	// it. HeaderOffset only shifts the parse window of input reports.
	dataOffset := 1
	headerLen := dataOffset + HeaderSize

	first := make([]byte, reportSize)
	first[0] = t.opt.ReportID
	h.PayloadLength = uint16(len(payload))
	h.Encode(first[dataOffset:])

	n := copy(first[headerLen:], payload)
	frames := [][]byte{first}
	remaining := payload[n:]

	contCap := reportSize - 1 // reserve byte 0 for report id on every frame
	for len(remaining) > 0 {
		frame := make([]byte, reportSize)
		frame[0] = t.opt.ReportID
		take := contCap
		if take > len(remaining) {
			take = len(remaining)
		}
		copy(frame[1:], remaining[:take])
		frames = append(frames, frame)
		remaining = remaining[take:]
	}
	return frames
}

// Close stops the writer goroutine and closes the underlying HID
// device. Safe to call once; further Send calls return ErrDeviceLost.
func (t *Transport) Close() error {
	close(t.stopCh)
	t.wg.Wait()
	t.markLost(nil)
	return t.dev.Close()
}

// Read performs one bounded HID read and parses it as a response frame.
// A timeout with zero bytes read is not an error — it is reported back
// as (Response{}, false, nil) so the input reader loop can treat it as
// "nothing happened this tick" rather than a fault.
func (t *Transport) Read() (Response, bool, error) {
	buf := make([]byte, t.opt.Sizes.Input)
	n, err := t.dev.ReadTimeout(buf, int(t.opt.ReadTimeout/time.Millisecond))
	if err != nil {
		t.markLost(err)
		return Response{}, false, errDeviceLost("read", err)
	}
	if n == 0 {
		return Response{}, false, nil
	}
	resp, err := DecodeResponse(buf[:n], t.opt.HeaderOffset)
	if err != nil {
		return Response{}, false, err
	}
	return resp, true, nil
}
