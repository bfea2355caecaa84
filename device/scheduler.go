package device

import (
	"context"
	"sync"
	"time"

	"github.com/streamdock-hub/go-streamdock/transport"
)

// DefaultSchedulerTickMillis is the scheduler's wakeup granularity when
// Policy.SchedulerTickMillis is left at zero.
const DefaultSchedulerTickMillis = 10

// AnimationTrack is the per-target playback state for one running
// animation: its frames, each frame's display delay, which frame is
// current, and how much time has accumulated toward advancing past it.
//
// Advancement subtracts the current frame's delay from the accumulated
// time whenever it's exceeded, looping until the accumulator is back
// below the next frame's delay. This is the only algorithm that stays
// in sync with an uneven delay vector over a long run — a fixed-tick
// count of "elapsed / baseDelay" frame-advances drifts the moment any
// frame's delay differs from the first frame's, compounding error every
// loop.
type AnimationTrack struct {
	Frames      [][]byte
	Delays      []time.Duration
	current     int
	accumulated time.Duration
}

// advance folds dt into the track's accumulator and returns the frame to
// display now, plus whether the current frame actually changed (so the
// caller can skip a redundant write when nothing advanced this tick).
func (t *AnimationTrack) advance(dt time.Duration) (frame []byte, changed bool) {
	if len(t.Frames) == 0 {
		return nil, false
	}
	t.accumulated += dt
	for t.accumulated >= t.Delays[t.current] {
		t.accumulated -= t.Delays[t.current]
		t.current = (t.current + 1) % len(t.Frames)
		changed = true
	}
	return t.Frames[t.current], changed
}

// AnimationScheduler runs one background loop per Device, advancing
// every target's AnimationTrack on each tick and writing the frame that
// changed. Targets are keyed by logical key index; 0 is the background/
// whole-screen target.
type AnimationScheduler struct {
	dev  *Device
	tick time.Duration

	mu     sync.Mutex
	tracks map[int]*AnimationTrack
}

func newAnimationScheduler(dev *Device, tickMillis int) *AnimationScheduler {
	if tickMillis <= 0 {
		tickMillis = DefaultSchedulerTickMillis
	}
	return &AnimationScheduler{
		dev:    dev,
		tick:   time.Duration(tickMillis) * time.Millisecond,
		tracks: make(map[int]*AnimationTrack),
	}
}

// Start registers an animation track for target, replacing whatever was
// running there before.
func (s *AnimationScheduler) Start(target int, frames [][]byte, delays []time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tracks[target] = &AnimationTrack{Frames: frames, Delays: delays}
}

// stop removes the track for target, if any. Called with the scheduler's
// own lock, never the device's transport write lock, to respect the
// writer -> scheduler -> listener lock-ordering rule.
func (s *AnimationScheduler) stop(target int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tracks, target)
}

func (s *AnimationScheduler) stopAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tracks = make(map[int]*AnimationTrack)
}

func (s *AnimationScheduler) run(ctx context.Context) {
	ticker := time.NewTicker(s.tick)
	defer ticker.Stop()
	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			dt := now.Sub(last)
			last = now
			s.step(dt)
		}
	}
}

func (s *AnimationScheduler) step(dt time.Duration) {
	if !s.dev.CanWrite() {
		return
	}
	s.mu.Lock()
	targets := make([]int, 0, len(s.tracks))
	frames := make(map[int][]byte, len(s.tracks))
	for target, track := range s.tracks {
		frame, changed := track.advance(dt)
		if changed {
			targets = append(targets, target)
			frames[target] = frame
		}
	}
	s.mu.Unlock()

	if len(targets) == 0 {
		return
	}

	for _, target := range targets {
		op := transport.OpKeyImage
		if target == 0 {
			op = transport.OpBackgroundFrame
		}
		_ = s.dev.send(op, 0, uint8(target), frames[target])
	}
	_ = s.dev.Refresh()
}
