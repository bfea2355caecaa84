package device

import (
	"context"
	"time"

	"github.com/streamdock-hub/go-streamdock/transport"
)

// DefaultHeartbeatIntervalSeconds is how often the heartbeat loop pings
// the device when Policy.HeartbeatInterval is left at zero.
const DefaultHeartbeatIntervalSeconds = 10

// heartbeater sends one heartbeat command per interval as long as the
// transport is writable, matching the vendor SDK's HeartBeat component:
// a condition-variable wait bounded at the interval, woken early only by
// shutdown.
type heartbeater struct {
	dev      *Device
	interval time.Duration
}

func newHeartbeater(dev *Device, intervalSeconds int) *heartbeater {
	if intervalSeconds <= 0 {
		intervalSeconds = DefaultHeartbeatIntervalSeconds
	}
	return &heartbeater{dev: dev, interval: time.Duration(intervalSeconds) * time.Second}
}

func (h *heartbeater) run(ctx context.Context) {
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !h.dev.CanWrite() {
				continue
			}
			_ = h.dev.send(transport.OpHeartbeat, 0, 0, nil)
		}
	}
}
