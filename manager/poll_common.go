package manager

import (
	"context"
	"time"
)

// tickerPoll re-enumerates every PollIntervalSeconds and emits an event
// carrying every interface currently present (handle skips paths that
// are already bound) plus every bound path that no longer appears. No
// event is sent when nothing is present and nothing was removed. Shared by the default (non-darwin) polling strategy and by
// the darwin push-notification strategy's fallback path.
func tickerPoll(ctx context.Context, m *Manager, events chan<- hotplugEvent) {
	ticker := time.NewTicker(time.Duration(m.opt.PollIntervalSeconds) * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.poll(events)
		}
	}
}

func (m *Manager) poll(events chan<- hotplugEvent) {
	current := m.enumerateAll()
	currentPaths := make(map[string]struct{}, len(current))
	for _, info := range current {
		currentPaths[info.Path] = struct{}{}
	}

	m.mu.Lock()
	var removed []string
	for path := range m.devices {
		if _, stillPresent := currentPaths[path]; !stillPresent {
			removed = append(removed, path)
		}
	}
	m.mu.Unlock()

	if len(current) == 0 && len(removed) == 0 {
		return
	}
	events <- hotplugEvent{added: current, removed: removed}
}
