//go:build !darwin

package manager

import "context"

// watch runs the default polling hot-plug strategy everywhere except
// darwin, where a push-notification variant (watch_darwin.go) is used
// instead.
func (m *Manager) watch(ctx context.Context, events chan<- hotplugEvent) {
	tickerPoll(ctx, m, events)
}
