// Package manager owns the process-wide device registry: it enumerates
// and hot-plug-watches HID interfaces, binds the ones that match a
// catalog descriptor into a running device.Device, and tears them down
// again on removal.
package manager

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/streamdock-hub/go-streamdock/catalog"
	"github.com/streamdock-hub/go-streamdock/device"
	"github.com/streamdock-hub/go-streamdock/hidio"
	"github.com/streamdock-hub/go-streamdock/transport"
)

// DefaultPollIntervalSeconds is how often the polling hot-plug strategy
// re-enumerates when Options.PollIntervalSeconds is left at zero.
const DefaultPollIntervalSeconds = 2

// Options configures a Manager.
type Options struct {
	Binding             hidio.Binding
	PollIntervalSeconds int
	DevicePolicy        device.Policy
}

// Manager is the process-wide, path-keyed StreamDock registry. Only one
// Manager should run against a given set of physical devices at a time —
// concurrent ownership by multiple processes is out of scope, per the
// vendor protocol's assumption that the host that bound a device serves
// it exclusively.
type Manager struct {
	opt Options

	mu      sync.Mutex
	devices map[string]*device.Device

	onConnect    func(*device.Device)
	onDisconnect func(path string)
}

// New constructs a Manager. onConnect and onDisconnect may be nil.
func New(opt Options, onConnect func(*device.Device), onDisconnect func(path string)) *Manager {
	if opt.Binding == nil {
		opt.Binding = hidio.NewKaralabeBinding()
	}
	if opt.PollIntervalSeconds <= 0 {
		opt.PollIntervalSeconds = DefaultPollIntervalSeconds
	}
	return &Manager{
		opt:          opt,
		devices:      make(map[string]*device.Device),
		onConnect:    onConnect,
		onDisconnect: onDisconnect,
	}
}

// Devices returns a snapshot of every currently-bound device, keyed by
// HID path.
func (m *Manager) Devices() map[string]*device.Device {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]*device.Device, len(m.devices))
	for k, v := range m.devices {
		out[k] = v
	}
	return out
}

// Run starts hot-plug watching and blocks until ctx is cancelled. It
// picks the push-notification strategy where the platform provides one
// (darwin, via watch in watch_darwin.go) and falls back to polling
// everywhere else.
func (m *Manager) Run(ctx context.Context) {
	events := make(chan hotplugEvent, 16)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		m.watch(ctx, events)
	}()

	m.enumerateOnce(events)

	for {
		select {
		case <-ctx.Done():
			wg.Wait()
			m.closeAll()
			return
		case ev := <-events:
			m.handle(ev)
		}
	}
}

type hotplugEvent struct {
	added   []hidio.DeviceInfo
	removed []string
}

// enumerateOnce does the initial scan on startup so devices already
// attached when Run is called get bound immediately rather than waiting
// for the first poll tick.
func (m *Manager) enumerateOnce(events chan<- hotplugEvent) {
	infos := m.enumerateAll()
	if len(infos) > 0 {
		events <- hotplugEvent{added: infos}
	}
}

func (m *Manager) enumerateAll() []hidio.DeviceInfo {
	var all []hidio.DeviceInfo
	for _, d := range catalog.Models() {
		infos, err := m.opt.Binding.Enumerate(d.VendorID, d.ProductID)
		if err != nil {
			continue
		}
		all = append(all, infos...)
	}
	return all
}

func (m *Manager) handle(ev hotplugEvent) {
	for _, info := range ev.added {
		m.tryBind(info)
	}
	for _, path := range ev.removed {
		m.unbind(path)
	}
}

func (m *Manager) tryBind(info hidio.DeviceInfo) {
	m.mu.Lock()
	_, already := m.devices[info.Path]
	m.mu.Unlock()
	if already {
		return
	}

	desc, ok := catalog.Matches(info)
	if !ok {
		return
	}

	raw, err := m.opt.Binding.Open(info)
	if err != nil {
		log.Printf("[manager] open %s failed: %v", info.Path, err)
		return
	}

	tr := transport.New(raw, transport.Options{
		ReportID:     desc.ReportID,
		Sizes:        transport.ReportSizes{Input: desc.InputReport, Output: desc.OutputReport, Feature: desc.FeatureReport},
		HeaderOffset: desc.HeaderOffset,
	})

	// The vendor protocol reads firmware version over its own control
	// path; this contract has no equivalent read defined, so the HID
	// product string (where real StreamDock firmware embeds its
	// version marker, e.g. "V25.N3") stands in for it.
	dev := device.Bind(info.Path, info.Serial, desc, info.Product, tr, m.opt.DevicePolicy)

	m.mu.Lock()
	m.devices[info.Path] = dev
	m.mu.Unlock()

	log.Printf("[manager] bound %s", desc)
	if m.onConnect != nil {
		m.onConnect(dev)
	}
}

func (m *Manager) unbind(path string) {
	m.mu.Lock()
	dev, ok := m.devices[path]
	if ok {
		delete(m.devices, path)
	}
	m.mu.Unlock()
	if !ok {
		return
	}

	if err := dev.Close(); err != nil {
		log.Printf("[manager] close %s: %v", path, err)
	}
	log.Printf("[manager] unbound %s", path)
	if m.onDisconnect != nil {
		m.onDisconnect(path)
	}
}

func (m *Manager) closeAll() {
	m.mu.Lock()
	paths := make([]string, 0, len(m.devices))
	for p := range m.devices {
		paths = append(paths, p)
	}
	m.mu.Unlock()
	for _, p := range paths {
		m.unbind(p)
	}
}

// Get returns the bound device at path, if any.
func (m *Manager) Get(path string) (*device.Device, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.devices[path]
	return d, ok
}

var errNotFound = fmt.Errorf("manager: device not found")

// ErrNotFound is returned by operations that take a path and find
// nothing bound there.
func ErrNotFound() error { return errNotFound }
