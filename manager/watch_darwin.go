//go:build darwin

package manager

import (
	"context"
	"unsafe"

	"github.com/ebitengine/purego"
)

// watch uses IOKit's device-matching/removal callbacks as a wakeup
// signal: CoreFoundation delivers a callback the instant a USB HID
// interface appears or disappears, and this re-runs the same diff poll
// would run on a timer, just event-driven instead of on a fixed
// interval. The actual enumeration and binding logic stays identical to
// the polling strategy — only what triggers it differs.
func (m *Manager) watch(ctx context.Context, events chan<- hotplugEvent) {
	iokit, err := purego.Dlopen("/System/Library/Frameworks/IOKit.framework/IOKit", purego.RTLD_NOW|purego.RTLD_GLOBAL)
	if err != nil {
		m.fallbackPoll(ctx, events)
		return
	}
	cf, err := purego.Dlopen("/System/Library/Frameworks/CoreFoundation.framework/CoreFoundation", purego.RTLD_NOW|purego.RTLD_GLOBAL)
	if err != nil {
		m.fallbackPoll(ctx, events)
		return
	}

	var (
		hidManagerCreate              func(uintptr, uint32) uintptr
		hidManagerSetDeviceMatching   func(uintptr, uintptr)
		hidManagerRegisterMatchingCB  func(uintptr, uintptr, uintptr)
		hidManagerRegisterRemovalCB   func(uintptr, uintptr, uintptr)
		hidManagerScheduleWithRunLoop func(uintptr, uintptr, uintptr)
		hidManagerOpen                func(uintptr, uint32) int32
		runLoopGetCurrent             func() uintptr
		runLoopRun                    func()
		runLoopDefaultMode            uintptr
	)
	purego.RegisterLibFunc(&hidManagerCreate, iokit, "IOHIDManagerCreate")
	purego.RegisterLibFunc(&hidManagerSetDeviceMatching, iokit, "IOHIDManagerSetDeviceMatching")
	purego.RegisterLibFunc(&hidManagerRegisterMatchingCB, iokit, "IOHIDManagerRegisterDeviceMatchingCallback")
	purego.RegisterLibFunc(&hidManagerRegisterRemovalCB, iokit, "IOHIDManagerRegisterDeviceRemovalCallback")
	purego.RegisterLibFunc(&hidManagerScheduleWithRunLoop, iokit, "IOHIDManagerScheduleWithRunLoop")
	purego.RegisterLibFunc(&hidManagerOpen, iokit, "IOHIDManagerOpenWithOptions")
	purego.RegisterLibFunc(&runLoopGetCurrent, cf, "CFRunLoopGetCurrent")
	purego.RegisterLibFunc(&runLoopRun, cf, "CFRunLoopRun")

	modeSym, err := purego.Dlsym(cf, "kCFRunLoopDefaultMode")
	if err != nil {
		m.fallbackPoll(ctx, events)
		return
	}
	runLoopDefaultMode = *(*uintptr)(unsafe.Pointer(modeSym))

	const kIOHIDOptionsTypeNone = 0
	mgr := hidManagerCreate(0, kIOHIDOptionsTypeNone)
	hidManagerSetDeviceMatching(mgr, 0) // nil: match every HID device, we filter ourselves

	wake := func() { m.poll(events) }

	matchCB := purego.NewCallback(func(_, _, _, _ uintptr) uintptr {
		wake()
		return 0
	})
	removeCB := purego.NewCallback(func(_, _, _, _ uintptr) uintptr {
		wake()
		return 0
	})
	hidManagerRegisterMatchingCB(mgr, matchCB, 0)
	hidManagerRegisterRemovalCB(mgr, removeCB, 0)
	hidManagerScheduleWithRunLoop(mgr, runLoopGetCurrent(), runLoopDefaultMode)
	hidManagerOpen(mgr, kIOHIDOptionsTypeNone)

	go runLoopRun()

	<-ctx.Done()
}

// fallbackPoll is used when the IOKit symbols this file expects aren't
// resolvable (unexpected OS framework layout, sandboxed process, ...):
// degrade to the same timer-based strategy every other platform uses
// rather than fail hot-plug detection outright.
func (m *Manager) fallbackPoll(ctx context.Context, events chan<- hotplugEvent) {
	tickerPoll(ctx, m, events)
}
