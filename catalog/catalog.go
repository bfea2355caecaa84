// Package catalog maps a HID (vendor_id, product_id) pair to the static
// descriptor and capability set for that StreamDock model, and performs
// the firmware-string-gated capability downgrade some SKUs require
// before a Device is ever constructed from it.
package catalog

import (
	"fmt"
	"strings"

	"github.com/streamdock-hub/go-streamdock/hidio"
)

// Capabilities is the per-model feature flag set. Immutable once bound:
// readers never take a lock to consult it.
type Capabilities struct {
	IsDualDevice            bool
	HasSecondScreen         bool
	HasRGBLed               bool
	SupportsBackgroundGif   bool
	SupportsTransparentIcon bool
	SupportsConfig          bool

	SecondScreenMinKey int
	SecondScreenMaxKey int
	SecondScreenWidth  int
	SecondScreenHeight int

	LedCount int
}

// Geometry describes the renderable surfaces a model exposes.
type Geometry struct {
	KeyCount       int
	KeyImageWidth  int
	KeyImageHeight int
	KeyRotation    int // degrees, applied to every key image before encode

	HasBackground      bool
	BackgroundWidth    int
	BackgroundHeight   int
	BackgroundRotation int
}

// Descriptor is the static, catalog-resident definition of one
// StreamDock model: everything known before any device of that model is
// ever opened.
type Descriptor struct {
	Model     string
	VendorID  uint16
	ProductID uint16

	ReportID     byte
	InputReport  int
	OutputReport int
	FeatureReport int
	// HeaderOffset is 1 for K1Pro-class devices whose input reports carry
	// one extra leading byte (the report id) before the "ACK" response
	// signature; 0 otherwise.
	HeaderOffset int

	Geometry     Geometry
	Capabilities Capabilities

	// FirmwareAdjust, if non-nil, is consulted once per bind with the
	// device's firmware version string and returns capabilities to use
	// instead of the descriptor's default Capabilities — modeling the
	// vendor SDK's changeFirmwareVersionMode() gating.
	FirmwareAdjust func(firmwareVersion string, base Capabilities) Capabilities

	// InputTable maps raw hardware event codes to logical key indices.
	InputTable map[byte]byte
}

type key struct{ vid, pid uint16 }

var registry = map[key]Descriptor{}

func register(d Descriptor) {
	registry[key{d.VendorID, d.ProductID}] = d
}

// Lookup returns the descriptor for (vendorID, productID), or false if no
// StreamDock model is registered under that pair.
func Lookup(vendorID, productID uint16) (Descriptor, bool) {
	d, ok := registry[key{vendorID, productID}]
	return d, ok
}

// Models returns every registered descriptor, for enumeration / listing
// commands.
func Models() []Descriptor {
	out := make([]Descriptor, 0, len(registry))
	for _, d := range registry {
		out = append(out, d)
	}
	return out
}

// Matches reports whether info's VID/PID/usage identify it as a
// StreamDock HID data interface with a registered descriptor.
func Matches(info hidio.DeviceInfo) (Descriptor, bool) {
	d, ok := Lookup(info.VendorID, info.ProductID)
	if !ok {
		return Descriptor{}, false
	}
	if !hidio.IsStreamDockInterface(info) {
		return Descriptor{}, false
	}
	return d, true
}

// ResolveCapabilities applies FirmwareAdjust (if set) against the
// reported firmware version string, returning the capability set a bound
// Device should actually use.
func (d Descriptor) ResolveCapabilities(firmwareVersion string) Capabilities {
	if d.FirmwareAdjust == nil {
		return d.Capabilities
	}
	return d.FirmwareAdjust(firmwareVersion, d.Capabilities)
}

// containsFirmwareMarker reports whether version contains marker,
// case-sensitively — firmware strings in the wild use a fixed casing
// convention ("V25.N3", "V3.N3", ...).
func containsFirmwareMarker(version, marker string) bool {
	return strings.Contains(version, marker)
}

func (d Descriptor) String() string {
	return fmt.Sprintf("%s (vid=0x%04x pid=0x%04x)", d.Model, d.VendorID, d.ProductID)
}
