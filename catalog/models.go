package catalog

// Hardware event codes shared across most of the key-grid models: the
// device reports a raw byte identifying which physical key or knob
// action fired; the device package's input reader looks it up in
// Descriptor.InputTable and turns it into a logical RegisterEvent.
const (
	evKeyPressBase = 0x01
)

func init() {
	registerN4()
	registerN4Pro()
	registerN3Family()
	registerM18()
	registerM3()
	registerN1()
	registerXL()
	register293Family()
	registerK1Pro()
}

// sequentialKeyTable builds a raw-code -> logical-index map for the
// common case: hardware reports keys 1..n in a fixed, device-specific
// byte order. Most non-K1Pro models number their physical keys in
// left-to-right, top-to-bottom hardware order starting at 1, which this
// mirrors directly onto logical index 1..n.
func sequentialKeyTable(n int) map[byte]byte {
	m := make(map[byte]byte, n)
	for i := 1; i <= n; i++ {
		m[byte(i)] = byte(i)
	}
	return m
}

func registerN4() {
	register(Descriptor{
		Model: "StreamDock N4", VendorID: 0x6602, ProductID: 0x1001,
		ReportID: 0x00, InputReport: 513, OutputReport: 1025, FeatureReport: 0,
		Geometry: Geometry{
			KeyCount: 15, KeyImageWidth: 112, KeyImageHeight: 112, KeyRotation: 180,
			HasBackground: true, BackgroundWidth: 800, BackgroundHeight: 480, BackgroundRotation: 180,
		},
		Capabilities: Capabilities{
			IsDualDevice: true, HasSecondScreen: true, HasRGBLed: false,
			SupportsBackgroundGif: true, SupportsTransparentIcon: true, SupportsConfig: true,
			SecondScreenMinKey: 1, SecondScreenMaxKey: 4,
			SecondScreenWidth: 176, SecondScreenHeight: 112,
		},
		InputTable: sequentialKeyTable(15),
	})
	// EN hardware revision: same behavior, different USB identity.
	register(Descriptor{
		Model: "StreamDock N4 (EN)", VendorID: 0x6603, ProductID: 0x1007,
		ReportID: 0x00, InputReport: 513, OutputReport: 1025, FeatureReport: 0,
		Geometry: Geometry{
			KeyCount: 15, KeyImageWidth: 112, KeyImageHeight: 112, KeyRotation: 180,
			HasBackground: true, BackgroundWidth: 800, BackgroundHeight: 480, BackgroundRotation: 180,
		},
		Capabilities: Capabilities{
			IsDualDevice: true, HasSecondScreen: true,
			SupportsBackgroundGif: true, SupportsTransparentIcon: true, SupportsConfig: true,
			SecondScreenMinKey: 1, SecondScreenMaxKey: 4,
			SecondScreenWidth: 176, SecondScreenHeight: 112,
		},
		InputTable: sequentialKeyTable(15),
	})
}

func registerN4Pro() {
	register(Descriptor{
		Model: "StreamDock N4 Pro", VendorID: 0x6602, ProductID: 0x1003,
		ReportID: 0x00, InputReport: 513, OutputReport: 1025, FeatureReport: 0,
		Geometry: Geometry{
			KeyCount: 15, KeyImageWidth: 112, KeyImageHeight: 112, KeyRotation: 180,
			HasBackground: true, BackgroundWidth: 800, BackgroundHeight: 480, BackgroundRotation: 180,
		},
		Capabilities: Capabilities{
			IsDualDevice: true, HasSecondScreen: true, HasRGBLed: true,
			SupportsBackgroundGif: true, SupportsTransparentIcon: true, SupportsConfig: true,
			SecondScreenMinKey: 1, SecondScreenMaxKey: 4,
			SecondScreenWidth: 176, SecondScreenHeight: 112,
			LedCount: 4,
		},
		InputTable: sequentialKeyTable(15),
	})
}

// registerN3Family wires N3, N3V2, and N3V25 — the last gated by firmware
// string the same way the vendor SDK's StreamDockN3V25 does.
func registerN3Family() {
	base := Capabilities{
		IsDualDevice: true, HasSecondScreen: false,
		SupportsBackgroundGif: true, SupportsTransparentIcon: true, SupportsConfig: true,
	}
	register(Descriptor{
		Model: "StreamDock N3", VendorID: 0x6602, ProductID: 0x1002,
		ReportID: 0x00, InputReport: 513, OutputReport: 1025, FeatureReport: 0,
		Geometry: Geometry{
			KeyCount: 9, KeyImageWidth: 112, KeyImageHeight: 112, KeyRotation: 180,
		},
		Capabilities: base,
		InputTable:   sequentialKeyTable(9),
	})
	register(Descriptor{
		Model: "StreamDock N3V2", VendorID: 0x6602, ProductID: 0x1004,
		ReportID: 0x00, InputReport: 513, OutputReport: 1025, FeatureReport: 0,
		Geometry: Geometry{
			KeyCount: 9, KeyImageWidth: 112, KeyImageHeight: 112, KeyRotation: 180,
		},
		Capabilities: base,
		InputTable:   sequentialKeyTable(9),
	})
	register(Descriptor{
		Model: "StreamDock N3V25", VendorID: 0x6602, ProductID: 0x1005,
		ReportID: 0x00, InputReport: 513, OutputReport: 1025, FeatureReport: 0,
		Geometry: Geometry{
			KeyCount: 9, KeyImageWidth: 112, KeyImageHeight: 112, KeyRotation: 180,
		},
		Capabilities: base,
		InputTable:   sequentialKeyTable(9),
		FirmwareAdjust: func(firmwareVersion string, in Capabilities) Capabilities {
			out := in
			if containsFirmwareMarker(firmwareVersion, "V25.N3") {
				out.IsDualDevice = false
				out.SupportsBackgroundGif = false
			} else if containsFirmwareMarker(firmwareVersion, "V3.N3") {
				out.SupportsBackgroundGif = false
				out.HasRGBLed = false
				// IsDualDevice intentionally left as-is: the V3.N3 marker
				// does not affect it.
			}
			return out
		},
	})
}

func registerM18() {
	base := Capabilities{
		IsDualDevice: false, HasSecondScreen: false,
		SupportsBackgroundGif: true, SupportsTransparentIcon: true, SupportsConfig: true,
	}
	register(Descriptor{
		Model: "StreamDock M18", VendorID: 0x6602, ProductID: 0x1006,
		ReportID: 0x00, InputReport: 513, OutputReport: 1025, FeatureReport: 0,
		Geometry: Geometry{
			KeyCount: 18, KeyImageWidth: 72, KeyImageHeight: 72, KeyRotation: 180,
		},
		Capabilities: base,
		InputTable:   sequentialKeyTable(18),
		FirmwareAdjust: func(firmwareVersion string, in Capabilities) Capabilities {
			out := in
			if containsFirmwareMarker(firmwareVersion, "V2.M18") || containsFirmwareMarker(firmwareVersion, "V25.M18") {
				out.IsDualDevice = false
				out.SupportsBackgroundGif = false
			}
			return out
		},
	})
}

func registerM3() {
	register(Descriptor{
		Model: "StreamDock M3", VendorID: 0x6602, ProductID: 0x1008,
		ReportID: 0x00, InputReport: 513, OutputReport: 1025, FeatureReport: 0,
		Geometry: Geometry{
			KeyCount: 3, KeyImageWidth: 112, KeyImageHeight: 112, KeyRotation: 0,
			HasBackground: true, BackgroundWidth: 480, BackgroundHeight: 272,
		},
		Capabilities: Capabilities{
			IsDualDevice: true, HasSecondScreen: false,
			SupportsBackgroundGif: true, SupportsTransparentIcon: true, SupportsConfig: true,
		},
		InputTable: sequentialKeyTable(3),
	})
}

func registerN1() {
	register(Descriptor{
		Model: "StreamDock N1", VendorID: 0x6602, ProductID: 0x1009,
		ReportID: 0x00, InputReport: 513, OutputReport: 1025, FeatureReport: 0,
		Geometry: Geometry{
			KeyCount: 3, KeyImageWidth: 112, KeyImageHeight: 112, KeyRotation: 0,
		},
		Capabilities: Capabilities{
			IsDualDevice: false, SupportsConfig: true, SupportsTransparentIcon: true,
		},
		InputTable: sequentialKeyTable(3),
	})
}

func registerXL() {
	register(Descriptor{
		Model: "StreamDock XL", VendorID: 0x6602, ProductID: 0x100A,
		ReportID: 0x00, InputReport: 513, OutputReport: 1025, FeatureReport: 0,
		Geometry: Geometry{
			KeyCount: 32, KeyImageWidth: 96, KeyImageHeight: 96, KeyRotation: 180,
		},
		Capabilities: Capabilities{
			IsDualDevice: false, SupportsBackgroundGif: true,
			SupportsTransparentIcon: true, SupportsConfig: true,
		},
		InputTable: sequentialKeyTable(32),
	})
}

// register293Family wires the 293, 293s, 293V2, 293V3, 293sV2, 293sV3
// SKUs. They share geometry and differ only in USB identity and a small
// capability delta between the "s" (secondary-screen) and plain lines.
func register293Family() {
	plain := Capabilities{
		IsDualDevice: false, SupportsTransparentIcon: true, SupportsConfig: true,
	}
	secondary := Capabilities{
		IsDualDevice: true, HasSecondScreen: true, SupportsTransparentIcon: true, SupportsConfig: true,
		SecondScreenMinKey: 1, SecondScreenMaxKey: 2, SecondScreenWidth: 128, SecondScreenHeight: 96,
	}
	geom := Geometry{KeyCount: 6, KeyImageWidth: 85, KeyImageHeight: 85, KeyRotation: 0}

	models := []struct {
		name string
		pid  uint16
		caps Capabilities
	}{
		{"StreamDock 293", 0x100B, plain},
		{"StreamDock 293V2", 0x100C, plain},
		{"StreamDock 293V3", 0x100D, plain},
		{"StreamDock 293s", 0x100E, secondary},
		{"StreamDock 293sV2", 0x100F, secondary},
		{"StreamDock 293sV3", 0x1010, secondary},
	}
	for _, m := range models {
		register(Descriptor{
			Model: m.name, VendorID: 0x6602, ProductID: m.pid,
			ReportID: 0x00, InputReport: 513, OutputReport: 1025, FeatureReport: 0,
			Geometry:     geom,
			Capabilities: m.caps,
			InputTable:   sequentialKeyTable(6),
		})
	}
}

// registerK1Pro wires the keyboard-backlight-bearing outlier: a shifted
// report-id offset, a 6-key-plus-knob layout, and no RGB/background-gif/
// secondary-screen/config support.
func registerK1Pro() {
	inputTable := map[byte]byte{
		0x05: 1, 0x03: 2, 0x01: 3, 0x06: 4, 0x04: 5, 0x02: 6,
	}
	register(Descriptor{
		Model: "K1Pro", VendorID: 0x6603, ProductID: 0x1015,
		ReportID: 0x04, InputReport: 513, OutputReport: 1025, FeatureReport: 0,
		HeaderOffset: 1,
		Geometry: Geometry{
			KeyCount: 6, KeyImageWidth: 112, KeyImageHeight: 112, KeyRotation: 0,
		},
		Capabilities: Capabilities{
			IsDualDevice: true, HasSecondScreen: false, HasRGBLed: false,
			SupportsBackgroundGif: false, SupportsConfig: false,
		},
		InputTable: inputTable,
	})
	// EU hardware revision.
	register(Descriptor{
		Model: "K1Pro (EU)", VendorID: 0x6603, ProductID: 0x1019,
		ReportID: 0x04, InputReport: 513, OutputReport: 1025, FeatureReport: 0,
		HeaderOffset: 1,
		Geometry: Geometry{
			KeyCount: 6, KeyImageWidth: 112, KeyImageHeight: 112, KeyRotation: 0,
		},
		Capabilities: Capabilities{
			IsDualDevice: true, HasSecondScreen: false, HasRGBLed: false,
			SupportsBackgroundGif: false, SupportsConfig: false,
		},
		InputTable: inputTable,
	})
}
