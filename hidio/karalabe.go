package hidio

import "github.com/karalabe/hid"

// KaralabeBinding is the default Binding implementation, backed by
// github.com/karalabe/hid — the cgo hidapi wrapper the rest of the Go
// StreamDeck-class ecosystem standardizes on.
type KaralabeBinding struct{}

// NewKaralabeBinding constructs the default HID binding.
func NewKaralabeBinding() KaralabeBinding { return KaralabeBinding{} }

func (KaralabeBinding) Enumerate(vendorID, productID uint16) ([]DeviceInfo, error) {
	infos, err := hid.Enumerate(vendorID, productID)
	if err != nil {
		return nil, err
	}
	out := make([]DeviceInfo, 0, len(infos))
	for _, info := range infos {
		out = append(out, DeviceInfo{
			Path:         info.Path,
			VendorID:     info.VendorID,
			ProductID:    info.ProductID,
			Release:      info.Release,
			UsagePage:    info.UsagePage,
			Usage:        info.Usage,
			Interface:    info.Interface,
			Serial:       info.Serial,
			Product:      info.Product,
			Manufacturer: info.Manufacturer,
		})
	}
	return out, nil
}

func (KaralabeBinding) Open(info DeviceInfo) (Device, error) {
	raw := hid.DeviceInfo{
		Path:         info.Path,
		VendorID:     info.VendorID,
		ProductID:    info.ProductID,
		Release:      info.Release,
		UsagePage:    info.UsagePage,
		Usage:        info.Usage,
		Interface:    info.Interface,
		Serial:       info.Serial,
		Product:      info.Product,
		Manufacturer: info.Manufacturer,
	}
	dev, err := raw.Open()
	if err != nil {
		return nil, err
	}
	return dev, nil
}
