package hid

import (
	"github.com/karalabe/hid"
)

// DeviceInfo describes a HID device found on the system
type DeviceInfo struct {
	VendorID     uint16
	ProductID    uint16
	Path         string
	Manufacturer string
	Product      string
}

// ListDevices enumerates HID devices, skipping interfaces without IDs and
// collapsing multiple interfaces of the same device into one entry
func ListDevices() []DeviceInfo {
	return uniqueDevices(hid.Enumerate(0, 0))
}

func uniqueDevices(devices []hid.DeviceInfo) []DeviceInfo {
	seen := make(map[uint32]bool)
	var result []DeviceInfo

	for _, d := range devices {
		if d.VendorID == 0 && d.ProductID == 0 {
			continue
		}
		key := uint32(d.VendorID)<<16 | uint32(d.ProductID)
		if seen[key] {
			continue
		}
		seen[key] = true

		result = append(result, DeviceInfo{
			VendorID:     d.VendorID,
			ProductID:    d.ProductID,
			Path:         d.Path,
			Manufacturer: d.Manufacturer,
			Product:      d.Product,
		})
	}

	return result
}
