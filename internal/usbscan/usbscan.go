// Package usbscan finds USB-serial bridges a dispenser may be attached through.
package usbscan

import (
	"fmt"

	"github.com/karalabe/usb"
)

// Bridge identifies a USB-serial chip by vendor and product ID.
type Bridge struct {
	Name      string
	VendorID  uint16
	ProductID uint16
}

// KnownBridges are the USB-serial chips dispensers are commonly sold with.
// The Vendapin reference cable uses an FTDI FT232R.
var KnownBridges = []Bridge{
	{Name: "FTDI FT232R", VendorID: 0x0403, ProductID: 0x6001},
	{Name: "FTDI FT231X", VendorID: 0x0403, ProductID: 0x6015},
	{Name: "Prolific PL2303", VendorID: 0x067B, ProductID: 0x2303},
	{Name: "Silicon Labs CP210x", VendorID: 0x10C4, ProductID: 0xEA60},
	{Name: "WCH CH340", VendorID: 0x1A86, ProductID: 0x7523},
}

// Adapter is an attached USB-serial bridge.
type Adapter struct {
	Bridge       Bridge
	Path         string
	Serial       string
	Manufacturer string
	Product      string
}

// enumerate is swapped out in tests.
var enumerate = usb.EnumerateRaw

// Supported reports whether USB enumeration works on this platform.
func Supported() bool {
	return usb.Supported()
}

// Scan lists attached adapters matching KnownBridges.
func Scan() ([]Adapter, error) {
	var out []Adapter
	for _, b := range KnownBridges {
		infos, err := enumerate(b.VendorID, b.ProductID)
		if err != nil {
			return nil, fmt.Errorf("usb enumerate %04X:%04X: %w", b.VendorID, b.ProductID, err)
		}

		for _, info := range infos {
			out = append(out, Adapter{
				Bridge:       b,
				Path:         info.Path,
				Serial:       info.Serial,
				Manufacturer: info.Manufacturer,
				Product:      info.Product,
			})
		}
	}
	return out, nil
}
