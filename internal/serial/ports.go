package serial

import (
	"fmt"

	"go.bug.st/serial/enumerator"
)

// Info describes a serial port found on the host.
type Info struct {
	Name         string
	IsUSB        bool
	VendorID     string
	ProductID    string
	SerialNumber string
	Product      string
}

// ListPorts enumerates the serial ports on the host.
func ListPorts() ([]Info, error) {
	details, err := enumerator.GetDetailedPortsList()
	if err != nil {
		return nil, fmt.Errorf("enumerate serial ports: %w", err)
	}

	out := make([]Info, 0, len(details))
	for _, d := range details {
		out = append(out, Info{
			Name:         d.Name,
			IsUSB:        d.IsUSB,
			VendorID:     d.VID,
			ProductID:    d.PID,
			SerialNumber: d.SerialNumber,
			Product:      d.Product,
		})
	}
	return out, nil
}
