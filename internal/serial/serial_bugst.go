package serial

import (
	"fmt"

	bugst "go.bug.st/serial"
)

func openBugst(cfg Config) (device, error) {
	mode := &bugst.Mode{
		BaudRate: cfg.Baud,
		DataBits: cfg.DataBits,
		Parity:   bugst.NoParity,
		StopBits: bugst.OneStopBit,
	}

	switch cfg.Parity {
	case ParityOdd:
		mode.Parity = bugst.OddParity
	case ParityEven:
		mode.Parity = bugst.EvenParity
	}
	if cfg.StopBits == 2 {
		mode.StopBits = bugst.TwoStopBits
	}

	port, err := bugst.Open(cfg.Device, mode)
	if err != nil {
		return nil, err
	}

	if err := port.SetReadTimeout(cfg.ReadTimeout); err != nil {
		_ = port.Close()
		return nil, fmt.Errorf("set read timeout: %w", err)
	}

	// Drop whatever the device printed before we opened the port.
	if err := port.ResetInputBuffer(); err != nil {
		_ = port.Close()
		return nil, fmt.Errorf("reset input buffer: %w", err)
	}

	return port, nil
}
