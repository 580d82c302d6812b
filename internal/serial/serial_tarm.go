package serial

import (
	tarm "github.com/tarm/serial"
)

// tarmPort hides tarm's Flush so the port is only used through device.
type tarmPort struct {
	port *tarm.Port
}

func openTarm(cfg Config) (device, error) {
	port, err := tarm.OpenPort(&tarm.Config{
		Name:        cfg.Device,
		Baud:        cfg.Baud,
		ReadTimeout: cfg.ReadTimeout,
		Size:        byte(cfg.DataBits),
		Parity:      tarm.Parity(cfg.Parity),
		StopBits:    tarm.StopBits(cfg.StopBits),
	})
	if err != nil {
		return nil, err
	}

	if err := port.Flush(); err != nil {
		_ = port.Close()
		return nil, err
	}

	return &tarmPort{port: port}, nil
}

func (p *tarmPort) Read(b []byte) (int, error)  { return p.port.Read(b) }
func (p *tarmPort) Write(b []byte) (int, error) { return p.port.Write(b) }
func (p *tarmPort) Close() error                { return p.port.Close() }
