// Package serial provides the byte-stream transport a dispenser session runs over.
//
// Two implementations are available:
//   - go.bug.st/serial (default), which can change its read timeout per read
//   - github.com/tarm/serial, which reads with the fixed timeout it was opened with
package serial

import (
	"errors"
	"fmt"
	"io"
	"time"
)

type Backend string

const (
	BackendBugst Backend = "bugst"
	BackendTarm  Backend = "tarm"
)

type Parity byte

const (
	ParityNone Parity = 'N'
	ParityOdd  Parity = 'O'
	ParityEven Parity = 'E'
)

// Config holds serial port configuration
type Config struct {
	// Device path (e.g. "/dev/ttyUSB0", "/dev/tty.usbserial-0000201A", "COM3")
	Device string

	Baud     int
	DataBits int
	Parity   Parity
	StopBits int

	// ReadTimeout bounds a single blocking byte read.
	ReadTimeout time.Duration

	// PollTimeout bounds the read used to check whether bytes are waiting.
	PollTimeout time.Duration

	Backend Backend
}

// DefaultConfig returns the 19200 8N1 configuration the dispenser ships with.
func DefaultConfig(device string) *Config {
	return &Config{
		Device:      device,
		Baud:        19200,
		DataBits:    8,
		Parity:      ParityNone,
		StopBits:    1,
		ReadTimeout: time.Second,
		PollTimeout: 20 * time.Millisecond,
		Backend:     BackendBugst,
	}
}

var ErrClosed = errors.New("serial: port closed")

// ErrTimeout is returned by ReadByte when no byte arrived within the read
// timeout. It reports Timeout() == true.
var ErrTimeout error = timeoutError{}

type timeoutError struct{}

func (timeoutError) Error() string { return "serial: read timeout" }
func (timeoutError) Timeout() bool { return true }

// device is the subset of a platform serial port used by Port.
type device interface {
	io.ReadWriteCloser
}

// timeoutSetter is implemented by devices whose read timeout can change
// between reads.
type timeoutSetter interface {
	SetReadTimeout(time.Duration) error
}

// Port is a buffered serial transport. It is not safe for concurrent use.
type Port struct {
	dev    device
	cfg    Config
	buf    []byte
	chunk  []byte
	closed bool
}

// Open opens the serial port described by cfg using the configured backend.
func Open(cfg *Config) (*Port, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	var (
		dev device
		err error
	)
	switch cfg.Backend {
	case BackendBugst, "":
		dev, err = openBugst(*cfg)
	case BackendTarm:
		dev, err = openTarm(*cfg)
	default:
		return nil, fmt.Errorf("unknown serial backend %q", cfg.Backend)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open serial port %s: %w", cfg.Device, err)
	}

	return newPort(dev, *cfg), nil
}

func newPort(dev device, cfg Config) *Port {
	return &Port{
		dev:   dev,
		cfg:   cfg,
		chunk: make([]byte, 64),
	}
}

func (p *Port) Write(b []byte) (int, error) {
	if p.closed {
		return 0, ErrClosed
	}
	return p.dev.Write(b)
}

// Buffered reports how many bytes can be read without waiting for the device.
// When nothing is buffered it polls the device for up to PollTimeout.
func (p *Port) Buffered() (int, error) {
	if p.closed {
		return 0, ErrClosed
	}
	if len(p.buf) > 0 {
		return len(p.buf), nil
	}

	if err := p.fill(p.cfg.PollTimeout); err != nil && !errors.Is(err, ErrTimeout) {
		return 0, err
	}
	return len(p.buf), nil
}

// ReadByte returns the next byte, waiting up to ReadTimeout for it.
func (p *Port) ReadByte() (byte, error) {
	if p.closed {
		return 0, ErrClosed
	}
	if len(p.buf) == 0 {
		if err := p.fill(p.cfg.ReadTimeout); err != nil {
			return 0, err
		}
	}

	b := p.buf[0]
	p.buf = p.buf[1:]
	return b, nil
}

func (p *Port) Close() error {
	if p.closed {
		return nil
	}
	p.closed = true
	p.buf = nil
	return p.dev.Close()
}

func (p *Port) fill(timeout time.Duration) error {
	if s, ok := p.dev.(timeoutSetter); ok {
		if err := s.SetReadTimeout(timeout); err != nil {
			return fmt.Errorf("set read timeout: %w", err)
		}
	}

	n, err := p.dev.Read(p.chunk)
	if n > 0 {
		p.buf = append(p.buf, p.chunk[:n]...)
	}

	// tarm/serial reports an expired read timeout as io.EOF, go.bug.st/serial as (0, nil).
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("serial read: %w", err)
	}
	if n == 0 {
		return ErrTimeout
	}
	return nil
}
