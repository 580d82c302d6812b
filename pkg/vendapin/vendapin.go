// Package vendapin drives a Vendapin CTD-202/203 card dispenser over a
// byte-stream transport, typically a serial port at 19200 8N1.
//
// Every operation is a half-duplex exchange: the request packet is written,
// the session waits a fixed settle delay (the device has no ready signal),
// then reads and classifies exactly one response packet. A Session is not
// safe for concurrent use; callers sharing a device must serialize calls.
package vendapin

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/seagrayinc/vendapin/pkg/protocol"
)

// Transport is the byte stream a Session talks over.
type Transport interface {
	Write(p []byte) (int, error)

	// Buffered reports how many bytes are ready to read.
	Buffered() (int, error)

	// ReadByte blocks up to the transport's read timeout. On timeout it
	// returns an error reporting Timeout() == true.
	ReadByte() (byte, error)
}

// Delays are the settle times between writing a request and reading its
// response.
type Delays struct {
	Default  time.Duration
	Dispense time.Duration
	Reset    time.Duration
}

func DefaultDelays() Delays {
	return Delays{
		Default:  time.Second,
		Dispense: 2 * time.Second,
		Reset:    time.Second,
	}
}

// For returns the settle delay for cmd.
func (d Delays) For(cmd protocol.Command) time.Duration {
	switch cmd {
	case protocol.Dispense:
		return d.Dispense
	case protocol.Reset:
		return d.Reset
	}
	return d.Default
}

type Direction int

const (
	DirectionOut Direction = iota
	DirectionIn
)

func (d Direction) String() string {
	if d == DirectionOut {
		return "out"
	}
	return "in"
}

// TraceEvent describes a packet written to or read from the transport. Frame
// is nil when the bytes did not decode, in which case Err says why.
type TraceEvent struct {
	Exchange  uuid.UUID
	Direction Direction
	Command   protocol.Command
	Raw       []byte
	Frame     *protocol.Frame
	Err       error
}

type Tracer func(TraceEvent)

type Session struct {
	transport Transport
	address   byte
	delays    Delays
	logger    *slog.Logger
	tracer    Tracer
	sleep     func(context.Context, time.Duration) error
}

type Option func(*Session)

func WithAddress(addr byte) Option {
	return func(s *Session) { s.address = addr }
}

func WithDelays(d Delays) Option {
	return func(s *Session) { s.delays = d }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// WithTracer registers a hook receiving every packet the session writes or reads.
func WithTracer(t Tracer) Option {
	return func(s *Session) { s.tracer = t }
}

// WithSleep replaces the settle wait, e.g. with a no-op in tests.
func WithSleep(fn func(context.Context, time.Duration) error) Option {
	return func(s *Session) { s.sleep = fn }
}

// New returns a session owning t.
func New(t Transport, opts ...Option) *Session {
	s := &Session{
		transport: t,
		address:   protocol.DefaultAddress,
		delays:    DefaultDelays(),
		logger:    slog.Default(),
		sleep:     sleepContext,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Close closes the transport if it is closable. Closing the transport is the
// only way to abort a read in progress.
func (s *Session) Close() error {
	if c, ok := s.transport.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
