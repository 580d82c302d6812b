package vendapin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/seagrayinc/vendapin/pkg/protocol"
)

// exchange carries the identity of one request/response cycle.
type exchange struct {
	id     uuid.UUID
	cmd    protocol.Command
	logger *slog.Logger
}

func (s *Session) begin(cmd protocol.Command) exchange {
	id := uuid.New()
	return exchange{
		id:  id,
		cmd: cmd,
		logger: s.logger.With(
			slog.String("exchange", id.String()),
			slog.String("command", cmd.String()),
		),
	}
}

// roundTrip sends cmd, waits for the device to settle and returns its decoded
// response.
func (s *Session) roundTrip(ctx context.Context, cmd protocol.Command, data ...byte) (protocol.Frame, error) {
	x := s.begin(cmd)
	if err := s.send(x, data...); err != nil {
		return protocol.Frame{}, err
	}

	if err := s.await(ctx, x); err != nil {
		return protocol.Frame{}, err
	}

	return s.receiveFrame(x)
}

func (s *Session) send(x exchange, data ...byte) error {
	packet, err := protocol.EncodeTo(s.address, x.cmd, data...)
	if err != nil {
		return err
	}

	x.logger.Debug("sending packet", slog.String("bytes", protocol.EncodeToString(packet)))
	s.trace(TraceEvent{
		Exchange:  x.id,
		Direction: DirectionOut,
		Command:   x.cmd,
		Raw:       packet,
		Frame: &protocol.Frame{
			Address:  s.address,
			Command:  byte(x.cmd),
			Length:   byte(len(data)),
			Data:     data,
			Checksum: packet[len(packet)-1],
		},
	})

	if _, err := s.transport.Write(packet); err != nil {
		return fmt.Errorf("send %s failed: %w", x.cmd, err)
	}
	return nil
}

func (s *Session) await(ctx context.Context, x exchange) error {
	if err := s.sleep(ctx, s.delays.For(x.cmd)); err != nil {
		return fmt.Errorf("waiting for %s response: %w", x.cmd, err)
	}
	return nil
}

// receiveFrame reads and decodes one response. A boot string in place of a
// packet counts as no response.
func (s *Session) receiveFrame(x exchange) (protocol.Frame, error) {
	raw, err := s.receive()
	if err != nil {
		return protocol.Frame{}, fmt.Errorf("%s: %w", x.cmd, err)
	}

	f, err := s.decode(x, raw)
	if errors.Is(err, protocol.ErrNonPacketInput) {
		return protocol.Frame{}, fmt.Errorf("%s: %w: %w", x.cmd, ErrNoResponse, err)
	}
	if err != nil {
		return protocol.Frame{}, fmt.Errorf("failed to parse %s response: %w", x.cmd, err)
	}
	return f, nil
}

func (s *Session) decode(x exchange, raw []byte) (protocol.Frame, error) {
	x.logger.Debug("received bytes", slog.String("bytes", protocol.EncodeToString(raw)))

	f, err := protocol.Decode(raw)
	ev := TraceEvent{
		Exchange:  x.id,
		Direction: DirectionIn,
		Command:   x.cmd,
		Raw:       raw,
		Err:       err,
	}
	if err == nil {
		ev.Frame = &f
	}
	s.trace(ev)

	return f, err
}

// receive collects the bytes of one response. Once STX through LEN have
// arrived it reads exactly the announced packet length; input that does not
// start with STX ends at a carriage return (boot string) or at the byte after
// ETX.
func (s *Session) receive() ([]byte, error) {
	n, err := s.transport.Buffered()
	if err != nil {
		return nil, fmt.Errorf("transport: %w", err)
	}
	if n == 0 {
		return nil, ErrNoResponse
	}

	var raw []byte
	for len(raw) < protocol.MaxFrameLength {
		b, err := s.transport.ReadByte()
		switch {
		case err == nil:
		case isTimeout(err) && len(raw) == 0:
			return nil, ErrNoResponse
		case isTimeout(err):
			// Short packet; let Decode report it.
			return raw, nil
		default:
			return nil, fmt.Errorf("transport read: %w", err)
		}

		raw = append(raw, b)
		if complete(raw) {
			break
		}
	}

	return raw, nil
}

func complete(raw []byte) bool {
	if want, ok := protocol.FrameLength(raw); ok {
		return len(raw) >= want
	}
	if raw[0] == protocol.StartOfText {
		return false
	}

	n := len(raw)
	if raw[n-1] == protocol.CarriageReturn {
		return true
	}
	return n >= 2 && raw[n-2] == protocol.EndOfText
}

func isTimeout(err error) bool {
	var te interface{ Timeout() bool }
	return errors.As(err, &te) && te.Timeout()
}

func (s *Session) trace(ev TraceEvent) {
	if s.tracer != nil {
		s.tracer(ev)
	}
}
