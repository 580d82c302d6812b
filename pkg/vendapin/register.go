package vendapin

import (
	"context"
	"fmt"

	"github.com/seagrayinc/vendapin/pkg/protocol"
)

// command runs cmd and requires an ACK.
func (s *Session) command(ctx context.Context, cmd protocol.Command, data ...byte) (protocol.Frame, error) {
	f, err := s.roundTrip(ctx, cmd, data...)
	if err != nil {
		return protocol.Frame{}, err
	}

	accepted, err := protocol.WasAccepted(f)
	if err != nil {
		return protocol.Frame{}, fmt.Errorf("%s: %w", cmd, err)
	}
	if !accepted {
		return protocol.Frame{}, &RejectedError{Command: cmd, Frame: f}
	}
	return f, nil
}

// readRegister runs a read command and returns its data as a big-endian value.
func (s *Session) readRegister(ctx context.Context, cmd protocol.Command) (uint32, error) {
	f, err := s.command(ctx, cmd)
	if err != nil {
		return 0, err
	}

	if len(f.Data) == 0 || len(f.Data) > 4 {
		return 0, fmt.Errorf("%s: %w: %d data bytes (%s)", cmd, protocol.ErrMalformedFrame, len(f.Data), f)
	}

	var v uint32
	for _, b := range f.Data {
		v = v<<8 | uint32(b)
	}
	return v, nil
}
